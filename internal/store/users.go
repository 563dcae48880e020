package store

import (
	"context"
	"fmt"

	"socialfeed/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.CreatedAt = s.clock.NowUtc()
	if err := s.conn(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return models.ErrUsernameTaken
		}
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).First(&u, id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("query user %d: %w", id, err)
	}
	return &u, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.conn(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user %q: %w", username, models.ErrNotFound)
		}
		return nil, fmt.Errorf("query user %q: %w", username, err)
	}
	return &u, nil
}

// ProfileUpdate carries the optional profile fields; nil leaves a field as is.
type ProfileUpdate struct {
	Email     *string
	Bio       *string
	AvatarURL *string
}

func (s *Store) UpdateProfile(ctx context.Context, id uint, upd ProfileUpdate) (*models.User, error) {
	fields := map[string]interface{}{}
	if upd.Email != nil {
		fields["email"] = *upd.Email
	}
	if upd.Bio != nil {
		fields["bio"] = *upd.Bio
	}
	if upd.AvatarURL != nil {
		fields["avatar_url"] = *upd.AvatarURL
	}
	if len(fields) > 0 {
		res := s.conn(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, fmt.Errorf("update user %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
		}
	}
	return s.UserByID(ctx, id)
}

// AddFollow inserts the edge who -> whom. The composite primary key decides
// whether the edge already exists.
func (s *Store) AddFollow(ctx context.Context, who, whom uint) error {
	edge := models.Follower{WhoID: who, WhomID: whom, CreatedAt: s.clock.NowUtc()}
	if err := s.conn(ctx).Create(&edge).Error; err != nil {
		if isDuplicate(err) {
			return models.ErrAlreadyFollowing
		}
		return fmt.Errorf("insert follow %d->%d: %w", who, whom, err)
	}
	return nil
}

func (s *Store) RemoveFollow(ctx context.Context, who, whom uint) error {
	res := s.conn(ctx).Where("who_id = ? AND whom_id = ?", who, whom).Delete(&models.Follower{})
	if res.Error != nil {
		return fmt.Errorf("delete follow %d->%d: %w", who, whom, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFollowing
	}
	return nil
}

func (s *Store) IsFollowing(ctx context.Context, who, whom uint) (bool, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Follower{}).
		Where("who_id = ? AND whom_id = ?", who, whom).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("query follow %d->%d: %w", who, whom, err)
	}
	return n > 0, nil
}

func (s *Store) FolloweeIDs(ctx context.Context, who uint) ([]uint, error) {
	var ids []uint
	err := s.conn(ctx).Model(&models.Follower{}).
		Where("who_id = ?", who).
		Order("whom_id").
		Pluck("whom_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("query followees of %d: %w", who, err)
	}
	return ids, nil
}

// FollowingUsernames lists who userID follows, at most limit names.
func (s *Store) FollowingUsernames(ctx context.Context, userID uint, limit int) ([]string, error) {
	names := []string{}
	err := s.conn(ctx).
		Table("users").
		Joins("INNER JOIN followers ON followers.whom_id = users.id").
		Where("followers.who_id = ?", userID).
		Order("users.username").
		Limit(limit).
		Pluck("users.username", &names).Error
	if err != nil {
		return nil, fmt.Errorf("query following of %d: %w", userID, err)
	}
	return names, nil
}

// FollowerUsernames lists who follows userID, at most limit names.
func (s *Store) FollowerUsernames(ctx context.Context, userID uint, limit int) ([]string, error) {
	names := []string{}
	err := s.conn(ctx).
		Table("users").
		Joins("INNER JOIN followers ON followers.who_id = users.id").
		Where("followers.whom_id = ?", userID).
		Order("users.username").
		Limit(limit).
		Pluck("users.username", &names).Error
	if err != nil {
		return nil, fmt.Errorf("query followers of %d: %w", userID, err)
	}
	return names, nil
}

func (s *Store) FollowCounts(ctx context.Context, userID uint) (followers, following int64, err error) {
	if err = s.conn(ctx).Model(&models.Follower{}).Where("whom_id = ?", userID).Count(&followers).Error; err != nil {
		return 0, 0, fmt.Errorf("count followers of %d: %w", userID, err)
	}
	if err = s.conn(ctx).Model(&models.Follower{}).Where("who_id = ?", userID).Count(&following).Error; err != nil {
		return 0, 0, fmt.Errorf("count following of %d: %w", userID, err)
	}
	return followers, following, nil
}
