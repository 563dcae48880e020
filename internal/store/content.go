package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"socialfeed/internal/models"
)

func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	now := s.clock.NowUtc()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := s.conn(ctx).Omit("Author", "Comments").Create(p).Error; err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (s *Store) PostByID(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	if err := s.conn(ctx).Preload("Author").First(&p, id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("post %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("query post %d: %w", id, err)
	}
	return &p, nil
}

// PostDetail loads a post with its author and its comments in creation order.
func (s *Store) PostDetail(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	err := withComments(s.conn(ctx).Preload("Author")).First(&p, id).Error
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("post %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("query post %d: %w", id, err)
	}
	return &p, nil
}

func withComments(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC, comments.id ASC")
		}).
		Preload("Comments.Author")
}

// PostUpdate carries the optional post fields; nil leaves a field as is.
type PostUpdate struct {
	Title    *string
	Content  *string
	MediaURL *string
}

func (s *Store) UpdatePost(ctx context.Context, id uint, upd PostUpdate) error {
	fields := map[string]interface{}{"updated_at": s.clock.NowUtc()}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Content != nil {
		fields["content"] = *upd.Content
	}
	if upd.MediaURL != nil {
		fields["media_url"] = *upd.MediaURL
	}
	res := s.conn(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update post %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %d: %w", id, models.ErrNotFound)
	}
	return nil
}

// DeletePost removes a post; comments and likes follow by cascade.
// Notifications pointing at the post or its comments are removed with it.
func (s *Store) DeletePost(ctx context.Context, id uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		commentIDs := tx.conn(ctx).Model(&models.Comment{}).Select("id").Where("post_id = ?", id)
		err := tx.conn(ctx).
			Where("target_kind = ? AND target_entity_id = ?", models.TargetPost, id).
			Or("target_kind = ? AND target_entity_id IN (?)", models.TargetComment, commentIDs).
			Delete(&models.Notification{}).Error
		if err != nil {
			return fmt.Errorf("delete notifications for post %d: %w", id, err)
		}

		res := tx.conn(ctx).Delete(&models.Post{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete post %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("post %d: %w", id, models.ErrNotFound)
		}
		return nil
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// PostFilter narrows ListPosts. Zero values do not filter.
type PostFilter struct {
	AuthorID uint
	Query    string
	Page     Page
}

// ListPosts returns one page of posts, newest first, and the total match count.
func (s *Store) ListPosts(ctx context.Context, f PostFilter) ([]models.Post, int64, error) {
	q := s.conn(ctx).Model(&models.Post{})
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if f.Query != "" {
		like := "%" + escapeLike(strings.ToLower(f.Query)) + "%"
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	posts := []models.Post{}
	err := f.Page.apply(q.Preload("Author")).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	return posts, total, nil
}

// FeedPosts selects posts authored by the users userID follows, newest first
// with id as tie-breaker, preloading authors and comments with their authors.
// It issues a fixed number of statements whatever the page size.
func (s *Store) FeedPosts(ctx context.Context, userID uint, page Page) ([]models.Post, error) {
	followees := s.conn(ctx).Model(&models.Follower{}).Select("whom_id").Where("who_id = ?", userID)

	posts := []models.Post{}
	err := page.apply(withComments(s.conn(ctx).Preload("Author"))).
		Where("author_id IN (?)", followees).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("query feed of %d: %w", userID, err)
	}
	return posts, nil
}

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	now := s.clock.NowUtc()
	c.CreatedAt, c.UpdatedAt = now, now
	if err := s.conn(ctx).Omit("Author").Create(c).Error; err != nil {
		return fmt.Errorf("insert comment on post %d: %w", c.PostID, err)
	}
	return nil
}

func (s *Store) CommentByID(ctx context.Context, postID, id uint) (*models.Comment, error) {
	var c models.Comment
	err := s.conn(ctx).Preload("Author").Where("post_id = ?", postID).First(&c, id).Error
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("comment %d on post %d: %w", id, postID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("query comment %d: %w", id, err)
	}
	return &c, nil
}

func (s *Store) ListComments(ctx context.Context, postID uint, page Page) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := page.apply(s.conn(ctx).Preload("Author")).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return comments, nil
}

func (s *Store) UpdateComment(ctx context.Context, id uint, content string) error {
	res := s.conn(ctx).Model(&models.Comment{}).Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "updated_at": s.clock.NowUtc()})
	if res.Error != nil {
		return fmt.Errorf("update comment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment %d: %w", id, models.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteComment(ctx context.Context, id uint) error {
	return s.Transaction(ctx, func(tx *Store) error {
		err := tx.conn(ctx).
			Where("target_kind = ? AND target_entity_id = ?", models.TargetComment, id).
			Delete(&models.Notification{}).Error
		if err != nil {
			return fmt.Errorf("delete notifications for comment %d: %w", id, err)
		}
		res := tx.conn(ctx).Delete(&models.Comment{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete comment %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("comment %d: %w", id, models.ErrNotFound)
		}
		return nil
	})
}

// CreateLike inserts a like. The unique (user_id, post_id) index is the only
// check, so concurrent duplicates resolve to exactly one row.
func (s *Store) CreateLike(ctx context.Context, l *models.Like) error {
	l.CreatedAt = s.clock.NowUtc()
	if err := s.conn(ctx).Omit("User", "Post").Create(l).Error; err != nil {
		if isDuplicate(err) {
			return models.ErrAlreadyLiked
		}
		return fmt.Errorf("insert like %d on post %d: %w", l.UserID, l.PostID, err)
	}
	return nil
}

func (s *Store) DeleteLike(ctx context.Context, userID, postID uint) error {
	res := s.conn(ctx).Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
	if res.Error != nil {
		return fmt.Errorf("delete like %d on post %d: %w", userID, postID, res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotLiked
	}
	return nil
}

func (s *Store) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var n int64
	if err := s.conn(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count likes of post %d: %w", postID, err)
	}
	return n, nil
}

// LikeCounts returns like totals for postIDs in one grouped query.
// Posts without likes are absent from the map.
func (s *Store) LikeCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint
		N      int64
	}
	err := s.conn(ctx).Model(&models.Like{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	for _, r := range rows {
		counts[r.PostID] = r.N
	}
	return counts, nil
}

// LikedBy reports which of postIDs userID has liked, in one query.
func (s *Store) LikedBy(ctx context.Context, userID uint, postIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(postIDs))
	if len(postIDs) == 0 || userID == 0 {
		return liked, nil
	}

	var ids []uint
	err := s.conn(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("query likes of %d: %w", userID, err)
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
