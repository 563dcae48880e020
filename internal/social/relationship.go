// Package social implements the follow graph, engagement side effects, feed
// composition and notification reads on top of a store handle.
package social

import (
	"context"

	"socialfeed/internal/models"
	"socialfeed/internal/store"
)

// Relationships manages directed follow edges. Follow and Unfollow are
// separate operations rather than a toggle.
type Relationships struct {
	store *store.Store
}

func NewRelationships(s *store.Store) *Relationships {
	return &Relationships{store: s}
}

// Follow creates actor -> target. It fails with ErrSelfRelation, ErrNotFound
// when target does not exist, or ErrAlreadyFollowing.
func (r *Relationships) Follow(ctx context.Context, actor, target uint) error {
	if actor == target {
		return models.ErrSelfRelation
	}
	if _, err := r.store.UserByID(ctx, target); err != nil {
		return err
	}
	return r.store.AddFollow(ctx, actor, target)
}

// Unfollow removes actor -> target, failing with ErrNotFollowing if absent.
func (r *Relationships) Unfollow(ctx context.Context, actor, target uint) error {
	if actor == target {
		return models.ErrSelfRelation
	}
	return r.store.RemoveFollow(ctx, actor, target)
}

func (r *Relationships) IsFollowing(ctx context.Context, actor, target uint) (bool, error) {
	return r.store.IsFollowing(ctx, actor, target)
}

// Following lists usernames userID follows; the user must exist.
func (r *Relationships) Following(ctx context.Context, userID uint, limit int) ([]string, error) {
	if _, err := r.store.UserByID(ctx, userID); err != nil {
		return nil, err
	}
	return r.store.FollowingUsernames(ctx, userID, limit)
}

// Followers lists usernames following userID; the user must exist.
func (r *Relationships) Followers(ctx context.Context, userID uint, limit int) ([]string, error) {
	if _, err := r.store.UserByID(ctx, userID); err != nil {
		return nil, err
	}
	return r.store.FollowerUsernames(ctx, userID, limit)
}
