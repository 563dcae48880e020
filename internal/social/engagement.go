package social

import (
	"context"

	"socialfeed/internal/models"
	"socialfeed/internal/store"
)

type Engagement struct {
	store *store.Store
}

func NewEngagement(s *store.Store) *Engagement {
	return &Engagement{store: s}
}

type LikeResult struct {
	Like       models.Like
	LikesCount int64
}

// Like records userID's like on postID and, unless the user wrote the post,
// notifies the author. The like, the notification and the returned count
// share one transaction, so a rejected like never produces a notification.
func (e *Engagement) Like(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	var res LikeResult
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		post, err := tx.PostByID(ctx, postID)
		if err != nil {
			return err
		}

		like := models.Like{UserID: userID, PostID: postID}
		if err := tx.CreateLike(ctx, &like); err != nil {
			return err
		}

		if post.AuthorID != userID {
			note := models.Notification{
				RecipientID: post.AuthorID,
				ActorID:     userID,
				Verb:        models.VerbLiked,
				Target:      models.PostTarget(post.ID),
			}
			if err := tx.CreateNotification(ctx, &note); err != nil {
				return err
			}
		}

		n, err := tx.CountLikes(ctx, postID)
		if err != nil {
			return err
		}
		res = LikeResult{Like: like, LikesCount: n}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// Unlike removes userID's like on postID along with the "liked"
// notification it produced, if that is still present.
func (e *Engagement) Unlike(ctx context.Context, userID, postID uint) error {
	return e.store.Transaction(ctx, func(tx *store.Store) error {
		post, err := tx.PostByID(ctx, postID)
		if err != nil {
			return err
		}
		if err := tx.DeleteLike(ctx, userID, postID); err != nil {
			return err
		}
		_, err = tx.DeleteNotifications(ctx, post.AuthorID, userID, models.VerbLiked, models.PostTarget(postID))
		return err
	})
}

// Comment adds a comment to postID and notifies the post author when the
// commenter is someone else.
func (e *Engagement) Comment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	var created *models.Comment
	err := e.store.Transaction(ctx, func(tx *store.Store) error {
		post, err := tx.PostByID(ctx, postID)
		if err != nil {
			return err
		}

		c := models.Comment{PostID: postID, AuthorID: userID, Content: content}
		if err := tx.CreateComment(ctx, &c); err != nil {
			return err
		}

		if post.AuthorID != userID {
			note := models.Notification{
				RecipientID: post.AuthorID,
				ActorID:     userID,
				Verb:        models.VerbCommented,
				Target:      models.CommentTarget(c.ID),
			}
			if err := tx.CreateNotification(ctx, &note); err != nil {
				return err
			}
		}

		created, err = tx.CommentByID(ctx, postID, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
