package store

import (
	"context"
	"fmt"

	"socialfeed/internal/models"
)

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	if err := n.Target.Validate(); err != nil {
		return fmt.Errorf("notification for %d: %w", n.RecipientID, err)
	}
	n.CreatedAt = s.clock.NowUtc()
	n.IsRead = false
	if err := s.conn(ctx).Omit("Recipient", "Actor").Create(n).Error; err != nil {
		return fmt.Errorf("insert notification for %d: %w", n.RecipientID, err)
	}
	return nil
}

// DeleteNotifications removes notifications matching recipient, actor, verb
// and target, returning how many went away.
func (s *Store) DeleteNotifications(ctx context.Context, recipientID, actorID uint, verb string, target models.Target) (int64, error) {
	res := s.conn(ctx).
		Where("recipient_id = ? AND actor_id = ? AND verb = ?", recipientID, actorID, verb).
		Where("target_kind = ? AND target_entity_id = ?", target.Kind, target.EntityID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete %s notifications for %d: %w", verb, recipientID, res.Error)
	}
	return res.RowsAffected, nil
}

// ListAndMarkRead returns every notification for recipient, newest first,
// and marks the unread ones among them as read in the same transaction.
// The returned records carry IsRead as it was when they were read; rows
// inserted after the snapshot are left untouched.
func (s *Store) ListAndMarkRead(ctx context.Context, recipientID uint) ([]models.Notification, int64, error) {
	var (
		notes  []models.Notification
		marked int64
	)
	err := s.Transaction(ctx, func(tx *Store) error {
		notes = []models.Notification{}
		err := tx.conn(ctx).Preload("Actor").
			Where("recipient_id = ?", recipientID).
			Order("created_at DESC, id DESC").
			Find(&notes).Error
		if err != nil {
			return fmt.Errorf("list notifications for %d: %w", recipientID, err)
		}

		var unread []uint
		for _, n := range notes {
			if !n.IsRead {
				unread = append(unread, n.ID)
			}
		}
		if len(unread) == 0 {
			return nil
		}

		res := tx.conn(ctx).Model(&models.Notification{}).
			Where("id IN ? AND is_read = ?", unread, false).
			Update("is_read", true)
		if res.Error != nil {
			return fmt.Errorf("mark notifications read for %d: %w", recipientID, res.Error)
		}
		marked = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return notes, marked, nil
}

func (s *Store) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count unread notifications for %d: %w", recipientID, err)
	}
	return n, nil
}
