package social

import (
	"context"

	"socialfeed/internal/models"
	"socialfeed/internal/store"
)

type Notifications struct {
	store *store.Store
}

func NewNotifications(s *store.Store) *Notifications {
	return &Notifications{store: s}
}

// ListAndMarkRead returns the recipient's full notification history, newest
// first, and marks the returned unread ones as read. Read notifications stay
// in later listings; IsRead on the result reflects the state before marking.
func (n *Notifications) ListAndMarkRead(ctx context.Context, recipientID uint) ([]models.Notification, int64, error) {
	return n.store.ListAndMarkRead(ctx, recipientID)
}

func (n *Notifications) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return n.store.UnreadCount(ctx, recipientID)
}
