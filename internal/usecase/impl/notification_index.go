package impl

import (
	"context"

	"tastelocal/internal/domain/entity"
	"tastelocal/internal/usecase"
)

// notificationIndex implements the NotificationIndex interface.
type notificationIndex struct {
	store usecase.BusinessStore
}

// NewNotificationIndex returns the unread view over the store's notifications.
func NewNotificationIndex(store usecase.BusinessStore) usecase.NotificationIndex {
	return &notificationIndex{store: store}
}

func (idx *notificationIndex) Unread() ([]entity.Notification, error) {
	business, err := idx.store.Business()
	if err != nil {
		return nil, err
	}

	return entity.UnreadNotifications(business.Notifications), nil
}

func (idx *notificationIndex) UnreadCount() (int, error) {
	unread, err := idx.Unread()
	if err != nil {
		return 0, err
	}

	return len(unread), nil
}

func (idx *notificationIndex) MarkAsRead(ctx context.Context, id string) error {
	return idx.store.MarkNotificationAsRead(ctx, id)
}
