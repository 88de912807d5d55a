package mutation

import (
	"time"

	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
)

// AddNotification puts a notification at the top of the feed.
type AddNotification struct {
	Notification entity.Notification
}

func (AddNotification) Name() string     { return "addNotification" }
func (AddNotification) Fields() []string { return []string{entity.FieldNotifications} }

func (c AddNotification) Apply(current *entity.Business, now time.Time) (*entity.Business, error) {
	n := c.Notification
	n.ID = newID(PrefixNotification, n.ID)
	if !n.Type.IsValid() {
		return nil, domainerrors.Validation("unknown notification type " + string(n.Type))
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = now
	}
	if indexOf(current.Notifications, func(x entity.Notification) bool { return x.ID == n.ID }) >= 0 || current.IsDeleted(entity.FieldNotifications, n.ID) {
		return nil, duplicate("notification", n.ID)
	}

	next := current.Copy()
	next.Notifications = prepend(n, current.Notifications)

	return next, nil
}

// MarkNotificationRead flags one notification as read.
type MarkNotificationRead struct {
	ID string
}

func (MarkNotificationRead) Name() string     { return "markNotificationAsRead" }
func (MarkNotificationRead) Fields() []string { return []string{entity.FieldNotifications} }

func (c MarkNotificationRead) Apply(current *entity.Business, _ time.Time) (*entity.Business, error) {
	i := indexOf(current.Notifications, func(n entity.Notification) bool { return n.ID == c.ID })
	if i < 0 {
		return nil, notFound("notification", c.ID)
	}

	n := current.Notifications[i]
	n.Read = true

	next := current.Copy()
	next.Notifications = replaceAt(current.Notifications, i, n)

	return next, nil
}
