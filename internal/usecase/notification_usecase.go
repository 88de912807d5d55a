package usecase

import (
	"context"

	"tastelocal/internal/domain/entity"
	"tastelocal/internal/domain/service"
)

// NotificationIndex is the unread view over the notification feed of one
// business. It reads the current state on every call.
type NotificationIndex interface {
	Unread() ([]entity.Notification, error)
	UnreadCount() (int, error)
	MarkAsRead(ctx context.Context, id string) error
}

// OrderEventUsecase reacts to order events delivered to the worker.
type OrderEventUsecase interface {
	// HandleOrderPlaced records an order notification on the business and
	// alerts the owner's devices. Redelivered events are recorded once.
	HandleOrderPlaced(ctx context.Context, event *service.OrderPlacedEvent) error
}
