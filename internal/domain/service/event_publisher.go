package service

import (
	"context"
	"time"
)

// OrderPlacedEvent is published after a customer order has been stored on the
// business aggregate. The worker turns it into a dashboard notification and a
// push alert.
type OrderPlacedEvent struct {
	RequestID     string    `json:"request_id,omitempty"` // For distributed tracing
	BusinessID    string    `json:"business_id"`
	OrderID       string    `json:"order_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Items         []string  `json:"items"`
	TotalPrice    string    `json:"total_price"`
	PlacedAt      time.Time `json:"placed_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderPlaced publishes an order event for async processing
	PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
