package entity

import (
	"time"

	"tastelocal/internal/document"
)

// OrderStatus is the lifecycle position of an order.
type OrderStatus string

// pending → confirmed → preparing → ready → completed, cancelled from any
// non-terminal state. Transitions are not enforced here.
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is expected.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Order is a customer order received by a business.
type Order struct {
	ID            string      `json:"id" firestore:"id"`
	CustomerName  string      `json:"customerName" firestore:"customerName"`
	CustomerPhone string      `json:"customerPhone" firestore:"customerPhone"`
	Items         []string    `json:"items" firestore:"items"`
	TotalPrice    string      `json:"totalPrice" firestore:"totalPrice"`
	Status        OrderStatus `json:"status" firestore:"status"`
	Timestamp     time.Time   `json:"timestamp" firestore:"timestamp"`
	Notes         *string     `json:"notes,omitempty" firestore:"notes,omitempty"`
}

// Document encodes the order.
func (o Order) Document() document.Map {
	items := make([]any, len(o.Items))
	for i, item := range o.Items {
		items[i] = item
	}

	return document.Map{
		"id":            o.ID,
		"customerName":  o.CustomerName,
		"customerPhone": o.CustomerPhone,
		"items":         items,
		"totalPrice":    o.TotalPrice,
		"status":        string(o.Status),
		"timestamp":     o.Timestamp,
		"notes":         document.Optional(o.Notes),
	}
}
