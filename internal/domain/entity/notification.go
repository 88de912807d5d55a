package entity

import (
	"time"

	"tastelocal/internal/document"
)

// NotificationType classifies a dashboard notification.
type NotificationType string

const (
	NotificationTypeOrder   NotificationType = "order"
	NotificationTypeReview  NotificationType = "review"
	NotificationTypeMessage NotificationType = "message"
)

// IsValid checks if the NotificationType is a valid value.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeOrder, NotificationTypeReview, NotificationTypeMessage:
		return true
	default:
		return false
	}
}

// Notification is an entry in a business owner's notification feed.
type Notification struct {
	ID        string           `json:"id" firestore:"id"`
	Type      NotificationType `json:"type" firestore:"type"`
	Title     string           `json:"title" firestore:"title"`
	Message   string           `json:"message" firestore:"message"`
	Timestamp time.Time        `json:"timestamp" firestore:"timestamp"`
	Read      bool             `json:"read" firestore:"read"`
}

// Document encodes the notification.
func (n Notification) Document() document.Map {
	return document.Map{
		"id":        n.ID,
		"type":      string(n.Type),
		"title":     n.Title,
		"message":   n.Message,
		"timestamp": n.Timestamp,
		"read":      n.Read,
	}
}

// UnreadNotifications returns the notifications not yet read, in feed order.
func UnreadNotifications(notifications []Notification) []Notification {
	unread := make([]Notification, 0, len(notifications))
	for _, n := range notifications {
		if !n.Read {
			unread = append(unread, n)
		}
	}

	return unread
}
