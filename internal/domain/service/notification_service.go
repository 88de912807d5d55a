package service

import (
	"context"
)

// BusinessTopic is the push topic every device of a business owner subscribes to.
func BusinessTopic(businessID string) string {
	return "business_" + businessID
}

// NotificationService defines the interface for push notification services
type NotificationService interface {
	// SendTopicNotification sends a push notification to every device subscribed to topic
	SendTopicNotification(ctx context.Context, topic, title, body string, data map[string]string) error
}
