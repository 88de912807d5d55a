package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"tastelocal/internal/domain/service"

	"github.com/pkg/errors"
)

// Message attribute keys.
const (
	AttrEventType  = "event_type"
	AttrBusinessID = "business_id"
	AttrOrderID    = "order_id"
	AttrRequestID  = "request_id"
)

// EventTypeOrderPlaced marks OrderPlacedEvent payloads.
const EventTypeOrderPlaced = "order.placed"

// PushMessage represents the structure of a Pub/Sub push message.
// This mimics the format Google Pub/Sub uses when pushing to HTTP endpoints.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

func orderAttributes(event *service.OrderPlacedEvent) map[string]string {
	attributes := map[string]string{
		AttrEventType:  EventTypeOrderPlaced,
		AttrBusinessID: event.BusinessID,
		AttrOrderID:    event.OrderID,
	}
	if event.RequestID != "" {
		attributes[AttrRequestID] = event.RequestID
	}

	return attributes
}

// NewOrderPushMessage wraps an order event the way a push subscription delivers it.
func NewOrderPushMessage(event *service.OrderPlacedEvent, subscription string, publishedAt time.Time) (*PushMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	msg := &PushMessage{Subscription: subscription}
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.Attributes = orderAttributes(event)
	msg.Message.MessageID = event.OrderID
	msg.Message.PublishTime = publishedAt.UTC().Format(time.RFC3339)

	return msg, nil
}

// DecodeOrderPlaced extracts the order event carried by a push message.
func (m *PushMessage) DecodeOrderPlaced() (*service.OrderPlacedEvent, error) {
	if eventType := m.Message.Attributes[AttrEventType]; eventType != "" && eventType != EventTypeOrderPlaced {
		return nil, errors.Errorf("unexpected event type %q", eventType)
	}

	data, err := base64.StdEncoding.DecodeString(m.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode message data")
	}

	var event service.OrderPlacedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(err, "failed to parse order event")
	}
	if event.BusinessID == "" || event.OrderID == "" {
		return nil, errors.New("order event without business or order id")
	}

	return &event, nil
}
