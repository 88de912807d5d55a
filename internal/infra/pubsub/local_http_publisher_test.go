package pubsub

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tastelocal/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() *service.OrderPlacedEvent {
	return &service.OrderPlacedEvent{
		RequestID:    "req-1",
		BusinessID:   "business_1",
		OrderID:      "order_1",
		CustomerName: "Thabo",
		Items:        []string{"Kota", "Chips"},
		TotalPrice:   "85",
		PlacedAt:     time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_DeliversPushMessage(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.DiscardHandler))
	require.NoError(t, publisher.PublishOrderPlaced(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, EventTypeOrderPlaced, received.Message.Attributes[AttrEventType])

	event, err := received.DecodeOrderPlaced()
	require.NoError(t, err)
	assert.Equal(t, testEvent(), event)
}

func TestLocalHTTPPublisher_WorkerFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.DiscardHandler))
	assert.Error(t, publisher.PublishOrderPlaced(context.Background(), testEvent()))
}

func TestDecodeOrderPlaced_Rejects(t *testing.T) {
	msg := &PushMessage{}
	msg.Message.Data = "%%%"
	_, err := msg.DecodeOrderPlaced()
	assert.Error(t, err)

	other, err := NewOrderPushMessage(testEvent(), "sub", time.Now())
	require.NoError(t, err)
	other.Message.Attributes[AttrEventType] = "review.posted"
	_, err = other.DecodeOrderPlaced()
	assert.Error(t, err)

	missing, err := NewOrderPushMessage(&service.OrderPlacedEvent{BusinessID: "business_1"}, "sub", time.Now())
	require.NoError(t, err)
	_, err = missing.DecodeOrderPlaced()
	assert.Error(t, err)
}
