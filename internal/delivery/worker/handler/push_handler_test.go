package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tastelocal/config"
	deliverycontext "tastelocal/internal/delivery/context"
	"tastelocal/internal/domain/constants"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/service"
	"tastelocal/internal/infra/pubsub"
	mockUC "tastelocal/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

func testEvent() *service.OrderPlacedEvent {
	return &service.OrderPlacedEvent{
		RequestID:    "req-1",
		BusinessID:   "business_1",
		OrderID:      "order_1",
		CustomerName: "Lerato",
		Items:        []string{"Kota"},
		TotalPrice:   "45",
		PlacedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func newTestPushHandler(t *testing.T) (*PushHandler, *mockUC.MockOrderEventUsecase) {
	t.Helper()

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Env.Env = constants.EnvDevelop
	uc := mockUC.NewMockOrderEventUsecase(t)

	return NewPushHandler(PushHandlerParams{
		Config:       cfg,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		OrderEventUC: uc,
	}), uc
}

func push(t *testing.T, h *PushHandler, body []byte, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.POST("/push", h.HandlePush)

	req := httptest.NewRequest(http.MethodPost, "/push", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range header {
		req.Header[key] = values
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func encodedEvent(t *testing.T, event *service.OrderPlacedEvent) []byte {
	t.Helper()

	msg, err := pubsub.NewOrderPushMessage(event, "projects/p/subscriptions/order-placed-sub", time.Now())
	require.NoError(t, err)
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return body
}

func TestPushHandler_HandlesOrderEvent(t *testing.T) {
	h, uc := newTestPushHandler(t)

	uc.EXPECT().HandleOrderPlaced(mock.Anything, mock.MatchedBy(func(event *service.OrderPlacedEvent) bool {
		return event.BusinessID == "business_1" && event.OrderID == "order_1"
	})).Run(func(ctx context.Context, _ *service.OrderPlacedEvent) {
		assert.Equal(t, "req-1", deliverycontext.GetRequestIDFromContext(ctx))
	}).Return(nil).Once()

	rec := push(t, h, encodedEvent(t, testEvent()), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_ResultCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "write failure is retried", err: domainerrors.NewWriteError(errors.New("deadline exceeded"), "addNotification"), wantCode: http.StatusServiceUnavailable},
		{name: "push failure is retried", err: errors.New("fcm unavailable"), wantCode: http.StatusServiceUnavailable},
		{name: "unknown business is dropped", err: errors.WithStack(domainerrors.NotFound("business business_1 not found")), wantCode: http.StatusOK},
		{name: "invalid event is dropped", err: errors.WithStack(domainerrors.Validation("business_id and order_id are required")), wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, uc := newTestPushHandler(t)
			uc.EXPECT().HandleOrderPlaced(mock.Anything, mock.Anything).Return(tt.err).Once()

			rec := push(t, h, encodedEvent(t, testEvent()), nil)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestPushHandler_MalformedMessages(t *testing.T) {
	h, _ := newTestPushHandler(t)

	rec := push(t, h, []byte("{not json"), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var msg pubsub.PushMessage
	msg.Message.Data = "!!not base64!!"
	body, err := json.Marshal(msg)
	require.NoError(t, err)

	// Acknowledged, the usecase is never reached
	rec = push(t, h, body, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPushHandler_ExtractRequestID(t *testing.T) {
	h, _ := newTestPushHandler(t)

	var msg pubsub.PushMessage
	event := &service.OrderPlacedEvent{RequestID: "from-event"}
	assert.Equal(t, "from-event", h.extractRequestID(context.Background(), &msg, event))

	msg.Message.Attributes = map[string]string{pubsub.AttrRequestID: "from-attributes"}
	assert.Equal(t, "from-attributes", h.extractRequestID(context.Background(), &msg, event))

	ctx := deliverycontext.WithRequestID(context.Background(), "from-context")
	assert.Equal(t, "from-context", h.extractRequestID(ctx, &pubsub.PushMessage{}, &service.OrderPlacedEvent{}))

	assert.NotEmpty(t, h.extractRequestID(context.Background(), &pubsub.PushMessage{}, &service.OrderPlacedEvent{}))
}

func TestPushHandler_VerifiesPushToken(t *testing.T) {
	h, uc := newTestPushHandler(t)
	h.verifyPushAuth = true
	h.audience = "https://worker.example.com/push"

	var gotAudience string
	h.validate = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		gotAudience = audience
		switch token {
		case "good":
			return &idtoken.Payload{Issuer: "https://accounts.google.com", Claims: map[string]any{"email_verified": true}}, nil
		case "foreign":
			return &idtoken.Payload{Issuer: "https://example.com"}, nil
		default:
			return nil, errors.New("bad signature")
		}
	}

	body := encodedEvent(t, testEvent())

	rec := push(t, h, body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	for _, token := range []string{"forged", "foreign"} {
		rec = push(t, h, body, http.Header{echo.HeaderAuthorization: {"Bearer " + token}})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, token)
	}

	uc.EXPECT().HandleOrderPlaced(mock.Anything, mock.Anything).Return(nil).Once()
	rec = push(t, h, body, http.Header{echo.HeaderAuthorization: {"Bearer good"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://worker.example.com/push", gotAudience)
}
