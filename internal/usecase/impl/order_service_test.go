package impl

import (
	"context"
	"net/url"
	"testing"

	deliverycontext "tastelocal/internal/delivery/context"
	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/repository"
	"tastelocal/internal/domain/service"
	mockSvc "tastelocal/internal/mocks/service"
	"tastelocal/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedOrderBusiness(t *testing.T, repo repository.BusinessRepository) {
	t.Helper()

	business := entity.NewBusiness("business_kota", "owner_kota", testEpoch)
	business.Name = "Kota Corner"
	business.Phone = "082 123 4567"
	business.TotalOrders = 2
	require.NoError(t, repo.Create(context.Background(), business))
}

func TestOrderService_PlaceOrder(t *testing.T) {
	registry, repo, _ := newTestRegistry(t)
	seedOrderBusiness(t, repo)
	publisher := mockSvc.NewMockEventPublisher(t)
	srv := NewOrderService(registry, publisher, testLogger())
	ctx := deliverycontext.WithRequestID(context.Background(), "req-42")

	var published *service.OrderPlacedEvent
	publisher.EXPECT().PublishOrderPlaced(ctx, mock.Anything).
		Run(func(_ context.Context, event *service.OrderPlacedEvent) { published = event }).
		Return(nil).Once()

	placed, err := srv.PlaceOrder(ctx, "business_kota", &usecase.PlaceOrderInput{
		CustomerName:  " Thabo ",
		CustomerPhone: "071 555 0000",
		Items:         []string{"Kota", " ", "Coke"},
		TotalPrice:    "45.00",
	})
	require.NoError(t, err)

	assert.Regexp(t, `^order_`, placed.Order.ID)
	assert.Equal(t, entity.OrderStatusPending, placed.Order.Status)
	assert.Equal(t, []string{"Kota", "Coke"}, placed.Order.Items)
	assert.Equal(t, "Thabo", placed.Order.CustomerName)
	assert.Nil(t, placed.Order.Notes)
	assert.NotEmpty(t, placed.WhatsAppURL)

	require.NotNil(t, published)
	assert.Equal(t, "req-42", published.RequestID)
	assert.Equal(t, "business_kota", published.BusinessID)
	assert.Equal(t, placed.Order.ID, published.OrderID)

	business, _, err := repo.FindByID(context.Background(), "business_kota")
	require.NoError(t, err)
	assert.Equal(t, 3, business.TotalOrders)
	require.Len(t, business.Orders, 1)
}

func TestOrderService_PlaceOrderSurvivesPublishFailure(t *testing.T) {
	registry, repo, _ := newTestRegistry(t)
	seedOrderBusiness(t, repo)
	publisher := mockSvc.NewMockEventPublisher(t)
	srv := NewOrderService(registry, publisher, testLogger())
	ctx := context.Background()

	publisher.EXPECT().PublishOrderPlaced(ctx, mock.Anything).Return(errors.New("topic not found")).Once()

	placed, err := srv.PlaceOrder(ctx, "business_kota", &usecase.PlaceOrderInput{
		CustomerName: "Thabo", CustomerPhone: "0715550000", Items: []string{"Kota"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, placed.Order.ID)
}

func TestOrderService_PlaceOrderValidation(t *testing.T) {
	registry, repo, _ := newTestRegistry(t)
	seedOrderBusiness(t, repo)
	srv := NewOrderService(registry, mockSvc.NewMockEventPublisher(t), testLogger())
	ctx := context.Background()

	_, err := srv.PlaceOrder(ctx, "business_kota", &usecase.PlaceOrderInput{CustomerName: "Thabo", Items: []string{"Kota"}})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = srv.PlaceOrder(ctx, "business_kota", &usecase.PlaceOrderInput{CustomerName: "Thabo", CustomerPhone: "1", Items: []string{" "}})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = srv.PlaceOrder(ctx, "business_missing", &usecase.PlaceOrderInput{CustomerName: "Thabo", CustomerPhone: "1", Items: []string{"Kota"}})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestWhatsAppOrderURL(t *testing.T) {
	notes := "No onions"
	business := &entity.Business{Name: "Kota Corner", Phone: "082 123-4567"}
	order := entity.Order{
		ID:           "order_x",
		CustomerName: "Thabo",
		Items:        []string{"Kota", "Coke"},
		TotalPrice:   "45.00",
		Notes:        &notes,
	}

	raw := WhatsAppOrderURL(business, order)
	assert.NotContains(t, raw, "+")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", parsed.Host)
	assert.Equal(t, "/27821234567", parsed.Path)
	assert.Equal(t,
		"Hi Kota Corner, I'd like to place an order (order_x):\n- Kota\n- Coke\nTotal: R45.00\nName: Thabo\nNotes: No onions",
		parsed.Query().Get("text"),
	)

	business.Phone = "+27 82 123 4567"
	parsed, err = url.Parse(WhatsAppOrderURL(business, order))
	require.NoError(t, err)
	assert.Equal(t, "/27821234567", parsed.Path)

	business.Phone = "n/a"
	assert.Empty(t, WhatsAppOrderURL(business, order))
}

func TestOrderEventService_HandleOrderPlaced(t *testing.T) {
	registry, repo, _ := newTestRegistry(t)
	seedOrderBusiness(t, repo)
	notifier := mockSvc.NewMockNotificationService(t)
	srv := NewOrderEventService(registry, notifier, testLogger())
	ctx := context.Background()

	event := &service.OrderPlacedEvent{
		BusinessID:   "business_kota",
		OrderID:      "order_1",
		CustomerName: "Thabo",
		Items:        []string{"Kota", "Coke"},
		TotalPrice:   "45.00",
		PlacedAt:     testEpoch,
	}
	data := map[string]string{"type": "order", "business_id": "business_kota", "order_id": "order_1"}
	notifier.EXPECT().
		SendTopicNotification(ctx, service.BusinessTopic("business_kota"), "New order", "Thabo ordered Kota, Coke (R45.00)", data).
		Return(nil).Twice()

	require.NoError(t, srv.HandleOrderPlaced(ctx, event))
	require.NoError(t, srv.HandleOrderPlaced(ctx, event), "redelivery is harmless")

	business, _, err := repo.FindByID(ctx, "business_kota")
	require.NoError(t, err)
	require.Len(t, business.Notifications, 1)
	assert.Equal(t, "notif_order_1", business.Notifications[0].ID)
	assert.Equal(t, testEpoch, business.Notifications[0].Timestamp.UTC())
	assert.False(t, business.Notifications[0].Read)
}

func TestOrderEventService_HandleOrderPlacedErrors(t *testing.T) {
	registry, repo, _ := newTestRegistry(t)
	seedOrderBusiness(t, repo)
	notifier := mockSvc.NewMockNotificationService(t)
	srv := NewOrderEventService(registry, notifier, testLogger())
	ctx := context.Background()

	err := srv.HandleOrderPlaced(ctx, &service.OrderPlacedEvent{BusinessID: "business_kota"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	err = srv.HandleOrderPlaced(ctx, &service.OrderPlacedEvent{BusinessID: "business_gone", OrderID: "order_1"})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	notifier.EXPECT().SendTopicNotification(ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("messaging unavailable")).Once()
	err = srv.HandleOrderPlaced(ctx, &service.OrderPlacedEvent{BusinessID: "business_kota", OrderID: "order_2", Items: []string{"Kota"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "messaging unavailable")
}
