package impl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	deliverycontext "tastelocal/internal/delivery/context"
	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/service"
	"tastelocal/internal/usecase"

	"github.com/pkg/errors"
)

const whatsAppBaseURL = "https://wa.me/"

// orderService implements the OrderUsecase interface.
type orderService struct {
	registry  usecase.StoreRegistry
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	registry usecase.StoreRegistry,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		registry:  registry,
		publisher: publisher,
		logger:    logger,
	}
}

func (srv *orderService) loggerFrom(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder stores the order on the business and announces it. The order is
// kept even when the event cannot be published.
func (srv *orderService) PlaceOrder(ctx context.Context, businessID string, input *usecase.PlaceOrderInput) (*usecase.PlacedOrder, error) {
	if strings.TrimSpace(input.CustomerName) == "" || strings.TrimSpace(input.CustomerPhone) == "" {
		return nil, errors.WithStack(domainerrors.Validation("customer name and phone are required"))
	}

	items := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, errors.WithStack(domainerrors.Validation("an order needs at least one item"))
	}

	store, err := srv.registry.Get(ctx, businessID)
	if err != nil {
		return nil, err
	}

	order, err := store.AddOrder(ctx, entity.Order{
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		Items:         items,
		TotalPrice:    strings.TrimSpace(input.TotalPrice),
		Status:        entity.OrderStatusPending,
		Notes:         trimmedOrNil(input.Notes),
	})
	if err != nil {
		return nil, err
	}

	logger := srv.loggerFrom(ctx)
	event := &service.OrderPlacedEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		BusinessID:    businessID,
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Items:         order.Items,
		TotalPrice:    order.TotalPrice,
		PlacedAt:      order.Timestamp,
	}
	if err := srv.publisher.PublishOrderPlaced(ctx, event); err != nil {
		logger.Error("Failed to publish order event",
			slog.String("business_id", businessID),
			slog.String("order_id", order.ID),
			slog.Any("error", err),
		)
	}

	placed := &usecase.PlacedOrder{Order: order}
	if business, err := store.Business(); err == nil {
		placed.WhatsAppURL = WhatsAppOrderURL(business, order)
	}

	logger.Info("Placed order",
		slog.String("business_id", businessID),
		slog.String("order_id", order.ID),
	)

	return placed, nil
}

// WhatsAppOrderURL builds a wa.me link that opens a chat with the business
// prefilled with the order. Local numbers starting with 0 are given the 27
// country code. It returns "" when the business has no usable phone number.
func WhatsAppOrderURL(business *entity.Business, order entity.Order) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, business.Phone)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, "0") {
		digits = "27" + strings.TrimPrefix(digits, "0")
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s, I'd like to place an order (%s):\n", business.Name, order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&text, "- %s\n", item)
	}
	if order.TotalPrice != "" {
		fmt.Fprintf(&text, "Total: R%s\n", order.TotalPrice)
	}
	fmt.Fprintf(&text, "Name: %s", order.CustomerName)
	if order.Notes != nil {
		fmt.Fprintf(&text, "\nNotes: %s", *order.Notes)
	}

	return whatsAppBaseURL + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(text.String()), "+", "%20")
}

// orderEventService implements the OrderEventUsecase interface.
type orderEventService struct {
	registry usecase.StoreRegistry
	notifier service.NotificationService
	logger   *slog.Logger
}

// NewOrderEventService is the constructor for orderEventService.
func NewOrderEventService(
	registry usecase.StoreRegistry,
	notifier service.NotificationService,
	logger *slog.Logger,
) usecase.OrderEventUsecase {
	return &orderEventService{
		registry: registry,
		notifier: notifier,
		logger:   logger,
	}
}

// HandleOrderPlaced adds one notification per order, keyed by the order id so
// that a redelivered event is not recorded twice, then sends the push alert.
func (srv *orderEventService) HandleOrderPlaced(ctx context.Context, event *service.OrderPlacedEvent) error {
	if event.BusinessID == "" || event.OrderID == "" {
		return errors.WithStack(domainerrors.Validation("business_id and order_id are required"))
	}

	store, err := srv.registry.Get(ctx, event.BusinessID)
	if err != nil {
		return err
	}

	title := "New order"
	message := fmt.Sprintf("%s ordered %s", event.CustomerName, strings.Join(event.Items, ", "))
	if event.TotalPrice != "" {
		message += " (R" + event.TotalPrice + ")"
	}

	notificationID := "notif_" + event.OrderID
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger).With(
		slog.String("business_id", event.BusinessID),
		slog.String("order_id", event.OrderID),
	)

	if !hasNotification(store, notificationID) {
		_, err := store.AddNotification(ctx, entity.Notification{
			ID:        notificationID,
			Type:      entity.NotificationTypeOrder,
			Title:     title,
			Message:   message,
			Timestamp: event.PlacedAt,
		})
		if err != nil && !(errors.Is(err, domainerrors.ErrValidationFailed) && hasNotification(store, notificationID)) {
			return errors.Wrap(err, "failed to add order notification")
		}
	} else {
		logger.Info("Order notification already recorded")
	}

	data := map[string]string{
		"type":        string(entity.NotificationTypeOrder),
		"business_id": event.BusinessID,
		"order_id":    event.OrderID,
	}
	if err := srv.notifier.SendTopicNotification(ctx, service.BusinessTopic(event.BusinessID), title, message, data); err != nil {
		return errors.Wrap(err, "failed to send order push notification")
	}

	logger.Info("Handled order event")

	return nil
}

func hasNotification(store usecase.BusinessStore, id string) bool {
	business, err := store.Business()
	if err != nil {
		return false
	}
	for _, n := range business.Notifications {
		if n.ID == id {
			return true
		}
	}

	return false
}
