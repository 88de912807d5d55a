package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tastelocal/internal/delivery/http/middleware"
	"tastelocal/internal/delivery/http/response"
	"tastelocal/internal/domain/entity"
	domainerrors "tastelocal/internal/domain/errors"
	"tastelocal/internal/domain/mutation"
	"tastelocal/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// DashboardHandlerParams holds dependencies for DashboardHandler, injected by Fx.
type DashboardHandlerParams struct {
	fx.In

	DashboardUC usecase.DashboardUsecase
	Logger      *slog.Logger
}

// DashboardHandler serves the business owner's dashboard. Every route runs
// behind RequireBusinessOwner, so the bound store is always present.
type DashboardHandler struct {
	dashboardUC usecase.DashboardUsecase
	logger      *slog.Logger
	heartbeat   time.Duration
}

// NewDashboardHandler is the constructor for DashboardHandler
func NewDashboardHandler(params DashboardHandlerParams) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: params.DashboardUC,
		logger:      params.Logger,
		heartbeat:   15 * time.Second,
	}
}

// DashboardResponse is the owner's view of their business.
type DashboardResponse struct {
	Business    *entity.Business `json:"business"`
	SyncState   string           `json:"syncState"`
	Revision    uint64           `json:"revision"`
	UnreadCount int              `json:"unreadCount"`
}

// BusinessProfileRequest represents the onboarding form of a business
type BusinessProfileRequest struct {
	BusinessName string              `json:"businessName" validate:"required,max=100"`
	Phone        string              `json:"phone" validate:"required,max=30"`
	Location     string              `json:"location" validate:"required,max=200"`
	Description  string              `json:"description" validate:"max=2000"`
	Cuisine      string              `json:"cuisine" validate:"max=50"`
	Coordinates  *CoordinatesRequest `json:"coordinates,omitempty"`
}

// CoordinatesRequest is a WGS84 position
type CoordinatesRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// MenuItemRequest represents the request body for adding a menu item
type MenuItemRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Price       string  `json:"price" validate:"max=20"`
	Category    string  `json:"category" validate:"max=50"`
	Available   *bool   `json:"available,omitempty"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
}

// MenuItemPatchRequest represents the request body for editing a menu item
type MenuItemPatchRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Price       *string `json:"price,omitempty" validate:"omitempty,max=20"`
	Category    *string `json:"category,omitempty" validate:"omitempty,max=50"`
	Available   *bool   `json:"available,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// OrderStatusRequest represents the request body for moving an order along
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// HoursRequest represents the weekly opening hours table
type HoursRequest struct {
	Hours []entity.BusinessHours `json:"hours" validate:"required"`
}

// NotificationRequest represents the request body for adding a notification
type NotificationRequest struct {
	Type    string `json:"type" validate:"required,oneof=order review message"`
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=1000"`
}

// BlogPostRequest represents the request body for writing a blog post
type BlogPostRequest struct {
	Title     string  `json:"title" validate:"required,max=200"`
	Content   string  `json:"content" validate:"required"`
	Excerpt   string  `json:"excerpt" validate:"max=500"`
	Image     *string `json:"image,omitempty" validate:"omitempty,url"`
	Author    string  `json:"author" validate:"max=100"`
	Published bool    `json:"published"`
}

// BlogPostPatchRequest represents the request body for editing a blog post
type BlogPostPatchRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Content   *string `json:"content,omitempty"`
	Excerpt   *string `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Image     *string `json:"image,omitempty"`
	Published *bool   `json:"published,omitempty"`
}

// GetDashboard handles GET /dashboard
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	view := store.View()
	business, err := store.Business()
	if err != nil {
		return errors.WithStack(err)
	}
	unread, err := h.dashboardUC.Notifications(store).UnreadCount()
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, DashboardResponse{
		Business:    business,
		SyncState:   store.State().String(),
		Revision:    view.Revision,
		UnreadCount: unread,
	}, "")
}

// StreamEvent is one server-sent snapshot of the dashboard.
type StreamEvent struct {
	Revision  uint64           `json:"revision"`
	Version   time.Time        `json:"version"`
	SyncState string           `json:"syncState"`
	Business  *entity.Business `json:"business"`
}

// Stream handles GET /dashboard/stream. It pushes the current view right away
// and then every committed change until the client goes away.
func (h *DashboardHandler) Stream(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	w := c.Response()
	flusher, ok := w.Writer.(http.Flusher)
	if !ok {
		return errors.New("streaming unsupported")
	}

	// The server write timeout would cut long-lived streams.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprint(w, "retry: 2000\n\n"); err != nil {
		return nil
	}
	flusher.Flush()

	ctx := c.Request().Context()
	views := store.Watch(ctx)
	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return nil
			}
			flusher.Flush()
		case view, ok := <-views:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(StreamEvent{
				Revision:  view.Revision,
				Version:   view.Version,
				SyncState: store.State().String(),
				Business:  view.Business,
			})
			if err != nil {
				h.logger.Error("failed to encode dashboard event", slog.Any("error", err))
				continue
			}
			if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}

// UpdateProfile handles PATCH /dashboard/profile
func (h *DashboardHandler) UpdateProfile(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	var req BusinessProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid business profile input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	profile := mutation.UpdateProfile{
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		Location:     req.Location,
		Description:  req.Description,
		Cuisine:      req.Cuisine,
	}
	if req.Coordinates != nil {
		profile.Coordinates = &entity.Coordinates{Lat: req.Coordinates.Lat, Lng: req.Coordinates.Lng}
	}

	business, err := store.UpdateProfile(c.Request().Context(), profile)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, business, "Business profile updated")
}

// AddMenuItem handles POST /dashboard/menu
func (h *DashboardHandler) AddMenuItem(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	var req MenuItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	item, err := store.AddMenuItem(c.Request().Context(), entity.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Available:   available,
		Image:       req.Image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Menu item added")
}

// UpdateMenuItem handles PATCH /dashboard/menu/:itemId
func (h *DashboardHandler) UpdateMenuItem(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	var req MenuItemPatchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid menu item input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	item, err := store.UpdateMenuItem(c.Request().Context(), c.Param("itemId"), mutation.MenuItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Available:   req.Available,
		Image:       req.Image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item, "Menu item updated")
}

// DeleteMenuItem handles DELETE /dashboard/menu/:itemId
func (h *DashboardHandler) DeleteMenuItem(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	if err := store.DeleteMenuItem(c.Request().Context(), c.Param("itemId")); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateOrderStatus handles PATCH /dashboard/orders/:orderId/status
func (h *DashboardHandler) UpdateOrderStatus(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	var req OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order status input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	status := entity.OrderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if err := store.UpdateOrderStatus(c.Request().Context(), c.Param("orderId"), status); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": string(status)}, "Order status updated")
}

// UpdateHours handles PUT /dashboard/hours
func (h *DashboardHandler) UpdateHours(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	var req HoursRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid hours input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	if err := store.UpdateBusinessHours(c.Request().Context(), req.Hours); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, req.Hours, "Business hours updated")
}

// UnreadNotifications handles GET /dashboard/notifications/unread
func (h *DashboardHandler) UnreadNotifications(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	unread, err := h.dashboardUC.Notifications(store).Unread()
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, unread, "")
}

// AddNotification handles POST /dashboard/notifications
func (h *DashboardHandler) AddNotification(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	var req NotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid notification input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	notification, err := store.AddNotification(c.Request().Context(), entity.Notification{
		Type:    entity.NotificationType(req.Type),
		Title:   req.Title,
		Message: req.Message,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, notification, "Notification added")
}

// MarkNotificationRead handles POST /dashboard/notifications/:id/read
func (h *DashboardHandler) MarkNotificationRead(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	if err := h.dashboardUC.Notifications(store).MarkAsRead(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddBlogPost handles POST /dashboard/blog
func (h *DashboardHandler) AddBlogPost(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	var req BlogPostRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid blog post input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	author := strings.TrimSpace(req.Author)
	if author == "" {
		if business, err := store.Business(); err == nil {
			author = business.Name
		}
	}

	post, err := store.AddBlogPost(c.Request().Context(), entity.BlogPost{
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Image:     req.Image,
		Author:    author,
		Published: req.Published,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, post, "Blog post added")
}

// UpdateBlogPost handles PATCH /dashboard/blog/:postId
func (h *DashboardHandler) UpdateBlogPost(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	var req BlogPostPatchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid blog post input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	post, err := store.UpdateBlogPost(c.Request().Context(), c.Param("postId"), mutation.BlogPostPatch{
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		Image:     req.Image,
		Published: req.Published,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, post, "Blog post updated")
}

// DeleteBlogPost handles DELETE /dashboard/blog/:postId
func (h *DashboardHandler) DeleteBlogPost(c echo.Context) error {
	store, err := h.store(c)
	if err != nil {
		return err
	}

	if err := store.DeleteBlogPost(c.Request().Context(), c.Param("postId")); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *DashboardHandler) store(c echo.Context) (usecase.BusinessStore, error) {
	return dashboardStore(c)
}

func dashboardStore(c echo.Context) (usecase.BusinessStore, error) {
	store, ok := middleware.GetBusinessStore(c)
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrForbidden)
	}

	return store, nil
}
