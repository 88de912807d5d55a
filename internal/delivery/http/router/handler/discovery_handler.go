package handler

import (
	"log/slog"
	"net/http"

	"tastelocal/internal/delivery/http/response"
	"tastelocal/internal/domain/entity"
	"tastelocal/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// DiscoveryHandlerParams holds dependencies for DiscoveryHandler, injected by Fx.
type DiscoveryHandlerParams struct {
	fx.In

	DiscoveryUC usecase.DiscoveryUsecase
	OrderUC     usecase.OrderUsecase
	Logger      *slog.Logger
}

// DiscoveryHandler serves the public business listing, profiles and order placement.
type DiscoveryHandler struct {
	discoveryUC usecase.DiscoveryUsecase
	orderUC     usecase.OrderUsecase
	logger      *slog.Logger
}

// NewDiscoveryHandler is the constructor for DiscoveryHandler
func NewDiscoveryHandler(params DiscoveryHandlerParams) *DiscoveryHandler {
	return &DiscoveryHandler{
		discoveryUC: params.DiscoveryUC,
		orderUC:     params.OrderUC,
		logger:      params.Logger,
	}
}

// PlaceOrderRequest represents the request body for placing an order
type PlaceOrderRequest struct {
	CustomerName  string   `json:"customerName" validate:"required,max=100"`
	CustomerPhone string   `json:"customerPhone" validate:"required,max=30"`
	Items         []string `json:"items" validate:"required,min=1,dive,required"`
	TotalPrice    string   `json:"totalPrice" validate:"max=20"`
	Notes         *string  `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ListBusinesses handles GET /businesses?q=&cuisine=&lat=&lng=&radiusKm=
func (h *DiscoveryHandler) ListBusinesses(c echo.Context) error {
	filter := &usecase.DiscoveryFilter{}
	var lat, lng float64
	err := echo.QueryParamsBinder(c).
		String("q", &filter.Query).
		String("cuisine", &filter.Cuisine).
		Float64("lat", &lat).
		Float64("lng", &lng).
		Float64("radiusKm", &filter.RadiusKm).
		BindError()
	if err != nil {
		return response.BindingError(c, "INVALID_QUERY", "Invalid search parameters")
	}

	hasLat, hasLng := c.QueryParam("lat") != "", c.QueryParam("lng") != ""
	switch {
	case hasLat != hasLng:
		return response.ValidationError(c, "lat and lng must be given together")
	case hasLat && (lat < -90 || lat > 90 || lng < -180 || lng > 180):
		return response.ValidationError(c, "lat or lng out of range")
	case filter.RadiusKm < 0:
		return response.ValidationError(c, "radiusKm must not be negative")
	case hasLat:
		filter.Near = &entity.Coordinates{Lat: lat, Lng: lng}
	}

	businesses, err := h.discoveryUC.Search(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, businesses, "")
}

// GetBusiness handles GET /businesses/:id
func (h *DiscoveryHandler) GetBusiness(c echo.Context) error {
	business, err := h.discoveryUC.GetBusiness(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, business, "")
}

// GetQRCode handles GET /businesses/:id/qrcode and answers with a PNG image.
func (h *DiscoveryHandler) GetQRCode(c echo.Context) error {
	png, err := h.discoveryUC.ProfileQRCode(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=86400")

	return c.Blob(http.StatusOK, "image/png", png)
}

// PlaceOrder handles POST /businesses/:id/orders
func (h *DiscoveryHandler) PlaceOrder(c echo.Context) error {
	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	placed, err := h.orderUC.PlaceOrder(c.Request().Context(), c.Param("id"), &usecase.PlaceOrderInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         req.Items,
		TotalPrice:    req.TotalPrice,
		Notes:         req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, placed, "Order placed")
}
