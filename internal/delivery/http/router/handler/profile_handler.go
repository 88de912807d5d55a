package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "tastelocal/internal/delivery/context"
	"tastelocal/internal/delivery/http/response"
	"tastelocal/internal/domain/entity"
	"tastelocal/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// ProfileHandler holds dependencies for the signed-in user's own profile.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// RegisterRequest represents the request body for completing a sign up
type RegisterRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Role  string  `json:"role" validate:"required,oneof=customer business_owner"`
}

// UpdateProfileRequest represents the request body for editing a profile.
// An empty phone or location clears it.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=200"`
}

// UpdateAvatarRequest represents the request body for setting an avatar
type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatarUrl" validate:"required,url"`
}

// Register handles POST /auth/register
func (h *ProfileHandler) Register(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "CONTEXT_ERROR", "Identity not found in context")
	}

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	profile, err := h.profileUC.Register(c.Request().Context(), identity, &usecase.RegisterInput{
		Name:  req.Name,
		Phone: req.Phone,
		Role:  entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, profile, "User registered successfully")
}

// GetProfile handles GET /me
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "CONTEXT_ERROR", "Identity not found in context")
	}

	profile, err := h.profileUC.GetProfile(c.Request().Context(), identity.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}

// UpdateProfile handles PATCH /me
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "CONTEXT_ERROR", "Identity not found in context")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	profile, err := h.profileUC.UpdateProfile(c.Request().Context(), identity.UserID, &usecase.UpdateProfileInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Location: req.Location,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated")
}

// UpdateAvatar handles POST /me/avatar
func (h *ProfileHandler) UpdateAvatar(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "CONTEXT_ERROR", "Identity not found in context")
	}

	var req UpdateAvatarRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid avatar input")
	}
	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err.Error())
	}

	profile, err := h.profileUC.UpdateAvatar(c.Request().Context(), identity.UserID, req.AvatarURL)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Avatar updated")
}

// SyncEmailVerification handles POST /me/email-verification/sync. The flag is
// taken from the verified token, never from the request body.
func (h *ProfileHandler) SyncEmailVerification(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return response.Unauthorized(c, "CONTEXT_ERROR", "Identity not found in context")
	}

	profile, err := h.profileUC.SyncEmailVerification(c.Request().Context(), identity.UserID, identity.EmailVerified)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}
