package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "tastelocal/internal/delivery/context"
	"tastelocal/internal/delivery/http/response"
	"tastelocal/internal/domain/service"
	"tastelocal/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const keyBusinessStore = "business_store"

// AuthMiddleware authenticates identity provider ID tokens and resolves the
// business an owner manages.
type AuthMiddleware struct {
	verifier  service.IdentityVerifier
	dashboard usecase.DashboardUsecase
	logger    *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(verifier service.IdentityVerifier, dashboard usecase.DashboardUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:  verifier,
		dashboard: dashboard,
		logger:    logger,
	}
}

// Authenticate verifies the Bearer token and stores the identity for handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		identity, err := m.verifier.VerifyIDToken(c.Request().Context(), strings.TrimSpace(token))
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected ID token", slog.Any("error", err))

			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		deliverycontext.SetIdentity(c, identity)

		return next(c)
	}
}

// RequireBusinessOwner must run after Authenticate. It binds the owner's
// business store, waiting for its first snapshot, and rejects everyone else.
func (m *AuthMiddleware) RequireBusinessOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := deliverycontext.GetIdentity(c)
		if !ok {
			return response.Unauthorized(c, "CONTEXT_ERROR", "Identity not found in context")
		}

		store, err := m.dashboard.StoreForUser(c.Request().Context(), identity.UserID)
		if err != nil {
			return errors.WithStack(err)
		}
		c.Set(keyBusinessStore, store)

		return next(c)
	}
}

// GetBusinessStore returns the store bound by RequireBusinessOwner.
func GetBusinessStore(c echo.Context) (usecase.BusinessStore, bool) {
	store, ok := c.Get(keyBusinessStore).(usecase.BusinessStore)

	return store, ok && store != nil
}
