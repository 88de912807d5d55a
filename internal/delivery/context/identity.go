package context

import (
	"context"

	"tastelocal/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// KeyIdentity is the key for storing the authenticated identity.
const KeyIdentity ContextKey = "identity"

// SetIdentity stores the verified identity on both the echo and the request context.
func SetIdentity(c echo.Context, identity *service.Identity) {
	c.Set(string(KeyIdentity), identity)
	c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), identity)))
}

// GetIdentity returns the identity set by the auth middleware.
func GetIdentity(c echo.Context) (*service.Identity, bool) {
	identity, ok := c.Get(string(KeyIdentity)).(*service.Identity)

	return identity, ok && identity != nil
}

// WithIdentity returns a new context with the identity.
func WithIdentity(ctx context.Context, identity *service.Identity) context.Context {
	return context.WithValue(ctx, KeyIdentity, identity)
}

// GetIdentityFromContext returns the identity stored with WithIdentity, or nil.
func GetIdentityFromContext(ctx context.Context) *service.Identity {
	identity, _ := ctx.Value(KeyIdentity).(*service.Identity)

	return identity
}
