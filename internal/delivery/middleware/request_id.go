package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "tastelocal/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// headerCloudTrace is set by Google front ends as "TRACE_ID/SPAN_ID;o=OPTIONS".
const headerCloudTrace = "X-Cloud-Trace-Context"

// RequestIDMiddleware generates or extracts a unique Request ID for each request and creates a request-scoped logger
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// NewRequestIDMiddleware creates a new Request ID middleware
func NewRequestIDMiddleware(logger *slog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger: logger,
	}
}

// Process resolves the request id, echoes it in the response headers and
// stores it with a child logger on the request context.
func (m *RequestIDMiddleware) Process(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		reqLogger := m.logger.With(slog.String("request_id", requestID))

		ctx := c.Request().Context()
		ctx = deliverycontext.WithRequestID(ctx, requestID)
		ctx = deliverycontext.WithLogger(ctx, reqLogger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// requestIDFrom prefers the client's X-Request-Id, then the Cloud trace id,
// and generates one otherwise.
func requestIDFrom(c echo.Context) string {
	header := c.Request().Header
	if requestID := strings.TrimSpace(header.Get(deliverycontext.HeaderXRequestID)); requestID != "" {
		return requestID
	}
	if trace, _, _ := strings.Cut(header.Get(headerCloudTrace), "/"); strings.TrimSpace(trace) != "" {
		return strings.TrimSpace(trace)
	}

	return uuid.New().String()
}
