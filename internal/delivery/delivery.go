// Package delivery holds the transports that expose the application.
package delivery

import "context"

// Delivery is a server started by the process entrypoint.
type Delivery interface {
	// Serve blocks until the server stops.
	Serve(ctx context.Context) error
}
