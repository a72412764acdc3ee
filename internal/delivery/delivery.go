// Package delivery defines the contract implemented by every transport entrypoint.
package delivery

import "context"

// Delivery is a serving surface (e.g. an HTTP server) started from main.
type Delivery interface {
	// Serve blocks, serving requests until the context is canceled or the
	// underlying listener fails.
	Serve(ctx context.Context) error
}
