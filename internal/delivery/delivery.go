// Package delivery contains the transports exposing the client core.
package delivery

import "context"

// Delivery is a long-running transport started by the composition root.
type Delivery interface {
	Serve(ctx context.Context) error
}
