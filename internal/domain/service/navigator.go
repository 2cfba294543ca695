package service

import "context"

// Navigator performs the navigation side effects of session changes.
type Navigator interface {
	// Navigate replaces the current route.
	Navigate(ctx context.Context, route string) error

	// Current returns the active route.
	Current() string
}
