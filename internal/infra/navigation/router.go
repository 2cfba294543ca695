// Package navigation keeps the client's current route. Session changes drive it
// and the presentation layer reads it.
package navigation

import (
	"context"
	"log/slog"
	"sync"

	"medapp/internal/domain/service"
	"medapp/internal/util"

	"github.com/pkg/errors"
)

// Router is an in-process route holder.
type Router struct {
	mu      sync.Mutex
	current string
	logger  *slog.Logger
	changes *util.Broadcaster[string]
}

var _ service.Navigator = (*Router)(nil)

// NewRouter creates a router positioned at initial.
func NewRouter(initial string, logger *slog.Logger) *Router {
	return &Router{
		current: initial,
		logger:  logger,
		changes: util.NewBroadcasterWith(initial),
	}
}

// Navigate implements service.Navigator.
func (r *Router) Navigate(ctx context.Context, route string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if route == "" {
		return errors.New("empty route")
	}

	r.mu.Lock()
	from := r.current
	r.current = route
	r.changes.Publish(route)
	r.mu.Unlock()

	r.logger.Debug("Navigated", slog.String("from", from), slog.String("to", route))

	return nil
}

// Current implements service.Navigator.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.current
}

// Watch registers fn for route changes, starting with the current route.
func (r *Router) Watch(fn func(route string)) (unsubscribe func()) {
	return r.changes.Subscribe(fn)
}

// Close stops route notifications.
func (r *Router) Close() {
	r.changes.Close()
}
