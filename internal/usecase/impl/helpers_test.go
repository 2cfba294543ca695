package impl

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"medapp/config"
	"medapp/internal/infra/memory"
	"medapp/internal/infra/navigation"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Navigation.SignInRoute = "/login"
	cfg.Navigation.HomeRoute = "/"
	cfg.Identity.ProfileFetchTimeout = time.Second
	cfg.Identity.SignInTimeout = 2 * time.Second
	cfg.Collections = config.CollectionsConfig{
		Profiles: "users",
		Sellers:  "sellers",
		Cart:     "users/{uid}/cart",
		Wishlist: "users/{uid}/wishlist",
	}
	cfg.Collections.Retry.InitialBackoff = 10 * time.Millisecond
	cfg.Collections.Retry.MaxBackoff = 40 * time.Millisecond
	cfg.Storage.LicensePrefix = "licenses"
	cfg.Storage.MaxLicenseSize = 1 << 10

	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBackend(t *testing.T) *memory.Backend {
	t.Helper()
	backend := memory.New(testConfig().Collections, discardLogger())
	t.Cleanup(backend.Close)

	return backend
}

func newTestRouter(t *testing.T) *navigation.Router {
	t.Helper()
	router := navigation.NewRouter("/", discardLogger())
	t.Cleanup(router.Close)

	return router
}

func addAccount(t *testing.T, backend *memory.Backend, uid, email string) {
	t.Helper()
	_, err := backend.AddAccount(memory.Account{UID: uid, Email: email, Password: "pw", DisplayName: uid})
	require.NoError(t, err)
}

// recorder collects every value a Watch callback receives.
type recorder[T any] struct {
	mu     sync.Mutex
	values []T
}

func (r *recorder[T]) record(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *recorder[T]) all() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]T(nil), r.values...)
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond, msg)
}
