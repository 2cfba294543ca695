package firebase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"medapp/config"
	"medapp/internal/domain/entity"
	domainerrors "medapp/internal/domain/errors"
	"medapp/internal/domain/service"
	"medapp/internal/infra/navigation"
	"medapp/internal/usecase"
	"medapp/internal/usecase/impl"

	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v1"
)

type fakeAdmin struct {
	mu        sync.Mutex
	tokens    map[string]string // id token -> uid
	revokeErr error
	revoked   []string
	createErr error
	deleted   []string
}

func (f *fakeAdmin) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	uid, ok := f.tokens[idToken]
	if !ok {
		return nil, errors.New("invalid token")
	}

	return &auth.Token{UID: uid, Claims: map[string]any{"email": uid + "@example.com"}}, nil
}

func (f *fakeAdmin) RevokeRefreshTokens(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.revokeErr != nil {
		return f.revokeErr
	}
	f.revoked = append(f.revoked, uid)

	return nil
}

func (f *fakeAdmin) CreateUser(_ context.Context, _ *auth.UserToCreate) (*auth.UserRecord, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: "new-uid", Email: "new@example.com", DisplayName: "New"}}, nil
}

func (f *fakeAdmin) DeleteUser(_ context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, uid)

	return nil
}

// identityToolkit mimics the signInWithPassword endpoint.
func identityToolkit(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req identitytoolkit.GoogleCloudIdentitytoolkitV1SignInWithPasswordRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.ReturnSecureToken)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case req.Email == "asha@example.com" && req.Password == "pw":
			_ = json.NewEncoder(w).Encode(identitytoolkit.GoogleCloudIdentitytoolkitV1SignInWithPasswordResponse{
				LocalId: "u1", Email: req.Email, DisplayName: "Asha", IdToken: "token-u1",
			})
		case req.Email == "off@example.com":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"code":400,"message":"USER_DISABLED"}}`)
		case req.Email == "busy@example.com":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"code":400,"message":"TOO_MANY_ATTEMPTS_TRY_LATER : Access disabled"}}`)
		case req.Email == "broken@example.com":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `not json`)
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`)
		}
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newTestAuthService(t *testing.T, admin *fakeAdmin, opts ...func(*config.FirebaseConfig)) *AuthService {
	t.Helper()
	srv := identityToolkit(t)
	cfg := &config.FirebaseConfig{APIKey: "test-key", AuthEndpoint: srv.URL + "/"}
	for _, opt := range opts {
		opt(cfg)
	}

	svc, err := newAuthService(context.Background(), admin, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	return svc
}

func withRevokeOnSignOut(cfg *config.FirebaseConfig) {
	cfg.RevokeOnSignOut = true
}

func TestAuthService_SignInAndOut(t *testing.T) {
	admin := &fakeAdmin{tokens: map[string]string{"token-u1": "u1"}}
	svc := newTestAuthService(t, admin)

	var mu sync.Mutex
	var states []*entity.Principal
	unsubscribe := svc.OnAuthStateChanged(func(p *entity.Principal) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, p)
	})
	defer unsubscribe()

	principal, err := svc.SignInWithPassword(context.Background(), "asha@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, &entity.Principal{UID: "u1", Email: "asha@example.com", DisplayName: "Asha"}, principal)

	require.NoError(t, svc.SignOut(context.Background()))
	assert.Empty(t, admin.revoked, "sign-out ends only this session by default")

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(states) == 3
	}, time.Second, 5*time.Millisecond)
	assert.Nil(t, states[0])
	assert.Equal(t, "u1", states[1].UID)
	assert.Nil(t, states[2])

	// signing out without a session is a no-op
	require.NoError(t, svc.SignOut(context.Background()))
}

func TestAuthService_SignOutRevokesWhenConfigured(t *testing.T) {
	admin := &fakeAdmin{tokens: map[string]string{"token-u1": "u1"}}
	svc := newTestAuthService(t, admin, withRevokeOnSignOut)

	_, err := svc.SignInWithPassword(context.Background(), "asha@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(context.Background()))
	assert.Equal(t, []string{"u1"}, admin.revoked)

	last, _ := svc.session.Last()
	assert.Nil(t, last)

	require.NoError(t, svc.SignOut(context.Background()))
	assert.Len(t, admin.revoked, 1)
}

type principalResolver struct{}

func (principalResolver) Resolve(_ context.Context, principal *entity.Principal) (*entity.Identity, error) {
	return entity.NewIdentity(principal), nil
}

func TestAuthService_LogoutRevokesOnlyWhenConfigured(t *testing.T) {
	tests := []struct {
		name        string
		opts        []func(*config.FirebaseConfig)
		wantRevoked []string
	}{
		{"default", nil, nil},
		{"revoke on sign-out", []func(*config.FirebaseConfig){withRevokeOnSignOut}, []string{"u1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin := &fakeAdmin{tokens: map[string]string{"token-u1": "u1"}}
			svc := newTestAuthService(t, admin, tt.opts...)

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			router := navigation.NewRouter("/", logger)
			t.Cleanup(router.Close)

			cfg := &config.Config{}
			cfg.Navigation.HomeRoute = "/"
			cfg.Navigation.SignInRoute = "/login"
			cfg.Identity.ProfileFetchTimeout = time.Second
			cfg.Identity.SignInTimeout = 2 * time.Second

			identity := impl.NewIdentityProvider(impl.IdentityProviderParams{
				Auth:      svc,
				Resolver:  principalResolver{},
				Navigator: router,
				Config:    cfg,
				Logger:    logger,
			})
			require.NoError(t, identity.Start(context.Background()))
			t.Cleanup(identity.Close)

			user, err := identity.SignIn(context.Background(), "asha@example.com", "pw")
			require.NoError(t, err)
			assert.Equal(t, "u1", user.UID)

			require.NoError(t, identity.Logout(context.Background()))
			assert.Nil(t, identity.Current().User)
			assert.Equal(t, usecase.IdentitySignedOut, identity.Current().Phase)

			admin.mu.Lock()
			defer admin.mu.Unlock()
			assert.Equal(t, tt.wantRevoked, admin.revoked)
		})
	}
}

func TestAuthService_SignInErrors(t *testing.T) {
	svc := newTestAuthService(t, &fakeAdmin{tokens: map[string]string{}})

	tests := []struct {
		name  string
		email string
		check func(t *testing.T, err error)
	}{
		{"wrong password", "asha@example.com", func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
		}},
		{"disabled", "off@example.com", func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, domainerrors.ErrAccountDisabled))
		}},
		{"throttled", "busy@example.com", func(t *testing.T, err error) {
			var backendErr *domainerrors.BackendError
			assert.True(t, errors.As(err, &backendErr))
		}},
		{"server error", "broken@example.com", func(t *testing.T, err error) {
			var backendErr *domainerrors.BackendError
			assert.True(t, errors.As(err, &backendErr))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignInWithPassword(context.Background(), tt.email, "wrong")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAuthService_UnverifiedToken(t *testing.T) {
	svc := newTestAuthService(t, &fakeAdmin{tokens: map[string]string{}})

	_, err := svc.SignInWithPassword(context.Background(), "asha@example.com", "pw")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "verify id token"))
}

func TestAuthService_SignOutFailureKeepsSession(t *testing.T) {
	admin := &fakeAdmin{tokens: map[string]string{"token-u1": "u1"}, revokeErr: errors.New("unavailable")}
	svc := newTestAuthService(t, admin, withRevokeOnSignOut)

	_, err := svc.SignInWithPassword(context.Background(), "asha@example.com", "pw")
	require.NoError(t, err)

	err = svc.SignOut(context.Background())
	require.Error(t, err)

	last, _ := svc.session.Last()
	require.NotNil(t, last)
	assert.Equal(t, "u1", last.UID)
}

func TestAuthService_Accounts(t *testing.T) {
	admin := &fakeAdmin{}
	svc := newTestAuthService(t, admin)

	principal, err := svc.CreateAccount(context.Background(), accountFixture())
	require.NoError(t, err)
	assert.Equal(t, "new-uid", principal.UID)

	require.NoError(t, svc.DeleteAccount(context.Background(), "new-uid"))
	assert.Equal(t, []string{"new-uid"}, admin.deleted)

	admin.createErr = errors.New("quota")
	_, err = svc.CreateAccount(context.Background(), accountFixture())
	var backendErr *domainerrors.BackendError
	assert.True(t, errors.As(err, &backendErr))
}

func TestSignInEndpoint(t *testing.T) {
	assert.Equal(t, defaultAuthEndpoint, signInEndpoint(&config.FirebaseConfig{}))
	assert.Equal(t, "http://localhost:9099/identitytoolkit.googleapis.com/",
		signInEndpoint(&config.FirebaseConfig{AuthEndpoint: "https://x", AuthEmulatorHost: "localhost:9099"}))
	assert.Equal(t, "https://x/", signInEndpoint(&config.FirebaseConfig{AuthEndpoint: "https://x"}))
	assert.Equal(t, "https://x/", signInEndpoint(&config.FirebaseConfig{AuthEndpoint: "https://x//"}))
}

func TestMapSignInError(t *testing.T) {
	assert.ErrorIs(t, mapSignInError(&googleapi.Error{Code: 400, Message: "EMAIL_NOT_FOUND"}), domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, mapSignInError(&googleapi.Error{Code: 400, Message: "USER_DISABLED"}), domainerrors.ErrAccountDisabled)

	var backendErr *domainerrors.BackendError
	assert.True(t, errors.As(mapSignInError(&googleapi.Error{Code: 503}), &backendErr))
	assert.True(t, errors.As(mapSignInError(errors.New("dial tcp: refused")), &backendErr))
}

func accountFixture() service.NewAccount {
	return service.NewAccount{Email: "new@example.com", Password: "secret-pw", DisplayName: "New"}
}
