package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"medapp/internal/domain/entity"
	domainerrors "medapp/internal/domain/errors"
	"medapp/internal/domain/service"
	"medapp/internal/infra/memory"
	mockRepo "medapp/internal/mocks/repository"
	mockService "medapp/internal/mocks/service"
	"medapp/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type identityFixtures struct {
	provider usecase.IdentityUsecase
	backend  *memory.Backend
}

func startIdentityProvider(t *testing.T, backend *memory.Backend, resolver IdentityResolver, navigator service.Navigator) identityFixtures {
	t.Helper()
	if navigator == nil {
		navigator = newTestRouter(t)
	}

	provider := NewIdentityProvider(IdentityProviderParams{
		Auth:      backend,
		Resolver:  resolver,
		Navigator: navigator,
		Config:    testConfig(),
		Logger:    discardLogger(),
	})
	require.NoError(t, provider.Start(context.Background()))
	t.Cleanup(provider.Close)

	eventually(t, func() bool { return provider.Current().Phase == usecase.IdentitySignedOut }, "initial signed-out state")

	return identityFixtures{provider: provider, backend: backend}
}

func customerFixtures(t *testing.T) identityFixtures {
	t.Helper()
	backend := newTestBackend(t)

	return startIdentityProvider(t, backend, NewProfileResolver(backend, discardLogger()), nil)
}

func TestIdentityProvider_InitialState(t *testing.T) {
	backend := newTestBackend(t)
	provider := NewIdentityProvider(IdentityProviderParams{
		Auth:      backend,
		Resolver:  NewProfileResolver(backend, discardLogger()),
		Navigator: newTestRouter(t),
		Config:    testConfig(),
		Logger:    discardLogger(),
	})
	t.Cleanup(provider.Close)

	state := provider.Current()
	assert.True(t, state.Loading)
	assert.Nil(t, state.User)
	assert.Equal(t, usecase.IdentityUninitialized, state.Phase)

	require.NoError(t, provider.Start(context.Background()))
	assert.ErrorIs(t, provider.Start(context.Background()), domainerrors.ErrAlreadyStarted)

	eventually(t, func() bool {
		s := provider.Current()

		return s.Phase == usecase.IdentitySignedOut && !s.Loading
	}, "first notification ends loading")
}

func TestIdentityProvider_CustomerSignIn(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(backend *memory.Backend)
		wantRole entity.Role
		wantName string
	}{
		{
			name: "profile merged",
			setup: func(backend *memory.Backend) {
				backend.SetDocument("users", "u1", map[string]any{"displayName": "Asha K", "role": "customer"})
			},
			wantRole: entity.RoleCustomer,
			wantName: "Asha K",
		},
		{
			name:     "missing profile gives minimal identity",
			setup:    func(*memory.Backend) {},
			wantName: "u1",
		},
		{
			name: "unreadable profile gives minimal identity",
			setup: func(backend *memory.Backend) {
				backend.SetReadError("users", errors.New("unavailable"))
			},
			wantName: "u1",
		},
		{
			name: "invalid profile gives minimal identity",
			setup: func(backend *memory.Backend) {
				backend.SetDocument("users", "u1", map[string]any{"role": "pharmacist"})
			},
			wantName: "u1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := customerFixtures(t)
			addAccount(t, fx.backend, "u1", "asha@example.com")
			tt.setup(fx.backend)

			identity, err := fx.provider.SignIn(context.Background(), "asha@example.com", "pw")
			require.NoError(t, err)
			assert.Equal(t, "u1", identity.UID)
			assert.Equal(t, "asha@example.com", identity.Email)
			assert.Equal(t, tt.wantRole, identity.Role)
			assert.Equal(t, tt.wantName, identity.DisplayName)

			state := fx.provider.Current()
			assert.Equal(t, usecase.IdentitySignedIn, state.Phase)
			assert.False(t, state.Loading)
			assert.Equal(t, identity, state.User)
		})
	}
}

func TestIdentityProvider_SignInInvalidCredentials(t *testing.T) {
	fx := customerFixtures(t)
	addAccount(t, fx.backend, "u1", "asha@example.com")

	_, err := fx.provider.SignIn(context.Background(), "asha@example.com", "wrong")
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Nil(t, fx.provider.Current().User)
}

func TestIdentityProvider_StaleResolutionDiscarded(t *testing.T) {
	backend := newTestBackend(t)
	profiles := mockRepo.NewMockProfileRepository(t)
	release := make(chan struct{})
	var releaseOnce sync.Once
	releaseA := func() { releaseOnce.Do(func() { close(release) }) }

	profiles.EXPECT().FindProfile(mock.Anything, "a").
		RunAndReturn(func(context.Context, string) (*entity.UserProfile, error) {
			<-release

			return &entity.UserProfile{DisplayName: "Stale A", Role: entity.RoleAdmin}, nil
		}).Once()
	profiles.EXPECT().FindProfile(mock.Anything, "b").
		Return(&entity.UserProfile{DisplayName: "B", Role: entity.RoleCustomer}, nil).Once()

	fx := startIdentityProvider(t, backend, NewProfileResolver(profiles, discardLogger()), nil)
	// runs before the provider's Close, which waits for the fetch
	t.Cleanup(releaseA)
	states := &recorder[usecase.IdentityState]{}
	unsubscribe := fx.provider.Watch(states.record)
	defer unsubscribe()

	backend.EmitAuthState(&entity.Principal{UID: "a", Email: "a@example.com"})
	backend.EmitAuthState(&entity.Principal{UID: "b", Email: "b@example.com"})

	eventually(t, func() bool {
		u := fx.provider.Current().User

		return u != nil && u.UID == "b"
	}, "b resolved")

	// let the superseded fetch for a finish late
	releaseA()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, "b", fx.provider.Current().User.UID)
	for _, s := range states.all() {
		if s.User != nil {
			assert.NotEqual(t, "a", s.User.UID, "stale principal must never surface")
		}
	}
}

func TestIdentityProvider_RepeatedPrincipalResolvedOnce(t *testing.T) {
	backend := newTestBackend(t)
	profiles := mockRepo.NewMockProfileRepository(t)
	profiles.EXPECT().FindProfile(mock.Anything, "u1").Return(nil, errors.New("offline")).Once()

	fx := startIdentityProvider(t, backend, NewProfileResolver(profiles, discardLogger()), nil)

	principal := &entity.Principal{UID: "u1", Email: "u1@example.com"}
	backend.EmitAuthState(principal)
	eventually(t, func() bool { return fx.provider.Current().Phase == usecase.IdentitySignedIn }, "u1 resolved")

	backend.EmitAuthState(principal)
	backend.EmitAuthState(principal)
	time.Sleep(30 * time.Millisecond)

	profiles.AssertNumberOfCalls(t, "FindProfile", 1)
	assert.Equal(t, "u1", fx.provider.Current().User.UID)
}

func TestIdentityProvider_SignedOutNotificationClearsUser(t *testing.T) {
	fx := customerFixtures(t)
	addAccount(t, fx.backend, "u1", "asha@example.com")

	_, err := fx.provider.SignIn(context.Background(), "asha@example.com", "pw")
	require.NoError(t, err)

	fx.backend.EmitAuthState(nil)
	eventually(t, func() bool {
		s := fx.provider.Current()

		return s.User == nil && s.Phase == usecase.IdentitySignedOut
	}, "signed out")
}

func TestIdentityProvider_SellerGate(t *testing.T) {
	approvedSeller := map[string]any{
		"name": "Ravi Shah", "email": "ravi@example.com", "pharmacyName": "Shah Medicals",
		"address": "Pune", "licenseNumber": "MH-1", "approved": true,
	}
	pendingSeller := map[string]any{
		"name": "Ravi Shah", "email": "ravi@example.com", "pharmacyName": "Shah Medicals",
		"address": "Pune", "licenseNumber": "MH-1", "approved": false,
	}

	tests := []struct {
		name     string
		setup    func(backend *memory.Backend)
		wantErr  error
		wantCode string
	}{
		{
			name:  "approved",
			setup: func(backend *memory.Backend) { backend.SetDocument("sellers", "s1", approvedSeller) },
		},
		{
			name:     "not approved",
			setup:    func(backend *memory.Backend) { backend.SetDocument("sellers", "s1", pendingSeller) },
			wantErr:  domainerrors.ErrSellerNotApproved,
			wantCode: "SELLER_NOT_APPROVED",
		},
		{
			name:     "no seller record",
			setup:    func(*memory.Backend) {},
			wantErr:  domainerrors.ErrSellerNotFound,
			wantCode: "SELLER_NOT_FOUND",
		},
		{
			name:     "invalid seller record",
			setup:    func(backend *memory.Backend) { backend.SetDocument("sellers", "s1", map[string]any{"approved": "yes"}) },
			wantErr:  domainerrors.ErrDocumentInvalid,
			wantCode: "DOCUMENT_INVALID",
		},
		{
			name:     "seller fetch fails",
			setup:    func(backend *memory.Backend) { backend.SetReadError("sellers", errors.New("unavailable")) },
			wantCode: "BACKEND_CALL_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newTestBackend(t)
			fx := startIdentityProvider(t, backend, NewSellerResolver(backend, discardLogger()), nil)
			addAccount(t, backend, "s1", "ravi@example.com")
			tt.setup(backend)

			identity, err := fx.provider.SignIn(context.Background(), "ravi@example.com", "pw")
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, entity.RoleSeller, identity.Role)
				assert.Equal(t, "Ravi Shah", identity.DisplayName)

				return
			}

			require.Error(t, err)
			assert.Nil(t, identity)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}

			state := fx.provider.Current()
			assert.Nil(t, state.User)
			assert.Equal(t, usecase.IdentitySignedOut, state.Phase)
			require.NotNil(t, state.Rejection)
			assert.Equal(t, "s1", state.Rejection.UID)
			assert.Equal(t, tt.wantCode, state.Rejection.Code)

			eventually(t, func() bool { return backend.CurrentPrincipal() == nil }, "rejected principal is signed out")
			time.Sleep(20 * time.Millisecond)
			assert.Nil(t, fx.provider.Current().User, "forced sign-out keeps the user empty")
			assert.NotNil(t, fx.provider.Current().Rejection, "rejection stays visible after the sign-out notification")
		})
	}
}

func TestIdentityProvider_RejectedSellerCanRetryAfterApproval(t *testing.T) {
	backend := newTestBackend(t)
	fx := startIdentityProvider(t, backend, NewSellerResolver(backend, discardLogger()), nil)
	addAccount(t, backend, "s1", "ravi@example.com")
	seller := map[string]any{
		"name": "Ravi Shah", "email": "ravi@example.com", "pharmacyName": "Shah Medicals",
		"address": "Pune", "licenseNumber": "MH-1", "approved": false,
	}
	backend.SetDocument("sellers", "s1", seller)

	_, err := fx.provider.SignIn(context.Background(), "ravi@example.com", "pw")
	require.True(t, errors.Is(err, domainerrors.ErrSellerNotApproved))
	eventually(t, func() bool { return backend.CurrentPrincipal() == nil }, "signed out")

	seller["approved"] = true
	backend.SetDocument("sellers", "s1", seller)

	identity, err := fx.provider.SignIn(context.Background(), "ravi@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "s1", identity.UID)
	assert.Nil(t, fx.provider.Current().Rejection)
}

func TestIdentityProvider_Logout(t *testing.T) {
	backend := newTestBackend(t)
	navigator := mockService.NewMockNavigator(t)
	fx := startIdentityProvider(t, backend, NewProfileResolver(backend, discardLogger()), navigator)
	addAccount(t, backend, "u1", "asha@example.com")

	_, err := fx.provider.SignIn(context.Background(), "asha@example.com", "pw")
	require.NoError(t, err)

	navigator.EXPECT().Navigate(mock.Anything, "/login").
		Run(func(context.Context, string) {
			// backend sign-out and the cleared user both precede navigation
			assert.Nil(t, backend.CurrentPrincipal())
			assert.Nil(t, fx.provider.Current().User)
		}).
		Return(nil).Once()

	require.NoError(t, fx.provider.Logout(context.Background()))

	state := fx.provider.Current()
	assert.Nil(t, state.User)
	assert.Equal(t, usecase.IdentitySignedOut, state.Phase)

	// the trailing signed-out notification changes nothing
	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, fx.provider.Current().User)
}

func TestIdentityProvider_LogoutFailureLeavesSessionIntact(t *testing.T) {
	backend := newTestBackend(t)
	navigator := mockService.NewMockNavigator(t)
	fx := startIdentityProvider(t, backend, NewProfileResolver(backend, discardLogger()), navigator)
	addAccount(t, backend, "u1", "asha@example.com")

	_, err := fx.provider.SignIn(context.Background(), "asha@example.com", "pw")
	require.NoError(t, err)

	backend.SetSignOutError(errors.New("network down"))
	err = fx.provider.Logout(context.Background())
	assert.True(t, errors.Is(err, domainerrors.ErrSignOutFailed))

	state := fx.provider.Current()
	require.NotNil(t, state.User)
	assert.Equal(t, "u1", state.User.UID)
	assert.Equal(t, usecase.IdentitySignedIn, state.Phase)
	navigator.AssertNotCalled(t, "Navigate", mock.Anything, mock.Anything)
}

func TestIdentityProvider_SignInAfterLogout(t *testing.T) {
	fx := customerFixtures(t)
	addAccount(t, fx.backend, "u1", "asha@example.com")
	addAccount(t, fx.backend, "u2", "bela@example.com")

	_, err := fx.provider.SignIn(context.Background(), "asha@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, fx.provider.Logout(context.Background()))

	identity, err := fx.provider.SignIn(context.Background(), "bela@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u2", identity.UID)
}

func TestIdentityProvider_Close(t *testing.T) {
	backend := newTestBackend(t)
	profiles := mockRepo.NewMockProfileRepository(t)
	entered := make(chan struct{})
	profiles.EXPECT().FindProfile(mock.Anything, "u1").
		RunAndReturn(func(ctx context.Context, _ string) (*entity.UserProfile, error) {
			close(entered)
			<-ctx.Done()

			return nil, ctx.Err()
		}).Once()

	provider := NewIdentityProvider(IdentityProviderParams{
		Auth:      backend,
		Resolver:  NewProfileResolver(profiles, discardLogger()),
		Navigator: newTestRouter(t),
		Config:    testConfig(),
		Logger:    discardLogger(),
	})
	require.NoError(t, provider.Start(context.Background()))
	eventually(t, func() bool { return provider.Current().Phase == usecase.IdentitySignedOut }, "started")

	backend.EmitAuthState(&entity.Principal{UID: "u1"})
	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("profile fetch never started")
	}

	done := make(chan struct{})
	go func() {
		provider.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not abandon the in-flight fetch")
	}

	_, err := provider.SignIn(context.Background(), "a@example.com", "pw")
	assert.ErrorIs(t, err, domainerrors.ErrProviderClosed)
	assert.ErrorIs(t, provider.Start(context.Background()), domainerrors.ErrProviderClosed)
}
