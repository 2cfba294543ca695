package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"medapp/config"
	"medapp/internal/domain/entity"
	domainerrors "medapp/internal/domain/errors"
	"medapp/internal/domain/lifecycle"
	"medapp/internal/domain/service"
	"medapp/internal/usecase"
	"medapp/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// identityProvider implements the IdentityUsecase interface.
//
// Every session notification bumps gen. A resolution applies only while its gen is
// still current, so user always reflects the latest notification.
type identityProvider struct {
	auth      service.AuthService
	resolver  IdentityResolver
	navigator service.Navigator
	logger    *slog.Logger

	signInRoute   string
	fetchTimeout  time.Duration
	signInTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.Mutex
	state        usecase.IdentityState
	gen          uint64
	principalUID string // principal resolving or resolved under gen
	loggedOut    bool   // Logout succeeded; principals queued before the sign-out are ignored
	cancelFetch  context.CancelFunc
	started      bool
	closed       bool
	unsubscribe  func()

	states *util.Broadcaster[usecase.IdentityState]
}

// IdentityProviderParams holds dependencies for the identity provider, injected by Fx.
type IdentityProviderParams struct {
	fx.In

	Auth      service.AuthService
	Resolver  IdentityResolver
	Navigator service.Navigator
	Config    *config.Config
	Logger    *slog.Logger
}

// NewIdentityProvider is the constructor for identityProvider.
func NewIdentityProvider(params IdentityProviderParams) usecase.IdentityUsecase {
	initial := usecase.IdentityState{Loading: true, Phase: usecase.IdentityUninitialized}
	ctx, cancel := context.WithCancel(context.Background())

	return &identityProvider{
		auth:          params.Auth,
		resolver:      params.Resolver,
		navigator:     params.Navigator,
		logger:        params.Logger,
		signInRoute:   params.Config.Navigation.SignInRoute,
		fetchTimeout:  params.Config.Identity.ProfileFetchTimeout,
		signInTimeout: params.Config.Identity.SignInTimeout,
		ctx:           ctx,
		cancel:        cancel,
		state:         initial,
		states:        util.NewBroadcasterWith(initial),
	}
}

// Start implements usecase.IdentityUsecase.
func (srv *identityProvider) Start(_ context.Context) error {
	srv.mu.Lock()
	if srv.closed {
		srv.mu.Unlock()

		return domainerrors.ErrProviderClosed
	}
	if srv.started {
		srv.mu.Unlock()

		return domainerrors.ErrAlreadyStarted
	}
	srv.started = true
	srv.setStateLocked(usecase.IdentityState{Loading: true, Phase: usecase.IdentityLoading})
	srv.mu.Unlock()

	unsubscribe := srv.auth.OnAuthStateChanged(srv.onAuthState)

	srv.mu.Lock()
	srv.unsubscribe = unsubscribe
	srv.mu.Unlock()

	srv.logger.Info("Identity provider started")

	return nil
}

// Current implements usecase.IdentityUsecase.
func (srv *identityProvider) Current() usecase.IdentityState {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.state
}

// Watch implements usecase.IdentityUsecase.
func (srv *identityProvider) Watch(fn func(usecase.IdentityState)) func() {
	return srv.states.Subscribe(fn)
}

// onAuthState runs on the session stream's delivery goroutine, one notification at a time.
func (srv *identityProvider) onAuthState(principal *entity.Principal) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.closed {
		return
	}

	if principal == nil {
		srv.loggedOut = false
		if srv.principalUID == "" && srv.state.Phase == usecase.IdentitySignedOut {
			return
		}
		srv.supersedeLocked("")
		// a rejection outlives the forced sign-out it caused
		srv.setStateLocked(usecase.IdentityState{Phase: usecase.IdentitySignedOut, Rejection: srv.state.Rejection})

		return
	}

	if srv.loggedOut {
		srv.logger.Debug("Ignoring principal queued before logout", slog.String("uid", principal.UID))

		return
	}
	if principal.UID == srv.principalUID {
		return
	}

	srv.supersedeLocked(principal.UID)
	srv.setStateLocked(usecase.IdentityState{Loading: true, Phase: usecase.IdentityLoading})

	clone := *principal
	gen := srv.gen
	ctx, cancel := context.WithTimeout(srv.ctx, srv.fetchTimeout)
	srv.cancelFetch = cancel
	srv.wg.Add(1)
	go srv.resolve(ctx, cancel, gen, &clone)
}

// supersedeLocked starts a new generation for uid and abandons any in-flight resolution.
func (srv *identityProvider) supersedeLocked(uid string) {
	srv.gen++
	srv.principalUID = uid
	if srv.cancelFetch != nil {
		srv.cancelFetch()
		srv.cancelFetch = nil
	}
}

func (srv *identityProvider) resolve(ctx context.Context, cancel context.CancelFunc, gen uint64, principal *entity.Principal) {
	defer srv.wg.Done()
	defer cancel()

	identity, err := srv.resolver.Resolve(ctx, principal)

	srv.mu.Lock()
	if srv.closed || gen != srv.gen {
		srv.mu.Unlock()
		srv.logger.Debug("Discarding stale identity resolution", slog.String("uid", principal.UID))

		return
	}

	if err != nil {
		srv.supersedeLocked("")
		srv.setStateLocked(usecase.IdentityState{
			Phase:     usecase.IdentitySignedOut,
			Rejection: newRejection(principal.UID, err),
		})
		srv.mu.Unlock()

		srv.logger.Warn("Principal rejected, signing out",
			slog.String("uid", principal.UID),
			slog.Any("error", err),
		)
		srv.forceSignOut(principal.UID)

		return
	}

	srv.setStateLocked(usecase.IdentityState{User: identity, Phase: usecase.IdentitySignedIn})
	srv.mu.Unlock()

	srv.logger.Info("Identity resolved",
		slog.String("uid", identity.UID),
		slog.String("role", identity.Role.String()),
	)
}

func (srv *identityProvider) forceSignOut(uid string) {
	ctx, cancel := context.WithTimeout(srv.ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := srv.auth.SignOut(ctx); err != nil {
		// user is already empty; the backend session is left for its own expiry
		srv.logger.Error("Forced sign-out failed", slog.String("uid", uid), slog.Any("error", err))
	}
}

// SignIn implements usecase.IdentityUsecase.
func (srv *identityProvider) SignIn(ctx context.Context, email, password string) (*entity.Identity, error) {
	srv.mu.Lock()
	if srv.closed {
		srv.mu.Unlock()

		return nil, domainerrors.ErrProviderClosed
	}
	srv.loggedOut = false
	if srv.state.Rejection != nil {
		cleared := srv.state
		cleared.Rejection = nil
		srv.setStateLocked(cleared)
	}
	srv.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, srv.signInTimeout)
	defer cancel()

	principal, err := srv.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	settled := make(chan usecase.IdentityState, 1)
	unsubscribe := srv.Watch(func(state usecase.IdentityState) {
		if !settledFor(state, principal.UID) {
			return
		}
		select {
		case settled <- state:
		default:
		}
	})
	defer unsubscribe()

	select {
	case state := <-settled:
		if state.Rejection != nil {
			return nil, state.Rejection.Err
		}
		identity := *state.User

		return &identity, nil
	case <-ctx.Done():
		return nil, errors.Wrap(domainerrors.ErrSignInTimeout, principal.UID)
	}
}

func settledFor(state usecase.IdentityState, uid string) bool {
	if state.Phase == usecase.IdentitySignedIn && state.User != nil && state.User.UID == uid {
		return true
	}

	return state.Rejection != nil && state.Rejection.UID == uid
}

// Logout implements usecase.IdentityUsecase.
func (srv *identityProvider) Logout(ctx context.Context) error {
	if err := srv.auth.SignOut(ctx); err != nil {
		srv.logger.Error("Backend sign-out failed", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrSignOutFailed, err.Error())
	}

	srv.mu.Lock()
	srv.supersedeLocked("")
	srv.loggedOut = true
	srv.setStateLocked(usecase.IdentityState{Phase: usecase.IdentitySignedOut})
	srv.mu.Unlock()

	if err := srv.navigator.Navigate(ctx, srv.signInRoute); err != nil {
		return errors.Wrap(err, "navigate to sign-in")
	}

	srv.logger.Info("Logged out")

	return nil
}

// Close implements usecase.IdentityUsecase.
func (srv *identityProvider) Close() {
	srv.mu.Lock()
	if srv.closed {
		srv.mu.Unlock()

		return
	}
	srv.closed = true
	unsubscribe := srv.unsubscribe
	srv.mu.Unlock()

	srv.cancel()
	if unsubscribe != nil {
		unsubscribe()
	}
	srv.wg.Wait()
	srv.states.Close()

	srv.logger.Info("Identity provider closed")
}

func (srv *identityProvider) setStateLocked(state usecase.IdentityState) {
	srv.state = state
	srv.states.Publish(state)
}

func newRejection(uid string, err error) *usecase.Rejection {
	rejection := &usecase.Rejection{
		UID:     uid,
		Code:    domainerrors.ErrInternalError.ErrorCode(),
		Message: domainerrors.ErrInternalError.Message(),
		Err:     err,
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		rejection.Code = appErr.ErrorCode()
		rejection.Message = appErr.Message()
	}

	return rejection
}
