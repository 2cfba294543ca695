package firebase

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"medapp/config"
	"medapp/internal/domain/entity"
	domainerrors "medapp/internal/domain/errors"
	"medapp/internal/domain/service"
	"medapp/internal/util"

	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v1"
	"google.golang.org/api/option"
)

const (
	defaultAuthEndpoint = "https://identitytoolkit.googleapis.com/"
	emulatorAPIKey      = "emulator-api-key"
)

// authAdmin is the part of auth.Client the services use.
type authAdmin interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
}

// AuthService holds this process's session against Firebase Auth. Password sign-in goes
// through the Identity Toolkit API; the returned ID token is verified with the Admin SDK.
type AuthService struct {
	admin           authAdmin
	toolkit         *identitytoolkit.Service
	revokeOnSignOut bool
	logger          *slog.Logger

	mu      sync.Mutex
	current *entity.Principal
	session *util.Broadcaster[*entity.Principal]
}

var (
	_ service.AuthService    = (*AuthService)(nil)
	_ service.AccountService = (*AuthService)(nil)
)

// NewAuthService creates the Firebase-backed auth and account service.
func NewAuthService(ctx context.Context, admin *auth.Client, cfg *config.FirebaseConfig, logger *slog.Logger) (*AuthService, error) {
	return newAuthService(ctx, admin, cfg, logger)
}

func newAuthService(ctx context.Context, admin authAdmin, cfg *config.FirebaseConfig, logger *slog.Logger) (*AuthService, error) {
	apiKey := cfg.APIKey
	if apiKey == "" && cfg.AuthEmulatorHost != "" {
		apiKey = emulatorAPIKey
	}

	toolkit, err := identitytoolkit.NewService(ctx,
		option.WithAPIKey(apiKey),
		option.WithEndpoint(signInEndpoint(cfg)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create identity toolkit service")
	}

	return &AuthService{
		admin:           admin,
		toolkit:         toolkit,
		revokeOnSignOut: cfg.RevokeOnSignOut,
		logger:          logger,
		session:         util.NewBroadcasterWith[*entity.Principal](nil),
	}, nil
}

// signInEndpoint returns the Identity Toolkit base path; it always ends with a slash.
func signInEndpoint(cfg *config.FirebaseConfig) string {
	if cfg.AuthEmulatorHost != "" {
		return "http://" + cfg.AuthEmulatorHost + "/identitytoolkit.googleapis.com/"
	}
	if cfg.AuthEndpoint != "" {
		return strings.TrimRight(cfg.AuthEndpoint, "/") + "/"
	}

	return defaultAuthEndpoint
}

// OnAuthStateChanged implements service.AuthService.
func (s *AuthService) OnAuthStateChanged(fn service.AuthStateFunc) func() {
	return s.session.Subscribe(func(p *entity.Principal) {
		fn(p)
	})
}

// SignInWithPassword implements service.AuthService.
func (s *AuthService) SignInWithPassword(ctx context.Context, email, password string) (*entity.Principal, error) {
	out, err := s.toolkit.Accounts.SignInWithPassword(&identitytoolkit.GoogleCloudIdentitytoolkitV1SignInWithPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, mapSignInError(err)
	}

	token, err := s.admin.VerifyIDToken(ctx, out.IdToken)
	if err != nil {
		return nil, domainerrors.NewBackendError(errors.Wrap(err, "verify id token"), "identity toolkit sign-in")
	}

	principal := &entity.Principal{UID: token.UID, Email: out.Email, DisplayName: out.DisplayName}
	if principal.Email == "" {
		principal.Email, _ = token.Claims["email"].(string)
	}

	s.mu.Lock()
	s.current = principal
	s.session.Publish(clonePrincipal(principal))
	s.mu.Unlock()

	s.logger.Info("Signed in", slog.String("uid", principal.UID))

	return clonePrincipal(principal), nil
}

// SignOut implements service.AuthService. It ends the session held by this process only.
// With RevokeOnSignOut the user's refresh tokens are revoked first, which also ends their
// sessions elsewhere; if that fails the session stays as it was.
func (s *AuthService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current == nil {
		return nil
	}

	if s.revokeOnSignOut {
		if err := s.admin.RevokeRefreshTokens(ctx, current.UID); err != nil {
			return domainerrors.NewBackendError(errors.Wrap(err, "revoke refresh tokens"), current.UID)
		}
	}

	s.mu.Lock()
	if s.current != nil && s.current.UID == current.UID {
		s.current = nil
		s.session.Publish(nil)
	}
	s.mu.Unlock()

	s.logger.Info("Signed out", slog.String("uid", current.UID), slog.Bool("revoked", s.revokeOnSignOut))

	return nil
}

// CreateAccount implements service.AccountService.
func (s *AuthService) CreateAccount(ctx context.Context, account service.NewAccount) (*entity.Principal, error) {
	params := (&auth.UserToCreate{}).
		Email(account.Email).
		Password(account.Password)
	if account.DisplayName != "" {
		params = params.DisplayName(account.DisplayName)
	}

	record, err := s.admin.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, errors.Wrap(domainerrors.ErrAccountAlreadyExists, account.Email)
		}

		return nil, domainerrors.NewBackendError(errors.Wrap(err, "create user"), account.Email)
	}

	return &entity.Principal{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
	}, nil
}

// DeleteAccount implements service.AccountService.
func (s *AuthService) DeleteAccount(ctx context.Context, uid string) error {
	if err := s.admin.DeleteUser(ctx, uid); err != nil {
		return domainerrors.NewBackendError(errors.Wrap(err, "delete user"), uid)
	}

	s.mu.Lock()
	if s.current != nil && s.current.UID == uid {
		s.current = nil
		s.session.Publish(nil)
	}
	s.mu.Unlock()

	return nil
}

// Close ends the session stream.
func (s *AuthService) Close() {
	s.session.Close()
}

func mapSignInError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return domainerrors.NewBackendError(errors.WithStack(err), "identity toolkit sign-in")
	}

	// Messages look like "INVALID_PASSWORD" or "TOO_MANY_ATTEMPTS_TRY_LATER : detail".
	code, _, _ := strings.Cut(apiErr.Message, " ")
	switch code {
	case "INVALID_PASSWORD", "EMAIL_NOT_FOUND", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL", "MISSING_PASSWORD":
		return domainerrors.ErrInvalidCredentials
	case "USER_DISABLED":
		return domainerrors.ErrAccountDisabled
	default:
		return domainerrors.NewBackendError(errors.WithStack(err), "identity toolkit sign-in")
	}
}

func clonePrincipal(p *entity.Principal) *entity.Principal {
	if p == nil {
		return nil
	}
	clone := *p

	return &clone
}
