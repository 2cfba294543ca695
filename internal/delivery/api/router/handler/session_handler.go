package handler

import (
	"log/slog"
	"net/http"

	"medapp/internal/delivery/api/response"
	deliverycontext "medapp/internal/delivery/context"
	domainerrors "medapp/internal/domain/errors"
	"medapp/internal/domain/service"
	"medapp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SessionHandlerParams holds dependencies for SessionHandler, injected by Fx.
type SessionHandlerParams struct {
	fx.In

	IdentityUC usecase.IdentityUsecase
	Navigator  service.Navigator
	Logger     *slog.Logger
}

// SessionHandler exposes the identity provider
type SessionHandler struct {
	identityUC usecase.IdentityUsecase
	navigator  service.Navigator
	logger     *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler
func NewSessionHandler(params SessionHandlerParams) *SessionHandler {
	return &SessionHandler{
		identityUC: params.IdentityUC,
		navigator:  params.Navigator,
		logger:     params.Logger,
	}
}

// SignInRequest represents the request body for signing in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse is the identity state plus the route the client should show
type SessionResponse struct {
	State usecase.IdentityState `json:"state"`
	Route string                `json:"route"`
}

func (h *SessionHandler) session() SessionResponse {
	return SessionResponse{
		State: h.identityUC.Current(),
		Route: h.navigator.Current(),
	}
}

// GetSession returns the current identity state
func (h *SessionHandler) GetSession(c echo.Context) error {
	return response.OK(c, h.session())
}

// SignIn signs in with email and password and returns the settled state
func (h *SessionHandler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid sign-in input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	identity, err := h.identityUC.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Info("Signed in",
		slog.String("uid", identity.UID),
		slog.String("role", identity.Role.String()),
	)

	return response.OK(c, h.session())
}

// Logout ends the session
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.identityUC.Logout(c.Request().Context()); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, h.session())
}
