package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medapp/internal/domain/entity"
	domainerrors "medapp/internal/domain/errors"
	mockService "medapp/internal/mocks/service"
	mockUsecase "medapp/internal/mocks/usecase"
	"medapp/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionFixtures struct {
	echo      *echo.Echo
	identity  *mockUsecase.MockIdentityUsecase
	navigator *mockService.MockNavigator
}

func createTestSessionHandler(t *testing.T) sessionFixtures {
	identity := mockUsecase.NewMockIdentityUsecase(t)
	navigator := mockService.NewMockNavigator(t)
	h := NewSessionHandler(SessionHandlerParams{
		IdentityUC: identity,
		Navigator:  navigator,
		Logger:     discardLogger(),
	})

	e := newTestEcho()
	e.GET("/api/v1/session", h.GetSession)
	e.POST("/api/v1/session", h.SignIn)
	e.DELETE("/api/v1/session", h.Logout)

	return sessionFixtures{echo: e, identity: identity, navigator: navigator}
}

func signedInState() usecase.IdentityState {
	return usecase.IdentityState{
		User:  &entity.Identity{UID: "u1", Email: "asha@example.com", Role: entity.RoleCustomer},
		Phase: usecase.IdentitySignedIn,
	}
}

func postSignIn(e *echo.Echo, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestSessionHandler_GetSession(t *testing.T) {
	fx := createTestSessionHandler(t)
	fx.identity.EXPECT().Current().Return(signedInState())
	fx.navigator.EXPECT().Current().Return("/")

	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/session", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var session SessionResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &session))
	assert.Equal(t, "/", session.Route)
	assert.Equal(t, usecase.IdentitySignedIn, session.State.Phase)
	assert.Equal(t, "u1", session.State.User.UID)
}

func TestSessionHandler_SignIn(t *testing.T) {
	fx := createTestSessionHandler(t)
	fx.identity.EXPECT().SignIn(mock.Anything, "asha@example.com", "pw").
		Return(&entity.Identity{UID: "u1", Role: entity.RoleCustomer}, nil)
	fx.identity.EXPECT().Current().Return(signedInState())
	fx.navigator.EXPECT().Current().Return("/")

	rec := postSignIn(fx.echo, `{"email":"asha@example.com","password":"pw"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var session SessionResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &session))
	assert.Equal(t, "u1", session.State.User.UID)
}

func TestSessionHandler_SignInErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		signIn   error
		wantCode int
		wantErr  string
	}{
		{"malformed body", `{"email":`, nil, http.StatusBadRequest, "INVALID_INPUT"},
		{"invalid email", `{"email":"nope","password":"pw"}`, nil, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"missing password", `{"email":"asha@example.com"}`, nil, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"wrong password", `{"email":"asha@example.com","password":"bad"}`, domainerrors.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"pending seller", `{"email":"asha@example.com","password":"pw"}`, errors.Wrap(domainerrors.ErrSellerNotApproved, "u1"), http.StatusForbidden, "SELLER_NOT_APPROVED"},
		{"backend down", `{"email":"asha@example.com","password":"pw"}`, domainerrors.NewBackendError(errors.New("unavailable"), ""), http.StatusBadGateway, "BACKEND_CALL_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestSessionHandler(t)
			if tt.signIn != nil {
				fx.identity.EXPECT().SignIn(mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.signIn)
			}

			rec := postSignIn(fx.echo, tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			env := decodeEnvelope(t, rec)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantErr, env.Error.Code)
		})
	}
}

func TestSessionHandler_Logout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fx := createTestSessionHandler(t)
		fx.identity.EXPECT().Logout(mock.Anything).Return(nil)
		fx.identity.EXPECT().Current().Return(usecase.IdentityState{Phase: usecase.IdentitySignedOut})
		fx.navigator.EXPECT().Current().Return("/login")

		rec := httptest.NewRecorder()
		fx.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var session SessionResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &session))
		assert.Equal(t, "/login", session.Route)
		assert.Nil(t, session.State.User)
	})

	t.Run("sign-out failure", func(t *testing.T) {
		fx := createTestSessionHandler(t)
		fx.identity.EXPECT().Logout(mock.Anything).Return(errors.Wrap(domainerrors.ErrSignOutFailed, "network"))

		rec := httptest.NewRecorder()
		fx.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "SIGN_OUT_FAILED", decodeEnvelope(t, rec).Error.Code)
	})
}
