package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestBaseError_WrappedStillMatches(t *testing.T) {
	err := errors.Wrap(ErrSellerNotApproved, "resolve seller")

	assert.True(t, errors.Is(err, ErrSellerNotApproved))

	var appErr AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
	assert.Equal(t, "SELLER_NOT_APPROVED", appErr.ErrorCode())
}

func TestBaseError_WithDetails(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("email: required")

	assert.Equal(t, "email: required", detailed.Details())
	assert.Equal(t, ErrValidationFailed.ErrorCode(), detailed.ErrorCode())
	assert.Empty(t, ErrValidationFailed.Details())
}

func TestBackendError(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := NewBackendError(cause, "fetch profile")

	assert.Equal(t, http.StatusBadGateway, err.HTTPCode())
	assert.Equal(t, "BACKEND_CALL_FAILED", err.ErrorCode())
	assert.Equal(t, "fetch profile", err.Details())
	assert.Contains(t, err.Error(), "deadline exceeded")
	assert.True(t, errors.Is(err, cause))
}
