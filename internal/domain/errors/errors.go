package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password",
		"",
	)

	ErrAccountDisabled = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_DISABLED",
		"This account has been disabled",
		"",
	)

	ErrAccountAlreadyExists = NewBaseError(
		http.StatusConflict,
		"ACCOUNT_ALREADY_EXISTS",
		"An account with this email already exists",
		"",
	)

	ErrNotSignedIn = NewBaseError(
		http.StatusUnauthorized,
		"NOT_SIGNED_IN",
		"No user is signed in",
		"",
	)

	ErrSignOutFailed = NewBaseError(
		http.StatusBadGateway,
		"SIGN_OUT_FAILED",
		"Sign-out could not be completed",
		"",
	)

	ErrSignInTimeout = NewBaseError(
		http.StatusGatewayTimeout,
		"SIGN_IN_TIMEOUT",
		"Timed out waiting for the session to be established",
		"",
	)

	// Seller-related errors
	ErrSellerNotFound = NewBaseError(
		http.StatusForbidden,
		"SELLER_NOT_FOUND",
		"No seller record exists for this account",
		"",
	)

	ErrSellerNotApproved = NewBaseError(
		http.StatusForbidden,
		"SELLER_NOT_APPROVED",
		"Seller account is awaiting approval",
		"",
	)

	ErrLicenseTooLarge = NewBaseError(
		http.StatusRequestEntityTooLarge,
		"LICENSE_TOO_LARGE",
		"License file exceeds the allowed size",
		"",
	)

	// Document-related errors
	ErrDocumentInvalid = NewBaseError(
		http.StatusUnprocessableEntity,
		"DOCUMENT_INVALID",
		"Backend document has an unexpected shape",
		"",
	)

	ErrSubscriptionFailed = NewBaseError(
		http.StatusServiceUnavailable,
		"SUBSCRIPTION_FAILED",
		"Live collection subscription failed",
		"",
	)

	// Provider lifecycle errors
	ErrAlreadyStarted = NewBaseError(
		http.StatusConflict,
		"ALREADY_STARTED",
		"Provider is already started",
		"",
	)

	ErrProviderClosed = NewBaseError(
		http.StatusServiceUnavailable,
		"PROVIDER_CLOSED",
		"Provider has been shut down",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// BackendError represents a failed call to the hosted backend, implementing the AppError interface
type BackendError struct {
	err     error
	details string
}

// NewBackendError creates a backend-call error
func NewBackendError(err error, details string) AppError {
	return &BackendError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *BackendError) Error() string {
	return errors.Wrap(e.err, "backend call failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *BackendError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *BackendError) ErrorCode() string {
	return "BACKEND_CALL_FAILED"
}

// Message returns the user-friendly error message
func (e *BackendError) Message() string {
	return "Backend request failed"
}

// Details returns detailed error information
func (e *BackendError) Details() string {
	return e.details
}

// Unwrap exposes the underlying backend error
func (e *BackendError) Unwrap() error {
	return e.err
}
