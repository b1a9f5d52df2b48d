// Package errors defines the application error taxonomy: typed errors that
// carry an HTTP status, a business error code, and a user-facing message.
package errors

import (
	"net/http"

	"termtalk/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
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

// Predefined error types
var (
	// ErrUsernameTaken is returned on registration conflict. The original
	// contract surfaces registration failures as 400, not 409.
	ErrUsernameTaken = NewBaseError(
		http.StatusBadRequest,
		"USERNAME_TAKEN",
		"Username is already taken",
	)

	ErrRegistrationFailed = NewBaseError(
		http.StatusBadRequest,
		"REGISTRATION_FAILED",
		"Could not register user",
	)

	// ErrInvalidCredentials deliberately conflates "unknown user" and
	// "wrong password" so responses cannot be used for username enumeration.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid username or password",
	)

	// ErrInvalidToken covers missing, malformed, expired, and badly signed
	// bearer tokens alike.
	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token",
	)

	ErrMessageHistoryUnavailable = NewBaseError(
		http.StatusInternalServerError,
		"MESSAGE_HISTORY_UNAVAILABLE",
		"Could not load message history",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Request validation failed",
	)
)

// NewDatabaseExecuteError wraps a low-level database error into an AppError
// while keeping the original error in the chain for logging.
func NewDatabaseExecuteError(err error, message string) error {
	return errors.Wrap(
		NewBaseError(http.StatusInternalServerError, "DATABASE_ERROR", message),
		err.Error(),
	)
}
