// Package errors defines the application error taxonomy and its HTTP mapping.
package errors

import (
	"net/http"

	"tastelocal/internal/errors"
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
	kind      *BaseError
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
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is reports whether target is this error or the predefined error it was
// derived from with WithDetails.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e == t || (e.kind != nil && e.kind == t)
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

// WithDetails adds detailed error information. The result still matches the
// original with errors.Is.
func (e *BaseError) WithDetails(details string) *BaseError {
	kind := e.kind
	if kind == nil {
		kind = e
	}

	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
		kind:      kind,
	}
}

// Predefined error types
var (
	// ErrNotFound is returned when a document, or an item inside one, does not exist.
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"no business found",
		"",
	)

	// ErrUserNotFound is returned when no profile exists for an identity.
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user profile not found",
		"",
	)

	// ErrValidationFailed is returned before any state change when input is rejected.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"invalid input",
		"",
	)

	// ErrUserAlreadyExists is returned when registering an identity twice.
	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"this account is already registered",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"authentication required",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"resource conflict",
		"",
	)

	ErrStoreClosed = NewBaseError(
		http.StatusServiceUnavailable,
		"STORE_CLOSED",
		"business store is closed",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// WriteError reports that persisting a change to the document store failed.
// The local state has already been rolled back when a mutator returns it.
type WriteError struct {
	err     error
	details string
}

// NewWriteError wraps the cause of a failed remote write.
func NewWriteError(err error, details string) *WriteError {
	return &WriteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *WriteError) Error() string {
	return errors.Wrap(e.err, "document write failed").Error()
}

// Unwrap returns the cause.
func (e *WriteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *WriteError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *WriteError) ErrorCode() string {
	return "WRITE_FAILED"
}

// Message returns the user-friendly error message
func (e *WriteError) Message() string {
	return "could not save your changes, please try again"
}

// Details returns detailed error information
func (e *WriteError) Details() string {
	return e.details
}

// IsWriteError reports whether err carries a WriteError.
func IsWriteError(err error) bool {
	var writeErr *WriteError

	return errors.As(err, &writeErr)
}

// Validation returns ErrValidationFailed carrying the given reason.
func Validation(details string) *BaseError {
	return ErrValidationFailed.WithDetails(details)
}

// NotFound returns ErrNotFound carrying the given reason.
func NotFound(details string) *BaseError {
	return ErrNotFound.WithDetails(details)
}
