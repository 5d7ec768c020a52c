package errors

import (
	"net/http"
	"strings"

	"homiio/internal/errors"
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
	if e.details == "" {
		return e.message
	}

	return e.message + ": " + e.details
}

// Is matches any BaseError carrying the same business code, so errors
// enriched through WithDetails still compare equal to the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
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

// MissingFields returns ErrMissingRequiredField naming the absent canonical fields.
func MissingFields(fields ...string) *BaseError {
	return ErrMissingRequiredField.WithDetails(strings.Join(fields, ","))
}

// Predefined error types
var (
	// Address validation errors
	ErrMissingCoordinates = NewBaseError(
		http.StatusBadRequest,
		"MISSING_COORDINATES",
		"address coordinates are required",
		"",
	)

	ErrInvalidCoordinates = NewBaseError(
		http.StatusBadRequest,
		"INVALID_COORDINATES",
		"address coordinates are out of range",
		"",
	)

	ErrMissingRequiredField = NewBaseError(
		http.StatusBadRequest,
		"MISSING_REQUIRED_FIELD",
		"address is missing required fields",
		"",
	)

	ErrEmptyAddressIdentity = NewBaseError(
		http.StatusBadRequest,
		"EMPTY_ADDRESS_IDENTITY",
		"address has no identity fields",
		"",
	)

	ErrInvalidSearchRadius = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SEARCH_RADIUS",
		"search radius must be positive",
		"",
	)

	// Address lookup and conflict errors
	ErrAddressNotFound = NewBaseError(
		http.StatusNotFound,
		"ADDRESS_NOT_FOUND",
		"address not found",
		"",
	)

	ErrAddressKeyConflict = NewBaseError(
		http.StatusConflict,
		"ADDRESS_KEY_CONFLICT",
		"another address already represents this location",
		"",
	)

	// Property errors
	ErrPropertyNotFound = NewBaseError(
		http.StatusNotFound,
		"PROPERTY_NOT_FOUND",
		"property not found",
		"",
	)

	ErrAmbiguousPropertyAddress = NewBaseError(
		http.StatusBadRequest,
		"AMBIGUOUS_PROPERTY_ADDRESS",
		"provide either address fields or an addressId, not both",
		"",
	)

	ErrPropertyAddressRequired = NewBaseError(
		http.StatusBadRequest,
		"PROPERTY_ADDRESS_REQUIRED",
		"property requires an address or an addressId",
		"",
	)

	ErrPropertyAlreadyMigrated = NewBaseError(
		http.StatusConflict,
		"PROPERTY_ALREADY_MIGRATED",
		"property no longer holds an embedded address",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal error",
		"",
	)
)

// IsValidation reports whether err is a client-side input error that must never be persisted or retried.
func IsValidation(err error) bool {
	var appErr AppError
	if !errors.As(err, &appErr) {
		return false
	}

	return appErr.HTTPCode() == http.StatusBadRequest
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface.
// It is the persistence failure surfaced unchanged to callers; nothing in the address subsystem retries it.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// IsPersistence reports whether err is a storage failure.
func IsPersistence(err error) bool {
	var dbErr *DatabaseExecuteError

	return errors.As(err, &dbErr)
}
