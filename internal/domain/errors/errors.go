// Package errors defines the application error taxonomy. Every failure that
// should reach a client as something other than a generic internal error is an
// AppError: a Kind plus an error code, a client-safe message and optional extra
// fields that are rendered next to the message.
package errors

import (
	"fmt"
	"maps"

	"catalog/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind            // Failure category
	HTTPCode() int         // HTTP status code
	ErrorCode() string     // Business error code
	Message() string       // Client-safe message
	Extra() map[string]any // Additional fields rendered with the error (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	errorCode string
	message   string
	extra     map[string]any
}

// NewBaseError creates a new base error. An empty errorCode falls back to the kind's default.
func NewBaseError(kind Kind, errorCode, message string) *BaseError {
	if errorCode == "" {
		errorCode = kind.DefaultCode()
	}

	return &BaseError{
		kind:      kind,
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

// Kind returns the failure category
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.kind.HTTPStatus()
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Extra returns a copy of the additional fields
func (e *BaseError) Extra() map[string]any {
	if len(e.extra) == 0 {
		return nil
	}

	return maps.Clone(e.extra)
}

// With returns a copy of the error carrying an additional field.
func (e *BaseError) With(key string, value any) *BaseError {
	extra := make(map[string]any, len(e.extra)+1)
	maps.Copy(extra, e.extra)
	extra[key] = value

	return &BaseError{
		kind:      e.kind,
		errorCode: e.errorCode,
		message:   e.message,
		extra:     extra,
	}
}

// NotFound reports a missing resource. A nil id yields "{resource} not found".
func NotFound(resource string, id any) *BaseError {
	message := resource + " not found"
	if id != nil {
		message = fmt.Sprintf("%s with id '%v' not found", resource, id)
	}

	err := NewBaseError(KindNotFound, CodeNotFound, message).With("resource", resource)
	if id != nil {
		err = err.With("resource_id", id)
	}

	return err
}

// BadRequest reports a request the caller must change before retrying.
func BadRequest(code, message string) *BaseError {
	return NewBaseError(KindBadRequest, code, message)
}

// Conflict reports a request that clashes with existing state.
func Conflict(code, message string) *BaseError {
	return NewBaseError(KindConflict, code, message)
}

// Unauthorized reports missing or invalid credentials.
func Unauthorized(code, message string) *BaseError {
	if message == "" {
		message = "Unauthorized"
	}

	return NewBaseError(KindUnauthorized, code, message)
}

// Forbidden reports an authenticated caller lacking permission.
func Forbidden(code, message string) *BaseError {
	if message == "" {
		message = "Forbidden"
	}

	return NewBaseError(KindForbidden, code, message)
}

// PasswordTooShort reports a password below the minimum byte length.
func PasswordTooShort(minBytes, gotBytes int) *BaseError {
	return BadRequest("PASSWORD_TOO_SHORT", fmt.Sprintf("Password must be at least %d bytes", minBytes)).
		With("password_bytes", gotBytes)
}

// PasswordTooLong reports a password above the bcrypt input cap.
func PasswordTooLong(maxBytes, gotBytes int) *BaseError {
	return BadRequest("PASSWORD_TOO_LONG", fmt.Sprintf("Password cannot exceed %d bytes", maxBytes)).
		With("password_bytes", gotBytes)
}

// Predefined error types
var (
	// Authentication-related errors
	ErrNotAuthenticated    = Unauthorized(CodeUnauthorized, "Not authenticated")
	ErrInvalidCredentials  = Unauthorized("INVALID_CREDENTIALS", "Incorrect username or password")
	ErrTokenInvalid        = Unauthorized(CodeUnauthorized, "Could not validate credentials")
	ErrRefreshTokenInvalid = Unauthorized("REFRESH_TOKEN_INVALID", "Invalid or expired refresh token")
	ErrAccountDisabled     = Forbidden("ACCOUNT_DISABLED", "User account is disabled")
	ErrInactiveUser        = Forbidden(CodeForbidden, "Inactive user")
	ErrInsufficientRole    = Forbidden(CodeForbidden, "Not enough permissions")

	// User-related errors
	ErrEmailExists       = Conflict("EMAIL_EXISTS", "Email already registered")
	ErrUsernameExists    = Conflict("USERNAME_EXISTS", "Username already taken")
	ErrUserAlreadyExists = Conflict("USER_ALREADY_EXISTS", "User already exists")
	ErrInvalidPassword   = BadRequest("INVALID_PASSWORD", "Incorrect password")
	ErrSelfDeactivation  = BadRequest("SELF_DEACTIVATION", "Cannot deactivate your own account")
	ErrSelfDeletion      = BadRequest("SELF_DELETION", "Cannot delete your own account")

	// Catalog-related errors
	ErrMissingQuery = BadRequest("MISSING_QUERY", "Please provide a search query")

	// Internal errors
	ErrPasswordHashFailed = NewBaseError(KindInternal, "PASSWORD_HASH_FAILED", "Password processing failed")
	ErrTokenIssueFailed   = NewBaseError(KindInternal, "TOKEN_ISSUE_FAILED", "Token generation failed")
	ErrInternalError      = NewBaseError(KindInternal, CodeInternalError, "Internal server error")
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err       error
	operation string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, operation string) AppError {
	return &DatabaseExecuteError{
		err:       err,
		operation: operation,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, e.operation).Error()
}

// Unwrap exposes the driver error to errors.Is and errors.As
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns KindInternal
func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return KindInternal.HTTPStatus()
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Extra returns nil; driver details are never rendered.
func (e *DatabaseExecuteError) Extra() map[string]any {
	return nil
}
