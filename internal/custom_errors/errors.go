package custom_errors

import "errors"

// Post domain errors.
var (
	ErrPostNotFound     = errors.New("post not found")
	ErrPostValidation   = errors.New("post validation failed")
	ErrNoUpdateRows     = errors.New("no fields to update")
	ErrForbidden        = errors.New("operation forbidden")
	ErrInvalidInput     = errors.New("invalid input")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailAlreadyUsed = errors.New("email already registered")
)

// Auth and session errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrSessionNotFound    = errors.New("session not found")
)

// Infrastructure errors.
var (
	ErrDatabaseQuery        = errors.New("database query error")
	ErrDatabaseScan         = errors.New("database scan error")
	ErrCacheMiss            = errors.New("cache miss")
	ErrExternalServiceError = errors.New("external service error")
)
