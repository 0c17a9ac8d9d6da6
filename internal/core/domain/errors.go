package domain

import "errors"

// Terminal outcomes of a single request. None are retried internally; the
// API layer maps each to exactly one HTTP status.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrUnauthorized       = errors.New("invalid authentication credentials")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrSelfDeletion       = errors.New("cannot delete own account")
	ErrUserNotFound       = errors.New("user not found")
)

// Token validation failures. The guard boundary collapses all three into
// ErrUnauthorized so callers cannot distinguish why a token was rejected.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)
