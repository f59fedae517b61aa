package models

import "errors"

// Common errors for registry and authentication operations.
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrInvalidUser    = errors.New("invalid user")

	// Authentication errors. A single sentinel covers both "no such user"
	// and "wrong password" so the API surface cannot leak which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSecondFactorNotSet = errors.New("second factor not enrolled")

	// Flag errors
	ErrFlagNotFound = errors.New("monitoring flag not found")
)
