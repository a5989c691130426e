// Package app holds the application services and business logic.
package app

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates a session token that is malformed, signed
	// with the wrong secret, or expired.
	ErrInvalidToken = errors.New("invalid token")
	// ErrValidation indicates a request missing required fields.
	ErrValidation = errors.New("missing required fields")
	// ErrSuperseded indicates an operation whose result was discarded
	// because a newer invocation replaced it while it was in flight.
	ErrSuperseded = errors.New("superseded by a newer request")
)
