package domain

import "errors"

var (
	// ErrDuplicateEmail indicates an account with the same normalized email
	// already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrAccountNotFound indicates no account matches the given email.
	ErrAccountNotFound = errors.New("account not found")
	// ErrLocationNotFound indicates the geocoder produced no candidate for
	// the given text.
	ErrLocationNotFound = errors.New("location not found")
	// ErrUpstreamUnavailable indicates a network, timeout or server failure
	// against an external data source. Calls are independently failable and
	// are never retried automatically.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
