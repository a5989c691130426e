// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Account represents a registered user. Accounts are created at registration
// and never mutated or deleted. The password hash is the only credential
// material ever persisted.
type Account struct {
	ID           int64
	Email        string // normalized: lowercased and trimmed
	PasswordHash string
	CreatedAt    time.Time
}

// AccountRepository defines the port for account persistence. Create must
// perform the uniqueness check and the insert atomically: two concurrent
// creates with the same normalized email yield exactly one success and one
// ErrDuplicateEmail.
type AccountRepository interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, email, passwordHash string) (*Account, error)
}
