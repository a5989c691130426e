// Package memory implements an in-memory account repository for development
// and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"nearbyconnect/internal/domain"
)

// DB implements in-memory account storage.
type DB struct {
	mu        sync.Mutex
	accounts  map[string]*domain.Account // keyed by normalized email
	idCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{accounts: make(map[string]*domain.Account)}
}

var _ domain.AccountRepository = (*DB)(nil)

// GetByEmail returns the account with the given normalized email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	acct, ok := db.accounts[email]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *acct
	return &cp, nil
}

// Create inserts a new account. The check and the insert happen under one
// lock, so concurrent creates with the same email yield exactly one success.
func (db *DB) Create(ctx context.Context, email, passwordHash string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.accounts[email]; ok {
		return nil, domain.ErrDuplicateEmail
	}

	db.idCounter++
	acct := &domain.Account{
		ID:           db.idCounter,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.accounts[email] = acct

	cp := *acct
	return &cp, nil
}
