// Package postgres implements account persistence backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nearbyconnect/internal/domain"

	"github.com/lib/pq"
)

// DB wraps the SQL connection pool.
type DB struct {
	sql *sql.DB
}

// Open connects, pings and migrates.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

var _ domain.AccountRepository = (*DB)(nil)

// GetByEmail returns the account with the given normalized email.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM accounts WHERE email=$1;`, email)

	var a domain.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new account. The unique index on email makes the
// check-and-insert atomic; the losing side of a concurrent registration
// surfaces as a unique violation and is mapped to domain.ErrDuplicateEmail.
func (d *DB) Create(ctx context.Context, email, passwordHash string) (*domain.Account, error) {
	a := domain.Account{Email: email, PasswordHash: passwordHash, CreatedAt: time.Now().UTC()}
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO accounts(email, password_hash, created_at) VALUES($1, $2, $3) RETURNING id;`,
		a.Email, a.PasswordHash, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return &a, nil
}
