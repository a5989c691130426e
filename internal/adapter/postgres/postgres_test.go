package postgres

import (
	"context"
	"testing"
	"time"

	"nearbyconnect/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return &DB{sql: sqlDB}, mock
}

func TestGetByEmail_Found(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, email, password_hash, created_at FROM accounts`).
		WithArgs("user@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(7, "user@example.com", "hash", now))

	acct, err := db.GetByEmail(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), acct.ID)
	assert.Equal(t, "hash", acct.PasswordHash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id, email, password_hash, created_at FROM accounts`).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}))

	_, err := db.GetByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Success(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("user@example.com", "hash", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	acct, err := db.Create(context.Background(), "user@example.com", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(3), acct.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("user@example.com", "hash", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := db.Create(context.Background(), "user@example.com", "hash")
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}
