package app

import (
	"context"
	"errors"
	"strings"

	"nearbyconnect/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the work factor used by the original deployment.
const bcryptCost = 10

// CredentialService handles account registration and password login.
type CredentialService struct {
	accounts domain.AccountRepository
}

// NewCredentialService creates a credential service backed by the given
// account repository.
func NewCredentialService(accounts domain.AccountRepository) *CredentialService {
	return &CredentialService{accounts: accounts}
}

// NormalizeEmail lowercases and trims an email address. Account uniqueness
// is enforced over this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account. The uniqueness check happens atomically
// in the repository, so a losing concurrent registration gets
// domain.ErrDuplicateEmail rather than overwriting.
func (s *CredentialService) Register(ctx context.Context, email, password string) error {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	_, err = s.accounts.Create(ctx, email, string(hash))
	return err
}

// Login authenticates email and password, returning the matching account.
func (s *CredentialService) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	acct, err := s.accounts.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return acct, nil
}
