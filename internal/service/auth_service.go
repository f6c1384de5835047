// Package service contains the application's business logic.
package service

import (
	"context"
	"time"

	"rollcall/internal/middleware"
	"rollcall/internal/models"
	"rollcall/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies credentials for both the regular and the
// administrator login paths.
type AuthService struct {
	accounts repository.AccountRepository
}

func NewAuthService(accounts repository.AccountRepository) *AuthService {
	return &AuthService{accounts: accounts}
}

// Authenticate verifies a username/password pair. Credential failures are
// indistinguishable from unknown usernames; the deactivation check runs only
// after the credentials matched.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		middleware.AuthFailures.WithLabelValues("invalid_credentials").Inc()
		return nil, models.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		middleware.AuthFailures.WithLabelValues("invalid_credentials").Inc()
		return nil, models.NewInvalidCredentialsError()
	}

	if account.IsDeleted {
		middleware.AuthFailures.WithLabelValues("deactivated").Inc()
		return nil, models.NewAccountDeactivatedError()
	}

	if err := s.accounts.UpdateLastLogin(ctx, account.ID); err != nil {
		return nil, err
	}
	now := time.Now()
	account.LastLogin = &now

	return account, nil
}

// AuthenticateAdmin verifies credentials and the administrator capability.
// Any failure other than a deactivated account collapses into the same
// generic denial so the privileged path never reveals whether the
// credentials themselves were valid.
func (s *AuthService) AuthenticateAdmin(ctx context.Context, username, password string) (*models.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil || bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		middleware.AuthFailures.WithLabelValues("admin_denied").Inc()
		return nil, models.NewNotAuthorizedError()
	}

	if account.IsDeleted {
		middleware.AuthFailures.WithLabelValues("deactivated").Inc()
		return nil, models.NewAccountDeactivatedError()
	}

	if !account.IsAdmin() {
		middleware.AuthFailures.WithLabelValues("admin_denied").Inc()
		return nil, models.NewNotAuthorizedError()
	}

	if err := s.accounts.UpdateLastLogin(ctx, account.ID); err != nil {
		return nil, err
	}
	now := time.Now()
	account.LastLogin = &now

	return account, nil
}
