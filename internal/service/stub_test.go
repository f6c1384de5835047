package service

import (
	"context"
	"testing"

	"rollcall/internal/models"
	"rollcall/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// accountRepoStub is a function-field stub for the account repository.
// Tests override only the calls they expect.
type accountRepoStub struct {
	getByIDFn         func(ctx context.Context, id uint) (*models.Account, error)
	getActiveByIDFn   func(ctx context.Context, id uint) (*models.Account, error)
	getByUsernameFn   func(ctx context.Context, username string) (*models.Account, error)
	usernameTakenFn   func(ctx context.Context, username string, excludeID uint) (bool, error)
	emailTakenFn      func(ctx context.Context, email string, excludeID uint) (bool, error)
	createFn          func(ctx context.Context, account *models.Account) error
	updateFn          func(ctx context.Context, account *models.Account) error
	updateBioFn       func(ctx context.Context, id uint, bio string) error
	updateLastLoginFn func(ctx context.Context, id uint) error
	softDeleteFn      func(ctx context.Context, id uint) error
	restoreFn         func(ctx context.Context, id uint) error
	listFn            func(ctx context.Context, query repository.ListQuery) (*models.AccountPage, error)
}

// noopAccountRepo returns a stub whose calls all succeed with zero values.
func noopAccountRepo() *accountRepoStub {
	return &accountRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Account, error) {
			return &models.Account{ID: id}, nil
		},
		getActiveByIDFn: func(_ context.Context, id uint) (*models.Account, error) {
			return &models.Account{ID: id}, nil
		},
		getByUsernameFn: func(_ context.Context, _ string) (*models.Account, error) {
			return nil, nil
		},
		usernameTakenFn: func(_ context.Context, _ string, _ uint) (bool, error) {
			return false, nil
		},
		emailTakenFn: func(_ context.Context, _ string, _ uint) (bool, error) {
			return false, nil
		},
		createFn:          func(_ context.Context, _ *models.Account) error { return nil },
		updateFn:          func(_ context.Context, _ *models.Account) error { return nil },
		updateBioFn:       func(_ context.Context, _ uint, _ string) error { return nil },
		updateLastLoginFn: func(_ context.Context, _ uint) error { return nil },
		softDeleteFn:      func(_ context.Context, _ uint) error { return nil },
		restoreFn:         func(_ context.Context, _ uint) error { return nil },
		listFn: func(_ context.Context, _ repository.ListQuery) (*models.AccountPage, error) {
			return &models.AccountPage{Page: 1, TotalPages: 1}, nil
		},
	}
}

func (s *accountRepoStub) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	return s.getByIDFn(ctx, id)
}

func (s *accountRepoStub) GetActiveByID(ctx context.Context, id uint) (*models.Account, error) {
	return s.getActiveByIDFn(ctx, id)
}

func (s *accountRepoStub) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.getByUsernameFn(ctx, username)
}

func (s *accountRepoStub) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	return s.usernameTakenFn(ctx, username, excludeID)
}

func (s *accountRepoStub) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return s.emailTakenFn(ctx, email, excludeID)
}

func (s *accountRepoStub) Create(ctx context.Context, account *models.Account) error {
	return s.createFn(ctx, account)
}

func (s *accountRepoStub) Update(ctx context.Context, account *models.Account) error {
	return s.updateFn(ctx, account)
}

func (s *accountRepoStub) UpdateBio(ctx context.Context, id uint, bio string) error {
	return s.updateBioFn(ctx, id, bio)
}

func (s *accountRepoStub) UpdateLastLogin(ctx context.Context, id uint) error {
	return s.updateLastLoginFn(ctx, id)
}

func (s *accountRepoStub) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}

func (s *accountRepoStub) Restore(ctx context.Context, id uint) error {
	return s.restoreFn(ctx, id)
}

func (s *accountRepoStub) List(ctx context.Context, query repository.ListQuery) (*models.AccountPage, error) {
	return s.listFn(ctx, query)
}

// assertValidationError asserts that err is a validation AppError with the
// given message.
func assertValidationError(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}

// assertErrorCode asserts that err is an AppError carrying the given code.
func assertErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}
