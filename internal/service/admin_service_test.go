package service

import (
	"context"
	"strings"
	"testing"

	"rollcall/internal/models"
	"rollcall/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminCaller() *models.Account {
	return &models.Account{ID: 99, Username: "admin", IsStaff: true, IsSuperuser: true}
}

func TestAdminService_RequiresAdminCapability(t *testing.T) {
	t.Parallel()

	callers := []struct {
		name   string
		caller *models.Account
	}{
		{name: "nil caller", caller: nil},
		{name: "regular account", caller: &models.Account{ID: 1}},
		{name: "staff only", caller: &models.Account{ID: 1, IsStaff: true}},
		{name: "superuser only", caller: &models.Account{ID: 1, IsSuperuser: true}},
	}

	for _, tc := range callers {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := NewAdminService(noopAccountRepo())
			ctx := context.Background()

			_, err := svc.ListAccounts(ctx, tc.caller, repository.ListQuery{})
			assertErrorCode(t, err, models.CodeNotAuthorized)

			_, err = svc.GetAccount(ctx, tc.caller, 1)
			assertErrorCode(t, err, models.CodeNotAuthorized)

			_, err = svc.CreateAccount(ctx, tc.caller, CreateAccountInput{})
			assertErrorCode(t, err, models.CodeNotAuthorized)

			_, err = svc.EditAccount(ctx, tc.caller, 1, EditAccountInput{})
			assertErrorCode(t, err, models.CodeNotAuthorized)

			err = svc.SoftDeleteAccount(ctx, tc.caller, 1)
			assertErrorCode(t, err, models.CodeNotAuthorized)

			err = svc.RestoreAccount(ctx, tc.caller, 1)
			assertErrorCode(t, err, models.CodeNotAuthorized)
		})
	}
}

func TestAdminService_CreateAccount(t *testing.T) {
	t.Parallel()

	validInput := func() CreateAccountInput {
		return CreateAccountInput{
			Username:        "newuser",
			Email:           "new@example.com",
			Password:        "password123",
			ConfirmPassword: "password123",
			Gender:          models.GenderMale,
			IsActive:        true,
		}
	}

	t.Run("success with flags", func(t *testing.T) {
		t.Parallel()
		repo := noopAccountRepo()
		var created *models.Account
		repo.createFn = func(_ context.Context, account *models.Account) error {
			created = account
			return nil
		}
		svc := NewAdminService(repo)

		in := validInput()
		in.IsStaff = true
		in.IsSuperuser = true
		account, err := svc.CreateAccount(context.Background(), adminCaller(), in)
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.True(t, account.IsStaff)
		assert.True(t, account.IsSuperuser)
		// Admin creation carries no terms acceptance
		assert.False(t, account.AgreeToTerms)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		svc := NewAdminService(noopAccountRepo())
		in := validInput()
		in.Password = ""
		_, err := svc.CreateAccount(context.Background(), adminCaller(), in)
		assertValidationError(t, err, "All required fields must be filled.")
	})

	t.Run("password mismatch", func(t *testing.T) {
		t.Parallel()
		svc := NewAdminService(noopAccountRepo())
		in := validInput()
		in.ConfirmPassword = "different123"
		_, err := svc.CreateAccount(context.Background(), adminCaller(), in)
		assertValidationError(t, err, "Passwords do not match.")
	})

	t.Run("password over the bcrypt limit", func(t *testing.T) {
		t.Parallel()
		svc := NewAdminService(noopAccountRepo())
		in := validInput()
		long := strings.Repeat("x", 100)
		in.Password = long
		in.ConfirmPassword = long
		_, err := svc.CreateAccount(context.Background(), adminCaller(), in)
		assertValidationError(t, err, "Password must not exceed 72 characters.")
	})

	t.Run("username exists", func(t *testing.T) {
		t.Parallel()
		repo := noopAccountRepo()
		repo.usernameTakenFn = func(_ context.Context, _ string, _ uint) (bool, error) {
			return true, nil
		}
		svc := NewAdminService(repo)
		_, err := svc.CreateAccount(context.Background(), adminCaller(), validInput())
		assertValidationError(t, err, "Username already exists.")
	})

	t.Run("email exists", func(t *testing.T) {
		t.Parallel()
		repo := noopAccountRepo()
		repo.emailTakenFn = func(_ context.Context, _ string, _ uint) (bool, error) {
			return true, nil
		}
		svc := NewAdminService(repo)
		_, err := svc.CreateAccount(context.Background(), adminCaller(), validInput())
		assertValidationError(t, err, "Email already exists.")
	})
}

func TestAdminService_EditAccount(t *testing.T) {
	t.Parallel()

	stored := func() *models.Account {
		return &models.Account{
			ID:            5,
			Username:      "target",
			Email:         "target@example.com",
			Password:      "hashed-secret",
			Gender:        models.GenderMale,
			MaritalStatus: models.MaritalSingle,
			IsActive:      true,
		}
	}

	t.Run("full replace of profile fields and flags", func(t *testing.T) {
		t.Parallel()
		repo := noopAccountRepo()
		repo.getActiveByIDFn = func(_ context.Context, _ uint) (*models.Account, error) {
			return stored(), nil
		}
		var saved *models.Account
		repo.updateFn = func(_ context.Context, account *models.Account) error {
			saved = account
			return nil
		}
		svc := NewAdminService(repo)

		account, err := svc.EditAccount(context.Background(), adminCaller(), 5, EditAccountInput{
			Username:      "renamed",
			Email:         "renamed@example.com",
			DOB:           "1985-01-15",
			Gender:        models.GenderFemale,
			MaritalStatus: models.MaritalMarried,
			IsActive:      false,
			IsStaff:       true,
			IsSuperuser:   false,
		})
		require.NoError(t, err)
		require.NotNil(t, saved)

		assert.Equal(t, "renamed", account.Username)
		assert.Equal(t, "renamed@example.com", account.Email)
		assert.Equal(t, models.GenderFemale, account.Gender)
		assert.Equal(t, models.MaritalMarried, account.MaritalStatus)
		assert.False(t, account.IsActive)
		assert.True(t, account.IsStaff)
		require.NotNil(t, account.DOB)
		assert.Equal(t, 1985, account.DOB.Year())
		// The password is never touched by an edit
		assert.Equal(t, "hashed-secret", saved.Password)
	})

	t.Run("uniqueness not rechecked when values unchanged", func(t *testing.T) {
		t.Parallel()
		repo := noopAccountRepo()
		repo.getActiveByIDFn = func(_ context.Context, _ uint) (*models.Account, error) {
			return stored(), nil
		}
		repo.usernameTakenFn = func(_ context.Context, _ string, _ uint) (bool, error) {
			t.Fatal("UsernameTaken should not be called for an unchanged username")
			return false, nil
		}
		repo.emailTakenFn = func(_ context.Context, _ string, _ uint) (bool, error) {
			t.Fatal("EmailTaken should not be called for an unchanged email")
			return false, nil
		}
		svc := NewAdminService(repo)

		_, err := svc.EditAccount(context.Background(), adminCaller(), 5, EditAccountInput{
			Username:      "target",
			Email:         "target@example.com",
			Gender:        models.GenderMale,
			MaritalStatus: models.MaritalSingle,
			IsActive:      true,
		})
		require.NoError(t, err)
	})

	t.Run("changed username collides", func(t *testing.T) {
		t.Parallel()
		repo := noopAccountRepo()
		repo.getActiveByIDFn = func(_ context.Context, _ uint) (*models.Account, error) {
			return stored(), nil
		}
		var excludeSeen uint
		repo.usernameTakenFn = func(_ context.Context, _ string, excludeID uint) (bool, error) {
			excludeSeen = excludeID
			return true, nil
		}
		svc := NewAdminService(repo)

		_, err := svc.EditAccount(context.Background(), adminCaller(), 5, EditAccountInput{
			Username: "someoneelse",
			Email:    "target@example.com",
		})
		assertValidationError(t, err, "Username already exists.")
		assert.Equal(t, uint(5), excludeSeen, "the target's own row is excluded from the check")
	})

	t.Run("missing username or email", func(t *testing.T) {
		t.Parallel()
		repo := noopAccountRepo()
		repo.getActiveByIDFn = func(_ context.Context, _ uint) (*models.Account, error) {
			return stored(), nil
		}
		svc := NewAdminService(repo)

		_, err := svc.EditAccount(context.Background(), adminCaller(), 5, EditAccountInput{
			Username: "",
			Email:    "target@example.com",
		})
		assertValidationError(t, err, "Username and email are required.")
	})

	t.Run("deleted target reads as missing", func(t *testing.T) {
		t.Parallel()
		repo := noopAccountRepo()
		repo.getActiveByIDFn = func(_ context.Context, id uint) (*models.Account, error) {
			return nil, models.NewNotFoundError("Account", id)
		}
		svc := NewAdminService(repo)

		_, err := svc.EditAccount(context.Background(), adminCaller(), 5, EditAccountInput{
			Username: "x",
			Email:    "x@example.com",
		})
		assertErrorCode(t, err, models.CodeNotFound)
	})
}

func TestAdminService_SoftDeleteAndRestore(t *testing.T) {
	t.Parallel()

	t.Run("delete delegates to the store", func(t *testing.T) {
		t.Parallel()
		repo := noopAccountRepo()
		var deletedID uint
		repo.softDeleteFn = func(_ context.Context, id uint) error {
			deletedID = id
			return nil
		}
		svc := NewAdminService(repo)

		require.NoError(t, svc.SoftDeleteAccount(context.Background(), adminCaller(), 7))
		assert.Equal(t, uint(7), deletedID)
	})

	t.Run("restore delegates to the store", func(t *testing.T) {
		t.Parallel()
		repo := noopAccountRepo()
		var restoredID uint
		repo.restoreFn = func(_ context.Context, id uint) error {
			restoredID = id
			return nil
		}
		svc := NewAdminService(repo)

		require.NoError(t, svc.RestoreAccount(context.Background(), adminCaller(), 7))
		assert.Equal(t, uint(7), restoredID)
	})

	t.Run("missing id surfaces not found", func(t *testing.T) {
		t.Parallel()
		repo := noopAccountRepo()
		repo.softDeleteFn = func(_ context.Context, id uint) error {
			return models.NewNotFoundError("Account", id)
		}
		svc := NewAdminService(repo)

		err := svc.SoftDeleteAccount(context.Background(), adminCaller(), 9999)
		assertErrorCode(t, err, models.CodeNotFound)
	})
}
