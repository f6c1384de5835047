package service

import (
	"context"
	"errors"

	"rollcall/internal/models"
	"rollcall/internal/repository"
	"rollcall/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AdminService covers the administrator CRUD surface. Every operation takes
// the caller explicitly and checks the staff+superuser capability itself, so
// the services stay pure functions of their inputs rather than relying on
// ambient session state.
type AdminService struct {
	accounts repository.AccountRepository
}

// CreateAccountInput carries the admin create-user form fields. Flags are
// caller-supplied directly and there is no terms-acceptance requirement.
type CreateAccountInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	DOB             string
	Gender          string
	MaritalStatus   string
	IsActive        bool
	IsStaff         bool
	IsSuperuser     bool
}

// EditAccountInput carries the admin edit-user form fields. Profile fields
// and flags are replaced wholesale on success.
type EditAccountInput struct {
	Username      string
	Email         string
	DOB           string
	Gender        string
	MaritalStatus string
	IsActive      bool
	IsStaff       bool
	IsSuperuser   bool
}

func NewAdminService(accounts repository.AccountRepository) *AdminService {
	return &AdminService{accounts: accounts}
}

// requireAdmin enforces the conjunctive staff+superuser capability.
func (s *AdminService) requireAdmin(caller *models.Account) error {
	if caller == nil || !caller.IsAdmin() {
		return models.NewNotAuthorizedError()
	}
	return nil
}

// ListAccounts returns one dashboard page. Soft-deleted accounts never
// appear regardless of the filters.
func (s *AdminService) ListAccounts(ctx context.Context, caller *models.Account, query repository.ListQuery) (*models.AccountPage, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.accounts.List(ctx, query)
}

// GetAccount fetches a non-deleted account for the edit form.
func (s *AdminService) GetAccount(ctx context.Context, caller *models.Account, id uint) (*models.Account, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.accounts.GetActiveByID(ctx, id)
}

// CreateAccount creates an account on behalf of an administrator.
func (s *AdminService) CreateAccount(ctx context.Context, caller *models.Account, in CreateAccountInput) (*models.Account, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	if in.Username == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, models.NewValidationError("All required fields must be filled.")
	}
	if in.Password != in.ConfirmPassword {
		return nil, models.NewValidationError("Passwords do not match.")
	}
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError("Username must be alphanumeric.")
	}
	if err := validation.ValidateOptionalGender(in.Gender); err != nil {
		return nil, models.NewValidationError("Malformed gender value")
	}
	if err := validation.ValidateMaritalStatus(in.MaritalStatus); err != nil {
		return nil, models.NewValidationError("Malformed marital status value")
	}

	taken, err := s.accounts.UsernameTaken(ctx, in.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError("Username already exists.")
	}

	taken, err = s.accounts.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError("Email already exists.")
	}

	dob, err := validation.ParseDOB(in.DOB)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt rejects inputs over 72 bytes; that is caller input, not a fault
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, models.NewValidationError("Password must not exceed 72 characters.")
		}
		return nil, models.NewInternalError(err)
	}

	account := &models.Account{
		Username:      in.Username,
		Email:         in.Email,
		Password:      string(hashed),
		DOB:           dob,
		Gender:        in.Gender,
		MaritalStatus: in.MaritalStatus,
		IsActive:      in.IsActive,
		IsStaff:       in.IsStaff,
		IsSuperuser:   in.IsSuperuser,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// EditAccount replaces the target's profile fields and flags wholesale.
// Uniqueness is re-checked only when a value actually changed, against all
// other rows including soft-deleted ones.
func (s *AdminService) EditAccount(ctx context.Context, caller *models.Account, id uint, in EditAccountInput) (*models.Account, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username == "" || in.Email == "" {
		return nil, models.NewValidationError("Username and email are required.")
	}
	if err := validation.ValidateOptionalGender(in.Gender); err != nil {
		return nil, models.NewValidationError("Malformed gender value")
	}
	if err := validation.ValidateMaritalStatus(in.MaritalStatus); err != nil {
		return nil, models.NewValidationError("Malformed marital status value")
	}

	if in.Username != account.Username {
		taken, err := s.accounts.UsernameTaken(ctx, in.Username, account.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewValidationError("Username already exists.")
		}
	}

	if in.Email != account.Email {
		taken, err := s.accounts.EmailTaken(ctx, in.Email, account.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewValidationError("Email already exists.")
		}
	}

	dob, err := validation.ParseDOB(in.DOB)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	account.Username = in.Username
	account.Email = in.Email
	account.DOB = dob
	account.Gender = in.Gender
	account.MaritalStatus = in.MaritalStatus
	account.IsActive = in.IsActive
	account.IsStaff = in.IsStaff
	account.IsSuperuser = in.IsSuperuser

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// SoftDeleteAccount marks the target deleted. Deleting an already-deleted
// account succeeds silently; only a missing id is an error.
func (s *AdminService) SoftDeleteAccount(ctx context.Context, caller *models.Account, id uint) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	return s.accounts.SoftDelete(ctx, id)
}

// RestoreAccount clears the deletion flag with no other side effects.
func (s *AdminService) RestoreAccount(ctx context.Context, caller *models.Account, id uint) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}
	return s.accounts.Restore(ctx, id)
}
