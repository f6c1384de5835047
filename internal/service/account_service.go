package service

import (
	"context"
	"errors"

	"rollcall/internal/models"
	"rollcall/internal/repository"
	"rollcall/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AccountService covers the self-service surface: registration and the
// bio editor.
type AccountService struct {
	accounts repository.AccountRepository
}

// RegisterInput carries the self-registration form fields.
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	DOB             string
	Gender          string
	MaritalStatus   string
	AgreeToTerms    bool
}

func NewAccountService(accounts repository.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// Register validates and creates a new account. Each check short-circuits
// with its own message; the order is part of the contract.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	if err := validation.ValidateGender(in.Gender); err != nil {
		return nil, models.NewValidationError("Malformed gender value")
	}

	if in.Username == "" || in.Email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return nil, models.NewValidationError("All fields are required.")
	}

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError("Username must be alphanumeric.")
	}

	if err := validation.ValidatePassword(in.Password); err != nil {
		if errors.Is(err, validation.ErrPasswordTooLong) {
			return nil, models.NewValidationError("Password must not exceed 72 characters.")
		}
		return nil, models.NewValidationError("Password must be at least 8 characters long.")
	}

	if in.Password != in.ConfirmPassword {
		return nil, models.NewValidationError("Passwords do not match.")
	}

	taken, err := s.accounts.UsernameTaken(ctx, in.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError("Username is already taken.")
	}

	taken, err = s.accounts.EmailTaken(ctx, in.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewValidationError("Email is already registered.")
	}

	if !in.AgreeToTerms {
		return nil, models.NewValidationError("You must accept the terms and conditions.")
	}

	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError("Invalid email format.")
	}
	if err := validation.ValidateMaritalStatus(in.MaritalStatus); err != nil {
		return nil, models.NewValidationError("Malformed marital status value")
	}
	dob, err := validation.ParseDOB(in.DOB)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	account := &models.Account{
		Username:      in.Username,
		Email:         in.Email,
		Password:      string(hashed),
		DOB:           dob,
		Gender:        in.Gender,
		MaritalStatus: in.MaritalStatus,
		IsActive:      true,
		AgreeToTerms:  true,
	}

	// The store's unique constraint is the real enforcement; a race-lost
	// insert comes back as the same taken/registered validation error.
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// UpdateBio replaces the caller's bio and nothing else. The target is the
// session identity; there is no id parameter on this path.
func (s *AccountService) UpdateBio(ctx context.Context, accountID uint, bio string) (*models.Account, error) {
	account, err := s.accounts.GetActiveByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.UpdateBio(ctx, account.ID, bio); err != nil {
		return nil, err
	}
	account.Bio = bio

	return account, nil
}
