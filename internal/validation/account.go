// Package validation provides input validation utilities
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"rollcall/internal/models"
)

const (
	minPasswordLength = 8
	// bcrypt truncates nothing; it rejects inputs over 72 bytes outright,
	// so the cap must be enforced here before hashing.
	maxPasswordLength = 72
)

// ErrPasswordTooLong reports a password over the bcrypt input limit.
var ErrPasswordTooLong = errors.New("password must not exceed 72 characters")

var (
	alnumRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateGender checks that gender is one of the accepted enum values.
func ValidateGender(gender string) error {
	switch gender {
	case models.GenderMale, models.GenderFemale, models.GenderOther:
		return nil
	}
	return fmt.Errorf("malformed gender value")
}

// ValidateOptionalGender accepts an empty value, otherwise delegates to ValidateGender.
func ValidateOptionalGender(gender string) error {
	if gender == "" {
		return nil
	}
	return ValidateGender(gender)
}

// ValidateMaritalStatus checks the marital status enum; empty is allowed.
func ValidateMaritalStatus(status string) error {
	switch status {
	case "", models.MaritalSingle, models.MaritalMarried:
		return nil
	}
	return fmt.Errorf("malformed marital status value")
}

// ValidateUsername checks that a username is non-empty and strictly alphanumeric.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > 150 {
		return fmt.Errorf("username must not exceed 150 characters")
	}
	if !alnumRegex.MatchString(username) {
		return fmt.Errorf("username must be alphanumeric")
	}
	return nil
}

// ValidatePassword enforces the password length bounds.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// ValidateEmail checks basic email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}
	return nil
}

// ParseTriState maps a tri-state dashboard filter value to an optional bool:
// absent (empty) means no filter, "Yes" means true, any other present value
// means false.
func ParseTriState(value string) *bool {
	if value == "" {
		return nil
	}
	v := value == "Yes"
	return &v
}

// ParseDOB parses an optional YYYY-MM-DD date of birth. Empty input yields nil.
func ParseDOB(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth, expected YYYY-MM-DD")
	}
	return &t, nil
}
