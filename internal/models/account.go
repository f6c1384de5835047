// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Gender values accepted on an account profile.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Marital status values accepted on an account profile.
const (
	MaritalSingle  = "Single"
	MaritalMarried = "Married"
)

// Account represents a user account in Rollcall.
//
// IsDeleted is a plain column rather than gorm.DeletedAt on purpose:
// soft-deleted rows must still participate in username/email uniqueness
// checks and must stay addressable by id so they can be restored.
type Account struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Username      string     `gorm:"uniqueIndex;not null" json:"username"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"not null" json:"-"`
	DOB           *time.Time `gorm:"column:dob" json:"dob,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	MaritalStatus string     `json:"marital_status,omitempty"`
	Bio           string     `json:"bio"`
	IsActive      bool       `json:"is_active"`
	IsStaff       bool       `json:"is_staff"`
	IsSuperuser   bool       `json:"is_superuser"`
	IsDeleted     bool       `gorm:"index" json:"is_deleted"`
	AgreeToTerms  bool       `json:"agree_to_terms"`
	DateJoined    time.Time  `gorm:"autoCreateTime" json:"date_joined"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
}

// IsAdmin reports whether the account may use the administrator surface.
// Both flags are required, checked conjunctively at every admin entry point.
func (a *Account) IsAdmin() bool {
	return a.IsStaff && a.IsSuperuser
}
