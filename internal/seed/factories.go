// Package seed provides helpers to create demo and test data for the
// account database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"rollcall/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds accounts and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildAccount constructs an account with realistic fake data but does not
// persist it. Overrides run last so callers can pin any field.
func (f *Factory) BuildAccount(overrides ...func(*models.Account)) *models.Account {
	gender := models.GenderMale
	if f.rand.Intn(2) == 0 {
		gender = models.GenderFemale
	}
	marital := models.MaritalSingle
	if f.rand.Intn(3) == 0 {
		marital = models.MaritalMarried
	}

	dob := gofakeit.DateRange(
		time.Date(1955, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC),
	)

	account := &models.Account{
		Username:      fmt.Sprintf("%s%d", gofakeit.Username(), f.rand.Intn(10000)),
		Email:         gofakeit.Email(),
		Password:      HashedPassword("password123"),
		DOB:           &dob,
		Gender:        gender,
		MaritalStatus: marital,
		Bio:           gofakeit.Sentence(8),
		IsActive:      true,
		AgreeToTerms:  true,
	}

	// realistic join-date spread over the last two years
	daysBack := f.rand.Intn(730)
	account.DateJoined = time.Now().Add(-time.Duration(daysBack) * 24 * time.Hour)

	// most accounts have logged in at least once
	if f.rand.Intn(10) > 0 {
		lastLogin := account.DateJoined.Add(time.Duration(f.rand.Intn(daysBack*24+1)) * time.Hour)
		account.LastLogin = &lastLogin
	}

	for _, override := range overrides {
		override(account)
	}
	return account
}

// CreateAccount builds and persists an account.
func (f *Factory) CreateAccount(overrides ...func(*models.Account)) (*models.Account, error) {
	account := f.BuildAccount(overrides...)
	if err := f.db.Create(account).Error; err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// CreateAccountsBatch persists n accounts in a single insert.
func (f *Factory) CreateAccountsBatch(n int, overrides ...func(*models.Account)) ([]*models.Account, error) {
	accounts := make([]*models.Account, 0, n)
	for i := 0; i < n; i++ {
		accounts = append(accounts, f.BuildAccount(overrides...))
	}
	if err := f.db.CreateInBatches(accounts, 100).Error; err != nil {
		return nil, fmt.Errorf("failed to batch create accounts: %w", err)
	}
	return accounts, nil
}

// HashedPassword bcrypt-hashes a plaintext password, panicking on failure.
// Seeding is a development-only path so a panic is acceptable here.
func HashedPassword(plain string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("bcrypt failed: %v", err))
	}
	return string(hash)
}
