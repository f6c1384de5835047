package seed

import (
	"fmt"
	"log"

	"rollcall/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumAccounts int
	NumDeleted  int
	ShouldClean bool
}

// Run populates the database with a superuser, demo accounts, and a handful
// of soft-deleted accounts so the dashboard filters have data to chew on.
func Run(db *gorm.DB, opts Options) error {
	if opts.ShouldClean {
		log.Println("Cleaning accounts table...")
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Account{}).Error; err != nil {
			return fmt.Errorf("failed to clean accounts: %w", err)
		}
	}

	factory := NewFactory(db)

	// Deterministic admin for local logins
	admin, err := factory.CreateAccount(func(a *models.Account) {
		a.Username = "admin"
		a.Email = "admin@example.com"
		a.Password = HashedPassword("adminpass123")
		a.IsStaff = true
		a.IsSuperuser = true
	})
	if err != nil {
		return err
	}
	log.Printf("Created superuser %q (id=%d)", admin.Username, admin.ID)

	// Staff-but-not-superuser account: useful for checking that the admin
	// surface requires both flags.
	if _, err := factory.CreateAccount(func(a *models.Account) {
		a.Username = "staffonly"
		a.Email = "staff@example.com"
		a.IsStaff = true
	}); err != nil {
		return err
	}

	if opts.NumAccounts > 0 {
		if _, err := factory.CreateAccountsBatch(opts.NumAccounts); err != nil {
			return err
		}
		log.Printf("Created %d demo accounts", opts.NumAccounts)
	}

	if opts.NumDeleted > 0 {
		if _, err := factory.CreateAccountsBatch(opts.NumDeleted, func(a *models.Account) {
			a.IsDeleted = true
		}); err != nil {
			return err
		}
		log.Printf("Created %d soft-deleted accounts", opts.NumDeleted)
	}

	return nil
}
