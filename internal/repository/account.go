// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"rollcall/internal/cache"
	"rollcall/internal/database"
	"rollcall/internal/models"

	"gorm.io/gorm"
)

// PageSize is the fixed page size of the admin dashboard listing.
const PageSize = 10

// ListQuery describes the admin dashboard filters. Zero values mean
// "no filter"; the boolean filters are tri-state via pointers.
type ListQuery struct {
	Search        string
	Gender        string
	MaritalStatus string
	IsActive      *bool
	IsStaff       *bool
	IsSuperuser   *bool
	Ordering      string
	Page          int
}

// sortableColumns is the allow-list of ordering fields. Anything not listed
// here is rejected instead of being forwarded to the store.
var sortableColumns = map[string]string{
	"id":             "id",
	"username":       "username",
	"email":          "email",
	"gender":         "gender",
	"marital_status": "marital_status",
	"is_active":      "is_active",
	"is_staff":       "is_staff",
	"is_superuser":   "is_superuser",
	"date_joined":    "date_joined",
	"last_login":     "last_login",
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// GetByID returns the account regardless of its deletion flag, so
	// soft-deleted rows stay addressable for restore.
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	// GetActiveByID returns the account only when it is not soft-deleted.
	GetActiveByID(ctx context.Context, id uint) (*models.Account, error)
	// GetByUsername looks across all rows, including soft-deleted ones,
	// and returns (nil, nil) when no account matches.
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	// UsernameTaken checks uniqueness across all rows, optionally excluding one id.
	UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error)
	// EmailTaken checks uniqueness across all rows, optionally excluding one id.
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	Create(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, account *models.Account) error
	UpdateBio(ctx context.Context, id uint, bio string) error
	UpdateLastLogin(ctx context.Context, id uint) error
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	List(ctx context.Context, query ListQuery) (*models.AccountPage, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns a new AccountRepository implementation.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	key := cache.AccountKey(id)

	err := cache.Aside(ctx, key, &account, cache.AccountTTL, func() error {
		if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Account", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetActiveByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Account", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}

func (r *accountRepository) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	return r.columnTaken(ctx, "username", username, excludeID)
}

func (r *accountRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return r.columnTaken(ctx, "email", email, excludeID)
}

// columnTaken counts over ALL rows: soft-deleted accounts still reserve
// their username and email.
func (r *accountRepository) columnTaken(ctx context.Context, column, value string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		// A concurrent writer can slip past the pre-checks; surface the same
		// message the pre-check would have produced.
		switch database.UniqueViolationColumn(err) {
		case "username":
			return models.NewValidationError("Username is already taken.")
		case "email":
			return models.NewValidationError("Email is already registered.")
		}
		if database.IsUniqueViolation(err) {
			return models.NewValidationError("Account already exists.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *accountRepository) Update(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Save(account).Error; err != nil {
		switch database.UniqueViolationColumn(err) {
		case "username":
			return models.NewValidationError("Username already exists.")
		case "email":
			return models.NewValidationError("Email already exists.")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateAccount(ctx, account.ID)
	return nil
}

func (r *accountRepository) UpdateBio(ctx context.Context, id uint, bio string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Update("bio", bio)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Account", id)
	}
	cache.InvalidateAccount(ctx, id)
	return nil
}

func (r *accountRepository) UpdateLastLogin(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Update("last_login", gorm.Expr("CURRENT_TIMESTAMP"))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	cache.InvalidateAccount(ctx, id)
	return nil
}

// SoftDelete marks the account deleted. Re-deleting an already-deleted
// account is a no-op success; only a missing row is an error.
func (r *accountRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.setDeleted(ctx, id, true)
}

// Restore clears the deletion flag and nothing else.
func (r *accountRepository) Restore(ctx context.Context, id uint) error {
	return r.setDeleted(ctx, id, false)
}

func (r *accountRepository) setDeleted(ctx context.Context, id uint, deleted bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		Update("is_deleted", deleted)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Account", id)
	}
	cache.InvalidateAccount(ctx, id)
	return nil
}

// List composes the admin dashboard query: soft-deleted rows are always
// excluded, filters are ANDed, ordering is validated against the allow-list,
// and an out-of-range page clamps to the nearest valid page.
func (r *accountRepository) List(ctx context.Context, query ListQuery) (*models.AccountPage, error) {
	order, err := orderClause(query.Ordering)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("is_deleted = ?", false)

	if query.Search != "" {
		pattern := "%" + strings.ToLower(query.Search) + "%"
		q = q.Where(
			"LOWER(username) LIKE ? OR LOWER(email) LIKE ? OR LOWER(gender) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if query.Gender != "" {
		q = q.Where("gender = ?", query.Gender)
	}
	if query.MaritalStatus != "" {
		q = q.Where("marital_status = ?", query.MaritalStatus)
	}
	if query.IsActive != nil {
		q = q.Where("is_active = ?", *query.IsActive)
	}
	if query.IsStaff != nil {
		q = q.Where("is_staff = ?", *query.IsStaff)
	}
	if query.IsSuperuser != nil {
		q = q.Where("is_superuser = ?", *query.IsSuperuser)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var accounts []models.Account
	err = q.Order(order).
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&accounts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &models.AccountPage{
		Accounts:   accounts,
		Page:       page,
		PageSize:   PageSize,
		TotalPages: totalPages,
		TotalCount: total,
		HasOther:   totalPages > 1,
	}, nil
}

// orderClause validates the requested ordering field against the allow-list.
// A leading "-" selects descending order; the default is newest first.
func orderClause(ordering string) (string, error) {
	if ordering == "" {
		ordering = "-date_joined"
	}

	field := ordering
	desc := false
	if strings.HasPrefix(field, "-") {
		field = field[1:]
		desc = true
	}

	column, ok := sortableColumns[field]
	if !ok {
		return "", models.NewInvalidOrderingError(ordering)
	}

	if desc {
		return column + " DESC", nil
	}
	return column + " ASC", nil
}
