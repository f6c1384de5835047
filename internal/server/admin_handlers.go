package server

import (
	"strconv"

	"rollcall/internal/middleware"
	"rollcall/internal/models"
	"rollcall/internal/repository"
	"rollcall/internal/service"
	"rollcall/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateRequest is the admin create-user payload.
type AdminCreateRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	DOB             string `json:"dob"`
	Gender          string `json:"gender"`
	MaritalStatus   string `json:"marital_status"`
	IsActive        bool   `json:"is_active"`
	IsStaff         bool   `json:"is_staff"`
	IsSuperuser     bool   `json:"is_superuser"`
}

// AdminEditRequest is the admin edit-user payload. Profile fields and flags
// replace the stored values wholesale.
type AdminEditRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	DOB           string `json:"dob"`
	Gender        string `json:"gender"`
	MaritalStatus string `json:"marital_status"`
	IsActive      bool   `json:"is_active"`
	IsStaff       bool   `json:"is_staff"`
	IsSuperuser   bool   `json:"is_superuser"`
}

// AdminListAccounts serves the dashboard listing with search, filters,
// ordering and pagination.
func (s *Server) AdminListAccounts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))

	query := repository.ListQuery{
		Search:        c.Query("search"),
		Gender:        c.Query("gender"),
		MaritalStatus: c.Query("marital_status"),
		IsActive:      validation.ParseTriState(c.Query("is_active")),
		IsStaff:       validation.ParseTriState(c.Query("is_staff")),
		IsSuperuser:   validation.ParseTriState(c.Query("is_superuser")),
		Ordering:      c.Query("ordering"),
		Page:          page,
	}

	result, err := s.adminService.ListAccounts(c.Context(), currentAccount(c), query)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// AdminGetAccount returns a single active account by ID. Soft-deleted
// accounts are reported as not found.
func (s *Server) AdminGetAccount(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	account, err := s.adminService.GetAccount(c.Context(), currentAccount(c), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"account": account,
	})
}

// AdminCreateAccount creates an account from the dashboard.
func (s *Server) AdminCreateAccount(c *fiber.Ctx) error {
	var req AdminCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	account, err := s.adminService.CreateAccount(c.Context(), currentAccount(c), service.CreateAccountInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		DOB:             req.DOB,
		Gender:          req.Gender,
		MaritalStatus:   req.MaritalStatus,
		IsActive:        req.IsActive,
		IsStaff:         req.IsStaff,
		IsSuperuser:     req.IsSuperuser,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "account created by admin",
		"account_id", account.ID, "username", account.Username)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully.",
		"account": account,
	})
}

// AdminEditAccount replaces an account's profile fields and flags.
func (s *Server) AdminEditAccount(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req AdminEditRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	account, err := s.adminService.EditAccount(c.Context(), currentAccount(c), id, service.EditAccountInput{
		Username:      req.Username,
		Email:         req.Email,
		DOB:           req.DOB,
		Gender:        req.Gender,
		MaritalStatus: req.MaritalStatus,
		IsActive:      req.IsActive,
		IsStaff:       req.IsStaff,
		IsSuperuser:   req.IsSuperuser,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "account edited by admin",
		"account_id", account.ID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Account updated successfully.",
		"account": account,
	})
}

// AdminSoftDeleteAccount deactivates an account from the dashboard.
func (s *Server) AdminSoftDeleteAccount(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.adminService.SoftDeleteAccount(c.Context(), currentAccount(c), id); err != nil {
		return respondServiceError(c, err)
	}

	middleware.AccountsSoftDeleted.WithLabelValues("admin").Inc()
	middleware.Logger.InfoContext(c.UserContext(), "account soft-deleted",
		"account_id", id, "surface", "admin")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Account deactivated.",
	})
}

// AdminRestoreAccount reactivates a soft-deleted account.
func (s *Server) AdminRestoreAccount(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.adminService.RestoreAccount(c.Context(), currentAccount(c), id); err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "account restored",
		"account_id", id)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Account restored.",
	})
}
