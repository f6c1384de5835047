package server

import (
	"rollcall/internal/middleware"
	"rollcall/internal/models"

	"github.com/gofiber/fiber/v2"
)

// BioUpdateRequest is the payload for the self-service bio editor.
type BioUpdateRequest struct {
	Bio string `json:"bio"`
}

// Home returns the authenticated caller's own profile.
func (s *Server) Home(c *fiber.Ctx) error {
	caller := currentAccount(c)
	if caller == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"account": caller,
	})
}

// UpdateBio replaces the caller's bio text
func (s *Server) UpdateBio(c *fiber.Ctx) error {
	caller := currentAccount(c)
	if caller == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
	}

	var req BioUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	account, err := s.accountService.UpdateBio(c.Context(), caller.ID, req.Bio)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Bio updated successfully.",
		"account": account,
	})
}

// LegacySoftDelete serves the pre-dashboard delete URL. It runs behind the
// same admin gate and delegates to the same service call as the
// administrator endpoint; only the metric surface label differs.
func (s *Server) LegacySoftDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	caller := currentAccount(c)
	if err := s.adminService.SoftDeleteAccount(c.Context(), caller, id); err != nil {
		return respondServiceError(c, err)
	}

	middleware.AccountsSoftDeleted.WithLabelValues("legacy").Inc()
	middleware.Logger.InfoContext(c.UserContext(), "account soft-deleted",
		"account_id", id, "surface", "legacy")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Account deactivated.",
	})
}
