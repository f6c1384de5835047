package server

import (
	"errors"
	"strconv"

	"rollcall/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID parses the :id route parameter.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, models.NewValidationError("Invalid account ID")
	}
	return uint(id), nil
}

// currentAccount returns the authenticated caller stored by AuthRequired,
// or nil when the request is unauthenticated.
func currentAccount(c *fiber.Ctx) *models.Account {
	caller, ok := c.Locals("caller").(*models.Account)
	if !ok {
		return nil
	}
	return caller
}

// respondServiceError maps a service-layer error onto an HTTP status and
// writes the standard error body.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			status = fiber.StatusNotFound
		case models.CodeValidation, models.CodeInvalidOrderingField:
			status = fiber.StatusBadRequest
		case models.CodeUnauthorized, models.CodeInvalidCredentials, models.CodeAccountDeactivated:
			status = fiber.StatusUnauthorized
		case models.CodeNotAuthorized:
			status = fiber.StatusForbidden
		}
	}

	return models.RespondWithError(c, status, err)
}
