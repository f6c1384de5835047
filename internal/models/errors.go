package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError. Handlers map these to HTTP statuses.
const (
	CodeNotFound             = "NOT_FOUND"
	CodeValidation           = "VALIDATION_ERROR"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeAccountDeactivated   = "ACCOUNT_DEACTIVATED"
	CodeNotAuthorized        = "NOT_AUTHORIZED"
	CodeInvalidOrderingField = "INVALID_ORDERING_FIELD"
	CodeInternal             = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// NewInvalidCredentialsError is returned when a username/password pair does
// not match a stored account. The message is deliberately generic.
func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Code:    CodeInvalidCredentials,
		Message: "Invalid username or password.",
	}
}

// NewAccountDeactivatedError is returned when credentials match but the
// account has been soft-deleted.
func NewAccountDeactivatedError() *AppError {
	return &AppError{
		Code:    CodeAccountDeactivated,
		Message: "Your account has been deactivated.",
	}
}

// NewNotAuthorizedError is returned on the privileged path when the caller is
// not an administrator. It never reveals whether the credentials themselves
// were valid.
func NewNotAuthorizedError() *AppError {
	return &AppError{
		Code:    CodeNotAuthorized,
		Message: "Invalid credentials or not an admin.",
	}
}

// NewInvalidOrderingError rejects an ordering field that is not on the
// sortable allow-list.
func NewInvalidOrderingError(field string) *AppError {
	return &AppError{
		Code:    CodeInvalidOrderingField,
		Message: fmt.Sprintf("Invalid ordering field %q", field),
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
