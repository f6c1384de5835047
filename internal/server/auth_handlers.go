package server

import (
	"fmt"
	"time"

	"rollcall/internal/cache"
	"rollcall/internal/middleware"
	"rollcall/internal/models"
	"rollcall/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "rollcall-api"
	tokenAudience = "rollcall-client"
	tokenLifetime = 7 * 24 * time.Hour
)

// RegisterRequest is the self-registration payload.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	DOB             string `json:"dob"`
	Gender          string `json:"gender"`
	MaritalStatus   string `json:"marital_status"`
	AgreeToTerms    bool   `json:"agree_to_terms"`
}

// LoginRequest is the credential payload shared by both login endpoints.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new account registration
func (s *Server) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	account, err := s.accountService.Register(c.Context(), service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		DOB:             req.DOB,
		Gender:          req.Gender,
		MaritalStatus:   req.MaritalStatus,
		AgreeToTerms:    req.AgreeToTerms,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	middleware.Logger.InfoContext(c.UserContext(), "account registered",
		"account_id", account.ID, "username", account.Username)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully.",
		"account": account,
	})
}

// Login authenticates a user and issues a JWT
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	account, err := s.authService.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.generateToken(account)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "token generation failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(c.UserContext(), "user logged in",
		"account_id", account.ID, "username", account.Username)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful.",
		"token":   token,
		"account": account,
	})
}

// AdminLogin authenticates a staff account for the administrator surface.
// Failures are reported with a single generic message so that probing the
// endpoint does not reveal which check failed.
func (s *Server) AdminLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	account, err := s.authService.AuthenticateAdmin(c.Context(), req.Username, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.generateToken(account)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "token generation failed", "error", err)
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(c.UserContext(), "admin logged in",
		"account_id", account.ID, "username", account.Username)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Admin login successful.",
		"token":   token,
		"account": account,
	})
}

// Logout revokes the caller's token by blacklisting its JTI until expiry.
// Logging out is idempotent: a missing, invalid, or already-revoked token
// still yields a success response.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.revokeToken(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "You have been logged out.",
	})
}

// AdminLogout mirrors Logout for the administrator surface.
func (s *Server) AdminLogout(c *fiber.Ctx) error {
	s.revokeToken(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "You have been logged out of the admin panel.",
	})
}

// revokeToken best-effort blacklists the bearer token's JTI. Errors are
// logged, not surfaced: logout must succeed regardless of token state.
func (s *Server) revokeToken(c *fiber.Ctx) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return
	}

	ttl := tokenLifetime
	if exp, expOk := claims["exp"].(float64); expOk {
		remaining := time.Until(time.Unix(int64(exp), 0))
		if remaining <= 0 {
			return
		}
		ttl = remaining
	}

	if err := cache.BlacklistToken(c.Context(), jti, ttl); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "token blacklist failed",
			"jti", jti, "error", err)
	}
}

// generateToken issues a signed JWT for the account.
func (s *Server) generateToken(account *models.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", account.ID),
		"username": account.Username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(tokenLifetime).Unix(),
		"jti":      uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
