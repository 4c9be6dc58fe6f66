package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/session-booking/internal/api/dto"
	"github.com/spec-kit/session-booking/internal/service"
	"github.com/spec-kit/session-booking/pkg/util"
)

// AuthHandler exposes login and registration endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return util.NewValidationError("email and password required", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.JwtResponse{
		Token:     result.Token,
		Type:      "Bearer",
		ID:        result.UserID,
		Username:  result.Email,
		FirstName: result.FirstName,
		LastName:  result.LastName,
		Admin:     result.Admin,
	})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if details := validateRegister(req); len(details) > 0 {
		return util.NewValidationError("invalid registration payload", details)
	}

	if err := h.auth.Register(c.UserContext(), req.Email, req.FirstName, req.LastName, req.Password); err != nil {
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "User registered successfully!"})
}

func validateRegister(req dto.RegisterRequest) map[string]any {
	details := map[string]any{}
	if req.Email == "" || !strings.Contains(req.Email, "@") || len(req.Email) > 50 {
		details["email"] = "must be a valid address of at most 50 characters"
	}
	if l := len(req.FirstName); l < 3 || l > 20 {
		details["firstName"] = "must be between 3 and 20 characters"
	}
	if l := len(req.LastName); l < 3 || l > 20 {
		details["lastName"] = "must be between 3 and 20 characters"
	}
	if l := len(req.Password); l < 6 || l > 40 {
		details["password"] = "must be between 6 and 40 characters"
	}
	return details
}
