package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/session-booking/internal/api/dto"
	"github.com/spec-kit/session-booking/internal/auth"
	"github.com/spec-kit/session-booking/internal/service"
	"github.com/spec-kit/session-booking/pkg/util"
)

// UsersHandler exposes user lookup and self-service deletion.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Get handles GET /api/user/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /api/user/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.CurrentUser(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	if err := h.users.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Account deleted"})
}
