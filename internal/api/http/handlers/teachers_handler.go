package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/session-booking/internal/api/dto"
	"github.com/spec-kit/session-booking/internal/service"
)

// TeachersHandler exposes the teacher read endpoints.
type TeachersHandler struct {
	teachers *service.TeacherService
}

// NewTeachersHandler constructs handler.
func NewTeachersHandler(teacherService *service.TeacherService) *TeachersHandler {
	return &TeachersHandler{teachers: teacherService}
}

// List handles GET /api/teacher.
func (h *TeachersHandler) List(c *fiber.Ctx) error {
	teachers, err := h.teachers.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTeacherResponses(teachers))
}

// Get handles GET /api/teacher/:id.
func (h *TeachersHandler) Get(c *fiber.Ctx) error {
	teacher, err := h.teachers.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTeacherResponse(teacher))
}
