package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/session-booking/internal/api/dto"
	"github.com/spec-kit/session-booking/internal/service"
	"github.com/spec-kit/session-booking/pkg/util"
)

// SessionsHandler exposes session scheduling and roster endpoints.
type SessionsHandler struct {
	sessions *service.SessionService
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(sessionService *service.SessionService) *SessionsHandler {
	return &SessionsHandler{sessions: sessionService}
}

// List handles GET /api/session.
func (h *SessionsHandler) List(c *fiber.Ctx) error {
	sessions, err := h.sessions.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponses(sessions))
}

// Get handles GET /api/session/:id.
func (h *SessionsHandler) Get(c *fiber.Ctx) error {
	session, err := h.sessions.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(session))
}

// Create handles POST /api/session.
func (h *SessionsHandler) Create(c *fiber.Ctx) error {
	input, err := parseSessionRequest(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSessionResponse(session))
}

// Update handles PUT /api/session/:id.
func (h *SessionsHandler) Update(c *fiber.Ctx) error {
	input, err := parseSessionRequest(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewSessionResponse(session))
}

// Delete handles DELETE /api/session/:id.
func (h *SessionsHandler) Delete(c *fiber.Ctx) error {
	if err := h.sessions.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Session deleted"})
}

// Participate handles POST /api/session/:id/participate/:userId.
func (h *SessionsHandler) Participate(c *fiber.Ctx) error {
	if err := h.sessions.Participate(c.UserContext(), c.Params("id"), c.Params("userId")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Participation recorded"})
}

// Unparticipate handles DELETE /api/session/:id/participate/:userId.
func (h *SessionsHandler) Unparticipate(c *fiber.Ctx) error {
	if err := h.sessions.Unparticipate(c.UserContext(), c.Params("id"), c.Params("userId")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Participation removed"})
}

func parseSessionRequest(c *fiber.Ctx) (service.SessionInput, error) {
	var req dto.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return service.SessionInput{}, util.NewValidationError("invalid payload", nil)
	}

	details := map[string]any{}
	if req.Name == "" || len(req.Name) > 50 {
		details["name"] = "required, at most 50 characters"
	}
	if req.Date.IsZero() {
		details["date"] = "required"
	}
	if req.TeacherID == "" {
		details["teacher_id"] = "required"
	}
	if req.Description == "" || len(req.Description) > 2500 {
		details["description"] = "required, at most 2500 characters"
	}
	if len(details) > 0 {
		return service.SessionInput{}, util.NewValidationError("invalid session payload", details)
	}

	return service.SessionInput{
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
		TeacherID:   req.TeacherID,
	}, nil
}
