package dto

import (
	"time"

	"github.com/spec-kit/session-booking/internal/domain"
)

// TeacherResponse mirrors a teacher record.
type TeacherResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTeacherResponse maps a domain teacher.
func NewTeacherResponse(teacher *domain.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:        teacher.ID,
		FirstName: teacher.FirstName,
		LastName:  teacher.LastName,
		CreatedAt: teacher.CreatedAt,
		UpdatedAt: teacher.UpdatedAt,
	}
}

// NewTeacherResponses maps a slice of domain teachers.
func NewTeacherResponses(teachers []domain.Teacher) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(teachers))
	for i := range teachers {
		out = append(out, NewTeacherResponse(&teachers[i]))
	}
	return out
}
