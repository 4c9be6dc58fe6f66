package dto

import (
	"time"

	"github.com/spec-kit/session-booking/internal/domain"
)

// SessionRequest payload for session create/update. The roster is not
// settable here; it changes only through the participate endpoints.
type SessionRequest struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	TeacherID   string    `json:"teacher_id"`
	Description string    `json:"description"`
}

// SessionResponse mirrors a session with its roster of user ids.
type SessionResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	TeacherID   string    `json:"teacher_id"`
	Description string    `json:"description"`
	Users       []string  `json:"users"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewSessionResponse maps a domain session.
func NewSessionResponse(session *domain.Session) SessionResponse {
	users := session.Participants
	if users == nil {
		users = []string{}
	}
	return SessionResponse{
		ID:          session.ID,
		Name:        session.Name,
		Date:        session.Date,
		TeacherID:   session.TeacherID,
		Description: session.Description,
		Users:       users,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
}

// NewSessionResponses maps a slice of domain sessions.
func NewSessionResponses(sessions []domain.Session) []SessionResponse {
	out := make([]SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, NewSessionResponse(&sessions[i]))
	}
	return out
}
