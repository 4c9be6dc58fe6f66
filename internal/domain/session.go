package domain

import "time"

// Session is a scheduled activity owned by a teacher. Participants holds
// the roster as a set of user ids; membership is by id and insertion order
// carries no meaning.
type Session struct {
	ID           string
	Name         string
	Date         time.Time
	Description  string
	TeacherID    string
	Participants []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasParticipant reports whether the user id is already on the roster.
func (s *Session) HasParticipant(userID string) bool {
	for _, id := range s.Participants {
		if id == userID {
			return true
		}
	}
	return false
}
