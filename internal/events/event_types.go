package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered    EventType = "user_registered"
	EventSessionCreated    EventType = "session_created"
	EventSessionDeleted    EventType = "session_deleted"
	EventParticipantJoined EventType = "participant_joined"
	EventParticipantLeft   EventType = "participant_left"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}

// SessionCreatedPayload payload.
type SessionCreatedPayload struct {
	Name      string    `json:"name"`
	TeacherID string    `json:"teacher_id"`
	Date      time.Time `json:"date"`
}

// RosterChangedPayload payload for join/leave events.
type RosterChangedPayload struct {
	SessionName string `json:"session_name"`
}
