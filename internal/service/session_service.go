package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/session-booking/internal/cache"
	"github.com/spec-kit/session-booking/internal/domain"
	"github.com/spec-kit/session-booking/internal/events"
	"github.com/spec-kit/session-booking/internal/repository"
	"github.com/spec-kit/session-booking/pkg/util"
)

const sessionListCacheKey = "sessions:all"

// SessionService coordinates session scheduling and the participation
// roster. Roster mutations are check-then-act: the service produces the
// precise failure kind, and the repository's guarded single-statement
// update is the serialization point that keeps the check and the act
// effectively atomic per session.
type SessionService struct {
	sessions   repository.SessionRepository
	users      repository.UserRepository
	teachers   repository.TeacherRepository
	dispatcher events.Dispatcher
	cache      *cache.Store
}

// SessionDependencies bundles collaborators for the session service.
type SessionDependencies struct {
	SessionRepo repository.SessionRepository
	UserRepo    repository.UserRepository
	TeacherRepo repository.TeacherRepository
	Dispatcher  events.Dispatcher
	Cache       *cache.Store
}

// SessionInput describes session create/update payloads. Participants are
// deliberately absent: the roster changes only through Participate and
// Unparticipate.
type SessionInput struct {
	Name        string
	Date        time.Time
	Description string
	TeacherID   string
}

// NewSessionService constructs the service.
func NewSessionService(deps SessionDependencies) *SessionService {
	return &SessionService{
		sessions:   deps.SessionRepo,
		users:      deps.UserRepo,
		teachers:   deps.TeacherRepo,
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
	}
}

// Create schedules a new session with an empty roster.
func (s *SessionService) Create(ctx context.Context, input SessionInput) (*domain.Session, error) {
	if _, err := s.teachers.GetByID(ctx, input.TeacherID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewTeacherNotFound(input.TeacherID)
		}
		return nil, util.NewInternalError(err)
	}

	session := &domain.Session{
		Name:         strings.TrimSpace(input.Name),
		Date:         input.Date,
		Description:  strings.TrimSpace(input.Description),
		TeacherID:    input.TeacherID,
		Participants: []string{},
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, util.NewInternalError(err)
	}

	s.cache.Invalidate(ctx, sessionListCacheKey)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventSessionCreated,
		SessionID: session.ID,
		Payload: events.SessionCreatedPayload{
			Name:      session.Name,
			TeacherID: session.TeacherID,
			Date:      session.Date,
		},
	})
	return session, nil
}

// Update rewrites the descriptive fields of an existing session. The
// roster is untouched.
func (s *SessionService) Update(ctx context.Context, id string, input SessionInput) (*domain.Session, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.teachers.GetByID(ctx, input.TeacherID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewTeacherNotFound(input.TeacherID)
		}
		return nil, util.NewInternalError(err)
	}

	session.Name = strings.TrimSpace(input.Name)
	session.Date = input.Date
	session.Description = strings.TrimSpace(input.Description)
	session.TeacherID = input.TeacherID
	if err := s.sessions.Update(ctx, session); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewSessionNotFound(id)
		}
		return nil, util.NewInternalError(err)
	}

	s.cache.Invalidate(ctx, sessionListCacheKey)
	return session, nil
}

// GetByID fetches a single session with its roster.
func (s *SessionService) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	return s.getSession(ctx, id)
}

// List returns all sessions, cached for the configured TTL.
func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	var sessions []domain.Session
	if s.cache.GetJSON(ctx, sessionListCacheKey, &sessions) {
		return sessions, nil
	}

	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, util.NewInternalError(err)
	}
	s.cache.SetJSON(ctx, sessionListCacheKey, sessions)
	return sessions, nil
}

// Delete removes a session and its roster.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	exists, err := s.sessions.ExistsByID(ctx, id)
	if err != nil {
		return util.NewInternalError(err)
	}
	if !exists {
		return util.NewSessionNotFound(id)
	}
	if err := s.sessions.Delete(ctx, id); err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return util.NewInternalError(err)
	}

	s.cache.Invalidate(ctx, sessionListCacheKey)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventSessionDeleted,
		SessionID: id,
	})
	return nil
}

// Participate adds the user to the session roster. The session must
// exist, the user must exist, and the user must not already be on the
// roster. The guarded update is the final authority: a lost race against
// a concurrent join surfaces as AlreadyParticipating, never a duplicate.
func (s *SessionService) Participate(ctx context.Context, sessionID, userID string) error {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}

	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return util.NewInternalError(err)
	}
	if !exists {
		return util.NewUserNotFound(userID)
	}

	if session.HasParticipant(userID) {
		return util.NewAlreadyParticipating()
	}

	added, err := s.sessions.AddParticipant(ctx, sessionID, userID)
	if err != nil {
		return util.NewInternalError(err)
	}
	if !added {
		return util.NewAlreadyParticipating()
	}

	s.cache.Invalidate(ctx, sessionListCacheKey)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventParticipantJoined,
		SessionID: sessionID,
		UserID:    userID,
		Payload:   events.RosterChangedPayload{SessionName: session.Name},
	})
	return nil
}

// Unparticipate removes the user from the session roster. Only roster
// membership is checked, not user existence: removing a non-member is
// meaningless whether or not the id belongs to a real user.
func (s *SessionService) Unparticipate(ctx context.Context, sessionID, userID string) error {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}

	if !session.HasParticipant(userID) {
		return util.NewNotParticipating()
	}

	removed, err := s.sessions.RemoveParticipant(ctx, sessionID, userID)
	if err != nil {
		return util.NewInternalError(err)
	}
	if !removed {
		return util.NewNotParticipating()
	}

	s.cache.Invalidate(ctx, sessionListCacheKey)
	s.publishEvent(ctx, events.Event{
		Type:      events.EventParticipantLeft,
		SessionID: sessionID,
		UserID:    userID,
		Payload:   events.RosterChangedPayload{SessionName: session.Name},
	})
	return nil
}

func (s *SessionService) getSession(ctx context.Context, id string) (*domain.Session, error) {
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewSessionNotFound(id)
		}
		return nil, util.NewInternalError(err)
	}
	return session, nil
}

func (s *SessionService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
