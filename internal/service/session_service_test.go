package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/session-booking/internal/domain"
	"github.com/spec-kit/session-booking/internal/events"
	"github.com/spec-kit/session-booking/pkg/util"
)

type sessionFixture struct {
	svc      *SessionService
	sessions *fakeSessionRepo
	users    *fakeUserRepo
	teachers *fakeTeacherRepo
	events   *recordingDispatcher
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		sessions: newFakeSessionRepo(),
		users:    newFakeUserRepo(),
		teachers: newFakeTeacherRepo(),
		events:   &recordingDispatcher{},
	}
	f.teachers.teachers["teacher-1"] = &domain.Teacher{ID: "teacher-1", FirstName: "Margot", LastName: "Delahaye"}
	f.svc = NewSessionService(SessionDependencies{
		SessionRepo: f.sessions,
		UserRepo:    f.users,
		TeacherRepo: f.teachers,
		Dispatcher:  f.events,
	})
	return f
}

func (f *sessionFixture) addUser(t *testing.T, email string) string {
	t.Helper()
	user := &domain.User{Email: email, FirstName: "Test", LastName: "User", PasswordHash: "x"}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user.ID
}

func (f *sessionFixture) addSession(t *testing.T) string {
	t.Helper()
	session, err := f.svc.Create(context.Background(), SessionInput{
		Name:        "Morning Flow",
		Date:        time.Now().Add(24 * time.Hour),
		Description: "A gentle start to the day",
		TeacherID:   "teacher-1",
	})
	require.NoError(t, err)
	return session.ID
}

func TestCreate_UnknownTeacher(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.Create(context.Background(), SessionInput{
		Name:        "Morning Flow",
		Date:        time.Now(),
		Description: "desc",
		TeacherID:   "missing",
	})
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeTeacherNotFound))
}

func TestParticipate_AddsUserOnce(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	sessionID := f.addSession(t)
	userID := f.addUser(t, "u1@example.com")

	require.NoError(t, f.svc.Participate(ctx, sessionID, userID))

	session, err := f.svc.GetByID(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, []string{userID}, session.Participants)

	err = f.svc.Participate(ctx, sessionID, userID)
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeAlreadyParticipating))

	session, err = f.svc.GetByID(ctx, sessionID)
	require.NoError(t, err)
	assert.Len(t, session.Participants, 1, "second call must not grow the roster")
}

func TestParticipate_SessionMissing(t *testing.T) {
	f := newSessionFixture(t)
	userID := f.addUser(t, "u1@example.com")

	err := f.svc.Participate(context.Background(), "missing", userID)
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeSessionNotFound))
}

func TestParticipate_UserMissing(t *testing.T) {
	f := newSessionFixture(t)
	sessionID := f.addSession(t)

	err := f.svc.Participate(context.Background(), sessionID, "missing")
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeUserNotFound))
}

func TestParticipate_LostRaceSurfacesAsAlreadyParticipating(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	sessionID := f.addSession(t)
	userID := f.addUser(t, "u1@example.com")

	// Another worker wins the guarded update between this worker's
	// membership check and its own update.
	f.sessions.beforeAdd = func() {
		f.sessions.beforeAdd = nil
		added, err := f.sessions.AddParticipant(ctx, sessionID, userID)
		require.NoError(t, err)
		require.True(t, added)
	}

	err := f.svc.Participate(ctx, sessionID, userID)
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeAlreadyParticipating))
}

func TestUnparticipate_RemovesOnlyMembers(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	sessionID := f.addSession(t)
	userID := f.addUser(t, "u1@example.com")

	err := f.svc.Unparticipate(ctx, sessionID, userID)
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeNotParticipating))

	require.NoError(t, f.svc.Participate(ctx, sessionID, userID))
	require.NoError(t, f.svc.Unparticipate(ctx, sessionID, userID))

	session, err := f.svc.GetByID(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, session.Participants)

	err = f.svc.Unparticipate(ctx, sessionID, userID)
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeNotParticipating))
}

func TestUnparticipate_DoesNotCheckUserExistence(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	sessionID := f.addSession(t)

	// Removal of an id that is not on the roster fails the same way
	// whether or not the id belongs to a real user.
	err := f.svc.Unparticipate(ctx, sessionID, "ghost-user")
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeNotParticipating))
}

func TestParticipateRoundTripRestoresRoster(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	sessionID := f.addSession(t)
	existing := f.addUser(t, "u1@example.com")
	joiner := f.addUser(t, "u2@example.com")

	require.NoError(t, f.svc.Participate(ctx, sessionID, existing))
	before, err := f.svc.GetByID(ctx, sessionID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Participate(ctx, sessionID, joiner))
	require.NoError(t, f.svc.Unparticipate(ctx, sessionID, joiner))

	after, err := f.svc.GetByID(ctx, sessionID)
	require.NoError(t, err)

	sort.Strings(before.Participants)
	sort.Strings(after.Participants)
	assert.Equal(t, before.Participants, after.Participants)
}

func TestUpdate_PreservesRoster(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	sessionID := f.addSession(t)
	userID := f.addUser(t, "u1@example.com")
	require.NoError(t, f.svc.Participate(ctx, sessionID, userID))

	_, err := f.svc.Update(ctx, sessionID, SessionInput{
		Name:        "Evening Flow",
		Date:        time.Now().Add(48 * time.Hour),
		Description: "rescheduled",
		TeacherID:   "teacher-1",
	})
	require.NoError(t, err)

	session, err := f.svc.GetByID(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "Evening Flow", session.Name)
	assert.Equal(t, []string{userID}, session.Participants)
}

func TestUpdate_SessionMissing(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.Update(context.Background(), "missing", SessionInput{
		Name:        "Evening Flow",
		Date:        time.Now(),
		Description: "desc",
		TeacherID:   "teacher-1",
	})
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeSessionNotFound))
}

func TestDelete_SessionMissing(t *testing.T) {
	f := newSessionFixture(t)

	err := f.svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeSessionNotFound))
}

func TestRosterEventsPublished(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	sessionID := f.addSession(t)
	userID := f.addUser(t, "u1@example.com")

	require.NoError(t, f.svc.Participate(ctx, sessionID, userID))
	require.NoError(t, f.svc.Unparticipate(ctx, sessionID, userID))

	types := []events.EventType{}
	for _, event := range f.events.published {
		types = append(types, event.Type)
	}
	assert.Equal(t, []events.EventType{
		events.EventSessionCreated,
		events.EventParticipantJoined,
		events.EventParticipantLeft,
	}, types)
}
