package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/session-booking/internal/domain"
)

// In-memory repository fakes emulating the Postgres contracts, including
// pgx.ErrNoRows for absence and the guarded roster updates.

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	createErr error
	nextID    int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("duplicate email %s", user.Email)
		}
	}
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type fakeTeacherRepo struct {
	teachers map[string]*domain.Teacher
}

func newFakeTeacherRepo() *fakeTeacherRepo {
	return &fakeTeacherRepo{teachers: map[string]*domain.Teacher{}}
}

func (r *fakeTeacherRepo) GetByID(_ context.Context, id string) (*domain.Teacher, error) {
	teacher, ok := r.teachers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *teacher
	return &clone, nil
}

func (r *fakeTeacherRepo) List(_ context.Context) ([]domain.Teacher, error) {
	out := []domain.Teacher{}
	for _, teacher := range r.teachers {
		out = append(out, *teacher)
	}
	return out, nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	nextID   int

	// beforeAdd runs inside AddParticipant before the membership check,
	// letting tests interleave a competing writer.
	beforeAdd func()
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*domain.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	session.ID = fmt.Sprintf("session-%d", r.nextID)
	clone := *session
	clone.Participants = append([]string{}, session.Participants...)
	r.sessions[session.ID] = &clone
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.sessions[session.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Name = session.Name
	stored.Date = session.Date
	stored.Description = session.Description
	stored.TeacherID = session.TeacherID
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *session
	clone.Participants = append([]string{}, session.Participants...)
	return &clone, nil
}

func (r *fakeSessionRepo) List(_ context.Context) ([]domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Session{}
	for _, session := range r.sessions {
		clone := *session
		clone.Participants = append([]string{}, session.Participants...)
		out = append(out, clone)
	}
	return out, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeSessionRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	return ok, nil
}

func (r *fakeSessionRepo) AddParticipant(_ context.Context, sessionID, userID string) (bool, error) {
	if r.beforeAdd != nil {
		r.beforeAdd()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return false, nil
	}
	for _, id := range session.Participants {
		if id == userID {
			return false, nil
		}
	}
	session.Participants = append(session.Participants, userID)
	return true, nil
}

func (r *fakeSessionRepo) RemoveParticipant(_ context.Context, sessionID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[sessionID]
	if !ok {
		return false, nil
	}
	for i, id := range session.Participants {
		if id == userID {
			session.Participants = append(session.Participants[:i], session.Participants[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
