package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/session-booking/internal/domain"
)

// SessionRepository encapsulates session persistence. Roster mutations go
// through AddParticipant/RemoveParticipant, which are single guarded
// statements: the row-level write is the serialization point, so two
// concurrent calls for the same session cannot both observe a stale
// roster. The boolean result reports whether the roster actually changed.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	Update(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
	Delete(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	AddParticipant(ctx context.Context, sessionID, userID string) (bool, error)
	RemoveParticipant(ctx context.Context, sessionID, userID string) (bool, error)
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a Postgres-backed implementation.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	const query = `
        INSERT INTO sessions (name, session_date, description, teacher_id, participants)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	participants := session.Participants
	if participants == nil {
		participants = []string{}
	}
	return r.pool.QueryRow(ctx, query,
		session.Name,
		session.Date,
		session.Description,
		session.TeacherID,
		participants,
	).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
}

// Update rewrites the descriptive fields only; the roster is mutated
// exclusively through AddParticipant/RemoveParticipant.
func (r *sessionRepository) Update(ctx context.Context, session *domain.Session) error {
	const query = `
        UPDATE sessions SET name=$1, session_date=$2, description=$3, teacher_id=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		session.Name,
		session.Date,
		session.Description,
		session.TeacherID,
		session.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	const query = `
        SELECT id, name, session_date, description, teacher_id, participants, created_at, updated_at
        FROM sessions WHERE id=$1`

	var session domain.Session
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.Name,
		&session.Date,
		&session.Description,
		&session.TeacherID,
		&session.Participants,
		&session.CreatedAt,
		&session.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) List(ctx context.Context) ([]domain.Session, error) {
	const query = `
        SELECT id, name, session_date, description, teacher_id, participants, created_at, updated_at
        FROM sessions ORDER BY session_date`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []domain.Session{}
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(
			&session.ID,
			&session.Name,
			&session.Date,
			&session.Description,
			&session.TeacherID,
			&session.Participants,
			&session.CreatedAt,
			&session.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *sessionRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM sessions WHERE id=$1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *sessionRepository) AddParticipant(ctx context.Context, sessionID, userID string) (bool, error) {
	const query = `
        UPDATE sessions
        SET participants = array_append(participants, $2), updated_at = NOW()
        WHERE id = $1 AND NOT ($2 = ANY(participants))`

	cmd, err := r.pool.Exec(ctx, query, sessionID, userID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *sessionRepository) RemoveParticipant(ctx context.Context, sessionID, userID string) (bool, error) {
	const query = `
        UPDATE sessions
        SET participants = array_remove(participants, $2), updated_at = NOW()
        WHERE id = $1 AND $2 = ANY(participants)`

	cmd, err := r.pool.Exec(ctx, query, sessionID, userID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}
