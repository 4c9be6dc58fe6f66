package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/session-booking/internal/domain"
)

// TeacherRepository defines read access to the teacher reference data.
type TeacherRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Teacher, error)
	List(ctx context.Context) ([]domain.Teacher, error)
}

type teacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository returns a Postgres-backed implementation.
func NewTeacherRepository(pool *pgxpool.Pool) TeacherRepository {
	return &teacherRepository{pool: pool}
}

func (r *teacherRepository) GetByID(ctx context.Context, id string) (*domain.Teacher, error) {
	const query = `
        SELECT id, first_name, last_name, created_at, updated_at
        FROM teachers WHERE id=$1`

	var teacher domain.Teacher
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&teacher.ID,
		&teacher.FirstName,
		&teacher.LastName,
		&teacher.CreatedAt,
		&teacher.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) List(ctx context.Context) ([]domain.Teacher, error) {
	const query = `
        SELECT id, first_name, last_name, created_at, updated_at
        FROM teachers ORDER BY last_name, first_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teachers := []domain.Teacher{}
	for rows.Next() {
		var teacher domain.Teacher
		if err := rows.Scan(
			&teacher.ID,
			&teacher.FirstName,
			&teacher.LastName,
			&teacher.CreatedAt,
			&teacher.UpdatedAt,
		); err != nil {
			return nil, err
		}
		teachers = append(teachers, teacher)
	}
	return teachers, rows.Err()
}
