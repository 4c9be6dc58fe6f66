package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/session-booking/internal/cache"
	"github.com/spec-kit/session-booking/internal/domain"
	"github.com/spec-kit/session-booking/internal/repository"
	"github.com/spec-kit/session-booking/pkg/util"
)

const teacherListCacheKey = "teachers:all"

// TeacherService exposes the teacher read model.
type TeacherService struct {
	teachers repository.TeacherRepository
	cache    *cache.Store
}

// NewTeacherService constructs the service.
func NewTeacherService(teachers repository.TeacherRepository, store *cache.Store) *TeacherService {
	return &TeacherService{teachers: teachers, cache: store}
}

// GetByID fetches a teacher record.
func (s *TeacherService) GetByID(ctx context.Context, id string) (*domain.Teacher, error) {
	teacher, err := s.teachers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewTeacherNotFound(id)
		}
		return nil, util.NewInternalError(err)
	}
	return teacher, nil
}

// List returns all teachers, cached for the configured TTL. Teachers are
// reference data, so the cache is never explicitly invalidated and entries
// simply age out.
func (s *TeacherService) List(ctx context.Context) ([]domain.Teacher, error) {
	var teachers []domain.Teacher
	if s.cache.GetJSON(ctx, teacherListCacheKey, &teachers) {
		return teachers, nil
	}

	teachers, err := s.teachers.List(ctx)
	if err != nil {
		return nil, util.NewInternalError(err)
	}
	s.cache.SetJSON(ctx, teacherListCacheKey, teachers)
	return teachers, nil
}
