package store

import (
	"context"

	"github.com/arunika-app/arunika-api/internal/domain"
)

// CourseFilter narrows course listings by equality on the given fields.
// Empty fields match everything.
type CourseFilter struct {
	Bidang string
	Level  string
}

// CourseStore defines the interface for the skill-course catalog.
type CourseStore interface {
	// List returns one page of courses matching the filter, ordered by
	// ascending id, plus the total number of matching rows.
	List(ctx context.Context, filter CourseFilter, offset, limit int) ([]domain.SkillCourse, int, error)

	// GetByID returns ErrCourseNotFound if the course does not exist.
	GetByID(ctx context.Context, id int64) (*domain.SkillCourse, error)

	// Create inserts a course and fills in its assigned ID.
	Create(ctx context.Context, course *domain.SkillCourse) error

	// Update modifies an existing course. Returns ErrCourseNotFound if absent.
	Update(ctx context.Context, course *domain.SkillCourse) error

	// Delete removes a course. Returns ErrCourseNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
