package store

import (
	"context"

	"github.com/arunika-app/arunika-api/internal/domain"
)

// JobFilter narrows job listings by equality on the given fields.
// Empty fields match everything.
type JobFilter struct {
	RoleCategory string
	Level        string
}

// JobStore defines the interface for job catalog persistence.
type JobStore interface {
	// List returns one page of jobs matching the filter, ordered by
	// ascending id, plus the total number of matching rows.
	List(ctx context.Context, filter JobFilter, offset, limit int) ([]domain.Job, int, error)

	// GetByID returns ErrJobNotFound if the job does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Job, error)

	// Create inserts a job and fills in its assigned ID.
	Create(ctx context.Context, job *domain.Job) error

	// Update modifies an existing job. Returns ErrJobNotFound if absent.
	Update(ctx context.Context, job *domain.Job) error

	// Delete removes a job. Returns ErrJobNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
