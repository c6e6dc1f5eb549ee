package store

import (
	"context"

	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/google/uuid"
)

// PersonalizationStore defines the interface for skill-assessment records.
type PersonalizationStore interface {
	// Create saves a new personalization scoped to its UserID.
	Create(ctx context.Context, p *domain.Personalization) error

	// ListByUser returns one page of the user's personalizations ordered by
	// newest first, plus the total count for that user.
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Personalization, int, error)

	// GetByID returns ErrPersonalizationNotFound if the record does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Personalization, error)

	// OwnerOf reports the owning user of the given personalization.
	// Returns ErrPersonalizationNotFound if the record does not exist.
	// This is the fetch step of every transitive ownership check.
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// Delete removes a personalization and, via the schema's cascade, its
	// recommendation children. Returns ErrPersonalizationNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecommendationStore defines the interface for recommendation children of a
// personalization.
type RecommendationStore interface {
	// CreateJobRecommendations inserts the given job recommendations,
	// filling in their assigned IDs.
	CreateJobRecommendations(ctx context.Context, recs []*domain.JobRecommendation) error

	// ListJobRecommendations returns all job recommendations for the
	// personalization, highest score first.
	ListJobRecommendations(ctx context.Context, personalizationID uuid.UUID) ([]domain.JobRecommendation, error)

	// DeleteJobRecommendation removes one job recommendation scoped to the
	// personalization. Returns ErrRecommendationNotFound if absent.
	DeleteJobRecommendation(ctx context.Context, personalizationID uuid.UUID, id int64) error

	// CreateCourseRecommendations inserts the given course recommendations,
	// filling in their assigned IDs.
	CreateCourseRecommendations(ctx context.Context, recs []*domain.CourseRecommendation) error

	// ListCourseRecommendations returns all course recommendations for the
	// personalization, highest score first.
	ListCourseRecommendations(ctx context.Context, personalizationID uuid.UUID) ([]domain.CourseRecommendation, error)

	// DeleteCourseRecommendation removes one course recommendation scoped to
	// the personalization. Returns ErrRecommendationNotFound if absent.
	DeleteCourseRecommendation(ctx context.Context, personalizationID uuid.UUID, id int64) error
}
