package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/generation"
	"github.com/arunika-app/arunika-api/internal/platform/logger"
)

// PersonalizationStore is the persistence surface this service needs for
// assessment records. It mirrors store.PersonalizationStore; redeclaring it
// here keeps the service package free of a store import cycle and lets tests
// supply small fakes.
type PersonalizationStore interface {
	Create(ctx context.Context, p *domain.Personalization) error
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Personalization, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Personalization, error)
	OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecommendationStore is the persistence surface for recommendation children.
type RecommendationStore interface {
	CreateJobRecommendations(ctx context.Context, recs []*domain.JobRecommendation) error
	ListJobRecommendations(ctx context.Context, personalizationID uuid.UUID) ([]domain.JobRecommendation, error)
	DeleteJobRecommendation(ctx context.Context, personalizationID uuid.UUID, id int64) error
	CreateCourseRecommendations(ctx context.Context, recs []*domain.CourseRecommendation) error
	ListCourseRecommendations(ctx context.Context, personalizationID uuid.UUID) ([]domain.CourseRecommendation, error)
	DeleteCourseRecommendation(ctx context.Context, personalizationID uuid.UUID, id int64) error
}

// PersonalizationService coordinates assessment records, their recommendation
// children, and the optional LLM recommender. Every read or mutation of an
// existing record runs the existence-then-ownership check before touching data.
type PersonalizationService struct {
	personalizations PersonalizationStore
	recommendations  RecommendationStore
	recommender      generation.Recommender // nil when no LLM is configured
	logger           *slog.Logger
}

// NewPersonalizationService creates a PersonalizationService. The recommender
// may be nil; assessments are then stored without generated suggestions.
func NewPersonalizationService(
	personalizations PersonalizationStore,
	recommendations RecommendationStore,
	recommender generation.Recommender,
	log *slog.Logger,
) *PersonalizationService {
	if personalizations == nil {
		panic("personalization store cannot be nil")
	}
	if recommendations == nil {
		panic("recommendation store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PersonalizationService{
		personalizations: personalizations,
		recommendations:  recommendations,
		recommender:      recommender,
		logger:           log.With(slog.String("component", "personalization_service")),
	}
}

// Create validates and persists a new assessment for the user, then generates
// and persists recommendations. Generation is best-effort: the assessment
// stands on its own, so a recommender failure is logged and swallowed. The
// returned flag reports whether recommendation children were stored.
func (s *PersonalizationService) Create(ctx context.Context, userID uuid.UUID, roleCategory string, answers []domain.Answer) (*domain.Personalization, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	p, err := domain.NewPersonalization(userID, roleCategory, answers)
	if err != nil {
		return nil, false, err
	}

	if err := s.personalizations.Create(ctx, p); err != nil {
		return nil, false, fmt.Errorf("failed to save personalization: %w", err)
	}

	log.Info("personalization created",
		slog.String("personalization_id", p.ID.String()),
		slog.String("role_category", p.RoleCategory))

	generated := s.generateRecommendations(ctx, p)
	return p, generated, nil
}

// generateRecommendations runs the recommender and stores its output,
// reporting whether anything was persisted. Failures never propagate to the
// caller.
func (s *PersonalizationService) generateRecommendations(ctx context.Context, p *domain.Personalization) bool {
	if s.recommender == nil {
		return false
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	set, err := s.recommender.Recommend(ctx, p)
	if err != nil {
		log.Warn("recommendation generation failed",
			slog.String("error", err.Error()),
			slog.String("personalization_id", p.ID.String()))
		return false
	}

	stored := false

	if len(set.Jobs) > 0 {
		if err := s.recommendations.CreateJobRecommendations(ctx, set.Jobs); err != nil {
			log.Warn("failed to save job recommendations",
				slog.String("error", err.Error()),
				slog.String("personalization_id", p.ID.String()))
		} else {
			stored = true
		}
	}
	if len(set.Courses) > 0 {
		if err := s.recommendations.CreateCourseRecommendations(ctx, set.Courses); err != nil {
			log.Warn("failed to save course recommendations",
				slog.String("error", err.Error()),
				slog.String("personalization_id", p.ID.String()))
		} else {
			stored = true
		}
	}

	log.Info("recommendations generated",
		slog.String("personalization_id", p.ID.String()),
		slog.Int("job_count", len(set.Jobs)),
		slog.Int("course_count", len(set.Courses)))
	return stored
}

// ListByUser returns one page of the principal's own assessments.
func (s *PersonalizationService) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Personalization, int, error) {
	return s.personalizations.ListByUser(ctx, userID, offset, limit)
}

// Get fetches an assessment after proving it exists and belongs to the
// principal.
func (s *PersonalizationService) Get(ctx context.Context, principalID, id uuid.UUID) (*domain.Personalization, error) {
	if err := s.authorize(ctx, principalID, id); err != nil {
		return nil, err
	}
	return s.personalizations.GetByID(ctx, id)
}

// Delete removes an assessment and its recommendation children.
func (s *PersonalizationService) Delete(ctx context.Context, principalID, id uuid.UUID) error {
	if err := s.authorize(ctx, principalID, id); err != nil {
		return err
	}
	return s.personalizations.Delete(ctx, id)
}

// JobRecommendations lists the assessment's job suggestions. Ownership is
// transitive: the child check resolves through the parent assessment.
func (s *PersonalizationService) JobRecommendations(ctx context.Context, principalID, personalizationID uuid.UUID) ([]domain.JobRecommendation, error) {
	if err := s.authorize(ctx, principalID, personalizationID); err != nil {
		return nil, err
	}
	return s.recommendations.ListJobRecommendations(ctx, personalizationID)
}

// CourseRecommendations lists the assessment's course suggestions.
func (s *PersonalizationService) CourseRecommendations(ctx context.Context, principalID, personalizationID uuid.UUID) ([]domain.CourseRecommendation, error) {
	if err := s.authorize(ctx, principalID, personalizationID); err != nil {
		return nil, err
	}
	return s.recommendations.ListCourseRecommendations(ctx, personalizationID)
}

// AddJobRecommendation attaches a manually curated job suggestion to the
// assessment. The recommendation is validated and stamped with the parent ID
// before it is persisted.
func (s *PersonalizationService) AddJobRecommendation(ctx context.Context, principalID, personalizationID uuid.UUID, rec *domain.JobRecommendation) error {
	if err := s.authorize(ctx, principalID, personalizationID); err != nil {
		return err
	}
	rec.PersonalizationID = personalizationID
	if err := rec.Validate(); err != nil {
		return err
	}
	return s.recommendations.CreateJobRecommendations(ctx, []*domain.JobRecommendation{rec})
}

// AddCourseRecommendation attaches a manually curated course suggestion to
// the assessment.
func (s *PersonalizationService) AddCourseRecommendation(ctx context.Context, principalID, personalizationID uuid.UUID, rec *domain.CourseRecommendation) error {
	if err := s.authorize(ctx, principalID, personalizationID); err != nil {
		return err
	}
	rec.PersonalizationID = personalizationID
	if err := rec.Validate(); err != nil {
		return err
	}
	return s.recommendations.CreateCourseRecommendations(ctx, []*domain.CourseRecommendation{rec})
}

// DeleteJobRecommendation removes one job suggestion from the assessment.
func (s *PersonalizationService) DeleteJobRecommendation(ctx context.Context, principalID, personalizationID uuid.UUID, id int64) error {
	if err := s.authorize(ctx, principalID, personalizationID); err != nil {
		return err
	}
	return s.recommendations.DeleteJobRecommendation(ctx, personalizationID, id)
}

// DeleteCourseRecommendation removes one course suggestion from the assessment.
func (s *PersonalizationService) DeleteCourseRecommendation(ctx context.Context, principalID, personalizationID uuid.UUID, id int64) error {
	if err := s.authorize(ctx, principalID, personalizationID); err != nil {
		return err
	}
	return s.recommendations.DeleteCourseRecommendation(ctx, personalizationID, id)
}

func (s *PersonalizationService) authorize(ctx context.Context, principalID, id uuid.UUID) error {
	return AuthorizeOwner(ctx, principalID, func(ctx context.Context) (uuid.UUID, error) {
		return s.personalizations.OwnerOf(ctx, id)
	})
}
