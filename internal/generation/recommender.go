package generation

import (
	"context"

	"github.com/arunika-app/arunika-api/internal/domain"
)

// RecommendationSet is the output of one recommendation pass: job and course
// suggestions derived from a completed skill assessment.
type RecommendationSet struct {
	Jobs    []*domain.JobRecommendation
	Courses []*domain.CourseRecommendation
}

// Recommender defines the interface for generating career recommendations
// from an assessment result. This interface serves as a boundary between the
// application core and external AI/LLM services, following the hexagonal
// architecture pattern.
type Recommender interface {
	// Recommend produces job and course suggestions for the given
	// personalization. The returned recommendations carry the
	// personalization's ID but have not been persisted.
	//
	// Parameters:
	//   - ctx: Context for the operation, which can be used for cancellation
	//   - p: The completed assessment to base recommendations on
	//
	// Returns:
	//   - A RecommendationSet with zero or more suggestions of each kind
	//   - An error if generation fails (see errors.go for specific types)
	Recommend(ctx context.Context, p *domain.Personalization) (*RecommendationSet, error)
}
