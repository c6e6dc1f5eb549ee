package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Answer is a single scored response from the skill questionnaire.
type Answer struct {
	QuestionID int64  `json:"question_id"`
	Trait      string `json:"trait"`
	Score      int    `json:"score"`
}

// Personalization is one completed skill assessment, owned by the user who
// submitted it. Child recommendations resolve their ownership through this
// record's UserID.
type Personalization struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	RoleCategory string         `json:"role_category"`
	Answers      []Answer       `json:"answers"`
	Result       map[string]int `json:"result"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewPersonalization creates a Personalization scoped to the given user,
// validates the answers, and aggregates the per-trait result.
func NewPersonalization(userID uuid.UUID, roleCategory string, answers []Answer) (*Personalization, error) {
	p := &Personalization{
		ID:           uuid.New(),
		UserID:       userID,
		RoleCategory: roleCategory,
		Answers:      answers,
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Result = aggregateTraits(answers)
	return p, nil
}

// Validate checks ownership, the role-category whitelist, and each answer.
func (p *Personalization) Validate() error {
	if p.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if p.UserID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty", ErrInvalidID)
	}
	if !IsValidRoleCategory(p.RoleCategory) {
		return NewValidationError(
			"role_category",
			"must be one of: "+strings.Join(ValidRoleCategories, ", "),
			nil,
		)
	}
	if len(p.Answers) == 0 {
		return NewValidationError("answers", "cannot be empty", nil)
	}
	for _, a := range p.Answers {
		if !IsValidTrait(a.Trait) {
			return NewValidationError(
				"answers",
				"trait must be one of: "+strings.Join(ValidTraits, ", "),
				nil,
			)
		}
		if a.Score < 0 {
			return NewValidationError("answers", "score cannot be negative", nil)
		}
	}
	return nil
}

// aggregateTraits sums answer scores per trait.
func aggregateTraits(answers []Answer) map[string]int {
	result := make(map[string]int, len(ValidTraits))
	for _, a := range answers {
		result[a.Trait] += a.Score
	}
	return result
}

// JobRecommendation is a job suggestion attached to a personalization.
// It carries no owner field of its own; ownership is transitive through the
// parent personalization.
type JobRecommendation struct {
	ID                int64     `json:"id"`
	PersonalizationID uuid.UUID `json:"personalization_id"`
	Title             string    `json:"title"`
	Company           string    `json:"company"`
	RoleCategory      string    `json:"role_category"`
	Level             string    `json:"level,omitempty"`
	Score             float64   `json:"score"`
	Reason            string    `json:"reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Validate checks the recommendation's required fields.
func (r *JobRecommendation) Validate() error {
	if r.PersonalizationID == uuid.Nil {
		return NewValidationError("personalization_id", "cannot be empty", ErrInvalidID)
	}
	if r.Title == "" {
		return NewValidationError("title", "is required", nil)
	}
	if r.Score < 0 || r.Score > 1 {
		return NewValidationError("score", "must be between 0 and 1", nil)
	}
	return nil
}

// CourseRecommendation is a course suggestion attached to a personalization,
// with the same transitive-ownership rule as JobRecommendation.
type CourseRecommendation struct {
	ID                int64     `json:"id"`
	PersonalizationID uuid.UUID `json:"personalization_id"`
	Title             string    `json:"title"`
	Provider          string    `json:"provider"`
	Bidang            string    `json:"bidang,omitempty"`
	Level             string    `json:"level,omitempty"`
	Score             float64   `json:"score"`
	Reason            string    `json:"reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Validate checks the recommendation's required fields.
func (r *CourseRecommendation) Validate() error {
	if r.PersonalizationID == uuid.Nil {
		return NewValidationError("personalization_id", "cannot be empty", ErrInvalidID)
	}
	if r.Title == "" {
		return NewValidationError("title", "is required", nil)
	}
	if r.Score < 0 || r.Score > 1 {
		return NewValidationError("score", "must be between 0 and 1", nil)
	}
	return nil
}
