package store

import (
	"context"

	"github.com/arunika-app/arunika-api/internal/domain"
)

// QuestionStore defines the interface for the skill-question bank.
type QuestionStore interface {
	// List returns all questions, optionally filtered by role category,
	// ordered by ascending id.
	List(ctx context.Context, roleCategory string) ([]domain.SkillQuestion, error)

	// Categories returns the distinct role categories present in the bank.
	Categories(ctx context.Context) ([]string, error)

	// GetByID returns ErrQuestionNotFound if the question does not exist.
	GetByID(ctx context.Context, id int64) (*domain.SkillQuestion, error)

	// Create inserts a question and fills in its assigned ID.
	Create(ctx context.Context, question *domain.SkillQuestion) error

	// Update modifies an existing question.
	// Returns ErrQuestionNotFound if absent.
	Update(ctx context.Context, question *domain.SkillQuestion) error

	// Delete removes a question. Returns ErrQuestionNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
