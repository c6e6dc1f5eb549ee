package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/platform/logger"
	"github.com/arunika-app/arunika-api/internal/store"
)

// QuestionStore implements the store.QuestionStore interface using a
// PostgreSQL database as the storage backend.
type QuestionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewQuestionStore creates a new PostgreSQL implementation of the
// store.QuestionStore interface. If logger is nil, a default logger is used.
func NewQuestionStore(db store.DBTX, log *slog.Logger) *QuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &QuestionStore{
		db:     db,
		logger: log.With(slog.String("component", "question_store")),
	}
}

// Ensure QuestionStore implements store.QuestionStore.
var _ store.QuestionStore = (*QuestionStore)(nil)

// List implements store.QuestionStore.List. Questions come back in ascending
// id order so the assessment presents them in a stable sequence.
func (s *QuestionStore) List(ctx context.Context, roleCategory string) ([]domain.SkillQuestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, text, trait, category, role_category, created_at, updated_at
		FROM skill_questions
		WHERE ($1 = '' OR role_category = $1)
		ORDER BY id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, roleCategory)
	if err != nil {
		log.Error("failed to list questions", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var questions []domain.SkillQuestion
	for rows.Next() {
		question, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *question)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return questions, nil
}

// Categories implements store.QuestionStore.Categories.
func (s *QuestionStore) Categories(ctx context.Context) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT DISTINCT role_category
		FROM skill_questions
		ORDER BY role_category ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list question categories", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetByID implements store.QuestionStore.GetByID.
func (s *QuestionStore) GetByID(ctx context.Context, id int64) (*domain.SkillQuestion, error) {
	query := `
		SELECT id, text, trait, category, role_category, created_at, updated_at
		FROM skill_questions
		WHERE id = $1
	`
	question, err := scanQuestion(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrQuestionNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get question",
			slog.String("error", err.Error()),
			slog.Int64("question_id", id))
		return nil, err
	}
	return question, nil
}

// Create implements store.QuestionStore.Create.
func (s *QuestionStore) Create(ctx context.Context, question *domain.SkillQuestion) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO skill_questions (text, trait, category, role_category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		question.Text,
		question.Trait,
		question.Category,
		question.RoleCategory,
	).Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt)
	if err != nil {
		log.Error("failed to create question", slog.String("error", err.Error()))
		return upstreamError(err)
	}

	log.Info("question created", slog.Int64("question_id", question.ID))
	return nil
}

// Update implements store.QuestionStore.Update.
func (s *QuestionStore) Update(ctx context.Context, question *domain.SkillQuestion) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := question.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE skill_questions
		SET text = $1, trait = $2, category = $3, role_category = $4, updated_at = now()
		WHERE id = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		question.Text,
		question.Trait,
		question.Category,
		question.RoleCategory,
		question.ID,
	)
	if err != nil {
		log.Error("failed to update question",
			slog.String("error", err.Error()),
			slog.Int64("question_id", question.ID))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrQuestionNotFound
	}

	log.Info("question updated", slog.Int64("question_id", question.ID))
	return nil
}

// Delete implements store.QuestionStore.Delete.
func (s *QuestionStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM skill_questions WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete question",
			slog.String("error", err.Error()),
			slog.Int64("question_id", id))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrQuestionNotFound
	}

	log.Info("question deleted", slog.Int64("question_id", id))
	return nil
}

func scanQuestion(row rowScanner) (*domain.SkillQuestion, error) {
	var question domain.SkillQuestion
	err := row.Scan(
		&question.ID,
		&question.Text,
		&question.Trait,
		&question.Category,
		&question.RoleCategory,
		&question.CreatedAt,
		&question.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &question, nil
}
