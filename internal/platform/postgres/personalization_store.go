package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/platform/logger"
	"github.com/arunika-app/arunika-api/internal/store"
)

// PersonalizationStore implements the store.PersonalizationStore interface
// using a PostgreSQL database as the storage backend. Answers and the
// aggregated result live in jsonb columns alongside the scalar fields.
type PersonalizationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPersonalizationStore creates a new PostgreSQL implementation of the
// store.PersonalizationStore interface. If logger is nil, a default logger
// is used.
func NewPersonalizationStore(db store.DBTX, log *slog.Logger) *PersonalizationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PersonalizationStore{
		db:     db,
		logger: log.With(slog.String("component", "personalization_store")),
	}
}

// Ensure PersonalizationStore implements store.PersonalizationStore.
var _ store.PersonalizationStore = (*PersonalizationStore)(nil)

// Create implements store.PersonalizationStore.Create.
func (s *PersonalizationStore) Create(ctx context.Context, p *domain.Personalization) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		return err
	}

	answersJSON, err := json.Marshal(p.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}
	resultJSON, err := json.Marshal(p.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `
		INSERT INTO personalizations (id, user_id, role_category, answers, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.RoleCategory,
		answersJSON,
		resultJSON,
		p.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("personalization references unknown user",
				slog.String("user_id", p.UserID.String()))
			return upstreamError(err)
		}
		log.Error("failed to create personalization",
			slog.String("error", err.Error()),
			slog.String("personalization_id", p.ID.String()))
		return upstreamError(err)
	}

	log.Info("personalization created",
		slog.String("personalization_id", p.ID.String()),
		slog.String("user_id", p.UserID.String()))
	return nil
}

// ListByUser implements store.PersonalizationStore.ListByUser.
func (s *PersonalizationStore) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Personalization, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	countQuery := `SELECT count(*) FROM personalizations WHERE user_id = $1`
	if err := s.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		log.Error("failed to count personalizations", slog.String("error", err.Error()))
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, role_category, answers, result, created_at
		FROM personalizations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error("failed to list personalizations", slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	var items []domain.Personalization
	for rows.Next() {
		p, err := scanPersonalization(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// GetByID implements store.PersonalizationStore.GetByID.
func (s *PersonalizationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Personalization, error) {
	query := `
		SELECT id, user_id, role_category, answers, result, created_at
		FROM personalizations
		WHERE id = $1
	`
	p, err := scanPersonalization(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrPersonalizationNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get personalization",
			slog.String("error", err.Error()),
			slog.String("personalization_id", id.String()))
		return nil, err
	}
	return p, nil
}

// OwnerOf implements store.PersonalizationStore.OwnerOf. It fetches only the
// owning user id, which keeps the existence-then-ownership check cheap.
func (s *PersonalizationStore) OwnerOf(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var ownerID uuid.UUID
	query := `SELECT user_id FROM personalizations WHERE id = $1`
	err := s.db.QueryRowContext(ctx, query, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, store.ErrPersonalizationNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to resolve personalization owner",
			slog.String("error", err.Error()),
			slog.String("personalization_id", id.String()))
		return uuid.Nil, err
	}
	return ownerID, nil
}

// Delete implements store.PersonalizationStore.Delete. Recommendation children
// go with it through the schema's ON DELETE CASCADE.
func (s *PersonalizationStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM personalizations WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete personalization",
			slog.String("error", err.Error()),
			slog.String("personalization_id", id.String()))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrPersonalizationNotFound
	}

	log.Info("personalization deleted", slog.String("personalization_id", id.String()))
	return nil
}

func scanPersonalization(row rowScanner) (*domain.Personalization, error) {
	var (
		p           domain.Personalization
		answersJSON []byte
		resultJSON  []byte
	)
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.RoleCategory,
		&answersJSON,
		&resultJSON,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(answersJSON, &p.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	if err := json.Unmarshal(resultJSON, &p.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &p, nil
}
