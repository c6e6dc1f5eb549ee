package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/platform/logger"
	"github.com/arunika-app/arunika-api/internal/store"
)

// RecommendationStore implements the store.RecommendationStore interface
// using a PostgreSQL database as the storage backend.
type RecommendationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewRecommendationStore creates a new PostgreSQL implementation of the
// store.RecommendationStore interface. If logger is nil, a default logger
// is used.
func NewRecommendationStore(db store.DBTX, log *slog.Logger) *RecommendationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &RecommendationStore{
		db:     db,
		logger: log.With(slog.String("component", "recommendation_store")),
	}
}

// Ensure RecommendationStore implements store.RecommendationStore.
var _ store.RecommendationStore = (*RecommendationStore)(nil)

// CreateJobRecommendations implements store.RecommendationStore.
func (s *RecommendationStore) CreateJobRecommendations(ctx context.Context, recs []*domain.JobRecommendation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO job_recommendations
			(personalization_id, title, company, role_category, level, score, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, created_at
	`
	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			return err
		}
		err := s.db.QueryRowContext(ctx, query,
			rec.PersonalizationID,
			rec.Title,
			rec.Company,
			rec.RoleCategory,
			nullableString(rec.Level),
			rec.Score,
			nullableString(rec.Reason),
		).Scan(&rec.ID, &rec.CreatedAt)
		if err != nil {
			log.Error("failed to create job recommendation",
				slog.String("error", err.Error()),
				slog.String("personalization_id", rec.PersonalizationID.String()))
			return upstreamError(err)
		}
	}

	log.Info("job recommendations created", slog.Int("count", len(recs)))
	return nil
}

// ListJobRecommendations implements store.RecommendationStore.
func (s *RecommendationStore) ListJobRecommendations(ctx context.Context, personalizationID uuid.UUID) ([]domain.JobRecommendation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, personalization_id, title, company, role_category, level, score, reason, created_at
		FROM job_recommendations
		WHERE personalization_id = $1
		ORDER BY score DESC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, personalizationID)
	if err != nil {
		log.Error("failed to list job recommendations", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var recs []domain.JobRecommendation
	for rows.Next() {
		var (
			rec    domain.JobRecommendation
			level  sql.NullString
			reason sql.NullString
		)
		err := rows.Scan(
			&rec.ID,
			&rec.PersonalizationID,
			&rec.Title,
			&rec.Company,
			&rec.RoleCategory,
			&level,
			&rec.Score,
			&reason,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.Level = level.String
		rec.Reason = reason.String
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// DeleteJobRecommendation implements store.RecommendationStore. The delete is
// scoped to the parent personalization so a recommendation id alone can never
// reach across records.
func (s *RecommendationStore) DeleteJobRecommendation(ctx context.Context, personalizationID uuid.UUID, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM job_recommendations WHERE personalization_id = $1 AND id = $2`
	result, err := s.db.ExecContext(ctx, query, personalizationID, id)
	if err != nil {
		log.Error("failed to delete job recommendation",
			slog.String("error", err.Error()),
			slog.Int64("recommendation_id", id))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrRecommendationNotFound
	}

	log.Info("job recommendation deleted", slog.Int64("recommendation_id", id))
	return nil
}

// CreateCourseRecommendations implements store.RecommendationStore.
func (s *RecommendationStore) CreateCourseRecommendations(ctx context.Context, recs []*domain.CourseRecommendation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO course_recommendations
			(personalization_id, title, provider, bidang, level, score, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, created_at
	`
	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			return err
		}
		err := s.db.QueryRowContext(ctx, query,
			rec.PersonalizationID,
			rec.Title,
			rec.Provider,
			nullableString(rec.Bidang),
			nullableString(rec.Level),
			rec.Score,
			nullableString(rec.Reason),
		).Scan(&rec.ID, &rec.CreatedAt)
		if err != nil {
			log.Error("failed to create course recommendation",
				slog.String("error", err.Error()),
				slog.String("personalization_id", rec.PersonalizationID.String()))
			return upstreamError(err)
		}
	}

	log.Info("course recommendations created", slog.Int("count", len(recs)))
	return nil
}

// ListCourseRecommendations implements store.RecommendationStore.
func (s *RecommendationStore) ListCourseRecommendations(ctx context.Context, personalizationID uuid.UUID) ([]domain.CourseRecommendation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, personalization_id, title, provider, bidang, level, score, reason, created_at
		FROM course_recommendations
		WHERE personalization_id = $1
		ORDER BY score DESC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query, personalizationID)
	if err != nil {
		log.Error("failed to list course recommendations", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var recs []domain.CourseRecommendation
	for rows.Next() {
		var (
			rec    domain.CourseRecommendation
			bidang sql.NullString
			level  sql.NullString
			reason sql.NullString
		)
		err := rows.Scan(
			&rec.ID,
			&rec.PersonalizationID,
			&rec.Title,
			&rec.Provider,
			&bidang,
			&level,
			&rec.Score,
			&reason,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.Bidang = bidang.String
		rec.Level = level.String
		rec.Reason = reason.String
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}

// DeleteCourseRecommendation implements store.RecommendationStore.
func (s *RecommendationStore) DeleteCourseRecommendation(ctx context.Context, personalizationID uuid.UUID, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM course_recommendations WHERE personalization_id = $1 AND id = $2`
	result, err := s.db.ExecContext(ctx, query, personalizationID, id)
	if err != nil {
		log.Error("failed to delete course recommendation",
			slog.String("error", err.Error()),
			slog.Int64("recommendation_id", id))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrRecommendationNotFound
	}

	log.Info("course recommendation deleted", slog.Int64("recommendation_id", id))
	return nil
}
