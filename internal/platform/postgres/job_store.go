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

// JobStore implements the store.JobStore interface using a PostgreSQL
// database as the storage backend.
type JobStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewJobStore creates a new PostgreSQL implementation of the store.JobStore
// interface. If logger is nil, a default logger is used.
func NewJobStore(db store.DBTX, log *slog.Logger) *JobStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &JobStore{
		db:     db,
		logger: log.With(slog.String("component", "job_store")),
	}
}

// Ensure JobStore implements store.JobStore.
var _ store.JobStore = (*JobStore)(nil)

// List implements store.JobStore.List. The filter is applied to both the
// count and the page query so the pagination metadata stays consistent.
func (s *JobStore) List(ctx context.Context, filter store.JobFilter, offset, limit int) ([]domain.Job, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where := ` WHERE ($1 = '' OR role_category = $1) AND ($2 = '' OR level = $2)`

	var total int
	countQuery := `SELECT count(*) FROM jobs` + where
	if err := s.db.QueryRowContext(ctx, countQuery, filter.RoleCategory, filter.Level).Scan(&total); err != nil {
		log.Error("failed to count jobs", slog.String("error", err.Error()))
		return nil, 0, err
	}

	query := `
		SELECT id, title, company, role_category, level, location, description, url, created_at, updated_at
		FROM jobs` + where + `
		ORDER BY id ASC
		LIMIT $3 OFFSET $4
	`
	rows, err := s.db.QueryContext(ctx, query, filter.RoleCategory, filter.Level, limit, offset)
	if err != nil {
		log.Error("failed to list jobs", slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

// GetByID implements store.JobStore.GetByID.
func (s *JobStore) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `
		SELECT id, title, company, role_category, level, location, description, url, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`
	job, err := scanJob(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrJobNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get job",
			slog.String("error", err.Error()),
			slog.Int64("job_id", id))
		return nil, err
	}
	return job, nil
}

// Create implements store.JobStore.Create.
func (s *JobStore) Create(ctx context.Context, job *domain.Job) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := job.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO jobs (title, company, role_category, level, location, description, url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		job.Title,
		job.Company,
		job.RoleCategory,
		nullableString(job.Level),
		nullableString(job.Location),
		nullableString(job.Description),
		nullableString(job.URL),
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		log.Error("failed to create job", slog.String("error", err.Error()))
		return upstreamError(err)
	}

	log.Info("job created", slog.Int64("job_id", job.ID))
	return nil
}

// Update implements store.JobStore.Update.
func (s *JobStore) Update(ctx context.Context, job *domain.Job) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := job.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE jobs
		SET title = $1, company = $2, role_category = $3, level = $4,
		    location = $5, description = $6, url = $7, updated_at = now()
		WHERE id = $8
	`
	result, err := s.db.ExecContext(ctx, query,
		job.Title,
		job.Company,
		job.RoleCategory,
		nullableString(job.Level),
		nullableString(job.Location),
		nullableString(job.Description),
		nullableString(job.URL),
		job.ID,
	)
	if err != nil {
		log.Error("failed to update job",
			slog.String("error", err.Error()),
			slog.Int64("job_id", job.ID))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrJobNotFound
	}

	log.Info("job updated", slog.Int64("job_id", job.ID))
	return nil
}

// Delete implements store.JobStore.Delete.
func (s *JobStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete job",
			slog.String("error", err.Error()),
			slog.Int64("job_id", id))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrJobNotFound
	}

	log.Info("job deleted", slog.Int64("job_id", id))
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		job         domain.Job
		level       sql.NullString
		location    sql.NullString
		description sql.NullString
		url         sql.NullString
	)
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.RoleCategory,
		&level,
		&location,
		&description,
		&url,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	job.Level = level.String
	job.Location = location.String
	job.Description = description.String
	job.URL = url.String
	return &job, nil
}
