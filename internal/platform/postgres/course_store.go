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

// CourseStore implements the store.CourseStore interface using a PostgreSQL
// database as the storage backend.
type CourseStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewCourseStore creates a new PostgreSQL implementation of the
// store.CourseStore interface. If logger is nil, a default logger is used.
func NewCourseStore(db store.DBTX, log *slog.Logger) *CourseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &CourseStore{
		db:     db,
		logger: log.With(slog.String("component", "course_store")),
	}
}

// Ensure CourseStore implements store.CourseStore.
var _ store.CourseStore = (*CourseStore)(nil)

// List implements store.CourseStore.List.
func (s *CourseStore) List(ctx context.Context, filter store.CourseFilter, offset, limit int) ([]domain.SkillCourse, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where := ` WHERE ($1 = '' OR bidang = $1) AND ($2 = '' OR level = $2)`

	var total int
	countQuery := `SELECT count(*) FROM skill_courses` + where
	if err := s.db.QueryRowContext(ctx, countQuery, filter.Bidang, filter.Level).Scan(&total); err != nil {
		log.Error("failed to count courses", slog.String("error", err.Error()))
		return nil, 0, err
	}

	query := `
		SELECT id, title, provider, bidang, level, url, description, created_at, updated_at
		FROM skill_courses` + where + `
		ORDER BY id ASC
		LIMIT $3 OFFSET $4
	`
	rows, err := s.db.QueryContext(ctx, query, filter.Bidang, filter.Level, limit, offset)
	if err != nil {
		log.Error("failed to list courses", slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer func() { _ = rows.Close() }()

	var courses []domain.SkillCourse
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, *course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// GetByID implements store.CourseStore.GetByID.
func (s *CourseStore) GetByID(ctx context.Context, id int64) (*domain.SkillCourse, error) {
	query := `
		SELECT id, title, provider, bidang, level, url, description, created_at, updated_at
		FROM skill_courses
		WHERE id = $1
	`
	course, err := scanCourse(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCourseNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get course",
			slog.String("error", err.Error()),
			slog.Int64("course_id", id))
		return nil, err
	}
	return course, nil
}

// Create implements store.CourseStore.Create.
func (s *CourseStore) Create(ctx context.Context, course *domain.SkillCourse) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO skill_courses (title, provider, bidang, level, url, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query,
		course.Title,
		course.Provider,
		course.Bidang,
		nullableString(course.Level),
		nullableString(course.URL),
		nullableString(course.Description),
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		log.Error("failed to create course", slog.String("error", err.Error()))
		return upstreamError(err)
	}

	log.Info("course created", slog.Int64("course_id", course.ID))
	return nil
}

// Update implements store.CourseStore.Update.
func (s *CourseStore) Update(ctx context.Context, course *domain.SkillCourse) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := course.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE skill_courses
		SET title = $1, provider = $2, bidang = $3, level = $4,
		    url = $5, description = $6, updated_at = now()
		WHERE id = $7
	`
	result, err := s.db.ExecContext(ctx, query,
		course.Title,
		course.Provider,
		course.Bidang,
		nullableString(course.Level),
		nullableString(course.URL),
		nullableString(course.Description),
		course.ID,
	)
	if err != nil {
		log.Error("failed to update course",
			slog.String("error", err.Error()),
			slog.Int64("course_id", course.ID))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrCourseNotFound
	}

	log.Info("course updated", slog.Int64("course_id", course.ID))
	return nil
}

// Delete implements store.CourseStore.Delete.
func (s *CourseStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM skill_courses WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete course",
			slog.String("error", err.Error()),
			slog.Int64("course_id", id))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrCourseNotFound
	}

	log.Info("course deleted", slog.Int64("course_id", id))
	return nil
}

func scanCourse(row rowScanner) (*domain.SkillCourse, error) {
	var (
		course      domain.SkillCourse
		level       sql.NullString
		url         sql.NullString
		description sql.NullString
	)
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Provider,
		&course.Bidang,
		&level,
		&url,
		&description,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	course.Level = level.String
	course.URL = url.String
	course.Description = description.String
	return &course, nil
}
