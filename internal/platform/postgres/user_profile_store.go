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
	"github.com/google/uuid"
)

// UserProfileStore implements the store.UserProfileStore interface using a
// PostgreSQL database as the storage backend.
type UserProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewUserProfileStore creates a new PostgreSQL implementation of the
// store.UserProfileStore interface. If logger is nil, a default logger is used.
func NewUserProfileStore(db store.DBTX, log *slog.Logger) *UserProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &UserProfileStore{
		db:     db,
		logger: log.With(slog.String("component", "user_profile_store")),
	}
}

// Ensure UserProfileStore implements store.UserProfileStore.
var _ store.UserProfileStore = (*UserProfileStore)(nil)

// Upsert implements store.UserProfileStore.Upsert. The ON CONFLICT clause
// makes registration race-safe: a concurrent insert for the same user turns
// into an update instead of a duplicate-key failure.
func (s *UserProfileStore) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO user_profiles (user_id, name, email, role, pendidikan, pekerjaan, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name,
		    email = EXCLUDED.email,
		    pendidikan = EXCLUDED.pendidikan,
		    pekerjaan = EXCLUDED.pekerjaan,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Email,
		profile.Role,
		nullableString(profile.Pendidikan),
		nullableString(profile.Pekerjaan),
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert user profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return upstreamError(err)
	}

	log.Info("user profile upserted", slog.String("user_id", profile.UserID.String()))
	return nil
}

// GetByID implements store.UserProfileStore.GetByID.
func (s *UserProfileStore) GetByID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	query := `
		SELECT user_id, name, email, role, pendidikan, pekerjaan, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`

	var (
		profile    domain.UserProfile
		pendidikan sql.NullString
		pekerjaan  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Email,
		&profile.Role,
		&pendidikan,
		&pekerjaan,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserProfileNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	profile.Pendidikan = pendidikan.String
	profile.Pekerjaan = pekerjaan.String
	return &profile, nil
}

// Update implements store.UserProfileStore.Update.
func (s *UserProfileStore) Update(ctx context.Context, profile *domain.UserProfile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE user_profiles
		SET name = $1, pendidikan = $2, pekerjaan = $3, updated_at = now()
		WHERE user_id = $4
	`
	result, err := s.db.ExecContext(ctx, query,
		profile.Name,
		nullableString(profile.Pendidikan),
		nullableString(profile.Pekerjaan),
		profile.UserID,
	)
	if err != nil {
		log.Error("failed to update user profile",
			slog.String("error", err.Error()),
			slog.String("user_id", profile.UserID.String()))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrUserProfileNotFound
	}

	log.Info("user profile updated", slog.String("user_id", profile.UserID.String()))
	return nil
}

// Delete implements store.UserProfileStore.Delete.
func (s *UserProfileStore) Delete(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete user profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrUserProfileNotFound
	}

	log.Info("user profile deleted", slog.String("user_id", userID.String()))
	return nil
}

// nullableString maps empty strings to SQL NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
