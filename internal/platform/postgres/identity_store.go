package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/platform/logger"
	"github.com/arunika-app/arunika-api/internal/store"
	"github.com/google/uuid"
)

// IdentityStore implements the store.IdentityStore interface using a
// PostgreSQL database as the storage backend.
type IdentityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewIdentityStore creates a new PostgreSQL implementation of the
// store.IdentityStore interface. If logger is nil, a default logger is used.
func NewIdentityStore(db store.DBTX, log *slog.Logger) *IdentityStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &IdentityStore{
		db:     db,
		logger: log.With(slog.String("component", "identity_store")),
	}
}

// Ensure IdentityStore implements store.IdentityStore.
var _ store.IdentityStore = (*IdentityStore)(nil)

// Create implements store.IdentityStore.Create.
func (s *IdentityStore) Create(ctx context.Context, identity *domain.Identity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := identity.Validate(); err != nil {
		return err
	}
	if identity.HashedPassword == "" {
		return domain.ErrEmptyHashedSecret
	}

	metadata, err := json.Marshal(identity.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode identity metadata: %w", err)
	}

	query := `
		INSERT INTO identities (id, email, hashed_password, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = s.db.ExecContext(ctx, query,
		identity.ID,
		identity.Email,
		identity.HashedPassword,
		metadata,
		identity.CreatedAt,
		identity.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrEmailExists
		}
		log.Error("failed to create identity",
			slog.String("error", err.Error()),
			slog.String("identity_id", identity.ID.String()))
		return upstreamError(err)
	}

	log.Info("identity created", slog.String("identity_id", identity.ID.String()))
	return nil
}

// GetByID implements store.IdentityStore.GetByID.
func (s *IdentityStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	query := `
		SELECT id, email, hashed_password, metadata, created_at, updated_at
		FROM identities
		WHERE id = $1
	`
	return s.scanIdentity(ctx, s.db.QueryRowContext(ctx, query, id))
}

// GetByEmail implements store.IdentityStore.GetByEmail.
func (s *IdentityStore) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	query := `
		SELECT id, email, hashed_password, metadata, created_at, updated_at
		FROM identities
		WHERE email = $1
	`
	return s.scanIdentity(ctx, s.db.QueryRowContext(ctx, query, email))
}

// UpdatePassword implements store.IdentityStore.UpdatePassword.
func (s *IdentityStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if hashedPassword == "" {
		return domain.ErrEmptyHashedSecret
	}

	query := `
		UPDATE identities
		SET hashed_password = $1, updated_at = now()
		WHERE id = $2
	`
	result, err := s.db.ExecContext(ctx, query, hashedPassword, id)
	if err != nil {
		log.Error("failed to update identity password",
			slog.String("error", err.Error()),
			slog.String("identity_id", id.String()))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrIdentityNotFound
	}

	log.Info("identity password updated", slog.String("identity_id", id.String()))
	return nil
}

// Delete implements store.IdentityStore.Delete.
func (s *IdentityStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM identities WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete identity",
			slog.String("error", err.Error()),
			slog.String("identity_id", id.String()))
		return upstreamError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrIdentityNotFound
	}

	log.Info("identity deleted", slog.String("identity_id", id.String()))
	return nil
}

// scanIdentity reads one identity row, mapping sql.ErrNoRows to the store's
// not-found sentinel.
func (s *IdentityStore) scanIdentity(ctx context.Context, row *sql.Row) (*domain.Identity, error) {
	var (
		identity domain.Identity
		metadata []byte
	)
	err := row.Scan(
		&identity.ID,
		&identity.Email,
		&identity.HashedPassword,
		&metadata,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrIdentityNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to scan identity",
			slog.String("error", err.Error()))
		return nil, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &identity.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode identity metadata: %w", err)
		}
	}
	return &identity, nil
}
