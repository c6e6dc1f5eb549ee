package store

import (
	"context"

	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/google/uuid"
)

// UserProfileStore defines the interface for user profile persistence.
type UserProfileStore interface {
	// Upsert saves a profile row, updating it in place if a row for the same
	// user already exists. Registration relies on this to be race-safe when
	// the identity provider and the profile table disagree.
	Upsert(ctx context.Context, profile *domain.UserProfile) error

	// GetByID retrieves a profile by the owning user's ID.
	// Returns ErrUserProfileNotFound if the profile does not exist.
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)

	// Update modifies an existing profile's mutable fields (name, pendidikan,
	// pekerjaan). Returns ErrUserProfileNotFound if the profile does not exist.
	Update(ctx context.Context, profile *domain.UserProfile) error

	// Delete removes a profile by the owning user's ID.
	// Returns ErrUserProfileNotFound if the profile does not exist.
	Delete(ctx context.Context, userID uuid.UUID) error
}
