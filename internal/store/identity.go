package store

import (
	"context"

	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/google/uuid"
)

// IdentityStore defines the interface for the local identity provider's
// credential records. Everything above the auth service treats identities as
// opaque; only the provider implementation touches this store.
type IdentityStore interface {
	// Create saves a new identity with its hashed password.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, identity *domain.Identity) error

	// GetByID retrieves an identity by its unique ID.
	// Returns ErrIdentityNotFound if the identity does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error)

	// GetByEmail retrieves an identity by its email address.
	// Returns ErrIdentityNotFound if the identity does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.Identity, error)

	// UpdatePassword replaces the stored password hash.
	// Returns ErrIdentityNotFound if the identity does not exist.
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error

	// Delete removes an identity. Returns ErrIdentityNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error
}
