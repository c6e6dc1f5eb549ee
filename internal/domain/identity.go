package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity validation errors.
var (
	ErrEmptyPassword      = NewValidationError("password", "cannot be empty", nil)
	ErrPasswordTooShort   = NewValidationError("password", "must be at least 6 characters", nil)
	ErrEmptyHashedSecret  = NewValidationError("hashed_password", "cannot be empty", nil)
	ErrEmptyIdentityEmail = NewValidationError("email", "is required", nil)
)

// MinPasswordLength mirrors the provider-side rule so validation fails fast
// before the provider round-trip.
const MinPasswordLength = 6

// Identity is a record in the local identity provider: the credential side of
// a user, distinct from the application profile. Metadata carries arbitrary
// sign-up attributes (name, pendidikan, pekerjaan) the way the hosted
// provider's user_metadata does.
type Identity struct {
	ID             uuid.UUID      `json:"id"`
	Email          string         `json:"email"`
	HashedPassword string         `json:"-"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewIdentity creates an Identity with a fresh ID.
// The caller is responsible for hashing the password before storage; this
// constructor only validates shape.
func NewIdentity(email string, metadata map[string]any) (*Identity, error) {
	id := &Identity{
		ID:        uuid.New(),
		Email:     email,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return id, nil
}

// Validate checks if the Identity has valid data.
func (i *Identity) Validate() error {
	if i.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if i.Email == "" {
		return ErrEmptyIdentityEmail
	}
	if !emailRegex.MatchString(i.Email) {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	return nil
}

// ValidatePassword applies the provider's plaintext password policy.
func ValidatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
