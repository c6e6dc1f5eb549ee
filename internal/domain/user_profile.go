package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// DefaultUserRole is assigned to profiles created through registration.
const DefaultUserRole = "user"

// emailRegex is a pragmatic format check; the identity provider remains the
// authority on deliverability.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserProfile is the application-level profile row attached to an identity.
// UserID equals the identity provider's user ID, which makes it the owner key
// for every ownership check on the users resource family.
type UserProfile struct {
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Pendidikan string    `json:"pendidikan,omitempty"`
	Pekerjaan  string    `json:"pekerjaan,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewUserProfile creates a profile for the given identity with the default
// role and validates it.
func NewUserProfile(userID uuid.UUID, name, email, pendidikan, pekerjaan string) (*UserProfile, error) {
	p := &UserProfile{
		UserID:     userID,
		Name:       name,
		Email:      email,
		Role:       DefaultUserRole,
		Pendidikan: pendidikan,
		Pekerjaan:  pekerjaan,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks if the UserProfile has valid data.
func (p *UserProfile) Validate() error {
	if p.UserID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty", ErrInvalidID)
	}
	if p.Name == "" {
		return NewValidationError("name", "is required", nil)
	}
	if p.Email == "" {
		return NewValidationError("email", "is required", nil)
	}
	if !emailRegex.MatchString(p.Email) {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	if p.Role == "" {
		return NewValidationError("role", "is required", nil)
	}
	return nil
}
