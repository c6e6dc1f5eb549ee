package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity (e.g. an identity with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails a constraint the
	// store enforces (e.g. a foreign key to a missing row).
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpstream marks failures the external store reported about the
	// request itself (constraint violations and the like). The API layer
	// surfaces the wrapped message to the client with HTTP 400.
	ErrUpstream = errors.New("store rejected operation")

	// Entity-specific "not found" errors.

	ErrUserProfileNotFound     = fmt.Errorf("%w: user profile", ErrNotFound)
	ErrIdentityNotFound        = fmt.Errorf("%w: identity", ErrNotFound)
	ErrJobNotFound             = fmt.Errorf("%w: job", ErrNotFound)
	ErrCourseNotFound          = fmt.Errorf("%w: course", ErrNotFound)
	ErrQuestionNotFound        = fmt.Errorf("%w: question", ErrNotFound)
	ErrPersonalizationNotFound = fmt.Errorf("%w: personalization", ErrNotFound)
	ErrRecommendationNotFound  = fmt.Errorf("%w: recommendation", ErrNotFound)

	// ErrEmailExists indicates that an identity with the given email already
	// exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
