package service

import (
	"context"

	"github.com/google/uuid"
)

// OwnerResolver reports the owning user of a resource. Implementations come
// from the stores: a direct resource resolves to its own key, a child resource
// resolves through its parent. The resolver returns the store's not-found
// sentinel when the resource does not exist.
type OwnerResolver func(ctx context.Context) (uuid.UUID, error)

// AuthorizeOwner runs the two-step ownership check: existence first, then
// ownership. A resolver error passes through untouched so a missing resource
// stays a not-found condition; only a resolved owner that differs from the
// principal becomes ErrAccessDenied.
func AuthorizeOwner(ctx context.Context, principalID uuid.UUID, resolve OwnerResolver) error {
	ownerID, err := resolve(ctx)
	if err != nil {
		return err
	}
	if ownerID != principalID {
		return ErrAccessDenied
	}
	return nil
}
