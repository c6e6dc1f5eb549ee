// Package service provides application-level services: ownership
// authorization and personalization orchestration.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped with context via fmt.Errorf
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrAccessDenied indicates a resource is owned by a different user than
	// the one making the request. The API layer maps this to HTTP 403; it is
	// only ever returned after the resource was proven to exist, so a 403
	// never masks a 404.
	ErrAccessDenied = errors.New("access denied: resource belongs to another user")
)
