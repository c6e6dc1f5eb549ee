package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/arunika-app/arunika-api/internal/api/shared"
	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/service"
	"github.com/arunika-app/arunika-api/internal/service/auth"
	"github.com/arunika-app/arunika-api/internal/store"
)

// developmentMode controls whether unexpected 500s return the raw error text
// instead of a generic message. Set once during startup, before the server
// accepts requests.
var developmentMode bool

// SetDevelopmentMode enables detailed error responses for local debugging.
func SetDevelopmentMode(enabled bool) {
	developmentMode = enabled
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Validation errors carry their own client-facing message
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors: only reachable after the resource was proven to
	// exist, so 403 never stands in for 404
	case errors.Is(err, service.ErrAccessDenied):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Upstream rejections (constraint violations, duplicate email) surface as
	// client errors with the store's message
	case errors.Is(err, store.ErrUpstream),
		store.IsDuplicateError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the client-facing message for an error.
// Validation and upstream errors pass their text through; everything else
// maps to a fixed phrase so internals never leak.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid or expired token"

	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "No token provided"

	case errors.Is(err, service.ErrAccessDenied):
		return "Access denied"

	case errors.Is(err, store.ErrUserProfileNotFound):
		return "User not found"

	case errors.Is(err, store.ErrIdentityNotFound):
		return "User not found"

	case errors.Is(err, store.ErrJobNotFound):
		return "Job not found"

	case errors.Is(err, store.ErrCourseNotFound):
		return "Course not found"

	case errors.Is(err, store.ErrQuestionNotFound):
		return "Question not found"

	case errors.Is(err, store.ErrPersonalizationNotFound):
		return "Personalization not found"

	case errors.Is(err, store.ErrRecommendationNotFound):
		return "Recommendation not found"

	case store.IsNotFoundError(err):
		return "Resource not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already registered"

	case errors.Is(err, store.ErrUpstream):
		// Pass the store's own message through, without the sentinel prefix.
		return strings.TrimPrefix(err.Error(), store.ErrUpstream.Error()+": ")

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		if developmentMode {
			return err.Error()
		}
		return "Internal server error"
	}
}

// HandleAPIError maps err to a status code and safe message, logs the full
// error, and writes the error envelope. fallbackMessage, when non-empty,
// replaces the generic text for unexpected server errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)

	if statusCode == http.StatusInternalServerError && fallbackMessage != "" && !developmentMode {
		safeMessage = fallbackMessage
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}

// SanitizeValidationError turns a validator.Struct error into a short
// client-facing message without echoing internal struct paths.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := strings.ToLower(fieldParts[1])
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return "Invalid " + field + ": " + validationTagMessage(tag)
				}
				return "Invalid " + field
			}
		}
	}

	return "Validation error"
}

// validationTagMessage maps validation tags to user-friendly error messages
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
