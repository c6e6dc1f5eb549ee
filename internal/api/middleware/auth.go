package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/arunika-app/arunika-api/internal/api/shared"
	"github.com/arunika-app/arunika-api/internal/redact"
	"github.com/arunika-app/arunika-api/internal/service/auth"
)

// AuthMiddleware provides token authentication for routes.
type AuthMiddleware struct {
	verifier auth.TokenVerifier
}

// NewAuthMiddleware creates a new AuthMiddleware with the given verifier.
func NewAuthMiddleware(verifier auth.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth validates the bearer token and attaches the principal to the
// request context. A request that never presented a credential fails before
// the verifier is consulted; a rejected credential fails after. Only an
// unexpected verifier failure surfaces as a server error.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.ExtractBearer(r.Header.Get("Authorization"))
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
				return
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		principal, err := m.verifier.VerifyToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken),
				errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrWrongTokenType),
				errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired token")
			default:
				slog.Error("failed to verify token", "error", redact.Error(err))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.PrincipalContextKey, *principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches the principal when a valid bearer token is present
// and silently continues anonymously otherwise. No token-related response is
// ever written here.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.ExtractBearer(r.Header.Get("Authorization"))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := m.verifier.VerifyToken(r.Context(), token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), shared.PrincipalContextKey, *principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPrincipal extracts the authenticated principal from the request context.
// Returns the principal and a boolean indicating if it was found.
func GetPrincipal(r *http.Request) (auth.Principal, bool) {
	principal, ok := r.Context().Value(shared.PrincipalContextKey).(auth.Principal)
	return principal, ok
}
