package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Principal is the authenticated caller extracted from a verified token.
type Principal struct {
	ID    uuid.UUID
	Email string
}

// Session is a token pair issued on sign-up, sign-in, or refresh.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResult bundles the authenticated identity with its fresh session.
type AuthResult struct {
	Principal Principal
	Metadata  map[string]any
	Session   Session
}

// SignUpParams are the inputs to Provider.SignUp. Metadata is stored with the
// identity and carried back on sign-in so a missing profile can be rebuilt.
type SignUpParams struct {
	Email    string
	Password string
	Metadata map[string]any
}

// TokenVerifier is the narrow surface the HTTP middleware depends on.
type TokenVerifier interface {
	// VerifyToken validates an access token and returns its principal.
	// Returns ErrInvalidToken, ErrExpiredToken, or ErrWrongTokenType when the
	// credential is rejected, and ErrProviderUnavailable on unexpected failure.
	VerifyToken(ctx context.Context, token string) (*Principal, error)
}

// Provider is the identity-provider surface the auth handlers depend on.
// The concrete implementation lives in this package (JWTProvider); keeping
// the interface narrow means handlers never touch credential storage.
type Provider interface {
	TokenVerifier

	// SignUp registers a new identity and returns a fresh session.
	// Returns store.ErrEmailExists if the email is already taken.
	SignUp(ctx context.Context, params SignUpParams) (*AuthResult, error)

	// SignInWithPassword authenticates an email/password pair.
	// Returns ErrInvalidCredentials when the pair does not match.
	SignInWithPassword(ctx context.Context, email, password string) (*AuthResult, error)

	// SignOut invalidates the caller's session. Tokens are stateless, so this
	// verifies the token and succeeds; clients discard their copy.
	SignOut(ctx context.Context, token string) error

	// RefreshSession exchanges a valid refresh token for a new token pair.
	RefreshSession(ctx context.Context, refreshToken string) (*AuthResult, error)

	// UpdateUser replaces the identity's password.
	UpdateUser(ctx context.Context, userID uuid.UUID, newPassword string) error

	// ResetPasswordForEmail issues a short-lived recovery token for the email.
	// Returns the token so the caller can deliver it; the error is
	// store.ErrIdentityNotFound when no such identity exists.
	ResetPasswordForEmail(ctx context.Context, email string) (string, error)

	// VerifyRecoveryToken validates a password-recovery token and returns its
	// principal, with the same error contract as VerifyToken.
	VerifyRecoveryToken(ctx context.Context, token string) (*Principal, error)

	// DeleteUser removes the identity record.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

const bearerPrefix = "Bearer "

// ExtractBearer pulls the token out of an Authorization header value.
// An absent or non-Bearer header is ErrMissingToken; a Bearer prefix with an
// empty token is ErrInvalidToken. The distinction matters: missing means the
// caller never presented a credential, so the provider is not consulted.
func ExtractBearer(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrMissingToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}
