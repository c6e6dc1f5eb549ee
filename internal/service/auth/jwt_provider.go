package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/arunika-app/arunika-api/internal/config"
	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/platform/logger"
	"github.com/arunika-app/arunika-api/internal/store"
)

// Token types carried in the "type" claim. Each route class accepts exactly
// one type, so a refresh token can never authenticate an API call.
const (
	tokenTypeAccess   = "access"
	tokenTypeRefresh  = "refresh"
	tokenTypeRecovery = "recovery"
)

// jwtCustomClaims defines the structure of JWT claims we use.
type jwtCustomClaims struct {
	UserID    uuid.UUID `json:"uid"`
	Email     string    `json:"email"`
	TokenType string    `json:"type"`
	jwt.RegisteredClaims
}

// JWTProvider implements Provider with HMAC-SHA256 signed tokens and a local
// identity store. It is the whole identity provider: credential storage,
// password verification, and token issuance in one place.
type JWTProvider struct {
	identities store.IdentityStore
	hasher     PasswordHasher
	verifier   PasswordVerifier

	signingKey       []byte
	accessLifetime   time.Duration
	refreshLifetime  time.Duration
	recoveryLifetime time.Duration
	timeFunc         func() time.Time // Injectable for testing
	clockSkew        time.Duration
}

// Ensure JWTProvider implements the Provider interface.
var _ Provider = (*JWTProvider)(nil)

// NewJWTProvider creates a Provider backed by HMAC-SHA256 signing and the
// given identity store.
func NewJWTProvider(cfg config.AuthConfig, identities store.IdentityStore) (*JWTProvider, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}
	if identities == nil {
		return nil, fmt.Errorf("identity store cannot be nil")
	}

	bv := NewBcryptVerifier()
	return &JWTProvider{
		identities:       identities,
		hasher:           bv,
		verifier:         bv,
		signingKey:       []byte(cfg.JWTSecret),
		accessLifetime:   time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		refreshLifetime:  time.Duration(cfg.RefreshTokenLifetimeMinutes) * time.Minute,
		recoveryLifetime: time.Duration(cfg.ResetTokenLifetimeMinutes) * time.Minute,
		timeFunc:         time.Now,
		clockSkew:        2 * time.Minute, // Allow minor clock drift between issuer and validator
	}, nil
}

// VerifyToken implements Provider.VerifyToken for access tokens.
func (p *JWTProvider) VerifyToken(ctx context.Context, token string) (*Principal, error) {
	claims, err := p.parseToken(ctx, token, tokenTypeAccess)
	if err != nil {
		return nil, err
	}
	return &Principal{ID: claims.UserID, Email: claims.Email}, nil
}

// VerifyRecoveryToken implements Provider.VerifyRecoveryToken.
func (p *JWTProvider) VerifyRecoveryToken(ctx context.Context, token string) (*Principal, error) {
	claims, err := p.parseToken(ctx, token, tokenTypeRecovery)
	if err != nil {
		return nil, err
	}
	return &Principal{ID: claims.UserID, Email: claims.Email}, nil
}

// SignUp implements Provider.SignUp.
func (p *JWTProvider) SignUp(ctx context.Context, params SignUpParams) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, nil)

	if err := domain.ValidatePassword(params.Password); err != nil {
		return nil, err
	}

	hashed, err := p.hasher.Hash(params.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("%w: password hashing failed", ErrProviderUnavailable)
	}

	identity, err := domain.NewIdentity(params.Email, params.Metadata)
	if err != nil {
		return nil, err
	}
	identity.HashedPassword = hashed

	if err := p.identities.Create(ctx, identity); err != nil {
		return nil, err
	}

	log.Info("identity created",
		"user_id", identity.ID,
		"token_type", tokenTypeAccess)
	return p.issueSession(ctx, identity)
}

// SignInWithPassword implements Provider.SignInWithPassword. A missing
// identity and a wrong password both come back as ErrInvalidCredentials so
// callers cannot probe which emails exist.
func (p *JWTProvider) SignInWithPassword(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, nil)

	identity, err := p.identities.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			log.Debug("sign-in failed: unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if err := p.verifier.Compare(identity.HashedPassword, password); err != nil {
		log.Debug("sign-in failed: password mismatch", "user_id", identity.ID)
		return nil, ErrInvalidCredentials
	}

	return p.issueSession(ctx, identity)
}

// SignOut implements Provider.SignOut. Tokens are stateless: a verified
// caller is signed out by the client discarding the pair.
func (p *JWTProvider) SignOut(ctx context.Context, token string) error {
	_, err := p.parseToken(ctx, token, tokenTypeAccess)
	return err
}

// RefreshSession implements Provider.RefreshSession.
func (p *JWTProvider) RefreshSession(ctx context.Context, refreshToken string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, nil)

	claims, err := p.parseToken(ctx, refreshToken, tokenTypeRefresh)
	if err != nil {
		// Surface refresh-specific sentinels so callers can distinguish an
		// expired refresh token from a merely invalid one.
		switch {
		case errors.Is(err, ErrExpiredToken):
			return nil, ErrExpiredRefreshToken
		case errors.Is(err, ErrInvalidToken):
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	identity, err := p.identities.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrIdentityNotFound) {
			log.Debug("refresh failed: identity gone", "user_id", claims.UserID)
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	return p.issueSession(ctx, identity)
}

// UpdateUser implements Provider.UpdateUser.
func (p *JWTProvider) UpdateUser(ctx context.Context, userID uuid.UUID, newPassword string) error {
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashed, err := p.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%w: password hashing failed", ErrProviderUnavailable)
	}

	return p.identities.UpdatePassword(ctx, userID, hashed)
}

// ResetPasswordForEmail implements Provider.ResetPasswordForEmail.
func (p *JWTProvider) ResetPasswordForEmail(ctx context.Context, email string) (string, error) {
	identity, err := p.identities.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return p.signToken(ctx, identity.ID, identity.Email, tokenTypeRecovery, p.recoveryLifetime)
}

// DeleteUser implements Provider.DeleteUser.
func (p *JWTProvider) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return p.identities.Delete(ctx, userID)
}

// issueSession signs a fresh access/refresh pair for the identity.
func (p *JWTProvider) issueSession(ctx context.Context, identity *domain.Identity) (*AuthResult, error) {
	now := p.timeFunc()

	accessToken, err := p.signToken(ctx, identity.ID, identity.Email, tokenTypeAccess, p.accessLifetime)
	if err != nil {
		return nil, err
	}
	refreshToken, err := p.signToken(ctx, identity.ID, identity.Email, tokenTypeRefresh, p.refreshLifetime)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Principal: Principal{ID: identity.ID, Email: identity.Email},
		Metadata:  identity.Metadata,
		Session: Session{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    now.Add(p.accessLifetime),
		},
	}, nil
}

// signToken creates a signed JWT of the given type.
func (p *JWTProvider) signToken(ctx context.Context, userID uuid.UUID, email, tokenType string, lifetime time.Duration) (string, error) {
	log := logger.FromContextOrDefault(ctx, nil)
	now := p.timeFunc()

	claims := jwtCustomClaims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(), // Unique token ID
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(p.signingKey)
	if err != nil {
		log.Error("failed to sign JWT",
			"error", err,
			"user_id", userID,
			"token_type", tokenType,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("%w: failed to sign %s token", ErrProviderUnavailable, tokenType)
	}

	return signedToken, nil
}

// parseToken validates a signed token and enforces its expected type.
func (p *JWTProvider) parseToken(ctx context.Context, tokenString, expectedType string) (*jwtCustomClaims, error) {
	log := logger.FromContextOrDefault(ctx, nil)
	now := p.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(p.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now // Use our injected time function for validation
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return p.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", "token_type", expectedType)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: token not yet valid", "token_type", expectedType)
			return nil, ErrTokenNotYetValid
		case errors.Is(err, jwt.ErrTokenMalformed),
			errors.Is(err, jwt.ErrTokenSignatureInvalid):
			log.Debug("token validation failed: malformed or bad signature", "token_type", expectedType)
			return nil, ErrInvalidToken
		}
		log.Debug("token validation failed: other validation error",
			"error", err,
			"token_type", expectedType,
			"error_type", fmt.Sprintf("%T", err))
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	if claims.TokenType != expectedType {
		log.Debug("token validation failed: wrong token type",
			"expected", expectedType,
			"actual", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	return claims, nil
}
