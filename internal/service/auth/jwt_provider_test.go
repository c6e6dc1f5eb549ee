package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arunika-app/arunika-api/internal/config"
	"github.com/arunika-app/arunika-api/internal/domain"
	"github.com/arunika-app/arunika-api/internal/store"
)

// memIdentityStore is an in-memory store.IdentityStore for provider tests.
type memIdentityStore struct {
	mu         sync.Mutex
	identities map[uuid.UUID]*domain.Identity
	failWith   error
}

func newMemIdentityStore() *memIdentityStore {
	return &memIdentityStore{identities: make(map[uuid.UUID]*domain.Identity)}
}

func (m *memIdentityStore) Create(ctx context.Context, identity *domain.Identity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for _, existing := range m.identities {
		if existing.Email == identity.Email {
			return store.ErrEmailExists
		}
	}
	m.identities[identity.ID] = identity
	return nil
}

func (m *memIdentityStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	identity, ok := m.identities[id]
	if !ok {
		return nil, store.ErrIdentityNotFound
	}
	return identity, nil
}

func (m *memIdentityStore) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, identity := range m.identities {
		if identity.Email == email {
			return identity, nil
		}
	}
	return nil, store.ErrIdentityNotFound
}

func (m *memIdentityStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	identity, ok := m.identities[id]
	if !ok {
		return store.ErrIdentityNotFound
	}
	identity.HashedPassword = hashedPassword
	return nil
}

func (m *memIdentityStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.identities[id]; !ok {
		return store.ErrIdentityNotFound
	}
	delete(m.identities, id)
	return nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-key-thats-32-characters-long",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
		ResetTokenLifetimeMinutes:   30,
	}
}

func newTestProvider(t *testing.T) (*JWTProvider, *memIdentityStore) {
	t.Helper()
	identities := newMemIdentityStore()
	provider, err := NewJWTProvider(testAuthConfig(), identities)
	require.NoError(t, err)
	return provider, identities
}

func TestNewJWTProvider_RejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"
	_, err := NewJWTProvider(cfg, newMemIdentityStore())
	assert.Error(t, err)
}

func TestSignUpAndVerifyToken(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider, _ := newTestProvider(t)

	result, err := provider.SignUp(ctx, SignUpParams{
		Email:    "andi@example.com",
		Password: "secret123",
		Metadata: map[string]any{"name": "Andi"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Session.AccessToken)
	assert.NotEmpty(t, result.Session.RefreshToken)
	assert.Equal(t, "andi@example.com", result.Principal.Email)

	principal, err := provider.VerifyToken(ctx, result.Session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.Principal.ID, principal.ID)
	assert.Equal(t, "andi@example.com", principal.Email)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider, _ := newTestProvider(t)

	params := SignUpParams{Email: "andi@example.com", Password: "secret123"}
	_, err := provider.SignUp(ctx, params)
	require.NoError(t, err)

	_, err = provider.SignUp(ctx, params)
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestSignUp_PasswordPolicy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider, _ := newTestProvider(t)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "empty password", password: "", wantErr: domain.ErrEmptyPassword},
		{name: "too short", password: "abc", wantErr: domain.ErrPasswordTooShort},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := provider.SignUp(ctx, SignUpParams{
				Email:    "policy@example.com",
				Password: tc.password,
			})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSignInWithPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider, _ := newTestProvider(t)

	_, err := provider.SignUp(ctx, SignUpParams{Email: "andi@example.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		result, err := provider.SignInWithPassword(ctx, "andi@example.com", "secret123")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Session.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := provider.SignInWithPassword(ctx, "andi@example.com", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := provider.SignInWithPassword(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestVerifyToken_RejectsWrongType(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider, _ := newTestProvider(t)

	result, err := provider.SignUp(ctx, SignUpParams{Email: "andi@example.com", Password: "secret123"})
	require.NoError(t, err)

	// A refresh token must not pass as an access token.
	_, err = provider.VerifyToken(ctx, result.Session.RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestVerifyToken_Expired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider, _ := newTestProvider(t)

	result, err := provider.SignUp(ctx, SignUpParams{Email: "andi@example.com", Password: "secret123"})
	require.NoError(t, err)

	// Move validation time past the access lifetime plus clock skew.
	provider.timeFunc = func() time.Time {
		return time.Now().Add(provider.accessLifetime + provider.clockSkew + time.Minute)
	}

	_, err = provider.VerifyToken(ctx, result.Session.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken_Malformed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider, _ := newTestProvider(t)

	_, err := provider.VerifyToken(ctx, "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_WrongKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider, identities := newTestProvider(t)

	result, err := provider.SignUp(ctx, SignUpParams{Email: "andi@example.com", Password: "secret123"})
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "a-completely-different-32-char-secret!!"
	other, err := NewJWTProvider(otherCfg, identities)
	require.NoError(t, err)

	_, err = other.VerifyToken(ctx, result.Session.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider, identities := newTestProvider(t)

	result, err := provider.SignUp(ctx, SignUpParams{Email: "andi@example.com", Password: "secret123"})
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		refreshed, err := provider.RefreshSession(ctx, result.Session.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, result.Principal.ID, refreshed.Principal.ID)
		assert.NotEmpty(t, refreshed.Session.AccessToken)
	})

	t.Run("access token rejected", func(t *testing.T) {
		_, err := provider.RefreshSession(ctx, result.Session.AccessToken)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("identity deleted", func(t *testing.T) {
		require.NoError(t, identities.Delete(ctx, result.Principal.ID))
		_, err := provider.RefreshSession(ctx, result.Session.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestRecoveryTokenFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider, _ := newTestProvider(t)

	result, err := provider.SignUp(ctx, SignUpParams{Email: "andi@example.com", Password: "secret123"})
	require.NoError(t, err)

	recovery, err := provider.ResetPasswordForEmail(ctx, "andi@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, recovery)

	// Recovery tokens only pass the recovery check, never the access check.
	_, err = provider.VerifyToken(ctx, recovery)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	principal, err := provider.VerifyRecoveryToken(ctx, recovery)
	require.NoError(t, err)
	assert.Equal(t, result.Principal.ID, principal.ID)

	require.NoError(t, provider.UpdateUser(ctx, principal.ID, "new-secret"))

	_, err = provider.SignInWithPassword(ctx, "andi@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = provider.SignInWithPassword(ctx, "andi@example.com", "new-secret")
	assert.NoError(t, err)
}

func TestResetPasswordForEmail_UnknownEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider, _ := newTestProvider(t)

	_, err := provider.ResetPasswordForEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrIdentityNotFound)
}

func TestSignInWithPassword_StoreFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	provider, identities := newTestProvider(t)

	identities.failWith = errors.New("connection refused")
	_, err := provider.SignInWithPassword(ctx, "andi@example.com", "secret123")
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}
