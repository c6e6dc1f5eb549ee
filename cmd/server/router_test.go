package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arunika-app/arunika-api/internal/config"
	"github.com/arunika-app/arunika-api/internal/platform/postgres"
	"github.com/arunika-app/arunika-api/internal/service"
	"github.com/arunika-app/arunika-api/internal/service/auth"
)

// unreachableDB satisfies store.DBTX for wiring tests that never reach the
// database. Routing decisions (auth checks, 404s) happen before any query.
type unreachableDB struct{}

func (unreachableDB) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errors.New("no database in routing tests")
}

func (unreachableDB) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errors.New("no database in routing tests")
}

func (unreachableDB) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, errors.New("no database in routing tests")
}

func (unreachableDB) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

func newRoutingApplication(t *testing.T) *application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:        8080,
			LogLevel:    "info",
			Environment: "production",
		},
		Auth: config.AuthConfig{
			JWTSecret:                   strings.Repeat("k", 32),
			TokenLifetimeMinutes:        60,
			RefreshTokenLifetimeMinutes: 10080,
			ResetTokenLifetimeMinutes:   60,
		},
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := unreachableDB{}

	provider, err := auth.NewJWTProvider(cfg.Auth, postgres.NewIdentityStore(db, log))
	require.NoError(t, err)

	return &application{
		config:    cfg,
		logger:    log,
		provider:  provider,
		profiles:  postgres.NewUserProfileStore(db, log),
		jobs:      postgres.NewJobStore(db, log),
		courses:   postgres.NewCourseStore(db, log),
		questions: postgres.NewQuestionStore(db, log),
		personalizationService: service.NewPersonalizationService(
			postgres.NewPersonalizationStore(db, log),
			postgres.NewRecommendationStore(db, log),
			nil, log),
	}
}

func TestSetupRouter(t *testing.T) {
	t.Parallel()

	router := newRoutingApplication(t).setupRouter()

	do := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	decode := func(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
		t.Helper()
		var body map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body
	}

	t.Run("password update is mounted at update-password", func(t *testing.T) {
		rec := do(http.MethodPut, "/api/auth/update-password")

		// 401 rather than 404 proves the route exists and sits behind auth.
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, `"No token provided"`, string(body["error"]))
	})

	t.Run("the old password path is not a route", func(t *testing.T) {
		rec := do(http.MethodPut, "/api/auth/password")

		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, `"Route not found"`, string(body["error"]))
		assert.Equal(t, `"/api/auth/password"`, string(body["path"]))
	})

	t.Run("health check returns a success envelope", func(t *testing.T) {
		rec := do(http.MethodGet, "/health")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "true", string(body["success"]))
	})

	t.Run("unknown routes get the route envelope", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/unknown")

		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, `"POST"`, string(body["method"]))
	})
}
