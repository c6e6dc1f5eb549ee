package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/arunika-app/arunika-api/internal/api/shared"
	"github.com/arunika-app/arunika-api/internal/service/auth"
)

// withPrincipal attaches an authenticated principal to the request context,
// the same way the auth middleware does.
func withPrincipal(r *http.Request, p auth.Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), shared.PrincipalContextKey, p))
}

// withPathParams attaches chi URL parameters to the request context so
// handlers can be exercised without a full router.
func withPathParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// envelope mirrors the standard response body for assertions. Data stays raw
// so tests can unmarshal it into the shape they expect.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     *string         `json:"error"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
