package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/arunika-app/arunika-api/internal/redact"
)

// Envelope is the uniform response body every endpoint returns. All five
// fields are always present: on success `error` is null, on failure `data` is
// null, and an empty message serializes as null rather than "". Timestamp is
// stamped when the response is sent, not when the handler started.
type Envelope struct {
	Success   bool    `json:"success"`
	Data      any     `json:"data"`
	Error     *string `json:"error"`
	Message   *string `json:"message"`
	Timestamp string  `json:"timestamp"`
}

// RouteNotFoundEnvelope extends Envelope with the path and method that missed,
// used only by the router's fallback handler.
type RouteNotFoundEnvelope struct {
	Envelope
	Path   string `json:"path"`
	Method string `json:"method"`
}

// ResponseOption defines a function to customize response behavior.
type ResponseOption func(*responseOptions)

// responseOptions holds configurable options for error responses.
type responseOptions struct {
	elevateLogLevel bool
}

// WithElevatedLogLevel returns a ResponseOption that raises 4xx errors to WARN level
// instead of the default DEBUG level. Use for important operational issues like
// repeated auth failures.
func WithElevatedLogLevel() ResponseOption {
	return func(opts *responseOptions) {
		opts.elevateLogLevel = true
	}
}

// timestamp returns the envelope timestamp for now: RFC3339 in UTC.
func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// messageField maps an empty message to a JSON null.
func messageField(message string) *string {
	if message == "" {
		return nil
	}
	return &message
}

// writeJSON writes any JSON body with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithSuccess writes a success envelope with the given status, data,
// and message. Data may be nil; it is then serialized as an explicit null.
func RespondWithSuccess(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	writeJSON(w, status, Envelope{
		Success:   true,
		Data:      data,
		Error:     nil,
		Message:   messageField(message),
		Timestamp: timestamp(),
	})
}

// RespondWithError writes an error envelope with the given status code and
// message. The message doubles as the error field so clients that read either
// see the same text.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	traceID := GetTraceID(r.Context())

	slog.Debug("sending error response",
		"status_code", status,
		"message", message,
		"trace_id", traceID,
		"path", r.URL.Path,
		"method", r.Method)

	writeJSON(w, status, Envelope{
		Success:   false,
		Data:      nil,
		Error:     &message,
		Message:   messageField(message),
		Timestamp: timestamp(),
	})
}

// RespondWithRouteNotFound writes the router's 404 envelope, which carries the
// missed path and method on top of the standard fields.
func RespondWithRouteNotFound(w http.ResponseWriter, r *http.Request) {
	message := "Route not found"
	writeJSON(w, http.StatusNotFound, RouteNotFoundEnvelope{
		Envelope: Envelope{
			Success:   false,
			Data:      nil,
			Error:     &message,
			Message:   messageField(message),
			Timestamp: timestamp(),
		},
		Path:   r.URL.Path,
		Method: r.Method,
	})
}

// RespondWithErrorAndLog writes an error envelope and also logs the detailed
// error. The raw error never reaches the client; logs get a redacted copy.
//
// Log level strategy:
// - 5xx errors: Always logged at ERROR level
// - 4xx errors: By default logged at DEBUG level
// - Elevated 4xx errors (e.g., repeated auth failures): WARN when requested
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
	opts ...ResponseOption,
) {
	traceID := GetTraceID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}

	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	responseOpts := responseOptions{}
	for _, opt := range opts {
		opt(&responseOpts)
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	} else if responseOpts.elevateLogLevel && status >= http.StatusBadRequest {
		logLevel = slog.LevelWarn
	}

	slog.LogAttrs(r.Context(), logLevel, "API error response", logAttrs...)

	RespondWithError(w, r, status, userMessage)
}
