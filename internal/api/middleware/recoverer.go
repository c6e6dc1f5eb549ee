package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/arunika-app/arunika-api/internal/api/shared"
	"github.com/arunika-app/arunika-api/internal/platform/logger"
)

// NewRecoverer returns middleware that converts handler panics into the
// standard 500 error envelope so even crashed requests keep the response
// contract. Apply it after TraceMiddleware so the panic log carries the
// trace ID. In development mode the panic value is echoed to the client;
// everywhere else the message stays generic and the detail only reaches
// the log.
func NewRecoverer(developmentMode bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					// net/http uses this sentinel to abort the
					// connection; it must keep propagating.
					panic(rec)
				}

				log := logger.FromContext(r.Context())
				log.Error("panic recovered",
					slog.Any("panic", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())))

				message := "Internal server error"
				if developmentMode {
					message = fmt.Sprintf("panic: %v", rec)
				}
				shared.RespondWithError(w, r, http.StatusInternalServerError, message)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
