package server

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// Recoverer turns a handler panic into a logged 500 with the JSON error
// envelope. http.ErrAbortHandler is re-raised so the server aborts the
// connection as usual.
func Recoverer(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				reqLogger := logging.FromContextOr(r.Context(), logger)
				reqLogger.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("panic recovered")
				httperrors.RespondInternalError(w)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
