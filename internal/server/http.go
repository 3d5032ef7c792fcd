package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

const readinessTimeout = 2 * time.Second

// Check probes one backing dependency.
type Check func(ctx context.Context) error

// Dependencies are probed by /readyz. A nil check is skipped.
type Dependencies struct {
	Postgres Check
	Redis    Check
}

// NewHTTPServer wires the catalog API plus health, readiness and metrics.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, deps Dependencies, catalogHandler *catalog.HTTPHandler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg.CORS, logger, deps, catalogHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter builds the chi router. Unknown paths and verbs answer with the
// JSON error envelope.
func NewRouter(cors config.CORS, logger zerolog.Logger, deps Dependencies, catalogHandler *catalog.HTTPHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(logging.Middleware(logger))
	r.Use(Recoverer(logger))
	r.Use(metrics.Middleware)
	r.Use(CORSMiddleware(cors))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondNotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondMethodNotAllowed(w)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readinessHandler(logger, deps))
	r.Handle("/metrics", promhttp.Handler())

	if catalogHandler != nil {
		catalogHandler.Routes(r)
	}
	return r
}

func readinessHandler(logger zerolog.Logger, deps Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := map[string]string{}
		ready := true
		for name, check := range map[string]Check{"postgres": deps.Postgres, "redis": deps.Redis} {
			if check == nil {
				continue
			}
			if err := check(ctx); err != nil {
				reqLogger := logging.FromContextOr(r.Context(), logger)
				reqLogger.Error().Err(err).Str("dependency", name).Msg("dependency ping failed")
				status[name] = "down"
				ready = false
				continue
			}
			status[name] = "up"
		}

		if !ready {
			writeStatus(w, http.StatusServiceUnavailable, status)
			return
		}
		writeStatus(w, http.StatusOK, status)
	}
}

func writeStatus(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
