package server

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/gokatarajesh/trivia-api/internal/config"
)

// CORSMiddleware applies the configured CORS policy and answers preflight
// requests without reaching the router.
func CORSMiddleware(cfg config.CORS) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:       cfg.AllowedOrigins,
		AllowedMethods:       cfg.AllowedMethods,
		AllowedHeaders:       cfg.AllowedHeaders,
		AllowCredentials:     cfg.AllowCredentials,
		MaxAge:               cfg.MaxAge,
		OptionsSuccessStatus: http.StatusNoContent,
	})
	return c.Handler
}
