package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/app"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/importer"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

func main() {
	var (
		source = flag.String("source", "opentdb", "Upstream source: opentdb or triviaapi")
		amount = flag.Int("amount", 20, "Number of questions to fetch (max 50)")
	)
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(cfg.Name+"-importer", cfg.Env, cfg.LogLevel)

	httpClient := &http.Client{Timeout: cfg.Importer.HTTPTimeout}
	var src importer.Source
	switch *source {
	case "opentdb":
		src = importer.NewOpenTDBClient(cfg.Importer.OpenTDBBaseURL, httpClient)
	case "triviaapi":
		src = importer.NewTriviaAPIClient(cfg.Importer.TriviaAPIBaseURL, cfg.Importer.TriviaAPIKey, httpClient)
	default:
		logger.Fatal().Str("source", *source).Msg("unknown source. Use: opentdb or triviaapi")
	}

	if err := run(ctx, cfg, logger, src, *amount); err != nil {
		logger.Error().Err(err).Msg("import failed")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.App, logger zerolog.Logger, src importer.Source, amount int) error {
	cat, err := app.NewCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := cat.Close(); err != nil {
			logger.Error().Err(err).Msg("close catalog")
		}
	}()

	_, err = importer.New(cat.Service, logger).Run(ctx, src, amount)
	return err
}
