package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/catalog"
	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/trivia-api/internal/db/sqlc"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// Catalog is the wired catalog service plus the connections behind it.
// Close releases them.
type Catalog struct {
	Service *catalog.Service
	Pool    *pgxpool.Pool
	Redis   *redis.Client
}

func (c *Catalog) Close() error {
	c.Pool.Close()
	if c.Redis != nil {
		return c.Redis.Close()
	}
	return nil
}

// NewCatalog connects Postgres and, when configured, Redis, and builds the
// catalog service on top of them.
func NewCatalog(ctx context.Context, cfg *config.App, logger zerolog.Logger) (*Catalog, error) {
	pool, err := pgxpool.New(ctx, cfg.Postgres.PoolDSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	var (
		redisClient *redis.Client
		cache       catalog.CategoryCache
	)
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		cache = catalog.NewRedisCategoryCache(redisClient, cfg.Redis.CategoryCacheTTL)
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("category cache enabled")
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; category cache disabled")
	}

	store := repository.NewCatalogStore(sqlcgen.New(pool))
	svc := catalog.NewService(store, cache, catalog.ServiceOptions{}, logger)

	return &Catalog{Service: svc, Pool: pool, Redis: redisClient}, nil
}

// New bootstraps logger, Postgres, optional Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	cat, err := NewCatalog(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	deps := server.Dependencies{Postgres: cat.Pool.Ping}
	if cat.Redis != nil {
		deps.Redis = func(ctx context.Context) error { return cat.Redis.Ping(ctx).Err() }
	}

	handler := catalog.NewHTTPHandler(cat.Service, logger)
	apiServer := server.NewHTTPServer(cfg, logger, deps, handler)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   cat.Pool,
		redis:  cat.Redis,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
