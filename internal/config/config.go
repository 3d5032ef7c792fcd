package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across binaries.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:5000"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	CORS     CORS
	Importer Importer
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10"`
}

// DSN renders a libpq keyword/value connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// PoolDSN is DSN with the pgxpool size appended.
func (p Postgres) PoolDSN() string {
	return fmt.Sprintf("%s pool_max_conns=%d", p.DSN(), p.MaxConns)
}

// Redis configures the optional category cache. An empty Addr disables it.
type Redis struct {
	Addr             string        `env:"REDIS_ADDR" envDefault:""`
	DB               int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize         int           `env:"REDIS_POOL_SIZE" envDefault:"20"`
	CategoryCacheTTL time.Duration `env:"CATEGORY_CACHE_TTL" envDefault:"5m"`
}

// Enabled reports whether a Redis address is configured.
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Importer configures the upstream trivia sources used by cmd/importer.
type Importer struct {
	OpenTDBBaseURL   string        `env:"OPENTDB_BASE_URL" envDefault:"https://opentdb.com"`
	TriviaAPIBaseURL string        `env:"TRIVIA_API_BASE_URL" envDefault:"https://the-trivia-api.com"`
	TriviaAPIKey     string        `env:"TRIVIA_API_KEY" envDefault:""`
	HTTPTimeout      time.Duration `env:"IMPORT_HTTP_TIMEOUT" envDefault:"6s"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
