package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds runtime configuration of the play API.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"jumble"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Security Security
	Play     Play
}

// Generator holds configuration of the offline hint generator. Storage is
// optional: without DATABASE_URL the generator only writes tables.
type Generator struct {
	Name        string `env:"APP_NAME" envDefault:"jumble-generator"`
	Env         string `env:"APP_ENV" envDefault:"development"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisAddr   string `env:"REDIS_ADDR"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`

	Lexicon    Lexicon
	Generation Generation
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

// ConnString renders a libpq keyword/value connection string.
func (p Postgres) ConnString() string {
	s := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
	if p.MaxConns > 0 {
		s += fmt.Sprintf(" pool_max_conns=%d", p.MaxConns)
	}
	return s
}

// Redis holds cache and completion-tracking configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Security stores secrets for signing round tokens.
type Security struct {
	RoundTokenSecret string        `env:"ROUND_TOKEN_SECRET,notEmpty"`
	RoundTokenTTL    time.Duration `env:"ROUND_TOKEN_TTL" envDefault:"1h"`
}

// Play groups gameplay settings.
type Play struct {
	CompletionTTL time.Duration `env:"COMPLETION_TTL" envDefault:"720h"`
}

// Lexicon configures the word lookup client and its caches.
type Lexicon struct {
	BaseURL       string        `env:"LEXICON_BASE_URL" envDefault:"https://api.datamuse.com"`
	HTTPTimeout   time.Duration `env:"LEXICON_HTTP_TIMEOUT" envDefault:"5s"`
	MaxResults    int           `env:"LEXICON_MAX_RESULTS" envDefault:"1000"`
	MaxAttempts   int           `env:"LEXICON_MAX_ATTEMPTS" envDefault:"5"`
	BackoffBase   time.Duration `env:"LEXICON_BACKOFF_BASE" envDefault:"1s"`
	BackoffJitter time.Duration `env:"LEXICON_BACKOFF_JITTER" envDefault:"1s"`
	CacheSize     int           `env:"LEXICON_CACHE_SIZE" envDefault:"4096"`
	CacheTTL      time.Duration `env:"LEXICON_CACHE_TTL" envDefault:"24h"`
}

// Generation tunes the hint pipeline.
type Generation struct {
	MaxReplans      int    `env:"GENERATION_MAX_REPLANS" envDefault:"5"`
	MinCandidates   int    `env:"GENERATION_MIN_CANDIDATES" envDefault:"3"`
	Workers         int    `env:"GENERATION_WORKERS" envDefault:"4"`
	Similarity      int    `env:"GENERATION_SIMILARITY" envDefault:"70"`
	DefaultDialogue string `env:"GENERATION_DEFAULT_DIALOGUE" envDefault:"..."`
	DefaultImageURL string `env:"GENERATION_DEFAULT_IMAGE_URL"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadGenerator parses environment variables into Generator config.
func LoadGenerator(ctx context.Context) (*Generator, error) {
	cfg := &Generator{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse generator config: %w", err)
	}
	return cfg, nil
}

// LoadPostgres parses only the database settings, for tooling such as migrations.
func LoadPostgres(ctx context.Context) (*Postgres, error) {
	cfg := &Postgres{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}
	return cfg, nil
}
