package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/jumble/internal/config"
	"github.com/gokatarajesh/jumble/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/jumble/internal/db/sqlc"
	"github.com/gokatarajesh/jumble/internal/logging"
	"github.com/gokatarajesh/jumble/internal/round"
	"github.com/gokatarajesh/jumble/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps logger, Postgres, Redis, the round service and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, cfg.Postgres.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	queries := sqlcgen.New(pool)
	puzzles := repository.NewTxPuzzleRepository(pool, queries)

	signer := round.NewTokenSigner(round.TokenConfig{
		Secret: []byte(cfg.Security.RoundTokenSecret),
		TTL:    cfg.Security.RoundTokenTTL,
		Issuer: cfg.Name,
	})
	tracker := round.NewRedisTracker(redisClient, cfg.Play.CompletionTTL, logger)
	assembler := round.NewAssembler(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	roundSvc := round.NewService(puzzles, tracker, assembler, signer, logger)
	roundHandlers := round.NewHTTPHandlers(roundSvc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, roundHandlers,
		pool.Ping,
		func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
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
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
