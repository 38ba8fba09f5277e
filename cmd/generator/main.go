package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/jumble/internal/config"
	"github.com/gokatarajesh/jumble/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/jumble/internal/db/sqlc"
	"github.com/gokatarajesh/jumble/internal/hint"
	"github.com/gokatarajesh/jumble/internal/lexicon"
	"github.com/gokatarajesh/jumble/internal/logging"
	"github.com/gokatarajesh/jumble/internal/puzzle"
)

const usage = `usage:
  generator generate -in ideas.csv -out hints.csv [-workers N] [-persist] [-skip-existing] [-seed S]
  generator populate -in ideas.csv -hints hints.csv`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadGenerator(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log.Logger = logging.New(cfg.Name, cfg.Env)

	switch os.Args[1] {
	case "generate":
		err = generate(ctx, cfg, os.Args[2:])
	case "populate":
		err = populate(ctx, cfg, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("generator failed")
	}
}

func generate(ctx context.Context, cfg *config.Generator, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		in           = fs.String("in", "ideas.csv", "Ideas table to read")
		out          = fs.String("out", "hints.csv", "Hints table to write")
		workers      = fs.Int("workers", cfg.Generation.Workers, "Phrases processed concurrently")
		persist      = fs.Bool("persist", false, "Store generated puzzles in DATABASE_URL")
		skipExisting = fs.Bool("skip-existing", false, "Skip solutions already stored (needs -persist)")
		seed         = fs.Uint64("seed", 0, "Seed for letter shuffles; 0 picks a random one")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ideas, err := readIdeas(*in, cfg)
	if err != nil {
		return err
	}

	source, closeSource := newSource(cfg, log.Logger)
	defer closeSource()

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewPCG(*seed, *seed+1))
	}
	gen := hint.NewGenerator(source, hint.Config{
		MaxResults:    cfg.Lexicon.MaxResults,
		MaxReplans:    cfg.Generation.MaxReplans,
		MinCandidates: cfg.Generation.MinCandidates,
		Similarity:    cfg.Generation.Similarity,
	}, rng, log.Logger)

	opts := hint.BatchOptions{Workers: *workers, SkipExisting: *skipExisting}
	if *persist {
		repo, closeRepo, err := openRepository(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeRepo()
		opts.Store = repo
	}

	res, runErr := hint.NewBatch(gen, opts, log.Logger).Run(ctx, ideas)
	for _, f := range res.Failures {
		log.Warn().Err(f.Err).Int64("id", f.Idea.ID).Str("solution", f.Idea.Solution).Msg("phrase failed")
	}

	if err := writeHints(*out, res.Records); err != nil {
		return err
	}
	log.Info().
		Str("out", *out).
		Int("generated", len(res.Records)).
		Int("skipped", len(res.Skipped)).
		Int("failed", len(res.Failures)).
		Msg("hints table written")
	return runErr
}

func populate(ctx context.Context, cfg *config.Generator, args []string) error {
	fs := flag.NewFlagSet("populate", flag.ExitOnError)
	var (
		in    = fs.String("in", "ideas.csv", "Ideas table to read")
		hints = fs.String("hints", "hints.csv", "Hints table to read")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ideas, err := readIdeas(*in, cfg)
	if err != nil {
		return err
	}
	f, err := os.Open(*hints)
	if err != nil {
		return fmt.Errorf("open hints: %w", err)
	}
	defer f.Close()
	groups, err := hint.ReadHints(f)
	if err != nil {
		return fmt.Errorf("read hints: %w", err)
	}

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	records := hint.Assemble(ideas, groups)
	stored := 0
	for i := range records {
		rec := &records[i]
		exists, err := repo.ExistsBySolution(ctx, rec.Solution)
		if err != nil {
			return err
		}
		if exists {
			log.Info().Str("solution", rec.Solution).Msg("solution already stored, skipping")
			continue
		}
		if _, err := repo.Persist(ctx, rec); err != nil {
			return fmt.Errorf("persist %q: %w", rec.Solution, err)
		}
		stored++
	}
	log.Info().Int("ideas", len(ideas)).Int("stored", stored).Msg("puzzles populated")
	return nil
}

// newSource builds the Datamuse client behind the in-process expiring LRU and, when
// REDIS_ADDR is set, the shared Redis tier.
func newSource(cfg *config.Generator, logger zerolog.Logger) (lexicon.Source, func()) {
	client := lexicon.NewDatamuseClient(lexicon.DatamuseConfig{
		BaseURL:       cfg.Lexicon.BaseURL,
		MaxAttempts:   cfg.Lexicon.MaxAttempts,
		BackoffBase:   cfg.Lexicon.BackoffBase,
		BackoffJitter: cfg.Lexicon.BackoffJitter,
	}, &http.Client{Timeout: cfg.Lexicon.HTTPTimeout}, logger)

	if cfg.RedisAddr == "" {
		return lexicon.NewCachedSource(client, cfg.Lexicon.CacheSize, cfg.Lexicon.CacheTTL, nil, logger), func() {}
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	shared := lexicon.NewRedisCache(rdb, cfg.Lexicon.CacheTTL)
	return lexicon.NewCachedSource(client, cfg.Lexicon.CacheSize, cfg.Lexicon.CacheTTL, shared, logger), func() {
		if err := rdb.Close(); err != nil {
			logger.Error().Err(err).Msg("redis shutdown error")
		}
	}
}

func openRepository(ctx context.Context, cfg *config.Generator) (*repository.PuzzleRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL must be configured")
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	return repository.NewTxPuzzleRepository(pool, sqlcgen.New(pool)), pool.Close, nil
}

func readIdeas(path string, cfg *config.Generator) ([]hint.Idea, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ideas: %w", err)
	}
	defer f.Close()
	ideas, err := hint.ReadIdeas(f, hint.Defaults{
		Dialogue: cfg.Generation.DefaultDialogue,
		ImageURL: cfg.Generation.DefaultImageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("read ideas: %w", err)
	}
	return ideas, nil
}

func writeHints(path string, records []puzzle.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create hints: %w", err)
	}
	if err := hint.WriteHints(f, records); err != nil {
		f.Close()
		return fmt.Errorf("write hints: %w", err)
	}
	return f.Close()
}
