package hint

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gokatarajesh/jumble/internal/lexicon"
	"github.com/gokatarajesh/jumble/internal/metrics"
	"github.com/gokatarajesh/jumble/internal/puzzle"
)

// Idea is one solution phrase queued for generation, with its puzzle dressing.
type Idea struct {
	ID         int64
	Solution   string
	ToComplete string
	Dialogue   string
	ImageURL   string
}

// Failure records a phrase that could not be turned into a puzzle.
type Failure struct {
	Idea Idea
	Err  error
}

// Result collects the outcome of a batch, in input order.
type Result struct {
	Records  []puzzle.Record
	Skipped  []Idea
	Failures []Failure
}

// Store is the slice of the content repository the batch writes to.
type Store interface {
	ExistsBySolution(ctx context.Context, solution string) (bool, error)
	Persist(ctx context.Context, rec *puzzle.Record) (*puzzle.Record, error)
}

// BatchOptions configures a batch run. Store may be nil for a dry run.
type BatchOptions struct {
	Workers      int
	Store        Store
	SkipExisting bool
}

// Batch generates hints for many phrases; one phrase failing never stops the others.
type Batch struct {
	gen    *Generator
	opts   BatchOptions
	logger zerolog.Logger
}

func NewBatch(gen *Generator, opts BatchOptions, logger zerolog.Logger) *Batch {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Batch{
		gen:    gen,
		opts:   opts,
		logger: logger.With().Str("component", "hint_batch").Logger(),
	}
}

type job struct {
	pos  int
	idea Idea
}

type outcome struct {
	record  *puzzle.Record
	skipped bool
	err     error
}

// Run processes ideas with the configured number of workers. The returned error is
// non-nil only when ctx ends the run early; per-phrase errors land in Result.Failures.
func (b *Batch) Run(ctx context.Context, ideas []Idea) (Result, error) {
	outcomes := make([]*outcome, len(ideas))
	var mu sync.Mutex

	queue := make(chan job)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(queue)
		for i, idea := range ideas {
			select {
			case <-egCtx.Done():
				return egCtx.Err()
			case queue <- job{pos: i, idea: idea}:
			}
		}
		return nil
	})
	for range b.opts.Workers {
		w := &Worker{
			batch: b,
			queue: queue,
			done: func(pos int, o outcome) {
				mu.Lock()
				outcomes[pos] = &o
				mu.Unlock()
			},
		}
		eg.Go(func() error { return w.Run(egCtx) })
	}
	runErr := eg.Wait()

	var res Result
	for i, o := range outcomes {
		switch {
		case o == nil:
			continue
		case o.err != nil:
			res.Failures = append(res.Failures, Failure{Idea: ideas[i], Err: o.err})
		case o.skipped:
			res.Skipped = append(res.Skipped, ideas[i])
		default:
			res.Records = append(res.Records, *o.record)
		}
	}
	b.logger.Info().
		Int("ideas", len(ideas)).
		Int("generated", len(res.Records)).
		Int("skipped", len(res.Skipped)).
		Int("failed", len(res.Failures)).
		Msg("hint batch finished")

	if runErr != nil {
		return res, runErr
	}
	return res, ctx.Err()
}

// Worker drains the batch queue until it closes or the context ends.
type Worker struct {
	batch *Batch
	queue <-chan job
	done  func(pos int, o outcome)
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j, ok := <-w.queue:
			if !ok {
				return nil
			}
			o := w.handle(ctx, j.idea)
			if o.err != nil && ctx.Err() != nil {
				// cancellation, not a phrase failure
				return ctx.Err()
			}
			w.done(j.pos, o)
		}
	}
}

func (w *Worker) handle(ctx context.Context, idea Idea) outcome {
	b := w.batch
	logger := b.logger.With().Int64("id", idea.ID).Str("solution", idea.Solution).Logger()

	if b.opts.Store != nil && b.opts.SkipExisting {
		exists, err := b.opts.Store.ExistsBySolution(ctx, idea.Solution)
		if err != nil {
			logger.Error().Err(err).Msg("existence check failed")
			metrics.GenerationOutcomes.WithLabelValues("error").Inc()
			return outcome{err: err}
		}
		if exists {
			logger.Info().Msg("solution already stored, skipping")
			metrics.GenerationOutcomes.WithLabelValues("skipped").Inc()
			return outcome{skipped: true}
		}
	}

	groups, err := b.gen.Generate(ctx, idea.Solution)
	if err != nil {
		switch {
		case errors.Is(err, ErrGenerationExhausted):
			metrics.GenerationOutcomes.WithLabelValues("exhausted").Inc()
		case errors.Is(err, lexicon.ErrLookupUnavailable):
			metrics.GenerationOutcomes.WithLabelValues("unavailable").Inc()
		default:
			metrics.GenerationOutcomes.WithLabelValues("error").Inc()
		}
		logger.Error().Err(err).Msg("failed getting hints")
		return outcome{err: err}
	}

	rec := &puzzle.Record{
		ID:         idea.ID,
		Solution:   idea.Solution,
		ToComplete: idea.ToComplete,
		Dialogue:   idea.Dialogue,
		ImageURL:   idea.ImageURL,
		Groups:     groups,
	}
	if b.opts.Store != nil {
		stored, err := b.opts.Store.Persist(ctx, rec)
		if err != nil {
			logger.Error().Err(err).Msg("persist failed")
			metrics.GenerationOutcomes.WithLabelValues("error").Inc()
			return outcome{err: err}
		}
		rec = stored
	}
	metrics.GenerationOutcomes.WithLabelValues("ok").Inc()
	logger.Debug().Int("groups", len(groups)).Msg("hints generated")
	return outcome{record: rec}
}
