package hint

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/jumble/internal/lexicon"
	"github.com/gokatarajesh/jumble/internal/metrics"
	"github.com/gokatarajesh/jumble/internal/puzzle"
)

// ErrGenerationExhausted means every re-plan of a phrase left some group short of candidates.
var ErrGenerationExhausted = errors.New("hint generation exhausted")

// Config tunes the generation pipeline. Zero values fall back to defaults.
type Config struct {
	MaxResults    int      // words requested per placeholder, default 1000
	MaxReplans    int      // plans tried per phrase, default 5
	MinCandidates int      // survivors a group needs, default 3
	Markers       []string // excluded-category markers, default ExcludedMarkers
	Similarity    int      // sanitizer threshold, default 70
}

// Generator finds hint candidates for every letter group of a solution phrase.
// It is safe for concurrent use; randomness is serialized internally.
type Generator struct {
	source    lexicon.Source
	cfg       Config
	sanitizer Sanitizer
	logger    zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(source lexicon.Source, cfg Config, rng *rand.Rand, logger zerolog.Logger) *Generator {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 1000
	}
	if cfg.MaxReplans <= 0 {
		cfg.MaxReplans = 5
	}
	if cfg.MinCandidates <= 0 {
		cfg.MinCandidates = MinCandidates
	}
	if cfg.Markers == nil {
		cfg.Markers = ExcludedMarkers
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{
		source:    source,
		cfg:       cfg,
		sanitizer: Sanitizer{Threshold: cfg.Similarity},
		logger:    logger.With().Str("component", "hint_generator").Logger(),
		rng:       rng,
	}
}

// Generate plans letter groups for phrase and fetches, filters, buckets and sanitizes
// candidates for each. A group short of candidates discards the whole plan and the
// letters are reshuffled, up to MaxReplans plans.
func (g *Generator) Generate(ctx context.Context, phrase string) ([]puzzle.LetterGroup, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxReplans; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		groups, err := g.attempt(ctx, phrase)
		if err == nil {
			return groups, nil
		}
		if !errors.Is(err, ErrInsufficientCandidates) {
			return nil, err
		}
		lastErr = err
		metrics.GenerationReplans.Inc()
		g.logger.Debug().Err(err).Str("phrase", phrase).Int("attempt", attempt).Msg("re-planning letter groups")
	}
	return nil, fmt.Errorf("%w: %q after %d plans: %v", ErrGenerationExhausted, phrase, g.cfg.MaxReplans, lastErr)
}

func (g *Generator) attempt(ctx context.Context, phrase string) ([]puzzle.LetterGroup, error) {
	plan, err := g.plan(phrase)
	if err != nil {
		return nil, err
	}

	groups := make([]puzzle.LetterGroup, 0, len(plan))
	for i, letters := range plan {
		placeholder := g.placeholder(letters)
		entries, err := g.source.Lookup(ctx, placeholder, g.cfg.MaxResults)
		if err != nil {
			return nil, fmt.Errorf("group %d (%s): %w", i+1, placeholder, err)
		}
		candidates, err := Bucket(Filter(entries, g.cfg.Markers), placeholder, g.cfg.MinCandidates)
		if err != nil {
			return nil, err
		}
		groups = append(groups, puzzle.LetterGroup{
			Index:       i + 1,
			Letters:     letters,
			Placeholder: placeholder,
			Candidates:  candidates,
		})
	}

	for gi := range groups {
		for ci := range groups[gi].Candidates {
			c := &groups[gi].Candidates[ci]
			c.Hint = g.sanitizer.Sanitize(c.Word, c.Definitions)
		}
	}
	return groups, nil
}

func (g *Generator) plan(phrase string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Plan(phrase, g.rng)
}

func (g *Generator) placeholder(letters string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Placeholder(letters, g.rng)
}
