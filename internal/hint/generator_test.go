package hint

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/jumble/internal/lexicon"
	"github.com/gokatarajesh/jumble/internal/puzzle"
)

var nineWords = []string{"hoop", "hoot", "hood", "shop", "shot", "plot", "dot", "got", "hog"}

// fullEntries returns nine defined words with scores 10..90.
func fullEntries() []lexicon.Entry {
	entries := make([]lexicon.Entry, len(nineWords))
	for i, w := range nineWords {
		entries[i] = lexicon.Entry{
			Word:  w,
			Score: (i + 1) * 10,
			Defs:  []string{fmt.Sprintf("n\tsomething like a %s", w)},
		}
	}
	return entries
}

func TestGenerateHotDog(t *testing.T) {
	var patterns []string
	src := lexicon.SourceFunc(func(_ context.Context, pattern string, max int) ([]lexicon.Entry, error) {
		assert.Equal(t, 1000, max)
		patterns = append(patterns, pattern)
		return fullEntries(), nil
	})
	gen := NewGenerator(src, Config{}, seeded(42), zerolog.Nop())

	groups, err := gen.Generate(context.Background(), "HOT DOG")
	require.NoError(t, err)
	require.Len(t, groups, 3)
	require.Len(t, patterns, 3)

	var letters []string
	for i, g := range groups {
		assert.Equal(t, i+1, g.Index)
		assert.Len(t, g.Letters, 2)
		assert.Equal(t, patterns[i], g.Placeholder)
		assert.True(t, Disjoint(g.Placeholder))
		assert.Equal(t, sortedRunes(g.Letters), sortedRunes(Revealed(g.Placeholder)))
		for _, d := range puzzle.Difficulties {
			assert.Len(t, g.ByLevel(d), 3, "group %d level %s", g.Index, d)
		}
		for _, c := range g.Candidates {
			assert.Equal(t, g.Placeholder, c.Placeholder)
			assert.NotContains(t, c.Hint, c.Word)
			assert.Contains(t, c.Hint, strings.Repeat("?", len(c.Word)))
		}
		letters = append(letters, g.Letters)
	}
	assert.Equal(t, sortedRunes("hotdog"), sortedRunes(strings.Join(letters, "")))
}

func TestGenerateReplansOnThinGroup(t *testing.T) {
	var calls atomic.Int32
	src := lexicon.SourceFunc(func(_ context.Context, _ string, _ int) ([]lexicon.Entry, error) {
		if calls.Add(1) == 1 {
			return fullEntries()[:2], nil
		}
		return fullEntries(), nil
	})
	gen := NewGenerator(src, Config{}, seeded(3), zerolog.Nop())

	groups, err := gen.Generate(context.Background(), "hot dog")
	require.NoError(t, err)
	assert.Len(t, groups, 3)
	// one failed group, then a full fresh plan
	assert.EqualValues(t, 4, calls.Load())
}

func TestGenerateExhausted(t *testing.T) {
	var calls atomic.Int32
	src := lexicon.SourceFunc(func(_ context.Context, _ string, _ int) ([]lexicon.Entry, error) {
		calls.Add(1)
		return fullEntries()[:2], nil
	})
	gen := NewGenerator(src, Config{MaxReplans: 3}, seeded(3), zerolog.Nop())

	_, err := gen.Generate(context.Background(), "hot dog")
	assert.ErrorIs(t, err, ErrGenerationExhausted)
	assert.EqualValues(t, 3, calls.Load())
}

func TestGenerateLookupUnavailableAborts(t *testing.T) {
	var calls atomic.Int32
	src := lexicon.SourceFunc(func(_ context.Context, pattern string, _ int) ([]lexicon.Entry, error) {
		calls.Add(1)
		return nil, fmt.Errorf("lookup %q: %w", pattern, lexicon.ErrLookupUnavailable)
	})
	gen := NewGenerator(src, Config{}, seeded(3), zerolog.Nop())

	_, err := gen.Generate(context.Background(), "hot dog")
	assert.ErrorIs(t, err, lexicon.ErrLookupUnavailable)
	assert.NotErrorIs(t, err, ErrGenerationExhausted)
	assert.EqualValues(t, 1, calls.Load())
}

func TestGenerateFiltersBeforeBucketing(t *testing.T) {
	src := lexicon.SourceFunc(func(_ context.Context, _ string, _ int) ([]lexicon.Entry, error) {
		entries := fullEntries()
		for i := 2; i < len(entries); i++ {
			entries[i].Defs = []string{"n\ta common surname"}
		}
		return entries, nil
	})
	gen := NewGenerator(src, Config{MaxReplans: 2}, seeded(3), zerolog.Nop())

	_, err := gen.Generate(context.Background(), "hot dog")
	assert.ErrorIs(t, err, ErrGenerationExhausted)
}

func TestGenerateTooShort(t *testing.T) {
	src := lexicon.SourceFunc(func(_ context.Context, _ string, _ int) ([]lexicon.Entry, error) {
		t.Fatal("lookup should not be called")
		return nil, nil
	})
	gen := NewGenerator(src, Config{}, seeded(3), zerolog.Nop())

	_, err := gen.Generate(context.Background(), "I")
	assert.ErrorIs(t, err, ErrPhraseTooShort)
}

func TestGenerateStopsOnCancelledContext(t *testing.T) {
	src := lexicon.SourceFunc(func(_ context.Context, _ string, _ int) ([]lexicon.Entry, error) {
		return fullEntries(), nil
	})
	gen := NewGenerator(src, Config{}, seeded(3), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, "hot dog")
	assert.ErrorIs(t, err, context.Canceled)
}
