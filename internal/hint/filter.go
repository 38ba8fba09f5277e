package hint

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/gokatarajesh/jumble/internal/lexicon"
	"github.com/gokatarajesh/jumble/internal/puzzle"
)

// ErrInsufficientCandidates means a placeholder produced too few usable words.
var ErrInsufficientCandidates = errors.New("insufficient candidates")

// MinCandidates is the default number of survivors a group needs.
const MinCandidates = 3

// ExcludedMarkers flag definitions of words that make poor hints.
var ExcludedMarkers = []string{
	"surname",
	"given name",
	"acronym",
	"initial",
	"obsolete spelling",
	"abbreviation",
	"archaic",
}

// Filter drops entries without definitions or whose definitions carry an excluded marker.
func Filter(entries []lexicon.Entry, markers []string) []lexicon.Entry {
	kept := make([]lexicon.Entry, 0, len(entries))
	for _, e := range entries {
		if len(e.Defs) == 0 || excluded(e.Defs, markers) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

func excluded(defs, markers []string) bool {
	for _, d := range defs {
		lower := strings.ToLower(d)
		for _, m := range markers {
			if strings.Contains(lower, m) {
				return true
			}
		}
	}
	return false
}

// Bucket assigns each candidate a difficulty by score tercile: lowest third Hard,
// highest third Easy. Edges are linearly interpolated quantiles; a score equal to
// an edge falls to the lower bin. Every tier must end up non-empty.
func Bucket(entries []lexicon.Entry, placeholder string, min int) ([]puzzle.Candidate, error) {
	if len(entries) < min {
		return nil, fmt.Errorf("%w: %q kept %d, need %d", ErrInsufficientCandidates, placeholder, len(entries), min)
	}

	scores := make([]float64, len(entries))
	for i, e := range entries {
		scores[i] = float64(e.Score)
	}
	slices.Sort(scores)
	edges := [2]float64{quantile(scores, 1.0/3), quantile(scores, 2.0/3)}

	counts := map[puzzle.Difficulty]int{}
	candidates := make([]puzzle.Candidate, len(entries))
	for i, e := range entries {
		level := tier(float64(e.Score), edges)
		counts[level]++
		candidates[i] = puzzle.Candidate{
			Word:        e.Word,
			Score:       e.Score,
			Definitions: e.Defs,
			Level:       level,
			Placeholder: placeholder,
		}
	}
	for _, d := range puzzle.Difficulties {
		if counts[d] == 0 {
			return nil, fmt.Errorf("%w: %q has no %s candidates", ErrInsufficientCandidates, placeholder, d)
		}
	}
	return candidates, nil
}

func tier(score float64, edges [2]float64) puzzle.Difficulty {
	switch {
	case score <= edges[0]:
		return puzzle.Hard
	case score <= edges[1]:
		return puzzle.Medium
	default:
		return puzzle.Easy
	}
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (pos-float64(lo))*(sorted[hi]-sorted[lo])
}
