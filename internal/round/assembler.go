package round

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gokatarajesh/jumble/internal/puzzle"
)

// Assembler turns a stored puzzle into a round. It never mutates the record and
// is safe for concurrent use.
type Assembler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAssembler uses rng for candidate selection and scrambling; nil seeds a fresh source.
func NewAssembler(rng *rand.Rand) *Assembler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Assembler{rng: rng}
}

// Assemble selects one candidate per letter group at difficulty d using order and
// scrambles each selected word.
func (a *Assembler) Assemble(rec *puzzle.Record, d puzzle.Difficulty, order puzzle.SortOrder) (*Round, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("assemble puzzle %d: invalid difficulty %d", rec.ID, int(d))
	}
	if order == "" {
		order = puzzle.Random
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	jumbles := make([]Jumble, 0, len(rec.Groups))
	for _, g := range rec.Groups {
		pick, ok := a.choose(g.Candidates, d, order)
		if !ok {
			return nil, fmt.Errorf("puzzle %d group %d: %w", rec.ID, g.Index, ErrNoCandidate)
		}
		c := g.Candidates[pick]
		jumbles = append(jumbles, Jumble{
			Index:       g.Index,
			Scrambled:   Scramble(c.Word, a.rng),
			Placeholder: c.Placeholder,
			Hint:        c.Hint,
			word:        c.Word,
			pick:        pick,
		})
	}

	return &Round{
		ID:         uuid.New(),
		PuzzleID:   rec.ID,
		Difficulty: d,
		Label:      d.Label(),
		Jumbles:    jumbles,
		Completion: MaskTemplate(rec.ToComplete, rec.Solution),
		Dialogue:   rec.Dialogue,
		ImageURL:   rec.ImageURL,
		solution:   rec.Solution,
	}, nil
}

// choose returns the position in candidates of the pick at level d.
func (a *Assembler) choose(candidates []puzzle.Candidate, d puzzle.Difficulty, order puzzle.SortOrder) (int, bool) {
	var eligible []int
	for i, c := range candidates {
		if c.Level == d {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return 0, false
	}

	switch order {
	case puzzle.Ascending, puzzle.Descending:
		best := eligible[0]
		for _, i := range eligible[1:] {
			s, b := candidates[i].Score, candidates[best].Score
			if (order == puzzle.Ascending && s < b) || (order == puzzle.Descending && s > b) {
				best = i
			}
		}
		return best, true
	default:
		return eligible[a.rng.IntN(len(eligible))], true
	}
}

// Scramble returns the letters of word in an order different from word itself.
// Words that cannot differ (one letter, or a single repeated letter) come back as is.
func Scramble(word string, rng *rand.Rand) []string {
	runes := []rune(word)
	letters := make([]string, len(runes))
	for i, r := range runes {
		letters[i] = string(r)
	}
	if !scramblable(runes) {
		return letters
	}
	for {
		rng.Shuffle(len(letters), func(i, j int) { letters[i], letters[j] = letters[j], letters[i] })
		if strings.Join(letters, "") != word {
			return letters
		}
	}
}

func scramblable(runes []rune) bool {
	for _, r := range runes[min(1, len(runes)):] {
		if r != runes[0] {
			return true
		}
	}
	return false
}
