// Package round assembles playable rounds from stored puzzles and checks guesses.
package round

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/gokatarajesh/jumble/internal/puzzle"
)

var (
	ErrNoCandidate    = errors.New("no candidate at requested difficulty")
	ErrNoSuchJumble   = errors.New("no such jumble")
	ErrPuzzleNotFound = errors.New("puzzle not found")
)

// Jumble is one scrambled hint word of a round. The true word is held back
// from serialization and only used to check guesses.
type Jumble struct {
	Index       int      `json:"index"`
	Scrambled   []string `json:"scrambled"`
	Placeholder string   `json:"placeholder"`
	Hint        string   `json:"hint"`

	word string
	pick int
}

// Word returns the hidden answer of the jumble.
func (j Jumble) Word() string { return j.word }

// Round is one assembled play of a puzzle at a difficulty.
type Round struct {
	ID         uuid.UUID         `json:"id"`
	PuzzleID   int64             `json:"puzzle_id"`
	Difficulty puzzle.Difficulty `json:"difficulty"`
	Label      string            `json:"label"`
	Jumbles    []Jumble          `json:"jumbles"`
	Completion Mask              `json:"completion"`
	Dialogue   string            `json:"dialogue"`
	ImageURL   string            `json:"image_url"`
	Token      string            `json:"token,omitempty"`

	solution string
}

// Solution returns the true solution phrase.
func (r *Round) Solution() string { return r.solution }

// CheckSolution compares guess to the solution ignoring case and extra whitespace.
func (r *Round) CheckSolution(guess string) bool {
	return Normalize(guess) == Normalize(r.solution)
}

// CheckWord checks a guess for the jumble with the given index.
func (r *Round) CheckWord(index int, guess string) (bool, error) {
	for _, j := range r.Jumbles {
		if j.Index == index {
			return Normalize(guess) == Normalize(j.word), nil
		}
	}
	return false, ErrNoSuchJumble
}

// picks lists the chosen candidate position of every group, in jumble order.
func (r *Round) picks() []int {
	out := make([]int, len(r.Jumbles))
	for i, j := range r.Jumbles {
		out[i] = j.pick
	}
	return out
}

// Normalize lower-cases s and collapses runs of whitespace to single spaces.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
