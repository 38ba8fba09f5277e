// Package lexicon looks up real words matching a letter pattern.
package lexicon

import (
	"context"
	"errors"
)

// Wildcard marks an unknown position in a lookup pattern.
const Wildcard = '?'

// ErrLookupUnavailable is returned once transient upstream failures exhaust the retry budget.
var ErrLookupUnavailable = errors.New("lexical lookup unavailable")

// Entry is one word returned for a pattern.
type Entry struct {
	Word  string   `json:"word"`
	Score int      `json:"score"`
	Defs  []string `json:"defs,omitempty"`
}

// Source returns up to max scored, defined words matching pattern.
type Source interface {
	Lookup(ctx context.Context, pattern string, max int) ([]Entry, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, pattern string, max int) ([]Entry, error)

func (f SourceFunc) Lookup(ctx context.Context, pattern string, max int) ([]Entry, error) {
	return f(ctx, pattern, max)
}
