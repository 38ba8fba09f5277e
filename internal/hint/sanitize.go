package hint

import (
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
)

// SimilarityThreshold is the default score a token must exceed to count as the word.
const SimilarityThreshold = 70

// Sanitizer redacts a candidate word from its own definitions.
type Sanitizer struct {
	Threshold int
}

// Sanitize joins defs with newlines and replaces every letter run approximately
// equal to word with a run of wildcards as long as word. Part-of-speech tags,
// punctuation and possessives delimit runs, so "n\tcat's" becomes "n\t???'s".
func (s Sanitizer) Sanitize(word string, defs []string) string {
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = SimilarityThreshold
	}

	trimmed := make([]string, len(defs))
	for i, d := range defs {
		trimmed[i] = strings.TrimSpace(d)
	}
	text := strings.Join(trimmed, "\n")
	mask := strings.Repeat("?", len([]rune(word)))

	hits := map[string]bool{}
	var b strings.Builder
	var run []rune
	flush := func() {
		if len(run) == 0 {
			return
		}
		token := string(run)
		key := strings.ToLower(token)
		hit, ok := hits[key]
		if !ok {
			hit = TokenSortRatio(word, token) > threshold
			hits[key] = hit
		}
		if hit {
			b.WriteString(mask)
		} else {
			b.WriteString(token)
		}
		run = run[:0]
	}
	for _, r := range text {
		if unicode.IsLetter(r) {
			run = append(run, r)
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return b.String()
}

// TokenSortRatio scores a and b from 0 to 100 after lower-casing, dropping
// punctuation and sorting their whitespace-separated tokens.
func TokenSortRatio(a, b string) int {
	pa, pb := sortTokens(a), sortTokens(b)
	if pa == "" || pb == "" {
		return 0
	}
	m := difflib.NewMatcher(strings.Split(pa, ""), strings.Split(pb, ""))
	return int(math.Round(100 * m.Ratio()))
}

func sortTokens(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	tokens := strings.Fields(cleaned)
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}
