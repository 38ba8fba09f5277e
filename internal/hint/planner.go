package hint

import (
	"errors"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/gokatarajesh/jumble/internal/lexicon"
)

// ErrPhraseTooShort is returned for phrases with fewer than two letters.
var ErrPhraseTooShort = errors.New("solution phrase needs at least two letters")

const (
	// maxShuffles bounds the disjoint-placement attempts at one placeholder length.
	maxShuffles = 64
	// maxPlaceholderLen caps widening; any group fits well below it.
	maxPlaceholderLen = 12
)

// Letters returns the lower-cased letters of phrase with whitespace and punctuation dropped.
func Letters(phrase string) string {
	var b strings.Builder
	for _, r := range phrase {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// GroupSizes splits n letters into groups of two, with a single leading group
// of three when n is odd.
func GroupSizes(n int) ([]int, error) {
	if n < 2 {
		return nil, ErrPhraseTooShort
	}
	sizes := make([]int, n/2)
	for i := range sizes {
		sizes[i] = 2
	}
	if n%2 != 0 {
		sizes[0] = 3
	}
	return sizes, nil
}

// Plan shuffles the phrase's letters once and slices them into groups.
func Plan(phrase string, rng *rand.Rand) ([]string, error) {
	letters := []rune(Letters(phrase))
	sizes, err := GroupSizes(len(letters))
	if err != nil {
		return nil, err
	}
	rng.Shuffle(len(letters), func(i, j int) { letters[i], letters[j] = letters[j], letters[i] })

	groups := make([]string, 0, len(sizes))
	for _, n := range sizes {
		groups = append(groups, string(letters[:n]))
		letters = letters[n:]
	}
	return groups, nil
}

// placeholderLength picks the target pattern length for a group.
func placeholderLength(n int, rng *rand.Rand) int {
	if n <= 2 {
		return 4 + rng.IntN(2) // 4..5
	}
	return 5 + rng.IntN(3) // 5..7
}

// Placeholder builds a lookup pattern holding the group's letters, none adjacent,
// with wildcards everywhere else. When no disjoint shuffle turns up at a length
// the pattern is widened by one.
func Placeholder(letters string, rng *rand.Rand) string {
	runes := []rune(letters)
	size := max(placeholderLength(len(runes), rng), 2*len(runes)-1)

	for ; size <= maxPlaceholderLen; size++ {
		pattern := make([]rune, size)
		for i := range pattern {
			pattern[i] = lexicon.Wildcard
		}
		copy(pattern[size-len(runes):], runes)
		for range maxShuffles {
			rng.Shuffle(len(pattern), func(i, j int) { pattern[i], pattern[j] = pattern[j], pattern[i] })
			if Disjoint(string(pattern)) {
				return string(pattern)
			}
		}
	}
	return spread(runes)
}

// spread interleaves letters with single wildcards; the tightest disjoint layout.
func spread(letters []rune) string {
	var b strings.Builder
	for i, r := range letters {
		if i > 0 {
			b.WriteRune(lexicon.Wildcard)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Disjoint reports whether no two revealed letters of pattern are adjacent.
func Disjoint(pattern string) bool {
	prev := false
	for _, r := range pattern {
		revealed := r != lexicon.Wildcard
		if revealed && prev {
			return false
		}
		prev = revealed
	}
	return true
}

// Revealed returns the non-wildcard characters of pattern in order.
func Revealed(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		if r != lexicon.Wildcard {
			b.WriteRune(r)
		}
	}
	return b.String()
}
