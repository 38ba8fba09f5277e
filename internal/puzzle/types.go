package puzzle

import (
	"fmt"
	"strings"
)

// Difficulty is one of three score bands a candidate falls into.
// The zero value is the hardest tier; higher values are easier.
type Difficulty int

const (
	Hard Difficulty = iota
	Medium
	Easy
)

// Difficulties lists tiers from hardest to easiest.
var Difficulties = []Difficulty{Hard, Medium, Easy}

var difficultyLabels = map[Difficulty]string{
	Hard:   "Tough nut to crack",
	Medium: "Wee bit of a challenge",
	Easy:   "Walk in the park",
}

var difficultyNames = map[Difficulty]string{
	Hard:   "hard",
	Medium: "medium",
	Easy:   "easy",
}

// Label returns the player-facing name of the tier.
func (d Difficulty) Label() string {
	if l, ok := difficultyLabels[d]; ok {
		return l
	}
	return "unknown"
}

// String returns the short name (hard, medium, easy).
func (d Difficulty) String() string {
	if n, ok := difficultyNames[d]; ok {
		return n
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

func (d Difficulty) Valid() bool {
	return d >= Hard && d <= Easy
}

// ParseDifficulty accepts either the short name or the label, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	for _, d := range Difficulties {
		if strings.EqualFold(s, difficultyNames[d]) || strings.EqualFold(s, difficultyLabels[d]) {
			return d, nil
		}
	}
	return Hard, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	parsed, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// SortOrder picks which candidate of a tier ends up in a round.
type SortOrder string

const (
	Ascending  SortOrder = "ascending"
	Descending SortOrder = "descending"
	Random     SortOrder = "random"
)

// ParseSortOrder defaults to Random for an empty value.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", Random:
		return Random, nil
	case Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	default:
		return Random, fmt.Errorf("unknown sort order %q", s)
	}
}

// Candidate is a real word matching a group's placeholder.
type Candidate struct {
	Word        string     `json:"word"`
	Score       int        `json:"score"`
	Definitions []string   `json:"defs,omitempty"`
	Hint        string     `json:"hint"` // sanitized definitions
	Level       Difficulty `json:"level"`
	Placeholder string     `json:"placeholder"`
}

// LetterGroup is a slice of the solution's letters and the candidates hinting it.
type LetterGroup struct {
	Index       int         `json:"index"`
	Letters     string      `json:"letters"`
	Placeholder string      `json:"placeholder"`
	Candidates  []Candidate `json:"candidates"`
}

// ByLevel returns the candidates of the group at the given tier, in stored order.
func (g LetterGroup) ByLevel(d Difficulty) []Candidate {
	var out []Candidate
	for _, c := range g.Candidates {
		if c.Level == d {
			out = append(out, c)
		}
	}
	return out
}

// Record is the persisted unit of a puzzle.
type Record struct {
	ID         int64         `json:"id"`
	Solution   string        `json:"solution"`
	ToComplete string        `json:"to_complete"`
	Dialogue   string        `json:"dialogue"`
	ImageURL   string        `json:"image_url"`
	Groups     []LetterGroup `json:"groups"`
}
