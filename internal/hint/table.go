package hint

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/gokatarajesh/jumble/internal/puzzle"
)

// HintColumns is the header of the generated hints table.
var HintColumns = []string{"master_id", "hint", "word", "score", "defs", "level", "placeholder"}

// Defaults fills puzzle dressing missing from an ideas table.
type Defaults struct {
	Dialogue string
	ImageURL string
}

// ReadIdeas parses an ideas table with at least id and solution columns; to_complete,
// dialogue and image_url are optional.
func ReadIdeas(r io.Reader, defaults Defaults) ([]Idea, error) {
	rows, cols, err := readTable(r, "id", "solution")
	if err != nil {
		return nil, err
	}
	ideas := make([]Idea, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.ParseInt(field(row, cols, "id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ideas row %d: bad id: %w", i+2, err)
		}
		idea := Idea{
			ID:         id,
			Solution:   strings.TrimSpace(field(row, cols, "solution")),
			ToComplete: field(row, cols, "to_complete"),
			Dialogue:   field(row, cols, "dialogue"),
			ImageURL:   field(row, cols, "image_url"),
		}
		if idea.Dialogue == "" {
			idea.Dialogue = defaults.Dialogue
		}
		if idea.ImageURL == "" {
			idea.ImageURL = defaults.ImageURL
		}
		ideas = append(ideas, idea)
	}
	return ideas, nil
}

// WriteHints writes one row per candidate. Commas inside definitions become
// semicolons so the table survives naive comma splitting downstream.
func WriteHints(w io.Writer, records []puzzle.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(HintColumns); err != nil {
		return err
	}
	for _, rec := range records {
		for _, g := range rec.Groups {
			for _, c := range g.Candidates {
				row := []string{
					strconv.FormatInt(rec.ID, 10),
					strconv.Itoa(g.Index),
					c.Word,
					strconv.Itoa(c.Score),
					strings.ReplaceAll(c.Hint, ",", ";"),
					c.Level.String(),
					c.Placeholder,
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadHints parses a hints table into letter groups keyed by master id.
func ReadHints(r io.Reader) (map[int64][]puzzle.LetterGroup, error) {
	rows, cols, err := readTable(r, HintColumns...)
	if err != nil {
		return nil, err
	}
	byMaster := map[int64]map[int]*puzzle.LetterGroup{}
	for i, row := range rows {
		line := i + 2
		masterID, err := strconv.ParseInt(field(row, cols, "master_id"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("hints row %d: bad master_id: %w", line, err)
		}
		index, err := strconv.Atoi(field(row, cols, "hint"))
		if err != nil {
			return nil, fmt.Errorf("hints row %d: bad hint: %w", line, err)
		}
		score, err := strconv.Atoi(field(row, cols, "score"))
		if err != nil {
			return nil, fmt.Errorf("hints row %d: bad score: %w", line, err)
		}
		level, err := puzzle.ParseDifficulty(field(row, cols, "level"))
		if err != nil {
			return nil, fmt.Errorf("hints row %d: %w", line, err)
		}
		placeholder := field(row, cols, "placeholder")

		groups, ok := byMaster[masterID]
		if !ok {
			groups = map[int]*puzzle.LetterGroup{}
			byMaster[masterID] = groups
		}
		g, ok := groups[index]
		if !ok {
			g = &puzzle.LetterGroup{Index: index, Placeholder: placeholder, Letters: Revealed(placeholder)}
			groups[index] = g
		}
		g.Candidates = append(g.Candidates, puzzle.Candidate{
			Word:        field(row, cols, "word"),
			Score:       score,
			Hint:        field(row, cols, "defs"),
			Level:       level,
			Placeholder: placeholder,
		})
	}

	out := make(map[int64][]puzzle.LetterGroup, len(byMaster))
	for id, groups := range byMaster {
		list := make([]puzzle.LetterGroup, 0, len(groups))
		for _, g := range groups {
			list = append(list, *g)
		}
		slices.SortFunc(list, func(a, b puzzle.LetterGroup) int { return a.Index - b.Index })
		out[id] = list
	}
	return out, nil
}

// Assemble joins ideas with their hint groups; ideas without hints are left out.
func Assemble(ideas []Idea, hints map[int64][]puzzle.LetterGroup) []puzzle.Record {
	records := make([]puzzle.Record, 0, len(ideas))
	for _, idea := range ideas {
		groups, ok := hints[idea.ID]
		if !ok {
			continue
		}
		records = append(records, puzzle.Record{
			ID:         idea.ID,
			Solution:   idea.Solution,
			ToComplete: idea.ToComplete,
			Dialogue:   idea.Dialogue,
			ImageURL:   idea.ImageURL,
			Groups:     groups,
		})
	}
	return records
}

func readTable(r io.Reader, required ...string) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, errors.New("empty table")
		}
		return nil, nil, err
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, nil, fmt.Errorf("missing column %q", name)
		}
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	return rows, cols, nil
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
