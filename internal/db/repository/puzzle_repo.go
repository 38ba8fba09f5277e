package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	sqlcgen "github.com/gokatarajesh/jumble/internal/db/sqlc"
	"github.com/gokatarajesh/jumble/internal/puzzle"
)

type puzzleStore interface {
	GetRandomMasterWord(ctx context.Context, excludeIds []int64) (sqlcgen.MasterWord, error)
	GetMasterWord(ctx context.Context, id int64) (sqlcgen.MasterWord, error)
	ExistsMasterWordBySolution(ctx context.Context, solution string) (bool, error)
	ListJumblesByMasterWord(ctx context.Context, masterWordID int64) ([]sqlcgen.Jumble, error)
	ListJumbleOptionsByMasterWord(ctx context.Context, masterWordID int64) ([]sqlcgen.JumbleOption, error)
	InsertMasterWord(ctx context.Context, arg sqlcgen.InsertMasterWordParams) (sqlcgen.MasterWord, error)
	InsertJumble(ctx context.Context, arg sqlcgen.InsertJumbleParams) (sqlcgen.Jumble, error)
	InsertJumbleOptions(ctx context.Context, arg []sqlcgen.InsertJumbleOptionsParams) (int64, error)
}

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PuzzleRepository maps puzzle records onto the master_words, jumbles and
// jumble_options tables.
type PuzzleRepository struct {
	store puzzleStore
	db    txBeginner
	bind  func(pgx.Tx) puzzleStore
}

// NewPuzzleRepository runs every query directly on store.
func NewPuzzleRepository(store puzzleStore) *PuzzleRepository {
	return &PuzzleRepository{store: store}
}

// NewTxPuzzleRepository persists each record inside a transaction begun on db.
func NewTxPuzzleRepository(db txBeginner, queries *sqlcgen.Queries) *PuzzleRepository {
	return &PuzzleRepository{
		store: queries,
		db:    db,
		bind:  func(tx pgx.Tx) puzzleStore { return queries.WithTx(tx) },
	}
}

// FetchRandom returns a random puzzle not in excludeIDs, or nil when none is left.
func (r *PuzzleRepository) FetchRandom(ctx context.Context, excludeIDs []int64) (*puzzle.Record, error) {
	if excludeIDs == nil {
		// NULL would make the exclusion predicate unknown for every row
		excludeIDs = []int64{}
	}
	mw, err := r.store.GetRandomMasterWord(ctx, excludeIDs)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("random master word: %w", err)
	}
	return r.load(ctx, r.store, mw)
}

// FetchByID returns the puzzle with id, or nil when it does not exist.
func (r *PuzzleRepository) FetchByID(ctx context.Context, id int64) (*puzzle.Record, error) {
	mw, err := r.store.GetMasterWord(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("master word %d: %w", id, err)
	}
	return r.load(ctx, r.store, mw)
}

// ExistsBySolution reports whether a puzzle with this solution (any case) is stored.
func (r *PuzzleRepository) ExistsBySolution(ctx context.Context, solution string) (bool, error) {
	return r.store.ExistsMasterWordBySolution(ctx, solution)
}

// Persist stores rec with all its groups and candidates and returns it with the
// database-assigned id.
func (r *PuzzleRepository) Persist(ctx context.Context, rec *puzzle.Record) (*puzzle.Record, error) {
	var stored *puzzle.Record
	err := r.inTx(ctx, func(s puzzleStore) error {
		mw, err := s.InsertMasterWord(ctx, sqlcgen.InsertMasterWordParams{
			Solution:   rec.Solution,
			ToComplete: rec.ToComplete,
			Dialogue:   rec.Dialogue,
			ImageUrl:   rec.ImageURL,
		})
		if err != nil {
			return fmt.Errorf("insert master word: %w", err)
		}

		var options []sqlcgen.InsertJumbleOptionsParams
		for _, g := range rec.Groups {
			j, err := s.InsertJumble(ctx, sqlcgen.InsertJumbleParams{
				MasterWordID: mw.ID,
				Position:     int32(g.Index),
				Letters:      g.Letters,
				Placeholder:  g.Placeholder,
			})
			if err != nil {
				return fmt.Errorf("insert jumble %d: %w", g.Index, err)
			}
			for _, c := range g.Candidates {
				options = append(options, sqlcgen.InsertJumbleOptionsParams{
					JumbleID:    j.ID,
					Word:        c.Word,
					Score:       int32(c.Score),
					Defs:        c.Hint,
					Level:       c.Level.String(),
					Placeholder: c.Placeholder,
				})
			}
		}
		if len(options) > 0 {
			if _, err := s.InsertJumbleOptions(ctx, options); err != nil {
				return fmt.Errorf("insert jumble options: %w", err)
			}
		}

		out := *rec
		out.ID = mw.ID
		stored = &out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *PuzzleRepository) inTx(ctx context.Context, fn func(puzzleStore) error) error {
	if r.db == nil {
		return fn(r.store)
	}
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(r.bind(tx))
	})
}

func (r *PuzzleRepository) load(ctx context.Context, s puzzleStore, mw sqlcgen.MasterWord) (*puzzle.Record, error) {
	jumbles, err := s.ListJumblesByMasterWord(ctx, mw.ID)
	if err != nil {
		return nil, fmt.Errorf("jumbles of %d: %w", mw.ID, err)
	}
	options, err := s.ListJumbleOptionsByMasterWord(ctx, mw.ID)
	if err != nil {
		return nil, fmt.Errorf("jumble options of %d: %w", mw.ID, err)
	}

	groups := make([]puzzle.LetterGroup, len(jumbles))
	byJumble := make(map[int64]int, len(jumbles))
	for i, j := range jumbles {
		groups[i] = puzzle.LetterGroup{
			Index:       int(j.Position),
			Letters:     j.Letters,
			Placeholder: j.Placeholder,
		}
		byJumble[j.ID] = i
	}
	for _, o := range options {
		i, ok := byJumble[o.JumbleID]
		if !ok {
			continue
		}
		level, err := puzzle.ParseDifficulty(o.Level)
		if err != nil {
			return nil, fmt.Errorf("jumble option %d: %w", o.ID, err)
		}
		groups[i].Candidates = append(groups[i].Candidates, puzzle.Candidate{
			Word:        o.Word,
			Score:       int(o.Score),
			Hint:        o.Defs,
			Level:       level,
			Placeholder: o.Placeholder,
		})
	}

	return &puzzle.Record{
		ID:         mw.ID,
		Solution:   mw.Solution,
		ToComplete: mw.ToComplete,
		Dialogue:   mw.Dialogue,
		ImageURL:   mw.ImageUrl,
		Groups:     groups,
	}, nil
}
