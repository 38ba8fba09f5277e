package round

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/jumble/internal/metrics"
	"github.com/gokatarajesh/jumble/internal/puzzle"
)

// PuzzleSource is the read side of the content repository. Both methods return
// nil, nil when there is no matching puzzle.
type PuzzleSource interface {
	FetchRandom(ctx context.Context, excludeIDs []int64) (*puzzle.Record, error)
	FetchByID(ctx context.Context, id int64) (*puzzle.Record, error)
}

// Guess is a player's answer to a round. Words maps jumble index to guessed word
// and may be empty.
type Guess struct {
	Token    string         `json:"token"`
	Solution string         `json:"solution"`
	Words    map[int]string `json:"words,omitempty"`
}

// Verdict is the outcome of checking a guess. The solution is revealed only
// once it has been found.
type Verdict struct {
	PuzzleID int64        `json:"puzzle_id"`
	Correct  bool         `json:"correct"`
	Words    map[int]bool `json:"words,omitempty"`
	Solution string       `json:"solution,omitempty"`
}

// Service plays puzzles: it picks unplayed ones, assembles rounds and checks guesses.
type Service struct {
	puzzles   PuzzleSource
	tracker   CompletionTracker
	assembler *Assembler
	signer    *TokenSigner
	logger    zerolog.Logger
}

func NewService(puzzles PuzzleSource, tracker CompletionTracker, assembler *Assembler, signer *TokenSigner, logger zerolog.Logger) *Service {
	if tracker == nil {
		tracker = NewMemoryTracker()
	}
	if assembler == nil {
		assembler = NewAssembler(nil)
	}
	return &Service{
		puzzles:   puzzles,
		tracker:   tracker,
		assembler: assembler,
		signer:    signer,
		logger:    logger.With().Str("component", "round_service").Logger(),
	}
}

// Next assembles a round from a puzzle the player has not completed yet. A nil
// round with a nil error means the player has solved everything.
func (s *Service) Next(ctx context.Context, player string, d puzzle.Difficulty, order puzzle.SortOrder) (*Round, error) {
	var exclude []int64
	if player != "" {
		done, err := s.tracker.Completed(ctx, player)
		if err != nil {
			// degrade to possible repeats
			s.logger.Warn().Err(err).Str("player", player).Msg("completion lookup failed")
		}
		exclude = done
	}

	rec, err := s.puzzles.FetchRandom(ctx, exclude)
	if err != nil {
		return nil, fmt.Errorf("fetch random puzzle: %w", err)
	}
	if rec == nil {
		return nil, nil
	}
	return s.build(rec, player, d, order)
}

// Get assembles a round from a specific puzzle.
func (s *Service) Get(ctx context.Context, id int64, player string, d puzzle.Difficulty, order puzzle.SortOrder) (*Round, error) {
	rec, err := s.puzzles.FetchByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch puzzle %d: %w", id, err)
	}
	if rec == nil {
		return nil, ErrPuzzleNotFound
	}
	return s.build(rec, player, d, order)
}

func (s *Service) build(rec *puzzle.Record, player string, d puzzle.Difficulty, order puzzle.SortOrder) (*Round, error) {
	r, err := s.assembler.Assemble(rec, d, order)
	if err != nil {
		return nil, err
	}
	if s.signer != nil {
		token, err := s.signer.Sign(r, player)
		if err != nil {
			return nil, fmt.Errorf("sign round: %w", err)
		}
		r.Token = token
	}
	metrics.RoundsServed.WithLabelValues(d.String()).Inc()
	return r, nil
}

// Check verifies g against the round its token was issued for. A correct solution
// marks the puzzle completed for the player.
func (s *Service) Check(ctx context.Context, player string, g Guess) (*Verdict, error) {
	if s.signer == nil {
		return nil, ErrInvalidToken
	}
	claims, err := s.signer.Verify(g.Token)
	if err != nil {
		return nil, err
	}
	if claims.Subject != player {
		return nil, ErrInvalidToken
	}

	rec, err := s.puzzles.FetchByID(ctx, claims.PuzzleID)
	if err != nil {
		return nil, fmt.Errorf("fetch puzzle %d: %w", claims.PuzzleID, err)
	}
	if rec == nil {
		return nil, ErrPuzzleNotFound
	}
	r, err := restore(rec, claims)
	if err != nil {
		return nil, err
	}

	v := &Verdict{PuzzleID: rec.ID, Correct: r.CheckSolution(g.Solution)}
	if len(g.Words) > 0 {
		v.Words = make(map[int]bool, len(g.Words))
		for index, word := range g.Words {
			ok, err := r.CheckWord(index, word)
			if err != nil {
				return nil, fmt.Errorf("jumble %d: %w", index, err)
			}
			v.Words[index] = ok
		}
	}
	metrics.GuessesChecked.WithLabelValues(strconv.FormatBool(v.Correct)).Inc()

	if v.Correct {
		v.Solution = rec.Solution
		if player != "" {
			if err := s.tracker.MarkCompleted(ctx, player, rec.ID); err != nil {
				s.logger.Error().Err(err).Str("player", player).Int64("puzzle_id", rec.ID).Msg("mark completed failed")
			}
		}
	}
	return v, nil
}

// restore rebuilds the answer side of a round from the record and token picks.
func restore(rec *puzzle.Record, claims *Claims) (*Round, error) {
	if len(claims.Picks) != len(rec.Groups) {
		return nil, ErrInvalidToken
	}
	r := &Round{PuzzleID: rec.ID, solution: rec.Solution}
	for i, g := range rec.Groups {
		pick := claims.Picks[i]
		if pick < 0 || pick >= len(g.Candidates) {
			return nil, ErrInvalidToken
		}
		r.Jumbles = append(r.Jumbles, Jumble{Index: g.Index, word: g.Candidates[pick].Word, pick: pick})
	}
	return r, nil
}
