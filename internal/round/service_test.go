package round

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/jumble/internal/puzzle"
)

type stubPuzzles struct {
	records  map[int64]*puzzle.Record
	excluded [][]int64
	err      error
}

func newStubPuzzles(recs ...*puzzle.Record) *stubPuzzles {
	s := &stubPuzzles{records: map[int64]*puzzle.Record{}}
	for _, r := range recs {
		s.records[r.ID] = r
	}
	return s
}

func (s *stubPuzzles) FetchRandom(_ context.Context, exclude []int64) (*puzzle.Record, error) {
	s.excluded = append(s.excluded, exclude)
	if s.err != nil {
		return nil, s.err
	}
	ids := make([]int64, 0, len(s.records))
	for id := range s.records {
		if !slices.Contains(exclude, id) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	slices.Sort(ids)
	return s.records[ids[0]], nil
}

func (s *stubPuzzles) FetchByID(_ context.Context, id int64) (*puzzle.Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records[id], nil
}

type failingTracker struct{}

func (failingTracker) Completed(context.Context, string) ([]int64, error) {
	return nil, errors.New("redis down")
}

func (failingTracker) MarkCompleted(context.Context, string, int64) error {
	return errors.New("redis down")
}

func newTestService(puzzles PuzzleSource, tracker CompletionTracker) *Service {
	signer := NewTokenSigner(TokenConfig{Secret: []byte("service-secret")})
	return NewService(puzzles, tracker, NewAssembler(seeded(21)), signer, zerolog.Nop())
}

func TestServicePlaysThroughPuzzles(t *testing.T) {
	second := hotDogRecord()
	second.ID = 43
	second.Solution = "dog hot"
	puzzles := newStubPuzzles(hotDogRecord(), second)
	svc := newTestService(puzzles, NewMemoryTracker())
	ctx := context.Background()
	player := "4f1d0b59-6a53-4d2b-9d0c-6f7dbd0b3d11"

	r, err := svc.Next(ctx, player, puzzle.Hard, puzzle.Random)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, int64(42), r.PuzzleID)
	assert.NotEmpty(t, r.Token)

	v, err := svc.Check(ctx, player, Guess{Token: r.Token, Solution: "nope"})
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.Empty(t, v.Solution)

	words := map[int]string{}
	for _, j := range r.Jumbles {
		words[j.Index] = j.Word()
	}
	words[3] = "wrong"
	v, err = svc.Check(ctx, player, Guess{Token: r.Token, Solution: "Hot Dog", Words: words})
	require.NoError(t, err)
	assert.True(t, v.Correct)
	assert.Equal(t, "hot dog", v.Solution)
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: false}, v.Words)

	r, err = svc.Next(ctx, player, puzzle.Hard, puzzle.Random)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, int64(43), r.PuzzleID)
	assert.Equal(t, []int64{42}, puzzles.excluded[1])

	v, err = svc.Check(ctx, player, Guess{Token: r.Token, Solution: "dog hot"})
	require.NoError(t, err)
	assert.True(t, v.Correct)

	r, err = svc.Next(ctx, player, puzzle.Hard, puzzle.Random)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestServiceCheckRejectsOtherPlayersToken(t *testing.T) {
	svc := newTestService(newStubPuzzles(hotDogRecord()), nil)
	r, err := svc.Next(context.Background(), "alice", puzzle.Easy, puzzle.Random)
	require.NoError(t, err)

	_, err = svc.Check(context.Background(), "bob", Guess{Token: r.Token, Solution: "hot dog"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestServiceCheckStalePicks(t *testing.T) {
	puzzles := newStubPuzzles(hotDogRecord())
	svc := newTestService(puzzles, nil)
	r, err := svc.Next(context.Background(), "", puzzle.Easy, puzzle.Random)
	require.NoError(t, err)

	puzzles.records[42].Groups = puzzles.records[42].Groups[:2]
	_, err = svc.Check(context.Background(), "", Guess{Token: r.Token, Solution: "hot dog"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestServiceGet(t *testing.T) {
	svc := newTestService(newStubPuzzles(hotDogRecord()), nil)

	r, err := svc.Get(context.Background(), 42, "", puzzle.Medium, puzzle.Ascending)
	require.NoError(t, err)
	assert.Equal(t, "phot", r.Jumbles[0].Word())

	_, err = svc.Get(context.Background(), 7, "", puzzle.Medium, puzzle.Ascending)
	assert.ErrorIs(t, err, ErrPuzzleNotFound)
}

func TestServiceTrackerFailureDoesNotBlockPlay(t *testing.T) {
	svc := newTestService(newStubPuzzles(hotDogRecord()), failingTracker{})
	ctx := context.Background()

	r, err := svc.Next(ctx, "p", puzzle.Easy, puzzle.Random)
	require.NoError(t, err)
	require.NotNil(t, r)

	v, err := svc.Check(ctx, "p", Guess{Token: r.Token, Solution: "hot dog"})
	require.NoError(t, err)
	assert.True(t, v.Correct)
}

func TestServiceRepositoryError(t *testing.T) {
	puzzles := newStubPuzzles()
	puzzles.err = errors.New("pg down")
	svc := newTestService(puzzles, nil)

	_, err := svc.Next(context.Background(), "", puzzle.Easy, puzzle.Random)
	assert.ErrorContains(t, err, "pg down")
}
