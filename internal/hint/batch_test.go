package hint

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/jumble/internal/lexicon"
	"github.com/gokatarajesh/jumble/internal/puzzle"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ExistsBySolution(ctx context.Context, solution string) (bool, error) {
	args := m.Called(ctx, solution)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Persist(ctx context.Context, rec *puzzle.Record) (*puzzle.Record, error) {
	args := m.Called(ctx, rec.Solution)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	stored := *rec
	stored.ID = args.Get(0).(int64)
	return &stored, nil
}

func fullSource() lexicon.Source {
	return lexicon.SourceFunc(func(_ context.Context, _ string, _ int) ([]lexicon.Entry, error) {
		return fullEntries(), nil
	})
}

func TestBatchContinuesPastFailures(t *testing.T) {
	gen := NewGenerator(fullSource(), Config{}, seeded(9), zerolog.Nop())
	batch := NewBatch(gen, BatchOptions{Workers: 3}, zerolog.Nop())

	ideas := []Idea{
		{ID: 1, Solution: "hot dog", ToComplete: "A \"{}\" at the fair"},
		{ID: 2, Solution: "x"},
		{ID: 3, Solution: "pie chart"},
		{ID: 4, Solution: "fish"},
	}
	res, err := batch.Run(context.Background(), ideas)
	require.NoError(t, err)

	require.Len(t, res.Records, 3)
	assert.Equal(t, int64(1), res.Records[0].ID)
	assert.Equal(t, "hot dog", res.Records[0].Solution)
	assert.Equal(t, "A \"{}\" at the fair", res.Records[0].ToComplete)
	assert.Equal(t, int64(3), res.Records[1].ID)
	assert.Equal(t, int64(4), res.Records[2].ID)
	assert.Len(t, res.Records[1].Groups, 4)
	assert.Len(t, res.Records[2].Groups, 2)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, int64(2), res.Failures[0].Idea.ID)
	assert.ErrorIs(t, res.Failures[0].Err, ErrPhraseTooShort)
	assert.Empty(t, res.Skipped)
}

func TestBatchSkipsExistingAndPersists(t *testing.T) {
	store := new(mockStore)
	store.On("ExistsBySolution", mock.Anything, "hot dog").Return(true, nil)
	store.On("ExistsBySolution", mock.Anything, "fish").Return(false, nil)
	store.On("ExistsBySolution", mock.Anything, "jam").Return(false, nil)
	store.On("Persist", mock.Anything, "fish").Return(int64(100), nil)
	store.On("Persist", mock.Anything, "jam").Return(int64(0), errors.New("db down"))

	gen := NewGenerator(fullSource(), Config{}, seeded(9), zerolog.Nop())
	batch := NewBatch(gen, BatchOptions{Workers: 2, Store: store, SkipExisting: true}, zerolog.Nop())

	res, err := batch.Run(context.Background(), []Idea{
		{ID: 1, Solution: "hot dog"},
		{ID: 2, Solution: "fish"},
		{ID: 3, Solution: "jam"},
	})
	require.NoError(t, err)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "hot dog", res.Skipped[0].Solution)
	require.Len(t, res.Records, 1)
	assert.Equal(t, int64(100), res.Records[0].ID)
	require.Len(t, res.Failures, 1)
	assert.EqualError(t, res.Failures[0].Err, "db down")
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Persist", mock.Anything, "hot dog")
}

func TestBatchCancelled(t *testing.T) {
	gen := NewGenerator(fullSource(), Config{}, seeded(9), zerolog.Nop())
	batch := NewBatch(gen, BatchOptions{}, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := batch.Run(ctx, []Idea{{ID: 1, Solution: "hot dog"}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Records)
}
