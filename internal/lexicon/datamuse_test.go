package lexicon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, attempts int) *DatamuseClient {
	return NewDatamuseClient(DatamuseConfig{
		BaseURL:     url,
		MaxAttempts: attempts,
		BackoffBase: time.Millisecond,
	}, nil, zerolog.Nop())
}

func TestDatamuseLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/words", r.URL.Path)
		assert.Equal(t, "?a?t", r.URL.Query().Get("sp"))
		assert.Equal(t, "d", r.URL.Query().Get("md"))
		assert.Equal(t, "50", r.URL.Query().Get("max"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"word":"bait","score":1200,"defs":["n\tsomething used to lure"]},{"word":"salt","score":900}]`))
	}))
	defer srv.Close()

	entries, err := newTestClient(srv.URL, 3).Lookup(context.Background(), "?a?t", 50)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Word: "bait", Score: 1200, Defs: []string{"n\tsomething used to lure"}}, entries[0])
	assert.Empty(t, entries[1].Defs)
}

func TestDatamuseRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`[{"word":"bait","score":1}]`))
	}))
	defer srv.Close()

	entries, err := newTestClient(srv.URL, 5).Lookup(context.Background(), "?a?t", 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDatamuseGivesUpAfterCeiling(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 4).Lookup(context.Background(), "?a?t", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLookupUnavailable)
	assert.Equal(t, int32(4), calls.Load())
}

func TestDatamuseDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 5).Lookup(context.Background(), "?a?t", 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLookupUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDatamuseBackoffIsRandomizedByDefault(t *testing.T) {
	c := NewDatamuseClient(DatamuseConfig{MaxAttempts: 5, BackoffBase: time.Second}, nil, zerolog.Nop())

	seen := map[time.Duration]struct{}{}
	for range 5 {
		b := c.backoff()
		for {
			d, stop := b.Next()
			if stop {
				break
			}
			assert.GreaterOrEqual(t, d, time.Duration(0))
			assert.LessOrEqual(t, d, 2*time.Second)
			seen[d] = struct{}{}
		}
	}
	assert.Greater(t, len(seen), 1, "delays must vary")
}
