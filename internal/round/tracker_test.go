package round

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTrackerPerPlayer(t *testing.T) {
	ctx := context.Background()
	tr := NewMemoryTracker()

	require.NoError(t, tr.MarkCompleted(ctx, "a", 1))
	require.NoError(t, tr.MarkCompleted(ctx, "a", 1))
	require.NoError(t, tr.MarkCompleted(ctx, "a", 2))

	ids, err := tr.Completed(ctx, "a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, ids)

	ids, err = tr.Completed(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

// Needs a live Redis; set REDIS_TEST_ADDR to run.
func TestRedisTracker(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	player := uuid.NewString()
	t.Cleanup(func() { client.Del(ctx, completedKey(player)) })

	tr := NewRedisTracker(client, time.Minute, zerolog.Nop())
	require.NoError(t, tr.MarkCompleted(ctx, player, 42))
	require.NoError(t, client.SAdd(ctx, completedKey(player), "junk").Err())

	ids, err := tr.Completed(ctx, player)
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, ids)

	ttl, err := client.TTL(ctx, completedKey(player)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
