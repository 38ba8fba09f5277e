package round

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CompletionTracker remembers which puzzles a player has already solved.
type CompletionTracker interface {
	Completed(ctx context.Context, player string) ([]int64, error)
	MarkCompleted(ctx context.Context, player string, puzzleID int64) error
}

// RedisTracker keeps completed puzzle ids in one Redis set per player.
type RedisTracker struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisTracker creates a tracker; sets expire ttl after the last completion (default 30 days).
func NewRedisTracker(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisTracker {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &RedisTracker{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "completion_tracker").Logger(),
	}
}

func completedKey(player string) string {
	return fmt.Sprintf("jumble:completed:%s", player)
}

func (t *RedisTracker) Completed(ctx context.Context, player string) ([]int64, error) {
	members, err := t.client.SMembers(ctx, completedKey(player)).Result()
	if err != nil {
		return nil, fmt.Errorf("list completed: %w", err)
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			t.logger.Warn().Str("player", player).Str("member", m).Msg("skip malformed completion")
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (t *RedisTracker) MarkCompleted(ctx context.Context, player string, puzzleID int64) error {
	key := completedKey(player)
	pipe := t.client.TxPipeline()
	pipe.SAdd(ctx, key, puzzleID)
	pipe.Expire(ctx, key, t.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

// MemoryTracker is an in-process CompletionTracker for single-instance deployments.
type MemoryTracker struct {
	mu   sync.Mutex
	done map[string]map[int64]struct{}
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{done: map[string]map[int64]struct{}{}}
}

func (t *MemoryTracker) Completed(_ context.Context, player string) ([]int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]int64, 0, len(t.done[player]))
	for id := range t.done[player] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (t *MemoryTracker) MarkCompleted(_ context.Context, player string, puzzleID int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, ok := t.done[player]
	if !ok {
		set = map[int64]struct{}{}
		t.done[player] = set
	}
	set[puzzleID] = struct{}{}
	return nil
}
