package lexicon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/jumble/internal/metrics"
)

const defaultCacheTTL = 24 * time.Hour

// SharedCache is a second cache tier shared across processes.
// Get returns (nil, nil) on a miss.
type SharedCache interface {
	Get(ctx context.Context, pattern string, max int) ([]Entry, error)
	Set(ctx context.Context, pattern string, max int, entries []Entry) error
}

// RedisCache stores lookup results in Redis; lookups are idempotent so a long TTL is fine.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ SharedCache = (*RedisCache)(nil)

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) key(pattern string, max int) string {
	return fmt.Sprintf("lexicon:%d:%s", max, pattern)
}

func (c *RedisCache) Get(ctx context.Context, pattern string, max int) ([]Entry, error) {
	data, err := c.client.Get(ctx, c.key(pattern, max)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func (c *RedisCache) Set(ctx context.Context, pattern string, max int, entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(pattern, max), data, c.ttl).Err()
}

type cacheKey struct {
	pattern string
	max     int
}

// CachedSource memoizes lookups in a bounded, expiring LRU, optionally backed by
// a shared tier.
type CachedSource struct {
	next   Source
	shared SharedCache
	logger zerolog.Logger
	local  *expirable.LRU[cacheKey, []Entry]
}

var _ Source = (*CachedSource)(nil)

// NewCachedSource wraps next. A capacity of zero or less disables the in-process
// tier; a ttl of zero or less keeps entries until evicted. shared may be nil.
func NewCachedSource(next Source, capacity int, ttl time.Duration, shared SharedCache, logger zerolog.Logger) *CachedSource {
	c := &CachedSource{
		next:   next,
		shared: shared,
		logger: logger.With().Str("component", "lexicon_cache").Logger(),
	}
	if capacity > 0 {
		c.local = expirable.NewLRU[cacheKey, []Entry](capacity, nil, ttl)
	}
	return c
}

func (c *CachedSource) Lookup(ctx context.Context, pattern string, max int) ([]Entry, error) {
	key := cacheKey{pattern: pattern, max: max}
	if c.local != nil {
		if entries, ok := c.local.Get(key); ok {
			metrics.LexiconLookups.WithLabelValues("hit").Inc()
			return entries, nil
		}
	}

	if c.shared != nil {
		entries, err := c.shared.Get(ctx, pattern, max)
		if err != nil {
			c.logger.Warn().Err(err).Str("pattern", pattern).Msg("shared cache read failed")
		} else if entries != nil {
			metrics.LexiconLookups.WithLabelValues("hit").Inc()
			c.put(key, entries)
			return entries, nil
		}
	}

	entries, err := c.next.Lookup(ctx, pattern, max)
	if err != nil {
		metrics.LexiconLookups.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.LexiconLookups.WithLabelValues("miss").Inc()
	c.put(key, entries)
	if c.shared != nil {
		if err := c.shared.Set(ctx, pattern, max, entries); err != nil {
			c.logger.Warn().Err(err).Str("pattern", pattern).Msg("shared cache write failed")
		}
	}
	return entries, nil
}

// Len reports the number of entries held in process.
func (c *CachedSource) Len() int {
	if c.local == nil {
		return 0
	}
	return c.local.Len()
}

// Purge drops every in-process entry.
func (c *CachedSource) Purge() {
	if c.local != nil {
		c.local.Purge()
	}
}

func (c *CachedSource) put(key cacheKey, entries []Entry) {
	if c.local != nil {
		c.local.Add(key, entries)
	}
}
