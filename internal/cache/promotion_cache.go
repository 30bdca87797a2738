// Package cache implements the read-through, write-invalidate cache in
// front of the public promotion listing. The cache is best-effort by
// design: a missing or unreachable Redis backend degrades every operation
// to a miss or a no-op, and no error ever reaches the caller. A cache
// outage must never block reads or writes.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultTTL bounds how stale a cached listing may be relative to the
// true visibility predicate. The expiry check only re-runs on a miss, so
// a promotion whose end date passes right after population can linger in
// cached responses for up to this long.
const DefaultTTL = 300 * time.Second

// PromotionCache caches the serialized publicly-visible promotion set
// under a single fixed key. The key is deliberately time-independent;
// staleness is bounded by the TTL, not by keying on the clock.
type PromotionCache struct {
	rdb    *redis.Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewPromotionCache builds a PromotionCache. rdb may be nil, in which
// case every Get misses and Set/Invalidate are no-ops. A non-positive ttl
// falls back to DefaultTTL and an empty prefix to "promo".
func NewPromotionCache(rdb *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *PromotionCache {
	if prefix == "" {
		prefix = "promo"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PromotionCache{
		rdb:    rdb,
		key:    prefix + ":live",
		ttl:    ttl,
		logger: logger,
	}
}

// Key returns the fixed cache key. Exposed for tests and diagnostics.
func (c *PromotionCache) Key() string { return c.key }

// TTL returns the configured entry lifetime.
func (c *PromotionCache) TTL() time.Duration { return c.ttl }

// Get returns the cached serialized listing and true on a hit. Redis
// errors are logged and reported as a miss.
func (c *PromotionCache) Get(ctx context.Context) ([]byte, bool) {
	if c.rdb == nil {
		return nil, false
	}
	bs, err := c.rdb.Get(ctx, c.key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("promotion cache read failed", zap.Error(err))
		}
		return nil, false
	}
	return bs, true
}

// Set stores the serialized listing with the configured TTL. Failures
// are logged and swallowed.
func (c *PromotionCache) Set(ctx context.Context, body []byte) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, c.key, body, c.ttl).Err(); err != nil {
		c.logger.Warn("promotion cache write failed", zap.Error(err))
	}
}

// Invalidate deletes the cached listing. Called synchronously before any
// administrative write reports success, so the next public read recomputes
// the visible set. Failures are logged and swallowed; the write itself
// still succeeds.
func (c *PromotionCache) Invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		c.logger.Warn("promotion cache invalidate failed", zap.Error(err))
	}
}
