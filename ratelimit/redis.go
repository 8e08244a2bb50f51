package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounterStore is a shared counter store: every service instance
// increments the same windowed counters, so the quota is global.
type RedisCounterStore struct {
	rdb    *redis.Client
	prefix string
}

// RedisCounterOption configures a RedisCounterStore.
type RedisCounterOption func(*RedisCounterStore)

// WithCounterPrefix overrides the default "placegate:ratelimit" prefix.
func WithCounterPrefix(prefix string) RedisCounterOption {
	return func(s *RedisCounterStore) { s.prefix = prefix }
}

// NewRedisCounterStore creates a counter store on top of an existing
// Redis client.
func NewRedisCounterStore(rdb *redis.Client, opts ...RedisCounterOption) *RedisCounterStore {
	s := &RedisCounterStore{rdb: rdb, prefix: "placegate:ratelimit"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Incr implements CounterStore with INCR plus a first-writer EXPIRE in
// one pipeline. INCR is atomic server-side, so concurrent requests
// never undercount; the window TTL is attached exactly once per window
// via NX expiry.
func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	fullKey := s.prefix + ":" + key

	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	pipe.ExpireNX(ctx, fullKey, window)
	pttl := pipe.PTTL(ctx, fullKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit: redis incr: %w", err)
	}

	ttl := pttl.Val()
	if ttl < 0 {
		// Key somehow has no TTL; treat the full window as remaining.
		ttl = window
	}
	return incr.Val(), time.Now().Add(ttl), nil
}

// Ping verifies the Redis connection.
func (s *RedisCounterStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Ensure RedisCounterStore implements CounterStore
var _ CounterStore = (*RedisCounterStore)(nil)
