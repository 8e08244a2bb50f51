package placecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jonwraymond/placegate/place"
)

// RedisStore is a shared store for multi-instance deployments.
//
// Rows carry their own ExpiresAt and must stay readable after going
// stale, so no Redis TTL is set; eviction is an operational concern.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the default "placegate:place" key prefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// NewRedisStore creates a store on top of an existing Redis client.
func NewRedisStore(rdb *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{rdb: rdb, prefix: "placegate:place"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(placeID string) string {
	return s.prefix + ":" + placeID
}

// Get returns the row for placeID, stale or not. (nil, nil) on absence.
func (s *RedisStore) Get(ctx context.Context, placeID string) (*place.CachedPlace, error) {
	if placeID == "" {
		return nil, ErrInvalidKey
	}

	raw, err := s.rdb.Get(ctx, s.key(placeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("placecache: redis get: %w", err)
	}

	var p place.CachedPlace
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("placecache: decode row: %w", err)
	}
	return &p, nil
}

// Upsert inserts or fully replaces the row under p.PlaceID.
func (s *RedisStore) Upsert(ctx context.Context, p *place.CachedPlace) error {
	if p == nil || p.PlaceID == "" {
		return ErrInvalidKey
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("placecache: encode row: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(p.PlaceID), raw, 0).Err(); err != nil {
		return fmt.Errorf("placecache: redis set: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)
