package config

import (
	"github.com/redis/go-redis/v9"

	"github.com/jonwraymond/placegate/placecache"
	"github.com/jonwraymond/placegate/ratelimit"
)

// NewCacheStore builds the place cache store selected by the
// configuration.
func NewCacheStore(cfg *Config) (placecache.Store, error) {
	switch cfg.CacheBackend {
	case BackendSQLite:
		return placecache.NewSQLiteStore(cfg.SQLitePath)
	case BackendRedis:
		return placecache.NewRedisStore(newRedisClient(cfg)), nil
	default:
		return placecache.NewMemoryStore(), nil
	}
}

// NewCounterStore builds the rate-limit counter store selected by the
// configuration.
func NewCounterStore(cfg *Config) ratelimit.CounterStore {
	if cfg.CounterBackend == BackendRedis {
		return ratelimit.NewRedisCounterStore(newRedisClient(cfg))
	}
	return ratelimit.NewMemoryCounterStore()
}

func newRedisClient(cfg *Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
