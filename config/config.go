package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jonwraymond/placegate/secret"
)

// Backend names for the cache store and the counter store.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Configuration errors.
var (
	// ErrInvalidCacheBackend indicates an unknown cache backend name.
	ErrInvalidCacheBackend = errors.New("config: invalid cache backend")

	// ErrInvalidCounterBackend indicates an unknown counter backend name.
	ErrInvalidCounterBackend = errors.New("config: invalid counter backend")

	// ErrRedisAddrRequired indicates a redis backend was selected
	// without an address.
	ErrRedisAddrRequired = errors.New("config: redis address is required")
)

// Config is the gateway configuration.
type Config struct {
	// APIKey is the place data provider credential. ${VAR} references
	// are expanded strictly; an empty key surfaces as API_KEY_REQUIRED
	// at call time.
	APIKey string

	// BaseURL overrides the provider endpoint, mainly for tests.
	BaseURL string

	// DefaultLanguage is used when a request carries no language code.
	// Default: "en"
	DefaultLanguage string

	// UpstreamTimeout bounds each provider call.
	// Default: 10 seconds
	UpstreamTimeout time.Duration

	// UpstreamRate throttles outbound provider calls per second.
	// Zero disables the throttle.
	UpstreamRate float64

	// CacheBackend selects the place cache store: memory|sqlite|redis.
	// Default: memory
	CacheBackend string

	// SQLitePath is the cache database path for the sqlite backend.
	// Default: placegate.db
	SQLitePath string

	// CounterBackend selects the rate-limit counter store: memory|redis.
	// Default: memory
	CounterBackend string

	// RedisAddr is the redis host:port, required when either backend
	// is redis.
	RedisAddr string

	// RedisPassword is the optional redis credential.
	RedisPassword string

	// RateLimitBypass disables quota enforcement. Break-glass only.
	RateLimitBypass bool

	// JWTSecret verifies caller bearer tokens. Empty disables bearer
	// resolution; every caller is then keyed by address.
	JWTSecret string

	// JWTIssuer, when set, is required of every accepted token.
	JWTIssuer string

	// LogLevel is the structured log level: debug|info|warn|error.
	// Default: info
	LogLevel string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:         os.Getenv("PLACEGATE_BASE_URL"),
		DefaultLanguage: envOr("PLACEGATE_DEFAULT_LANGUAGE", "en"),
		CacheBackend:    envOr("PLACEGATE_CACHE_BACKEND", BackendMemory),
		SQLitePath:      envOr("PLACEGATE_SQLITE_PATH", "placegate.db"),
		CounterBackend:  envOr("PLACEGATE_COUNTER_BACKEND", BackendMemory),
		RedisAddr:       os.Getenv("PLACEGATE_REDIS_ADDR"),
		RedisPassword:   os.Getenv("PLACEGATE_REDIS_PASSWORD"),
		JWTSecret:       os.Getenv("PLACEGATE_JWT_SECRET"),
		JWTIssuer:       os.Getenv("PLACEGATE_JWT_ISSUER"),
		LogLevel:        envOr("PLACEGATE_LOG_LEVEL", "info"),
	}

	key, err := secret.ExpandEnvStrict(os.Getenv("PLACEGATE_API_KEY"))
	if err != nil {
		return nil, fmt.Errorf("config: expand api key: %w", err)
	}
	cfg.APIKey = key

	cfg.UpstreamTimeout, err = envDuration("PLACEGATE_UPSTREAM_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.UpstreamRate, err = envFloat("PLACEGATE_UPSTREAM_RATE", 0)
	if err != nil {
		return nil, err
	}

	cfg.RateLimitBypass, err = envBool("PLACEGATE_RATELIMIT_BYPASS", false)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.CacheBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCacheBackend, c.CacheBackend)
	}

	switch c.CounterBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCounterBackend, c.CounterBackend)
	}

	if (c.CacheBackend == BackendRedis || c.CounterBackend == BackendRedis) && c.RedisAddr == "" {
		return ErrRedisAddrRequired
	}

	if c.UpstreamTimeout <= 0 {
		return errors.New("config: upstream timeout must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}
