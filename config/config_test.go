package config

import (
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/placegate/placecache"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PLACEGATE_API_KEY", "PLACEGATE_BASE_URL", "PLACEGATE_DEFAULT_LANGUAGE",
		"PLACEGATE_UPSTREAM_TIMEOUT", "PLACEGATE_UPSTREAM_RATE",
		"PLACEGATE_CACHE_BACKEND", "PLACEGATE_SQLITE_PATH",
		"PLACEGATE_COUNTER_BACKEND", "PLACEGATE_REDIS_ADDR",
		"PLACEGATE_REDIS_PASSWORD", "PLACEGATE_RATELIMIT_BYPASS",
		"PLACEGATE_JWT_SECRET", "PLACEGATE_JWT_ISSUER", "PLACEGATE_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DefaultLanguage != "en" {
		t.Errorf("DefaultLanguage = %q", cfg.DefaultLanguage)
	}
	if cfg.UpstreamTimeout != 10*time.Second {
		t.Errorf("UpstreamTimeout = %v", cfg.UpstreamTimeout)
	}
	if cfg.CacheBackend != BackendMemory || cfg.CounterBackend != BackendMemory {
		t.Errorf("backends = %q/%q", cfg.CacheBackend, cfg.CounterBackend)
	}
	if cfg.RateLimitBypass {
		t.Error("bypass must default to off")
	}

	// An absent API key is not a load error.
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
}

func TestLoad_APIKeyIndirection(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPSTREAM_CREDENTIAL", "real-key")
	t.Setenv("PLACEGATE_API_KEY", "${UPSTREAM_CREDENTIAL}")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "real-key" {
		t.Errorf("APIKey = %q, want the expanded value", cfg.APIKey)
	}
}

func TestLoad_APIKeyMissingIndirection(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLACEGATE_API_KEY", "${NO_SUCH_CREDENTIAL_VAR}")

	if _, err := Load(); err == nil {
		t.Fatal("a dangling ${VAR} reference must fail loudly")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLACEGATE_UPSTREAM_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("unparseable duration must fail")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			CacheBackend:    BackendMemory,
			CounterBackend:  BackendMemory,
			UpstreamTimeout: 10 * time.Second,
		}
	}

	if err := base().Validate(); err != nil {
		t.Errorf("valid config: %v", err)
	}

	bad := base()
	bad.CacheBackend = "postgres"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidCacheBackend) {
		t.Errorf("err = %v, want ErrInvalidCacheBackend", err)
	}

	bad = base()
	bad.CounterBackend = "sqlite" // counters need atomic increments
	if err := bad.Validate(); !errors.Is(err, ErrInvalidCounterBackend) {
		t.Errorf("err = %v, want ErrInvalidCounterBackend", err)
	}

	bad = base()
	bad.CacheBackend = BackendRedis
	if err := bad.Validate(); !errors.Is(err, ErrRedisAddrRequired) {
		t.Errorf("err = %v, want ErrRedisAddrRequired", err)
	}

	ok := base()
	ok.CounterBackend = BackendRedis
	ok.RedisAddr = "localhost:6379"
	if err := ok.Validate(); err != nil {
		t.Errorf("redis with addr: %v", err)
	}
}

func TestNewCacheStore_Memory(t *testing.T) {
	store, err := NewCacheStore(&Config{CacheBackend: BackendMemory})
	if err != nil {
		t.Fatalf("NewCacheStore: %v", err)
	}
	if _, ok := store.(*placecache.MemoryStore); !ok {
		t.Errorf("store = %T, want MemoryStore", store)
	}
}

func TestNewCacheStore_SQLite(t *testing.T) {
	store, err := NewCacheStore(&Config{
		CacheBackend: BackendSQLite,
		SQLitePath:   t.TempDir() + "/cache.db",
	})
	if err != nil {
		t.Fatalf("NewCacheStore: %v", err)
	}
	if _, ok := store.(*placecache.SQLiteStore); !ok {
		t.Errorf("store = %T, want SQLiteStore", store)
	}
}
