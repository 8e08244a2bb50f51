package ratelimit

import (
	"context"
	"sync"
	"time"
)

// CounterStore is the windowed counter behind the governor.
//
// Contract:
// - Concurrency: Incr must be atomic; a read-then-write implementation
//   undercounts under load and is not acceptable.
// - Windows: the first Incr for a key starts its window; the count
//   resets exactly at window rollover. Idle entries may expire.
type CounterStore interface {
	// Incr increments the counter for key within its current window
	// and returns the new count and when the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (count int64, resetAt time.Time, err error)
}

// MemoryCounterStore is an in-process counter store. Each service
// instance gets its own quota, so it is only correct for
// single-instance deployments and tests.
type MemoryCounterStore struct {
	mu      sync.Mutex
	entries map[string]*counterEntry
}

type counterEntry struct {
	count   int64
	resetAt time.Time
}

// NewMemoryCounterStore creates an empty in-process counter store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{entries: make(map[string]*counterEntry)}
}

// Incr implements CounterStore with a single lock; increment and window
// check are one critical section.
func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok || !now.Before(ent.resetAt) {
		ent = &counterEntry{resetAt: now.Add(window)}
		s.entries[key] = ent
	}
	ent.count++
	return ent.count, ent.resetAt, nil
}

// Sweep drops expired entries. Useful for long-lived processes; the
// store works correctly without it.
func (s *MemoryCounterStore) Sweep() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, ent := range s.entries {
		if !now.Before(ent.resetAt) {
			delete(s.entries, key)
		}
	}
}

// Ensure MemoryCounterStore implements CounterStore
var _ CounterStore = (*MemoryCounterStore)(nil)
