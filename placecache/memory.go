package placecache

import (
	"context"
	"sync"

	"github.com/jonwraymond/placegate/place"
)

// MemoryStore is an in-memory store for single-instance and test use.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]place.CachedPlace
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]place.CachedPlace)}
}

// Get returns the row for placeID, stale or not. (nil, nil) on absence.
func (s *MemoryStore) Get(_ context.Context, placeID string) (*place.CachedPlace, error) {
	if placeID == "" {
		return nil, ErrInvalidKey
	}

	s.mu.RLock()
	row, ok := s.rows[placeID]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	// Copy so callers cannot mutate the stored row.
	out := row
	return &out, nil
}

// Upsert inserts or fully replaces the row under p.PlaceID.
func (s *MemoryStore) Upsert(_ context.Context, p *place.CachedPlace) error {
	if p == nil || p.PlaceID == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	s.rows[p.PlaceID] = *p
	s.mu.Unlock()
	return nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
