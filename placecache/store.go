package placecache

import (
	"context"
	"errors"

	"github.com/jonwraymond/placegate/place"
)

// ErrInvalidKey is returned for an empty place id.
var ErrInvalidKey = errors.New("placecache: place id is empty")

// Store is the persistent cache of place rows.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Staleness: Get returns rows whose ExpiresAt has passed; callers
//   decide what a hit means. Get returns (nil, nil) when no row exists.
// - Upsert replaces the full row under its PlaceID; last writer wins.
type Store interface {
	Get(ctx context.Context, placeID string) (*place.CachedPlace, error)
	Upsert(ctx context.Context, p *place.CachedPlace) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
