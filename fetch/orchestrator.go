package fetch

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/placegate/apierr"
	"github.com/jonwraymond/placegate/place"
	"github.com/jonwraymond/placegate/placecache"
	"github.com/jonwraymond/placegate/upstream"
)

// DefaultLanguage is used when the caller supplies no language code.
const DefaultLanguage = "en"

// Photo responses use a fixed content type and a public cache-control
// directive regardless of what the provider sent.
const (
	PhotoContentType  = "image/jpeg"
	PhotoCacheControl = "public, max-age=86400"
)

// Provider is the slice of the upstream client the orchestrator needs.
type Provider interface {
	FetchPlace(ctx context.Context, placeID, language string) (*place.CachedPlace, error)
	SearchText(ctx context.Context, query, language string, bias *place.LatLng) ([]place.Summary, error)
	FetchPhoto(ctx context.Context, photoRef string, maxWidthPx int) (*upstream.Photo, error)
}

var _ Provider = (*upstream.Client)(nil)

// Config configures the orchestrator.
type Config struct {
	// Cache is the persistent place cache.
	Cache placecache.Store

	// Provider is the upstream place data client.
	Provider Provider

	// DefaultLanguage is used when a request carries no language code.
	// Default: "en"
	DefaultLanguage string

	// Now is the clock used for freshness checks and stamping.
	// Default: time.Now
	Now func() time.Time

	// OnLookup is called after every place lookup, for metrics.
	OnLookup func(hit bool)

	// OnCacheError is called when a cache read or write fails. Cache
	// failures degrade to live fetches; they never fail the request.
	OnCacheError func(op string, err error)
}

// Orchestrator implements the place lookup, search, and photo
// operations.
type Orchestrator struct {
	config Config
	group  singleflight.Group
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(config Config) *Orchestrator {
	if config.DefaultLanguage == "" {
		config.DefaultLanguage = DefaultLanguage
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Orchestrator{config: config}
}

// GetOrFetchPlace returns the place row for placeID, serving from the
// cache when the row is still fresh and fetching from the provider
// otherwise. A fetched row is stamped and written back before it is
// returned; a failed fetch writes nothing. Coalesced callers share the
// returned row and must treat it as read-only.
func (o *Orchestrator) GetOrFetchPlace(ctx context.Context, placeID, language string) (*place.CachedPlace, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return nil, apierr.InvalidRequest("place id is required", "placeId")
	}
	if language == "" {
		language = o.config.DefaultLanguage
	}

	cached, err := o.config.Cache.Get(ctx, placeID)
	if err != nil {
		o.cacheError("get", err)
	} else if cached != nil && cached.Fresh(o.config.Now()) {
		o.lookup(true)
		return cached, nil
	}
	o.lookup(false)

	// Coalesce concurrent misses for the same row onto one provider
	// call. The key includes the language: rows are keyed by place id
	// only, so the last language fetched wins the cache slot, but two
	// in-flight languages must not share a result.
	v, err, _ := o.group.Do(placeID+"\x00"+language, func() (any, error) {
		fetched, err := o.config.Provider.FetchPlace(ctx, placeID, language)
		if err != nil {
			return nil, err
		}
		fetched.Stamp(o.config.Now())

		// The write-back survives cancellation of the initiating
		// caller; coalesced callers still want the row cached.
		if err := o.config.Cache.Upsert(context.WithoutCancel(ctx), fetched); err != nil {
			o.cacheError("upsert", err)
		}
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*place.CachedPlace), nil
}

// SearchPlaces runs a live text search against the provider. Results
// are never persisted. An empty result list is a successful outcome.
func (o *Orchestrator) SearchPlaces(ctx context.Context, query, language string, bias *place.LatLng) ([]place.Summary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apierr.InvalidRequest("search query is required", "query")
	}
	if language == "" {
		language = o.config.DefaultLanguage
	}

	results, err := o.config.Provider.SearchText(ctx, query, language, bias)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []place.Summary{}
	}
	return results, nil
}

// GetPhoto streams photo media from the provider. The caller owns the
// returned body and must close it.
func (o *Orchestrator) GetPhoto(ctx context.Context, photoRef string, maxWidthPx int) (*upstream.Photo, error) {
	photoRef = strings.TrimSpace(photoRef)
	if photoRef == "" {
		return nil, apierr.InvalidRequest("photo reference is required", "photoReference")
	}
	return o.config.Provider.FetchPhoto(ctx, photoRef, maxWidthPx)
}

func (o *Orchestrator) lookup(hit bool) {
	if o.config.OnLookup != nil {
		o.config.OnLookup(hit)
	}
}

func (o *Orchestrator) cacheError(op string, err error) {
	if o.config.OnCacheError != nil {
		o.config.OnCacheError(op, err)
	}
}
