package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/jonwraymond/placegate/apierr"
	"github.com/jonwraymond/placegate/place"
	"github.com/jonwraymond/placegate/resilience"
)

// detailsFieldMask names the place fields requested from the provider.
const detailsFieldMask = "id,displayName,editorialSummary,formattedAddress," +
	"location,primaryType,primaryTypeDisplayName,websiteUri," +
	"nationalPhoneNumber,priceLevel,regularOpeningHours,rating," +
	"userRatingCount,photos,googleMapsUri"

// searchFieldMask is the same mask scoped to search results.
const searchFieldMask = "places.id,places.displayName,places.editorialSummary," +
	"places.formattedAddress,places.location,places.primaryType," +
	"places.primaryTypeDisplayName,places.websiteUri,places.nationalPhoneNumber," +
	"places.priceLevel,places.regularOpeningHours,places.rating," +
	"places.userRatingCount,places.photos,places.googleMapsUri"

// SearchBiasRadius is the fixed radius, in meters, of the location-bias
// circle sent with biased text searches.
const SearchBiasRadius = 1000

// DefaultPhotoMaxWidth is the width constraint used when the caller
// supplies none.
const DefaultPhotoMaxWidth = 400

// Config configures the provider client.
type Config struct {
	// APIKey is the provider credential. Calls fail with
	// API_KEY_REQUIRED before any I/O when it is empty.
	APIKey string

	// BaseURL is the provider endpoint.
	// Default: https://places.googleapis.com
	BaseURL string

	// CallTimeout bounds each upstream call.
	// Default: 10 seconds
	CallTimeout time.Duration

	// HTTPClient is the HTTP client to use for requests.
	// If nil, http.DefaultTransport behind a plain client is used; the
	// per-call timeout comes from CallTimeout, not the client.
	HTTPClient *http.Client

	// Breaker guards calls against a sustained provider outage.
	// If nil, a breaker with default thresholds is created.
	Breaker *resilience.Breaker

	// MaxCallsPerSecond throttles outbound calls to the provider.
	// Zero disables the throttle.
	MaxCallsPerSecond float64

	// Burst is the outbound throttle burst size.
	// Default: 5 (when the throttle is enabled)
	Burst int
}

// Client calls the place data provider.
type Client struct {
	config  Config
	http    *http.Client
	breaker *resilience.Breaker
	limiter *rate.Limiter
}

// NewClient creates a provider client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://places.googleapis.com"
	}
	if config.CallTimeout <= 0 {
		config.CallTimeout = 10 * time.Second
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{}
	}
	if config.Breaker == nil {
		config.Breaker = resilience.NewBreaker(resilience.BreakerConfig{
			IsFailure: IsProviderFailure,
		})
	}

	c := &Client{
		config:  config,
		http:    config.HTTPClient,
		breaker: config.Breaker,
	}
	if config.MaxCallsPerSecond > 0 {
		burst := config.Burst
		if burst <= 0 {
			burst = 5
		}
		c.limiter = rate.NewLimiter(rate.Limit(config.MaxCallsPerSecond), burst)
	}
	return c
}

// Breaker exposes the circuit breaker, mainly for health reporting.
func (c *Client) Breaker() *resilience.Breaker { return c.breaker }

// IsProviderFailure reports whether err should trip the circuit breaker.
// Classified caller-side errors (bad request, not found, bad key) do
// not count; transport failures and provider 5xx do.
func IsProviderFailure(err error) bool {
	if err == nil {
		return false
	}
	if e, ok := apierr.AsError(err); ok {
		switch e.Code {
		case apierr.CodeFetchError, apierr.CodeSearchError, apierr.CodePhotoError:
			return e.Status >= http.StatusInternalServerError
		}
		return false
	}
	return true
}

// FetchPlace retrieves place details by id in the given language. The
// returned row is normalized but carries no cache timestamps.
func (c *Client) FetchPlace(ctx context.Context, placeID, language string) (*place.CachedPlace, error) {
	if c.config.APIKey == "" {
		return nil, apierr.APIKeyRequired()
	}

	endpoint := fmt.Sprintf("%s/v1/places/%s?languageCode=%s",
		c.config.BaseURL, url.PathEscape(placeID), url.QueryEscape(language))

	var result *place.CachedPlace
	err := c.guarded(ctx, apierr.OpLookup, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return apierr.ClassifyTransport(apierr.OpLookup, err)
		}
		req.Header.Set("X-Goog-Api-Key", c.config.APIKey)
		req.Header.Set("X-Goog-FieldMask", detailsFieldMask)

		resp, err := c.http.Do(req)
		if err != nil {
			return apierr.ClassifyTransport(apierr.OpLookup, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return classifyResponse(apierr.OpLookup, resp)
		}

		var w wirePlace
		if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
			return apierr.ClassifyTransport(apierr.OpLookup, err)
		}
		result = normalizePlace(&w, placeID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SearchText runs a free-text search. When bias is non-nil the request
// carries a location-bias circle of SearchBiasRadius meters around it.
func (c *Client) SearchText(ctx context.Context, query, language string, bias *place.LatLng) ([]place.Summary, error) {
	if c.config.APIKey == "" {
		return nil, apierr.APIKeyRequired()
	}

	body := wireSearchRequest{TextQuery: query, LanguageCode: language}
	if bias != nil {
		body.LocationBias = &wireLocationBias{
			Circle: wireCircle{
				Center: wireLatLng{Latitude: bias.Latitude, Longitude: bias.Longitude},
				Radius: SearchBiasRadius,
			},
		}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apierr.ClassifyTransport(apierr.OpSearch, err)
	}

	endpoint := c.config.BaseURL + "/v1/places:searchText"

	var results []place.Summary
	err = c.guarded(ctx, apierr.OpSearch, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return apierr.ClassifyTransport(apierr.OpSearch, err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Goog-Api-Key", c.config.APIKey)
		req.Header.Set("X-Goog-FieldMask", searchFieldMask)

		resp, err := c.http.Do(req)
		if err != nil {
			return apierr.ClassifyTransport(apierr.OpSearch, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return classifyResponse(apierr.OpSearch, resp)
		}

		var w wireSearchResponse
		if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
			return apierr.ClassifyTransport(apierr.OpSearch, err)
		}

		results = make([]place.Summary, 0, len(w.Places))
		for i := range w.Places {
			results = append(results, normalizePlace(&w.Places[i], "").Summary())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Photo is a streamed photo payload. The caller owns Body and must
// close it.
type Photo struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// FetchPhoto streams photo bytes for an opaque photo reference. Zero or
// negative maxWidthPx falls back to DefaultPhotoMaxWidth.
//
// The photo body deliberately outlives the per-call deadline: the stream
// is handed to the caller, so only the connection setup is bounded here.
func (c *Client) FetchPhoto(ctx context.Context, photoRef string, maxWidthPx int) (*Photo, error) {
	if c.config.APIKey == "" {
		return nil, apierr.APIKeyRequired()
	}
	if maxWidthPx <= 0 {
		maxWidthPx = DefaultPhotoMaxWidth
	}

	endpoint := fmt.Sprintf("%s/v1/%s/media?maxWidthPx=%s",
		c.config.BaseURL, photoRef, strconv.Itoa(maxWidthPx))

	var photo *Photo
	err := c.guardedNoTimeout(ctx, apierr.OpPhoto, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return apierr.ClassifyTransport(apierr.OpPhoto, err)
		}
		req.Header.Set("X-Goog-Api-Key", c.config.APIKey)

		resp, err := c.http.Do(req)
		if err != nil {
			return apierr.ClassifyTransport(apierr.OpPhoto, err)
		}

		if resp.StatusCode != http.StatusOK {
			defer resp.Body.Close()
			return classifyResponse(apierr.OpPhoto, resp)
		}

		photo = &Photo{
			Body:          resp.Body,
			ContentType:   resp.Header.Get("Content-Type"),
			ContentLength: resp.ContentLength,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return photo, nil
}

// guarded runs op behind the outbound throttle, the circuit breaker,
// and the per-call timeout.
func (c *Client) guarded(ctx context.Context, apiOp apierr.Op, op func(context.Context) error) error {
	return c.guardedNoTimeout(ctx, apiOp, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, c.config.CallTimeout)
		defer cancel()
		return op(ctx)
	})
}

func (c *Client) guardedNoTimeout(ctx context.Context, apiOp apierr.Op, op func(context.Context) error) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apierr.ClassifyTransport(apiOp, err)
		}
	}
	err := c.breaker.Execute(ctx, op)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		// The fast-fail surfaces as the operation's generic kind, the
		// same as any transport failure with no response.
		return apierr.ClassifyTransport(apiOp, err)
	}
	return err
}

// classifyResponse reads the provider error payload (if any) and maps
// the response onto the internal taxonomy.
func classifyResponse(op apierr.Op, resp *http.Response) error {
	// Bounded read: error payloads are small, never trust Content-Length.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))

	var env wireErrorEnvelope
	message := ""
	if err := json.Unmarshal(body, &env); err == nil {
		message = env.Error.Message
	}
	return apierr.Classify(op, resp.StatusCode, message)
}
