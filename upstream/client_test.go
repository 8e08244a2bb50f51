package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonwraymond/placegate/apierr"
	"github.com/jonwraymond/placegate/place"
	"github.com/jonwraymond/placegate/resilience"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
	return c, srv
}

func TestFetchPlace_NormalizesResponse(t *testing.T) {
	var gotPath, gotLang, gotKey, gotMask string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLang = r.URL.Query().Get("languageCode")
		gotKey = r.Header.Get("X-Goog-Api-Key")
		gotMask = r.Header.Get("X-Goog-FieldMask")
		_, _ = w.Write([]byte(`{
			"id": "abc",
			"displayName": {"text": "Cafe X", "languageCode": "en"},
			"editorialSummary": {"text": "A cafe", "languageCode": "en"},
			"formattedAddress": "1 Main St",
			"location": {"latitude": 1, "longitude": 2},
			"primaryType": "cafe",
			"primaryTypeDisplayName": {"text": "Cafe", "languageCode": "en"},
			"websiteUri": "https://cafex.example",
			"nationalPhoneNumber": "555-0100",
			"priceLevel": "PRICE_LEVEL_MODERATE",
			"rating": 4.5,
			"userRatingCount": 120,
			"photos": [{"name": "places/abc/photos/p1"}, {"name": "places/abc/photos/p2"}],
			"googleMapsUri": "https://maps.example/abc",
			"regularOpeningHours": {
				"openNow": true,
				"periods": [{"open": {"day": 1, "hour": 9, "minute": 0}, "close": {"day": 1, "hour": 17, "minute": 30}}],
				"weekdayDescriptions": ["Mon: 9-17:30"]
			}
		}`))
	}))

	got, err := c.FetchPlace(context.Background(), "abc", "en")
	if err != nil {
		t.Fatalf("FetchPlace: %v", err)
	}

	if gotPath != "/v1/places/abc" {
		t.Errorf("path = %s, want /v1/places/abc", gotPath)
	}
	if gotLang != "en" {
		t.Errorf("languageCode = %s, want en", gotLang)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if gotMask == "" {
		t.Error("field mask header should be set")
	}

	if got.PlaceID != "abc" || got.Name != "Cafe X" || got.NameLanguage != "en" {
		t.Errorf("identity fields wrong: %+v", got)
	}
	if got.Location == nil || got.Location.Latitude != 1 || got.Location.Longitude != 2 {
		t.Errorf("location = %+v, want {1 2}", got.Location)
	}
	if got.PriceLevel == nil || *got.PriceLevel != 2 {
		t.Errorf("priceLevel = %v, want 2", got.PriceLevel)
	}
	if len(got.PhotoReferences) != 2 || got.PhotoReferences[0] != "places/abc/photos/p1" {
		t.Errorf("photoReferences = %v", got.PhotoReferences)
	}
	if got.OpeningHours == nil || got.OpeningHours.OpenNow == nil || !*got.OpeningHours.OpenNow {
		t.Errorf("openingHours = %+v", got.OpeningHours)
	}
	if len(got.OpeningHours.Periods) != 1 || got.OpeningHours.Periods[0].Close.Minute != 30 {
		t.Errorf("periods = %+v", got.OpeningHours.Periods)
	}
	if !got.CachedAt.IsZero() || !got.ExpiresAt.IsZero() {
		t.Error("client must not stamp cache timestamps")
	}
}

func TestFetchPlace_MissingLocationStaysNil(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "abc", "displayName": {"text": "X"}}`))
	}))

	got, err := c.FetchPlace(context.Background(), "abc", "en")
	if err != nil {
		t.Fatalf("FetchPlace: %v", err)
	}
	if got.Location != nil {
		t.Errorf("location = %+v, want nil for omitted coordinates", got.Location)
	}
}

func TestFetchPlace_MissingAPIKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	_, err := c.FetchPlace(context.Background(), "abc", "en")

	if !errors.Is(err, apierr.APIKeyRequired()) {
		t.Fatalf("err = %v, want API_KEY_REQUIRED", err)
	}
	if called {
		t.Error("no upstream call may be made without a credential")
	}
}

func TestFetchPlace_StatusClassification(t *testing.T) {
	tests := []struct {
		status     int
		wantCode   apierr.Code
		wantStatus int
	}{
		{404, apierr.CodeNotFound, 404},
		{401, apierr.CodeAPIKeyRequired, 401},
		{403, apierr.CodeFetchForbidden, 403},
		{500, apierr.CodeFetchError, 500},
		{503, apierr.CodeFetchError, 500},
	}

	for _, tt := range tests {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`{"error": {"code": 0, "message": "nope", "status": "X"}}`))
		}))

		_, err := c.FetchPlace(context.Background(), "abc", "en")
		e, ok := apierr.AsError(err)
		if !ok {
			t.Fatalf("status %d: err = %v, want classified error", tt.status, err)
		}
		if e.Code != tt.wantCode || e.Status != tt.wantStatus {
			t.Errorf("status %d: got (%s, %d), want (%s, %d)", tt.status, e.Code, e.Status, tt.wantCode, tt.wantStatus)
		}
	}
}

func TestFetchPlace_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := c.FetchPlace(context.Background(), "abc", "en")

	e, ok := apierr.AsError(err)
	if !ok {
		t.Fatalf("err = %v, want classified error", err)
	}
	if e.Code != apierr.CodeFetchError || e.Status != 500 {
		t.Errorf("got (%s, %d), want (FETCH_ERROR, 500)", e.Code, e.Status)
	}
}

func TestSearchText_BiasCircle(t *testing.T) {
	var gotBody wireSearchRequest
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		_, _ = w.Write([]byte(`{"places": []}`))
	}))

	bias := &place.LatLng{Latitude: 10, Longitude: 20}
	results, err := c.SearchText(context.Background(), "coffee", "en", bias)
	if err != nil {
		t.Fatalf("SearchText: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}

	if gotBody.TextQuery != "coffee" || gotBody.LanguageCode != "en" {
		t.Errorf("request body = %+v", gotBody)
	}
	if gotBody.LocationBias == nil {
		t.Fatal("locationBias should be present when a bias point is given")
	}
	circle := gotBody.LocationBias.Circle
	if circle.Center.Latitude != 10 || circle.Center.Longitude != 20 || circle.Radius != 1000 {
		t.Errorf("circle = %+v, want center {10 20} radius 1000", circle)
	}
}

func TestSearchText_NoBiasOmitted(t *testing.T) {
	var raw []byte
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"places": [{"id": "p1", "displayName": {"text": "One"}}]}`))
	}))

	results, err := c.SearchText(context.Background(), "coffee", "", nil)
	if err != nil {
		t.Fatalf("SearchText: %v", err)
	}
	if len(results) != 1 || results[0].PlaceID != "p1" {
		t.Errorf("results = %+v", results)
	}

	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	if _, ok := body["locationBias"]; ok {
		t.Error("locationBias must be omitted without a bias point")
	}
}

func TestSearchText_GenericErrorKind(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := c.SearchText(context.Background(), "coffee", "en", nil)
	e, ok := apierr.AsError(err)
	if !ok || e.Code != apierr.CodeSearchError || e.Status != 500 {
		t.Fatalf("err = %v, want (SEARCH_ERROR, 500)", err)
	}
}

func TestSearchText_OpenCircuitErrorKind(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{
		APIKey:  "k",
		BaseURL: srv.URL,
		Breaker: resilience.NewBreaker(resilience.BreakerConfig{
			MaxFailures: 1,
			IsFailure:   IsProviderFailure,
		}),
	})

	if _, err := c.SearchText(context.Background(), "coffee", "en", nil); err == nil {
		t.Fatal("first call should fail and open the circuit")
	}

	_, err := c.SearchText(context.Background(), "coffee", "en", nil)
	e, ok := apierr.AsError(err)
	if !ok || e.Code != apierr.CodeSearchError || e.Status != 500 {
		t.Fatalf("open-circuit err = %v, want (SEARCH_ERROR, 500)", err)
	}
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Errorf("err = %v, should keep the breaker cause for logs", err)
	}
	if calls != 1 {
		t.Errorf("upstream calls = %d, want 1; an open circuit must not reach the provider", calls)
	}
}

func TestFetchPhoto_DefaultWidth(t *testing.T) {
	var gotPath, gotWidth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotWidth = r.URL.Query().Get("maxWidthPx")
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpegbytes"))
	}))

	photo, err := c.FetchPhoto(context.Background(), "places/abc/photos/p1", 0)
	if err != nil {
		t.Fatalf("FetchPhoto: %v", err)
	}
	defer photo.Body.Close()

	if gotPath != "/v1/places/abc/photos/p1/media" {
		t.Errorf("path = %s", gotPath)
	}
	if gotWidth != "400" {
		t.Errorf("maxWidthPx = %s, want 400 by default", gotWidth)
	}

	body, _ := io.ReadAll(photo.Body)
	if string(body) != "jpegbytes" {
		t.Errorf("body = %q, want streamed bytes unmodified", body)
	}
	if photo.ContentType != "image/jpeg" {
		t.Errorf("contentType = %s", photo.ContentType)
	}
}

func TestFetchPhoto_ErrorKind(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.FetchPhoto(context.Background(), "ref", 200)
	e, ok := apierr.AsError(err)
	if !ok || e.Code != apierr.CodePhotoError {
		t.Fatalf("err = %v, want PHOTO_ERROR", err)
	}
}

func TestIsProviderFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not found", apierr.Classify(apierr.OpLookup, 404, ""), false},
		{"bad key", apierr.Classify(apierr.OpLookup, 401, ""), false},
		{"provider 5xx", apierr.Classify(apierr.OpLookup, 502, ""), true},
		{"search 5xx", apierr.Classify(apierr.OpSearch, 500, ""), true},
		{"transport", apierr.ClassifyTransport(apierr.OpPhoto, errors.New("refused")), true},
		{"passthrough 418", apierr.Classify(apierr.OpLookup, 418, ""), false},
		{"unclassified", errors.New("boom"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProviderFailure(tt.err); got != tt.want {
				t.Errorf("IsProviderFailure = %v, want %v", got, tt.want)
			}
		})
	}
}
