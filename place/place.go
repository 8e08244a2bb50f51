package place

import "time"

// CacheTTL is the fixed write-time lifetime of a cached place row.
const CacheTTL = 30 * 24 * time.Hour

// LatLng is a geographic point in degrees.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocalizedText is a string with the language it is written in.
type LocalizedText struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

// TimePoint is a day-of-week plus time-of-day inside an opening period.
type TimePoint struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// OpeningPeriod is one open/close pair.
type OpeningPeriod struct {
	Open  TimePoint `json:"open"`
	Close TimePoint `json:"close"`
}

// OpeningHours is the structured opening-hours blob passed through from
// the provider.
type OpeningHours struct {
	OpenNow             *bool           `json:"openNow,omitempty"`
	Periods             []OpeningPeriod `json:"periods,omitempty"`
	WeekdayDescriptions []string        `json:"weekdayDescriptions,omitempty"`
	NextOpenTime        *time.Time      `json:"nextOpenTime,omitempty"`
	NextCloseTime       *time.Time      `json:"nextCloseTime,omitempty"`
}

// CachedPlace is one normalized place row, keyed by the provider-assigned
// place id. PlaceID is immutable; every refresh overwrites all other
// fields.
//
// A row whose ExpiresAt is in the past is stale, not absent: it stays
// readable by direct key lookup but never satisfies a cache-aside hit.
type CachedPlace struct {
	PlaceID string `json:"placeId"`

	Name         string `json:"name"`
	NameLanguage string `json:"nameLanguage,omitempty"`

	Description         string `json:"description,omitempty"`
	DescriptionLanguage string `json:"descriptionLanguage,omitempty"`

	Address string `json:"address,omitempty"`

	// Location is nil when the provider omitted coordinates. A missing
	// location is represented explicitly rather than as 0,0.
	Location *LatLng `json:"location,omitempty"`

	Category                    string `json:"category,omitempty"`
	CategoryDisplayName         string `json:"categoryDisplayName,omitempty"`
	CategoryDisplayNameLanguage string `json:"categoryDisplayNameLanguage,omitempty"`

	Website string `json:"website,omitempty"`
	Phone   string `json:"phone,omitempty"`

	PriceLevel *int `json:"priceLevel,omitempty"`

	OpeningHours *OpeningHours `json:"openingHours,omitempty"`

	Rating      *float64 `json:"rating,omitempty"`
	RatingCount *int     `json:"ratingCount,omitempty"`

	// PhotoReferences are opaque provider photo handles, in provider
	// order.
	PhotoReferences []string `json:"photoReferences,omitempty"`

	MapsURI string `json:"mapsUri,omitempty"`

	CachedAt  time.Time `json:"cachedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Fresh reports whether the row still satisfies a cache-aside hit at
// the given instant. ExpiresAt must be strictly in the future.
func (p *CachedPlace) Fresh(now time.Time) bool {
	return p.ExpiresAt.After(now)
}

// Stamp sets CachedAt to now and ExpiresAt to now + CacheTTL.
func (p *CachedPlace) Stamp(now time.Time) {
	p.CachedAt = now
	p.ExpiresAt = now.Add(CacheTTL)
}

// Summary is a search result: the same normalized shape minus the cache
// timestamps, which must never reach search callers.
type Summary struct {
	PlaceID string `json:"placeId"`

	Name         string `json:"name"`
	NameLanguage string `json:"nameLanguage,omitempty"`

	Description         string `json:"description,omitempty"`
	DescriptionLanguage string `json:"descriptionLanguage,omitempty"`

	Address  string  `json:"address,omitempty"`
	Location *LatLng `json:"location,omitempty"`

	Category                    string `json:"category,omitempty"`
	CategoryDisplayName         string `json:"categoryDisplayName,omitempty"`
	CategoryDisplayNameLanguage string `json:"categoryDisplayNameLanguage,omitempty"`

	Website string `json:"website,omitempty"`
	Phone   string `json:"phone,omitempty"`

	PriceLevel *int `json:"priceLevel,omitempty"`

	OpeningHours *OpeningHours `json:"openingHours,omitempty"`

	Rating      *float64 `json:"rating,omitempty"`
	RatingCount *int     `json:"ratingCount,omitempty"`

	PhotoReferences []string `json:"photoReferences,omitempty"`

	MapsURI string `json:"mapsUri,omitempty"`
}

// Summary strips the cache timestamps from a cached row.
func (p *CachedPlace) Summary() Summary {
	return Summary{
		PlaceID:                     p.PlaceID,
		Name:                        p.Name,
		NameLanguage:                p.NameLanguage,
		Description:                 p.Description,
		DescriptionLanguage:         p.DescriptionLanguage,
		Address:                     p.Address,
		Location:                    p.Location,
		Category:                    p.Category,
		CategoryDisplayName:         p.CategoryDisplayName,
		CategoryDisplayNameLanguage: p.CategoryDisplayNameLanguage,
		Website:                     p.Website,
		Phone:                       p.Phone,
		PriceLevel:                  p.PriceLevel,
		OpeningHours:                p.OpeningHours,
		Rating:                      p.Rating,
		RatingCount:                 p.RatingCount,
		PhotoReferences:             p.PhotoReferences,
		MapsURI:                     p.MapsURI,
	}
}
