package upstream

// Wire types for the provider's v1 JSON surface. Only the fields named
// in the details field mask are decoded.

type wireLocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

type wireLatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type wireTimePoint struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

type wirePeriod struct {
	Open  *wireTimePoint `json:"open"`
	Close *wireTimePoint `json:"close"`
}

type wireOpeningHours struct {
	OpenNow             *bool        `json:"openNow"`
	Periods             []wirePeriod `json:"periods"`
	WeekdayDescriptions []string     `json:"weekdayDescriptions"`
	NextOpenTime        string       `json:"nextOpenTime"`
	NextCloseTime       string       `json:"nextCloseTime"`
}

type wirePhoto struct {
	// Name is the opaque photo handle used against the media endpoint.
	Name string `json:"name"`
}

type wirePlace struct {
	ID                     string             `json:"id"`
	DisplayName            *wireLocalizedText `json:"displayName"`
	EditorialSummary       *wireLocalizedText `json:"editorialSummary"`
	FormattedAddress       string             `json:"formattedAddress"`
	Location               *wireLatLng        `json:"location"`
	PrimaryType            string             `json:"primaryType"`
	PrimaryTypeDisplayName *wireLocalizedText `json:"primaryTypeDisplayName"`
	WebsiteURI             string             `json:"websiteUri"`
	NationalPhoneNumber    string             `json:"nationalPhoneNumber"`
	PriceLevel             string             `json:"priceLevel"`
	RegularOpeningHours    *wireOpeningHours  `json:"regularOpeningHours"`
	Rating                 *float64           `json:"rating"`
	UserRatingCount        *int               `json:"userRatingCount"`
	Photos                 []wirePhoto        `json:"photos"`
	GoogleMapsURI          string             `json:"googleMapsUri"`
}

type wireSearchRequest struct {
	TextQuery    string            `json:"textQuery"`
	LanguageCode string            `json:"languageCode,omitempty"`
	LocationBias *wireLocationBias `json:"locationBias,omitempty"`
}

type wireLocationBias struct {
	Circle wireCircle `json:"circle"`
}

type wireCircle struct {
	Center wireLatLng `json:"center"`
	Radius float64    `json:"radius"`
}

type wireSearchResponse struct {
	Places []wirePlace `json:"places"`
}

// wireErrorEnvelope is the provider's error payload.
type wireErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
