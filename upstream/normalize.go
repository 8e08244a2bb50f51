package upstream

import (
	"time"

	"github.com/jonwraymond/placegate/place"
)

// normalizePlace maps a provider place payload onto the normalized
// domain shape. Cache timestamps are the caller's concern.
func normalizePlace(w *wirePlace, fallbackID string) *place.CachedPlace {
	p := &place.CachedPlace{
		PlaceID:      w.ID,
		Address:      w.FormattedAddress,
		Category:     w.PrimaryType,
		Website:      w.WebsiteURI,
		Phone:        w.NationalPhoneNumber,
		PriceLevel:   place.ParsePriceLevel(w.PriceLevel),
		Rating:       w.Rating,
		RatingCount:  w.UserRatingCount,
		MapsURI:      w.GoogleMapsURI,
		OpeningHours: normalizeOpeningHours(w.RegularOpeningHours),
	}
	if p.PlaceID == "" {
		p.PlaceID = fallbackID
	}

	if w.DisplayName != nil {
		p.Name = w.DisplayName.Text
		p.NameLanguage = w.DisplayName.LanguageCode
	}
	if w.EditorialSummary != nil {
		p.Description = w.EditorialSummary.Text
		p.DescriptionLanguage = w.EditorialSummary.LanguageCode
	}
	if w.PrimaryTypeDisplayName != nil {
		p.CategoryDisplayName = w.PrimaryTypeDisplayName.Text
		p.CategoryDisplayNameLanguage = w.PrimaryTypeDisplayName.LanguageCode
	}
	if w.Location != nil {
		p.Location = &place.LatLng{
			Latitude:  w.Location.Latitude,
			Longitude: w.Location.Longitude,
		}
	}
	for _, photo := range w.Photos {
		if photo.Name != "" {
			p.PhotoReferences = append(p.PhotoReferences, photo.Name)
		}
	}
	return p
}

func normalizeOpeningHours(w *wireOpeningHours) *place.OpeningHours {
	if w == nil {
		return nil
	}

	oh := &place.OpeningHours{
		OpenNow:             w.OpenNow,
		WeekdayDescriptions: w.WeekdayDescriptions,
		NextOpenTime:        parseWireTime(w.NextOpenTime),
		NextCloseTime:       parseWireTime(w.NextCloseTime),
	}
	for _, period := range w.Periods {
		p := place.OpeningPeriod{}
		if period.Open != nil {
			p.Open = place.TimePoint{Day: period.Open.Day, Hour: period.Open.Hour, Minute: period.Open.Minute}
		}
		if period.Close != nil {
			p.Close = place.TimePoint{Day: period.Close.Day, Hour: period.Close.Hour, Minute: period.Close.Minute}
		}
		oh.Periods = append(oh.Periods, p)
	}
	return oh
}

func parseWireTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
