package place

// priceLevels maps provider price-level tokens to the 0-4 scale.
var priceLevels = map[string]int{
	"PRICE_LEVEL_FREE":           0,
	"PRICE_LEVEL_INEXPENSIVE":    1,
	"PRICE_LEVEL_MODERATE":       2,
	"PRICE_LEVEL_EXPENSIVE":      3,
	"PRICE_LEVEL_VERY_EXPENSIVE": 4,
	// Bare tokens, accepted for older provider payloads.
	"FREE":           0,
	"INEXPENSIVE":    1,
	"MODERATE":       2,
	"EXPENSIVE":      3,
	"VERY_EXPENSIVE": 4,
}

// ParsePriceLevel maps a provider price-level token to an integer 0-4.
// Unknown or absent tokens map to nil; the function is total.
func ParsePriceLevel(token string) *int {
	if v, ok := priceLevels[token]; ok {
		return &v
	}
	return nil
}
