package models

// PricingTier is one named pricing bracket. The configured list is
// ordered ascending by SlidesCount.
type PricingTier struct {
	Name        string  `json:"name"`
	SlidesCount int     `json:"slides_count"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

// TierSummary is a PricingTier plus its derived effective per-slide price.
type TierSummary struct {
	PricingTier
	PricePerSlide float64 `json:"price_per_slide"`
}

// PriceQuote is the computed price for a requested slide count. For
// counts above the largest tier the quote falls back to the flat
// per-slide rate with Tier set to "Custom" and no discount.
type PriceQuote struct {
	NumSlides     int     `json:"num_slides"`
	Tier          string  `json:"tier"`
	TierSlides    int     `json:"tier_slides,omitempty"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	PricePerSlide float64 `json:"price_per_slide"`
	Discount      float64 `json:"discount"`
	Description   string  `json:"description,omitempty"`
}
