package services

import (
	"fmt"
	"math"

	"presentation-service/internal/models"
)

// DefaultPricingTiers returns the configured tier list, ordered
// ascending by slide capacity.
func DefaultPricingTiers() []models.PricingTier {
	return []models.PricingTier{
		{Name: "Single", SlidesCount: 1, Price: 1.0, Currency: "USD", Description: "For a single slide"},
		{Name: "Basic", SlidesCount: 5, Price: 4.50, Currency: "USD", Description: "For 5 slides (10% discount)"},
		{Name: "Standard", SlidesCount: 10, Price: 8.50, Currency: "USD", Description: "For 10 slides (15% discount)"},
		{Name: "Premium", SlidesCount: 20, Price: 16.00, Currency: "USD", Description: "For 20 slides (20% discount)"},
		{Name: "Enterprise", SlidesCount: 50, Price: 35.00, Currency: "USD", Description: "For 50 slides (30% discount)"},
	}
}

// DefaultPricePerSlide is the flat per-slide rate used when no tier
// covers the requested count.
const DefaultPricePerSlide = 1.0

// PricingService computes price quotes against a fixed tier list. The
// list is set once at construction and only read afterwards, so the
// service is safe for concurrent use.
type PricingService struct {
	tiers         []models.PricingTier
	pricePerSlide float64
	currency      string
}

// NewPricingService validates that tier capacities are strictly
// increasing and returns a calculator over them.
func NewPricingService(tiers []models.PricingTier, pricePerSlide float64) (*PricingService, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("at least one pricing tier is required")
	}
	for i := 1; i < len(tiers); i++ {
		if tiers[i].SlidesCount <= tiers[i-1].SlidesCount {
			return nil, fmt.Errorf("tier capacities must be strictly increasing: %s (%d) after %s (%d)",
				tiers[i].Name, tiers[i].SlidesCount, tiers[i-1].Name, tiers[i-1].SlidesCount)
		}
	}
	if pricePerSlide <= 0 {
		return nil, fmt.Errorf("per-slide price must be positive")
	}

	return &PricingService{
		tiers:         tiers,
		pricePerSlide: pricePerSlide,
		currency:      tiers[0].Currency,
	}, nil
}

// CalculatePrice quotes the given slide count. Tiers are ordered
// ascending, so the first tier covering the count is the cheapest one.
// The caller guarantees numSlides >= 1.
//
// Counts above the largest tier fall back to the undiscounted flat
// rate, which prices 51 slides higher per slide than 50. Preserved
// behavior of the pricing table as configured.
func (s *PricingService) CalculatePrice(numSlides int) models.PriceQuote {
	var matched *models.PricingTier
	for i := range s.tiers {
		if s.tiers[i].SlidesCount >= numSlides {
			matched = &s.tiers[i]
			break
		}
	}

	if matched == nil {
		return models.PriceQuote{
			NumSlides:     numSlides,
			Tier:          "Custom",
			Price:         float64(numSlides) * s.pricePerSlide,
			Currency:      s.currency,
			PricePerSlide: s.pricePerSlide,
			Discount:      0,
		}
	}

	flatPrice := float64(matched.SlidesCount) * s.pricePerSlide
	discount := (flatPrice - matched.Price) / flatPrice * 100

	return models.PriceQuote{
		NumSlides:     numSlides,
		Tier:          matched.Name,
		TierSlides:    matched.SlidesCount,
		Price:         matched.Price,
		Currency:      matched.Currency,
		PricePerSlide: roundTo(matched.Price/float64(matched.SlidesCount), 2),
		Discount:      roundTo(discount, 1),
		Description:   matched.Description,
	}
}

// GetAllTiers lists every tier with its effective per-slide price.
func (s *PricingService) GetAllTiers() []models.TierSummary {
	summaries := make([]models.TierSummary, 0, len(s.tiers))
	for _, tier := range s.tiers {
		summaries = append(summaries, models.TierSummary{
			PricingTier:   tier,
			PricePerSlide: roundTo(tier.Price/float64(tier.SlidesCount), 2),
		})
	}
	return summaries
}

// FlatRate returns the per-slide rate outside any tier.
func (s *PricingService) FlatRate() float64 {
	return s.pricePerSlide
}

// Currency returns the currency all tiers are quoted in.
func (s *PricingService) Currency() string {
	return s.currency
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
