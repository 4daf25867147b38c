package service

import (
	"math"
	"strings"
)

// Factors are the property and service attributes a quote is computed from.
type Factors struct {
	Bedrooms    int
	Bathrooms   int
	SquareFeet  int
	ServiceType ServiceType
	Frequency   Frequency
	AddOns      []string
	Location    string
	// TimeOfDay and DayOfWeek jointly select the timing surcharge; the
	// surcharge only applies when both are present.
	TimeOfDay   TimeOfDay
	DayOfWeek   *int // 0 = Sunday .. 6 = Saturday
	RushService bool
}

// Breakdown itemizes the quote for display. All values are rounded to cents;
// internal math is done unrounded to avoid compounding error.
type Breakdown struct {
	Base     float64 `json:"base"`
	Rooms    float64 `json:"rooms"`
	Sqft     float64 `json:"sqft"`
	Location float64 `json:"location"`
	Timing   float64 `json:"timing"`
}

// Result is a priced quote.
type Result struct {
	Subtotal    float64   `json:"subtotal"`
	AddOnsTotal float64   `json:"addOnsTotal"`
	Surcharge   float64   `json:"surcharge"`
	Discount    float64   `json:"discount"`
	Total       float64   `json:"total"`
	Savings     float64   `json:"savings"`
	Breakdown   Breakdown `json:"breakdown"`
}

// roundCents rounds a float to the nearest cent.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// normalizeLocation lowercases a free-form area name and replaces spaces with
// hyphens so it matches the locationMultipliers table.
func normalizeLocation(location string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(location)), " ", "-")
}

// sqftOverageCharge computes the two-tier progressive square footage charge.
// The premium applies only to the portion beyond the threshold, not to the
// whole overage.
func sqftOverageCharge(squareFeet int, rate float64) float64 {
	if squareFeet <= sqftAllowance {
		return 0
	}
	if squareFeet <= sqftPremiumThreshold {
		return float64(squareFeet-sqftAllowance) * rate
	}
	standard := float64(sqftPremiumThreshold-sqftAllowance) * rate
	premium := float64(squareFeet-sqftPremiumThreshold) * rate * (1 + sqftPremiumRate)
	return standard + premium
}

// roomCharge computes the flat charge for bedrooms and bathrooms beyond the
// first of each, which the base price already covers.
func roomCharge(bedrooms, bathrooms int) float64 {
	charge := 0.0
	if bedrooms > 1 {
		charge += float64(bedrooms-1) * bedroomCharge
	}
	if bathrooms > 1 {
		charge += float64(bathrooms-1) * bathroomCharge
	}
	return charge
}

// serviceRate returns the per-sqft rate for a service type, falling back to
// the standard rate for unrecognized values. Unrecognized enums degrade to
// defaults rather than erroring; the funnel favors availability.
func serviceRate(serviceType ServiceType) float64 {
	if rate, ok := serviceRates[serviceType]; ok {
		return rate
	}
	return serviceRates[ServiceStandard]
}

// serviceMultiplier returns the overall multiplier for a service type,
// falling back to 1.0 for unrecognized values.
func serviceMultiplier(serviceType ServiceType) float64 {
	if m, ok := serviceMultipliers[serviceType]; ok {
		return m
	}
	return 1.0
}

// timingSurcharge computes the additive peak-timing surcharge against the
// post-location subtotal. Both timeOfDay and dayOfWeek must be present.
func timingSurcharge(subtotal float64, timeOfDay TimeOfDay, dayOfWeek *int) float64 {
	if dayOfWeek == nil || *dayOfWeek < 0 || *dayOfWeek > 6 {
		return 0
	}
	m, ok := timingMultipliers[timeOfDay]
	if !ok {
		return 0
	}
	factor := m.Weekday
	if *dayOfWeek == 0 || *dayOfWeek == 6 {
		factor = m.Weekend
	}
	return subtotal * (factor - 1)
}

// addOnsTotal sums the flat prices of recognized add-on identifiers.
// Unknown identifiers contribute zero.
func addOnsTotal(addOns []string) float64 {
	total := 0.0
	for _, id := range addOns {
		total += addOnPrices[id]
	}
	return total
}

// Calculate computes a priced quote from property and service attributes.
// Pure and deterministic: no I/O, no clock, no state. The charge order is
// load-bearing: base + sqft + rooms are summed before the service multiplier,
// the location multiplier applies after it, the timing surcharge is computed
// against the post-location subtotal, and the frequency discount applies to
// subtotal + add-ons only.
func Calculate(factors Factors) Result {
	rate := serviceRate(factors.ServiceType)
	sqftCharge := sqftOverageCharge(factors.SquareFeet, rate)
	rooms := roomCharge(factors.Bedrooms, factors.Bathrooms)

	preMultiplier := basePrice + sqftCharge + rooms
	serviced := preMultiplier * serviceMultiplier(factors.ServiceType)

	locMultiplier := 1.0
	if m, ok := locationMultipliers[normalizeLocation(factors.Location)]; ok {
		locMultiplier = m
	}
	subtotal := serviced * locMultiplier

	surcharge := timingSurcharge(subtotal, factors.TimeOfDay, factors.DayOfWeek)
	if factors.RushService {
		surcharge += subtotal * rushSurchargeRate
	}

	addOns := addOnsTotal(factors.AddOns)
	discount := (subtotal + addOns) * frequencyDiscounts[factors.Frequency]

	preDiscount := subtotal + addOns + surcharge
	total := math.Round(preDiscount - discount)
	savings := math.Round(preDiscount - total)

	return Result{
		Subtotal:    roundCents(subtotal),
		AddOnsTotal: roundCents(addOns),
		Surcharge:   roundCents(surcharge),
		Discount:    roundCents(discount),
		Total:       total,
		Savings:     savings,
		Breakdown: Breakdown{
			Base:     basePrice,
			Rooms:    roundCents(rooms),
			Sqft:     roundCents(sqftCharge),
			Location: roundCents(subtotal - serviced),
			Timing:   roundCents(surcharge),
		},
	}
}

// CompetitorPrice is a display-only comparison entry.
type CompetitorPrice struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// CompetitorComparison multiplies the quoted total by fixed competitor markup
// factors for the funnel's comparison widget. Display only.
func CompetitorComparison(total float64) []CompetitorPrice {
	prices := make([]CompetitorPrice, 0, len(competitorMarkups))
	for _, markup := range competitorMarkups {
		prices = append(prices, CompetitorPrice{
			Label: markup.Label,
			Price: math.Round(total * markup.Factor),
		})
	}
	return prices
}
