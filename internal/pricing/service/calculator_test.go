package service

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

func TestCalculateBasePropertyAtAllowanceCostsBasePrice(t *testing.T) {
	result := Calculate(Factors{
		Bedrooms:    1,
		Bathrooms:   1,
		SquareFeet:  1500,
		ServiceType: ServiceStandard,
		Frequency:   FrequencyOneTime,
	})

	if result.Total != 120 {
		t.Fatalf("expected base total 120, got %v", result.Total)
	}
	if result.Discount != 0 {
		t.Fatalf("expected no discount for one-time frequency, got %v", result.Discount)
	}
	if result.Surcharge != 0 {
		t.Fatalf("expected no surcharge without timing factors, got %v", result.Surcharge)
	}
}

func TestCalculateWeeklyDiscountIsTwentyPercent(t *testing.T) {
	onetime := Calculate(Factors{
		Bedrooms: 1, Bathrooms: 1, SquareFeet: 1500,
		ServiceType: ServiceStandard, Frequency: FrequencyOneTime,
	})
	weekly := Calculate(Factors{
		Bedrooms: 1, Bathrooms: 1, SquareFeet: 1500,
		ServiceType: ServiceStandard, Frequency: FrequencyWeekly,
	})

	expected := math.Round(onetime.Total - 0.20*(onetime.Subtotal+onetime.AddOnsTotal))
	if weekly.Total != expected {
		t.Fatalf("expected weekly total %v, got %v", expected, weekly.Total)
	}
	if weekly.Savings != math.Round(weekly.Discount) {
		t.Fatalf("expected savings %v to equal rounded discount %v", weekly.Savings, weekly.Discount)
	}
}

func TestCalculateRoomChargesBeyondFirst(t *testing.T) {
	result := Calculate(Factors{
		Bedrooms: 3, Bathrooms: 2, SquareFeet: 1500,
		ServiceType: ServiceStandard, Frequency: FrequencyOneTime,
	})

	// 2 extra bedrooms at $25, 1 extra bathroom at $20.
	if result.Total != 190 {
		t.Fatalf("expected 3BR/2BA standard total 190, got %v", result.Total)
	}
	if !almostEqual(result.Breakdown.Rooms, 70) {
		t.Fatalf("expected room charge 70, got %v", result.Breakdown.Rooms)
	}
}

func TestCalculateSqftPremiumAppliesOnlyToExcessPortion(t *testing.T) {
	result := Calculate(Factors{
		Bedrooms: 1, Bathrooms: 1, SquareFeet: 3500,
		ServiceType: ServiceDeep, Frequency: FrequencyOneTime,
	})

	// 1500 sqft at 0.12 plus 500 sqft at 0.12*1.15, then the 1.5 deep multiplier.
	sqftCharge := 1500*0.12 + 500*0.12*1.15
	expected := math.Round((120 + sqftCharge) * 1.5)
	if result.Total != expected {
		t.Fatalf("expected deep 3500sqft total %v, got %v", expected, result.Total)
	}
	if !almostEqual(result.Breakdown.Sqft, sqftCharge) {
		t.Fatalf("expected sqft charge %v, got %v", sqftCharge, result.Breakdown.Sqft)
	}

	// The second tier is a marginal premium, not a cliff.
	atThreshold := Calculate(Factors{
		Bedrooms: 1, Bathrooms: 1, SquareFeet: 3000,
		ServiceType: ServiceDeep, Frequency: FrequencyOneTime,
	})
	justOver := Calculate(Factors{
		Bedrooms: 1, Bathrooms: 1, SquareFeet: 3001,
		ServiceType: ServiceDeep, Frequency: FrequencyOneTime,
	})
	if justOver.Subtotal-atThreshold.Subtotal > 1 {
		t.Fatalf("expected marginal premium, got cliff: %v -> %v", atThreshold.Subtotal, justOver.Subtotal)
	}
}

func TestCalculateTotalMonotonicInSize(t *testing.T) {
	prev := -1.0
	for sqft := 1000; sqft <= 4000; sqft += 250 {
		result := Calculate(Factors{
			Bedrooms: 2, Bathrooms: 2, SquareFeet: sqft,
			ServiceType: ServiceStandard, Frequency: FrequencyOneTime,
		})
		if result.Total < prev {
			t.Fatalf("total decreased at %d sqft: %v -> %v", sqft, prev, result.Total)
		}
		prev = result.Total
	}

	prev = -1.0
	for bedrooms := 0; bedrooms <= 6; bedrooms++ {
		result := Calculate(Factors{
			Bedrooms: bedrooms, Bathrooms: 1, SquareFeet: 1500,
			ServiceType: ServiceDeep, Frequency: FrequencyMonthly,
		})
		if result.Total < prev {
			t.Fatalf("total decreased at %d bedrooms: %v -> %v", bedrooms, prev, result.Total)
		}
		prev = result.Total
	}
}

func TestCalculateDiscountNeverExceedsDiscountableBase(t *testing.T) {
	day := 6
	result := Calculate(Factors{
		Bedrooms: 4, Bathrooms: 3, SquareFeet: 2800,
		ServiceType: ServiceMoveInOut,
		Frequency:   FrequencyWeekly,
		AddOns:      []string{"garage", "inside_oven"},
		Location:    "Downtown Austin",
		TimeOfDay:   TimeEvening,
		DayOfWeek:   &day,
		RushService: true,
	})

	if result.Total > result.Subtotal+result.AddOnsTotal+result.Surcharge+0.5 {
		t.Fatalf("total %v exceeds pre-discount sum", result.Total)
	}
	if result.Discount < 0 {
		t.Fatalf("negative discount %v", result.Discount)
	}
	// Surcharge is never discounted: discount derives from subtotal+addOns only.
	expectedDiscount := 0.20 * (result.Subtotal + result.AddOnsTotal)
	if math.Abs(result.Discount-expectedDiscount) > 0.02 {
		t.Fatalf("expected discount %v from subtotal+addOns only, got %v", expectedDiscount, result.Discount)
	}
}

func TestCalculateBreakdownReconcilesPreMultiplierComponents(t *testing.T) {
	result := Calculate(Factors{
		Bedrooms: 3, Bathrooms: 2, SquareFeet: 2200,
		ServiceType: ServiceDeep, Frequency: FrequencyBiweekly,
		Location: "round rock",
	})

	preMultiplier := result.Breakdown.Base + result.Breakdown.Rooms + result.Breakdown.Sqft
	expected := 120.0 + (2*25.0 + 20.0) + 700*0.12
	if !almostEqual(preMultiplier, expected) {
		t.Fatalf("expected pre-multiplier components %v, got %v", expected, preMultiplier)
	}
}

func TestCalculateLocationMultiplierAppliesAfterServiceMultiplier(t *testing.T) {
	plain := Calculate(Factors{
		Bedrooms: 2, Bathrooms: 1, SquareFeet: 1800,
		ServiceType: ServiceDeep, Frequency: FrequencyOneTime,
	})
	downtown := Calculate(Factors{
		Bedrooms: 2, Bathrooms: 1, SquareFeet: 1800,
		ServiceType: ServiceDeep, Frequency: FrequencyOneTime,
		Location: "Downtown Austin",
	})

	if !almostEqual(downtown.Subtotal, roundCents(plain.Subtotal*1.25)) {
		t.Fatalf("expected downtown subtotal %v, got %v", plain.Subtotal*1.25, downtown.Subtotal)
	}
	if !almostEqual(downtown.Breakdown.Location, roundCents(downtown.Subtotal-plain.Subtotal)) {
		t.Fatalf("expected location uplift %v, got %v", downtown.Subtotal-plain.Subtotal, downtown.Breakdown.Location)
	}
}

func TestCalculateTimingSurchargeRequiresBothFactors(t *testing.T) {
	saturday := 6
	withBoth := Calculate(Factors{
		Bedrooms: 1, Bathrooms: 1, SquareFeet: 1500,
		ServiceType: ServiceStandard, Frequency: FrequencyOneTime,
		TimeOfDay: TimeEvening, DayOfWeek: &saturday,
	})
	if !almostEqual(withBoth.Surcharge, 120*0.25) {
		t.Fatalf("expected weekend evening surcharge 30, got %v", withBoth.Surcharge)
	}

	missingDay := Calculate(Factors{
		Bedrooms: 1, Bathrooms: 1, SquareFeet: 1500,
		ServiceType: ServiceStandard, Frequency: FrequencyOneTime,
		TimeOfDay: TimeEvening,
	})
	if missingDay.Surcharge != 0 {
		t.Fatalf("expected no surcharge without day of week, got %v", missingDay.Surcharge)
	}
}

func TestCalculateUnrecognizedEnumsFallBackSilently(t *testing.T) {
	standard := Calculate(Factors{
		Bedrooms: 2, Bathrooms: 2, SquareFeet: 2000,
		ServiceType: ServiceStandard, Frequency: FrequencyOneTime,
	})
	unknown := Calculate(Factors{
		Bedrooms: 2, Bathrooms: 2, SquareFeet: 2000,
		ServiceType: ServiceType("carpet_shampoo"), Frequency: Frequency("fortnightly"),
		AddOns:   []string{"chimney_sweep"},
		Location: "atlantis",
	})

	if unknown.Total != standard.Total {
		t.Fatalf("expected unknown enums to price as standard one-time, got %v vs %v", unknown.Total, standard.Total)
	}
	if unknown.AddOnsTotal != 0 {
		t.Fatalf("expected unknown add-on to contribute 0, got %v", unknown.AddOnsTotal)
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	day := 3
	factors := Factors{
		Bedrooms: 3, Bathrooms: 2, SquareFeet: 2400,
		ServiceType: ServiceAirbnb, Frequency: FrequencyBiweekly,
		AddOns: []string{"laundry", "interior_windows"}, Location: "mueller",
		TimeOfDay: TimeAfternoon, DayOfWeek: &day,
	}

	first := Calculate(factors)
	second := Calculate(factors)
	if first != second {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestCompetitorComparisonUsesFixedMarkups(t *testing.T) {
	prices := CompetitorComparison(200)
	if len(prices) != 3 {
		t.Fatalf("expected 3 competitor entries, got %d", len(prices))
	}
	if prices[0].Price != 250 || prices[1].Price != 240 || prices[2].Price != 230 {
		t.Fatalf("unexpected competitor prices: %+v", prices)
	}
}
