package service

// Pricing tables for the quote calculator. These are the published rates for
// the booking funnel; changing them changes every quote the site hands out.

// Base price covers the first bedroom, the first bathroom, and the square
// footage allowance.
const (
	basePrice = 120.0

	// Square footage included in the base price.
	sqftAllowance = 1500
	// Above this threshold the marginal per-sqft rate carries a premium.
	sqftPremiumThreshold = 3000
	// Premium applied to the marginal rate beyond the threshold.
	sqftPremiumRate = 0.15

	bedroomCharge  = 25.0
	bathroomCharge = 20.0

	// Flat surcharge for rush service, applied to the subtotal.
	rushSurchargeRate = 0.25
)

// ServiceType identifies a cleaning service offering.
type ServiceType string

const (
	ServiceStandard         ServiceType = "standard"
	ServiceDeep             ServiceType = "deep"
	ServiceMoveInOut        ServiceType = "move_in_out"
	ServiceAirbnb           ServiceType = "airbnb"
	ServicePostConstruction ServiceType = "post_construction"
)

// serviceRates maps a service type to its per-sqft overage rate.
var serviceRates = map[ServiceType]float64{
	ServiceStandard:         0.08,
	ServiceDeep:             0.12,
	ServiceMoveInOut:        0.14,
	ServiceAirbnb:           0.07,
	ServicePostConstruction: 0.18,
}

// serviceMultipliers maps a service type to the overall price multiplier,
// applied after base + sqft + room charges are summed.
var serviceMultipliers = map[ServiceType]float64{
	ServiceStandard:         1.0,
	ServiceDeep:             1.5,
	ServiceMoveInOut:        1.8,
	ServiceAirbnb:           0.9,
	ServicePostConstruction: 2.5,
}

// Frequency identifies how often a recurring booking repeats.
type Frequency string

const (
	FrequencyOneTime  Frequency = "onetime"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// frequencyDiscounts maps a booking frequency to its discount rate.
// The discount applies to subtotal + add-ons, never to surcharges.
var frequencyDiscounts = map[Frequency]float64{
	FrequencyOneTime:  0.0,
	FrequencyWeekly:   0.20,
	FrequencyBiweekly: 0.15,
	FrequencyMonthly:  0.10,
}

// addOnPrices maps add-on identifiers to their flat price.
// Unknown identifiers are ignored rather than rejected; the funnel UI is the
// source of these strings and older cached pages may still send retired ones.
var addOnPrices = map[string]float64{
	"inside_fridge":    35.0,
	"inside_oven":      35.0,
	"inside_cabinets":  40.0,
	"interior_windows": 45.0,
	"laundry":          25.0,
	"garage":           50.0,
	"basement":         60.0,
	"pet_hair":         30.0,
}

// locationMultipliers maps normalized service-area names to price multipliers.
// Areas not listed use 1.0.
var locationMultipliers = map[string]float64{
	"downtown-austin": 1.25,
	"west-lake-hills": 1.20,
	"tarrytown":       1.18,
	"mueller":         1.15,
	"round-rock":      1.10,
	"cedar-park":      1.10,
}

// TimeOfDay identifies the requested arrival window bucket.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
)

// timingMultipliers maps a time-of-day bucket to its weekday and weekend
// multipliers. The surcharge is subtotal * (multiplier - 1).
var timingMultipliers = map[TimeOfDay]struct {
	Weekday float64
	Weekend float64
}{
	TimeMorning:   {Weekday: 1.00, Weekend: 1.15},
	TimeAfternoon: {Weekday: 1.05, Weekend: 1.18},
	TimeEvening:   {Weekday: 1.10, Weekend: 1.25},
}

// competitorMarkups are the display-only markup factors used for the
// "compare us" widget on the funnel.
var competitorMarkups = []struct {
	Label  string
	Factor float64
}{
	{Label: "national_franchise", Factor: 1.25},
	{Label: "local_premium", Factor: 1.20},
	{Label: "marketplace_average", Factor: 1.15},
}
