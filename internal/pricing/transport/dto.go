package transport

// ── Requests ──────────────────────────────────────────────────────────────────

// QuoteRequest is the request body for the public instant-quote endpoint.
// Enum-ish fields are validated loosely on purpose: unrecognized values price
// as the standard defaults instead of bouncing the visitor out of the funnel.
type QuoteRequest struct {
	Bedrooms    int      `json:"bedrooms" validate:"min=0,max=20"`
	Bathrooms   int      `json:"bathrooms" validate:"min=0,max=20"`
	SquareFeet  int      `json:"squareFeet" validate:"required,min=100,max=50000"`
	ServiceType string   `json:"serviceType" validate:"required,max=50"`
	Frequency   string   `json:"frequency" validate:"required,max=50"`
	AddOns      []string `json:"addOns" validate:"omitempty,max=20,dive,max=50"`
	Location    string   `json:"location" validate:"omitempty,max=100"`
	TimeOfDay   string   `json:"timeOfDay" validate:"omitempty,max=20"`
	DayOfWeek   *int     `json:"dayOfWeek" validate:"omitempty,min=0,max=6"`
	RushService bool     `json:"rushService"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// BreakdownResponse itemizes the quote for the funnel's price widget.
type BreakdownResponse struct {
	Base     float64 `json:"base"`
	Rooms    float64 `json:"rooms"`
	Sqft     float64 `json:"sqft"`
	Location float64 `json:"location"`
	Timing   float64 `json:"timing"`
}

// CompetitorPriceResponse is a display-only comparison entry.
type CompetitorPriceResponse struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// QuoteResponse is the priced quote returned to the funnel.
type QuoteResponse struct {
	Subtotal    float64                   `json:"subtotal"`
	AddOnsTotal float64                   `json:"addOnsTotal"`
	Surcharge   float64                   `json:"surcharge"`
	Discount    float64                   `json:"discount"`
	Total       float64                   `json:"total"`
	Savings     float64                   `json:"savings"`
	Breakdown   BreakdownResponse         `json:"breakdown"`
	Competitors []CompetitorPriceResponse `json:"competitors"`
}

// CatalogResponse publishes the rate tables the funnel renders its option
// pickers from. Prices here must match what Calculate charges.
type CatalogResponse struct {
	BasePrice     float64            `json:"basePrice"`
	SqftAllowance int                `json:"sqftAllowance"`
	ServiceTypes  []ServiceTypeEntry `json:"serviceTypes"`
	Frequencies   []FrequencyEntry   `json:"frequencies"`
	AddOns        []AddOnEntry       `json:"addOns"`
	Locations     []LocationEntry    `json:"locations"`
}

// ServiceTypeEntry describes one bookable service offering.
type ServiceTypeEntry struct {
	ID         string  `json:"id"`
	Multiplier float64 `json:"multiplier"`
}

// FrequencyEntry describes one recurrence option and its discount rate.
type FrequencyEntry struct {
	ID       string  `json:"id"`
	Discount float64 `json:"discount"`
}

// AddOnEntry describes one flat-priced add-on.
type AddOnEntry struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

// LocationEntry describes one service area and its price multiplier.
type LocationEntry struct {
	ID         string  `json:"id"`
	Multiplier float64 `json:"multiplier"`
}
