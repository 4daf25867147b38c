package handler

import (
	"net/http"

	"cleanops_backend/internal/pricing/service"
	"cleanops_backend/internal/pricing/transport"
	"cleanops_backend/platform/httpkit"
	"cleanops_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request body"
	msgValidationFailed = "validation failed"
)

// Handler handles unauthenticated HTTP requests for instant quotes.
type Handler struct {
	val *validator.Validator
}

// New creates a new pricing handler.
func New(val *validator.Validator) *Handler {
	return &Handler{val: val}
}

// RegisterRoutes registers the public pricing routes (no auth middleware).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quote", h.Quote)
	rg.GET("/catalog", h.Catalog)
}

// Quote handles POST /api/v1/pricing/quote
func (h *Handler) Quote(c *gin.Context) {
	var req transport.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result := service.Calculate(service.Factors{
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		SquareFeet:  req.SquareFeet,
		ServiceType: service.ServiceType(req.ServiceType),
		Frequency:   service.Frequency(req.Frequency),
		AddOns:      req.AddOns,
		Location:    req.Location,
		TimeOfDay:   service.TimeOfDay(req.TimeOfDay),
		DayOfWeek:   req.DayOfWeek,
		RushService: req.RushService,
	})

	httpkit.OK(c, toQuoteResponse(result))
}

// Catalog handles GET /api/v1/pricing/catalog
func (h *Handler) Catalog(c *gin.Context) {
	catalog := service.BuildCatalog()

	resp := transport.CatalogResponse{
		BasePrice:     catalog.BasePrice,
		SqftAllowance: catalog.SqftAllowance,
	}
	for _, st := range catalog.ServiceTypes {
		resp.ServiceTypes = append(resp.ServiceTypes, transport.ServiceTypeEntry{ID: st.ID, Multiplier: st.Multiplier})
	}
	for _, f := range catalog.Frequencies {
		resp.Frequencies = append(resp.Frequencies, transport.FrequencyEntry{ID: f.ID, Discount: f.Discount})
	}
	for _, a := range catalog.AddOns {
		resp.AddOns = append(resp.AddOns, transport.AddOnEntry{ID: a.ID, Price: a.Price})
	}
	for _, l := range catalog.Locations {
		resp.Locations = append(resp.Locations, transport.LocationEntry{ID: l.ID, Multiplier: l.Multiplier})
	}

	httpkit.OK(c, resp)
}

func toQuoteResponse(result service.Result) transport.QuoteResponse {
	resp := transport.QuoteResponse{
		Subtotal:    result.Subtotal,
		AddOnsTotal: result.AddOnsTotal,
		Surcharge:   result.Surcharge,
		Discount:    result.Discount,
		Total:       result.Total,
		Savings:     result.Savings,
		Breakdown: transport.BreakdownResponse{
			Base:     result.Breakdown.Base,
			Rooms:    result.Breakdown.Rooms,
			Sqft:     result.Breakdown.Sqft,
			Location: result.Breakdown.Location,
			Timing:   result.Breakdown.Timing,
		},
	}
	for _, cp := range service.CompetitorComparison(result.Total) {
		resp.Competitors = append(resp.Competitors, transport.CompetitorPriceResponse{
			Label: cp.Label,
			Price: cp.Price,
		})
	}
	return resp
}
