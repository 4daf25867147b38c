// Package pricing provides the instant-quote domain module.
package pricing

import (
	apphttp "cleanops_backend/internal/http"
	"cleanops_backend/internal/pricing/handler"
	"cleanops_backend/platform/validator"
)

// Module represents the pricing domain module
type Module struct {
	handler *handler.Handler
}

// NewModule creates a new pricing module with all dependencies wired
func NewModule(val *validator.Validator) *Module {
	return &Module{handler: handler.New(val)}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "pricing"
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public routes — rate limited, no auth middleware
	pricing := ctx.V1.Group("/pricing")
	pricing.Use(ctx.FunnelRateLimiter.RateLimit())
	m.handler.RegisterRoutes(pricing)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
