// Package dispatch provides the worker directory and scheduling domain module.
package dispatch

import (
	apphttp "cleanops_backend/internal/http"
	"cleanops_backend/internal/dispatch/handler"
	"cleanops_backend/internal/dispatch/repository"
	"cleanops_backend/internal/dispatch/service"
	"cleanops_backend/platform/events"
	"cleanops_backend/platform/logger"
	"cleanops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the dispatch domain module
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates a new dispatch module with all dependencies wired
func NewModule(pool *pgxpool.Pool, eventBus *events.InMemoryBus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "dispatch"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	dispatch := ctx.Admin.Group("/dispatch")
	m.handler.RegisterRoutes(dispatch)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
