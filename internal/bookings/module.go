// Package bookings provides the booking intake and lifecycle domain module.
package bookings

import (
	"context"

	"cleanops_backend/internal/bookings/handler"
	"cleanops_backend/internal/bookings/repository"
	"cleanops_backend/internal/bookings/service"
	dispatchsvc "cleanops_backend/internal/dispatch/service"
	"cleanops_backend/internal/events"
	apphttp "cleanops_backend/internal/http"
	"cleanops_backend/platform/logger"
	"cleanops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module represents the bookings domain module
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	service       *service.Service
}

// NewModule creates a new bookings module with all dependencies wired
func NewModule(pool *pgxpool.Pool, dispatcher *dispatchsvc.Service, eventBus *events.InMemoryBus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, dispatcher, log)
	svc.SetEventBus(eventBus)
	h := handler.New(svc, val)
	ph := handler.NewPublicHandler(svc, val)

	m := &Module{
		handler:       h,
		publicHandler: ph,
		service:       svc,
	}
	m.subscribe(eventBus)
	return m
}

// subscribe keeps booking rows in sync with dispatcher-driven reassignments.
func (m *Module) subscribe(bus events.Bus) {
	bus.Subscribe(events.BookingReassigned{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, e events.Event) error {
			reassigned := e.(events.BookingReassigned)
			return m.service.MarkReassigned(ctx, reassigned.BookingID, reassigned.ToWorkerID, reassigned.ToWorkerName)
		}))
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "bookings"
}

// Service returns the service layer for external use
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public route — rate limited, no auth middleware
	public := ctx.V1.Group("/bookings")
	public.Use(ctx.FunnelRateLimiter.RateLimit())
	m.publicHandler.RegisterRoutes(public)

	admin := ctx.Admin.Group("/bookings")
	m.handler.RegisterRoutes(admin)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
