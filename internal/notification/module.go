// Package notification provides event handlers for sending notifications in
// response to domain events. Domain modules publish events and never talk to
// email providers or templates directly.
package notification

import (
	"context"

	"cleanops_backend/internal/email"
	"cleanops_backend/internal/events"
	"cleanops_backend/platform/config"
	"cleanops_backend/platform/logger"
)

// Module handles all notification-related event subscriptions.
type Module struct {
	sender email.Sender
	cfg    config.EmailConfig
	log    *logger.Logger
}

// New creates the notification module.
func New(sender email.Sender, cfg config.EmailConfig, log *logger.Logger) *Module {
	return &Module{
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// Subscribe registers every event handler on the bus.
func (m *Module) Subscribe(bus events.Bus) {
	bus.Subscribe(events.BookingAssigned{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, e events.Event) error {
			return m.handleBookingAssigned(ctx, e.(events.BookingAssigned))
		}))
	bus.Subscribe(events.BookingAssignmentFailed{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, e events.Event) error {
			return m.handleAssignmentFailed(ctx, e.(events.BookingAssignmentFailed))
		}))
	bus.Subscribe(events.BookingReminderDue{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, e events.Event) error {
			return m.handleReminderDue(ctx, e.(events.BookingReminderDue))
		}))
}

func (m *Module) handleBookingAssigned(ctx context.Context, e events.BookingAssigned) error {
	if e.CustomerEmail == "" {
		return nil
	}

	err := m.sender.SendBookingConfirmationEmail(ctx,
		e.CustomerEmail, e.CustomerName, e.WorkerName,
		e.ServiceDate, e.ServiceTime, e.Address, e.TotalPrice)
	if err != nil {
		m.log.Error("failed to send booking confirmation",
			"booking_id", e.BookingID.String(), "error", err.Error())
		return err
	}
	return nil
}

func (m *Module) handleAssignmentFailed(ctx context.Context, e events.BookingAssignmentFailed) error {
	to := m.cfg.GetDispatcherAddress()
	if to == "" {
		m.log.Warn("no dispatcher address configured, dropping unassigned-booking alert",
			"booking_id", e.BookingID.String())
		return nil
	}

	err := m.sender.SendDispatcherAlertEmail(ctx,
		to, e.BookingID.String(), e.ServiceType,
		e.ServiceDate, e.ServiceTime, e.Reason, e.Alternatives)
	if err != nil {
		m.log.Error("failed to send dispatcher alert",
			"booking_id", e.BookingID.String(), "error", err.Error())
		return err
	}
	return nil
}

func (m *Module) handleReminderDue(ctx context.Context, e events.BookingReminderDue) error {
	if e.CustomerEmail == "" {
		return nil
	}

	err := m.sender.SendBookingReminderEmail(ctx,
		e.CustomerEmail, e.CustomerName, e.WorkerName,
		e.ServiceDate, e.ServiceTime, e.Address)
	if err != nil {
		m.log.Error("failed to send booking reminder",
			"booking_id", e.BookingID.String(), "error", err.Error())
		return err
	}
	return nil
}
