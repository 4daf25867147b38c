// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"cleanops_backend/platform/events"
	"cleanops_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Booking Domain Events
// =============================================================================

// BookingCreated is published when a booking request clears intake and is persisted.
type BookingCreated struct {
	BaseEvent
	BookingID     uuid.UUID `json:"bookingId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	ServiceType   string    `json:"serviceType"`
	ServiceDate   string    `json:"serviceDate"`
	ServiceTime   string    `json:"serviceTime"`
	Address       string    `json:"address"`
	TotalPrice    float64   `json:"totalPrice"`
}

func (e BookingCreated) EventName() string { return "bookings.booking.created" }

// BookingAssigned is published when the dispatcher reserves a worker for a booking.
type BookingAssigned struct {
	BaseEvent
	BookingID     uuid.UUID `json:"bookingId"`
	WorkerID      string    `json:"workerId"`
	WorkerName    string    `json:"workerName"`
	ServiceType   string    `json:"serviceType"`
	ServiceDate   string    `json:"serviceDate"`
	ServiceTime   string    `json:"serviceTime"`
	Address       string    `json:"address"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	TotalPrice    float64   `json:"totalPrice"`
}

func (e BookingAssigned) EventName() string { return "dispatch.booking.assigned" }

// BookingAssignmentFailed is published when no eligible worker could take a booking.
// Alternatives carries up to three skill-matching worker IDs for manual dispatch.
type BookingAssignmentFailed struct {
	BaseEvent
	BookingID    uuid.UUID `json:"bookingId"`
	ServiceType  string    `json:"serviceType"`
	ServiceDate  string    `json:"serviceDate"`
	ServiceTime  string    `json:"serviceTime"`
	Zone         string    `json:"zone,omitempty"`
	Reason       string    `json:"reason"`
	Alternatives []string  `json:"alternatives,omitempty"`
}

func (e BookingAssignmentFailed) EventName() string { return "dispatch.booking.assignment_failed" }

// BookingReassigned is published when a dispatcher moves a booking to another worker.
type BookingReassigned struct {
	BaseEvent
	BookingID    uuid.UUID `json:"bookingId"`
	FromWorkerID string    `json:"fromWorkerId,omitempty"`
	ToWorkerID   string    `json:"toWorkerId"`
	ToWorkerName string    `json:"toWorkerName"`
	ServiceDate  string    `json:"serviceDate"`
}

func (e BookingReassigned) EventName() string { return "dispatch.booking.reassigned" }

// BookingCancelled is published when a booking is cancelled and its
// reservation (if any) released.
type BookingCancelled struct {
	BaseEvent
	BookingID   uuid.UUID `json:"bookingId"`
	WorkerID    string    `json:"workerId,omitempty"`
	ServiceDate string    `json:"serviceDate"`
}

func (e BookingCancelled) EventName() string { return "bookings.booking.cancelled" }

// BookingReminderDue is published by the scheduler worker when a booking
// reminder should be sent.
type BookingReminderDue struct {
	BaseEvent
	BookingID     uuid.UUID `json:"bookingId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	WorkerName    string    `json:"workerName,omitempty"`
	ServiceDate   string    `json:"serviceDate"`
	ServiceTime   string    `json:"serviceTime"`
	Address       string    `json:"address"`
}

func (e BookingReminderDue) EventName() string { return "bookings.booking.reminder_due" }
