package service

import (
	"context"
	"time"

	"cleanops_backend/internal/bookings/repository"
	"cleanops_backend/internal/bookings/transport"
	dispatchsvc "cleanops_backend/internal/dispatch/service"
	"cleanops_backend/internal/events"
	pricingsvc "cleanops_backend/internal/pricing/service"
	"cleanops_backend/platform/apperr"
	"cleanops_backend/platform/logger"
	"cleanops_backend/platform/phone"
	"cleanops_backend/platform/sanitize"

	"github.com/google/uuid"
)

// Dispatcher is the slice of the dispatch service bookings depend on.
type Dispatcher interface {
	AssignBooking(ctx context.Context, job dispatchsvc.Job) (dispatchsvc.Assignment, error)
	ReleaseBooking(ctx context.Context, bookingID uuid.UUID, date string) (string, error)
}

// ReminderScheduler enqueues a service reminder for an upcoming booking.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, bookingID uuid.UUID, serviceDate, serviceTime string) error
}

// Store is the persistence surface the service needs.
type Store interface {
	Create(ctx context.Context, b *repository.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Booking, error)
	List(ctx context.Context, params repository.ListParams) (*repository.ListResult, error)
	UpdateAssignment(ctx context.Context, id uuid.UUID, workerID, workerName string) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

// Service implements booking intake and lifecycle.
type Service struct {
	repo       Store
	dispatcher Dispatcher
	reminders  ReminderScheduler
	bus        events.Bus
	log        *logger.Logger
}

// New creates the bookings service.
func New(repo Store, dispatcher Dispatcher, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		dispatcher: dispatcher,
		log:        log,
	}
}

// SetEventBus injects the event bus.
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// SetReminderScheduler injects the reminder scheduler. Without one,
// reminders are simply not enqueued.
func (s *Service) SetReminderScheduler(r ReminderScheduler) {
	s.reminders = r
}

// Create prices a booking request, tries to assign a worker, persists the
// result, and publishes the intake events. Assignment failure is not an
// error: the booking is stored unassigned with the reason and alternative
// workers for manual dispatch.
func (s *Service) Create(ctx context.Context, req transport.CreateBookingRequest) (*transport.BookingResponse, error) {
	price := pricingsvc.Calculate(pricingFactors(req))

	booking := &repository.Booking{
		ID:            uuid.New(),
		CustomerName:  sanitize.Text(req.CustomerName),
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: phone.NormalizeE164(req.CustomerPhone),
		Address:       sanitize.Text(req.Address),
		Zone:          dispatchsvc.ExtractZone(req.Address),
		ServiceType:   req.ServiceType,
		Frequency:     req.Frequency,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		SquareFeet:    req.SquareFeet,
		AddOns:        req.AddOns,
		ServiceDate:   req.ServiceDate,
		ServiceTime:   req.ServiceTime,
		DurationHours: req.DurationHours,
		Notes:         sanitize.TextPtr(req.Notes),
		Subtotal:      price.Subtotal,
		Discount:      price.Discount,
		Surcharge:     price.Surcharge,
		TotalPrice:    price.Total,
	}

	assignment, err := s.dispatcher.AssignBooking(ctx, dispatchsvc.Job{
		BookingID:     booking.ID,
		Address:       req.Address,
		ServiceType:   req.ServiceType,
		ServiceDate:   req.ServiceDate,
		ServiceTime:   req.ServiceTime,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		return nil, err
	}

	if assignment.Assigned {
		booking.Status = repository.StatusAssigned
		booking.WorkerID = &assignment.Worker.ID
		booking.WorkerName = &assignment.Worker.Name
	} else {
		booking.Status = repository.StatusUnassigned
		booking.FailureReason = &assignment.Reason
		for _, alt := range assignment.Alternatives {
			booking.Alternatives = append(booking.Alternatives, alt.ID)
		}
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		// The reservation must not outlive a booking that was never stored.
		if assignment.Assigned {
			if _, releaseErr := s.dispatcher.ReleaseBooking(ctx, booking.ID, req.ServiceDate); releaseErr != nil {
				s.log.Error("failed to release reservation for unsaved booking",
					"booking_id", booking.ID.String(), "error", releaseErr.Error())
			}
		}
		return nil, err
	}

	s.publishIntakeEvents(ctx, booking, assignment)

	if assignment.Assigned && s.reminders != nil {
		if err := s.reminders.ScheduleReminder(ctx, booking.ID, booking.ServiceDate, booking.ServiceTime); err != nil {
			s.log.Error("failed to schedule booking reminder",
				"booking_id", booking.ID.String(), "error", err.Error())
		}
	}

	return toBookingResponse(booking, price), nil
}

func (s *Service) publishIntakeEvents(ctx context.Context, b *repository.Booking, a dispatchsvc.Assignment) {
	if s.bus == nil {
		return
	}

	s.bus.Publish(ctx, events.BookingCreated{
		BaseEvent:     events.NewBaseEvent(),
		BookingID:     b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		ServiceType:   b.ServiceType,
		ServiceDate:   b.ServiceDate,
		ServiceTime:   b.ServiceTime,
		Address:       b.Address,
		TotalPrice:    b.TotalPrice,
	})

	if a.Assigned {
		s.bus.Publish(ctx, events.BookingAssigned{
			BaseEvent:     events.NewBaseEvent(),
			BookingID:     b.ID,
			WorkerID:      a.Worker.ID,
			WorkerName:    a.Worker.Name,
			ServiceType:   b.ServiceType,
			ServiceDate:   b.ServiceDate,
			ServiceTime:   b.ServiceTime,
			Address:       b.Address,
			CustomerName:  b.CustomerName,
			CustomerEmail: b.CustomerEmail,
			TotalPrice:    b.TotalPrice,
		})
	} else {
		s.bus.Publish(ctx, events.BookingAssignmentFailed{
			BaseEvent:    events.NewBaseEvent(),
			BookingID:    b.ID,
			ServiceType:  b.ServiceType,
			ServiceDate:  b.ServiceDate,
			ServiceTime:  b.ServiceTime,
			Zone:         b.Zone,
			Reason:       derefString(b.FailureReason),
			Alternatives: b.Alternatives,
		})
	}
}

// Get returns one booking.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.BookingResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStoredBookingResponse(b), nil
}

// List returns a filtered page of bookings.
func (s *Service) List(ctx context.Context, req transport.ListBookingsRequest) (*transport.ListBookingsResponse, error) {
	params := repository.ListParams{Page: req.Page, PageSize: req.PageSize}
	if req.Status != "" {
		params.Status = &req.Status
	}
	if req.Date != "" {
		params.Date = &req.Date
	}
	if req.WorkerID != "" {
		params.WorkerID = &req.WorkerID
	}

	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	resp := &transport.ListBookingsResponse{
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
		Items:      make([]transport.BookingResponse, 0, len(result.Items)),
	}
	for i := range result.Items {
		resp.Items = append(resp.Items, *toStoredBookingResponse(&result.Items[i]))
	}
	return resp, nil
}

// Cancel releases the booking's reservation (if any) and marks it cancelled.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status == repository.StatusCancelled {
		return apperr.Conflict("booking already cancelled")
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		return err
	}

	var workerID string
	if b.Status == repository.StatusAssigned {
		workerID, err = s.dispatcher.ReleaseBooking(ctx, id, b.ServiceDate)
		if err != nil && !apperr.Is(err, apperr.KindNotFound) {
			s.log.Error("failed to release reservation on cancel",
				"booking_id", id.String(), "error", err.Error())
		}
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.BookingCancelled{
			BaseEvent:   events.NewBaseEvent(),
			BookingID:   id,
			WorkerID:    workerID,
			ServiceDate: b.ServiceDate,
		})
	}
	return nil
}

// MarkReassigned records a dispatcher-driven reassignment on the booking row.
func (s *Service) MarkReassigned(ctx context.Context, id uuid.UUID, workerID, workerName string) error {
	return s.repo.UpdateAssignment(ctx, id, workerID, workerName)
}

// pricingFactors derives the calculator input from the booking request. The
// timing surcharge uses the requested service slot rather than asking the
// customer separately.
func pricingFactors(req transport.CreateBookingRequest) pricingsvc.Factors {
	factors := pricingsvc.Factors{
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		SquareFeet:  req.SquareFeet,
		ServiceType: pricingsvc.ServiceType(req.ServiceType),
		Frequency:   pricingsvc.Frequency(req.Frequency),
		AddOns:      req.AddOns,
		Location:    req.Location,
		RushService: req.RushService,
	}

	if minutes, err := dispatchsvc.ParseClock(req.ServiceTime); err == nil {
		factors.TimeOfDay = timeOfDayBucket(minutes)
	}
	if date, err := time.Parse("2006-01-02", req.ServiceDate); err == nil {
		dow := int(date.Weekday())
		factors.DayOfWeek = &dow
	}
	return factors
}

func timeOfDayBucket(minutes int) pricingsvc.TimeOfDay {
	switch {
	case minutes < 12*60:
		return pricingsvc.TimeMorning
	case minutes < 17*60:
		return pricingsvc.TimeAfternoon
	default:
		return pricingsvc.TimeEvening
	}
}

func toBookingResponse(b *repository.Booking, price pricingsvc.Result) *transport.BookingResponse {
	resp := toStoredBookingResponse(b)
	resp.Savings = price.Savings
	return resp
}

func toStoredBookingResponse(b *repository.Booking) *transport.BookingResponse {
	return &transport.BookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		Address:       b.Address,
		Zone:          b.Zone,
		ServiceType:   b.ServiceType,
		Frequency:     b.Frequency,
		Bedrooms:      b.Bedrooms,
		Bathrooms:     b.Bathrooms,
		SquareFeet:    b.SquareFeet,
		AddOns:        b.AddOns,
		ServiceDate:   b.ServiceDate,
		ServiceTime:   b.ServiceTime,
		DurationHours: b.DurationHours,
		Notes:         derefString(b.Notes),
		Status:        b.Status,
		WorkerID:      derefString(b.WorkerID),
		WorkerName:    derefString(b.WorkerName),
		Subtotal:      b.Subtotal,
		Discount:      b.Discount,
		Surcharge:     b.Surcharge,
		TotalPrice:    b.TotalPrice,
		FailureReason: derefString(b.FailureReason),
		Alternatives:  b.Alternatives,
		CreatedAt:     b.CreatedAt,
	}
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
