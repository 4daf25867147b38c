package service

import (
	"context"
	"testing"

	"cleanops_backend/internal/bookings/repository"
	"cleanops_backend/internal/bookings/transport"
	dispatchsvc "cleanops_backend/internal/dispatch/service"
	"cleanops_backend/platform/apperr"
	"cleanops_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	bookings map[uuid.UUID]*repository.Booking
}

func newFakeStore() *fakeStore {
	return &fakeStore{bookings: make(map[uuid.UUID]*repository.Booking)}
}

func (f *fakeStore) Create(ctx context.Context, b *repository.Booking) error {
	copied := *b
	f.bookings[b.ID] = &copied
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*repository.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, apperr.NotFound("booking not found")
	}
	copied := *b
	return &copied, nil
}

func (f *fakeStore) List(ctx context.Context, params repository.ListParams) (*repository.ListResult, error) {
	result := &repository.ListResult{Page: 1, PageSize: 20}
	for _, b := range f.bookings {
		result.Items = append(result.Items, *b)
	}
	result.Total = len(result.Items)
	result.TotalPages = 1
	return result, nil
}

func (f *fakeStore) UpdateAssignment(ctx context.Context, id uuid.UUID, workerID, workerName string) error {
	b, ok := f.bookings[id]
	if !ok {
		return apperr.NotFound("booking not found")
	}
	b.Status = repository.StatusAssigned
	b.WorkerID = &workerID
	b.WorkerName = &workerName
	return nil
}

func (f *fakeStore) Cancel(ctx context.Context, id uuid.UUID) error {
	b, ok := f.bookings[id]
	if !ok || b.Status == repository.StatusCancelled {
		return apperr.Conflict("booking not found or already cancelled")
	}
	b.Status = repository.StatusCancelled
	return nil
}

type fakeDispatcher struct {
	assignment dispatchsvc.Assignment
	assignErr  error
	released   []uuid.UUID
}

func (f *fakeDispatcher) AssignBooking(ctx context.Context, job dispatchsvc.Job) (dispatchsvc.Assignment, error) {
	return f.assignment, f.assignErr
}

func (f *fakeDispatcher) ReleaseBooking(ctx context.Context, bookingID uuid.UUID, date string) (string, error) {
	f.released = append(f.released, bookingID)
	return "W001", nil
}

type fakeReminders struct {
	scheduled []uuid.UUID
}

func (f *fakeReminders) ScheduleReminder(ctx context.Context, bookingID uuid.UUID, serviceDate, serviceTime string) error {
	f.scheduled = append(f.scheduled, bookingID)
	return nil
}

func validRequest() transport.CreateBookingRequest {
	return transport.CreateBookingRequest{
		CustomerName:  "Dana Smith",
		CustomerEmail: "dana@example.com",
		CustomerPhone: "+15124721234",
		Address:       "501 Congress Ave, Austin, TX 78701",
		ServiceType:   "standard",
		Frequency:     "onetime",
		Bedrooms:      1,
		Bathrooms:     1,
		SquareFeet:    1500,
		ServiceDate:   "2026-10-05",
		ServiceTime:   "10:00",
	}
}

func assignedWorker() dispatchsvc.Assignment {
	return dispatchsvc.Assignment{
		Assigned: true,
		Worker:   &dispatchsvc.Worker{ID: "W001", Name: "Maria"},
	}
}

func TestCreateStoresAssignedBookingWithPrice(t *testing.T) {
	store := newFakeStore()
	reminders := &fakeReminders{}
	svc := New(store, &fakeDispatcher{assignment: assignedWorker()}, logger.New("test"))
	svc.SetReminderScheduler(reminders)

	resp, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != repository.StatusAssigned {
		t.Fatalf("expected assigned status, got %q", resp.Status)
	}
	if resp.WorkerID != "W001" {
		t.Fatalf("expected worker W001, got %q", resp.WorkerID)
	}
	// Monday 2026-10-05 at 10:00 carries no timing surcharge, so the base
	// property prices at the minimum.
	if resp.TotalPrice != 120 {
		t.Fatalf("expected base total 120, got %v", resp.TotalPrice)
	}
	if resp.Zone != "78701" {
		t.Fatalf("expected zone extracted from address, got %q", resp.Zone)
	}

	stored, ok := store.bookings[resp.ID]
	if !ok {
		t.Fatalf("booking not persisted")
	}
	if stored.WorkerID == nil || *stored.WorkerID != "W001" {
		t.Fatalf("stored booking missing worker: %+v", stored)
	}
	if len(reminders.scheduled) != 1 || reminders.scheduled[0] != resp.ID {
		t.Fatalf("expected one reminder scheduled for %s, got %v", resp.ID, reminders.scheduled)
	}
}

func TestCreateStoresUnassignedBookingWithAlternatives(t *testing.T) {
	store := newFakeStore()
	reminders := &fakeReminders{}
	dispatcher := &fakeDispatcher{assignment: dispatchsvc.Assignment{
		Reason:       "no available worker for zone 78701 on 2026-10-05 at 10:00",
		Alternatives: []dispatchsvc.WorkerRef{{ID: "W002", Name: "James"}},
	}}
	svc := New(store, dispatcher, logger.New("test"))
	svc.SetReminderScheduler(reminders)

	resp, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != repository.StatusUnassigned {
		t.Fatalf("expected unassigned status, got %q", resp.Status)
	}
	if resp.FailureReason == "" {
		t.Fatalf("expected a failure reason")
	}
	if len(resp.Alternatives) != 1 || resp.Alternatives[0] != "W002" {
		t.Fatalf("expected alternative W002, got %v", resp.Alternatives)
	}
	if len(reminders.scheduled) != 0 {
		t.Fatalf("no reminder should be scheduled for an unassigned booking")
	}
}

func TestCreateRejectsJobEndingPastMidnight(t *testing.T) {
	store := newFakeStore()
	dispatcher := &fakeDispatcher{assignErr: apperr.Validation("job ends past midnight")}
	svc := New(store, dispatcher, logger.New("test"))

	req := validRequest()
	req.ServiceTime = "23:00"
	_, err := svc.Create(context.Background(), req)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.bookings) != 0 {
		t.Fatalf("booking must not be stored on validation failure")
	}
}

func TestCancelReleasesReservation(t *testing.T) {
	store := newFakeStore()
	dispatcher := &fakeDispatcher{assignment: assignedWorker()}
	svc := New(store, dispatcher, logger.New("test"))

	resp, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Cancel(context.Background(), resp.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dispatcher.released) != 1 || dispatcher.released[0] != resp.ID {
		t.Fatalf("expected reservation release for %s, got %v", resp.ID, dispatcher.released)
	}
	if store.bookings[resp.ID].Status != repository.StatusCancelled {
		t.Fatalf("expected cancelled status, got %q", store.bookings[resp.ID].Status)
	}

	if err := svc.Cancel(context.Background(), resp.ID); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict cancelling twice, got %v", err)
	}
}

func TestCreateNormalizesPhoneNumbers(t *testing.T) {
	store := newFakeStore()
	svc := New(store, &fakeDispatcher{assignment: assignedWorker()}, logger.New("test"))

	req := validRequest()
	req.CustomerPhone = "(512) 472-1234"
	resp, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.CustomerPhone != "+15124721234" {
		t.Fatalf("expected E.164 phone, got %q", resp.CustomerPhone)
	}
}
