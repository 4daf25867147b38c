package service

import (
	"context"
	"testing"
	"time"

	"cleanops_backend/internal/events"
	"cleanops_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	roster       []Worker
	reservations map[uuid.UUID]string
	moved        map[uuid.UUID]string
}

func newFakeStore(roster []Worker) *fakeStore {
	return &fakeStore{
		roster:       roster,
		reservations: make(map[uuid.UUID]string),
		moved:        make(map[uuid.UUID]string),
	}
}

func (f *fakeStore) LoadRoster(ctx context.Context) ([]Worker, error) { return f.roster, nil }
func (f *fakeStore) UpsertWorker(ctx context.Context, w Worker) error { return nil }
func (f *fakeStore) SetWorkerActive(ctx context.Context, workerID string, active bool) error {
	return nil
}
func (f *fakeStore) AddReservation(ctx context.Context, workerID, date string, r Reservation) error {
	f.reservations[r.BookingID] = workerID
	return nil
}
func (f *fakeStore) DeleteReservation(ctx context.Context, bookingID uuid.UUID, date string) error {
	delete(f.reservations, bookingID)
	return nil
}
func (f *fakeStore) MoveReservation(ctx context.Context, bookingID uuid.UUID, date, toWorkerID string) error {
	f.moved[bookingID] = toWorkerID
	return nil
}

func TestServiceHydratesAndWritesReservationsThrough(t *testing.T) {
	store := newFakeStore(referenceRoster())
	svc := New(store, logger.New("test"))

	if err := svc.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(svc.Roster()); got != 4 {
		t.Fatalf("expected 4 workers after hydration, got %d", got)
	}

	job := Job{
		BookingID:   uuid.New(),
		Address:     "501 Congress Ave, Austin, TX 78701",
		ServiceType: "airbnb",
		ServiceDate: "2026-10-01",
		ServiceTime: "10:00",
	}
	a, err := svc.AssignBooking(context.Background(), job)
	if err != nil || !a.Assigned {
		t.Fatalf("expected assignment, got %+v err=%v", a, err)
	}
	if store.reservations[job.BookingID] != a.Worker.ID {
		t.Fatalf("reservation not written through, store has %q", store.reservations[job.BookingID])
	}
}

func TestServiceReassignPublishesEventAndPersists(t *testing.T) {
	store := newFakeStore(referenceRoster())
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)

	published := make(chan events.BookingReassigned, 1)
	bus.Subscribe(events.BookingReassigned{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, e events.Event) error {
			published <- e.(events.BookingReassigned)
			return nil
		}))

	svc := New(store, log)
	svc.SetEventBus(bus)
	if err := svc.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	job := Job{
		BookingID:   uuid.New(),
		Address:     "Austin, TX 78701",
		ServiceType: "standard",
		ServiceDate: "2026-10-02",
		ServiceTime: "10:00",
	}
	a, err := svc.AssignBooking(context.Background(), job)
	if err != nil || !a.Assigned {
		t.Fatalf("expected assignment, got %+v err=%v", a, err)
	}

	to, err := svc.ReassignBooking(context.Background(), job.BookingID, "2026-10-02", "W004")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if to.ID != "W004" {
		t.Fatalf("expected W004, got %s", to.ID)
	}
	if store.moved[job.BookingID] != "W004" {
		t.Fatalf("reassignment not persisted, store has %q", store.moved[job.BookingID])
	}

	select {
	case e := <-published:
		if e.ToWorkerID != "W004" || e.FromWorkerID == "" {
			t.Fatalf("unexpected reassignment event: %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for reassignment event")
	}
}
