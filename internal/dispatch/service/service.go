package service

import (
	"context"

	"cleanops_backend/internal/events"
	"cleanops_backend/platform/logger"

	"github.com/google/uuid"
)

// Store persists the roster and its reservations. The directory in memory is
// authoritative during a process lifetime; the store exists to survive
// restarts.
type Store interface {
	LoadRoster(ctx context.Context) ([]Worker, error)
	UpsertWorker(ctx context.Context, w Worker) error
	SetWorkerActive(ctx context.Context, workerID string, active bool) error
	AddReservation(ctx context.Context, workerID, date string, r Reservation) error
	DeleteReservation(ctx context.Context, bookingID uuid.UUID, date string) error
	MoveReservation(ctx context.Context, bookingID uuid.UUID, date, toWorkerID string) error
}

// Service coordinates the in-memory directory with storage and the event bus.
type Service struct {
	dir  *Directory
	repo Store
	bus  events.Bus
	log  *logger.Logger
}

// New creates the dispatch service.
func New(repo Store, log *logger.Logger) *Service {
	return &Service{
		dir:  NewDirectory(),
		repo: repo,
		log:  log,
	}
}

// SetEventBus injects the event bus for publishing dispatch events.
func (s *Service) SetEventBus(bus events.Bus) {
	s.bus = bus
}

// Directory exposes the underlying directory for tests.
func (s *Service) Directory() *Directory {
	return s.dir
}

// Hydrate loads the roster from storage into the directory.
func (s *Service) Hydrate(ctx context.Context) error {
	workers, err := s.repo.LoadRoster(ctx)
	if err != nil {
		return err
	}
	s.dir.Load(workers)
	s.log.Info("worker roster hydrated", "workers", len(workers))
	return nil
}

// AssignBooking runs the assignment algorithm and writes the reservation
// through to storage. A storage failure does not undo the in-memory
// reservation; it is logged and repaired by the next hydration.
func (s *Service) AssignBooking(ctx context.Context, job Job) (Assignment, error) {
	assignment, err := s.dir.Assign(job)
	if err != nil {
		return Assignment{}, err
	}

	if assignment.Assigned {
		s.log.AssignmentEvent(job.BookingID.String(), assignment.Worker.ID, true, "")
		if err := s.repo.AddReservation(ctx, assignment.Worker.ID, job.ServiceDate, Reservation{
			StartMinute: assignment.StartMinute,
			EndMinute:   assignment.EndMinute,
			BookingID:   job.BookingID,
		}); err != nil {
			s.log.DatabaseError("persist reservation", err)
		}
	} else {
		s.log.AssignmentEvent(job.BookingID.String(), "", false, assignment.Reason)
	}

	return assignment, nil
}

// ManualAssign retries assignment for a stored booking. On success the
// reassignment event brings the booking row up to date.
func (s *Service) ManualAssign(ctx context.Context, job Job) (Assignment, error) {
	assignment, err := s.AssignBooking(ctx, job)
	if err != nil || !assignment.Assigned {
		return assignment, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, events.BookingReassigned{
			BaseEvent:    events.NewBaseEvent(),
			BookingID:    job.BookingID,
			ToWorkerID:   assignment.Worker.ID,
			ToWorkerName: assignment.Worker.Name,
			ServiceDate:  job.ServiceDate,
		})
	}
	return assignment, nil
}

// ReassignBooking moves a reservation to another worker, running the same
// conflict and capacity checks as initial assignment.
func (s *Service) ReassignBooking(ctx context.Context, bookingID uuid.UUID, date, toWorkerID string) (*Worker, error) {
	fromID, to, err := s.dir.Reassign(bookingID, date, toWorkerID)
	if err != nil {
		return nil, err
	}

	if fromID != to.ID {
		if err := s.repo.MoveReservation(ctx, bookingID, date, to.ID); err != nil {
			s.log.DatabaseError("persist reassignment", err)
		}
		if s.bus != nil {
			s.bus.Publish(ctx, events.BookingReassigned{
				BaseEvent:    events.NewBaseEvent(),
				BookingID:    bookingID,
				FromWorkerID: fromID,
				ToWorkerID:   to.ID,
				ToWorkerName: to.Name,
				ServiceDate:  date,
			})
		}
	}
	return to, nil
}

// ReleaseBooking removes a reservation, used by cancellation. Returns the
// worker who held it.
func (s *Service) ReleaseBooking(ctx context.Context, bookingID uuid.UUID, date string) (string, error) {
	workerID, err := s.dir.Release(bookingID, date)
	if err != nil {
		return "", err
	}
	if err := s.repo.DeleteReservation(ctx, bookingID, date); err != nil {
		s.log.DatabaseError("delete reservation", err)
	}
	return workerID, nil
}

// WorkerSchedule returns one worker's booked intervals for a date.
func (s *Service) WorkerSchedule(workerID, date string) (DaySchedule, error) {
	return s.dir.Schedule(workerID, date)
}

// AvailableWorkers lists workers free for the given window.
func (s *Service) AvailableWorkers(date, serviceTime string, durationHours float64) ([]*Worker, error) {
	return s.dir.AvailableWorkers(date, serviceTime, durationHours)
}

// WorkerMetrics summarizes one worker's load.
func (s *Service) WorkerMetrics(workerID string) (Metrics, error) {
	return s.dir.Metrics(workerID)
}

// Roster returns every worker.
func (s *Service) Roster() []*Worker {
	return s.dir.Roster()
}

// GetWorker returns one worker.
func (s *Service) GetWorker(workerID string) (*Worker, error) {
	return s.dir.Get(workerID)
}

// UpsertWorker creates or updates a roster entry in the directory and storage.
func (s *Service) UpsertWorker(ctx context.Context, w Worker) error {
	s.dir.Upsert(w)
	if err := s.repo.UpsertWorker(ctx, w); err != nil {
		s.log.DatabaseError("persist worker", err)
		return err
	}
	return nil
}

// SetWorkerActive toggles a worker's availability for new assignments.
func (s *Service) SetWorkerActive(ctx context.Context, workerID string, active bool) error {
	if err := s.dir.SetActive(workerID, active); err != nil {
		return err
	}
	if err := s.repo.SetWorkerActive(ctx, workerID, active); err != nil {
		s.log.DatabaseError("persist worker active flag", err)
		return err
	}
	return nil
}
