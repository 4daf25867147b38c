package service

import (
	"fmt"
	"sort"
	"sync"

	"cleanops_backend/platform/apperr"

	"github.com/google/uuid"
)

// maxAlternatives caps the suggestion list returned on assignment failure.
const maxAlternatives = 3

// WorkerRef identifies a worker in suggestion lists and events.
type WorkerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Assignment is the outcome of an assignment attempt. When Assigned is false,
// Reason explains why and Alternatives carries up to three skill-matching
// workers for manual dispatch; they are suggestions only and may themselves
// be booked or out of zone.
type Assignment struct {
	Assigned     bool
	Worker       *Worker
	Zone         string
	StartMinute  int
	EndMinute    int
	Reason       string
	Alternatives []WorkerRef
}

// Metrics is a read-only load summary for one worker.
type Metrics struct {
	WorkerID      string         `json:"workerId"`
	Name          string         `json:"name"`
	Rating        float64        `json:"rating"`
	CompletedJobs int            `json:"completedJobs"`
	IsActive      bool           `json:"isActive"`
	UpcomingJobs  int            `json:"upcomingJobs"`
	DailyLoad     map[string]int `json:"dailyLoad"`
}

// Directory owns the worker roster. A single mutex serializes every
// assignment so the filter, score, and reserve steps are atomic; two
// concurrent bookings can never both pass the conflict check for the same
// worker-date pair.
type Directory struct {
	mu      sync.Mutex
	workers map[string]*Worker
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{workers: make(map[string]*Worker)}
}

// Load replaces the roster, used to hydrate from storage at startup.
func (d *Directory) Load(workers []Worker) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.workers = make(map[string]*Worker, len(workers))
	for i := range workers {
		w := workers[i]
		if w.Availability == nil {
			w.Availability = make(map[string]*DaySchedule)
		}
		d.workers[w.ID] = &w
	}
}

// sortedIDs returns roster IDs in ascending order. Iteration order doubles as
// the scoring tie-break: the lowest ID wins among equal scores.
func (d *Directory) sortedIDs() []string {
	ids := make([]string, 0, len(d.workers))
	for id := range d.workers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Assign finds the best eligible worker for a job and reserves the interval
// on their schedule. The only error condition is a malformed or
// past-midnight time window; an empty candidate set is a normal outcome
// reported through the Assignment.
func (d *Directory) Assign(job Job) (Assignment, error) {
	start, end, err := jobWindow(job.ServiceTime, job.DurationHours)
	if err != nil {
		return Assignment{}, err
	}

	zone := ExtractZone(job.Address)
	skill := requiredSkill(job.ServiceType)

	d.mu.Lock()
	defer d.mu.Unlock()

	var best *Worker
	bestScore := 0.0
	for _, id := range d.sortedIDs() {
		w := d.workers[id]
		if !w.IsActive || !w.servicesZone(zone) || !w.hasSkill(skill) {
			continue
		}
		if w.jobsOnDate(job.ServiceDate) >= w.MaxDailyJobs {
			continue
		}
		if w.hasConflict(job.ServiceDate, start, end) {
			continue
		}
		if score := w.score(job, zone); best == nil || score > bestScore {
			best = w
			bestScore = score
		}
	}

	if best == nil {
		return Assignment{
			Zone:         zone,
			StartMinute:  start,
			EndMinute:    end,
			Reason:       noWorkerReason(job, zone),
			Alternatives: d.alternativesLocked(skill),
		}, nil
	}

	best.reserve(job.ServiceDate, Reservation{
		StartMinute: start,
		EndMinute:   end,
		BookingID:   job.BookingID,
	})

	return Assignment{
		Assigned:    true,
		Worker:      best.clone(),
		Zone:        zone,
		StartMinute: start,
		EndMinute:   end,
	}, nil
}

func noWorkerReason(job Job, zone string) string {
	if zone != "" {
		return fmt.Sprintf("no available worker for zone %s on %s at %s", zone, job.ServiceDate, job.ServiceTime)
	}
	return fmt.Sprintf("no available worker on %s at %s", job.ServiceDate, job.ServiceTime)
}

// alternativesLocked lists up to three active workers holding the required
// skill, ignoring zone, availability, and capacity.
func (d *Directory) alternativesLocked(skill string) []WorkerRef {
	var refs []WorkerRef
	for _, id := range d.sortedIDs() {
		w := d.workers[id]
		if !w.IsActive || !w.hasSkill(skill) {
			continue
		}
		refs = append(refs, WorkerRef{ID: w.ID, Name: w.Name})
		if len(refs) == maxAlternatives {
			break
		}
	}
	return refs
}

// Reassign moves a booking's reservation to another worker. The target goes
// through the same conflict and capacity checks as initial assignment; an
// occupied or over-capacity target is a Conflict error, not a silent
// override.
func (d *Directory) Reassign(bookingID uuid.UUID, date, toWorkerID string) (fromID string, to *Worker, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	target, ok := d.workers[toWorkerID]
	if !ok {
		return "", nil, apperr.NotFound(fmt.Sprintf("worker %s not found", toWorkerID))
	}
	if !target.IsActive {
		return "", nil, apperr.Conflict(fmt.Sprintf("worker %s is inactive", toWorkerID))
	}

	var current *Worker
	var reservation Reservation
	for _, id := range d.sortedIDs() {
		w := d.workers[id]
		day, ok := w.Availability[date]
		if !ok {
			continue
		}
		for _, r := range day.Booked {
			if r.BookingID == bookingID {
				current = w
				reservation = r
				break
			}
		}
		if current != nil {
			break
		}
	}
	if current == nil {
		return "", nil, apperr.NotFound(fmt.Sprintf("no reservation for booking %s on %s", bookingID, date))
	}
	if current.ID == toWorkerID {
		return current.ID, target.clone(), nil
	}

	if target.jobsOnDate(date) >= target.MaxDailyJobs {
		return "", nil, apperr.Conflict(fmt.Sprintf("worker %s is at capacity on %s", toWorkerID, date))
	}
	if target.hasConflict(date, reservation.StartMinute, reservation.EndMinute) {
		return "", nil, apperr.Conflict(fmt.Sprintf("worker %s already has a booking in that window on %s", toWorkerID, date))
	}

	current.release(date, bookingID)
	target.reserve(date, reservation)
	return current.ID, target.clone(), nil
}

// Release removes a booking's reservation, used by cancellation. Returns the
// worker who held it.
func (d *Directory) Release(bookingID uuid.UUID, date string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, id := range d.sortedIDs() {
		w := d.workers[id]
		if w.release(date, bookingID) {
			return w.ID, nil
		}
	}
	return "", apperr.NotFound(fmt.Sprintf("no reservation for booking %s on %s", bookingID, date))
}

// Schedule returns a copy of a worker's day schedule. A date with no entry
// comes back as an empty default window.
func (d *Directory) Schedule(workerID, date string) (DaySchedule, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.workers[workerID]
	if !ok {
		return DaySchedule{}, apperr.NotFound(fmt.Sprintf("worker %s not found", workerID))
	}
	day, ok := w.Availability[date]
	if !ok {
		return DaySchedule{WindowStart: defaultWindowStart, WindowEnd: defaultWindowEnd}, nil
	}
	return DaySchedule{
		WindowStart: day.WindowStart,
		WindowEnd:   day.WindowEnd,
		Booked:      append([]Reservation(nil), day.Booked...),
	}, nil
}

// AvailableWorkers lists active workers free for the given window and under
// their daily cap, in ID order.
func (d *Directory) AvailableWorkers(date, serviceTime string, durationHours float64) ([]*Worker, error) {
	start, end, err := jobWindow(serviceTime, durationHours)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	var out []*Worker
	for _, id := range d.sortedIDs() {
		w := d.workers[id]
		if !w.IsActive || w.jobsOnDate(date) >= w.MaxDailyJobs || w.hasConflict(date, start, end) {
			continue
		}
		out = append(out, w.clone())
	}
	return out, nil
}

// Metrics summarizes a worker's upcoming load.
func (d *Directory) Metrics(workerID string) (Metrics, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.workers[workerID]
	if !ok {
		return Metrics{}, apperr.NotFound(fmt.Sprintf("worker %s not found", workerID))
	}

	m := Metrics{
		WorkerID:      w.ID,
		Name:          w.Name,
		Rating:        w.Rating,
		CompletedJobs: w.CompletedJobs,
		IsActive:      w.IsActive,
		DailyLoad:     make(map[string]int, len(w.Availability)),
	}
	for date, day := range w.Availability {
		m.DailyLoad[date] = len(day.Booked)
		m.UpcomingJobs += len(day.Booked)
	}
	return m, nil
}

// Upsert inserts or updates a roster entry. An update keeps the existing
// availability map; reservations survive profile edits.
func (d *Directory) Upsert(w Worker) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.workers[w.ID]; ok {
		w.Availability = existing.Availability
	} else if w.Availability == nil {
		w.Availability = make(map[string]*DaySchedule)
	}
	d.workers[w.ID] = &w
}

// SetActive toggles a worker's active flag. Workers are never deleted.
func (d *Directory) SetActive(workerID string, active bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.workers[workerID]
	if !ok {
		return apperr.NotFound(fmt.Sprintf("worker %s not found", workerID))
	}
	w.IsActive = active
	return nil
}

// Roster returns a copy of every worker in ID order.
func (d *Directory) Roster() []*Worker {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]*Worker, 0, len(d.workers))
	for _, id := range d.sortedIDs() {
		out = append(out, d.workers[id].clone())
	}
	return out
}

// Get returns a copy of one worker.
func (d *Directory) Get(workerID string) (*Worker, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.workers[workerID]
	if !ok {
		return nil, apperr.NotFound(fmt.Sprintf("worker %s not found", workerID))
	}
	return w.clone(), nil
}
