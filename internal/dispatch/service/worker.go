package service

import (
	"sort"

	"github.com/google/uuid"
)

const (
	defaultDurationHours = 3.0

	// Default working window created the first time a date is booked.
	defaultWindowStart = 8 * 60
	defaultWindowEnd   = 18 * 60
)

// Reservation is one booked interval on a worker's day. Times are minutes
// since midnight.
type Reservation struct {
	StartMinute int       `json:"startMinute"`
	EndMinute   int       `json:"endMinute"`
	BookingID   uuid.UUID `json:"bookingId"`
}

// DaySchedule holds a worker's booked intervals for one calendar date, sorted
// by start time ascending.
type DaySchedule struct {
	WindowStart int           `json:"windowStart"`
	WindowEnd   int           `json:"windowEnd"`
	Booked      []Reservation `json:"booked"`
}

// Worker is one roster entry. The Availability map is keyed by ISO date
// (YYYY-MM-DD) and is the only mutable state in the directory; all access
// goes through the Directory's lock.
type Worker struct {
	ID                string
	Name              string
	Phone             string
	Skills            []string
	Zones             []string
	PreferredJobTypes []string
	MaxDailyJobs      int
	Rating            float64
	CompletedJobs     int
	IsActive          bool
	Availability      map[string]*DaySchedule
}

// Job is the slice of a booking the scheduler needs.
type Job struct {
	BookingID     uuid.UUID
	Address       string
	ServiceType   string
	ServiceDate   string // YYYY-MM-DD
	ServiceTime   string // HH:MM
	DurationHours float64
}

// skillForServiceType maps a requested service type to the roster skill tag a
// worker must carry. Unrecognized types fall back to the standard skill.
var skillForServiceType = map[string]string{
	"standard":          "standard",
	"deep":              "deep",
	"move_in_out":       "move_in_out",
	"airbnb":            "airbnb",
	"post_construction": "post_construction",
}

func requiredSkill(serviceType string) string {
	if skill, ok := skillForServiceType[serviceType]; ok {
		return skill
	}
	return "standard"
}

func (w *Worker) hasSkill(skill string) bool {
	for _, s := range w.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// servicesZone reports whether the worker covers a zone. An empty zone is a
// wildcard: addresses without a recognizable zone code match every worker.
func (w *Worker) servicesZone(zone string) bool {
	if zone == "" {
		return true
	}
	for _, z := range w.Zones {
		if z == zone {
			return true
		}
	}
	return false
}

func (w *Worker) prefersJobType(serviceType string) bool {
	for _, t := range w.PreferredJobTypes {
		if t == serviceType {
			return true
		}
	}
	return false
}

// jobsOnDate counts booked intervals on a date. No schedule entry means zero.
func (w *Worker) jobsOnDate(date string) int {
	if day, ok := w.Availability[date]; ok {
		return len(day.Booked)
	}
	return 0
}

// hasConflict reports whether any booked interval on the date overlaps
// [start, end).
func (w *Worker) hasConflict(date string, start, end int) bool {
	day, ok := w.Availability[date]
	if !ok {
		return false
	}
	for _, r := range day.Booked {
		if end > r.StartMinute && start < r.EndMinute {
			return true
		}
	}
	return false
}

// reserve appends a booked interval for the date and keeps the day's list
// sorted by start time. The caller has already checked conflicts and capacity
// under the directory lock.
func (w *Worker) reserve(date string, r Reservation) {
	day, ok := w.Availability[date]
	if !ok {
		day = &DaySchedule{WindowStart: defaultWindowStart, WindowEnd: defaultWindowEnd}
		if w.Availability == nil {
			w.Availability = make(map[string]*DaySchedule)
		}
		w.Availability[date] = day
	}
	day.Booked = append(day.Booked, r)
	sort.Slice(day.Booked, func(i, j int) bool {
		return day.Booked[i].StartMinute < day.Booked[j].StartMinute
	})
}

// release removes the reservation for a booking on the date. Returns false
// when no such reservation exists.
func (w *Worker) release(date string, bookingID uuid.UUID) bool {
	day, ok := w.Availability[date]
	if !ok {
		return false
	}
	for i, r := range day.Booked {
		if r.BookingID == bookingID {
			day.Booked = append(day.Booked[:i], day.Booked[i+1:]...)
			return true
		}
	}
	return false
}

// score ranks a candidate for a job. Higher is better.
func (w *Worker) score(job Job, zone string) float64 {
	s := w.Rating * 10

	experience := float64(w.CompletedJobs) / 50
	if experience > 20 {
		experience = 20
	}
	s += experience

	if w.prefersJobType(job.ServiceType) {
		s += 15
	}
	if zone != "" && len(w.Zones) > 0 && w.Zones[0] == zone {
		s += 10
	}
	s += float64(w.MaxDailyJobs - w.jobsOnDate(job.ServiceDate))

	return s
}

// clone deep-copies a worker so reads can escape the directory lock safely.
func (w *Worker) clone() *Worker {
	c := *w
	c.Skills = append([]string(nil), w.Skills...)
	c.Zones = append([]string(nil), w.Zones...)
	c.PreferredJobTypes = append([]string(nil), w.PreferredJobTypes...)
	c.Availability = make(map[string]*DaySchedule, len(w.Availability))
	for date, day := range w.Availability {
		dayCopy := &DaySchedule{
			WindowStart: day.WindowStart,
			WindowEnd:   day.WindowEnd,
			Booked:      append([]Reservation(nil), day.Booked...),
		}
		c.Availability[date] = dayCopy
	}
	return &c
}
