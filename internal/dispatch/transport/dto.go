package transport

import "github.com/google/uuid"

// ── Requests ──────────────────────────────────────────────────────────────────

// UpsertWorkerRequest creates or updates a roster entry.
type UpsertWorkerRequest struct {
	ID                string   `json:"id" validate:"required,min=1,max=50"`
	Name              string   `json:"name" validate:"required,min=1,max=200"`
	Phone             string   `json:"phone" validate:"omitempty,max=50"`
	Skills            []string `json:"skills" validate:"required,min=1,dive,min=1,max=50"`
	Zones             []string `json:"zones" validate:"omitempty,dive,len=5,numeric"`
	PreferredJobTypes []string `json:"preferredJobTypes" validate:"omitempty,dive,min=1,max=50"`
	MaxDailyJobs      int      `json:"maxDailyJobs" validate:"required,min=1,max=20"`
	Rating            float64  `json:"rating" validate:"min=0,max=5"`
	CompletedJobs     int      `json:"completedJobs" validate:"min=0"`
	IsActive          bool     `json:"isActive"`
}

// SetActiveRequest toggles a worker's availability for new assignments.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// AssignRequest runs the assignment algorithm for a booking, used by
// dispatchers to retry bookings that came in unassigned.
type AssignRequest struct {
	BookingID     uuid.UUID `json:"bookingId" validate:"required"`
	Address       string    `json:"address" validate:"required,min=1,max=500"`
	ServiceType   string    `json:"serviceType" validate:"required,min=1,max=50"`
	ServiceDate   string    `json:"serviceDate" validate:"required,datetime=2006-01-02"`
	ServiceTime   string    `json:"serviceTime" validate:"required"`
	DurationHours float64   `json:"durationHours" validate:"omitempty,gt=0,max=12"`
}

// ReassignRequest moves a booking's reservation to another worker.
type ReassignRequest struct {
	BookingID   uuid.UUID `json:"bookingId" validate:"required"`
	ServiceDate string    `json:"serviceDate" validate:"required,datetime=2006-01-02"`
	ToWorkerID  string    `json:"toWorkerId" validate:"required"`
}

// AvailableWorkersRequest defines query parameters for the availability list.
type AvailableWorkersRequest struct {
	Date     string  `form:"date" validate:"required,datetime=2006-01-02"`
	Time     string  `form:"time" validate:"required"`
	Duration float64 `form:"duration" validate:"omitempty,gt=0,max=12"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// ReservationResponse is one booked interval, times rendered as HH:MM.
type ReservationResponse struct {
	Start     string    `json:"start"`
	End       string    `json:"end"`
	BookingID uuid.UUID `json:"bookingId"`
}

// ScheduleResponse is one worker-date schedule.
type ScheduleResponse struct {
	WorkerID    string                `json:"workerId"`
	Date        string                `json:"date"`
	WindowStart string                `json:"windowStart"`
	WindowEnd   string                `json:"windowEnd"`
	Booked      []ReservationResponse `json:"booked"`
}

// WorkerResponse is a roster entry.
type WorkerResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Phone             string   `json:"phone,omitempty"`
	Skills            []string `json:"skills"`
	Zones             []string `json:"zones"`
	PreferredJobTypes []string `json:"preferredJobTypes"`
	MaxDailyJobs      int      `json:"maxDailyJobs"`
	Rating            float64  `json:"rating"`
	CompletedJobs     int      `json:"completedJobs"`
	IsActive          bool     `json:"isActive"`
}

// WorkerRefResponse identifies a suggested worker.
type WorkerRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssignmentResponse is the outcome of running the assignment algorithm.
type AssignmentResponse struct {
	BookingID    uuid.UUID           `json:"bookingId"`
	Assigned     bool                `json:"assigned"`
	Worker       *WorkerResponse     `json:"worker,omitempty"`
	Reason       string              `json:"reason,omitempty"`
	Alternatives []WorkerRefResponse `json:"alternatives,omitempty"`
}

// MetricsResponse summarizes one worker's load.
type MetricsResponse struct {
	WorkerID      string         `json:"workerId"`
	Name          string         `json:"name"`
	Rating        float64        `json:"rating"`
	CompletedJobs int            `json:"completedJobs"`
	IsActive      bool           `json:"isActive"`
	UpcomingJobs  int            `json:"upcomingJobs"`
	DailyLoad     map[string]int `json:"dailyLoad"`
}
