package transport

import (
	"time"

	"github.com/google/uuid"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateBookingRequest is the public booking-funnel submission.
type CreateBookingRequest struct {
	CustomerName  string   `json:"customerName" validate:"required,min=1,max=200"`
	CustomerEmail string   `json:"customerEmail" validate:"required,email,max=320"`
	CustomerPhone string   `json:"customerPhone" validate:"required,max=50"`
	Address       string   `json:"address" validate:"required,min=5,max=500"`
	ServiceType   string   `json:"serviceType" validate:"required,max=50"`
	Frequency     string   `json:"frequency" validate:"required,max=50"`
	Bedrooms      int      `json:"bedrooms" validate:"min=0,max=20"`
	Bathrooms     int      `json:"bathrooms" validate:"min=0,max=20"`
	SquareFeet    int      `json:"squareFeet" validate:"required,min=100,max=50000"`
	AddOns        []string `json:"addOns" validate:"omitempty,max=20,dive,max=50"`
	Location      string   `json:"location" validate:"omitempty,max=100"`
	ServiceDate   string   `json:"serviceDate" validate:"required,datetime=2006-01-02"`
	ServiceTime   string   `json:"serviceTime" validate:"required"`
	DurationHours float64  `json:"durationHours" validate:"omitempty,gt=0,max=12"`
	RushService   bool     `json:"rushService"`
	Notes         *string  `json:"notes" validate:"omitempty,max=2000"`
}

// ListBookingsRequest defines the query parameters for listing bookings.
type ListBookingsRequest struct {
	Status   string `form:"status" validate:"omitempty,oneof=assigned unassigned cancelled"`
	Date     string `form:"date" validate:"omitempty,datetime=2006-01-02"`
	WorkerID string `form:"workerId" validate:"omitempty,max=50"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// BookingResponse is the booking as returned to clients.
type BookingResponse struct {
	ID            uuid.UUID `json:"id"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	Address       string    `json:"address"`
	Zone          string    `json:"zone,omitempty"`
	ServiceType   string    `json:"serviceType"`
	Frequency     string    `json:"frequency"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	SquareFeet    int       `json:"squareFeet"`
	AddOns        []string  `json:"addOns,omitempty"`
	ServiceDate   string    `json:"serviceDate"`
	ServiceTime   string    `json:"serviceTime"`
	DurationHours float64   `json:"durationHours"`
	Notes         string    `json:"notes,omitempty"`
	Status        string    `json:"status"`
	WorkerID      string    `json:"workerId,omitempty"`
	WorkerName    string    `json:"workerName,omitempty"`
	Subtotal      float64   `json:"subtotal"`
	Discount      float64   `json:"discount"`
	Surcharge     float64   `json:"surcharge"`
	TotalPrice    float64   `json:"totalPrice"`
	Savings       float64   `json:"savings,omitempty"`
	FailureReason string    `json:"failureReason,omitempty"`
	Alternatives  []string  `json:"alternatives,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListBookingsResponse is a paginated booking list.
type ListBookingsResponse struct {
	Items      []BookingResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}
