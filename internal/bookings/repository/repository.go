package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cleanops_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ── Domain Models ─────────────────────────────────────────────────────────────

// Booking is the database model for a booking.
type Booking struct {
	ID            uuid.UUID  `db:"id"`
	CustomerName  string     `db:"customer_name"`
	CustomerEmail string     `db:"customer_email"`
	CustomerPhone string     `db:"customer_phone"`
	Address       string     `db:"address"`
	Zone          string     `db:"zone"`
	ServiceType   string     `db:"service_type"`
	Frequency     string     `db:"frequency"`
	Bedrooms      int        `db:"bedrooms"`
	Bathrooms     int        `db:"bathrooms"`
	SquareFeet    int        `db:"square_feet"`
	AddOns        []string   `db:"add_ons"`
	ServiceDate   string     `db:"service_date"`
	ServiceTime   string     `db:"service_time"`
	DurationHours float64    `db:"duration_hours"`
	Notes         *string    `db:"notes"`
	Status        string     `db:"status"`
	WorkerID      *string    `db:"worker_id"`
	WorkerName    *string    `db:"worker_name"`
	Subtotal      float64    `db:"subtotal"`
	Discount      float64    `db:"discount"`
	Surcharge     float64    `db:"surcharge"`
	TotalPrice    float64    `db:"total_price"`
	FailureReason *string    `db:"failure_reason"`
	Alternatives  []string   `db:"alternatives"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	CancelledAt   *time.Time `db:"cancelled_at"`
}

// Booking lifecycle states.
const (
	StatusAssigned   = "assigned"
	StatusUnassigned = "unassigned"
	StatusCancelled  = "cancelled"
)

// ListParams contains parameters for listing bookings.
type ListParams struct {
	Status   *string
	Date     *string
	WorkerID *string
	Page     int
	PageSize int
}

// ListResult contains the paginated result of listing bookings.
type ListResult struct {
	Items      []Booking
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// ── Repository ────────────────────────────────────────────────────────────────

const bookingNotFoundMsg = "booking not found"

// Repository provides database operations for bookings
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new bookings repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const bookingColumns = `
	id, customer_name, customer_email, customer_phone, address, zone,
	service_type, frequency, bedrooms, bathrooms, square_feet, add_ons,
	service_date::text, service_time, duration_hours, notes, status,
	worker_id, worker_name, subtotal, discount, surcharge, total_price,
	failure_reason, alternatives, created_at, updated_at, cancelled_at`

// Create inserts a booking.
func (r *Repository) Create(ctx context.Context, b *Booking) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO bookings (
			id, customer_name, customer_email, customer_phone, address, zone,
			service_type, frequency, bedrooms, bathrooms, square_feet, add_ons,
			service_date, service_time, duration_hours, notes, status,
			worker_id, worker_name, subtotal, discount, surcharge, total_price,
			failure_reason, alternatives, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, NOW(), NOW()
		)`,
		b.ID, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.Address, b.Zone,
		b.ServiceType, b.Frequency, b.Bedrooms, b.Bathrooms, b.SquareFeet, b.AddOns,
		b.ServiceDate, b.ServiceTime, b.DurationHours, b.Notes, b.Status,
		b.WorkerID, b.WorkerName, b.Subtotal, b.Discount, b.Surcharge, b.TotalPrice,
		b.FailureReason, b.Alternatives)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

// GetByID fetches one booking.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(bookingNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return b, nil
}

// List returns a filtered, paginated page of bookings, newest first.
func (r *Repository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}

	where := "WHERE 1=1"
	args := []any{}
	arg := 1
	if params.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", arg)
		args = append(args, *params.Status)
		arg++
	}
	if params.Date != nil {
		where += fmt.Sprintf(" AND service_date = $%d", arg)
		args = append(args, *params.Date)
		arg++
	}
	if params.WorkerID != nil {
		where += fmt.Sprintf(" AND worker_id = $%d", arg)
		args = append(args, *params.WorkerID)
		arg++
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM bookings %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, where, arg, arg+1)
	args = append(args, params.PageSize, (params.Page-1)*params.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var items []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		items = append(items, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}

	totalPages := (total + params.PageSize - 1) / params.PageSize
	return &ListResult{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateAssignment records a (re)assignment outcome.
func (r *Repository) UpdateAssignment(ctx context.Context, id uuid.UUID, workerID, workerName string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE bookings
		SET status = $2, worker_id = $3, worker_name = $4,
		    failure_reason = NULL, alternatives = NULL, updated_at = NOW()
		WHERE id = $1`,
		id, StatusAssigned, workerID, workerName)
	if err != nil {
		return fmt.Errorf("failed to update booking assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(bookingNotFoundMsg)
	}
	return nil
}

// Cancel marks a booking cancelled.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE bookings
		SET status = $2, cancelled_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status != $2`,
		id, StatusCancelled)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("booking not found or already cancelled")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*Booking, error) {
	var b Booking
	err := row.Scan(
		&b.ID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.Address, &b.Zone,
		&b.ServiceType, &b.Frequency, &b.Bedrooms, &b.Bathrooms, &b.SquareFeet, &b.AddOns,
		&b.ServiceDate, &b.ServiceTime, &b.DurationHours, &b.Notes, &b.Status,
		&b.WorkerID, &b.WorkerName, &b.Subtotal, &b.Discount, &b.Surcharge, &b.TotalPrice,
		&b.FailureReason, &b.Alternatives, &b.CreatedAt, &b.UpdatedAt, &b.CancelledAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
