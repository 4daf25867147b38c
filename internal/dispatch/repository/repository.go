package repository

import (
	"context"
	"fmt"

	"cleanops_backend/internal/dispatch/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// Repository provides database operations for the worker roster and its
// reservations. The directory holds the live state; rows here exist so the
// roster survives restarts.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new dispatch repository
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// LoadRoster reads every worker and their reservations. The two queries are
// independent, so they run concurrently on the pool and join afterwards.
func (r *Repository) LoadRoster(ctx context.Context) ([]service.Worker, error) {
	type reservationRow struct {
		workerID string
		date     string
		res      service.Reservation
	}

	byID := make(map[string]*service.Worker)
	var ids []string
	var reservations []reservationRow

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `
			SELECT id, name, phone, skills, zones, preferred_job_types,
			       max_daily_jobs, rating, completed_jobs, is_active
			FROM workers
			ORDER BY id`)
		if err != nil {
			return fmt.Errorf("failed to load workers: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var w service.Worker
			if err := rows.Scan(&w.ID, &w.Name, &w.Phone, &w.Skills, &w.Zones, &w.PreferredJobTypes,
				&w.MaxDailyJobs, &w.Rating, &w.CompletedJobs, &w.IsActive); err != nil {
				return fmt.Errorf("failed to scan worker: %w", err)
			}
			w.Availability = make(map[string]*service.DaySchedule)
			byID[w.ID] = &w
			ids = append(ids, w.ID)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read workers: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		rows, err := r.pool.Query(gctx, `
			SELECT worker_id, service_date::text, start_minute, end_minute, booking_id
			FROM worker_reservations
			ORDER BY worker_id, service_date, start_minute`)
		if err != nil {
			return fmt.Errorf("failed to load reservations: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var row reservationRow
			if err := rows.Scan(&row.workerID, &row.date, &row.res.StartMinute, &row.res.EndMinute, &row.res.BookingID); err != nil {
				return fmt.Errorf("failed to scan reservation: %w", err)
			}
			reservations = append(reservations, row)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read reservations: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, row := range reservations {
		w, ok := byID[row.workerID]
		if !ok {
			continue
		}
		day, ok := w.Availability[row.date]
		if !ok {
			day = &service.DaySchedule{WindowStart: 8 * 60, WindowEnd: 18 * 60}
			w.Availability[row.date] = day
		}
		day.Booked = append(day.Booked, row.res)
	}

	workers := make([]service.Worker, 0, len(ids))
	for _, id := range ids {
		workers = append(workers, *byID[id])
	}
	return workers, nil
}

// UpsertWorker inserts or updates a worker profile. Reservations are not
// touched.
func (r *Repository) UpsertWorker(ctx context.Context, w service.Worker) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO workers (id, name, phone, skills, zones, preferred_job_types,
		                     max_daily_jobs, rating, completed_jobs, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			skills = EXCLUDED.skills,
			zones = EXCLUDED.zones,
			preferred_job_types = EXCLUDED.preferred_job_types,
			max_daily_jobs = EXCLUDED.max_daily_jobs,
			rating = EXCLUDED.rating,
			completed_jobs = EXCLUDED.completed_jobs,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()`,
		w.ID, w.Name, w.Phone, w.Skills, w.Zones, w.PreferredJobTypes,
		w.MaxDailyJobs, w.Rating, w.CompletedJobs, w.IsActive)
	if err != nil {
		return fmt.Errorf("failed to upsert worker: %w", err)
	}
	return nil
}

// SetWorkerActive updates the active flag.
func (r *Repository) SetWorkerActive(ctx context.Context, workerID string, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE workers SET is_active = $2, updated_at = NOW() WHERE id = $1`,
		workerID, active)
	if err != nil {
		return fmt.Errorf("failed to update worker active flag: %w", err)
	}
	return nil
}

// AddReservation records a booked interval.
func (r *Repository) AddReservation(ctx context.Context, workerID, date string, res service.Reservation) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO worker_reservations (booking_id, worker_id, service_date, start_minute, end_minute, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (booking_id) DO UPDATE SET
			worker_id = EXCLUDED.worker_id,
			service_date = EXCLUDED.service_date,
			start_minute = EXCLUDED.start_minute,
			end_minute = EXCLUDED.end_minute`,
		res.BookingID, workerID, date, res.StartMinute, res.EndMinute)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

// DeleteReservation removes a booking's interval.
func (r *Repository) DeleteReservation(ctx context.Context, bookingID uuid.UUID, date string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM worker_reservations WHERE booking_id = $1 AND service_date = $2`,
		bookingID, date)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

// MoveReservation points a booking's interval at another worker.
func (r *Repository) MoveReservation(ctx context.Context, bookingID uuid.UUID, date, toWorkerID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE worker_reservations SET worker_id = $3 WHERE booking_id = $1 AND service_date = $2`,
		bookingID, date, toWorkerID)
	if err != nil {
		return fmt.Errorf("failed to move reservation: %w", err)
	}
	return nil
}

// Compile-time check that Repository satisfies the service store.
var _ service.Store = (*Repository)(nil)
