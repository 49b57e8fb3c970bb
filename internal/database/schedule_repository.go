package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

// ScheduleRepository handles schedule database operations, including the
// cancellation cascade.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleColumns = `id, route_id, recurring_schedule_id, travel_date, capacity,
	available_seats, is_cancelled, created_at, updated_at`

// Create inserts a new schedule instance.
func (r *ScheduleRepository) Create(s *models.Schedule) error {
	err := r.db.QueryRowx(`
		INSERT INTO schedules (route_id, recurring_schedule_id, travel_date, capacity, available_seats)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		s.RouteID, s.RecurringScheduleID, dateOnly(s.TravelDate), s.Capacity, s.AvailableSeats,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_schedule_route_date") {
			return &models.ConflictError{
				Message: fmt.Sprintf("schedule already exists for route %s on %s",
					s.RouteID, s.TravelDate.Format("2006-01-02")),
			}
		}
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

// GetByID retrieves a schedule by ID. Returns (nil, nil) when absent.
func (r *ScheduleRepository) GetByID(scheduleID string) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	err := r.db.Get(schedule, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, scheduleID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return schedule, nil
}

// GetByRouteAndDate retrieves the schedule instance for a route on a
// date. Returns (nil, nil) when absent.
func (r *ScheduleRepository) GetByRouteAndDate(routeID string, date time.Time) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	err := r.db.Get(schedule, `
		SELECT `+scheduleColumns+` FROM schedules
		WHERE route_id = $1 AND travel_date = $2`,
		routeID, dateOnly(date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule by route and date: %w", err)
	}
	return schedule, nil
}

// ListBookable lists non-cancelled schedules for a route in a date range.
func (r *ScheduleRepository) ListBookable(routeID string, from, to time.Time) ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := r.db.Select(&schedules, `
		SELECT `+scheduleColumns+` FROM schedules
		WHERE route_id = $1
		  AND travel_date BETWEEN $2 AND $3
		  AND is_cancelled = FALSE
		ORDER BY travel_date`,
		routeID, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookable schedules: %w", err)
	}
	return schedules, nil
}

// CancelCascade cancels a schedule and everything attached to it in one
// transaction: the schedule is flagged, every confirmed booking becomes
// cancelled with its payment marked refunded, their booked reservations
// become cancelled, and the cached seat count is recomputed (back to full
// capacity, since all were just freed).
func (r *ScheduleRepository) CancelCascade(scheduleID string) (*models.ScheduleCancellation, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE schedules SET is_cancelled = TRUE, updated_at = NOW() WHERE id = $1`,
		scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel schedule: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, &models.ScheduleNotFoundError{ScheduleID: scheduleID}
	}

	// Only confirmed bookings transition; cancelled and completed are
	// terminal states.
	var affected []models.Booking
	err = tx.Select(&affected, `
		UPDATE bookings
		SET status = 'cancelled',
		    payment_status = 'refunded',
		    cancelled_at = NOW(),
		    updated_at = NOW()
		WHERE schedule_id = $1 AND status = 'confirmed'
		RETURNING id, pnr, schedule_id, contact_name, contact_phone, contact_email,
		          payment_method, payment_status, total_amount, discount_amount,
		          tax_amount, final_amount, status, source, cancelled_at,
		          completed_at, created_at, updated_at`,
		scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel bookings: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE seat_reservations
		SET status = 'cancelled', updated_at = NOW()
		WHERE schedule_id = $1 AND status = 'booked'`,
		scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel seat reservations: %w", err)
	}

	if err := recomputeAvailableSeats(tx, scheduleID); err != nil {
		return nil, err
	}

	schedule := &models.Schedule{}
	if err := tx.Get(schedule, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, scheduleID); err != nil {
		return nil, fmt.Errorf("failed to reload schedule: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.ScheduleCancellation{
		Schedule:         schedule,
		AffectedBookings: affected,
	}, nil
}
