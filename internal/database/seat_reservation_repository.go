package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

// SeatReservationRepository is the seat ledger: per-(schedule, seat)
// reservation records, the single source of truth for which seats are
// taken.
type SeatReservationRepository struct {
	db *sqlx.DB
}

// NewSeatReservationRepository creates a new SeatReservationRepository
func NewSeatReservationRepository(db *sqlx.DB) *SeatReservationRepository {
	return &SeatReservationRepository{db: db}
}

// GetBookedSeatNumbers lists the canonical seat numbers currently booked
// on a schedule, in ascending order.
func (r *SeatReservationRepository) GetBookedSeatNumbers(scheduleID string) ([]int, error) {
	var numbers []int
	err := r.db.Select(&numbers, `
		SELECT seat_number FROM seat_reservations
		WHERE schedule_id = $1 AND status = 'booked'
		ORDER BY seat_number`,
		scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked seats: %w", err)
	}
	return numbers, nil
}

// BookedConflictsTx returns which of the given seat numbers are already
// booked on the schedule. Only ever invoked from inside the coordinator's
// transaction.
func (r *SeatReservationRepository) BookedConflictsTx(tx *sqlx.Tx, scheduleID string, seatNumbers []int) ([]int, error) {
	nums := make(pq.Int64Array, len(seatNumbers))
	for i, n := range seatNumbers {
		nums[i] = int64(n)
	}

	var conflicts []int
	err := tx.Select(&conflicts, `
		SELECT seat_number FROM seat_reservations
		WHERE schedule_id = $1 AND status = 'booked' AND seat_number = ANY($2)
		ORDER BY seat_number`,
		scheduleID, nums)
	if err != nil {
		return nil, fmt.Errorf("failed to check seat conflicts: %w", err)
	}
	return conflicts, nil
}

// InsertBookedTx inserts one booked reservation per seat inside the
// coordinator's transaction. The partial unique index on
// (schedule_id, seat_number) WHERE status = 'booked' makes this the
// serialization point for concurrent bookings of the same seat.
func (r *SeatReservationRepository) InsertBookedTx(
	tx *sqlx.Tx,
	scheduleID, bookingID string,
	seats []models.Seat,
) ([]models.SeatReservation, error) {
	reservations := make([]models.SeatReservation, 0, len(seats))
	for _, seat := range seats {
		res := models.SeatReservation{
			ScheduleID: scheduleID,
			BookingID:  bookingID,
			SeatNumber: seat.Number,
			SeatLabel:  seat.Label,
			Status:     models.SeatStatusBooked,
		}

		err := tx.QueryRowx(`
			INSERT INTO seat_reservations (schedule_id, booking_id, seat_number, seat_label, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at`,
			res.ScheduleID, res.BookingID, res.SeatNumber, res.SeatLabel, res.Status,
		).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve seat %s: %w", seat.Label, err)
		}

		reservations = append(reservations, res)
	}
	return reservations, nil
}

// GetByBookingID lists a booking's seat reservations.
func (r *SeatReservationRepository) GetByBookingID(bookingID string) ([]models.SeatReservation, error) {
	var seats []models.SeatReservation
	err := r.db.Select(&seats, `
		SELECT id, schedule_id, booking_id, seat_number, seat_label, status, created_at, updated_at
		FROM seat_reservations
		WHERE booking_id = $1
		ORDER BY seat_number`,
		bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for booking: %w", err)
	}
	return seats, nil
}

// CountBooked counts booked reservations for a schedule.
func (r *SeatReservationRepository) CountBooked(scheduleID string) (int, error) {
	var count int
	err := r.db.Get(&count, `
		SELECT COUNT(*) FROM seat_reservations
		WHERE schedule_id = $1 AND status = 'booked'`,
		scheduleID)
	return count, err
}

// recomputeAvailableSeats rewrites a schedule's cached available-seat
// count from the ledger. Every mutating path calls this inside its own
// transaction; the cache is never trusted as independently authoritative.
func recomputeAvailableSeats(tx *sqlx.Tx, scheduleID string) error {
	_, err := tx.Exec(`
		UPDATE schedules
		SET available_seats = capacity - (
			SELECT COUNT(*) FROM seat_reservations
			WHERE schedule_id = $1 AND status = 'booked'
		),
		updated_at = NOW()
		WHERE id = $1`,
		scheduleID)
	if err != nil {
		return fmt.Errorf("failed to recompute available seats: %w", err)
	}
	return nil
}

// dateOnly truncates a timestamp to its calendar date in UTC, the form
// every travel-date comparison uses.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
