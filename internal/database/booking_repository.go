package database

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

// BookingRepository handles booking database operations. CreateBooking is
// the booking transaction coordinator: booking, passengers and seat
// reservations commit together or not at all.
type BookingRepository struct {
	db        *sqlx.DB
	seats     *SeatReservationRepository
	pnrPrefix string
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB, seats *SeatReservationRepository, pnrPrefix string) *BookingRepository {
	if pnrPrefix == "" {
		pnrPrefix = "TB"
	}
	return &BookingRepository{db: db, seats: seats, pnrPrefix: pnrPrefix}
}

// GeneratePNR generates a unique booking reference.
// Format: TB-YYYYMMDD-XXXXXX (6 hex chars).
func (r *BookingRepository) GeneratePNR() (string, error) {
	todayStr := time.Now().Format("20060102")

	for attempts := 0; attempts < 10; attempts++ {
		randomBytes := make([]byte, 3)
		if _, err := rand.Read(randomBytes); err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}
		randomStr := strings.ToUpper(hex.EncodeToString(randomBytes))

		pnr := fmt.Sprintf("%s-%s-%s", r.pnrPrefix, todayStr, randomStr)

		var count int
		if err := r.db.Get(&count, `SELECT COUNT(*) FROM bookings WHERE pnr = $1`, pnr); err != nil {
			return "", fmt.Errorf("failed to check PNR uniqueness: %w", err)
		}
		if count == 0 {
			return pnr, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique PNR after 10 attempts")
}

const bookingColumns = `id, pnr, schedule_id, contact_name, contact_phone, contact_email,
	payment_method, payment_status, total_amount, discount_amount, tax_amount,
	final_amount, status, source, cancelled_at, completed_at, created_at, updated_at`

// CreateBooking atomically creates a booking with its passengers and seat
// reservations. The in-transaction conflict check names already-taken
// seats; the partial unique index on booked reservations closes the race
// window the check cannot see. Either way the whole unit rolls back and a
// SeatUnavailableError is returned — two concurrent calls for overlapping
// seats yield exactly one success.
func (r *BookingRepository) CreateBooking(
	req *models.CreateBookingRequest,
	seats []models.Seat,
	source models.BookingSource,
) (*models.Booking, error) {
	pnr, err := r.GeneratePNR()
	if err != nil {
		return nil, err
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	booking := &models.Booking{
		PNR:            pnr,
		ScheduleID:     req.ScheduleID,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		ContactEmail:   req.ContactEmail,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  models.PaymentStatusPaid,
		TotalAmount:    req.TotalAmount,
		DiscountAmount: req.DiscountAmount,
		TaxAmount:      req.TaxAmount,
		FinalAmount:    req.FinalAmount,
		Status:         models.BookingStatusConfirmed,
		Source:         source,
	}

	err = tx.QueryRowx(`
		INSERT INTO bookings (
			pnr, schedule_id, contact_name, contact_phone, contact_email,
			payment_method, payment_status, total_amount, discount_amount,
			tax_amount, final_amount, status, source
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		booking.PNR, booking.ScheduleID, booking.ContactName, booking.ContactPhone,
		booking.ContactEmail, booking.PaymentMethod, booking.PaymentStatus,
		booking.TotalAmount, booking.DiscountAmount, booking.TaxAmount,
		booking.FinalAmount, booking.Status, booking.Source,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	passengers := make([]models.Passenger, len(req.Passengers))
	for i, p := range req.Passengers {
		passengers[i] = models.Passenger{
			BookingID:  booking.ID,
			SeatNumber: seats[i].Number,
			Name:       p.Name,
			Age:        p.Age,
			Gender:     p.Gender,
		}

		err = tx.QueryRowx(`
			INSERT INTO passengers (booking_id, seat_number, name, age, gender)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at`,
			passengers[i].BookingID, passengers[i].SeatNumber,
			passengers[i].Name, passengers[i].Age, passengers[i].Gender,
		).Scan(&passengers[i].ID, &passengers[i].CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to create passenger for seat %s: %w", seats[i].Label, err)
		}
	}

	// Reserve in ascending seat order so transactions fighting over
	// overlapping seats always collide on the same row first; the loser
	// gets a clean unique violation instead of a lock-order deadlock.
	ordered := make([]models.Seat, len(seats))
	copy(ordered, seats)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	seatNumbers := make([]int, len(ordered))
	for i, s := range ordered {
		seatNumbers[i] = s.Number
	}

	conflicts, err := r.seats.BookedConflictsTx(tx, req.ScheduleID, seatNumbers)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		labels, _ := models.SeatLabels(conflicts)
		return nil, &models.SeatUnavailableError{ScheduleID: req.ScheduleID, SeatLabels: labels}
	}

	reservations, err := r.seats.InsertBookedTx(tx, req.ScheduleID, booking.ID, ordered)
	if err != nil {
		if isUniqueViolation(err, "uq_seat_booked") {
			// A concurrent transaction won the race after our check.
			return nil, r.seatConflictAfterRace(req.ScheduleID, seats)
		}
		return nil, err
	}

	if err := recomputeAvailableSeats(tx, req.ScheduleID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	booking.Passengers = passengers
	booking.Seats = reservations
	return booking, nil
}

// seatConflictAfterRace names the seats a concurrent booking took. Runs
// outside the aborted transaction; falls back to the full request when
// the re-read finds nothing.
func (r *BookingRepository) seatConflictAfterRace(scheduleID string, seats []models.Seat) error {
	booked, err := r.seats.GetBookedSeatNumbers(scheduleID)
	taken := make(map[int]bool, len(booked))
	for _, n := range booked {
		taken[n] = true
	}

	var labels []string
	for _, s := range seats {
		if taken[s.Number] {
			labels = append(labels, s.Label)
		}
	}
	if err != nil || len(labels) == 0 {
		for _, s := range seats {
			labels = append(labels, s.Label)
		}
	}
	return &models.SeatUnavailableError{ScheduleID: scheduleID, SeatLabels: labels}
}

// GetByID retrieves a booking by ID with passengers and seats. Returns
// (nil, nil) when absent.
func (r *BookingRepository) GetByID(bookingID string) (*models.Booking, error) {
	return r.getOne(`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID)
}

// GetByPNR retrieves a booking by its reference with passengers and
// seats. Returns (nil, nil) when absent.
func (r *BookingRepository) GetByPNR(pnr string) (*models.Booking, error) {
	return r.getOne(`SELECT `+bookingColumns+` FROM bookings WHERE pnr = $1`, pnr)
}

func (r *BookingRepository) getOne(query string, arg interface{}) (*models.Booking, error) {
	booking := &models.Booking{}
	err := r.db.Get(booking, query, arg)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if err := r.db.Select(&booking.Passengers, `
		SELECT id, booking_id, seat_number, name, age, gender, created_at
		FROM passengers WHERE booking_id = $1 ORDER BY seat_number`,
		booking.ID); err != nil {
		return nil, fmt.Errorf("failed to load passengers: %w", err)
	}

	seats, err := r.seats.GetByBookingID(booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Seats = seats

	return booking, nil
}

// CancelBooking cancels one confirmed booking, frees its seats and
// recomputes the schedule's cached count, all in one transaction.
func (r *BookingRepository) CancelBooking(bookingID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var scheduleID string
	err = tx.Get(&scheduleID, `
		UPDATE bookings
		SET status = 'cancelled',
		    payment_status = 'refunded',
		    cancelled_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed'
		RETURNING schedule_id`,
		bookingID)
	if err == sql.ErrNoRows {
		return &models.BookingNotFoundError{Ref: bookingID}
	}
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE seat_reservations
		SET status = 'cancelled', updated_at = NOW()
		WHERE booking_id = $1 AND status = 'booked'`,
		bookingID)
	if err != nil {
		return fmt.Errorf("failed to release seats: %w", err)
	}

	if err := recomputeAvailableSeats(tx, scheduleID); err != nil {
		return err
	}

	return tx.Commit()
}

// AutoCompletePastBookings transitions every confirmed booking whose
// travel date is strictly before today into completed and marks its seat
// reservations completed. Idempotent: a second run finds nothing left in
// confirmed and changes zero rows.
func (r *BookingRepository) AutoCompletePastBookings(now time.Time) (int64, error) {
	today := dateOnly(now)

	tx, err := r.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE seat_reservations sr
		SET status = 'completed', updated_at = NOW()
		FROM bookings b
		JOIN schedules s ON s.id = b.schedule_id
		WHERE sr.booking_id = b.id
		  AND sr.status = 'booked'
		  AND b.status = 'confirmed'
		  AND s.travel_date < $1`,
		today)
	if err != nil {
		return 0, fmt.Errorf("failed to complete seat reservations: %w", err)
	}

	result, err := tx.Exec(`
		UPDATE bookings b
		SET status = 'completed', completed_at = NOW(), updated_at = NOW()
		FROM schedules s
		WHERE b.schedule_id = s.id
		  AND b.status = 'confirmed'
		  AND s.travel_date < $1`,
		today)
	if err != nil {
		return 0, fmt.Errorf("failed to complete bookings: %w", err)
	}

	changed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count completed bookings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return changed, nil
}
