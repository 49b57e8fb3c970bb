package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

func newMockScheduleRepo(t *testing.T) (*ScheduleRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewScheduleRepository(sqlx.NewDb(db, "postgres")), mock
}

var scheduleRows = []string{
	"id", "route_id", "recurring_schedule_id", "travel_date", "capacity",
	"available_seats", "is_cancelled", "created_at", "updated_at",
}

var cancelledBookingRows = []string{
	"id", "pnr", "schedule_id", "contact_name", "contact_phone", "contact_email",
	"payment_method", "payment_status", "total_amount", "discount_amount",
	"tax_amount", "final_amount", "status", "source", "cancelled_at",
	"completed_at", "created_at", "updated_at",
}

func cancelledBookingRow(rows *sqlmock.Rows, id, pnr string, now time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id, pnr, "sched-1", "Nimal", "0771234567", nil,
		"card", "refunded", 100.0, 0.0,
		0.0, 100.0, "cancelled", "web", now,
		nil, now, now,
	)
}

func TestCancelCascade(t *testing.T) {
	repo, mock := newMockScheduleRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE schedules SET is_cancelled`).
		WithArgs("sched-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows := sqlmock.NewRows(cancelledBookingRows)
	cancelledBookingRow(rows, "b1", "TB-20260101-AAA111", now)
	cancelledBookingRow(rows, "b2", "TB-20260101-BBB222", now)
	cancelledBookingRow(rows, "b3", "TB-20260101-CCC333", now)
	mock.ExpectQuery(`UPDATE bookings`).
		WithArgs("sched-1").
		WillReturnRows(rows)

	mock.ExpectExec(`UPDATE seat_reservations`).
		WithArgs("sched-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`UPDATE schedules`).
		WithArgs("sched-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`SELECT (.+) FROM schedules WHERE id`).
		WithArgs("sched-1").
		WillReturnRows(sqlmock.NewRows(scheduleRows).
			AddRow("sched-1", "route-1", nil, now, 48, 48, true, now, now))
	mock.ExpectCommit()

	result, err := repo.CancelCascade("sched-1")
	require.NoError(t, err)
	assert.True(t, result.Schedule.IsCancelled)
	assert.Equal(t, 48, result.Schedule.AvailableSeats)
	require.Len(t, result.AffectedBookings, 3)
	for _, b := range result.AffectedBookings {
		assert.Equal(t, models.BookingStatusCancelled, b.Status)
		assert.Equal(t, models.PaymentStatusRefunded, b.PaymentStatus)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelCascade_ScheduleNotFound(t *testing.T) {
	repo, mock := newMockScheduleRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE schedules SET is_cancelled`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	result, err := repo.CancelCascade("missing")
	assert.Nil(t, result)

	var notFound *models.ScheduleNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.ScheduleID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleGetByID_Missing(t *testing.T) {
	repo, mock := newMockScheduleRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM schedules WHERE id`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(scheduleRows))

	schedule, err := repo.GetByID("missing")
	require.NoError(t, err)
	assert.Nil(t, schedule)
}

func TestScheduleCreate_Duplicate(t *testing.T) {
	repo, mock := newMockScheduleRepo(t)

	mock.ExpectQuery(`INSERT INTO schedules`).
		WillReturnError(uniqueViolation("uq_schedule_route_date"))

	err := repo.Create(&models.Schedule{
		RouteID:        "route-1",
		TravelDate:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Capacity:       48,
		AvailableSeats: 48,
	})
	var conflict *models.ConflictError
	assert.ErrorAs(t, err, &conflict)
}
