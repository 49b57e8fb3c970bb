package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swifttravel/travel-booking-backend/internal/database"
)

func newTestSweeper(t *testing.T, minInterval time.Duration) (*SweeperService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	seats := database.NewSeatReservationRepository(sqlxDB)
	bookings := database.NewBookingRepository(sqlxDB, seats, "TB")
	return NewSweeperService(bookings, minInterval, logrus.New()), mock
}

func expectSweep(mock sqlmock.Sqlmock, completed int64) {
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE seat_reservations`).
		WillReturnResult(sqlmock.NewResult(0, completed))
	mock.ExpectExec(`UPDATE bookings`).
		WillReturnResult(sqlmock.NewResult(0, completed))
	mock.ExpectCommit()
}

func TestSweep(t *testing.T) {
	sweeper, mock := newTestSweeper(t, 0)
	expectSweep(mock, 2)

	completed, ran, err := sweeper.Sweep(time.Now())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, int64(2), completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweep_FailureDoesNotStartInterval(t *testing.T) {
	// A failed run must leave the rate limiter untouched, the next tick
	// retries immediately instead of waiting out the interval.
	sweeper, mock := newTestSweeper(t, time.Hour)

	mock.ExpectBegin().WillReturnError(assert.AnError)

	now := time.Now()
	_, ran, err := sweeper.Sweep(now)
	require.Error(t, err)
	assert.True(t, ran)

	expectSweep(mock, 1)
	completed, ran, err := sweeper.Sweep(now.Add(time.Second))
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, int64(1), completed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSweep_RateLimited(t *testing.T) {
	sweeper, mock := newTestSweeper(t, time.Hour)
	expectSweep(mock, 1)

	now := time.Now()
	_, ran, err := sweeper.Sweep(now)
	require.NoError(t, err)
	assert.True(t, ran)

	// A second call inside the interval is suppressed, no queries run.
	completed, ran, err := sweeper.Sweep(now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Equal(t, int64(0), completed)

	// Past the interval it runs again.
	expectSweep(mock, 0)
	_, ran, err = sweeper.Sweep(now.Add(2 * time.Hour))
	require.NoError(t, err)
	assert.True(t, ran)

	assert.NoError(t, mock.ExpectationsWereMet())
}
