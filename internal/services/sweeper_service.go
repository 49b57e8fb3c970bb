package services

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/database"
)

// SweeperService auto-completes confirmed bookings whose travel date has
// passed. Runs are rate-limited because a sweep scans across bookings;
// correctness only needs eventual invocation, so a suppressed run is not
// an error.
type SweeperService struct {
	bookingRepo *database.BookingRepository
	minInterval time.Duration
	logger      *logrus.Logger

	mu      sync.Mutex
	lastRun time.Time
}

// NewSweeperService creates a new SweeperService
func NewSweeperService(bookingRepo *database.BookingRepository, minInterval time.Duration, logger *logrus.Logger) *SweeperService {
	return &SweeperService{
		bookingRepo: bookingRepo,
		minInterval: minInterval,
		logger:      logger,
	}
}

// Sweep completes every past-dated confirmed booking. Idempotent: with
// no new data a second run changes zero rows. Returns the number of
// bookings transitioned and whether the run actually executed.
func (s *SweeperService) Sweep(now time.Time) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lastRun.IsZero() && now.Sub(s.lastRun) < s.minInterval {
		return 0, false, nil
	}

	completed, err := s.bookingRepo.AutoCompletePastBookings(now)
	if err != nil {
		// lastRun stays put: a failed run must not suppress the retry.
		return 0, true, err
	}
	s.lastRun = now

	if completed > 0 {
		s.logger.WithFields(logrus.Fields{
			"completed": completed,
		}).Info("Auto-completed past bookings")
	}
	return completed, true, nil
}

// SweepJob is the cron entry point. Failures are logged and swallowed,
// background maintenance must never surface into a request path.
func (s *SweeperService) SweepJob() {
	if _, ran, err := s.Sweep(time.Now()); err != nil && ran {
		s.logger.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Error("Booking sweep failed")
	}
}
