package services

import (
	"fmt"
	"time"

	"github.com/mssola/user_agent"
	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/database"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

// BookingService validates booking requests and drives the booking
// transaction. All validation happens before any transaction opens.
type BookingService struct {
	bookingRepo  *database.BookingRepository
	scheduleRepo *database.ScheduleRepository
	seatRepo     *database.SeatReservationRepository
	logger       *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo *database.BookingRepository,
	scheduleRepo *database.ScheduleRepository,
	seatRepo *database.SeatReservationRepository,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		seatRepo:     seatRepo,
		logger:       logger,
	}
}

// CreateBooking validates the request against the target schedule and
// creates the booking atomically. rawUserAgent classifies the booking
// source; adminOverride marks counter bookings made on a traveler's
// behalf.
func (s *BookingService) CreateBooking(req *models.CreateBookingRequest, rawUserAgent string, adminOverride bool) (*models.Booking, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	schedule, err := s.scheduleRepo.GetByID(req.ScheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, &models.ScheduleNotFoundError{ScheduleID: req.ScheduleID}
	}
	if !schedule.IsBookable(time.Now()) {
		return nil, models.NewValidationError("schedule_id", "schedule is cancelled or already departed")
	}

	seats, err := req.SeatSelection()
	if err != nil {
		return nil, err
	}
	for _, seat := range seats {
		if seat.Number > schedule.Capacity {
			return nil, models.NewValidationError("seats",
				fmt.Sprintf("seat %s is outside this vehicle's capacity of %d", seat.Label, schedule.Capacity))
		}
	}

	source := models.BookingSourceWeb
	if adminOverride {
		source = models.BookingSourceAdmin
	} else if ua := user_agent.New(rawUserAgent); ua.Mobile() {
		source = models.BookingSourceMobile
	}

	booking, err := s.bookingRepo.CreateBooking(req, seats, source)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"pnr":         booking.PNR,
		"schedule_id": booking.ScheduleID,
		"seats":       booking.SeatLabelList(),
		"source":      booking.Source,
	}).Info("Booking created")

	return booking, nil
}

// GetByPNR fetches a booking with its passengers and seats.
func (s *BookingService) GetByPNR(pnr string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByPNR(pnr)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, &models.BookingNotFoundError{Ref: pnr}
	}
	return booking, nil
}

// CancelByPNR cancels a single confirmed booking and frees its seats.
func (s *BookingService) CancelByPNR(pnr string) (*models.Booking, error) {
	booking, err := s.GetByPNR(pnr)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, &models.ConflictError{Message: fmt.Sprintf("booking %s is already %s", pnr, booking.Status)}
	}

	if err := s.bookingRepo.CancelBooking(booking.ID); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"pnr":         booking.PNR,
		"schedule_id": booking.ScheduleID,
	}).Info("Booking cancelled")

	return s.GetByPNR(pnr)
}

// GetSeatAvailability reports, per seat label, which seats on a schedule
// are free and which are taken.
func (s *BookingService) GetSeatAvailability(scheduleID string) (*models.SeatAvailability, error) {
	schedule, err := s.scheduleRepo.GetByID(scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, &models.ScheduleNotFoundError{ScheduleID: scheduleID}
	}

	bookedNumbers, err := s.seatRepo.GetBookedSeatNumbers(scheduleID)
	if err != nil {
		return nil, err
	}
	taken := make(map[int]bool, len(bookedNumbers))
	for _, n := range bookedNumbers {
		taken[n] = true
	}

	availability := &models.SeatAvailability{
		ScheduleID:     scheduleID,
		TotalSeats:     schedule.Capacity,
		AvailableSeats: make([]string, 0, schedule.Capacity-len(bookedNumbers)),
		BookedSeats:    make([]string, 0, len(bookedNumbers)),
	}
	for n := 1; n <= schedule.Capacity; n++ {
		seat, err := models.SeatFromNumber(n)
		if err != nil {
			return nil, err
		}
		if taken[n] {
			availability.BookedSeats = append(availability.BookedSeats, seat.Label)
		} else {
			availability.AvailableSeats = append(availability.AvailableSeats, seat.Label)
		}
	}

	return availability, nil
}
