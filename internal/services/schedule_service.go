package services

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/database"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

// ScheduleService manages date-specific trip instances: one-off
// creation, generation from recurring templates, bookable listings with
// resolved prices, and the cancellation cascade.
type ScheduleService struct {
	scheduleRepo *database.ScheduleRepository
	routeRepo    *database.RouteRepository
	pricingRepo  *database.PricingRepository
	pricing      *PricingService
	logger       *logrus.Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(
	scheduleRepo *database.ScheduleRepository,
	routeRepo *database.RouteRepository,
	pricingRepo *database.PricingRepository,
	pricing *PricingService,
	logger *logrus.Logger,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		routeRepo:    routeRepo,
		pricingRepo:  pricingRepo,
		pricing:      pricing,
		logger:       logger,
	}
}

// CreateSchedule creates a one-off schedule for a route and travel date.
// Capacity defaults to the route's seat count when omitted.
func (s *ScheduleService) CreateSchedule(req *models.CreateScheduleRequest) (*models.Schedule, error) {
	route, err := s.routeRepo.GetByID(req.RouteID)
	if err != nil {
		return nil, err
	}
	if route == nil || !route.IsActive {
		return nil, &models.RouteNotFoundError{RouteID: req.RouteID}
	}

	travelDate, err := time.Parse("2006-01-02", req.TravelDate)
	if err != nil {
		return nil, models.NewValidationError("travel_date", "must be in YYYY-MM-DD format")
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = route.TotalSeats
	}
	if capacity < 1 || capacity > models.MaxSeatCapacity {
		return nil, models.NewValidationError("capacity", "capacity is outside the supported seat grid")
	}

	schedule := &models.Schedule{
		RouteID:        req.RouteID,
		TravelDate:     travelDate,
		Capacity:       capacity,
		AvailableSeats: capacity,
	}
	if err := s.scheduleRepo.Create(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// GetByID fetches one schedule.
func (s *ScheduleService) GetByID(scheduleID string) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByID(scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, &models.ScheduleNotFoundError{ScheduleID: scheduleID}
	}
	return schedule, nil
}

// ListBookable returns the bookable schedules for a route in a date
// window, each with its resolved per-seat price.
func (s *ScheduleService) ListBookable(routeID string, from, to time.Time) ([]models.ScheduleListItem, error) {
	route, err := s.routeRepo.GetByID(routeID)
	if err != nil {
		return nil, err
	}
	if route == nil || !route.IsActive {
		return nil, &models.RouteNotFoundError{RouteID: routeID}
	}

	schedules, err := s.scheduleRepo.ListBookable(routeID, from, to)
	if err != nil {
		return nil, err
	}

	items := make([]models.ScheduleListItem, 0, len(schedules))
	for _, schedule := range schedules {
		price, err := s.pricing.QuotePrice(routeID, schedule.TravelDate, schedule.RecurringScheduleID)
		if err != nil {
			return nil, err
		}
		items = append(items, models.ScheduleListItem{Schedule: schedule, Price: price})
	}
	return items, nil
}

// CancelSchedule runs the cancellation cascade: the schedule is flagged,
// every confirmed booking on it is cancelled and refunded, seats are
// freed, and the cached seat count returns to full capacity.
func (s *ScheduleService) CancelSchedule(scheduleID string) (*models.ScheduleCancellation, error) {
	result, err := s.scheduleRepo.CancelCascade(scheduleID)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"schedule_id":       scheduleID,
		"affected_bookings": len(result.AffectedBookings),
	}).Info("Schedule cancelled")

	return result, nil
}

// GenerateSchedules materializes schedules from active recurring
// templates for the next daysAhead days, skipping dates that already
// have one. Returns the number created.
func (s *ScheduleService) GenerateSchedules(now time.Time, daysAhead int) (int, error) {
	templates, err := s.pricingRepo.ListActiveRecurringSchedules()
	if err != nil {
		return 0, err
	}

	generated := 0
	for i := range templates {
		n, err := s.generateForTemplate(&templates[i], now, daysAhead)
		if err != nil {
			s.logger.WithFields(logrus.Fields{
				"recurring_schedule_id": templates[i].ID,
				"error":                 err.Error(),
			}).Error("Failed to generate schedules for template")
			continue
		}
		generated += n
	}

	s.logger.WithFields(logrus.Fields{
		"templates": len(templates),
		"generated": generated,
	}).Info("Schedule generation finished")

	return generated, nil
}

func (s *ScheduleService) generateForTemplate(template *models.RecurringSchedule, now time.Time, daysAhead int) (int, error) {
	route, err := s.routeRepo.GetByID(template.RouteID)
	if err != nil {
		return 0, err
	}
	if route == nil || !route.IsActive {
		return 0, nil
	}

	generated := 0
	for offset := 0; offset < daysAhead; offset++ {
		date := now.AddDate(0, 0, offset)
		if !template.RunsOn(date) {
			continue
		}

		existing, err := s.scheduleRepo.GetByRouteAndDate(template.RouteID, date)
		if err != nil {
			return generated, err
		}
		if existing != nil {
			continue
		}

		schedule := &models.Schedule{
			RouteID:             template.RouteID,
			RecurringScheduleID: &template.ID,
			TravelDate:          date,
			Capacity:            route.TotalSeats,
			AvailableSeats:      route.TotalSeats,
		}
		if err := s.scheduleRepo.Create(schedule); err != nil {
			// Lost a race with a concurrent generator run, the
			// schedule exists either way.
			if _, ok := err.(*models.ConflictError); ok {
				continue
			}
			return generated, err
		}
		generated++
	}
	return generated, nil
}
