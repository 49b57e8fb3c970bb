package services

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

// PriceRuleSource provides the read-only pricing inputs the resolver
// consults. Satisfied by database.PricingRepository.
type PriceRuleSource interface {
	GetOverride(routeID string, travelDate time.Time) (*models.PriceOverride, error)
	GetDayRule(recurringScheduleID string, day time.Weekday) (*models.RecurringScheduleRule, error)
	GetDefaultRule(recurringScheduleID string) (*models.RecurringScheduleRule, error)
	GetHoliday(travelDate time.Time) (*models.Holiday, error)
}

// RouteSource provides base price lookup. Satisfied by database.RouteRepository.
type RouteSource interface {
	GetByID(routeID string) (*models.Route, error)
}

// PricingService resolves the effective price for a route on a travel
// date by layering overrides, recurring-schedule rules, holidays and the
// weekend surcharge over the route's base price.
type PricingService struct {
	rules            PriceRuleSource
	routes           RouteSource
	weekendSurcharge float64
	logger           *logrus.Logger
}

// NewPricingService creates a new PricingService
func NewPricingService(rules PriceRuleSource, routes RouteSource, weekendSurcharge float64, logger *logrus.Logger) *PricingService {
	if weekendSurcharge <= 0 {
		weekendSurcharge = 1.10
	}
	return &PricingService{
		rules:            rules,
		routes:           routes,
		weekendSurcharge: weekendSurcharge,
		logger:           logger,
	}
}

// QuotePrice resolves the price for one seat on routeID for travelDate.
// Resolution order:
//  1. exact (route, date) override: absolute, returned as-is
//  2. day-of-week rule on the recurring schedule, if any
//  3. general rule on the recurring schedule, if any
//  4. holiday multiplier (exact date beats recurring month/day)
//  5. weekend surcharge on Saturday and Sunday
//
// Fixed-price rules and overrides are absolute and skip every later
// step. Multipliers compound on the running price, which starts at the
// route's base price, and the result is rounded to two decimals exactly
// once at the end.
func (s *PricingService) QuotePrice(routeID string, travelDate time.Time, recurringScheduleID *string) (float64, error) {
	route, err := s.routes.GetByID(routeID)
	if err != nil {
		return 0, err
	}
	if route == nil || !route.IsActive {
		return 0, &models.RouteNotFoundError{RouteID: routeID}
	}

	override, err := s.rules.GetOverride(routeID, travelDate)
	if err != nil {
		return 0, err
	}
	if override != nil {
		return roundToCents(override.Price), nil
	}

	price := route.BasePrice

	if recurringScheduleID != nil {
		rule, err := s.rules.GetDayRule(*recurringScheduleID, travelDate.Weekday())
		if err != nil {
			return 0, err
		}
		if rule == nil {
			rule, err = s.rules.GetDefaultRule(*recurringScheduleID)
			if err != nil {
				return 0, err
			}
		}
		if rule != nil {
			if rule.FixedPrice != nil {
				return roundToCents(*rule.FixedPrice), nil
			}
			if rule.Multiplier != nil {
				price *= *rule.Multiplier
			}
		}
	}

	holiday, err := s.rules.GetHoliday(travelDate)
	if err != nil {
		return 0, err
	}
	if holiday != nil {
		price *= holiday.Multiplier
	}

	if day := travelDate.Weekday(); day == time.Saturday || day == time.Sunday {
		price *= s.weekendSurcharge
	}

	return roundToCents(price), nil
}

func roundToCents(p float64) float64 {
	return math.Round(p*100) / 100
}
