package models

import "time"

// PriceOverride is an admin-set absolute price pinned to one (route, date)
// pair. It is the highest-priority pricing input and is never adjusted
// further.
type PriceOverride struct {
	ID         string    `json:"id" db:"id"`
	RouteID    string    `json:"route_id" db:"route_id"`
	TravelDate time.Time `json:"travel_date" db:"travel_date"`
	Price      float64   `json:"price" db:"price"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// RecurringSchedule is a template that generates date-specific Schedules
// on a cadence. DaysOfWeek uses time.Weekday numbering (0 = Sunday); an
// empty list means every day.
type RecurringSchedule struct {
	ID         string     `json:"id" db:"id"`
	RouteID    string     `json:"route_id" db:"route_id"`
	DaysOfWeek []int      `json:"days_of_week"`
	ValidFrom  time.Time  `json:"valid_from" db:"valid_from"`
	ValidUntil *time.Time `json:"valid_until,omitempty" db:"valid_until"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// RunsOn reports whether the template generates a schedule for the date.
func (rs *RecurringSchedule) RunsOn(date time.Time) bool {
	if !rs.IsActive || date.Before(rs.ValidFrom) {
		return false
	}
	if rs.ValidUntil != nil && date.After(*rs.ValidUntil) {
		return false
	}
	if len(rs.DaysOfWeek) == 0 {
		return true
	}
	for _, d := range rs.DaysOfWeek {
		if time.Weekday(d) == date.Weekday() {
			return true
		}
	}
	return false
}

// RecurringScheduleRule prices a recurring-schedule template, either for
// one weekday or (DayOfWeek nil) for any day. A fixed price is absolute
// and short-circuits remaining adjustments; a multiplier scales the
// running price.
type RecurringScheduleRule struct {
	ID                  string    `json:"id" db:"id"`
	RecurringScheduleID string    `json:"recurring_schedule_id" db:"recurring_schedule_id"`
	DayOfWeek           *int      `json:"day_of_week,omitempty" db:"day_of_week"`
	Multiplier          *float64  `json:"multiplier,omitempty" db:"multiplier"`
	FixedPrice          *float64  `json:"fixed_price,omitempty" db:"fixed_price"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// Holiday is a calendar date carrying a multiplicative price factor.
// Either an exact date or, when Recurring is set, a month/day pair that
// matches every year.
type Holiday struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	HolidayDate *time.Time `json:"holiday_date,omitempty" db:"holiday_date"`
	Month       *int       `json:"month,omitempty" db:"month"`
	Day         *int       `json:"day,omitempty" db:"day"`
	Recurring   bool       `json:"recurring" db:"recurring"`
	Multiplier  float64    `json:"multiplier" db:"multiplier"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}
