package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

// PricingRepository provides the read-only pricing inputs the price
// resolver consumes: overrides, recurring-schedule rules and the holiday
// calendar. All lookups return (nil, nil) when no rule applies.
type PricingRepository struct {
	db *sqlx.DB
}

// NewPricingRepository creates a new PricingRepository
func NewPricingRepository(db *sqlx.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// GetOverride finds the exact (route, date) price override.
func (r *PricingRepository) GetOverride(routeID string, travelDate time.Time) (*models.PriceOverride, error) {
	override := &models.PriceOverride{}
	err := r.db.Get(override, `
		SELECT id, route_id, travel_date, price, created_at
		FROM price_overrides
		WHERE route_id = $1 AND travel_date = $2`,
		routeID, dateOnly(travelDate))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get price override: %w", err)
	}
	return override, nil
}

const ruleColumns = `id, recurring_schedule_id, day_of_week, multiplier, fixed_price, created_at`

// GetDayRule finds the rule pinned to one weekday of a recurring-schedule
// template.
func (r *PricingRepository) GetDayRule(recurringScheduleID string, weekday time.Weekday) (*models.RecurringScheduleRule, error) {
	rule := &models.RecurringScheduleRule{}
	err := r.db.Get(rule, `
		SELECT `+ruleColumns+` FROM recurring_schedule_rules
		WHERE recurring_schedule_id = $1 AND day_of_week = $2`,
		recurringScheduleID, int(weekday))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get day rule: %w", err)
	}
	return rule, nil
}

// GetDefaultRule finds the any-day rule of a recurring-schedule template.
func (r *PricingRepository) GetDefaultRule(recurringScheduleID string) (*models.RecurringScheduleRule, error) {
	rule := &models.RecurringScheduleRule{}
	err := r.db.Get(rule, `
		SELECT `+ruleColumns+` FROM recurring_schedule_rules
		WHERE recurring_schedule_id = $1 AND day_of_week IS NULL`,
		recurringScheduleID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default rule: %w", err)
	}
	return rule, nil
}

// GetHoliday finds the holiday covering a date: an exact-date entry wins
// over a recurring month/day entry.
func (r *PricingRepository) GetHoliday(travelDate time.Time) (*models.Holiday, error) {
	date := dateOnly(travelDate)

	holiday := &models.Holiday{}
	err := r.db.Get(holiday, `
		SELECT id, name, holiday_date, month, day, recurring, multiplier, created_at
		FROM holidays
		WHERE NOT recurring AND holiday_date = $1`,
		date)
	if err == nil {
		return holiday, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get holiday: %w", err)
	}

	err = r.db.Get(holiday, `
		SELECT id, name, holiday_date, month, day, recurring, multiplier, created_at
		FROM holidays
		WHERE recurring AND month = $1 AND day = $2`,
		int(date.Month()), date.Day())
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring holiday: %w", err)
	}
	return holiday, nil
}

// recurringScheduleRow mirrors recurring_schedules with the pq array type
// sqlx needs for scanning.
type recurringScheduleRow struct {
	ID         string        `db:"id"`
	RouteID    string        `db:"route_id"`
	DaysOfWeek pq.Int64Array `db:"days_of_week"`
	ValidFrom  time.Time     `db:"valid_from"`
	ValidUntil *time.Time    `db:"valid_until"`
	IsActive   bool          `db:"is_active"`
	CreatedAt  time.Time     `db:"created_at"`
}

func (row *recurringScheduleRow) toModel() models.RecurringSchedule {
	days := make([]int, len(row.DaysOfWeek))
	for i, d := range row.DaysOfWeek {
		days[i] = int(d)
	}
	return models.RecurringSchedule{
		ID:         row.ID,
		RouteID:    row.RouteID,
		DaysOfWeek: days,
		ValidFrom:  row.ValidFrom,
		ValidUntil: row.ValidUntil,
		IsActive:   row.IsActive,
		CreatedAt:  row.CreatedAt,
	}
}

// ListActiveRecurringSchedules lists every active recurring-schedule
// template, for the schedule generator.
func (r *PricingRepository) ListActiveRecurringSchedules() ([]models.RecurringSchedule, error) {
	var rows []recurringScheduleRow
	err := r.db.Select(&rows, `
		SELECT id, route_id, days_of_week, valid_from, valid_until, is_active, created_at
		FROM recurring_schedules
		WHERE is_active = TRUE
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring schedules: %w", err)
	}

	schedules := make([]models.RecurringSchedule, len(rows))
	for i := range rows {
		schedules[i] = rows[i].toModel()
	}
	return schedules, nil
}
