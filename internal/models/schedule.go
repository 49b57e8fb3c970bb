package models

import "time"

// Schedule is one date-specific instance of a Route. The available-seat
// count is a cache over the seat ledger, recomputed transactionally by
// every mutating path; the ledger stays authoritative.
type Schedule struct {
	ID                  string    `json:"id" db:"id"`
	RouteID             string    `json:"route_id" db:"route_id"`
	RecurringScheduleID *string   `json:"recurring_schedule_id,omitempty" db:"recurring_schedule_id"`
	TravelDate          time.Time `json:"travel_date" db:"travel_date"`
	Capacity            int       `json:"capacity" db:"capacity"`
	AvailableSeats      int       `json:"available_seats" db:"available_seats"`
	IsCancelled         bool      `json:"is_cancelled" db:"is_cancelled"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// IsBookable reports whether new bookings may target this schedule.
func (s *Schedule) IsBookable(now time.Time) bool {
	return !s.IsCancelled && !s.TravelDate.Before(now.Truncate(24*time.Hour))
}

// SeatAvailability is the read-only seat map for one schedule. Seats are
// reported in display-label form.
type SeatAvailability struct {
	ScheduleID     string   `json:"schedule_id"`
	TotalSeats     int      `json:"total_seats"`
	AvailableSeats []string `json:"available_seats"`
	BookedSeats    []string `json:"booked_seats"`
}

// ScheduleCancellation is the result of the cancellation cascade: the
// updated schedule and every booking the cascade touched, so callers can
// notify travellers.
type ScheduleCancellation struct {
	Schedule         *Schedule `json:"schedule"`
	AffectedBookings []Booking `json:"affected_bookings"`
}

// CreateScheduleRequest creates a one-off schedule for a route and date.
type CreateScheduleRequest struct {
	RouteID    string `json:"route_id" binding:"required"`
	TravelDate string `json:"travel_date" binding:"required"` // "2006-01-02"
	Capacity   int    `json:"capacity"`                       // defaults to the route's total seats
}

// ScheduleListItem is a bookable schedule together with its resolved
// price for the travel date.
type ScheduleListItem struct {
	Schedule Schedule `json:"schedule"`
	Price    float64  `json:"price"`
}
