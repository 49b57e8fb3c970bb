package models

import (
	"math"
	"time"
)

// BookingStatus is the lifecycle state of a booking. Both cancelled and
// completed are terminal.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// PaymentStatus tracks the money side of a booking.
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// SeatReservationStatus is the state of one seat on one schedule.
// Completed is distinct from cancelled so seat-count aggregates filtering
// on booked exclude both without conflating the two.
type SeatReservationStatus string

const (
	SeatStatusBooked    SeatReservationStatus = "booked"
	SeatStatusCancelled SeatReservationStatus = "cancelled"
	SeatStatusCompleted SeatReservationStatus = "completed"
)

// BookingSource records which surface created the booking.
type BookingSource string

const (
	BookingSourceWeb    BookingSource = "web"
	BookingSourceMobile BookingSource = "mobile"
	BookingSourceAdmin  BookingSource = "admin"
)

// SeatReservation binds one (schedule, seat number) to a status. For a
// given schedule at most one reservation per seat number may be booked at
// any instant; the store enforces this with a partial unique index.
type SeatReservation struct {
	ID         string                `json:"id" db:"id"`
	ScheduleID string                `json:"schedule_id" db:"schedule_id"`
	BookingID  string                `json:"booking_id" db:"booking_id"`
	SeatNumber int                   `json:"seat_number" db:"seat_number"`
	SeatLabel  string                `json:"seat_label" db:"seat_label"`
	Status     SeatReservationStatus `json:"status" db:"status"`
	CreatedAt  time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at" db:"updated_at"`
}

// Passenger holds seat-scoped traveller details, owned by exactly one
// booking and created with it.
type Passenger struct {
	ID         string    `json:"id" db:"id"`
	BookingID  string    `json:"booking_id" db:"booking_id"`
	SeatNumber int       `json:"seat_number" db:"seat_number"`
	Name       string    `json:"name" db:"name"`
	Age        *int      `json:"age,omitempty" db:"age"`
	Gender     *string   `json:"gender,omitempty" db:"gender"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Booking is the aggregate created by the coordinator: one schedule, one
// or more passengers, one or more seat reservations, and the monetary
// fields supplied by the caller.
type Booking struct {
	ID             string        `json:"id" db:"id"`
	PNR            string        `json:"pnr" db:"pnr"`
	ScheduleID     string        `json:"schedule_id" db:"schedule_id"`
	ContactName    string        `json:"contact_name" db:"contact_name"`
	ContactPhone   string        `json:"contact_phone" db:"contact_phone"`
	ContactEmail   *string       `json:"contact_email,omitempty" db:"contact_email"`
	PaymentMethod  string        `json:"payment_method" db:"payment_method"`
	PaymentStatus  PaymentStatus `json:"payment_status" db:"payment_status"`
	TotalAmount    float64       `json:"total_amount" db:"total_amount"`
	DiscountAmount float64       `json:"discount_amount" db:"discount_amount"`
	TaxAmount      float64       `json:"tax_amount" db:"tax_amount"`
	FinalAmount    float64       `json:"final_amount" db:"final_amount"`
	Status         BookingStatus `json:"status" db:"status"`
	Source         BookingSource `json:"source" db:"source"`
	CancelledAt    *time.Time    `json:"cancelled_at,omitempty" db:"cancelled_at"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`

	// Populated on reads, not stored on the bookings row.
	Passengers []Passenger       `json:"passengers,omitempty" db:"-"`
	Seats      []SeatReservation `json:"seats,omitempty" db:"-"`
}

// SeatLabelList returns the display labels of the booking's seats.
func (b *Booking) SeatLabelList() []string {
	labels := make([]string, len(b.Seats))
	for i, s := range b.Seats {
		labels[i] = s.SeatLabel
	}
	return labels
}

// PassengerInput is one traveller in a booking request, bound to one seat.
type PassengerInput struct {
	Name   string  `json:"name" binding:"required"`
	Age    *int    `json:"age,omitempty"`
	Gender *string `json:"gender,omitempty"`
}

// CreateBookingRequest is the coordinator's input contract. Seats may be
// given as canonical numbers ("7") or display labels ("B3").
type CreateBookingRequest struct {
	ScheduleID     string           `json:"schedule_id" binding:"required"`
	Seats          []string         `json:"seats" binding:"required,min=1"`
	Passengers     []PassengerInput `json:"passengers" binding:"required,min=1"`
	ContactName    string           `json:"contact_name" binding:"required"`
	ContactPhone   string           `json:"contact_phone" binding:"required"`
	ContactEmail   *string          `json:"contact_email,omitempty"`
	PaymentMethod  string           `json:"payment_method" binding:"required"`
	TotalAmount    float64          `json:"total_amount" binding:"required,gt=0"`
	DiscountAmount float64          `json:"discount_amount"`
	TaxAmount      float64          `json:"tax_amount"`
	FinalAmount    float64          `json:"final_amount" binding:"required,gt=0"`
}

// Validate applies the checks gin's binding tags cannot express. It runs
// before any transaction opens.
func (r *CreateBookingRequest) Validate() error {
	if len(r.Passengers) != len(r.Seats) {
		return NewValidationError("passengers", "one passenger is required per seat")
	}
	if r.DiscountAmount < 0 {
		return NewValidationError("discount_amount", "must not be negative")
	}
	if r.TaxAmount < 0 {
		return NewValidationError("tax_amount", "must not be negative")
	}
	want := r.TotalAmount - r.DiscountAmount + r.TaxAmount
	if math.Abs(want-r.FinalAmount) > 0.01 {
		return NewValidationError("final_amount", "must equal total - discount + tax")
	}
	seen := make(map[string]bool, len(r.Seats))
	for _, s := range r.Seats {
		seat, err := ParseSeat(s)
		if err != nil {
			return NewValidationError("seats", err.Error())
		}
		if seen[seat.Label] {
			return NewValidationError("seats", "duplicate seat "+seat.Label)
		}
		seen[seat.Label] = true
	}
	return nil
}

// SeatSelection resolves the requested seats into value objects.
func (r *CreateBookingRequest) SeatSelection() ([]Seat, error) {
	seats := make([]Seat, len(r.Seats))
	for i, s := range r.Seats {
		seat, err := ParseSeat(s)
		if err != nil {
			return nil, NewValidationError("seats", err.Error())
		}
		seats[i] = seat
	}
	return seats, nil
}
