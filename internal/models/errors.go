package models

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or missing input. It is returned
// before any transaction opens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-scoped validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SeatUnavailableError reports that one or more requested seats are
// already booked on the target schedule. The whole booking transaction
// has been rolled back when this is returned.
type SeatUnavailableError struct {
	ScheduleID string
	SeatLabels []string
}

func (e *SeatUnavailableError) Error() string {
	return fmt.Sprintf("seats no longer available on schedule %s: %s",
		e.ScheduleID, strings.Join(e.SeatLabels, ", "))
}

// ScheduleNotFoundError reports a schedule that does not exist or has
// been cancelled.
type ScheduleNotFoundError struct {
	ScheduleID string
}

func (e *ScheduleNotFoundError) Error() string {
	return fmt.Sprintf("schedule %s not found or no longer bookable", e.ScheduleID)
}

// RouteNotFoundError reports a route that does not exist or is inactive.
type RouteNotFoundError struct {
	RouteID string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("route %s not found or inactive", e.RouteID)
}

// BookingNotFoundError reports a booking that does not exist.
type BookingNotFoundError struct {
	Ref string
}

func (e *BookingNotFoundError) Error() string {
	return fmt.Sprintf("booking %s not found", e.Ref)
}

// ConflictError reports a uniqueness violation outside the seat ledger,
// e.g. a duplicate route/operator/departure-time combination.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
