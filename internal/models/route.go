package models

import "time"

// VehicleType identifies the mode of transport a route is operated with.
type VehicleType string

const (
	VehicleTypeBus    VehicleType = "bus"
	VehicleTypeTrain  VehicleType = "train"
	VehicleTypeFlight VehicleType = "flight"
)

// Route is an origin/destination/operator template with a base price and
// total seat capacity. Date-specific instances of it are Schedules.
type Route struct {
	ID            string      `json:"id" db:"id"`
	Origin        string      `json:"origin" db:"origin"`
	Destination   string      `json:"destination" db:"destination"`
	OperatorName  string      `json:"operator_name" db:"operator_name"`
	VehicleType   VehicleType `json:"vehicle_type" db:"vehicle_type"`
	DepartureTime string      `json:"departure_time" db:"departure_time"` // "15:04"
	BasePrice     float64     `json:"base_price" db:"base_price"`
	TotalSeats    int         `json:"total_seats" db:"total_seats"`
	IsActive      bool        `json:"is_active" db:"is_active"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// CreateRouteRequest is the admin payload for creating a route.
type CreateRouteRequest struct {
	Origin        string  `json:"origin" binding:"required"`
	Destination   string  `json:"destination" binding:"required"`
	OperatorName  string  `json:"operator_name" binding:"required"`
	VehicleType   string  `json:"vehicle_type" binding:"required,oneof=bus train flight"`
	DepartureTime string  `json:"departure_time" binding:"required"`
	BasePrice     float64 `json:"base_price" binding:"required,gt=0"`
	TotalSeats    int     `json:"total_seats" binding:"required,gt=0"`
}
