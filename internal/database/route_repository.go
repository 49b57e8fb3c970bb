package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

// RouteRepository handles route database operations
type RouteRepository struct {
	db *sqlx.DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db *sqlx.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

const routeColumns = `id, origin, destination, operator_name, vehicle_type,
	departure_time, base_price, total_seats, is_active, created_at, updated_at`

// Create inserts a new route. A duplicate origin/destination/operator/
// departure-time combination surfaces as a ConflictError.
func (r *RouteRepository) Create(req *models.CreateRouteRequest) (*models.Route, error) {
	route := &models.Route{
		Origin:        req.Origin,
		Destination:   req.Destination,
		OperatorName:  req.OperatorName,
		VehicleType:   models.VehicleType(req.VehicleType),
		DepartureTime: req.DepartureTime,
		BasePrice:     req.BasePrice,
		TotalSeats:    req.TotalSeats,
		IsActive:      true,
	}

	err := r.db.QueryRowx(`
		INSERT INTO routes (origin, destination, operator_name, vehicle_type, departure_time, base_price, total_seats)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		route.Origin, route.Destination, route.OperatorName, route.VehicleType,
		route.DepartureTime, route.BasePrice, route.TotalSeats,
	).Scan(&route.ID, &route.CreatedAt, &route.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_route_identity") {
			return nil, &models.ConflictError{
				Message: fmt.Sprintf("route %s-%s by %s departing %s already exists",
					req.Origin, req.Destination, req.OperatorName, req.DepartureTime),
			}
		}
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	return route, nil
}

// GetByID retrieves a route by ID. Returns (nil, nil) when absent.
func (r *RouteRepository) GetByID(routeID string) (*models.Route, error) {
	route := &models.Route{}
	err := r.db.Get(route, `SELECT `+routeColumns+` FROM routes WHERE id = $1`, routeID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	return route, nil
}

// List retrieves all routes, active first.
func (r *RouteRepository) List() ([]models.Route, error) {
	var routes []models.Route
	err := r.db.Select(&routes, `
		SELECT `+routeColumns+` FROM routes
		ORDER BY is_active DESC, origin, destination`)
	if err != nil {
		return nil, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, nil
}

// UpdatePrice updates a route's base price.
func (r *RouteRepository) UpdatePrice(routeID string, basePrice float64) error {
	result, err := r.db.Exec(`
		UPDATE routes SET base_price = $1, updated_at = NOW() WHERE id = $2`,
		basePrice, routeID)
	if err != nil {
		return fmt.Errorf("failed to update route price: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &models.RouteNotFoundError{RouteID: routeID}
	}
	return nil
}

// SetActive toggles a route's active flag.
func (r *RouteRepository) SetActive(routeID string, active bool) error {
	result, err := r.db.Exec(`
		UPDATE routes SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		active, routeID)
	if err != nil {
		return fmt.Errorf("failed to update route status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &models.RouteNotFoundError{RouteID: routeID}
	}
	return nil
}
