package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

func newMockRouteRepo(t *testing.T) (*RouteRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRouteRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestRouteCreate(t *testing.T) {
	repo, mock := newMockRouteRepo(t)
	now := time.Now()

	req := &models.CreateRouteRequest{
		Origin:        "Colombo",
		Destination:   "Kandy",
		OperatorName:  "HillLine Express",
		VehicleType:   "bus",
		DepartureTime: "08:30",
		BasePrice:     100.00,
		TotalSeats:    48,
	}

	mock.ExpectQuery(`INSERT INTO routes`).
		WithArgs(req.Origin, req.Destination, req.OperatorName, models.VehicleTypeBus,
			req.DepartureTime, req.BasePrice, req.TotalSeats).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("route-1", now, now))

	route, err := repo.Create(req)
	require.NoError(t, err)
	assert.Equal(t, "route-1", route.ID)
	assert.True(t, route.IsActive)
	assert.Equal(t, models.VehicleTypeBus, route.VehicleType)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouteCreate_Duplicate(t *testing.T) {
	repo, mock := newMockRouteRepo(t)

	mock.ExpectQuery(`INSERT INTO routes`).
		WillReturnError(uniqueViolation("uq_route_identity"))

	route, err := repo.Create(&models.CreateRouteRequest{
		Origin:        "Colombo",
		Destination:   "Kandy",
		OperatorName:  "HillLine Express",
		VehicleType:   "bus",
		DepartureTime: "08:30",
		BasePrice:     100.00,
		TotalSeats:    48,
	})
	assert.Nil(t, route)

	var conflict *models.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Message, "already exists")
}

func TestRouteGetByID_Missing(t *testing.T) {
	repo, mock := newMockRouteRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM routes WHERE id`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	route, err := repo.GetByID("missing")
	require.NoError(t, err)
	assert.Nil(t, route)
}

func TestRouteUpdatePrice_NotFound(t *testing.T) {
	repo, mock := newMockRouteRepo(t)

	mock.ExpectExec(`UPDATE routes SET base_price`).
		WithArgs(120.00, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePrice("missing", 120.00)
	var notFound *models.RouteNotFoundError
	assert.ErrorAs(t, err, &notFound)
}
