package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/database"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

// RouteHandler handles route catalogue endpoints
type RouteHandler struct {
	routeRepo *database.RouteRepository
	logger    *logrus.Logger
}

// NewRouteHandler creates a new RouteHandler
func NewRouteHandler(routeRepo *database.RouteRepository, logger *logrus.Logger) *RouteHandler {
	return &RouteHandler{routeRepo: routeRepo, logger: logger}
}

// List returns all active routes
// @Summary List routes
// @Tags Routes
// @Produce json
// @Success 200 {array} models.Route
// @Router /routes [get]
func (h *RouteHandler) List(c *gin.Context) {
	routes, err := h.routeRepo.List()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// Get returns one route
// @Summary Get a route
// @Tags Routes
// @Produce json
// @Param id path string true "Route ID"
// @Success 200 {object} models.Route
// @Failure 404 {object} map[string]interface{} "Route not found"
// @Router /routes/{id} [get]
func (h *RouteHandler) Get(c *gin.Context) {
	route, err := h.routeRepo.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if route == nil {
		respondError(c, h.logger, &models.RouteNotFoundError{RouteID: c.Param("id")})
		return
	}
	c.JSON(http.StatusOK, route)
}

// Create registers a route (admin)
// @Summary Create a route
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.CreateRouteRequest true "Route"
// @Success 201 {object} models.Route
// @Failure 409 {object} map[string]interface{} "Route already exists"
// @Router /admin/routes [post]
func (h *RouteHandler) Create(c *gin.Context) {
	var req models.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if req.TotalSeats > models.MaxSeatCapacity {
		respondError(c, h.logger, models.NewValidationError("total_seats", "exceeds the supported seat grid"))
		return
	}

	route, err := h.routeRepo.Create(&req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"route_id": route.ID,
		"origin":   route.Origin,
		"dest":     route.Destination,
	}).Info("Route created")

	c.JSON(http.StatusCreated, route)
}
