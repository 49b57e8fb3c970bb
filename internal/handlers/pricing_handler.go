package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/services"
)

// PricingHandler handles price quote endpoints
type PricingHandler struct {
	pricingService *services.PricingService
	logger         *logrus.Logger
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(pricingService *services.PricingService, logger *logrus.Logger) *PricingHandler {
	return &PricingHandler{pricingService: pricingService, logger: logger}
}

// Quote resolves the per-seat price for a route and travel date
// @Summary Quote a price
// @Tags Pricing
// @Produce json
// @Param route_id query string true "Route ID"
// @Param travel_date query string true "Travel date (YYYY-MM-DD)"
// @Param recurring_schedule_id query string false "Recurring schedule the trip was generated from"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Route not found"
// @Router /quotes [get]
func (h *PricingHandler) Quote(c *gin.Context) {
	routeID := c.Query("route_id")
	if routeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "route_id is required"})
		return
	}

	travelDate, err := time.Parse("2006-01-02", c.Query("travel_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "travel_date must be in YYYY-MM-DD format"})
		return
	}

	var recurringScheduleID *string
	if v := c.Query("recurring_schedule_id"); v != "" {
		recurringScheduleID = &v
	}

	price, err := h.pricingService.QuotePrice(routeID, travelDate, recurringScheduleID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"route_id":    routeID,
		"travel_date": travelDate.Format("2006-01-02"),
		"price":       price,
	})
}
