package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/models"
	"github.com/swifttravel/travel-booking-backend/internal/services"
)

// ScheduleHandler handles schedule listing, seat availability and the
// admin cancellation cascade
type ScheduleHandler struct {
	scheduleService *services.ScheduleService
	bookingService  *services.BookingService
	logger          *logrus.Logger
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(scheduleService *services.ScheduleService, bookingService *services.BookingService, logger *logrus.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		bookingService:  bookingService,
		logger:          logger,
	}
}

// List returns bookable schedules for a route in a date window, priced
// @Summary List bookable schedules
// @Tags Schedules
// @Produce json
// @Param route_id query string true "Route ID"
// @Param from query string false "Window start (YYYY-MM-DD), defaults to today"
// @Param to query string false "Window end (YYYY-MM-DD), defaults to from + 30 days"
// @Success 200 {array} models.ScheduleListItem
// @Failure 404 {object} map[string]interface{} "Route not found"
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	routeID := c.Query("route_id")
	if routeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "route_id is required"})
		return
	}

	from := time.Now()
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be in YYYY-MM-DD format"})
			return
		}
		from = parsed
	}

	to := from.AddDate(0, 0, 30)
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be in YYYY-MM-DD format"})
			return
		}
		to = parsed
	}

	items, err := h.scheduleService.ListBookable(routeID, from, to)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Seats returns the seat availability map for a schedule
// @Summary Get seat availability
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} models.SeatAvailability
// @Failure 404 {object} map[string]interface{} "Schedule not found"
// @Router /schedules/{id}/seats [get]
func (h *ScheduleHandler) Seats(c *gin.Context) {
	availability, err := h.bookingService.GetSeatAvailability(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, availability)
}

// Create creates a one-off schedule (admin)
// @Summary Create a schedule
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body models.CreateScheduleRequest true "Schedule request"
// @Success 201 {object} models.Schedule
// @Failure 409 {object} map[string]interface{} "Schedule already exists for route and date"
// @Router /admin/schedules [post]
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req models.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	schedule, err := h.scheduleService.CreateSchedule(&req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// Cancel runs the cancellation cascade for a schedule (admin)
// @Summary Cancel a schedule
// @Description Cancels the schedule, cancels and refunds every confirmed booking on it, frees all seats
// @Tags Admin
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} models.ScheduleCancellation
// @Failure 404 {object} map[string]interface{} "Schedule not found"
// @Router /admin/schedules/{id}/cancel [post]
func (h *ScheduleHandler) Cancel(c *gin.Context) {
	result, err := h.scheduleService.CancelSchedule(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
