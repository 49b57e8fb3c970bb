package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

// respondError maps the service error taxonomy onto HTTP statuses. Seat
// conflicts carry the conflicting labels so clients can prompt
// reselection.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var validationErr *models.ValidationError
	var seatErr *models.SeatUnavailableError
	var scheduleErr *models.ScheduleNotFoundError
	var routeErr *models.RouteNotFoundError
	var bookingErr *models.BookingNotFoundError
	var conflictErr *models.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.As(err, &seatErr):
		c.JSON(http.StatusConflict, gin.H{"error": seatErr.Error(), "unavailable_seats": seatErr.SeatLabels})
	case errors.As(err, &scheduleErr):
		c.JSON(http.StatusNotFound, gin.H{"error": scheduleErr.Error()})
	case errors.As(err, &routeErr):
		c.JSON(http.StatusNotFound, gin.H{"error": routeErr.Error()})
	case errors.As(err, &bookingErr):
		c.JSON(http.StatusNotFound, gin.H{"error": bookingErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error()})
	default:
		logger.WithFields(logrus.Fields{
			"error": err.Error(),
			"path":  c.FullPath(),
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
