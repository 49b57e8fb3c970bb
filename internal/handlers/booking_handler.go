package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/swifttravel/travel-booking-backend/internal/models"
	"github.com/swifttravel/travel-booking-backend/internal/services"
	"github.com/swifttravel/travel-booking-backend/internal/ticket"
)

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingService *services.BookingService
	logger         *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService *services.BookingService, logger *logrus.Logger) *BookingHandler {
	return &BookingHandler{bookingService: bookingService, logger: logger}
}

// Create books seats on a schedule
// @Summary Create a booking
// @Description Books the requested seats atomically; on a seat conflict nothing is persisted
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body models.CreateBookingRequest true "Booking request"
// @Success 201 {object} models.Booking
// @Failure 400 {object} map[string]interface{} "Validation error"
// @Failure 409 {object} map[string]interface{} "Seats no longer available"
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	isAdmin := c.GetBool("is_admin")
	booking, err := h.bookingService.CreateBooking(&req, c.Request.UserAgent(), isAdmin)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetByPNR returns a booking with passengers and seats
// @Summary Get booking by reference
// @Tags Bookings
// @Produce json
// @Param pnr path string true "Booking reference"
// @Success 200 {object} models.Booking
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Router /bookings/{pnr} [get]
func (h *BookingHandler) GetByPNR(c *gin.Context) {
	booking, err := h.bookingService.GetByPNR(c.Param("pnr"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Cancel cancels one booking and frees its seats
// @Summary Cancel a booking
// @Tags Bookings
// @Produce json
// @Param pnr path string true "Booking reference"
// @Success 200 {object} models.Booking
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Failure 409 {object} map[string]interface{} "Booking already cancelled or completed"
// @Router /bookings/{pnr}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	booking, err := h.bookingService.CancelByPNR(c.Param("pnr"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// TicketQR returns a PNG QR code for a confirmed booking
// @Summary Get booking ticket QR
// @Tags Bookings
// @Produce png
// @Param pnr path string true "Booking reference"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{} "Booking not found"
// @Router /bookings/{pnr}/qr [get]
func (h *BookingHandler) TicketQR(c *gin.Context) {
	booking, err := h.bookingService.GetByPNR(c.Param("pnr"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	png, err := ticket.QRPNG(booking)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
