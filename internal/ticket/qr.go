// Package ticket renders boarding artifacts for confirmed bookings.
package ticket

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/swifttravel/travel-booking-backend/internal/models"
)

// QRPNG encodes a booking's reference payload as a 256x256 PNG for
// check-in scanners. The payload carries the PNR and seat labels so a
// scan is meaningful even offline.
func QRPNG(booking *models.Booking) ([]byte, error) {
	if booking.Status != models.BookingStatusConfirmed {
		return nil, &models.ConflictError{Message: fmt.Sprintf("booking %s is %s, no ticket available", booking.PNR, booking.Status)}
	}

	payload := fmt.Sprintf("PNR:%s|SCHEDULE:%s|SEATS:%s",
		booking.PNR, booking.ScheduleID, strings.Join(booking.SeatLabelList(), ","))

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ticket QR: %w", err)
	}
	return png, nil
}
