package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBookingRequest() *CreateBookingRequest {
	return &CreateBookingRequest{
		ScheduleID:    "sched-1",
		Seats:         []string{"1", "2"},
		Passengers:    []PassengerInput{{Name: "Nimal Perera"}, {Name: "Kamala Perera"}},
		ContactName:   "Nimal Perera",
		ContactPhone:  "0771234567",
		PaymentMethod: "card",
		TotalAmount:   200.00,
		TaxAmount:     10.00,
		FinalAmount:   210.00,
	}
}

func TestCreateBookingRequestValidate(t *testing.T) {
	require.NoError(t, validBookingRequest().Validate())
}

func TestCreateBookingRequestValidate_PassengerSeatMismatch(t *testing.T) {
	req := validBookingRequest()
	req.Passengers = req.Passengers[:1]

	err := req.Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "passengers", vErr.Field)
}

func TestCreateBookingRequestValidate_Amounts(t *testing.T) {
	req := validBookingRequest()
	req.DiscountAmount = -1
	assert.Error(t, req.Validate())

	req = validBookingRequest()
	req.TaxAmount = -1
	assert.Error(t, req.Validate())

	req = validBookingRequest()
	req.FinalAmount = 999.99
	err := req.Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "final_amount", vErr.Field)
}

func TestCreateBookingRequestValidate_DuplicateSeats(t *testing.T) {
	// "5" and "B1" are the same seat in different representations.
	req := validBookingRequest()
	req.Seats = []string{"5", "B1"}

	err := req.Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Message, "duplicate seat B1")
}

func TestCreateBookingRequestValidate_BadSeat(t *testing.T) {
	req := validBookingRequest()
	req.Seats = []string{"1", "Z9"}
	assert.Error(t, req.Validate())
}

func TestSeatSelection(t *testing.T) {
	req := validBookingRequest()
	req.Seats = []string{"1", "B3"}

	seats, err := req.SeatSelection()
	require.NoError(t, err)
	require.Len(t, seats, 2)
	assert.Equal(t, Seat{Number: 1, Label: "A1"}, seats[0])
	assert.Equal(t, Seat{Number: 7, Label: "B3"}, seats[1])
}
