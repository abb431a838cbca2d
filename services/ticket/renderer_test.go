package ticket

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybook/models"
)

func TestRenderWritesTicketFile(t *testing.T) {
	dir := t.TempDir()
	r := NewTextRenderer(dir)

	booking := &models.Booking{
		ID: "BOOK-1A2B3C4D",
		Flight: models.Offer{
			ID:          "OF-1",
			Airline:     "6E",
			Origin:      "Delhi",
			Destination: "Mumbai",
			TravelDate:  "2026-09-01",
			Departure:   "08:00",
			Arrival:     "10:10",
		},
		Passenger: models.PassengerDetails{
			FullName: "John Doe",
			Email:    "john@example.com",
			Phone:    "+911234567890",
			Age:      30,
		},
		BasePrice:   4500,
		Taxes:       810,
		TotalAmount: 5310,
		Status:      models.BookingStatusConfirmed,
	}

	path, err := r.Render(booking)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(content)
	assert.Contains(t, text, "Booking ID: BOOK-1A2B3C4D")
	assert.Contains(t, text, "Name:  John Doe")
	assert.Contains(t, text, "Route:     Delhi -> Mumbai")
	assert.Contains(t, text, "Total:     INR 5310.00")
}
