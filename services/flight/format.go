// File: skybook/services/flight/format.go
package flight

import (
	"fmt"
	"strings"

	"skybook/models"
)

// FormatOffers renders a numbered list of offers for display in the chat.
func FormatOffers(offers []models.Offer) string {
	if len(offers) == 0 {
		return "No flights found for your route. Try different cities or dates."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available Flights (%d options)\n", len(offers))
	b.WriteString("--------------------------------------------------\n")
	for i, offer := range offers {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, offer.Airline, offer.ID)
		fmt.Fprintf(&b, "   %s -> %s (%s)\n", offer.Departure, offer.Arrival, offer.Duration)
		fmt.Fprintf(&b, "   INR %.2f | %d seats\n", offer.Price, offer.SeatsAvailable)
	}
	b.WriteString("\nReply with the flight number to book.")
	return b.String()
}
