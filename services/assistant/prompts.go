// File: skybook/services/assistant/prompts.go
package assistant

import (
	"fmt"
	"strings"

	"skybook/models"
	"skybook/services/dialogue"
)

// Canned replies used directly when the language model is unavailable, and
// as the deterministic base the model is asked to rephrase.
const (
	clarificationReply = "I didn't catch which flight you'd like. Please reply with the flight number from the list."
	fallbackReply      = "I can help you book a flight. Tell me where you're flying from, where to, and when."
	searchFailedReply  = "I'm having trouble searching for flights right now. Please try again in a moment."
	paymentFailedReply = "I couldn't start the payment just now. Please say \"pay\" to try again."
)

var missingFieldPrompts = map[string]string{
	dialogue.FieldOrigin:        "Which city are you flying from?",
	dialogue.FieldDestination:   "Which city are you flying to?",
	dialogue.FieldDepartureDate: "What date would you like to travel? You can say \"tomorrow\" or give a date like 25-12-2026.",
}

var collectFieldPrompts = map[string]string{
	dialogue.FieldFullName: "Please share the passenger's full name.",
	dialogue.FieldEmail:    "What email address should the ticket go to?",
	dialogue.FieldPhone:    "And a contact phone number?",
	dialogue.FieldAge:      "How old is the passenger?",
}

func promptForMissingField(field string) string {
	if p, ok := missingFieldPrompts[field]; ok {
		return p
	}
	return fallbackReply
}

func promptForCollectField(field string) string {
	if p, ok := collectFieldPrompts[field]; ok {
		return p
	}
	return fallbackReply
}

// bookingSummary is shown when all passenger details are collected.
func bookingSummary(offer *models.Offer, p models.PassengerDetails) string {
	var b strings.Builder
	b.WriteString("Here's your booking summary:\n")
	if offer != nil {
		fmt.Fprintf(&b, "Flight: %s (%s), %s -> %s on %s\n",
			offer.Airline, offer.ID, offer.Origin, offer.Destination, offer.TravelDate)
		fmt.Fprintf(&b, "Fare: INR %.2f plus taxes\n", offer.Price)
	}
	fmt.Fprintf(&b, "Passenger: %s, %d, %s, %s\n", p.FullName, p.Age, p.Email, p.Phone)
	b.WriteString("Reply \"pay\" to confirm and pay.")
	return b.String()
}

// contextHint summarizes the merged context for the language model.
func contextHint(ctx models.ConversationContext) string {
	var parts []string
	if ctx.Origin != "" && ctx.Destination != "" {
		parts = append(parts, fmt.Sprintf("from %s to %s", ctx.Origin, ctx.Destination))
	}
	if ctx.DepartureDate != "" {
		parts = append(parts, "on "+ctx.DepartureDate)
	}
	parts = append(parts, "step: "+string(ctx.BookingStep))
	return strings.Join(parts, ", ")
}
