// File: skybook/services/dialogue/intent.go
package dialogue

import (
	"strings"

	"skybook/models"
)

var bookingKeywords = []string{"book", "flight", "ticket", "travel"}

// ClassifyIntent maps a user message and the current booking step to an
// intent. Rules are priority-ordered: the first match wins. A message that
// re-states booking keywords re-triggers IntentBookFlight even mid-flow;
// that precedence is intentional and pinned by tests.
func ClassifyIntent(text string, step models.BookingStep) models.Intent {
	lower := strings.ToLower(text)

	if hasBookingKeyword(lower) && strings.Contains(lower, "from") && strings.Contains(lower, "to") {
		return models.IntentBookFlight
	}

	if step == models.StepShowingFlights {
		if containsDigit(text) || strings.Contains(lower, "select") || strings.Contains(lower, "choose") {
			return models.IntentSelectFlight
		}
	}

	if step == models.StepCollectingPassengerInfo || step == models.StepCollectingContactInfo {
		return models.IntentProvideInfo
	}

	if step == models.StepPaymentConfirmation {
		return models.IntentPayment
	}

	return models.IntentProvideInfo
}

func hasBookingKeyword(lower string) bool {
	for _, kw := range bookingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func containsDigit(text string) bool {
	for _, r := range text {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
