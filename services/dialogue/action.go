// File: skybook/services/dialogue/action.go
package dialogue

// ActionType enumerates what the caller must do after a turn is advanced.
type ActionType string

const (
	// ActionRequestMissingField asks the user for the first missing trip field.
	ActionRequestMissingField ActionType = "request_missing_field"
	// ActionTriggerSearch runs a flight search for a complete trip intent.
	ActionTriggerSearch ActionType = "trigger_search"
	// ActionConfirmSelection pins the offer the user picked by index.
	ActionConfirmSelection ActionType = "confirm_selection"
	// ActionRequestClarification re-prompts when a message cannot be acted on.
	ActionRequestClarification ActionType = "request_clarification"
	// ActionCollectField asks for the next missing passenger detail.
	ActionCollectField ActionType = "collect_field"
	// ActionConfirmBooking summarizes the booking and asks the user to pay.
	ActionConfirmBooking ActionType = "confirm_booking"
	// ActionInitiatePayment hands off to the payment collaborator.
	ActionInitiatePayment ActionType = "initiate_payment"
	// ActionFallback returns a generic clarifying reply.
	ActionFallback ActionType = "fallback"
)

// Trip field names used by ActionRequestMissingField.
const (
	FieldOrigin        = "origin"
	FieldDestination   = "destination"
	FieldDepartureDate = "departure_date"
)

// Passenger field names used by ActionCollectField.
const (
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldPhone    = "phone"
	FieldAge      = "age"
)

// Action is the decision the state machine hands back to its caller. The
// caller is responsible for invoking the flight-search, booking and payment
// collaborators and for phrasing the reply; the core never performs I/O.
type Action struct {
	Type           ActionType
	Field          string // set for request_missing_field and collect_field
	Origin         string // set for trigger_search
	Destination    string
	TravelDate     string
	SelectionIndex int // 1-based, set for confirm_selection
}
