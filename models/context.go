package models

// BookingStep tracks how far a conversation has progressed through the
// booking flow. Transitions are data-driven, not strictly linear.
type BookingStep string

const (
	StepInitial                 BookingStep = "initial"
	StepShowingFlights          BookingStep = "showing_flights"
	StepSelectingFlight         BookingStep = "selecting_flight"
	StepCollectingPassengerInfo BookingStep = "collecting_passenger_info"
	StepCollectingContactInfo   BookingStep = "collecting_contact_info"
	StepPaymentConfirmation     BookingStep = "payment_confirmation"
	StepCompleted               BookingStep = "completed"
)

// Intent is the classified purpose of a single user message.
type Intent string

const (
	IntentBookFlight     Intent = "book_flight"
	IntentSelectFlight   Intent = "select_flight"
	IntentProvideInfo    Intent = "provide_info"
	IntentConfirmBooking Intent = "confirm_booking"
	IntentPayment        Intent = "payment"
)

// ConversationContext is the booking intent accumulated across a session.
// Empty strings mean "not yet known"; once a field is set it is only ever
// overwritten by a fresh non-empty extraction, never cleared.
type ConversationContext struct {
	Origin         string      `json:"origin,omitempty"`
	Destination    string      `json:"destination,omitempty"`
	DepartureDate  string      `json:"departureDate,omitempty"` // YYYY-MM-DD
	ReturnDate     string      `json:"returnDate,omitempty"`    // YYYY-MM-DD
	PassengerCount int         `json:"passengerCount,omitempty"`
	BookingStep    BookingStep `json:"bookingStep"`
}

// ExtractedEntities is the per-turn result of entity extraction. It is
// transient: merged into the ConversationContext, never persisted itself.
type ExtractedEntities struct {
	Origin      string
	Destination string
	TravelDate  string // YYYY-MM-DD
}
