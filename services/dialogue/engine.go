// File: skybook/services/dialogue/engine.go
package dialogue

import (
	"regexp"
	"strconv"
	"time"

	"skybook/models"
)

// messageWindow bounds the history handed to the language model: the system
// prompt plus the most recent messages. Pruning is presentational only and
// never touches the conversation context.
const messageWindow = 10

var indexRe = regexp.MustCompile(`\d+`)

// Engine is the dialogue state machine. Advance is a pure function of
// (session, message): it performs no I/O, never blocks and never panics,
// which keeps every turn deterministically testable and safely retryable
// after a storage conflict.
type Engine struct {
	// Clock anchors relative dates; defaults to time.Now.
	Clock func() time.Time
}

func NewEngine() *Engine {
	return &Engine{Clock: time.Now}
}

func (e *Engine) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}

// Advance appends the user message, extracts and merges entities, classifies
// intent against the step the session was in before this turn, and computes
// the next required action. The input session is not mutated.
func (e *Engine) Advance(sess models.Session, text string) (models.Session, Action) {
	now := e.now()
	sess = cloneSession(sess)
	sess.Messages = appendPruned(sess.Messages, models.Message{
		Role:      models.RoleUser,
		Content:   text,
		Timestamp: now,
	})

	prevStep := sess.Context.BookingStep
	entities := ExtractEntities(text, now)
	sess.Context = MergeContext(sess.Context, entities)
	intent := ClassifyIntent(text, prevStep)

	var action Action
	switch intent {
	case models.IntentBookFlight:
		if missing := firstMissingTripField(sess.Context); missing != "" {
			action = Action{Type: ActionRequestMissingField, Field: missing}
			break
		}
		sess.Context.BookingStep = models.StepShowingFlights
		action = Action{
			Type:        ActionTriggerSearch,
			Origin:      sess.Context.Origin,
			Destination: sess.Context.Destination,
			TravelDate:  sess.Context.DepartureDate,
		}

	case models.IntentSelectFlight:
		idx := parseSelectionIndex(text, len(sess.Offers))
		if idx == 0 {
			action = Action{Type: ActionRequestClarification}
			break
		}
		sess.Context.BookingStep = models.StepCollectingPassengerInfo
		action = Action{Type: ActionConfirmSelection, SelectionIndex: idx}

	case models.IntentProvideInfo:
		if prevStep == models.StepCollectingPassengerInfo || prevStep == models.StepCollectingContactInfo {
			sess.Passenger = MergePassenger(sess.Passenger, ExtractPassenger(text))
			if missing := firstMissingPassengerField(sess.Passenger); missing != "" {
				if missing == FieldEmail || missing == FieldPhone {
					sess.Context.BookingStep = models.StepCollectingContactInfo
				}
				action = Action{Type: ActionCollectField, Field: missing}
				break
			}
			sess.Context.BookingStep = models.StepPaymentConfirmation
			action = Action{Type: ActionConfirmBooking}
			break
		}
		if missing := firstMissingTripField(sess.Context); missing != "" {
			action = Action{Type: ActionRequestMissingField, Field: missing}
			break
		}
		action = Action{Type: ActionFallback}

	case models.IntentPayment:
		if prevStep == models.StepPaymentConfirmation {
			sess.Context.BookingStep = models.StepCompleted
			action = Action{Type: ActionInitiatePayment}
			break
		}
		action = Action{Type: ActionFallback}

	default:
		action = Action{Type: ActionFallback}
	}

	sess.UpdatedAt = now
	return sess, action
}

// AppendAssistantReply records the phrased reply in the session history,
// applying the same bounded window as user messages.
func (e *Engine) AppendAssistantReply(sess models.Session, reply string) models.Session {
	sess = cloneSession(sess)
	sess.Messages = appendPruned(sess.Messages, models.Message{
		Role:      models.RoleAssistant,
		Content:   reply,
		Timestamp: e.now(),
	})
	return sess
}

// firstMissingTripField returns the first absent trip field in the fixed
// prompting order origin, destination, departure date.
func firstMissingTripField(ctx models.ConversationContext) string {
	switch {
	case ctx.Origin == "":
		return FieldOrigin
	case ctx.Destination == "":
		return FieldDestination
	case ctx.DepartureDate == "":
		return FieldDepartureDate
	}
	return ""
}

// firstMissingPassengerField returns the next passenger detail to collect:
// name first, then contact details, then age.
func firstMissingPassengerField(p models.PassengerDetails) string {
	switch {
	case p.FullName == "":
		return FieldFullName
	case p.Email == "":
		return FieldEmail
	case p.Phone == "":
		return FieldPhone
	case p.Age == 0:
		return FieldAge
	}
	return ""
}

// parseSelectionIndex extracts a 1-based offer index from the message.
// Returns 0 when no usable index is present or it is out of range for the
// offers currently shown.
func parseSelectionIndex(text string, offerCount int) int {
	m := indexRe.FindString(text)
	if m == "" {
		return 0
	}
	idx, err := strconv.Atoi(m)
	if err != nil || idx < 1 {
		return 0
	}
	if offerCount > 0 && idx > offerCount {
		return 0
	}
	return idx
}

// appendPruned appends a message and trims the history to the system prompt
// plus the most recent messageWindow-1 entries.
func appendPruned(messages []models.Message, msg models.Message) []models.Message {
	out := make([]models.Message, len(messages), len(messages)+1)
	copy(out, messages)
	out = append(out, msg)
	if len(out) <= messageWindow {
		return out
	}
	pruned := make([]models.Message, 0, messageWindow)
	if out[0].Role == models.RoleSystem {
		pruned = append(pruned, out[0])
	}
	pruned = append(pruned, out[len(out)-(messageWindow-1):]...)
	return pruned
}

// cloneSession copies the session deeply enough that advancing one copy
// never aliases the slices of another.
func cloneSession(sess models.Session) models.Session {
	out := sess
	out.Messages = make([]models.Message, len(sess.Messages))
	copy(out.Messages, sess.Messages)
	if sess.Offers != nil {
		out.Offers = make([]models.Offer, len(sess.Offers))
		copy(out.Offers, sess.Offers)
	}
	if sess.SelectedOffer != nil {
		offer := *sess.SelectedOffer
		out.SelectedOffer = &offer
	}
	return out
}
