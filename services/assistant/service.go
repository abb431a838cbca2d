// File: skybook/services/assistant/service.go
package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	sessionRepo "skybook/database/repository/session"
	"skybook/models"
	"skybook/services/booking"
	"skybook/services/dialogue"
	"skybook/services/flight"
	"skybook/services/payment"
)

// maxTurnRetries bounds how often a turn is replayed after a concurrent
// write to the same session.
const maxTurnRetries = 3

// Service is the turn orchestrator: it owns all I/O around the pure
// dialogue core.
type Service interface {
	HandleChat(ctx context.Context, userID, sessionID, text string) (*models.ChatResponse, error)
	ResetSession(ctx context.Context, userID, sessionID string) error
}

type DefaultAssistantService struct {
	Engine    *dialogue.Engine
	Sessions  sessionRepo.Repository
	Flights   flight.Searcher
	Bookings  booking.Service
	Payments  payment.Gateway
	Generator TextGenerator
	Logger    *zap.Logger
}

// sessionKey namespaces session documents per user, so one user cannot
// resume another's conversation by guessing a session id.
func sessionKey(userID, sessionID string) string {
	return userID + "_" + sessionID
}

// HandleChat processes one turn. The whole load-advance-save cycle is
// retried on a storage conflict; the core is pure, so a replayed turn
// reaches the same decision against the fresh session.
func (s *DefaultAssistantService) HandleChat(ctx context.Context, userID, sessionID, text string) (*models.ChatResponse, error) {
	key := sessionKey(userID, sessionID)

	for attempt := 0; attempt < maxTurnRetries; attempt++ {
		sess, err := s.Sessions.Get(ctx, key)
		if errors.Is(err, sessionRepo.ErrNotFound) {
			sess = models.NewSession(key, userID)
		} else if err != nil {
			return nil, err
		}

		next, action := s.Engine.Advance(*sess, text)
		resp := s.dispatch(ctx, &next, action)

		reply := s.phrase(ctx, &next, action, resp.Response)
		resp.Response = reply
		resp.ConversationState = string(next.Context.BookingStep)

		next = s.Engine.AppendAssistantReply(next, reply)

		if err := s.Sessions.Save(ctx, &next); err != nil {
			if errors.Is(err, sessionRepo.ErrConflict) {
				s.Logger.Debug("session conflict, replaying turn",
					zap.String("sessionId", key), zap.Int("attempt", attempt+1))
				continue
			}
			return nil, err
		}
		return resp, nil
	}
	return nil, fmt.Errorf("session %s: too many concurrent updates", key)
}

// ResetSession discards the conversation, starting the next turn fresh.
func (s *DefaultAssistantService) ResetSession(ctx context.Context, userID, sessionID string) error {
	return s.Sessions.Delete(ctx, sessionKey(userID, sessionID))
}

// dispatch executes the action decided by the dialogue core, mutating the
// advanced session (offers, selection) and building the deterministic reply.
func (s *DefaultAssistantService) dispatch(ctx context.Context, sess *models.Session, action dialogue.Action) *models.ChatResponse {
	resp := &models.ChatResponse{RequiresInput: true}

	switch action.Type {
	case dialogue.ActionRequestMissingField:
		resp.Response = promptForMissingField(action.Field)

	case dialogue.ActionTriggerSearch:
		offers, err := s.Flights.Search(ctx, action.Origin, action.Destination, action.TravelDate)
		if err != nil {
			s.Logger.Error("flight search failed",
				zap.String("origin", action.Origin),
				zap.String("destination", action.Destination),
				zap.Error(err))
			// Step back so the next booking message can retry the search.
			sess.Context.BookingStep = models.StepInitial
			resp.Response = searchFailedReply
			return resp
		}
		if len(offers) == 0 {
			sess.Context.BookingStep = models.StepInitial
			resp.Response = flight.FormatOffers(nil)
			return resp
		}
		sess.Offers = offers
		sess.SelectedOffer = nil
		resp.Response = flight.FormatOffers(offers)
		resp.Options = offerOptions(offers)

	case dialogue.ActionConfirmSelection:
		if action.SelectionIndex < 1 || action.SelectionIndex > len(sess.Offers) {
			resp.Response = clarificationReply
			return resp
		}
		offer := sess.Offers[action.SelectionIndex-1]
		sess.SelectedOffer = &offer
		resp.Response = fmt.Sprintf("Great choice: %s (%s), %s -> %s on %s.\n%s",
			offer.Airline, offer.ID, offer.Origin, offer.Destination, offer.TravelDate,
			promptForCollectField(dialogue.FieldFullName))

	case dialogue.ActionCollectField:
		resp.Response = promptForCollectField(action.Field)

	case dialogue.ActionConfirmBooking:
		resp.Response = bookingSummary(sess.SelectedOffer, sess.Passenger)

	case dialogue.ActionInitiatePayment:
		return s.completeBooking(ctx, sess)

	case dialogue.ActionRequestClarification:
		resp.Response = clarificationReply

	default:
		resp.Response = fallbackReply
	}
	return resp
}

// completeBooking creates the booking record and initiates payment once the
// user confirms at the payment step.
func (s *DefaultAssistantService) completeBooking(ctx context.Context, sess *models.Session) *models.ChatResponse {
	resp := &models.ChatResponse{RequiresInput: true}

	if sess.SelectedOffer == nil {
		// Offers were lost (expired session restored mid-flow); restart.
		sess.Context.BookingStep = models.StepInitial
		resp.Response = fallbackReply
		return resp
	}

	record, err := s.Bookings.Create(ctx, sess.UserID, *sess.SelectedOffer, sess.Passenger)
	if err != nil {
		s.Logger.Error("booking creation failed", zap.Error(err))
		sess.Context.BookingStep = models.StepPaymentConfirmation
		resp.Response = paymentFailedReply
		return resp
	}

	result, err := s.Payments.Initiate(ctx, record.ID, record.TotalAmount)
	if err != nil {
		s.Logger.Error("payment initiation failed",
			zap.String("bookingId", record.ID), zap.Error(err))
		sess.Context.BookingStep = models.StepPaymentConfirmation
		resp.Response = paymentFailedReply
		resp.BookingID = record.ID
		return resp
	}

	resp.BookingID = record.ID
	resp.PaymentRef = result.PaymentID
	resp.RequiresInput = false
	resp.Response = fmt.Sprintf(
		"Booking %s confirmed. Total INR %.2f (incl. taxes). Payment %s has been initiated; your ticket will be emailed to %s.",
		record.ID, record.TotalAmount, result.PaymentID, sess.Passenger.Email)
	return resp
}

// phrase asks the language model to rephrase conversational prompts.
// Structured output (flight lists, summaries, confirmations) is returned
// verbatim, and any generation failure falls back to the deterministic text.
func (s *DefaultAssistantService) phrase(ctx context.Context, sess *models.Session, action dialogue.Action, base string) string {
	if s.Generator == nil {
		return base
	}
	switch action.Type {
	case dialogue.ActionTriggerSearch, dialogue.ActionConfirmBooking, dialogue.ActionInitiatePayment, dialogue.ActionConfirmSelection:
		return base
	}

	genCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	text, err := s.Generator.Complete(genCtx, sess.Messages, contextHint(sess.Context)+"; intended reply: "+base)
	if err != nil {
		s.Logger.Warn("text generation failed, using canned reply", zap.Error(err))
		return base
	}
	return text
}

func offerOptions(offers []models.Offer) []string {
	options := make([]string, len(offers))
	for i, offer := range offers {
		options[i] = fmt.Sprintf("%d. %s %s INR %.2f", i+1, offer.Airline, offer.ID, offer.Price)
	}
	return options
}
