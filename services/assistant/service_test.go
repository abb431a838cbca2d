package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sessionRepo "skybook/database/repository/session"
	"skybook/models"
	"skybook/services/dialogue"
)

type fakeSearcher struct {
	offers []models.Offer
	err    error
	calls  int
}

func (f *fakeSearcher) Search(ctx context.Context, origin, destination, date string) ([]models.Offer, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	offers := make([]models.Offer, len(f.offers))
	copy(offers, f.offers)
	for i := range offers {
		offers[i].Origin = origin
		offers[i].Destination = destination
		offers[i].TravelDate = date
	}
	return offers, nil
}

type fakeBookingService struct {
	created []models.Booking
	err     error
}

func (f *fakeBookingService) Create(ctx context.Context, userID string, offer models.Offer, p models.PassengerDetails) (*models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	record := models.Booking{
		ID:          fmt.Sprintf("BOOK-%04d", len(f.created)+1),
		UserID:      userID,
		Flight:      offer,
		Passenger:   p,
		BasePrice:   offer.Price,
		Taxes:       offer.Price * 0.18,
		TotalAmount: offer.Price * 1.18,
	}
	f.created = append(f.created, record)
	return &record, nil
}

func (f *fakeBookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookingService) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeBookingService) ConfirmPayment(ctx context.Context, bookingID string) error {
	return nil
}

type fakeGateway struct {
	err   error
	calls int
}

func (f *fakeGateway) Initiate(ctx context.Context, bookingID string, amount float64) (*models.PaymentResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.PaymentResult{
		PaymentID: "pi_test_1",
		BookingID: bookingID,
		Amount:    amount,
		Currency:  "inr",
		Status:    "requires_payment_method",
	}, nil
}

type fakeGenerator struct {
	reply string
	err   error
}

func (f *fakeGenerator) Complete(ctx context.Context, messages []models.Message, hint string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// conflictingRepo fails the first n saves with ErrConflict.
type conflictingRepo struct {
	sessionRepo.Repository
	remaining int
	saves     int
}

func (r *conflictingRepo) Save(ctx context.Context, sess *models.Session) error {
	r.saves++
	if r.remaining > 0 {
		r.remaining--
		return sessionRepo.ErrConflict
	}
	return r.Repository.Save(ctx, sess)
}

func newTestService(repo sessionRepo.Repository, searcher *fakeSearcher, gw *fakeGateway, gen TextGenerator) (*DefaultAssistantService, *fakeBookingService) {
	bookings := &fakeBookingService{}
	svc := &DefaultAssistantService{
		Engine:    &dialogue.Engine{Clock: func() time.Time { return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC) }},
		Sessions:  repo,
		Flights:   searcher,
		Bookings:  bookings,
		Payments:  gw,
		Generator: gen,
		Logger:    zap.NewNop(),
	}
	return svc, bookings
}

func sampleSearcher() *fakeSearcher {
	return &fakeSearcher{offers: []models.Offer{
		{ID: "OF-1", Airline: "6E", Price: 4500},
		{ID: "OF-2", Airline: "AI", Price: 5200},
	}}
}

func TestHandleChatFullBookingFlow(t *testing.T) {
	repo := sessionRepo.NewInMemorySessionRepo(time.Minute)
	searcher := sampleSearcher()
	gateway := &fakeGateway{}
	svc, bookings := newTestService(repo, searcher, gateway, nil)
	ctx := context.Background()

	resp, err := svc.HandleChat(ctx, "u1", "s1", "I want to book a flight from Delhi to Mumbai tomorrow")
	require.NoError(t, err)
	assert.Equal(t, string(models.StepShowingFlights), resp.ConversationState)
	assert.Contains(t, resp.Response, "Available Flights (2 options)")
	assert.Len(t, resp.Options, 2)

	resp, err = svc.HandleChat(ctx, "u1", "s1", "1")
	require.NoError(t, err)
	assert.Equal(t, string(models.StepCollectingPassengerInfo), resp.ConversationState)
	assert.Contains(t, resp.Response, "full name")

	steps := []struct{ message, expect string }{
		{"john doe", "email"},
		{"john@example.com", "phone"},
		{"+911234567890", "old"},
	}
	for _, step := range steps {
		resp, err = svc.HandleChat(ctx, "u1", "s1", step.message)
		require.NoError(t, err)
		assert.Contains(t, resp.Response, step.expect)
	}

	resp, err = svc.HandleChat(ctx, "u1", "s1", "30")
	require.NoError(t, err)
	assert.Equal(t, string(models.StepPaymentConfirmation), resp.ConversationState)
	assert.Contains(t, resp.Response, "booking summary")
	assert.Contains(t, resp.Response, "John Doe")

	resp, err = svc.HandleChat(ctx, "u1", "s1", "yes, pay now")
	require.NoError(t, err)
	assert.Equal(t, string(models.StepCompleted), resp.ConversationState)
	assert.False(t, resp.RequiresInput)
	assert.Equal(t, "pi_test_1", resp.PaymentRef)
	require.Len(t, bookings.created, 1)
	assert.Equal(t, "OF-1", bookings.created[0].Flight.ID)
	assert.Equal(t, 1, gateway.calls)
}

func TestHandleChatPromptsForMissingOrigin(t *testing.T) {
	repo := sessionRepo.NewInMemorySessionRepo(time.Minute)
	svc, _ := newTestService(repo, sampleSearcher(), &fakeGateway{}, nil)

	resp, err := svc.HandleChat(context.Background(), "u1", "s1", "hello")
	require.NoError(t, err)
	assert.Equal(t, promptForMissingField(dialogue.FieldOrigin), resp.Response)
	assert.True(t, resp.RequiresInput)
}

func TestHandleChatGeneratorPhrasesPrompts(t *testing.T) {
	repo := sessionRepo.NewInMemorySessionRepo(time.Minute)
	gen := &fakeGenerator{reply: "Where will your journey begin?"}
	svc, _ := newTestService(repo, sampleSearcher(), &fakeGateway{}, gen)

	resp, err := svc.HandleChat(context.Background(), "u1", "s1", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Where will your journey begin?", resp.Response)
}

func TestHandleChatGeneratorFailureFallsBackToCannedReply(t *testing.T) {
	repo := sessionRepo.NewInMemorySessionRepo(time.Minute)
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc, _ := newTestService(repo, sampleSearcher(), &fakeGateway{}, gen)

	resp, err := svc.HandleChat(context.Background(), "u1", "s1", "hello")
	require.NoError(t, err)
	assert.Equal(t, promptForMissingField(dialogue.FieldOrigin), resp.Response)
}

func TestHandleChatSearchFailureDegradesAndResets(t *testing.T) {
	repo := sessionRepo.NewInMemorySessionRepo(time.Minute)
	searcher := &fakeSearcher{err: errors.New("upstream down")}
	svc, _ := newTestService(repo, searcher, &fakeGateway{}, nil)

	resp, err := svc.HandleChat(context.Background(), "u1", "s1", "book a flight from Delhi to Mumbai tomorrow")
	require.NoError(t, err)
	assert.Equal(t, searchFailedReply, resp.Response)
	assert.Equal(t, string(models.StepInitial), resp.ConversationState)

	// The context survives, so the retry searches again immediately.
	searcher.err = nil
	searcher.offers = sampleSearcher().offers
	resp, err = svc.HandleChat(context.Background(), "u1", "s1", "book that flight from Delhi to Mumbai tomorrow")
	require.NoError(t, err)
	assert.Contains(t, resp.Response, "Available Flights")
}

func TestHandleChatRetriesTurnOnSaveConflict(t *testing.T) {
	inner := sessionRepo.NewInMemorySessionRepo(time.Minute)
	repo := &conflictingRepo{Repository: inner, remaining: 1}
	svc, _ := newTestService(repo, sampleSearcher(), &fakeGateway{}, nil)

	resp, err := svc.HandleChat(context.Background(), "u1", "s1", "hello")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.saves)
	assert.NotEmpty(t, resp.Response)
}

func TestHandleChatGivesUpAfterRepeatedConflicts(t *testing.T) {
	inner := sessionRepo.NewInMemorySessionRepo(time.Minute)
	repo := &conflictingRepo{Repository: inner, remaining: 10}
	svc, _ := newTestService(repo, sampleSearcher(), &fakeGateway{}, nil)

	_, err := svc.HandleChat(context.Background(), "u1", "s1", "hello")
	assert.Error(t, err)
}

func TestHandleChatPaymentFailureKeepsConfirmationStep(t *testing.T) {
	repo := sessionRepo.NewInMemorySessionRepo(time.Minute)
	gateway := &fakeGateway{err: errors.New("gateway down")}
	svc, _ := newTestService(repo, sampleSearcher(), gateway, nil)
	ctx := context.Background()

	for _, msg := range []string{
		"book a flight from Delhi to Mumbai tomorrow",
		"1", "john doe", "john@example.com", "+911234567890", "30",
	} {
		_, err := svc.HandleChat(ctx, "u1", "s1", msg)
		require.NoError(t, err)
	}

	resp, err := svc.HandleChat(ctx, "u1", "s1", "pay")
	require.NoError(t, err)
	assert.Equal(t, paymentFailedReply, resp.Response)
	assert.Equal(t, string(models.StepPaymentConfirmation), resp.ConversationState)

	// Once the gateway recovers, saying pay again completes the booking.
	gateway.err = nil
	resp, err = svc.HandleChat(ctx, "u1", "s1", "pay")
	require.NoError(t, err)
	assert.Equal(t, string(models.StepCompleted), resp.ConversationState)
	assert.Equal(t, "pi_test_1", resp.PaymentRef)
}

func TestResetSessionStartsFresh(t *testing.T) {
	repo := sessionRepo.NewInMemorySessionRepo(time.Minute)
	svc, _ := newTestService(repo, sampleSearcher(), &fakeGateway{}, nil)
	ctx := context.Background()

	_, err := svc.HandleChat(ctx, "u1", "s1", "book a flight from Delhi to Mumbai tomorrow")
	require.NoError(t, err)
	require.NoError(t, svc.ResetSession(ctx, "u1", "s1"))

	resp, err := svc.HandleChat(ctx, "u1", "s1", "hello")
	require.NoError(t, err)
	assert.Equal(t, string(models.StepInitial), resp.ConversationState)
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	repo := sessionRepo.NewInMemorySessionRepo(time.Minute)
	svc, _ := newTestService(repo, sampleSearcher(), &fakeGateway{}, nil)
	ctx := context.Background()

	_, err := svc.HandleChat(ctx, "u1", "shared", "book a flight from Delhi to Mumbai tomorrow")
	require.NoError(t, err)

	resp, err := svc.HandleChat(ctx, "u2", "shared", "hello")
	require.NoError(t, err)
	assert.Equal(t, string(models.StepInitial), resp.ConversationState)
}
