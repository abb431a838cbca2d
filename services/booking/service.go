// File: skybook/services/booking/service.go
package booking

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "skybook/database/repository/booking"
	"skybook/models"
)

// gstRate is the tax applied on the base fare.
const gstRate = 0.18

type DefaultBookingService struct {
	Repo    bookingRepo.BookingRepository
	Tickets TicketQueue
	Logger  *zap.Logger
}

// Create persists a confirmed booking for the selected offer: fare plus GST,
// payment pending. Ticket rendering is queued in the background so the chat
// turn does not wait on file generation.
func (s *DefaultBookingService) Create(ctx context.Context, userID string, offer models.Offer, passenger models.PassengerDetails) (*models.Booking, error) {
	base := offer.Price
	taxes := round2(base * gstRate)
	now := time.Now()

	record := models.Booking{
		ID:            newID("BOOK", 8),
		UserID:        userID,
		Flight:        offer,
		Passenger:     passenger,
		PassengerID:   newID("PAX", 6),
		BasePrice:     base,
		Taxes:         taxes,
		TotalAmount:   round2(base + taxes),
		Status:        models.BookingStatusConfirmed,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := s.Repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	if s.Tickets != nil {
		if err := s.Tickets.EnqueueRender(ctx, record.ID); err != nil {
			// The booking stands; the ticket can be re-rendered on demand.
			s.Logger.Warn("failed to enqueue ticket rendering",
				zap.String("bookingId", record.ID), zap.Error(err))
		}
	}

	s.Logger.Info("booking created",
		zap.String("bookingId", record.ID),
		zap.String("userId", userID),
		zap.Float64("totalAmount", record.TotalAmount))
	return &record, nil
}

func (s *DefaultBookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultBookingService) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Repo.GetByUserID(ctx, userID)
}

// ConfirmPayment marks a booking as paid after the gateway confirms.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, bookingID string) error {
	if err := s.Repo.UpdatePaymentStatus(ctx, bookingID, models.PaymentStatusCompleted); err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return nil
}

// newID builds identifiers like BOOK-1A2B3C4D from a fresh UUID.
func newID(prefix string, n int) string {
	hexPart := strings.ReplaceAll(uuid.New().String(), "-", "")
	return prefix + "-" + strings.ToUpper(hexPart[:n])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
