// File: skybook/services/booking/interface.go
package booking

import (
	"context"

	"skybook/models"
)

// Service creates and manages booking records.
type Service interface {
	Create(ctx context.Context, userID string, offer models.Offer, passenger models.PassengerDetails) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Booking, error)
	ConfirmPayment(ctx context.Context, bookingID string) error
}

// TicketQueue enqueues background ticket rendering for a booking.
type TicketQueue interface {
	EnqueueRender(ctx context.Context, bookingID string) error
}
