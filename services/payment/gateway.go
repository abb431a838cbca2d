// File: skybook/services/payment/gateway.go
package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"skybook/models"
)

// Gateway initiates payment collection for a booking.
type Gateway interface {
	Initiate(ctx context.Context, bookingID string, amount float64) (*models.PaymentResult, error)
}

// StripeGateway creates a PaymentIntent per booking. The global stripe.Key
// is set at startup.
type StripeGateway struct {
	Logger *zap.Logger
}

func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	return &StripeGateway{Logger: logger}
}

// Initiate creates a PaymentIntent for the booking total. Amounts are INR,
// converted to paise for Stripe.
func (g *StripeGateway) Initiate(ctx context.Context, bookingID string, amount float64) (*models.PaymentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(string(stripe.CurrencyINR)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("booking_id", bookingID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent for booking %s: %w", bookingID, err)
	}

	g.Logger.Info("payment initiated",
		zap.String("bookingId", bookingID),
		zap.String("paymentId", intent.ID),
		zap.Float64("amount", amount))

	return &models.PaymentResult{
		PaymentID:    intent.ID,
		BookingID:    bookingID,
		Amount:       amount,
		Currency:     "inr",
		Status:       string(intent.Status),
		ClientSecret: intent.ClientSecret,
		CreatedAt:    time.Now(),
	}, nil
}
