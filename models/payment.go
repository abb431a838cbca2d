package models

import "time"

// PaymentResult is returned when a payment is initiated for a booking.
type PaymentResult struct {
	PaymentID    string    `json:"payment_id"`
	BookingID    string    `json:"booking_id"`
	Amount       float64   `json:"amount"`
	Currency     string    `json:"currency"`
	Status       string    `json:"status"`
	ClientSecret string    `json:"client_secret,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
