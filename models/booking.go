package models

import "time"

// Booking statuses.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Booking is a confirmed booking record persisted in MongoDB.
type Booking struct {
	ID            string           `bson:"id" json:"id"` // e.g. BOOK-1A2B3C4D
	UserID        string           `bson:"user_id" json:"user_id"`
	Flight        Offer            `bson:"flight" json:"flight"`
	Passenger     PassengerDetails `bson:"passenger" json:"passenger"`
	PassengerID   string           `bson:"passenger_id" json:"passenger_id"` // e.g. PAX-1A2B3C
	BasePrice     float64          `bson:"base_price" json:"base_price"`
	Taxes         float64          `bson:"taxes" json:"taxes"`
	TotalAmount   float64          `bson:"total_amount" json:"total_amount"`
	Status        string           `bson:"status" json:"status"`
	PaymentStatus string           `bson:"payment_status" json:"payment_status"`
	TicketPath    string           `bson:"ticket_path,omitempty" json:"ticket_path,omitempty"`
	CreatedAt     time.Time        `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `bson:"updated_at" json:"updated_at"`
}
