package bookingRepo

import (
	"context"
	"errors"

	"skybook/database"
	"skybook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when no booking exists for the given id.
var ErrNotFound = errors.New("booking not found")

type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error
	SetTicketPath(ctx context.Context, id, path string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("skybook")
	return &mongoBookingRepo{
		coll: db.Collection("bookings"),
	}
}
