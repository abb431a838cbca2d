package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"skybook/models"
)

// Create inserts a new booking record and returns its ID.
func (r *mongoBookingRepo) Create(ctx context.Context, booking models.Booking) (string, error) {
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return "", err
	}
	return booking.ID, nil
}

// GetByID returns a booking by its ID.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetByUserID fetches all bookings made by a specific user.
func (r *mongoBookingRepo) GetByUserID(ctx context.Context, userID string) ([]models.Booking, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdatePaymentStatus updates the payment status of a booking, typically
// after the payment gateway confirms the charge.
func (r *mongoBookingRepo) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"payment_status": paymentStatus, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTicketPath records where the rendered ticket file was written.
func (r *mongoBookingRepo) SetTicketPath(ctx context.Context, id, path string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{
		"$set": bson.M{"ticket_path": path, "updated_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
