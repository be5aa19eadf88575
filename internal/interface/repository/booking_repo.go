package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travelmail-service/internal/domain/entity"
	"travelmail-service/internal/domain/repository"
)

// MongoBookingRepository implements the BookingRepository interface
type MongoBookingRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingRepository creates a new MongoDB booking repository
func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	collection := db.Collection("bookings")

	ctx := context.Background()

	// Compound index backing the reconciliation window query
	windowIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "passengerId", Value: 1},
			{Key: "flightNumber", Value: 1},
			{Key: "departureUtc", Value: 1},
		},
	}

	pnrIndex := mongo.IndexModel{
		Keys: bson.M{"pnr": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		windowIndex,
		pnrIndex,
	})

	return &MongoBookingRepository{
		collection: collection,
	}
}

// FindByPassengerFlightWindow finds a booking for the passenger and
// flight number whose departure falls inside [fromTs, toTs]. Returns nil
// without error when nothing matches.
func (r *MongoBookingRepository) FindByPassengerFlightWindow(ctx context.Context, passengerID, flightNumber string, fromTs, toTs time.Time) (*entity.Booking, error) {
	filter := bson.M{
		"passengerId":  passengerID,
		"flightNumber": flightNumber,
		"departureUtc": bson.M{
			"$gte": fromTs,
			"$lte": toTs,
		},
	}

	var booking entity.Booking
	opts := options.FindOne().SetSort(bson.D{{Key: "departureUtc", Value: 1}})
	err := r.collection.FindOne(ctx, filter, opts).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// Create inserts a new booking
func (r *MongoBookingRepository) Create(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

// Update replaces the stored booking document
func (r *MongoBookingRepository) Update(ctx context.Context, booking *entity.Booking) (*entity.Booking, error) {
	booking.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": booking.ID}, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, fmt.Errorf("no booking found with id: %s", booking.ID)
	}
	return booking, nil
}
