package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travelmail-service/internal/domain/entity"
	"travelmail-service/internal/domain/repository"
)

// MongoNotificationRepository implements the NotificationRepository
// interface. Signals are upserted on their dedupe key, so re-processing
// the same mail never produces duplicate notifications.
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoDB notification repository
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	collection := db.Collection("notifications")

	ctx := context.Background()

	dedupeIndex := mongo.IndexModel{
		Keys:    bson.M{"dedupeKey": 1},
		Options: options.Index().SetUnique(true),
	}

	typeIndex := mongo.IndexModel{
		Keys: bson.M{"type": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		dedupeIndex,
		typeIndex,
	})

	return &MongoNotificationRepository{
		collection: collection,
	}
}

// NotifyBookingCreated records a booking-created signal
func (r *MongoNotificationRepository) NotifyBookingCreated(ctx context.Context, bookingID string) error {
	return r.upsert(ctx, &entity.Notification{
		Type:      entity.BookingCreatedNotice,
		BookingID: bookingID,
		DedupeKey: fmt.Sprintf("%s:%s", entity.BookingCreatedNotice, bookingID),
	})
}

// NotifyFlightTimeUpdated records a flight-time-updated signal
func (r *MongoNotificationRepository) NotifyFlightTimeUpdated(ctx context.Context, bookingID string) error {
	return r.upsert(ctx, &entity.Notification{
		Type:      entity.FlightTimeUpdatedNotice,
		BookingID: bookingID,
		DedupeKey: fmt.Sprintf("%s:%s", entity.FlightTimeUpdatedNotice, bookingID),
	})
}

// NotifyUnrecognizedBooking records an unrecognized-traveler signal
func (r *MongoNotificationRepository) NotifyUnrecognizedBooking(ctx context.Context, details *entity.UnrecognizedBooking) error {
	key := strings.ToLower(fmt.Sprintf("%s:%s:%s",
		entity.UnrecognizedBookingNotice, details.TravelerName, details.FlightNumber))
	return r.upsert(ctx, &entity.Notification{
		Type:         entity.UnrecognizedBookingNotice,
		Unrecognized: details,
		DedupeKey:    key,
	})
}

func (r *MongoNotificationRepository) upsert(ctx context.Context, notification *entity.Notification) error {
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":       uuid.NewString(),
			"type":      notification.Type,
			"createdAt": time.Now(),
		},
		"$set": bson.M{
			"bookingId":    notification.BookingID,
			"unrecognized": notification.Unrecognized,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"dedupeKey": notification.DedupeKey}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to record %s notification: %w", notification.Type, err)
	}
	return nil
}
