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

// MongoMessageRepository implements the MessageRepository interface
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoDB message repository
func NewMongoMessageRepository(db *mongo.Database) repository.MessageRepository {
	collection := db.Collection("messages")

	ctx := context.Background()

	messageIDIndex := mongo.IndexModel{
		Keys:    bson.M{"messageId": 1},
		Options: options.Index().SetUnique(true),
	}

	uidIndex := mongo.IndexModel{
		Keys: bson.M{"uid": -1},
	}

	// Compound index for the pending sweep
	unprocessedIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "processStatus", Value: 1},
			{Key: "receivedAt", Value: 1},
		},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		messageIDIndex,
		uidIndex,
		unprocessedIndex,
	})

	return &MongoMessageRepository{
		collection: collection,
	}
}

// Save stores a fetched message, keyed by its mailbox UID. Saving the
// same UID twice leaves the first document in place.
func (r *MongoMessageRepository) Save(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.ProcessStatus == "" {
		message.ProcessStatus = entity.StatusPending
	}

	update := bson.M{
		"$setOnInsert": message,
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"messageId": message.MessageID}, update, opts)
	return err
}

// FindByMessageID finds a message by its mailbox UID. Returns nil
// without error when the message is unknown.
func (r *MongoMessageRepository) FindByMessageID(ctx context.Context, messageID string) (*entity.Message, error) {
	var message entity.Message
	err := r.collection.FindOne(ctx, bson.M{"messageId": messageID}).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

// FindUnprocessed finds messages still waiting to be processed, oldest first
func (r *MongoMessageRepository) FindUnprocessed(ctx context.Context, limit int) ([]*entity.Message, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"processStatus": ""},
			{"processStatus": entity.StatusPending},
			{"processStatus": bson.M{"$exists": false}},
		},
	}

	limit64 := int64(limit)
	cursor, err := r.collection.Find(ctx, filter, &options.FindOptions{
		Limit: &limit64,
		Sort:  bson.D{{Key: "receivedAt", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*entity.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// UpdateStatus updates the status and, when moving to PROCESSING, the
// started time
func (r *MongoMessageRepository) UpdateStatus(ctx context.Context, messageID, status string, startedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"processStatus": status,
		},
	}

	if status == entity.StatusProcessing && !startedAt.IsZero() {
		update["$set"].(bson.M)["processStartedAt"] = startedAt
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"messageId": messageID}, update)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no message found with messageID: %s", messageID)
	}
	return nil
}

// MarkAsProcessed records the terminal status with processing details
func (r *MongoMessageRepository) MarkAsProcessed(ctx context.Context, messageID, status, processorType, errorDetail string, extractedData map[string]interface{}) error {
	update := bson.M{
		"$set": bson.M{
			"processedAt":   time.Now(),
			"processStatus": status,
			"processorType": processorType,
		},
	}

	if len(extractedData) > 0 {
		update["$set"].(bson.M)["extractedData"] = extractedData
	}
	if errorDetail != "" {
		update["$set"].(bson.M)["errorDetail"] = errorDetail
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"messageId": messageID}, update)
	if err != nil {
		return fmt.Errorf("failed to mark as processed: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("no message found with messageID: %s", messageID)
	}
	return nil
}

// ResetProcessingMessages resets messages stuck in PROCESSING back to
// PENDING so the sweep can retry them
func (r *MongoMessageRepository) ResetProcessingMessages(ctx context.Context) error {
	staleTime := time.Now().Add(-5 * time.Minute)

	filter := bson.M{
		"processStatus": entity.StatusProcessing,
		"$or": []bson.M{
			{"processStartedAt": bson.M{"$lt": staleTime}},
			{"processStartedAt": bson.M{"$exists": false}},
		},
	}

	update := bson.M{
		"$set": bson.M{
			"processStatus": entity.StatusPending,
			"errorDetail":   "Reset from stale PROCESSING state",
		},
	}

	_, err := r.collection.UpdateMany(ctx, filter, update)
	return err
}

// LastUID returns the highest mailbox UID seen so far, or zero for an
// empty store
func (r *MongoMessageRepository) LastUID(ctx context.Context) (uint32, error) {
	var message entity.Message
	opts := options.FindOne().SetSort(bson.D{{Key: "uid", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}
	return message.UID, nil
}
