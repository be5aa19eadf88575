package repository

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"travelmail-service/internal/domain/entity"
	"travelmail-service/internal/domain/repository"
)

// MongoPassengerRepository implements the PassengerRepository interface
type MongoPassengerRepository struct {
	collection *mongo.Collection
}

// NewMongoPassengerRepository creates a new MongoDB passenger repository
func NewMongoPassengerRepository(db *mongo.Database) repository.PassengerRepository {
	collection := db.Collection("passengers")

	ctx := context.Background()

	fullNameIndex := mongo.IndexModel{
		Keys: bson.M{"fullName": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		fullNameIndex,
	})

	return &MongoPassengerRepository{
		collection: collection,
	}
}

// FindByNameSubstring finds the first passenger whose full name contains
// the given text, case-insensitive. Returns nil without error when no
// passenger matches.
func (r *MongoPassengerRepository) FindByNameSubstring(ctx context.Context, text string) (*entity.Passenger, error) {
	if text == "" {
		return nil, nil
	}

	filter := bson.M{
		"fullName": primitive.Regex{
			Pattern: regexp.QuoteMeta(text),
			Options: "i",
		},
	}

	var passenger entity.Passenger
	opts := options.FindOne().SetSort(bson.D{{Key: "fullName", Value: 1}})
	err := r.collection.FindOne(ctx, filter, opts).Decode(&passenger)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &passenger, nil
}
