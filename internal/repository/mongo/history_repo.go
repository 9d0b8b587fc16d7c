package mongo

import (
	"context"
	"errors"
	"time"

	"trackfit/fitness-api/internal/domain"
	"trackfit/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const historyCollectionName = "exercise_history"

// mongoHistoryRepository implements repository.HistoryRepository using MongoDB.
type mongoHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoHistoryRepository creates a new instance of mongoHistoryRepository.
func NewMongoHistoryRepository(db *mongo.Database) repository.HistoryRepository {
	return &mongoHistoryRepository{
		collection: db.Collection(historyCollectionName),
	}
}

// Create inserts a new history entry. Duplicates are allowed: logging
// the same exercise twice is two entries.
func (r *mongoHistoryRepository) Create(ctx context.Context, entry *domain.ExerciseHistoryEntry) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.ExerciseName == "" {
		return primitive.NilObjectID, errors.New("user ID and exercise name are required")
	}

	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByUserID returns all entries for a user in insertion order. An
// empty result is a valid state, not an error.
func (r *mongoHistoryRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ExerciseHistoryEntry, error) {
	filter := bson.M{"userId": userID}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.ExerciseHistoryEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureHistoryIndexes creates necessary indexes for the history collection.
func EnsureHistoryIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseName", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
