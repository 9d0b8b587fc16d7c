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

const foodLogCollectionName = "food_logs"

// mongoFoodLogRepository implements repository.FoodLogRepository using MongoDB.
type mongoFoodLogRepository struct {
	collection *mongo.Collection
}

// NewMongoFoodLogRepository creates a new instance of mongoFoodLogRepository.
func NewMongoFoodLogRepository(db *mongo.Database) repository.FoodLogRepository {
	return &mongoFoodLogRepository{
		collection: db.Collection(foodLogCollectionName),
	}
}

// Create inserts a food log entry, stamping the UTC day bucket.
func (r *mongoFoodLogRepository) Create(ctx context.Context, entry *domain.FoodLogEntry) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.Label == "" {
		return primitive.NilObjectID, errors.New("user ID and label are required")
	}

	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now().UTC()
	if entry.Day == "" {
		entry.Day = domain.DayKey(entry.CreatedAt)
	}

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

// GetByUserID returns all food log entries for a user in insertion order.
func (r *mongoFoodLogRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.FoodLogEntry, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// GetByUserAndDay returns the entries logged in one UTC day bucket.
func (r *mongoFoodLogRepository) GetByUserAndDay(ctx context.Context, userID primitive.ObjectID, day string) ([]domain.FoodLogEntry, error) {
	return r.find(ctx, bson.M{"userId": userID, "day": day})
}

func (r *mongoFoodLogRepository) find(ctx context.Context, filter bson.M) ([]domain.FoodLogEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.FoodLogEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureFoodLogIndexes creates necessary indexes for the food log collection.
func EnsureFoodLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "day", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
