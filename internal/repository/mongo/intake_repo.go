package mongo

import (
	"context"
	"errors"

	"trackfit/fitness-api/internal/domain"
	"trackfit/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const intakeCollectionName = "daily_intake"

// mongoIntakeRepository implements repository.IntakeRepository using MongoDB.
type mongoIntakeRepository struct {
	collection *mongo.Collection
}

// NewMongoIntakeRepository creates a new instance of mongoIntakeRepository.
func NewMongoIntakeRepository(db *mongo.Database) repository.IntakeRepository {
	return &mongoIntakeRepository{
		collection: db.Collection(intakeCollectionName),
	}
}

// Increment atomically adds calories to the (userId, date) bucket,
// creating it on first use. $inc on the server side means concurrent
// food logs for the same user cannot lose updates.
func (r *mongoIntakeRepository) Increment(ctx context.Context, userID primitive.ObjectID, date string, calories float64) error {
	if userID == primitive.NilObjectID || date == "" {
		return errors.New("user ID and date are required")
	}

	filter := bson.M{"userId": userID, "date": date}
	update := bson.M{
		"$inc":         bson.M{"calories": calories},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// Get returns the intake bucket for one day, ErrNotFound when the user
// logged nothing that day.
func (r *mongoIntakeRepository) Get(ctx context.Context, userID primitive.ObjectID, date string) (*domain.DailyIntake, error) {
	var intake domain.DailyIntake
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&intake)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &intake, nil
}

// EnsureIntakeIndexes creates necessary indexes for the intake collection.
func EnsureIntakeIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
