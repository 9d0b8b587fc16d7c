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

const preferenceCollectionName = "calorie_preferences"

// mongoPreferenceRepository implements repository.PreferenceRepository using MongoDB.
type mongoPreferenceRepository struct {
	collection *mongo.Collection
}

// NewMongoPreferenceRepository creates a new instance of mongoPreferenceRepository.
func NewMongoPreferenceRepository(db *mongo.Database) repository.PreferenceRepository {
	return &mongoPreferenceRepository{
		collection: db.Collection(preferenceCollectionName),
	}
}

// Upsert replaces the mutable preference fields, creating the record
// if absent. CreatedAt survives updates via $setOnInsert.
func (r *mongoPreferenceRepository) Upsert(ctx context.Context, prefs *domain.CaloriePreferences) error {
	if prefs.UserID == primitive.NilObjectID {
		return errors.New("user ID is required")
	}

	now := time.Now().UTC()
	prefs.UpdatedAt = now

	filter := bson.M{"userId": prefs.UserID}
	update := bson.M{
		"$set": bson.M{
			"currentWeight": prefs.CurrentWeight,
			"goalWeight":    prefs.GoalWeight,
			"activityLevel": prefs.ActivityLevel,
			"meals":         prefs.Meals,
			"updatedAt":     prefs.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"userId":    prefs.UserID,
			"createdAt": now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// GetByUserID returns the preferences record for a user.
func (r *mongoPreferenceRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.CaloriePreferences, error) {
	var prefs domain.CaloriePreferences
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&prefs)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &prefs, nil
}

// EnsurePreferenceIndexes creates necessary indexes for the preferences collection.
func EnsurePreferenceIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
