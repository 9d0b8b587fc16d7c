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

const favoriteCollectionName = "favorites"

// mongoFavoriteRepository implements repository.FavoriteRepository using MongoDB.
// The unique (userId, exerciseName) index carries the set semantics.
type mongoFavoriteRepository struct {
	collection *mongo.Collection
}

// NewMongoFavoriteRepository creates a new instance of mongoFavoriteRepository.
func NewMongoFavoriteRepository(db *mongo.Database) repository.FavoriteRepository {
	return &mongoFavoriteRepository{
		collection: db.Collection(favoriteCollectionName),
	}
}

// Add inserts a favorite pair. A duplicate key error from the unique
// index maps to repository.ErrConflict, which the service treats as
// "already favorited".
func (r *mongoFavoriteRepository) Add(ctx context.Context, fav *domain.Favorite) (primitive.ObjectID, error) {
	if fav.UserID == primitive.NilObjectID || fav.ExerciseName == "" {
		return primitive.NilObjectID, errors.New("user ID and exercise name are required")
	}

	fav.ID = primitive.NewObjectID()
	fav.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, fav)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// Remove deletes a favorite pair, ErrNotFound when it was not set.
func (r *mongoFavoriteRepository) Remove(ctx context.Context, userID primitive.ObjectID, exerciseName string) error {
	filter := bson.M{"userId": userID, "exerciseName": exerciseName}
	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetByUserID returns all favorites for a user.
func (r *mongoFavoriteRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Favorite, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	favorites := []domain.Favorite{}
	if err = cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Names returns the favorited exercise names as a lookup set, used to
// decorate history entries without a second query per entry.
func (r *mongoFavoriteRepository) Names(ctx context.Context, userID primitive.ObjectID) (map[string]bool, error) {
	favorites, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(favorites))
	for _, fav := range favorites {
		names[fav.ExerciseName] = true
	}
	return names, nil
}

// EnsureFavoriteIndexes creates necessary indexes for the favorites collection.
func EnsureFavoriteIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "exerciseName", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
