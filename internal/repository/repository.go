package repository

import (
	"context"

	"trackfit/fitness-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer. Services translate these
// into apperr kinds; handlers never see them.
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("already exists")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// HistoryRepository stores logged exercise sets.
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.ExerciseHistoryEntry) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ExerciseHistoryEntry, error)
}

// FavoriteRepository is set membership over (userID, exerciseName).
// Add must fail with ErrConflict when the pair already exists; Remove
// must fail with ErrNotFound when it does not. The unique index makes
// concurrent toggles safe.
type FavoriteRepository interface {
	Add(ctx context.Context, fav *domain.Favorite) (primitive.ObjectID, error)
	Remove(ctx context.Context, userID primitive.ObjectID, exerciseName string) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Favorite, error)
	Names(ctx context.Context, userID primitive.ObjectID) (map[string]bool, error)
}

// FoodLogRepository stores logged food items.
type FoodLogRepository interface {
	Create(ctx context.Context, entry *domain.FoodLogEntry) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.FoodLogEntry, error)
	GetByUserAndDay(ctx context.Context, userID primitive.ObjectID, day string) ([]domain.FoodLogEntry, error)
}

// PreferenceRepository holds one calorie-preferences record per user.
type PreferenceRepository interface {
	Upsert(ctx context.Context, prefs *domain.CaloriePreferences) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.CaloriePreferences, error)
}

// IntakeRepository is the day-keyed calorie ledger. Increment is an
// atomic upsert-and-add so concurrent food logs cannot lose updates.
type IntakeRepository interface {
	Increment(ctx context.Context, userID primitive.ObjectID, date string, calories float64) error
	Get(ctx context.Context, userID primitive.ObjectID, date string) (*domain.DailyIntake, error)
}
