package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"trackfit/fitness-api/internal/apperr"
	"trackfit/fitness-api/internal/domain"
	"trackfit/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryService records exercise performance and tracks favorite
// exercises. Favorites are set membership over (user, exercise name),
// separate from logged sets: toggling a never-logged exercise marks it
// favorite without fabricating a history row.
type HistoryService interface {
	LogSet(ctx context.Context, userID primitive.ObjectID, exerciseName string, sets, reps int, weight float64) (*domain.ExerciseHistoryEntry, error)
	ToggleFavorite(ctx context.Context, userID primitive.ObjectID, exerciseName string) (favorite bool, err error)
	ListHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.ExerciseHistoryEntry, error)
	ListFavorites(ctx context.Context, userID primitive.ObjectID) ([]domain.Favorite, error)
}

// historyService implements the HistoryService interface.
type historyService struct {
	historyRepo  repository.HistoryRepository
	favoriteRepo repository.FavoriteRepository
}

// NewHistoryService creates a new instance of historyService.
func NewHistoryService(historyRepo repository.HistoryRepository, favoriteRepo repository.FavoriteRepository) HistoryService {
	return &historyService{
		historyRepo:  historyRepo,
		favoriteRepo: favoriteRepo,
	}
}

// LogSet validates and records one performed exercise. Duplicate
// submissions create duplicate entries; there is no idempotency key.
func (s *historyService) LogSet(ctx context.Context, userID primitive.ObjectID, exerciseName string, sets, reps int, weight float64) (*domain.ExerciseHistoryEntry, error) {
	if userID == primitive.NilObjectID {
		return nil, apperr.Validation("user ID is required")
	}
	exerciseName = strings.TrimSpace(exerciseName)
	if exerciseName == "" {
		return nil, apperr.Validation("exercise name is required")
	}
	if sets < 0 || reps < 0 {
		return nil, apperr.Validation("sets and reps must be non-negative")
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return nil, apperr.Validation("weight must be a finite non-negative number")
	}

	entry := &domain.ExerciseHistoryEntry{
		UserID:       userID,
		ExerciseName: exerciseName,
		Sets:         sets,
		Reps:         reps,
		Weight:       weight,
	}

	if _, err := s.historyRepo.Create(ctx, entry); err != nil {
		return nil, apperr.Internal("failed to record set", err)
	}

	names, err := s.favoriteRepo.Names(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to look up favorites", err)
	}
	entry.Favorite = names[entry.ExerciseName]

	return entry, nil
}

// ToggleFavorite flips set membership for (user, exercise name) and
// returns the resulting state. Races with another toggle resolve via
// the unique index: a conflicting insert means the other request won,
// so we treat the pair as already favorited and remove it.
func (s *historyService) ToggleFavorite(ctx context.Context, userID primitive.ObjectID, exerciseName string) (bool, error) {
	if userID == primitive.NilObjectID {
		return false, apperr.Validation("user ID is required")
	}
	exerciseName = strings.TrimSpace(exerciseName)
	if exerciseName == "" {
		return false, apperr.Validation("exercise name is required")
	}

	fav := &domain.Favorite{UserID: userID, ExerciseName: exerciseName}
	_, err := s.favoriteRepo.Add(ctx, fav)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, repository.ErrConflict) {
		return false, apperr.Internal("failed to toggle favorite", err)
	}

	// Already favorited: toggle off.
	if err := s.favoriteRepo.Remove(ctx, userID, exerciseName); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Another request removed it between our insert attempt and
			// the delete. The pair is gone, which is the state a toggle
			// off wanted anyway.
			return false, nil
		}
		return false, apperr.Internal("failed to toggle favorite", err)
	}
	return false, nil
}

// ListHistory returns all logged sets for a user in storage order,
// each decorated with its favorite state. Empty history is a valid
// result, not an error.
func (s *historyService) ListHistory(ctx context.Context, userID primitive.ObjectID) ([]domain.ExerciseHistoryEntry, error) {
	if userID == primitive.NilObjectID {
		return nil, apperr.Validation("user ID is required")
	}

	entries, err := s.historyRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list history", err)
	}

	names, err := s.favoriteRepo.Names(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to look up favorites", err)
	}
	for i := range entries {
		entries[i].Favorite = names[entries[i].ExerciseName]
	}

	return entries, nil
}

// ListFavorites returns the user's favorited exercises.
func (s *historyService) ListFavorites(ctx context.Context, userID primitive.ObjectID) ([]domain.Favorite, error) {
	if userID == primitive.NilObjectID {
		return nil, apperr.Validation("user ID is required")
	}

	favorites, err := s.favoriteRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list favorites", err)
	}
	return favorites, nil
}
