package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"trackfit/fitness-api/internal/apperr"
	"trackfit/fitness-api/internal/domain"
	"trackfit/fitness-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PreferencesView is a preferences record joined with the calorie
// intake for one day, which is how clients consume it.
type PreferencesView struct {
	domain.CaloriePreferences
	DailyCalorieIntake float64 `json:"dailyCalorieIntake"`
	IntakeDate         string  `json:"intakeDate"`
}

// NutritionService logs food items and aggregates calorie intake into
// a day-keyed ledger. Logging food never depends on a preferences
// record existing.
type NutritionService interface {
	LogFood(ctx context.Context, entry *domain.FoodLogEntry) (*domain.FoodLogEntry, error)
	ListFoodLogs(ctx context.Context, userID primitive.ObjectID, day string) ([]domain.FoodLogEntry, error)
	GetPreferences(ctx context.Context, userID primitive.ObjectID) (*PreferencesView, error)
	UpsertPreferences(ctx context.Context, prefs *domain.CaloriePreferences) (*PreferencesView, error)
	GetDailyIntake(ctx context.Context, userID primitive.ObjectID, date string) (*domain.DailyIntake, error)
}

// nutritionService implements the NutritionService interface.
type nutritionService struct {
	foodRepo   repository.FoodLogRepository
	prefRepo   repository.PreferenceRepository
	intakeRepo repository.IntakeRepository
	now        func() time.Time
}

// NewNutritionService creates a new instance of nutritionService.
func NewNutritionService(foodRepo repository.FoodLogRepository, prefRepo repository.PreferenceRepository, intakeRepo repository.IntakeRepository) NutritionService {
	return &nutritionService{
		foodRepo:   foodRepo,
		prefRepo:   prefRepo,
		intakeRepo: intakeRepo,
		now:        time.Now,
	}
}

func validMacro(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// LogFood persists the entry and then atomically adds its calories to
// the (user, today) intake bucket. The entry is kept even if the
// ledger update fails; the ledger can be recomputed from entries.
func (s *nutritionService) LogFood(ctx context.Context, entry *domain.FoodLogEntry) (*domain.FoodLogEntry, error) {
	if entry == nil || entry.UserID == primitive.NilObjectID {
		return nil, apperr.Validation("user ID is required")
	}
	entry.Label = strings.TrimSpace(entry.Label)
	if entry.Label == "" {
		return nil, apperr.Validation("label is required")
	}
	for _, v := range []float64{entry.Calories, entry.Carbohydrates, entry.Fats, entry.Proteins, entry.Sugars} {
		if !validMacro(v) {
			return nil, apperr.Validation("macro values must be finite non-negative numbers")
		}
	}

	entry.Day = domain.DayKey(s.now())
	if _, err := s.foodRepo.Create(ctx, entry); err != nil {
		return nil, apperr.Internal("failed to log food", err)
	}

	if err := s.intakeRepo.Increment(ctx, entry.UserID, entry.Day, entry.Calories); err != nil {
		return nil, apperr.Internal("failed to update daily intake", err)
	}

	return entry, nil
}

// ListFoodLogs returns the user's food log, optionally filtered to one
// UTC day bucket.
func (s *nutritionService) ListFoodLogs(ctx context.Context, userID primitive.ObjectID, day string) ([]domain.FoodLogEntry, error) {
	if userID == primitive.NilObjectID {
		return nil, apperr.Validation("user ID is required")
	}
	if day != "" {
		if _, err := time.Parse(domain.DayFormat, day); err != nil {
			return nil, apperr.Validation("day must be formatted as %s", domain.DayFormat)
		}
		entries, err := s.foodRepo.GetByUserAndDay(ctx, userID, day)
		if err != nil {
			return nil, apperr.Internal("failed to list food logs", err)
		}
		return entries, nil
	}

	entries, err := s.foodRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to list food logs", err)
	}
	return entries, nil
}

// GetPreferences returns the preferences record joined with today's
// intake, or a not-found error when the user never saved preferences.
func (s *nutritionService) GetPreferences(ctx context.Context, userID primitive.ObjectID) (*PreferencesView, error) {
	if userID == primitive.NilObjectID {
		return nil, apperr.Validation("user ID is required")
	}

	prefs, err := s.prefRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("no preferences for user %s", userID.Hex())
		}
		return nil, apperr.Internal("failed to load preferences", err)
	}

	return s.view(ctx, prefs)
}

// UpsertPreferences fully replaces the mutable fields, creating the
// record if absent.
func (s *nutritionService) UpsertPreferences(ctx context.Context, prefs *domain.CaloriePreferences) (*PreferencesView, error) {
	if prefs == nil || prefs.UserID == primitive.NilObjectID {
		return nil, apperr.Validation("user ID is required")
	}
	if !validMacro(prefs.CurrentWeight) || prefs.CurrentWeight == 0 {
		return nil, apperr.Validation("current weight must be a finite positive number")
	}
	if prefs.GoalWeight != nil && (!validMacro(*prefs.GoalWeight) || *prefs.GoalWeight == 0) {
		return nil, apperr.Validation("goal weight must be a finite positive number")
	}
	if !prefs.ActivityLevel.Valid() {
		return nil, apperr.Validation("unknown activity level %q", prefs.ActivityLevel)
	}

	if err := s.prefRepo.Upsert(ctx, prefs); err != nil {
		return nil, apperr.Internal("failed to save preferences", err)
	}

	saved, err := s.prefRepo.GetByUserID(ctx, prefs.UserID)
	if err != nil {
		return nil, apperr.Internal("failed to reload preferences", err)
	}
	return s.view(ctx, saved)
}

// GetDailyIntake returns the ledger value for one day. A day with no
// logged food is zero, not an error.
func (s *nutritionService) GetDailyIntake(ctx context.Context, userID primitive.ObjectID, date string) (*domain.DailyIntake, error) {
	if userID == primitive.NilObjectID {
		return nil, apperr.Validation("user ID is required")
	}
	if date == "" {
		date = domain.DayKey(s.now())
	} else if _, err := time.Parse(domain.DayFormat, date); err != nil {
		return nil, apperr.Validation("date must be formatted as %s", domain.DayFormat)
	}

	intake, err := s.intakeRepo.Get(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &domain.DailyIntake{UserID: userID, Date: date, Calories: 0}, nil
		}
		return nil, apperr.Internal("failed to load daily intake", err)
	}
	return intake, nil
}

func (s *nutritionService) view(ctx context.Context, prefs *domain.CaloriePreferences) (*PreferencesView, error) {
	today := domain.DayKey(s.now())
	view := &PreferencesView{CaloriePreferences: *prefs, IntakeDate: today}

	intake, err := s.intakeRepo.Get(ctx, prefs.UserID, today)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return view, nil
		}
		return nil, apperr.Internal("failed to load daily intake", err)
	}
	view.DailyCalorieIntake = intake.Calories
	return view, nil
}
