package service

import (
	"context"
	"testing"
	"time"

	"trackfit/fitness-api/internal/apperr"
	"trackfit/fitness-api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newNutritionService() (*nutritionService, *fakeFoodRepo, *fakePrefRepo, *fakeIntakeRepo) {
	foodRepo := &fakeFoodRepo{}
	prefRepo := newFakePrefRepo()
	intakeRepo := newFakeIntakeRepo()
	svc := NewNutritionService(foodRepo, prefRepo, intakeRepo).(*nutritionService)
	return svc, foodRepo, prefRepo, intakeRepo
}

func foodEntry(userID primitive.ObjectID, label string, cal float64) *domain.FoodLogEntry {
	return &domain.FoodLogEntry{
		UserID:        userID,
		Label:         label,
		Calories:      cal,
		Carbohydrates: 30,
		Fats:          10,
		Proteins:      20,
		Sugars:        5,
	}
}

func TestLogFood_CreatesEntryWithoutPreferences(t *testing.T) {
	svc, foodRepo, _, _ := newNutritionService()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	created, err := svc.LogFood(ctx, foodEntry(userID, "oatmeal", 350))
	require.NoError(t, err, "logging food must not depend on a preferences record")
	require.NotNil(t, created)
	assert.Len(t, foodRepo.entries, 1)
	assert.Equal(t, "oatmeal", foodRepo.entries[0].Label)
}

func TestLogFood_IncrementsDailyIntakeByExactlyCal(t *testing.T) {
	svc, _, _, _ := newNutritionService()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	_, err := svc.LogFood(ctx, foodEntry(userID, "oatmeal", 350))
	require.NoError(t, err)
	_, err = svc.LogFood(ctx, foodEntry(userID, "banana", 105))
	require.NoError(t, err)

	intake, err := svc.GetDailyIntake(ctx, userID, "")
	require.NoError(t, err)
	assert.Equal(t, 455.0, intake.Calories)
}

func TestLogFood_BucketsByUTCDay(t *testing.T) {
	svc, _, _, intakeRepo := newNutritionService()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	day1 := time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 0, 30, 0, 0, time.UTC)

	svc.now = func() time.Time { return day1 }
	_, err := svc.LogFood(ctx, foodEntry(userID, "late snack", 200))
	require.NoError(t, err)

	svc.now = func() time.Time { return day2 }
	_, err = svc.LogFood(ctx, foodEntry(userID, "breakfast", 400))
	require.NoError(t, err)

	assert.Equal(t, 200.0, intakeRepo.buckets[intakeKey{userID, "2025-03-01"}])
	assert.Equal(t, 400.0, intakeRepo.buckets[intakeKey{userID, "2025-03-02"}])

	intake, err := svc.GetDailyIntake(ctx, userID, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, 200.0, intake.Calories)
}

func TestLogFood_Validation(t *testing.T) {
	svc, foodRepo, _, _ := newNutritionService()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	entry := foodEntry(userID, "bad", 100)
	entry.Proteins = -1
	_, err := svc.LogFood(ctx, entry)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	entry = foodEntry(userID, "  ", 100)
	_, err = svc.LogFood(ctx, entry)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	assert.Empty(t, foodRepo.entries, "invalid entries must not be persisted")
}

func TestGetDailyIntake_NoFoodLoggedIsZero(t *testing.T) {
	svc, _, _, _ := newNutritionService()

	intake, err := svc.GetDailyIntake(context.Background(), primitive.NewObjectID(), "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, 0.0, intake.Calories)
	assert.Equal(t, "2025-03-01", intake.Date)
}

func TestGetPreferences_NotFound(t *testing.T) {
	svc, _, _, _ := newNutritionService()

	_, err := svc.GetPreferences(context.Background(), primitive.NewObjectID())
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpsertPreferences_CreateThenReplace(t *testing.T) {
	svc, _, _, _ := newNutritionService()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	goal := 80.0
	view, err := svc.UpsertPreferences(ctx, &domain.CaloriePreferences{
		UserID:        userID,
		CurrentWeight: 90,
		GoalWeight:    &goal,
		ActivityLevel: domain.ActivityModerate,
		Meals:         domain.MealPreferences{Breakfast: true, Dinner: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 90.0, view.CurrentWeight)
	require.NotNil(t, view.GoalWeight)
	assert.Equal(t, 80.0, *view.GoalWeight)

	view, err = svc.UpsertPreferences(ctx, &domain.CaloriePreferences{
		UserID:        userID,
		CurrentWeight: 88,
		ActivityLevel: domain.ActivityActive,
	})
	require.NoError(t, err)
	assert.Equal(t, 88.0, view.CurrentWeight)
	assert.Nil(t, view.GoalWeight, "upsert is a full replace of mutable fields")
	assert.Equal(t, domain.ActivityActive, view.ActivityLevel)
}

func TestUpsertPreferences_RejectsUnknownActivityLevel(t *testing.T) {
	svc, _, _, _ := newNutritionService()

	_, err := svc.UpsertPreferences(context.Background(), &domain.CaloriePreferences{
		UserID:        primitive.NewObjectID(),
		CurrentWeight: 90,
		ActivityLevel: "couch",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestGetPreferences_JoinsTodaysIntake(t *testing.T) {
	svc, _, _, _ := newNutritionService()
	ctx := context.Background()
	userID := primitive.NewObjectID()

	_, err := svc.UpsertPreferences(ctx, &domain.CaloriePreferences{
		UserID:        userID,
		CurrentWeight: 90,
		ActivityLevel: domain.ActivitySedentary,
	})
	require.NoError(t, err)

	_, err = svc.LogFood(ctx, foodEntry(userID, "lunch", 600))
	require.NoError(t, err)

	view, err := svc.GetPreferences(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 600.0, view.DailyCalorieIntake)
	assert.Equal(t, domain.DayKey(time.Now()), view.IntakeDate)
}
