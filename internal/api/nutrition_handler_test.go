package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"trackfit/fitness-api/internal/apperr"
	"trackfit/fitness-api/internal/domain"
	"trackfit/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeNutritionService implements service.NutritionService for handler tests.
type fakeNutritionService struct {
	entries []domain.FoodLogEntry
	prefs   map[primitive.ObjectID]*service.PreferencesView
	intake  map[string]float64
}

func newFakeNutritionService() *fakeNutritionService {
	return &fakeNutritionService{
		prefs:  map[primitive.ObjectID]*service.PreferencesView{},
		intake: map[string]float64{},
	}
}

func (s *fakeNutritionService) LogFood(_ context.Context, entry *domain.FoodLogEntry) (*domain.FoodLogEntry, error) {
	entry.ID = primitive.NewObjectID()
	entry.Day = "2025-03-01"
	s.entries = append(s.entries, *entry)
	s.intake[entry.Day] += entry.Calories
	return entry, nil
}

func (s *fakeNutritionService) ListFoodLogs(_ context.Context, userID primitive.ObjectID, day string) ([]domain.FoodLogEntry, error) {
	out := []domain.FoodLogEntry{}
	for _, e := range s.entries {
		if e.UserID == userID && (day == "" || e.Day == day) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeNutritionService) GetPreferences(_ context.Context, userID primitive.ObjectID) (*service.PreferencesView, error) {
	view, ok := s.prefs[userID]
	if !ok {
		return nil, apperr.NotFound("no preferences for user %s", userID.Hex())
	}
	return view, nil
}

func (s *fakeNutritionService) UpsertPreferences(_ context.Context, prefs *domain.CaloriePreferences) (*service.PreferencesView, error) {
	view := &service.PreferencesView{CaloriePreferences: *prefs}
	s.prefs[prefs.UserID] = view
	return view, nil
}

func (s *fakeNutritionService) GetDailyIntake(_ context.Context, userID primitive.ObjectID, date string) (*domain.DailyIntake, error) {
	if date == "" {
		date = "2025-03-01"
	}
	return &domain.DailyIntake{UserID: userID, Date: date, Calories: s.intake[date]}, nil
}

func nutritionRouter(svc *fakeNutritionService) *gin.Engine {
	router := gin.New()
	handler := NewNutritionHandler(svc)
	router.POST("/food/log", handler.LogFood)
	router.GET("/food/log/:userId", handler.ListFoodLogs)
	router.GET("/food/intake/:userId", handler.GetDailyIntake)
	router.POST("/preferences", handler.UpsertPreferences)
	router.GET("/preferences/:userId", handler.GetPreferences)
	return router
}

func TestNutritionHandler_LogFood(t *testing.T) {
	svc := newFakeNutritionService()
	router := nutritionRouter(svc)
	userID := primitive.NewObjectID().Hex()

	rr := doJSON(t, router, "POST", "/food/log",
		`{"userId":"`+userID+`","label":"oatmeal","cal":350,"carbohydrates":60,"fats":6,"proteins":12,"sugars":1}`)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var entry domain.FoodLogEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entry))
	assert.Equal(t, "oatmeal", entry.Label)
	assert.Equal(t, 350.0, entry.Calories)
}

func TestNutritionHandler_LogFood_MissingMacroIsValidation(t *testing.T) {
	router := nutritionRouter(newFakeNutritionService())
	userID := primitive.NewObjectID().Hex()

	// proteins absent entirely
	rr := doJSON(t, router, "POST", "/food/log",
		`{"userId":"`+userID+`","label":"oatmeal","cal":350,"carbohydrates":60,"fats":6,"sugars":1}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apperr.KindValidation, errorKind(t, rr))
}

func TestNutritionHandler_LogFood_ZeroMacrosAreValid(t *testing.T) {
	router := nutritionRouter(newFakeNutritionService())
	userID := primitive.NewObjectID().Hex()

	// explicit zeros must bind; pointer fields distinguish absent from zero
	rr := doJSON(t, router, "POST", "/food/log",
		`{"userId":"`+userID+`","label":"water","cal":0,"carbohydrates":0,"fats":0,"proteins":0,"sugars":0}`)

	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
}

func TestNutritionHandler_GetPreferences_NotFound(t *testing.T) {
	router := nutritionRouter(newFakeNutritionService())

	rr := doJSON(t, router, "GET", "/preferences/"+primitive.NewObjectID().Hex(), "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apperr.KindNotFound, errorKind(t, rr))
}

func TestNutritionHandler_UpsertThenGet(t *testing.T) {
	router := nutritionRouter(newFakeNutritionService())
	userID := primitive.NewObjectID().Hex()

	rr := doJSON(t, router, "POST", "/preferences",
		`{"userId":"`+userID+`","currentWeight":90,"goalWeight":80,"activityLevel":"moderate","mealPreferences":{"breakfast":true,"dinner":true}}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doJSON(t, router, "GET", "/preferences/"+userID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var view service.PreferencesView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, 90.0, view.CurrentWeight)
	assert.True(t, view.Meals.Breakfast)
}

func TestNutritionHandler_GetDailyIntake(t *testing.T) {
	svc := newFakeNutritionService()
	router := nutritionRouter(svc)
	userID := primitive.NewObjectID().Hex()

	doJSON(t, router, "POST", "/food/log",
		`{"userId":"`+userID+`","label":"oatmeal","cal":350,"carbohydrates":60,"fats":6,"proteins":12,"sugars":1}`)

	rr := doJSON(t, router, "GET", "/food/intake/"+userID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var intake domain.DailyIntake
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &intake))
	assert.Equal(t, 350.0, intake.Calories)
}
