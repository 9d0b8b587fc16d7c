package api

import (
	"net/http"

	"trackfit/fitness-api/internal/domain"
	"trackfit/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// NutritionHandler holds the nutrition service dependency.
type NutritionHandler struct {
	nutritionService service.NutritionService
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(nutritionService service.NutritionService) *NutritionHandler {
	return &NutritionHandler{nutritionService: nutritionService}
}

// --- DTOs ---

type LogFoodRequest struct {
	UserID        string   `json:"userId" binding:"required"`
	Label         string   `json:"label" binding:"required"`
	Cal           *float64 `json:"cal" binding:"required"`
	Carbohydrates *float64 `json:"carbohydrates" binding:"required"`
	Fats          *float64 `json:"fats" binding:"required"`
	Proteins      *float64 `json:"proteins" binding:"required"`
	Sugars        *float64 `json:"sugars" binding:"required"`
	ImageURL      string   `json:"imageUrl" binding:"omitempty,url"`
}

type UpsertPreferencesRequest struct {
	UserID        string                 `json:"userId" binding:"required"`
	CurrentWeight float64                `json:"currentWeight" binding:"required,gt=0"`
	GoalWeight    *float64               `json:"goalWeight"`
	ActivityLevel string                 `json:"activityLevel" binding:"required"`
	Meals         domain.MealPreferences `json:"mealPreferences"`
}

// --- Handler Methods ---

// LogFood persists a food log entry and bumps the day's intake ledger.
// It succeeds whether or not the user has a preferences record.
func (h *NutritionHandler) LogFood(c *gin.Context) {
	var req LogFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	entry := &domain.FoodLogEntry{
		UserID:        userID,
		Label:         req.Label,
		Calories:      *req.Cal,
		Carbohydrates: *req.Carbohydrates,
		Fats:          *req.Fats,
		Proteins:      *req.Proteins,
		Sugars:        *req.Sugars,
		ImageURL:      req.ImageURL,
	}

	created, err := h.nutritionService.LogFood(c.Request.Context(), entry)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListFoodLogs returns the user's food log, optionally filtered to one
// day with ?day=YYYY-MM-DD.
func (h *NutritionHandler) ListFoodLogs(c *gin.Context) {
	userID, err := parseObjectID(c.Param("userId"), "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	entries, err := h.nutritionService.ListFoodLogs(c.Request.Context(), userID, c.Query("day"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetDailyIntake returns the calorie total for one day, defaulting to
// today (UTC).
func (h *NutritionHandler) GetDailyIntake(c *gin.Context) {
	userID, err := parseObjectID(c.Param("userId"), "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	intake, err := h.nutritionService.GetDailyIntake(c.Request.Context(), userID, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, intake)
}

// GetPreferences returns the preferences record joined with today's
// intake, 404 when none exists.
func (h *NutritionHandler) GetPreferences(c *gin.Context) {
	userID, err := parseObjectID(c.Param("userId"), "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.nutritionService.GetPreferences(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpsertPreferences fully replaces the mutable preference fields,
// creating the record if absent.
func (h *NutritionHandler) UpsertPreferences(c *gin.Context) {
	var req UpsertPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	prefs := &domain.CaloriePreferences{
		UserID:        userID,
		CurrentWeight: req.CurrentWeight,
		GoalWeight:    req.GoalWeight,
		ActivityLevel: domain.ActivityLevel(req.ActivityLevel),
		Meals:         req.Meals,
	}

	view, err := h.nutritionService.UpsertPreferences(c.Request.Context(), prefs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}
