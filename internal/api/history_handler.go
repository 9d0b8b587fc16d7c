package api

import (
	"net/http"
	"time"

	"trackfit/fitness-api/internal/apperr"
	"trackfit/fitness-api/internal/domain"
	"trackfit/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryHandler holds the history service dependency.
type HistoryHandler struct {
	historyService service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(historyService service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// --- DTOs ---

type LogSetRequest struct {
	UserID       string  `json:"userId" binding:"required"`
	ExerciseName string  `json:"exerciseName" binding:"required"`
	Sets         int     `json:"sets" binding:"min=0"`
	Reps         int     `json:"reps" binding:"min=0"`
	Weight       float64 `json:"weight" binding:"min=0"`
}

type ToggleFavoriteRequest struct {
	UserID       string `json:"userId" binding:"required"`
	ExerciseName string `json:"exerciseName" binding:"required"`
}

type HistoryEntryResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ExerciseName string    `json:"exerciseName"`
	Sets         int       `json:"sets"`
	Reps         int       `json:"reps"`
	Weight       float64   `json:"weight"`
	Favorite     bool      `json:"favorite"`
	CreatedAt    time.Time `json:"createdAt"`
}

type FavoriteResponse struct {
	ExerciseName string    `json:"exerciseName"`
	FavoritedAt  time.Time `json:"favoritedAt"`
}

func mapHistoryEntryToResponse(entry *domain.ExerciseHistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:           entry.ID.Hex(),
		UserID:       entry.UserID.Hex(),
		ExerciseName: entry.ExerciseName,
		Sets:         entry.Sets,
		Reps:         entry.Reps,
		Weight:       entry.Weight,
		Favorite:     entry.Favorite,
		CreatedAt:    entry.CreatedAt,
	}
}

func mapHistoryEntriesToResponse(entries []domain.ExerciseHistoryEntry) []HistoryEntryResponse {
	responses := make([]HistoryEntryResponse, len(entries))
	for i := range entries {
		responses[i] = mapHistoryEntryToResponse(&entries[i])
	}
	return responses
}

// parseObjectID converts a hex path/body parameter into an ObjectID,
// classifying malformed values as validation failures.
func parseObjectID(raw, field string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.Validation("%s is not a valid identifier", field)
	}
	return id, nil
}

// --- Handler Methods ---

// LogSet records one performed exercise and returns the created entry.
func (h *HistoryHandler) LogSet(c *gin.Context) {
	var req LogSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	entry, err := h.historyService.LogSet(c.Request.Context(), userID, req.ExerciseName, req.Sets, req.Reps, req.Weight)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, mapHistoryEntryToResponse(entry))
}

// ToggleFavorite flips the favorite state for (user, exercise name).
func (h *HistoryHandler) ToggleFavorite(c *gin.Context) {
	var req ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	userID, err := parseObjectID(req.UserID, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	favorite, err := h.historyService.ToggleFavorite(c.Request.Context(), userID, req.ExerciseName)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "exercise removed from favorites"
	if favorite {
		message = "exercise added to favorites"
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      message,
		"exerciseName": req.ExerciseName,
		"favorite":     favorite,
	})
}

// ListHistory returns all logged sets for a user. An empty history is
// a 200 with an empty array.
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	userID, err := parseObjectID(c.Param("userId"), "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	entries, err := h.historyService.ListHistory(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapHistoryEntriesToResponse(entries))
}

// ListFavorites returns the user's favorited exercises.
func (h *HistoryHandler) ListFavorites(c *gin.Context) {
	userID, err := parseObjectID(c.Param("userId"), "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	favorites, err := h.historyService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]FavoriteResponse, len(favorites))
	for i, fav := range favorites {
		responses[i] = FavoriteResponse{
			ExerciseName: fav.ExerciseName,
			FavoritedAt:  fav.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, responses)
}
