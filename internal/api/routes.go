package api

import (
	"net/http"

	"trackfit/fitness-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts all endpoints. Auth endpoints are open; everything
// else sits behind the JWT middleware.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	historyService service.HistoryService,
	nutritionService service.NutritionService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	historyHandler := NewHistoryHandler(historyService)
	nutritionHandler := NewNutritionHandler(nutritionService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		historyGroup := protected.Group("/history")
		{
			historyGroup.POST("", historyHandler.LogSet)
			historyGroup.POST("/toggle-favorite", historyHandler.ToggleFavorite)
			historyGroup.GET("/favorites/:userId", historyHandler.ListFavorites)
			historyGroup.GET("/:userId", historyHandler.ListHistory)
		}

		foodGroup := protected.Group("/food")
		{
			foodGroup.POST("/log", nutritionHandler.LogFood)
			foodGroup.GET("/log/:userId", nutritionHandler.ListFoodLogs)
			foodGroup.GET("/intake/:userId", nutritionHandler.GetDailyIntake)
		}

		preferencesGroup := protected.Group("/preferences")
		{
			preferencesGroup.POST("", nutritionHandler.UpsertPreferences)
			preferencesGroup.GET("/:userId", nutritionHandler.GetPreferences)
		}

		usersGroup := protected.Group("/users")
		{
			usersGroup.GET("/:id", userHandler.GetUser)
			usersGroup.PUT("/:id/profile", userHandler.UpdateProfile)
			usersGroup.PUT("/:id/avatar", userHandler.UpdateAvatar)
			usersGroup.PUT("/:id/weight", userHandler.UpdateWeight)
			usersGroup.PUT("/:id/gender", userHandler.UpdateGender)
			usersGroup.PUT("/:id/experience", userHandler.UpdateExperience)
			usersGroup.PUT("/:id/password", userHandler.ChangePassword)
			usersGroup.DELETE("/:id", userHandler.DeleteUser)
		}
	}
}
