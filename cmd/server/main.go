package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackfit/fitness-api/internal/api"
	"trackfit/fitness-api/internal/config"
	"trackfit/fitness-api/internal/repository/mongo"
	"trackfit/fitness-api/internal/service"
	"trackfit/fitness-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}
	setupLogging(cfg.Log)
	logrus.Info("starting fitness API server")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		logrus.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logrus.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logrus.WithField("database", cfg.Database.Name).Info("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		for name, fn := range map[string]func(context.Context, *mongodriver.Collection) error{
			"users":               mongo.EnsureUserIndexes,
			"exercise_history":    mongo.EnsureHistoryIndexes,
			"favorites":           mongo.EnsureFavoriteIndexes,
			"food_logs":           mongo.EnsureFoodLogIndexes,
			"calorie_preferences": mongo.EnsurePreferenceIndexes,
			"daily_intake":        mongo.EnsureIntakeIndexes,
		} {
			if err := fn(ctx, appDB.Collection(name)); err != nil {
				logrus.WithError(err).WithField("collection", name).Warn("failed to create indexes")
			}
		}
		logrus.Info("index creation completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize S3 storage")
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	historyRepo := mongo.NewMongoHistoryRepository(appDB)
	favoriteRepo := mongo.NewMongoFavoriteRepository(appDB)
	foodRepo := mongo.NewMongoFoodLogRepository(appDB)
	prefRepo := mongo.NewMongoPreferenceRepository(appDB)
	intakeRepo := mongo.NewMongoIntakeRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, fileStorage)
	historyService := service.NewHistoryService(historyRepo, favoriteRepo)
	nutritionService := service.NewNutritionService(foodRepo, prefRepo, intakeRepo)

	// --- Initialize Gin Engine ---
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(api.RequestLogger(), gin.Recovery())

	api.SetupRoutes(router, cfg.JWT.Secret, authService, userService, historyService, nutritionService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.WithField("address", cfg.Server.Address).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("listen and serve error")
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server exiting")
}

func setupLogging(cfg config.LogConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
