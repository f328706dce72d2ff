package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"pantry/internal/config"
	"pantry/internal/handlers"
	"pantry/internal/logger"
	"pantry/internal/middleware"
	"pantry/internal/notify"
	"pantry/internal/recipes"
	"pantry/internal/storage"
	"pantry/internal/storage/memory"
	"pantry/internal/storage/sqlite"
)

func main() {
	cfg := config.Load()
	logger.Initialize(logger.ParseLevel(cfg.LogLevel))

	var store storage.Store
	switch cfg.Backend {
	case "memory":
		store = memory.New()
		logger.Info("Using in-memory storage backend")
	default:
		sqliteStore, err := sqlite.Open(cfg.DatabasePath)
		if err != nil {
			log.Fatal("Failed to initialize database:", err)
		}
		store = sqliteStore
		logger.Info("Using sqlite storage backend", "path", cfg.DatabasePath)
	}
	defer store.Close()

	notifier := notify.NewService(cfg)
	if notifier.IsEnabled() {
		logger.Info("Notification service enabled with Mailgun")
	} else {
		logger.Info("Notification service disabled - Mailgun not configured")
	}

	recipeClient := recipes.NewClient(
		cfg.SpoonacularBaseURL,
		cfg.SpoonacularAPIKey,
		cfg.RecipePerMinute,
		cfg.RecipeDailyQuota,
	)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LogRequests())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg))

	h := handlers.New(store, recipeClient, notifier)
	handlers.SetupRoutes(r, h)

	logger.Info("Server starting", "port", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
