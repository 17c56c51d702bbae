package main

import (
	"context"
	"log"
	"time"

	"github.com/ecogrocery/backend/config"
	"github.com/ecogrocery/backend/internal/api"
	"github.com/ecogrocery/backend/internal/database"
	"github.com/ecogrocery/backend/internal/middleware"
	"github.com/ecogrocery/backend/internal/router"
	"github.com/ecogrocery/backend/internal/server"
	"github.com/ecogrocery/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Dish image storage is optional; the catalog works without it
	var imageService *service.DishImageService
	if s3Config, err := config.NewS3Config(context.Background(), cfg.S3Bucket); err == nil {
		if err := s3Config.SetupBucketPolicy(context.Background()); err != nil {
			log.Printf("Could not apply public-read bucket policy: %v", err)
		}
		imageService = service.NewDishImageService(s3Config)
	} else {
		log.Printf("S3 not configured, dish image uploads disabled: %v", err)
	}

	llmService := service.NewLLMService(cfg, redisClient)
	authService := service.NewAuthService(cfg.JWTSecret, cfg.SitePasswordHash)
	dishService := service.NewDishService(db)
	ingredientService := service.NewIngredientService(db, llmService)
	groceryService := service.NewGroceryService(ingredientService)
	adviceService := service.NewStorageAdviceService(db, llmService)

	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     30,
		KeyPrefix: "ratelimit:llm",
	})

	engine := router.SetupRouter(router.Handlers{
		Auth:           api.NewAuthHandler(authService),
		Dish:           api.NewDishHandler(dishService, imageService),
		Grocery:        api.NewGroceryHandler(groceryService, ingredientService),
		Pantry:         api.NewPantryHandler(adviceService),
		Health:         api.NewHealthHandler(db, redisClient),
		TokenValidator: authService,
		RateLimiter:    rateLimiter,
	})

	srv := server.NewServer(engine)
	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
