package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/pageza/zenkitchen/backend/config"
	"github.com/pageza/zenkitchen/backend/internal/api"
	"github.com/pageza/zenkitchen/backend/internal/database"
	"github.com/pageza/zenkitchen/backend/internal/llm"
	"github.com/pageza/zenkitchen/backend/internal/metrics"
	"github.com/pageza/zenkitchen/backend/internal/middleware"
	"github.com/pageza/zenkitchen/backend/internal/router"
	"github.com/pageza/zenkitchen/backend/internal/server"
	"github.com/pageza/zenkitchen/backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	store := database.NewGormStore(db)

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	m := metrics.New()

	provider, err := newProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to create AI provider: %v", err)
	}
	chain, err := llm.NewModelChain(provider, cfg.AIModels, llm.WithAttemptObserver(m.ObserveModelAttempt))
	if err != nil {
		log.Fatalf("Failed to create model chain: %v", err)
	}
	log.Printf("AI provider %s with models %v", provider.Name(), chain.Models())

	uploader, err := service.NewUploader(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if uploader == nil {
		log.Printf("Object storage disabled, uploads will be rejected")
	}

	profileService, err := service.NewProfileService(service.NewYAMLSettings(cfg.ProfilePath))
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	// Initialize services
	services := api.Services{
		Auth:        service.NewAuthService(cfg.JWTSecret, cfg.TokenTTL),
		Inventory:   service.NewInventoryService(store, m),
		Recipes:     service.NewRecipeService(store),
		AI:          service.NewAIService(chain, service.NewRedisDraftStore(redisClient), m, cfg.AIRequestTimeout),
		Profile:     profileService,
		Uploader:    uploader,
		RateLimiter: middleware.NewAIRateLimiter(redisClient, cfg.AIRateLimit),
	}

	// Create and start server
	srv := server.NewServer(cfg, router.Dependencies{
		Services: services,
		DB:       db,
		Redis:    redisClient,
		Metrics:  m,
	})
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}

func newProvider(cfg *config.Config) (llm.Provider, error) {
	switch cfg.AIProvider {
	case "chatcompletions":
		return llm.NewChatCompletionsProvider(cfg.AIAPIKey, cfg.AIBaseURL), nil
	default:
		provider, err := llm.NewOpenAIProvider(cfg.AIAPIKey, cfg.AIBaseURL)
		if err != nil {
			return nil, err
		}
		return provider, nil
	}
}
