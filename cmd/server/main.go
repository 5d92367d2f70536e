package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rwalia/estatehub-server/internal/api"
	"github.com/rwalia/estatehub-server/internal/config"
	"github.com/rwalia/estatehub-server/internal/logger"
	"github.com/rwalia/estatehub-server/internal/repository"
	"github.com/rwalia/estatehub-server/internal/service"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize structured logging
	log := logger.New()
	defer func() { _ = log.Sync() }()

	// Choose the repository backend
	var repo repository.Repository
	if cfg.Database.Disabled {
		log.Info("database disabled, using in-memory repository")
		repo = repository.NewMemoryRepository()
	} else {
		db, err := config.SetupDatabase(cfg)
		if err != nil {
			log.Fatal("failed to set up database", zap.Error(err))
		}
		defer db.Close()
		repo = repository.NewPostgresRepository(db)
	}

	// Create service
	svc := service.NewDefaultService(repo, log, cfg.Auth.JWTSecret)

	// Optional Redis cache for merged listing reads
	redisClient := config.NewRedisClient(cfg.Cache)
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("redis cache enabled", zap.String("addr", cfg.Cache.Addr))
	}
	cache := api.NewListingCache(redisClient, cfg.Cache.TTL)

	// Create API handler
	handler := api.NewHandler(svc, log, cache, cfg.Media.Dir)

	// Set up Gin router
	router := gin.Default()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("starting server", zap.String("addr", serverAddr))
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
