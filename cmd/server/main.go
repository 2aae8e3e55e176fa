package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"community_hub/internal/api"
	"community_hub/internal/api/middleware"
	"community_hub/internal/app/service"
	"community_hub/internal/common/security"
	"community_hub/internal/domain/repository"
	"community_hub/internal/platform/cache"
	"community_hub/internal/platform/config"
	"community_hub/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Could not load configuration: %v", err)
	}

	// 2. Token codec (distinct access/refresh secrets)
	tokens := security.NewTokens(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	// 3. Database
	db, err := database.Connect(cfg.DBConnStr)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected.")

	// 4. Redis (auth rate limiting)
	rdb, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	defer rdb.Close()
	log.Println("Redis connected.")

	// 5. Repositories
	userRepo := repository.NewPgUserRepository(db)
	postRepo := repository.NewPgPostRepository(db)
	eventRepo := repository.NewPgEventRepository(db)
	listingRepo := repository.NewPgListingRepository(db)

	// 6. Services
	authService := service.NewAuthService(userRepo, tokens)
	postService := service.NewPostService(postRepo)
	eventService := service.NewEventService(eventRepo)
	listingService := service.NewListingService(listingRepo)

	// 7. Router & HTTP Server
	authLimiter := middleware.NewRateLimiter(rdb, cfg.AuthRateLimit, cfg.AuthRateLimitWindow)
	router := api.NewRouter(tokens, authLimiter, !cfg.IsDevelopment(), authService, postService, eventService, listingService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
