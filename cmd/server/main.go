package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dicapisar/taskboard/internal/api"
	"github.com/dicapisar/taskboard/internal/config"
	"github.com/dicapisar/taskboard/internal/repository/postgres"
	"github.com/dicapisar/taskboard/internal/repository/rediscache"
	"github.com/dicapisar/taskboard/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := postgres.BootstrapAdmin(db, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to bootstrap admin user: %v", err)
	}

	// Initialize session cache
	redisClient, err := rediscache.NewClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	cache := rediscache.NewCacheRepository(redisClient, cfg.CacheExpiration)

	// Initialize repositories and services
	repos := postgres.NewRepositories(db, cache)
	services := service.NewServices(repos, cfg)

	// Initialize router
	router := api.NewRouter(services, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("failed to close redis client: %v", err)
	}

	log.Println("Server stopped")
}
