// Package main provides the entry point for the EpochZone API server
// @title EpochZone API
// @version 1.0
// @description Timezone metadata, conversion and geolocation API.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Issued API key authentication
// @securityDefinitions.apikey AdminKeyAuth
// @in header
// @name X-API-Key
// @description Static admin key authentication
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"epochzone/internal/api/routes"
	"epochzone/internal/auth"
	"epochzone/internal/config"
	"epochzone/internal/database"
	"epochzone/internal/geo"
	"epochzone/internal/repository/postgres"
	"epochzone/internal/timezone"
	"epochzone/internal/validation"

	"github.com/joho/godotenv"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", ".env", "Path to env file")
	flag.Parse()

	// Load environment file
	if err := godotenv.Load(*envFile); err != nil && *envFile == ".env" {
		log.Printf("Warning: %v", err)
	}

	// Load configuration
	cfg := &config.Config{}
	if err := cfg.LoadFromEnv(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize validators
	validation.Initialize()

	// Load the timezone catalog from the system zoneinfo database
	catalog, err := timezone.LoadCatalog()
	if err != nil {
		log.Fatalf("Failed to load timezone catalog: %v", err)
	}
	log.Printf("Loaded %d timezones", catalog.Len())

	// Build the coordinate lookup index
	finder, err := geo.NewTZFinder()
	if err != nil {
		log.Fatalf("Failed to build timezone finder: %v", err)
	}

	// Start the expired key sweeper
	sweeper, err := auth.NewSweeper(postgres.NewAPIKeyRepository(db), cfg.Auth.KeySweepSchedule)
	if err != nil {
		log.Fatalf("Failed to start key sweeper: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	// Setup routes
	router := routes.SetupRoutes(cfg, db, catalog, finder)

	// Convert port string to int
	port, err := strconv.Atoi(cfg.API.Port)
	if err != nil {
		log.Fatalf("Invalid port number: %v", err)
	}

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
