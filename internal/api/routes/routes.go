// Package routes handles the setup and configuration of API routes
package routes

import (
	"database/sql"

	_ "epochzone/docs" // Import swagger docs
	"epochzone/internal/api/handlers"
	"epochzone/internal/api/middleware"
	"epochzone/internal/auth"
	"epochzone/internal/config"
	"epochzone/internal/geo"
	"epochzone/internal/repository/postgres"
	"epochzone/internal/timezone"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes and their handlers
func SetupRoutes(cfg *config.Config, db *sql.DB, catalog *timezone.Catalog, finder geo.Finder) *gin.Engine {
	// Create router
	r := gin.Default()

	// CORS policy: the API is called from browsers holding issued keys
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", middleware.APIKeyHeader},
	}))

	// Apply compression middleware globally
	r.Use(middleware.Compression(middleware.DefaultCompressionConfig()))

	// Routes without rate limiting
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Apply rate limiting to all other routes
	r.Use(middleware.NewRateLimiter(cfg).Middleware())

	// Initialize repositories and services
	apiKeyRepo := postgres.NewAPIKeyRepository(db)
	authService := auth.NewService(apiKeyRepo)
	timezoneService := timezone.NewService(catalog, finder)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authService, cfg.Auth.AdminAPIKey)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	timezoneHandler := handlers.NewTimezoneHandler(timezoneService)
	apiKeyHandler := handlers.NewAPIKeyHandler(authService)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Health check (no authentication required)
		v1.GET("/health", healthHandler.Health)

		// Timezone routes (require an issued API key)
		protected := v1.Group("")
		protected.Use(authMiddleware.APIKeyRequired())
		{
			protected.GET("/timezones", timezoneHandler.ListTimezones)
			// Wildcard so zone names containing '/' work unencoded
			protected.GET("/time/*timezone", timezoneHandler.GetTimezoneInfo)
			protected.POST("/convert", timezoneHandler.Convert)
			protected.GET("/geolocate", timezoneHandler.Geolocate)
		}

		// Admin routes (require the static admin key)
		admin := v1.Group("/admin/api-keys")
		admin.Use(authMiddleware.AdminRequired())
		{
			admin.POST("", apiKeyHandler.CreateAPIKey)
			admin.GET("", apiKeyHandler.ListAPIKeys)
			admin.DELETE("/:id", apiKeyHandler.RevokeAPIKey)
		}
	}

	return r
}
