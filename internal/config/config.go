// Package config loads the application configuration from the environment
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config represents the application configuration
type Config struct {
	// API contains API server configuration
	API APIConfig
	// Auth contains authentication configuration
	Auth AuthConfig
	// Database contains database configuration
	Database DatabaseConfig
	// CORS contains cross-origin policy configuration
	CORS CORSConfig

	// Rate Limiting Configuration
	RateLimit struct {
		Requests int // Number of requests allowed per window
		Window   int // Time window in seconds
		Burst    int // Maximum burst size
	}
}

// APIConfig contains API server settings
type APIConfig struct {
	// Port is the server port to listen on
	Port string
}

// AuthConfig contains authentication settings
type AuthConfig struct {
	// AdminAPIKey is the static key granting access to key management
	AdminAPIKey string
	// KeySweepSchedule is the cron schedule for deactivating expired keys
	KeySweepSchedule string
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname
	Host string
	// Port is the database server port
	Port int
	// User is the database username
	User string
	// Password is the database password
	Password string
	// DBName is the database name
	DBName string
	// SSLMode is the SSL mode for the database connection
	SSLMode string
	// MigrationsPath is the path to database migrations
	MigrationsPath string
}

// CORSConfig contains cross-origin policy settings
type CORSConfig struct {
	// AllowedOrigins lists the origins allowed to call the API
	AllowedOrigins []string
}

// LoadFromEnv retrieves configuration from environment variables
func (c *Config) LoadFromEnv() error {
	c.API = APIConfig{
		Port: getEnvOrDefault("API_PORT", "8080"),
	}
	c.Database = DatabaseConfig{
		Host:           getEnvOrDefault("DB_HOST", "localhost"),
		Port:           getEnvAsInt("DB_PORT", 5432),
		User:           getEnvOrDefault("DB_USER", "postgres"),
		Password:       getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:         getEnvOrDefault("DB_NAME", "epochzone"),
		SSLMode:        getEnvOrDefault("DB_SSL_MODE", "disable"),
		MigrationsPath: "migrations",
	}
	c.Auth = AuthConfig{
		AdminAPIKey:      os.Getenv("ADMIN_API_KEY"),
		KeySweepSchedule: getEnvOrDefault("KEY_SWEEP_SCHEDULE", "0 * * * *"),
	}
	c.CORS = CORSConfig{
		AllowedOrigins: splitAndTrim(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
	}

	// Load rate limit configuration
	c.RateLimit.Requests = getEnvAsInt("RATE_LIMIT_REQUESTS", 1000)
	c.RateLimit.Window = getEnvAsInt("RATE_LIMIT_WINDOW", 60)
	c.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 50)

	// Validate required fields
	if c.Auth.AdminAPIKey == "" {
		return fmt.Errorf("ADMIN_API_KEY is required")
	}
	if len(c.Auth.AdminAPIKey) < 32 {
		return fmt.Errorf("ADMIN_API_KEY must be at least 32 characters")
	}

	return nil
}

// splitAndTrim splits a comma-separated list, dropping empty entries
func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnvAsInt retrieves an environment variable and converts it to an integer
func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
