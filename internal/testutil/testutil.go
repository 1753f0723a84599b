// Package testutil provides utilities for testing
package testutil

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"epochzone/internal/api/handlers"
	"epochzone/internal/auth"
	"epochzone/internal/config"
	"epochzone/internal/repository"
	"epochzone/internal/repository/postgres"
	"epochzone/internal/testutil/db"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

// LoadTestConfig loads the test configuration
func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return db.LoadTestConfig(t)
}

// TestContext holds common test dependencies
type TestContext struct {
	T             *testing.T
	DB            *sql.DB
	Config        *config.Config
	APIKeyRepo    repository.APIKeyRepository
	AuthService   *auth.Service
	APIKeyHandler *handlers.APIKeyHandler
}

// NewTestContext creates a new test context with all dependencies
func NewTestContext(t *testing.T) *TestContext {
	t.Helper()

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Initialize validators
	RegisterValidators(t)

	// Load test config
	cfg := LoadTestConfig(t)

	// Setup test database
	testDB := db.SetupTestDB(t, &cfg.Database)

	// Initialize repositories and services
	apiKeyRepo := postgres.NewAPIKeyRepository(testDB)
	authService := auth.NewService(apiKeyRepo)

	tc := &TestContext{
		T:             t,
		DB:            testDB,
		Config:        cfg,
		APIKeyRepo:    apiKeyRepo,
		AuthService:   authService,
		APIKeyHandler: handlers.NewAPIKeyHandler(authService),
	}

	// Register cleanup function
	t.Cleanup(func() {
		tc.cleanup()
	})

	return tc
}

// RegisterValidators installs the custom binding validators used by the API
func RegisterValidators(t *testing.T) {
	t.Helper()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("nospaces", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			return strings.TrimSpace(value) != ""
		})
		if err != nil {
			t.Fatal("Failed to register validator:", err)
		}
	}
}

// cleanup performs necessary cleanup after tests
func (tc *TestContext) cleanup() {
	if tc.DB != nil {
		if err := db.CleanupTestDB(tc.DB); err != nil {
			tc.T.Errorf("Failed to cleanup test database: %v", err)
		}
		tc.DB.Close()
	}
}

// CreateTestAPIKey issues a key with the given name and expiry, returning the
// raw key material for use in request headers.
func (tc *TestContext) CreateTestAPIKey(name string, expiresAt *time.Time) string {
	tc.T.Helper()

	resp, err := tc.AuthService.CreateKey(context.Background(), name, expiresAt)
	require.NoError(tc.T, err, "Failed to create test API key")

	return resp.APIKey
}
