package handlers_test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"epochzone/internal/api/handlers"
	"epochzone/internal/models"
	"epochzone/internal/testutil"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		setupFunc  func(*testutil.TestContext) *sql.DB
		wantStatus int
	}{
		{
			name: "Success",
			setupFunc: func(tc *testutil.TestContext) *sql.DB {
				return tc.DB
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Error - Database Down",
			setupFunc: func(tc *testutil.TestContext) *sql.DB {
				// Connect with invalid credentials to simulate failure
				connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
					tc.Config.Database.Host,
					tc.Config.Database.Port,
					"invalid_user",
					"invalid_password",
					tc.Config.Database.DBName,
					tc.Config.Database.SSLMode,
				)
				db, err := sql.Open("postgres", connStr)
				require.NoError(t, err)
				return db
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testutil.NewTestContext(t)

			handler := handlers.NewHealthHandler(tt.setupFunc(tc))

			router := gin.New()
			router.GET("/health", handler.Health)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/health", nil)
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var resp models.HealthResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.Equal(t, "healthy", resp.Status)
				require.False(t, resp.Time.IsZero())
			}
		})
	}
}
