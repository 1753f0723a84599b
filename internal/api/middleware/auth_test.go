package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"epochzone/internal/api/middleware"
	"epochzone/internal/auth"
	"epochzone/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "test-admin-key-0123456789abcdef0123456789abcdef"

func newAuthTestRouter(t *testing.T) (*gin.Engine, *auth.Service) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	authService := auth.NewService(testutil.NewFakeAPIKeyRepository())
	authMiddleware := middleware.NewAuthMiddleware(authService, testAdminKey)

	router := gin.New()
	router.GET("/protected", authMiddleware.APIKeyRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/admin", authMiddleware.AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, authService
}

func TestAuthMiddleware_APIKeyRequired(t *testing.T) {
	tests := []struct {
		name       string
		setupKey   func(t *testing.T, authService *auth.Service) string
		wantStatus int
		wantErr    string
	}{
		{
			name: "Valid Key",
			setupKey: func(t *testing.T, authService *auth.Service) string {
				resp, err := authService.CreateKey(context.Background(), "test-key", nil)
				require.NoError(t, err)
				return resp.APIKey
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "Missing Header",
			setupKey: func(t *testing.T, authService *auth.Service) string {
				return ""
			},
			wantStatus: http.StatusUnauthorized,
			wantErr:    "Missing X-API-Key header",
		},
		{
			name: "Unknown Key",
			setupKey: func(t *testing.T, authService *auth.Service) string {
				return "ez_00000000000000000000000000000000"
			},
			wantStatus: http.StatusUnauthorized,
			wantErr:    "Invalid or expired API key",
		},
		{
			name: "Expired Key",
			setupKey: func(t *testing.T, authService *auth.Service) string {
				expired := time.Now().Add(-time.Hour)
				resp, err := authService.CreateKey(context.Background(), "expired-key", &expired)
				require.NoError(t, err)
				return resp.APIKey
			},
			wantStatus: http.StatusUnauthorized,
			wantErr:    "Invalid or expired API key",
		},
		{
			name: "Admin Key Is Not An Issued Key",
			setupKey: func(t *testing.T, authService *auth.Service) string {
				return testAdminKey
			},
			wantStatus: http.StatusUnauthorized,
			wantErr:    "Invalid or expired API key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, authService := newAuthTestRouter(t)
			key := tt.setupKey(t, authService)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/protected", nil)
			if key != "" {
				req.Header.Set(middleware.APIKeyHeader, key)
			}
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantErr != "" {
				var errResp map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
				require.Equal(t, tt.wantErr, errResp["error"])
			}
		})
	}
}

func TestAuthMiddleware_AdminRequired(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		wantStatus int
		wantErr    string
	}{
		{
			name:       "Valid Admin Key",
			key:        testAdminKey,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing Header",
			key:        "",
			wantStatus: http.StatusUnauthorized,
			wantErr:    "Missing X-API-Key header",
		},
		{
			name:       "Wrong Key",
			key:        "not-the-admin-key-0123456789abcdef01234567",
			wantStatus: http.StatusForbidden,
			wantErr:    "Invalid admin API key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newAuthTestRouter(t)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/admin", nil)
			if tt.key != "" {
				req.Header.Set(middleware.APIKeyHeader, tt.key)
			}
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantErr != "" {
				var errResp map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
				require.Equal(t, tt.wantErr, errResp["error"])
			}
		})
	}
}

func TestAuthMiddleware_IssuedKeyIsNotAdmin(t *testing.T) {
	router, authService := newAuthTestRouter(t)

	resp, err := authService.CreateKey(context.Background(), "regular-key", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin", nil)
	req.Header.Set(middleware.APIKeyHeader, resp.APIKey)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}
