package middleware

import (
	"crypto/subtle"
	"net/http"

	"epochzone/internal/auth"
	"epochzone/internal/models"

	"github.com/gin-gonic/gin"
)

// APIKeyHeader is the header carrying both issued and admin keys.
const APIKeyHeader = "X-API-Key"

// AuthMiddleware guards routes with issued API keys and the admin key
type AuthMiddleware struct {
	authService *auth.Service
	adminKey    string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authService *auth.Service, adminKey string) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		adminKey:    adminKey,
	}
}

// APIKeyRequired rejects requests that do not present a valid issued key.
func (m *AuthMiddleware) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Missing X-API-Key header"})
			c.Abort()
			return
		}

		if !m.authService.ValidateKey(c.Request.Context(), key) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid or expired API key"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminRequired rejects requests that do not present the admin key. A
// missing header is 401, a wrong key is 403.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Missing X-API-Key header"})
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(m.adminKey)) != 1 {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "Invalid admin API key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
