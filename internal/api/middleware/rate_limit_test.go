package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"epochzone/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newRateLimitedRouter(requests, window, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.RateLimit.Requests = requests
	cfg.RateLimit.Window = window
	cfg.RateLimit.Burst = burst

	router := gin.New()
	router.Use(NewRateLimiter(cfg).Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/swagger/index.html", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doRequest(router *gin.Engine, path, ip string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	req.RemoteAddr = ip + ":1234"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_UnderLimit(t *testing.T) {
	router := newRateLimitedRouter(10, 1, 10)

	for i := 0; i < 3; i++ {
		w := doRequest(router, "/test", "192.168.1.1")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
		require.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
	}
}

func TestRateLimiter_BurstExceeded(t *testing.T) {
	router := newRateLimitedRouter(2, 60, 2)

	require.Equal(t, http.StatusOK, doRequest(router, "/test", "192.168.1.2").Code)
	require.Equal(t, http.StatusOK, doRequest(router, "/test", "192.168.1.2").Code)

	w := doRequest(router, "/test", "192.168.1.2")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	require.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_PerClientIsolation(t *testing.T) {
	router := newRateLimitedRouter(1, 60, 1)

	require.Equal(t, http.StatusOK, doRequest(router, "/test", "10.0.0.1").Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(router, "/test", "10.0.0.1").Code)

	// A different client has its own bucket
	require.Equal(t, http.StatusOK, doRequest(router, "/test", "10.0.0.2").Code)
}

func TestRateLimiter_SwaggerExempt(t *testing.T) {
	router := newRateLimitedRouter(1, 60, 1)

	for i := 0; i < 5; i++ {
		w := doRequest(router, "/swagger/index.html", "10.0.0.3")
		require.Equal(t, http.StatusOK, w.Code)
	}
}
