package handlers

import (
	"net/http"

	"epochzone/internal/auth"
	"epochzone/internal/models"
	"epochzone/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// APIKeyHandler handles API key management requests
type APIKeyHandler struct {
	authService *auth.Service
}

// NewAPIKeyHandler creates a new APIKeyHandler
func NewAPIKeyHandler(authService *auth.Service) *APIKeyHandler {
	return &APIKeyHandler{authService: authService}
}

// CreateAPIKey godoc
// @Summary Issue a new API key
// @Description Creates a new API key. The raw key is only returned once.
// @Tags api-keys
// @Accept json
// @Produce json
// @Security AdminKeyAuth
// @Param request body models.CreateAPIKeyRequest true "Key to create"
// @Success 201 {object} models.CreateAPIKeyResponse
// @Failure 400 {object} models.ErrorResponse "Invalid request body"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Invalid admin key"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /admin/api-keys [post]
func (h *APIKeyHandler) CreateAPIKey(c *gin.Context) {
	var req models.CreateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.authService.CreateKey(c.Request.Context(), req.Name, req.ExpiresAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create API key"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListAPIKeys godoc
// @Summary List all API keys
// @Description Returns all issued keys, newest first, without key material
// @Tags api-keys
// @Accept json
// @Produce json
// @Security AdminKeyAuth
// @Success 200 {array} models.APIKey
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Invalid admin key"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /admin/api-keys [get]
func (h *APIKeyHandler) ListAPIKeys(c *gin.Context) {
	keys, err := h.authService.ListKeys(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list API keys"})
		return
	}

	if keys == nil {
		keys = []models.APIKey{}
	}
	c.JSON(http.StatusOK, keys)
}

// RevokeAPIKey godoc
// @Summary Revoke an API key
// @Description Deactivates an issued key by ID
// @Tags api-keys
// @Accept json
// @Produce json
// @Security AdminKeyAuth
// @Param id path string true "Key ID"
// @Success 204 "No Content"
// @Failure 400 {object} models.ErrorResponse "Invalid key ID"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Invalid admin key"
// @Failure 404 {object} models.ErrorResponse "API key not found"
// @Failure 500 {object} models.ErrorResponse "Internal Server Error"
// @Router /admin/api-keys/{id} [delete]
func (h *APIKeyHandler) RevokeAPIKey(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid key ID"})
		return
	}

	if err := h.authService.RevokeKey(c.Request.Context(), id); err == repository.ErrKeyNotFound {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "API key not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to revoke API key"})
		return
	}

	c.Status(http.StatusNoContent)
}
