package models

import (
	"time"

	"github.com/google/uuid"
)

// APIKey represents a stored API key. The raw key material is never
// persisted, only its SHA-256 digest.
type APIKey struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name" example:"mobile-app"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	IsActive  bool       `json:"is_active" db:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" db:"expires_at"`
}

// CreateAPIKeyRequest represents the request to issue a new API key
type CreateAPIKeyRequest struct {
	Name      string     `json:"name" binding:"required,nospaces" example:"mobile-app"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" example:"2026-01-01T00:00:00Z"`
}

// CreateAPIKeyResponse carries the raw key back to the caller. This is the
// only time the key material is visible.
type CreateAPIKeyResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	APIKey    string     `json:"api_key" example:"ez_0123456789abcdef0123456789abcdef"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
