package repository

import (
	"context"
	"time"

	"epochzone/internal/models"

	"github.com/google/uuid"
)

// APIKeyRepository defines the interface for API key persistence
type APIKeyRepository interface {
	// Create stores a new key record. The hash must be the SHA-256 hex
	// digest of the raw key; the raw key itself is never stored.
	Create(ctx context.Context, key *models.APIKey, keyHash string) error
	// List returns all keys, newest first, without hashes.
	List(ctx context.Context) ([]models.APIKey, error)
	// Revoke deactivates a key. Returns ErrKeyNotFound if no such key exists.
	Revoke(ctx context.Context, id uuid.UUID) error
	// ExistsActive reports whether an active, unexpired key with the given
	// hash exists.
	ExistsActive(ctx context.Context, keyHash string, now time.Time) (bool, error)
	// DeactivateExpired flips is_active off for keys whose expiry has
	// passed, returning the number of keys affected.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
