// Package auth provides API key issuance and validation.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"epochzone/internal/models"
	"epochzone/internal/repository"

	"github.com/google/uuid"
)

// keyPrefix marks issued keys so they are recognizable in logs and configs.
const keyPrefix = "ez_"

// Service provides API key functionality
type Service struct {
	repo repository.APIKeyRepository
}

// NewService creates a new API key service
func NewService(repo repository.APIKeyRepository) *Service {
	return &Service{repo: repo}
}

// GenerateKey creates new random key material: the prefix plus 32 hex chars.
func GenerateKey() string {
	return keyPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// HashKey returns the SHA-256 hex digest of a raw key. The digest is
// deterministic so keys can be looked up by hash.
func HashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// CreateKey issues a new API key. The raw key is only available in the
// returned response; the store keeps the hash.
func (s *Service) CreateKey(ctx context.Context, name string, expiresAt *time.Time) (*models.CreateAPIKeyResponse, error) {
	raw := GenerateKey()

	key := &models.APIKey{
		Name:      name,
		ExpiresAt: expiresAt,
	}
	if err := s.repo.Create(ctx, key, HashKey(raw)); err != nil {
		return nil, fmt.Errorf("failed to create api key: %w", err)
	}

	return &models.CreateAPIKeyResponse{
		ID:        key.ID,
		Name:      key.Name,
		APIKey:    raw,
		CreatedAt: key.CreatedAt,
		ExpiresAt: key.ExpiresAt,
	}, nil
}

// ListKeys returns all issued keys, newest first.
func (s *Service) ListKeys(ctx context.Context) ([]models.APIKey, error) {
	return s.repo.List(ctx)
}

// RevokeKey deactivates a key by ID.
func (s *Service) RevokeKey(ctx context.Context, id uuid.UUID) error {
	return s.repo.Revoke(ctx, id)
}

// ValidateKey reports whether a presented raw key matches an active,
// unexpired key. Any store failure counts as invalid.
func (s *Service) ValidateKey(ctx context.Context, raw string) bool {
	ok, err := s.repo.ExistsActive(ctx, HashKey(raw), time.Now())
	if err != nil {
		return false
	}
	return ok
}
