package testutil

import (
	"context"
	"sync"
	"time"

	"epochzone/internal/models"
	"epochzone/internal/repository"

	"github.com/google/uuid"
)

// FakeAPIKeyRepository is an in-memory implementation of the API key
// repository for handler and middleware tests that do not need Postgres.
type FakeAPIKeyRepository struct {
	mu     sync.Mutex
	keys   []models.APIKey
	hashes map[uuid.UUID]string

	// CreateErr, when set, is returned from Create to simulate store failures
	CreateErr error
}

// NewFakeAPIKeyRepository creates an empty in-memory key store
func NewFakeAPIKeyRepository() *FakeAPIKeyRepository {
	return &FakeAPIKeyRepository{hashes: make(map[uuid.UUID]string)}
}

func (r *FakeAPIKeyRepository) Create(ctx context.Context, key *models.APIKey, keyHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return r.CreateErr
	}
	for _, hash := range r.hashes {
		if hash == keyHash {
			return repository.ErrKeyExists
		}
	}

	key.ID = uuid.New()
	key.CreatedAt = time.Now().UTC()
	key.IsActive = true

	r.keys = append(r.keys, *key)
	r.hashes[key.ID] = keyHash
	return nil
}

func (r *FakeAPIKeyRepository) List(ctx context.Context) ([]models.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Newest first, matching the Postgres implementation
	out := make([]models.APIKey, len(r.keys))
	for i, key := range r.keys {
		out[len(r.keys)-1-i] = key
	}
	return out, nil
}

func (r *FakeAPIKeyRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.keys {
		if r.keys[i].ID == id && r.keys[i].IsActive {
			r.keys[i].IsActive = false
			return nil
		}
	}
	return repository.ErrKeyNotFound
}

func (r *FakeAPIKeyRepository) ExistsActive(ctx context.Context, keyHash string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.keys {
		key := &r.keys[i]
		if r.hashes[key.ID] != keyHash || !key.IsActive {
			continue
		}
		if key.ExpiresAt != nil && !key.ExpiresAt.After(now) {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (r *FakeAPIKeyRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for i := range r.keys {
		key := &r.keys[i]
		if key.IsActive && key.ExpiresAt != nil && !key.ExpiresAt.After(now) {
			key.IsActive = false
			n++
		}
	}
	return n, nil
}
