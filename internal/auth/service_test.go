package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"epochzone/internal/auth"
	"epochzone/internal/repository"
	"epochzone/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	key := auth.GenerateKey()

	require.True(t, strings.HasPrefix(key, "ez_"))
	require.Len(t, key, 35)

	// The part after the prefix is hex
	for _, r := range key[3:] {
		require.Contains(t, "0123456789abcdef", string(r))
	}

	// Keys are unique
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		k := auth.GenerateKey()
		require.False(t, seen[k], "duplicate key generated")
		seen[k] = true
	}
}

func TestHashKey(t *testing.T) {
	hash := auth.HashKey("ez_0123456789abcdef0123456789abcdef")

	// SHA-256 hex digest
	require.Len(t, hash, 64)

	// Deterministic, so the store can look keys up by hash
	require.Equal(t, hash, auth.HashKey("ez_0123456789abcdef0123456789abcdef"))
	require.NotEqual(t, hash, auth.HashKey("ez_fedcba9876543210fedcba9876543210"))
}

func TestService_CreateKey(t *testing.T) {
	repo := testutil.NewFakeAPIKeyRepository()
	svc := auth.NewService(repo)

	expiry := time.Now().Add(24 * time.Hour)
	resp, err := svc.CreateKey(context.Background(), "integration", &expiry)
	require.NoError(t, err)

	require.Equal(t, "integration", resp.Name)
	require.True(t, strings.HasPrefix(resp.APIKey, "ez_"))
	require.NotNil(t, resp.ExpiresAt)
	require.False(t, resp.CreatedAt.IsZero())

	// The listing never exposes key material
	keys, err := svc.ListKeys(context.Background())
	require.NoError(t, err)
	require.Len(t, keys, 1)
	require.True(t, keys[0].IsActive)
}

func TestService_CreateKey_StoreFailure(t *testing.T) {
	repo := testutil.NewFakeAPIKeyRepository()
	repo.CreateErr = repository.ErrKeyExists
	svc := auth.NewService(repo)

	resp, err := svc.CreateKey(context.Background(), "doomed", nil)
	require.ErrorIs(t, err, repository.ErrKeyExists)
	require.Nil(t, resp)
}

func TestService_ValidateKey(t *testing.T) {
	repo := testutil.NewFakeAPIKeyRepository()
	svc := auth.NewService(repo)

	resp, err := svc.CreateKey(context.Background(), "valid", nil)
	require.NoError(t, err)

	require.True(t, svc.ValidateKey(context.Background(), resp.APIKey))
	require.False(t, svc.ValidateKey(context.Background(), "ez_00000000000000000000000000000000"))
	require.False(t, svc.ValidateKey(context.Background(), ""))

	// Revocation takes effect immediately
	require.NoError(t, svc.RevokeKey(context.Background(), resp.ID))
	require.False(t, svc.ValidateKey(context.Background(), resp.APIKey))
}

func TestService_RevokeKey_NotFound(t *testing.T) {
	svc := auth.NewService(testutil.NewFakeAPIKeyRepository())

	err := svc.RevokeKey(context.Background(), uuid.New())
	require.ErrorIs(t, err, repository.ErrKeyNotFound)
}
