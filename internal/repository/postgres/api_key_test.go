package postgres_test

import (
	"context"
	"testing"
	"time"

	"epochzone/internal/auth"
	"epochzone/internal/models"
	"epochzone/internal/repository"
	"epochzone/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyRepository_Create(t *testing.T) {
	tc := testutil.NewTestContext(t)

	key := &models.APIKey{Name: "test-key"}
	err := tc.APIKeyRepo.Create(context.Background(), key, auth.HashKey("ez_create_test"))
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, key.ID)
	require.False(t, key.CreatedAt.IsZero())
	require.True(t, key.IsActive)
	require.Nil(t, key.ExpiresAt)

	// Verify key was created in database
	var exists bool
	err = tc.DB.QueryRowContext(context.Background(),
		"SELECT EXISTS(SELECT 1 FROM api_keys WHERE id = $1 AND name = $2)",
		key.ID, key.Name).Scan(&exists)
	require.NoError(t, err)
	require.True(t, exists, "API key record should exist in database")
}

func TestAPIKeyRepository_Create_DuplicateHash(t *testing.T) {
	tc := testutil.NewTestContext(t)

	hash := auth.HashKey("ez_duplicate_test")

	err := tc.APIKeyRepo.Create(context.Background(), &models.APIKey{Name: "first"}, hash)
	require.NoError(t, err)

	err = tc.APIKeyRepo.Create(context.Background(), &models.APIKey{Name: "second"}, hash)
	require.ErrorIs(t, err, repository.ErrKeyExists)
}

func TestAPIKeyRepository_List(t *testing.T) {
	tc := testutil.NewTestContext(t)

	t.Run("Empty", func(t *testing.T) {
		keys, err := tc.APIKeyRepo.List(context.Background())
		require.NoError(t, err)
		require.Empty(t, keys)
	})

	t.Run("Newest First", func(t *testing.T) {
		for i, name := range []string{"oldest", "middle", "newest"} {
			key := &models.APIKey{Name: name}
			// Space out created_at so the ordering is deterministic
			err := tc.APIKeyRepo.Create(context.Background(), key, auth.HashKey(name))
			require.NoError(t, err)
			_, err = tc.DB.ExecContext(context.Background(),
				"UPDATE api_keys SET created_at = created_at + ($1 || ' seconds')::interval WHERE id = $2",
				i, key.ID)
			require.NoError(t, err)
		}

		keys, err := tc.APIKeyRepo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, keys, 3)
		require.Equal(t, "newest", keys[0].Name)
		require.Equal(t, "middle", keys[1].Name)
		require.Equal(t, "oldest", keys[2].Name)
	})
}

func TestAPIKeyRepository_Revoke(t *testing.T) {
	tc := testutil.NewTestContext(t)

	key := &models.APIKey{Name: "revoke-me"}
	err := tc.APIKeyRepo.Create(context.Background(), key, auth.HashKey("ez_revoke_test"))
	require.NoError(t, err)

	err = tc.APIKeyRepo.Revoke(context.Background(), key.ID)
	require.NoError(t, err)

	var isActive bool
	err = tc.DB.QueryRowContext(context.Background(),
		"SELECT is_active FROM api_keys WHERE id = $1", key.ID).Scan(&isActive)
	require.NoError(t, err)
	require.False(t, isActive)

	// Revoking an already revoked key reports not found
	err = tc.APIKeyRepo.Revoke(context.Background(), key.ID)
	require.ErrorIs(t, err, repository.ErrKeyNotFound)

	err = tc.APIKeyRepo.Revoke(context.Background(), uuid.New())
	require.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestAPIKeyRepository_ExistsActive(t *testing.T) {
	tc := testutil.NewTestContext(t)

	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name      string
		raw       string
		expiresAt *time.Time
		revoke    bool
		want      bool
	}{
		{name: "Active Without Expiry", raw: "ez_active", want: true},
		{name: "Active Before Expiry", raw: "ez_unexpired", expiresAt: &future, want: true},
		{name: "Expired", raw: "ez_expired", expiresAt: &past, want: false},
		{name: "Revoked", raw: "ez_revoked", revoke: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := &models.APIKey{Name: tt.name, ExpiresAt: tt.expiresAt}
			err := tc.APIKeyRepo.Create(context.Background(), key, auth.HashKey(tt.raw))
			require.NoError(t, err)

			if tt.revoke {
				require.NoError(t, tc.APIKeyRepo.Revoke(context.Background(), key.ID))
			}

			exists, err := tc.APIKeyRepo.ExistsActive(context.Background(), auth.HashKey(tt.raw), now)
			require.NoError(t, err)
			require.Equal(t, tt.want, exists)
		})
	}

	t.Run("Unknown Hash", func(t *testing.T) {
		exists, err := tc.APIKeyRepo.ExistsActive(context.Background(), auth.HashKey("ez_never_issued"), now)
		require.NoError(t, err)
		require.False(t, exists)
	})
}

func TestAPIKeyRepository_DeactivateExpired(t *testing.T) {
	tc := testutil.NewTestContext(t)

	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	expired := &models.APIKey{Name: "expired", ExpiresAt: &past}
	require.NoError(t, tc.APIKeyRepo.Create(context.Background(), expired, auth.HashKey("ez_sweep_expired")))
	live := &models.APIKey{Name: "live", ExpiresAt: &future}
	require.NoError(t, tc.APIKeyRepo.Create(context.Background(), live, auth.HashKey("ez_sweep_live")))
	forever := &models.APIKey{Name: "forever"}
	require.NoError(t, tc.APIKeyRepo.Create(context.Background(), forever, auth.HashKey("ez_sweep_forever")))

	n, err := tc.APIKeyRepo.DeactivateExpired(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	// A second sweep finds nothing left to do
	n, err = tc.APIKeyRepo.DeactivateExpired(context.Background(), now)
	require.NoError(t, err)
	require.Zero(t, n)

	keys, err := tc.APIKeyRepo.List(context.Background())
	require.NoError(t, err)
	for _, key := range keys {
		require.Equal(t, key.Name != "expired", key.IsActive, "key %s", key.Name)
	}
}
