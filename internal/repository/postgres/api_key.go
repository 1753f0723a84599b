// Package postgres provides PostgreSQL implementations of the repository
// interfaces.
package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"epochzone/internal/models"
	"epochzone/internal/repository"

	"github.com/google/uuid"
)

type apiKeyRepository struct {
	repository.BaseRepository
}

// NewAPIKeyRepository creates a new PostgreSQL API key repository
func NewAPIKeyRepository(db *sql.DB) repository.APIKeyRepository {
	return &apiKeyRepository{
		BaseRepository: repository.NewBaseRepository(db),
	}
}

func (r *apiKeyRepository) Create(ctx context.Context, key *models.APIKey, keyHash string) error {
	query := `
		INSERT INTO api_keys (id, key_hash, name, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, is_active`

	key.ID = uuid.New()

	err := r.DB().QueryRowContext(ctx, query,
		key.ID,
		keyHash,
		key.Name,
		key.ExpiresAt,
	).Scan(&key.CreatedAt, &key.IsActive)

	if err != nil {
		if strings.Contains(err.Error(), "api_keys_key_hash_key") {
			return repository.ErrKeyExists
		}
		return err
	}
	return nil
}

func (r *apiKeyRepository) List(ctx context.Context) ([]models.APIKey, error) {
	query := `
		SELECT id, name, created_at, is_active, expires_at
		FROM api_keys
		ORDER BY created_at DESC`

	rows, err := r.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []models.APIKey
	for rows.Next() {
		var key models.APIKey
		if err := rows.Scan(
			&key.ID,
			&key.Name,
			&key.CreatedAt,
			&key.IsActive,
			&key.ExpiresAt,
		); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *apiKeyRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	result, err := r.DB().ExecContext(ctx,
		`UPDATE api_keys SET is_active = false WHERE id = $1 AND is_active = true`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrKeyNotFound
	}
	return nil
}

func (r *apiKeyRepository) ExistsActive(ctx context.Context, keyHash string, now time.Time) (bool, error) {
	var exists bool
	err := r.DB().QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM api_keys
			WHERE key_hash = $1
			  AND is_active = true
			  AND (expires_at IS NULL OR expires_at > $2)
		)`, keyHash, now).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *apiKeyRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.DB().ExecContext(ctx, `
		UPDATE api_keys
		SET is_active = false
		WHERE is_active = true AND expires_at IS NOT NULL AND expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
