// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"

	"github.com/wpdev/portfolio-go/internal/model"
)

const apiKeyColumns = `id, name, key_hash, key_prefix, permissions, is_active,
	last_used_at, expires_at, created_at, updated_at`

func scanAPIKey(row interface{ Scan(...any) error }) (model.APIKey, error) {
	var k model.APIKey
	err := row.Scan(
		&k.ID, &k.Name, &k.KeyHash, &k.KeyPrefix, &k.Permissions, &k.IsActive,
		&k.LastUsedAt, &k.ExpiresAt, &k.CreatedAt, &k.UpdatedAt,
	)
	return k, err
}

// CreateAPIKeyParams holds the fields for inserting an API key.
type CreateAPIKeyParams struct {
	Name        string
	KeyHash     string
	KeyPrefix   string
	Permissions string
	ExpiresAt   sql.NullTime
}

const createAPIKey = `
INSERT INTO api_keys (
	name, key_hash, key_prefix, permissions, is_active, expires_at,
	created_at, updated_at
) VALUES (?, ?, ?, ?, 1, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
RETURNING ` + apiKeyColumns

func (q *Queries) CreateAPIKey(ctx context.Context, arg CreateAPIKeyParams) (model.APIKey, error) {
	row := q.db.QueryRowContext(ctx, createAPIKey,
		arg.Name, arg.KeyHash, arg.KeyPrefix, arg.Permissions, arg.ExpiresAt,
	)
	return scanAPIKey(row)
}

const getAPIKeyByHash = `
SELECT ` + apiKeyColumns + ` FROM api_keys WHERE key_hash = ? AND is_active = 1`

func (q *Queries) GetAPIKeyByHash(ctx context.Context, keyHash string) (model.APIKey, error) {
	return scanAPIKey(q.db.QueryRowContext(ctx, getAPIKeyByHash, keyHash))
}

const listAPIKeys = `
SELECT ` + apiKeyColumns + ` FROM api_keys ORDER BY created_at DESC`

func (q *Queries) ListAPIKeys(ctx context.Context) ([]model.APIKey, error) {
	rows, err := q.db.QueryContext(ctx, listAPIKeys)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []model.APIKey{}
	for rows.Next() {
		k, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

const countAPIKeys = `SELECT COUNT(*) FROM api_keys`

func (q *Queries) CountAPIKeys(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countAPIKeys).Scan(&count)
	return count, err
}

const updateAPIKeyLastUsed = `
UPDATE api_keys SET last_used_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
WHERE id = ?`

func (q *Queries) UpdateAPIKeyLastUsed(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, updateAPIKeyLastUsed, id)
	return err
}

const deactivateAPIKey = `
UPDATE api_keys SET is_active = 0, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

func (q *Queries) DeactivateAPIKey(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deactivateAPIKey, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
