// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/wpdev/portfolio-go/internal/model"
)

// DefaultAPIKeyName is the name of the bootstrap admin key.
const DefaultAPIKeyName = "bootstrap-admin"

// Seed creates initial data in the database. It generates a bootstrap API key
// with all permissions when no keys exist yet; the raw key is logged once and
// never recoverable afterwards.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	count, err := queries.CountAPIKeys(ctx)
	if err != nil {
		return fmt.Errorf("counting api keys: %w", err)
	}
	if count > 0 {
		slog.Info("api keys already exist, skipping seed")
		return nil
	}

	rawKey, prefix, err := model.GenerateAPIKey()
	if err != nil {
		return fmt.Errorf("generating api key: %w", err)
	}

	key, err := queries.CreateAPIKey(ctx, CreateAPIKeyParams{
		Name:        DefaultAPIKeyName,
		KeyHash:     model.HashAPIKey(rawKey),
		KeyPrefix:   prefix,
		Permissions: model.PermissionsToJSON(model.AllPermissions()),
	})
	if err != nil {
		return fmt.Errorf("creating bootstrap api key: %w", err)
	}

	slog.Info("created bootstrap api key, store it now: it will not be shown again",
		"id", key.ID,
		"name", key.Name,
		"key", rawKey,
	)

	return nil
}
