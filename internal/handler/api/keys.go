// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/wpdev/portfolio-go/internal/handler"
	"github.com/wpdev/portfolio-go/internal/model"
	"github.com/wpdev/portfolio-go/internal/store"
	"github.com/wpdev/portfolio-go/internal/util"
)

// APIKeyResponse represents an API key in responses. The key material
// itself is never returned after creation.
type APIKeyResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	KeyPrefix   string     `json:"key_prefix"`
	Permissions []string   `json:"permissions"`
	IsActive    bool       `json:"is_active"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateAPIKeyRequest represents the request body for creating an API key.
type CreateAPIKeyRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	ExpiresAt   *string  `json:"expires_at,omitempty"`
}

// CreateAPIKeyResponse carries the raw key, shown exactly once.
type CreateAPIKeyResponse struct {
	APIKeyResponse
	Key string `json:"key"`
}

func apiKeyToResponse(k model.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:          k.ID,
		Name:        k.Name,
		KeyPrefix:   k.KeyPrefix,
		Permissions: k.GetPermissions(),
		IsActive:    k.IsActive,
		LastUsedAt:  util.TimePtrFromNull(k.LastUsedAt),
		ExpiresAt:   util.TimePtrFromNull(k.ExpiresAt),
		CreatedAt:   k.CreatedAt,
	}
}

// ListAPIKeys handles GET /api/v1/keys
// Requires content:write permission.
func (h *Handler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.queries.ListAPIKeys(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list API keys")
		return
	}

	responses := make([]APIKeyResponse, 0, len(keys))
	for _, k := range keys {
		responses = append(responses, apiKeyToResponse(k))
	}

	WriteSuccess(w, responses, nil)
}

// CreateAPIKey handles POST /api/v1/keys
// Requires content:write permission. The raw key is returned once and
// only its hash is stored.
func (h *Handler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateAPIKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if len(req.Permissions) == 0 {
		fieldErrors["permissions"] = "At least one permission is required"
	}
	valid := model.AllPermissions()
	for _, p := range req.Permissions {
		known := false
		for _, v := range valid {
			if p == v {
				known = true
				break
			}
		}
		if !known {
			fieldErrors["permissions"] = "Unknown permission: " + p
			break
		}
	}

	var expiresAt sql.NullTime
	if req.ExpiresAt != nil && *req.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			fieldErrors["expires_at"] = "Invalid date format. Use RFC3339"
		} else if t.Before(time.Now()) {
			fieldErrors["expires_at"] = "Expiry must be in the future"
		} else {
			expiresAt = sql.NullTime{Time: t, Valid: true}
		}
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	rawKey, prefix, err := model.GenerateAPIKey()
	if err != nil {
		WriteInternalError(w, "Failed to generate API key")
		return
	}

	key, err := h.queries.CreateAPIKey(ctx, store.CreateAPIKeyParams{
		Name:        req.Name,
		KeyHash:     model.HashAPIKey(rawKey),
		KeyPrefix:   prefix,
		Permissions: model.PermissionsToJSON(req.Permissions),
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create API key")
		return
	}

	_ = h.events.LogAuthEvent(ctx, model.EventLevelInfo, "API key created: "+key.Name, util.ClientIP(r), map[string]any{
		"key_id":     key.ID,
		"key_prefix": key.KeyPrefix,
	})

	WriteCreated(w, CreateAPIKeyResponse{
		APIKeyResponse: apiKeyToResponse(key),
		Key:            rawKey,
	})
}

// DeactivateAPIKey handles DELETE /api/v1/keys/{id}
// Keys are deactivated rather than removed so their audit trail stays.
// Requires content:write permission.
func (h *Handler) DeactivateAPIKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := handler.ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid API key ID", nil)
		return
	}

	if err := h.queries.DeactivateAPIKey(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "API key not found")
		} else {
			WriteInternalError(w, "Failed to deactivate API key")
		}
		return
	}

	_ = h.events.LogAuthEvent(ctx, model.EventLevelInfo, "API key deactivated", util.ClientIP(r), map[string]any{"key_id": id})

	WriteNoContent(w)
}
