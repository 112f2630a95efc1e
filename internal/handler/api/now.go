// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/wpdev/portfolio-go/internal/handler"
	"github.com/wpdev/portfolio-go/internal/model"
	"github.com/wpdev/portfolio-go/internal/store"
	"github.com/wpdev/portfolio-go/internal/util"
)

// NowSectionResponse represents a now section in API responses.
type NowSectionResponse struct {
	ID                int64     `json:"id"`
	Content           string    `json:"content"`
	ContentHTML       string    `json:"content_html,omitempty"`
	CurrentProject    *string   `json:"current_project,omitempty"`
	CurrentProjectURL *string   `json:"current_project_url,omitempty"`
	CurrentlyLearning []string  `json:"currently_learning"`
	CurrentGoals      []string  `json:"current_goals"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateNowSectionRequest represents the request body for creating a section.
// A newly created section always becomes the active one.
type CreateNowSectionRequest struct {
	Content           string   `json:"content"`
	CurrentProject    *string  `json:"current_project,omitempty"`
	CurrentProjectURL *string  `json:"current_project_url,omitempty"`
	CurrentlyLearning []string `json:"currently_learning"`
	CurrentGoals      []string `json:"current_goals"`
}

// UpdateNowSectionRequest represents the request body for updating a section.
// Nil fields are left unchanged.
type UpdateNowSectionRequest struct {
	Content           *string   `json:"content,omitempty"`
	CurrentProject    *string   `json:"current_project,omitempty"`
	CurrentProjectURL *string   `json:"current_project_url,omitempty"`
	CurrentlyLearning *[]string `json:"currently_learning,omitempty"`
	CurrentGoals      *[]string `json:"current_goals,omitempty"`
	IsActive          *bool     `json:"is_active,omitempty"`
}

func nowSectionToResponse(s model.NowSection) NowSectionResponse {
	return NowSectionResponse{
		ID:                s.ID,
		Content:           s.Content,
		CurrentProject:    util.StringPtrFromNull(s.CurrentProject),
		CurrentProjectURL: util.StringPtrFromNull(s.CurrentProjectURL),
		CurrentlyLearning: model.SplitTags(s.CurrentlyLearning),
		CurrentGoals:      model.SplitTags(s.CurrentGoals),
		IsActive:          s.IsActive,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// GetActiveNowSection handles GET /api/v1/now
// Public: returns the single active section, or 404 when none is active.
func (h *Handler) GetActiveNowSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	section, err := h.cache.GetActiveNowSection(ctx)
	if err != nil {
		section, err = h.queries.GetActiveNowSection(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteNotFound(w, "No active now section")
			} else {
				WriteInternalError(w, "Failed to retrieve now section")
			}
			return
		}
		if cacheErr := h.cache.SetActiveNowSection(ctx, section); cacheErr != nil {
			slog.Warn("failed to cache now section", "error", cacheErr)
		}
	}

	resp := nowSectionToResponse(section)
	if html, renderErr := h.markdown.Render(section.Content); renderErr == nil {
		resp.ContentHTML = html
	}
	WriteSuccess(w, resp, nil)
}

// ListNowSections handles GET /api/v1/now/sections
// Requires content:read permission.
func (h *Handler) ListNowSections(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := handler.ParsePageParam(r)
	perPage := handler.ParsePerPageParam(r, 20, 100)

	sections, err := h.queries.ListNowSections(ctx, int64(perPage), int64((page-1)*perPage))
	if err != nil {
		WriteInternalError(w, "Failed to list now sections")
		return
	}
	total, err := h.queries.CountNowSections(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to list now sections")
		return
	}

	responses := make([]NowSectionResponse, 0, len(sections))
	for _, s := range sections {
		responses = append(responses, nowSectionToResponse(s))
	}

	WriteSuccess(w, responses, paginationMeta(total, page, perPage))
}

// GetNowSection handles GET /api/v1/now/sections/{id}
// Requires content:read permission.
func (h *Handler) GetNowSection(w http.ResponseWriter, r *http.Request) {
	section, ok := requireEntityByID(w, r, "now section", func(id int64) (model.NowSection, error) {
		return h.queries.GetNowSection(r.Context(), id)
	})
	if !ok {
		return
	}

	WriteSuccess(w, nowSectionToResponse(section), nil)
}

// CreateNowSection handles POST /api/v1/now/sections
// Requires content:write permission. The new section becomes active and
// all other sections are deactivated first. The deactivate and create
// steps are separate statements, so a concurrent create can briefly
// leave two active rows; reads resolve the newest one.
func (h *Handler) CreateNowSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateNowSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	if req.Content == "" {
		WriteValidationError(w, map[string]string{"content": "Content is required"})
		return
	}

	if err := h.queries.DeactivateNowSections(ctx); err != nil {
		WriteInternalError(w, "Failed to create now section")
		return
	}

	section, err := h.queries.CreateNowSection(ctx, store.CreateNowSectionParams{
		Content:           req.Content,
		CurrentProject:    util.NullStringFromPtr(req.CurrentProject),
		CurrentProjectURL: util.NullStringFromPtr(req.CurrentProjectURL),
		CurrentlyLearning: model.JoinTags(req.CurrentlyLearning),
		CurrentGoals:      model.JoinTags(req.CurrentGoals),
	})
	if err != nil {
		WriteInternalError(w, "Failed to create now section")
		return
	}

	if err := h.cache.InvalidateNowSection(ctx); err != nil {
		slog.Warn("failed to invalidate now section cache", "error", err)
	}

	WriteCreated(w, nowSectionToResponse(section))
}

// UpdateNowSection handles PUT /api/v1/now/sections/{id}
// Requires content:write permission. Activating a section deactivates
// every other one; the existence check always runs before any
// deactivation so an unknown id cannot disturb the active row.
func (h *Handler) UpdateNowSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "now section", func(id int64) (model.NowSection, error) {
		return h.queries.GetNowSection(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateNowSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateNowSectionParams{
		ID:                existing.ID,
		Content:           existing.Content,
		CurrentProject:    existing.CurrentProject,
		CurrentProjectURL: existing.CurrentProjectURL,
		CurrentlyLearning: existing.CurrentlyLearning,
		CurrentGoals:      existing.CurrentGoals,
		IsActive:          existing.IsActive,
	}

	if req.Content != nil {
		if *req.Content == "" {
			WriteValidationError(w, map[string]string{"content": "Content cannot be empty"})
			return
		}
		params.Content = *req.Content
	}
	if req.CurrentProject != nil {
		params.CurrentProject = util.NullStringFromValue(*req.CurrentProject)
	}
	if req.CurrentProjectURL != nil {
		params.CurrentProjectURL = util.NullStringFromValue(*req.CurrentProjectURL)
	}
	if req.CurrentlyLearning != nil {
		params.CurrentlyLearning = model.JoinTags(*req.CurrentlyLearning)
	}
	if req.CurrentGoals != nil {
		params.CurrentGoals = model.JoinTags(*req.CurrentGoals)
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	// Deactivate the others only when this section is becoming active.
	if params.IsActive && !existing.IsActive {
		if err := h.queries.DeactivateNowSectionsExcluding(ctx, existing.ID); err != nil {
			WriteInternalError(w, "Failed to update now section")
			return
		}
	}

	section, err := h.queries.UpdateNowSection(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update now section")
		return
	}

	if err := h.cache.InvalidateNowSection(ctx); err != nil {
		slog.Warn("failed to invalidate now section cache", "error", err)
	}

	WriteSuccess(w, nowSectionToResponse(section), nil)
}

// DeleteNowSection handles DELETE /api/v1/now/sections/{id}
// Now sections are soft-deleted; deleting the active section leaves no
// active one until another is created or activated. Requires
// content:write permission.
func (h *Handler) DeleteNowSection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	section, ok := requireEntityByID(w, r, "now section", func(id int64) (model.NowSection, error) {
		return h.queries.GetNowSection(ctx, id)
	})
	if !ok {
		return
	}

	if err := h.queries.SoftDeleteNowSection(ctx, section.ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to delete now section")
		return
	}

	if err := h.cache.InvalidateNowSection(ctx); err != nil {
		slog.Warn("failed to invalidate now section cache", "error", err)
	}

	WriteNoContent(w)
}
