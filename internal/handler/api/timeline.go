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
	"github.com/wpdev/portfolio-go/internal/middleware"
	"github.com/wpdev/portfolio-go/internal/model"
	"github.com/wpdev/portfolio-go/internal/store"
	"github.com/wpdev/portfolio-go/internal/util"
)

// TimelineEventResponse represents a timeline event in API responses.
type TimelineEventResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	Type        string     `json:"type"`
	IconURL     *string    `json:"icon_url,omitempty"`
	LinkURL     *string    `json:"link_url,omitempty"`
	LinkText    *string    `json:"link_text,omitempty"`
	Position    int64      `json:"position"`
	IsVisible   bool       `json:"is_visible"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CreateTimelineEventRequest represents the request body for creating an event.
type CreateTimelineEventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	IconURL     *string `json:"icon_url,omitempty"`
	LinkURL     *string `json:"link_url,omitempty"`
	LinkText    *string `json:"link_text,omitempty"`
	Position    int64   `json:"position"`
}

// UpdateTimelineEventRequest represents the request body for updating an event.
// Nil fields are left unchanged.
type UpdateTimelineEventRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Date        *string `json:"date,omitempty"`
	Type        *string `json:"type,omitempty"`
	IconURL     *string `json:"icon_url,omitempty"`
	LinkURL     *string `json:"link_url,omitempty"`
	LinkText    *string `json:"link_text,omitempty"`
	Position    *int64  `json:"position,omitempty"`
	IsVisible   *bool   `json:"is_visible,omitempty"`
}

func timelineEventToResponse(e model.TimelineEvent) TimelineEventResponse {
	return TimelineEventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Type:        e.Type,
		IconURL:     util.StringPtrFromNull(e.IconURL),
		LinkURL:     util.StringPtrFromNull(e.LinkURL),
		LinkText:    util.StringPtrFromNull(e.LinkText),
		Position:    e.Position,
		IsVisible:   e.IsVisible,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   util.TimePtrFromNull(e.UpdatedAt),
	}
}

// parseEventDate accepts RFC3339 timestamps or bare dates (2006-01-02).
func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// ListTimelineEvents handles GET /api/v1/timeline
// Public: returns only visible events.
// With API key: returns all events, or only visible with ?visible=true.
func (h *Handler) ListTimelineEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := handler.ParsePageParam(r)
	perPage := handler.ParsePerPageParam(r, 50, 200)

	eventType := r.URL.Query().Get("type")
	if eventType != "" && !model.IsValidTimelineType(eventType) {
		WriteBadRequest(w, "Invalid timeline type", nil)
		return
	}

	visibleOnly := r.URL.Query().Get("visible") == "true"
	if middleware.GetAPIKey(r) == nil {
		visibleOnly = true
	}

	params := store.ListTimelineEventsParams{
		VisibleOnly: visibleOnly,
		Type:        eventType,
		Year:        int64(handler.ParseIntParam(r, "year", 0, 0, 0)),
		Limit:       int64(perPage),
		Offset:      int64((page - 1) * perPage),
	}

	events, err := h.queries.ListTimelineEvents(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to list timeline events")
		return
	}
	total, err := h.queries.CountTimelineEvents(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to list timeline events")
		return
	}

	responses := make([]TimelineEventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, timelineEventToResponse(e))
	}

	WriteSuccess(w, responses, paginationMeta(total, page, perPage))
}

// GetTimelineEvent handles GET /api/v1/timeline/{id}
// Public: returns only visible events.
func (h *Handler) GetTimelineEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := requireEntityByID(w, r, "timeline event", func(id int64) (model.TimelineEvent, error) {
		return h.queries.GetTimelineEvent(r.Context(), id)
	})
	if !ok {
		return
	}

	if !event.IsVisible && middleware.GetAPIKey(r) == nil {
		WriteNotFound(w, "Timeline event not found")
		return
	}

	WriteSuccess(w, timelineEventToResponse(event), nil)
}

// CreateTimelineEvent handles POST /api/v1/timeline
// Requires content:write permission.
func (h *Handler) CreateTimelineEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateTimelineEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Date == "" {
		fieldErrors["date"] = "Date is required"
	}
	if req.Type == "" {
		req.Type = model.TimelineTypeOther
	}
	if !model.IsValidTimelineType(req.Type) {
		fieldErrors["type"] = "Invalid timeline type"
	}

	var date time.Time
	if req.Date != "" {
		var err error
		date, err = parseEventDate(req.Date)
		if err != nil {
			fieldErrors["date"] = "Invalid date format. Use RFC3339 or YYYY-MM-DD"
		}
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	event, err := h.queries.CreateTimelineEvent(r.Context(), store.CreateTimelineEventParams{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Type:        req.Type,
		IconURL:     util.NullStringFromPtr(req.IconURL),
		LinkURL:     util.NullStringFromPtr(req.LinkURL),
		LinkText:    util.NullStringFromPtr(req.LinkText),
		Position:    req.Position,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create timeline event")
		return
	}

	WriteCreated(w, timelineEventToResponse(event))
}

// UpdateTimelineEvent handles PUT /api/v1/timeline/{id}
// Requires content:write permission.
func (h *Handler) UpdateTimelineEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "timeline event", func(id int64) (model.TimelineEvent, error) {
		return h.queries.GetTimelineEvent(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateTimelineEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateTimelineEventParams{
		ID:          existing.ID,
		Title:       existing.Title,
		Description: existing.Description,
		Date:        existing.Date,
		Type:        existing.Type,
		IconURL:     existing.IconURL,
		LinkURL:     existing.LinkURL,
		LinkText:    existing.LinkText,
		Position:    existing.Position,
		IsVisible:   existing.IsVisible,
	}

	if req.Title != nil {
		if *req.Title == "" {
			WriteValidationError(w, map[string]string{"title": "Title cannot be empty"})
			return
		}
		params.Title = *req.Title
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.Date != nil {
		date, err := parseEventDate(*req.Date)
		if err != nil {
			WriteValidationError(w, map[string]string{"date": "Invalid date format. Use RFC3339 or YYYY-MM-DD"})
			return
		}
		params.Date = date
	}
	if req.Type != nil {
		if !model.IsValidTimelineType(*req.Type) {
			WriteValidationError(w, map[string]string{"type": "Invalid timeline type"})
			return
		}
		params.Type = *req.Type
	}
	if req.IconURL != nil {
		params.IconURL = util.NullStringFromValue(*req.IconURL)
	}
	if req.LinkURL != nil {
		params.LinkURL = util.NullStringFromValue(*req.LinkURL)
	}
	if req.LinkText != nil {
		params.LinkText = util.NullStringFromValue(*req.LinkText)
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.IsVisible != nil {
		params.IsVisible = *req.IsVisible
	}

	event, err := h.queries.UpdateTimelineEvent(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update timeline event")
		return
	}

	WriteSuccess(w, timelineEventToResponse(event), nil)
}

// DeleteTimelineEvent handles DELETE /api/v1/timeline/{id}
// Timeline events are soft-deleted; an update setting is_visible back to
// true restores them. Requires content:write permission.
func (h *Handler) DeleteTimelineEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := requireEntityByID(w, r, "timeline event", func(id int64) (model.TimelineEvent, error) {
		return h.queries.GetTimelineEvent(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.SoftDeleteTimelineEvent(r.Context(), event.ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to delete timeline event")
		return
	}

	WriteNoContent(w)
}
