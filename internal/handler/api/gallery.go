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

// GalleryImageResponse represents a gallery image in API responses.
type GalleryImageResponse struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	ImageURL      string     `json:"image_url"`
	ThumbnailURL  *string    `json:"thumbnail_url,omitempty"`
	AltText       string     `json:"alt_text"`
	Tags          []string   `json:"tags"`
	Position      int64      `json:"position"`
	Width         int64      `json:"width"`
	Height        int64      `json:"height"`
	FileSizeBytes int64      `json:"file_size_bytes"`
	IsVisible     bool       `json:"is_visible"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// CreateGalleryImageRequest represents the request body for creating an image.
type CreateGalleryImageRequest struct {
	Title         string   `json:"title"`
	Description   *string  `json:"description,omitempty"`
	ImageURL      string   `json:"image_url"`
	ThumbnailURL  *string  `json:"thumbnail_url,omitempty"`
	AltText       string   `json:"alt_text"`
	Tags          []string `json:"tags"`
	Position      int64    `json:"position"`
	Width         int64    `json:"width"`
	Height        int64    `json:"height"`
	FileSizeBytes int64    `json:"file_size_bytes"`
}

// UpdateGalleryImageRequest represents the request body for updating an image.
// Nil fields are left unchanged.
type UpdateGalleryImageRequest struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty"`
	ThumbnailURL  *string   `json:"thumbnail_url,omitempty"`
	AltText       *string   `json:"alt_text,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	Position      *int64    `json:"position,omitempty"`
	Width         *int64    `json:"width,omitempty"`
	Height        *int64    `json:"height,omitempty"`
	FileSizeBytes *int64    `json:"file_size_bytes,omitempty"`
	IsVisible     *bool     `json:"is_visible,omitempty"`
}

func galleryImageToResponse(img model.GalleryImage) GalleryImageResponse {
	return GalleryImageResponse{
		ID:            img.ID,
		Title:         img.Title,
		Description:   util.StringPtrFromNull(img.Description),
		ImageURL:      img.ImageURL,
		ThumbnailURL:  util.StringPtrFromNull(img.ThumbnailURL),
		AltText:       img.AltText,
		Tags:          model.SplitTags(img.Tags),
		Position:      img.Position,
		Width:         img.Width,
		Height:        img.Height,
		FileSizeBytes: img.FileSizeBytes,
		IsVisible:     img.IsVisible,
		CreatedAt:     img.CreatedAt,
		UpdatedAt:     util.TimePtrFromNull(img.UpdatedAt),
	}
}

// ListGalleryImages handles GET /api/v1/gallery
// Public: returns only visible images.
// With API key: returns all images, or only visible with ?visible=true.
func (h *Handler) ListGalleryImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := handler.ParsePageParam(r)
	perPage := handler.ParsePerPageParam(r, 50, 200)

	visibleOnly := r.URL.Query().Get("visible") == "true"
	if middleware.GetAPIKey(r) == nil {
		visibleOnly = true
	}

	params := store.ListGalleryImagesParams{
		VisibleOnly: visibleOnly,
		Tag:         r.URL.Query().Get("tag"),
		Limit:       int64(perPage),
		Offset:      int64((page - 1) * perPage),
	}

	images, err := h.queries.ListGalleryImages(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to list gallery images")
		return
	}
	total, err := h.queries.CountGalleryImages(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to list gallery images")
		return
	}

	responses := make([]GalleryImageResponse, 0, len(images))
	for _, img := range images {
		responses = append(responses, galleryImageToResponse(img))
	}

	WriteSuccess(w, responses, paginationMeta(total, page, perPage))
}

// GetGalleryImage handles GET /api/v1/gallery/{id}
// Public: returns only visible images.
func (h *Handler) GetGalleryImage(w http.ResponseWriter, r *http.Request) {
	img, ok := requireEntityByID(w, r, "gallery image", func(id int64) (model.GalleryImage, error) {
		return h.queries.GetGalleryImage(r.Context(), id)
	})
	if !ok {
		return
	}

	if !img.IsVisible && middleware.GetAPIKey(r) == nil {
		WriteNotFound(w, "Gallery image not found")
		return
	}

	WriteSuccess(w, galleryImageToResponse(img), nil)
}

// CreateGalleryImage handles POST /api/v1/gallery
// Requires content:write permission.
func (h *Handler) CreateGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req CreateGalleryImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.ImageURL == "" {
		fieldErrors["image_url"] = "Image URL is required"
	}
	if req.AltText == "" {
		fieldErrors["alt_text"] = "Alt text is required"
	}
	if req.Width < 0 || req.Height < 0 || req.FileSizeBytes < 0 {
		fieldErrors["dimensions"] = "Dimensions and file size must be non-negative"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	img, err := h.queries.CreateGalleryImage(r.Context(), store.CreateGalleryImageParams{
		Title:         req.Title,
		Description:   util.NullStringFromPtr(req.Description),
		ImageURL:      req.ImageURL,
		ThumbnailURL:  util.NullStringFromPtr(req.ThumbnailURL),
		AltText:       req.AltText,
		Tags:          model.JoinTags(req.Tags),
		Position:      req.Position,
		Width:         req.Width,
		Height:        req.Height,
		FileSizeBytes: req.FileSizeBytes,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create gallery image")
		return
	}

	WriteCreated(w, galleryImageToResponse(img))
}

// UpdateGalleryImage handles PUT /api/v1/gallery/{id}
// Requires content:write permission.
func (h *Handler) UpdateGalleryImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	existing, ok := requireEntityByID(w, r, "gallery image", func(id int64) (model.GalleryImage, error) {
		return h.queries.GetGalleryImage(ctx, id)
	})
	if !ok {
		return
	}

	var req UpdateGalleryImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	params := store.UpdateGalleryImageParams{
		ID:            existing.ID,
		Title:         existing.Title,
		Description:   existing.Description,
		ImageURL:      existing.ImageURL,
		ThumbnailURL:  existing.ThumbnailURL,
		AltText:       existing.AltText,
		Tags:          existing.Tags,
		Position:      existing.Position,
		Width:         existing.Width,
		Height:        existing.Height,
		FileSizeBytes: existing.FileSizeBytes,
		IsVisible:     existing.IsVisible,
	}

	if req.Title != nil {
		if *req.Title == "" {
			WriteValidationError(w, map[string]string{"title": "Title cannot be empty"})
			return
		}
		params.Title = *req.Title
	}
	if req.Description != nil {
		params.Description = util.NullStringFromValue(*req.Description)
	}
	if req.ImageURL != nil {
		params.ImageURL = *req.ImageURL
	}
	if req.ThumbnailURL != nil {
		params.ThumbnailURL = util.NullStringFromValue(*req.ThumbnailURL)
	}
	if req.AltText != nil {
		params.AltText = *req.AltText
	}
	if req.Tags != nil {
		params.Tags = model.JoinTags(*req.Tags)
	}
	if req.Position != nil {
		params.Position = *req.Position
	}
	if req.Width != nil {
		params.Width = *req.Width
	}
	if req.Height != nil {
		params.Height = *req.Height
	}
	if req.FileSizeBytes != nil {
		params.FileSizeBytes = *req.FileSizeBytes
	}
	if req.IsVisible != nil {
		params.IsVisible = *req.IsVisible
	}

	img, err := h.queries.UpdateGalleryImage(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update gallery image")
		return
	}

	WriteSuccess(w, galleryImageToResponse(img), nil)
}

// DeleteGalleryImage handles DELETE /api/v1/gallery/{id}
// Gallery images are soft-deleted; an update setting is_visible back to
// true restores them. Requires content:write permission.
func (h *Handler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	img, ok := requireEntityByID(w, r, "gallery image", func(id int64) (model.GalleryImage, error) {
		return h.queries.GetGalleryImage(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.SoftDeleteGalleryImage(r.Context(), img.ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to delete gallery image")
		return
	}

	WriteNoContent(w)
}
