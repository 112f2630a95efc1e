// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// GalleryImage represents an image in the public gallery.
// Images are never removed physically; hiding is done via IsVisible.
type GalleryImage struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Description   sql.NullString `json:"description,omitempty"`
	ImageURL      string         `json:"image_url"`
	ThumbnailURL  sql.NullString `json:"thumbnail_url,omitempty"`
	AltText       string         `json:"alt_text"`
	Tags          string         `json:"tags"` // comma-joined list
	Position      int64          `json:"position"`
	IsVisible     bool           `json:"is_visible"`
	Width         int64          `json:"width"`
	Height        int64          `json:"height"`
	FileSizeBytes int64          `json:"file_size_bytes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     sql.NullTime   `json:"updated_at,omitempty"`
}
