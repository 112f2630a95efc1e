// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain models and constants for the application.
package model

import (
	"database/sql"
	"time"
)

// BlogPost represents a blog article. Slugs are unique across all posts;
// deletion is physical (no soft-delete flag).
type BlogPost struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	Slug             string         `json:"slug"`
	Excerpt          string         `json:"excerpt"`
	Content          string         `json:"content"`
	FeaturedImageURL sql.NullString `json:"featured_image_url,omitempty"`
	Tags             string         `json:"tags"` // comma-joined list
	IsFeatured       bool           `json:"is_featured"`
	IsPublished      bool           `json:"is_published"`
	PublishedAt      sql.NullTime   `json:"published_at,omitempty"`
	ScheduledAt      sql.NullTime   `json:"scheduled_at,omitempty"`
	ReadTimeMinutes  int64          `json:"read_time_minutes"`
	ViewCount        int64          `json:"view_count"`
	AuthorID         sql.NullInt64  `json:"author_id,omitempty"` // reserved for future use
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        sql.NullTime   `json:"updated_at,omitempty"`
}

// IsDraft returns true if the post has not been published.
func (p *BlogPost) IsDraft() bool {
	return !p.IsPublished
}
