// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"time"
)

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryProject  = "project"
	EventCategoryBlog     = "blog"
	EventCategoryTimeline = "timeline"
	EventCategoryGallery  = "gallery"
	EventCategoryContact  = "contact"
	EventCategoryNow      = "now"
	EventCategoryAuth     = "auth"
	EventCategorySystem   = "system"
)

// Event represents a system event log entry.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string // JSON string
	IpAddress string
	CreatedAt time.Time
}
