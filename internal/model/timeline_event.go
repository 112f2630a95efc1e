// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Timeline event types
const (
	TimelineTypeEducation     = "education"
	TimelineTypeWork          = "work"
	TimelineTypeProject       = "project"
	TimelineTypeAchievement   = "achievement"
	TimelineTypeCertification = "certification"
	TimelineTypeOther         = "other"
)

// ValidTimelineTypes returns all valid timeline event types.
func ValidTimelineTypes() []string {
	return []string{
		TimelineTypeEducation,
		TimelineTypeWork,
		TimelineTypeProject,
		TimelineTypeAchievement,
		TimelineTypeCertification,
		TimelineTypeOther,
	}
}

// IsValidTimelineType checks if a timeline event type is valid.
func IsValidTimelineType(eventType string) bool {
	for _, t := range ValidTimelineTypes() {
		if t == eventType {
			return true
		}
	}
	return false
}

// TimelineEvent represents an entry on the career/education timeline.
type TimelineEvent struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        time.Time      `json:"date"`
	Type        string         `json:"type"`
	IconURL     sql.NullString `json:"icon_url,omitempty"`
	LinkURL     sql.NullString `json:"link_url,omitempty"`
	LinkText    sql.NullString `json:"link_text,omitempty"`
	Position    int64          `json:"position"`
	IsVisible   bool           `json:"is_visible"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   sql.NullTime   `json:"updated_at,omitempty"`
}
