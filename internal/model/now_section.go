// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// NowSection represents the "what I'm doing now" block shown on the site.
// At most one section is active at any time; the store enforces this by
// deactivating all other rows before an activating write.
type NowSection struct {
	ID                int64          `json:"id"`
	Content           string         `json:"content"`
	CurrentProject    sql.NullString `json:"current_project,omitempty"`
	CurrentProjectURL sql.NullString `json:"current_project_url,omitempty"`
	CurrentlyLearning string         `json:"currently_learning"` // comma-joined list
	CurrentGoals      string         `json:"current_goals"`      // comma-joined list
	IsActive          bool           `json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}
