// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Project statuses
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusArchived   = "archived"
)

// Card rarities for the trading-card presentation of projects
const (
	CardRarityCommon    = "common"
	CardRarityRare      = "rare"
	CardRaritySuperRare = "super_rare"
	CardRarityUltraRare = "ultra_rare"
	CardRaritySecret    = "secret"
)

// ValidProjectStatuses returns all valid project statuses.
func ValidProjectStatuses() []string {
	return []string{
		ProjectStatusPlanning,
		ProjectStatusInProgress,
		ProjectStatusCompleted,
		ProjectStatusArchived,
	}
}

// IsValidProjectStatus checks if a status value is valid.
func IsValidProjectStatus(status string) bool {
	for _, s := range ValidProjectStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// ValidCardRarities returns all valid card rarities.
func ValidCardRarities() []string {
	return []string{
		CardRarityCommon,
		CardRarityRare,
		CardRaritySuperRare,
		CardRarityUltraRare,
		CardRaritySecret,
	}
}

// IsValidCardRarity checks if a rarity value is valid.
func IsValidCardRarity(rarity string) bool {
	for _, r := range ValidCardRarities() {
		if r == rarity {
			return true
		}
	}
	return false
}

// Project represents a portfolio project.
type Project struct {
	ID               int64          `json:"id"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	ShortDescription sql.NullString `json:"short_description,omitempty"`
	ImageURL         string         `json:"image_url"`
	DemoURL          sql.NullString `json:"demo_url,omitempty"`
	RepositoryURL    sql.NullString `json:"repository_url,omitempty"`
	Technologies     string         `json:"technologies"` // comma-joined list
	Year             int64          `json:"year"`
	IsFeatured       bool           `json:"is_featured"`
	Status           string         `json:"status"`
	Rarity           string         `json:"rarity"`
	AttackPoints     int64          `json:"attack_points"`
	DefensePoints    int64          `json:"defense_points"`
	FlavorText       sql.NullString `json:"flavor_text,omitempty"`
	IsActive         bool           `json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        sql.NullTime   `json:"updated_at,omitempty"`
}
