// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Contact message types
const (
	ContactTypeGeneral        = "general"
	ContactTypeJobOpportunity = "job_opportunity"
	ContactTypeFreelance      = "freelance"
	ContactTypePartnership    = "partnership"
	ContactTypeOther          = "other"
)

// Contact message statuses
const (
	ContactStatusNew       = "new"
	ContactStatusRead      = "read"
	ContactStatusResponded = "responded"
	ContactStatusArchived  = "archived"
	ContactStatusSpam      = "spam"
)

// ValidContactTypes returns all valid contact message types.
func ValidContactTypes() []string {
	return []string{
		ContactTypeGeneral,
		ContactTypeJobOpportunity,
		ContactTypeFreelance,
		ContactTypePartnership,
		ContactTypeOther,
	}
}

// IsValidContactType checks if a contact message type is valid.
func IsValidContactType(msgType string) bool {
	for _, t := range ValidContactTypes() {
		if t == msgType {
			return true
		}
	}
	return false
}

// ValidContactStatuses returns all valid contact message statuses.
func ValidContactStatuses() []string {
	return []string{
		ContactStatusNew,
		ContactStatusRead,
		ContactStatusResponded,
		ContactStatusArchived,
		ContactStatusSpam,
	}
}

// IsValidContactStatus checks if a contact message status is valid.
func IsValidContactStatus(status string) bool {
	for _, s := range ValidContactStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

// ContactMessage represents a message submitted through the contact form.
// Messages are never deleted; Archived and Spam statuses hide them instead.
type ContactMessage struct {
	ID              int64          `json:"id"`
	Reference       string         `json:"reference"` // public follow-up handle
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Subject         string         `json:"subject"`
	Message         string         `json:"message"`
	Type            string         `json:"type"`
	Status          string         `json:"status"`
	IpAddress       sql.NullString `json:"ip_address,omitempty"`
	UserAgent       sql.NullString `json:"user_agent,omitempty"`
	Country         sql.NullString `json:"country,omitempty"`
	ResponseMessage sql.NullString `json:"response_message,omitempty"`
	RespondedAt     sql.NullTime   `json:"responded_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       sql.NullTime   `json:"updated_at,omitempty"`
}

// IsResponded returns true if the message has been answered.
func (m *ContactMessage) IsResponded() bool {
	return m.RespondedAt.Valid
}
