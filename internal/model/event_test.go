// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
)

func TestEventLevelConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"info level", EventLevelInfo, "info"},
		{"warning level", EventLevelWarning, "warning"},
		{"error level", EventLevelError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("constant = %q, want %q", tt.constant, tt.expected)
			}
		})
	}
}

func TestEventCategoryConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"project category", EventCategoryProject, "project"},
		{"blog category", EventCategoryBlog, "blog"},
		{"timeline category", EventCategoryTimeline, "timeline"},
		{"gallery category", EventCategoryGallery, "gallery"},
		{"contact category", EventCategoryContact, "contact"},
		{"now category", EventCategoryNow, "now"},
		{"auth category", EventCategoryAuth, "auth"},
		{"system category", EventCategorySystem, "system"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("constant = %q, want %q", tt.constant, tt.expected)
			}
		})
	}
}

func TestEventCategoriesUnique(t *testing.T) {
	categories := []string{
		EventCategoryProject,
		EventCategoryBlog,
		EventCategoryTimeline,
		EventCategoryGallery,
		EventCategoryContact,
		EventCategoryNow,
		EventCategoryAuth,
		EventCategorySystem,
	}

	seen := make(map[string]bool)
	for _, cat := range categories {
		if seen[cat] {
			t.Errorf("duplicate category: %q", cat)
		}
		seen[cat] = true
	}
}

func TestEventStruct(t *testing.T) {
	event := Event{
		ID:        1,
		Level:     EventLevelInfo,
		Category:  EventCategoryBlog,
		Message:   "Test message",
		Metadata:  `{"key": "value"}`,
		IpAddress: "203.0.113.5",
	}

	if event.ID != 1 {
		t.Errorf("ID = %d, want 1", event.ID)
	}
	if event.Level != "info" {
		t.Errorf("Level = %q, want %q", event.Level, "info")
	}
	if event.Category != "blog" {
		t.Errorf("Category = %q, want %q", event.Category, "blog")
	}
	if event.Message != "Test message" {
		t.Errorf("Message = %q, want %q", event.Message, "Test message")
	}
	if event.Metadata != `{"key": "value"}` {
		t.Errorf("Metadata = %q, want %q", event.Metadata, `{"key": "value"}`)
	}
}
