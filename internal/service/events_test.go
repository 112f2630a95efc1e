// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/wpdev/portfolio-go/internal/model"
)

func setupEventTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Create events table (matches schema in migrations)
	_, err = db.Exec(`
		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL DEFAULT 'info',
			category TEXT NOT NULL DEFAULT 'system',
			message TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			ip_address TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		t.Fatalf("failed to create events table: %v", err)
	}

	return db
}

func TestNewEventService(t *testing.T) {
	db := setupEventTestDB(t)
	defer func() { _ = db.Close() }()

	svc := NewEventService(db)
	if svc == nil {
		t.Error("NewEventService returned nil")
	}
}

func TestLogEvent(t *testing.T) {
	db := setupEventTestDB(t)
	defer func() { _ = db.Close() }()

	svc := NewEventService(db)
	ctx := context.Background()

	err := svc.LogEvent(ctx, model.EventLevelInfo, model.EventCategoryContact, "Test message", "192.168.1.100", map[string]any{
		"key": "value",
	})
	if err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	var (
		count    int
		level    string
		category string
		message  string
		metadata string
		ip       string
	)
	err = db.QueryRow("SELECT COUNT(*) FROM events").Scan(&count)
	if err != nil {
		t.Fatalf("failed to count events: %v", err)
	}
	if count != 1 {
		t.Errorf("event count = %d, want 1", count)
	}

	err = db.QueryRow("SELECT level, category, message, metadata, ip_address FROM events").
		Scan(&level, &category, &message, &metadata, &ip)
	if err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if level != model.EventLevelInfo {
		t.Errorf("level = %q, want %q", level, model.EventLevelInfo)
	}
	if category != model.EventCategoryContact {
		t.Errorf("category = %q, want %q", category, model.EventCategoryContact)
	}
	if message != "Test message" {
		t.Errorf("message = %q, want %q", message, "Test message")
	}
	if !strings.Contains(metadata, `"key":"value"`) {
		t.Errorf("metadata = %q, want it to contain key/value", metadata)
	}
	if ip != "192.168.1.100" {
		t.Errorf("ip_address = %q, want %q", ip, "192.168.1.100")
	}
}

func TestLogEvent_NilMetadata(t *testing.T) {
	db := setupEventTestDB(t)
	defer func() { _ = db.Close() }()

	svc := NewEventService(db)
	ctx := context.Background()

	err := svc.LogEvent(ctx, model.EventLevelWarning, model.EventCategorySystem, "No metadata", "", nil)
	if err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	var metadata string
	err = db.QueryRow("SELECT metadata FROM events").Scan(&metadata)
	if err != nil {
		t.Fatalf("failed to read event: %v", err)
	}
	if metadata != "{}" {
		t.Errorf("metadata = %q, want %q", metadata, "{}")
	}
}

func TestLogLevelHelpers(t *testing.T) {
	db := setupEventTestDB(t)
	defer func() { _ = db.Close() }()

	svc := NewEventService(db)
	ctx := context.Background()

	if err := svc.LogInfo(ctx, model.EventCategorySystem, "info msg", "", nil); err != nil {
		t.Fatalf("LogInfo failed: %v", err)
	}
	if err := svc.LogWarning(ctx, model.EventCategorySystem, "warn msg", "", nil); err != nil {
		t.Fatalf("LogWarning failed: %v", err)
	}
	if err := svc.LogError(ctx, model.EventCategorySystem, "error msg", "", nil); err != nil {
		t.Fatalf("LogError failed: %v", err)
	}

	rows, err := db.Query("SELECT level FROM events ORDER BY id")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	want := []string{model.EventLevelInfo, model.EventLevelWarning, model.EventLevelError}
	i := 0
	for rows.Next() {
		var level string
		if err := rows.Scan(&level); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if level != want[i] {
			t.Errorf("event %d: level = %q, want %q", i, level, want[i])
		}
		i++
	}
	if i != len(want) {
		t.Errorf("got %d events, want %d", i, len(want))
	}
}

func TestCategoryHelpers(t *testing.T) {
	db := setupEventTestDB(t)
	defer func() { _ = db.Close() }()

	svc := NewEventService(db)
	ctx := context.Background()

	if err := svc.LogAuthEvent(ctx, model.EventLevelWarning, "bad key", "10.0.0.1", nil); err != nil {
		t.Fatalf("LogAuthEvent failed: %v", err)
	}
	if err := svc.LogContactEvent(ctx, model.EventLevelInfo, "new message", "10.0.0.2", nil); err != nil {
		t.Fatalf("LogContactEvent failed: %v", err)
	}
	if err := svc.LogBlogEvent(ctx, model.EventLevelInfo, "post published", "", nil); err != nil {
		t.Fatalf("LogBlogEvent failed: %v", err)
	}

	rows, err := db.Query("SELECT category FROM events ORDER BY id")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	want := []string{model.EventCategoryAuth, model.EventCategoryContact, model.EventCategoryBlog}
	i := 0
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if category != want[i] {
			t.Errorf("event %d: category = %q, want %q", i, category, want[i])
		}
		i++
	}
	if i != len(want) {
		t.Errorf("got %d events, want %d", i, len(want))
	}
}
