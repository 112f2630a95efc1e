// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"strings"
	"testing"
)

func TestMarkdownRender(t *testing.T) {
	svc := NewMarkdownService()

	html, err := svc.Render("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(html, "<h1") {
		t.Errorf("expected <h1> in output: %s", html)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("expected <strong> in output: %s", html)
	}
}

func TestMarkdownRender_StripsScripts(t *testing.T) {
	svc := NewMarkdownService()

	html, err := svc.Render("hello <script>alert('xss')</script> world")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if strings.Contains(html, "<script") {
		t.Errorf("script tag should be stripped: %s", html)
	}
	if !strings.Contains(html, "hello") {
		t.Errorf("safe content should survive: %s", html)
	}
}

func TestMarkdownRender_GFMTable(t *testing.T) {
	svc := NewMarkdownService()

	html, err := svc.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(html, "<table") {
		t.Errorf("expected GFM table in output: %s", html)
	}
}

func TestEstimateReadTime(t *testing.T) {
	svc := NewMarkdownService()

	tests := []struct {
		name  string
		words int
		want  int64
	}{
		{"empty", 0, 0},
		{"short", 50, 1},
		{"exactly_one_minute", 200, 1},
		{"just_over", 201, 2},
		{"long", 1000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := strings.TrimSpace(strings.Repeat("word ", tt.words))
			if got := svc.EstimateReadTime(source); got != tt.want {
				t.Errorf("EstimateReadTime(%d words) = %d, want %d", tt.words, got, tt.want)
			}
		})
	}
}
