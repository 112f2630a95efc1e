// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// wordsPerMinute is the reading speed used for the read-time estimate.
const wordsPerMinute = 200

// htmlSanitizer provides a reusable HTML sanitization policy for rendered
// post content. It uses bluemonday's UGCPolicy which allows safe HTML tags
// while stripping potentially dangerous elements like <script>, event
// handlers, etc.
var htmlSanitizer = bluemonday.UGCPolicy()

// markdown is the shared goldmark renderer with GitHub Flavored Markdown
// extensions enabled.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// MarkdownService renders blog post markdown to sanitized HTML.
type MarkdownService struct{}

// NewMarkdownService creates a new MarkdownService.
func NewMarkdownService() *MarkdownService {
	return &MarkdownService{}
}

// Render converts markdown to sanitized HTML.
func (s *MarkdownService) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}

// EstimateReadTime returns the estimated reading time in minutes for the
// given markdown source. Always at least 1 minute for non-empty content.
func (s *MarkdownService) EstimateReadTime(source string) int64 {
	words := len(strings.Fields(source))
	if words == 0 {
		return 0
	}
	minutes := int64(words / wordsPerMinute)
	if words%wordsPerMinute != 0 {
		minutes++
	}
	return minutes
}
