// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "strings"

// JoinTags converts a list of tag strings into the comma-joined storage form.
// Empty and whitespace-only entries are dropped; embedded commas are stripped
// so the stored form always splits back into the same list.
func JoinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(strings.ReplaceAll(tag, ",", " "))
		if tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	return strings.Join(cleaned, ",")
}

// SplitTags converts the comma-joined storage form back into a list.
// Returns an empty (non-nil) slice for an empty string so JSON encodes
// as [] rather than null.
func SplitTags(joined string) []string {
	tags := make([]string, 0)
	for _, tag := range strings.Split(joined, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// HasTag reports whether the comma-joined list contains the given tag,
// compared case-insensitively.
func HasTag(joined, tag string) bool {
	for _, t := range SplitTags(joined) {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
