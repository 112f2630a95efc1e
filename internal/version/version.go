// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string // Short git commit hash (e.g., "abc1234")
	BuildTime string // Build timestamp in RFC3339 format
}

var current = Info{Version: "dev"}

// Set records build information for later retrieval. Called once from main.
func Set(info Info) {
	current = info
}

// Current returns the recorded build information.
func Current() Info {
	return current
}

// Version returns the semantic version string.
func Version() string {
	return current.Version
}
