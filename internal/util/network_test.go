// Copyright (c) 2024-2026 Will Pereira
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net"
	"net/http/httptest"
	"testing"
)

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"10.0.0.1", true},
		{"10.255.255.255", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"192.168.1.1", true},
		{"127.0.0.1", true},
		{"169.254.1.1", true},
		{"::1", true},
		{"fe80::1", true},
		{"fd00::1", true},
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"172.32.0.1", false},
		{"2001:4860:4860::8888", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			if ip == nil {
				t.Fatalf("failed to parse IP %q", tt.ip)
			}
			if got := IsPrivateIP(ip); got != tt.want {
				t.Errorf("IsPrivateIP(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}
}

func TestIsPrivateIP_Nil(t *testing.T) {
	// Nil IPs are treated as private so callers deny by default
	if !IsPrivateIP(nil) {
		t.Error("IsPrivateIP(nil) = false, want true")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name         string
		remoteAddr   string
		realIP       string
		forwardedFor string
		want         string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.5:54321",
			want:       "203.0.113.5",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "203.0.113.5",
			want:       "203.0.113.5",
		},
		{
			name:       "x-real-ip takes precedence",
			remoteAddr: "10.0.0.1:1234",
			realIP:     "198.51.100.7",
			want:       "198.51.100.7",
		},
		{
			name:         "x-forwarded-for first entry",
			remoteAddr:   "10.0.0.1:1234",
			forwardedFor: "198.51.100.7, 10.0.0.2",
			want:         "198.51.100.7",
		},
		{
			name:         "x-real-ip wins over x-forwarded-for",
			remoteAddr:   "10.0.0.1:1234",
			realIP:       "198.51.100.7",
			forwardedFor: "203.0.113.9",
			want:         "198.51.100.7",
		},
		{
			name:         "forwarded-for with whitespace",
			remoteAddr:   "10.0.0.1:1234",
			forwardedFor: "  198.51.100.7  ,10.0.0.2",
			want:         "198.51.100.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwardedFor != "" {
				r.Header.Set("X-Forwarded-For", tt.forwardedFor)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
