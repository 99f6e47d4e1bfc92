// Copyright (c) 2025-2026 Oleg Ivanchenko
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
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"192.168.1.1", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"fd00::1", true},
		{"8.8.8.8", false},
		{"203.0.113.7", false},
		{"2001:4860:4860::8888", false},
	}
	for _, tt := range tests {
		if got := IsPrivateIP(net.ParseIP(tt.ip)); got != tt.want {
			t.Errorf("IsPrivateIP(%s) = %v, want %v", tt.ip, got, tt.want)
		}
	}
	if !IsPrivateIP(nil) {
		t.Error("nil IP should be treated as private")
	}
}

func TestIsPublicAddress(t *testing.T) {
	if IsPublicAddress("not-an-ip") {
		t.Error("garbage should not be public")
	}
	if IsPublicAddress("192.168.0.10") {
		t.Error("private address should not be public")
	}
	if !IsPublicAddress("1.1.1.1") {
		t.Error("1.1.1.1 should be public")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xRealIP    string
		trusted    []string
		want       string
	}{
		{"direct peer", "203.0.113.7:5000", "", "", nil, "203.0.113.7"},
		{"untrusted proxy ignores headers", "203.0.113.7:5000", "1.1.1.1", "", nil, "203.0.113.7"},
		{"trusted proxy uses first xff", "10.0.0.1:80", "1.1.1.1, 10.0.0.1", "", []string{"10.0.0.1"}, "1.1.1.1"},
		{"trusted cidr", "10.0.0.9:80", "8.8.8.8", "", []string{"10.0.0.0/8"}, "8.8.8.8"},
		{"x-real-ip fallback", "10.0.0.1:80", "", "9.9.9.9", []string{"*"}, "9.9.9.9"},
		{"invalid headers fall back to peer", "10.0.0.1:80", "garbage", "", []string{"*"}, "10.0.0.1"},
		{"no port", "203.0.113.8", "", "", nil, "203.0.113.8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				r.Header.Set("X-Real-IP", tt.xRealIP)
			}
			if got := ClientIP(r, tt.trusted); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
