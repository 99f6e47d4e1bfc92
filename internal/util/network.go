// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net"
	"net/http"
	"strings"
)

// privateIPBlocks contains CIDR ranges for private/reserved IP addresses.
var privateIPBlocks []*net.IPNet

func init() {
	cidrs := []string{
		"10.0.0.0/8",     // RFC 1918
		"172.16.0.0/12",  // RFC 1918
		"192.168.0.0/16", // RFC 1918
		"127.0.0.0/8",    // loopback
		"169.254.0.0/16", // link-local
		"0.0.0.0/8",
		"100.64.0.0/10", // CGNAT
		"::1/128",
		"fe80::/10",
		"fc00::/7",
		"::/128",
	}
	for _, cidr := range cidrs {
		_, block, err := net.ParseCIDR(cidr)
		if err == nil {
			privateIPBlocks = append(privateIPBlocks, block)
		}
	}
}

// IsPrivateIP reports whether ip is private, loopback or otherwise not
// routable on the public internet. A nil IP counts as private.
func IsPrivateIP(ip net.IP) bool {
	if ip == nil {
		return true
	}
	for _, block := range privateIPBlocks {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

// IsPublicAddress reports whether s parses as a public IP address.
func IsPublicAddress(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && !IsPrivateIP(ip)
}

// stripPort removes an optional :port suffix from a RemoteAddr value.
func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// ClientIP returns the caller address. Forwarding headers are only honoured
// when the direct peer is one of trustedProxies (or any peer when the list
// contains "*"). X-Forwarded-For contributes its first entry.
func ClientIP(r *http.Request, trustedProxies []string) string {
	peer := stripPort(r.RemoteAddr)
	if !isTrustedProxy(peer, trustedProxies) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(ip) != nil {
		return ip
	}
	return peer
}

func isTrustedProxy(peer string, trusted []string) bool {
	for _, t := range trusted {
		t = strings.TrimSpace(t)
		if t == "*" || t == peer {
			return true
		}
		if strings.Contains(t, "/") {
			if _, block, err := net.ParseCIDR(t); err == nil && block.Contains(net.ParseIP(peer)) {
				return true
			}
		}
	}
	return false
}
