// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig holds configuration for CSRF protection. The gorilla
// compatible filippo.io/csrf checks Fetch metadata and Origin headers, so
// there is no token cookie to configure.
type CSRFConfig struct {
	// AuthKey is the 32-byte session secret.
	AuthKey []byte
	// TrustedOrigins are host[:port] values allowed to post cross-origin.
	TrustedOrigins []string
	// Pages renders the rejection page. Plain text is used when nil.
	Pages PageWriter
}

// NewCSRFConfig trusts the configured origins, plus the local dev server
// in development.
func NewCSRFConfig(authKey []byte, trustedOrigins []string, isDev bool, pages PageWriter) CSRFConfig {
	cfg := CSRFConfig{
		AuthKey:        authKey,
		TrustedOrigins: append([]string(nil), trustedOrigins...),
		Pages:          pages,
	}
	if isDev {
		cfg.TrustedOrigins = append(cfg.TrustedOrigins, "localhost:8080", "127.0.0.1:8080")
	}
	return cfg
}

// CSRF returns a middleware that rejects cross-site state-changing requests.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	opts := []csrf.Option{
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			csrfFailed(w, r, cfg.Pages)
		})),
	}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}
	return csrf.Protect(cfg.AuthKey, opts...)
}

func csrfFailed(w http.ResponseWriter, r *http.Request, pages PageWriter) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.WarnContext(r.Context(), "CSRF validation failed",
		"reason", reason,
		"method", r.Method,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	if pages == nil {
		http.Error(w, "Forbidden - CSRF validation failed", http.StatusForbidden)
		return
	}
	pages.StatusPage(w, r, http.StatusForbidden, TitleCSRFFailed, MsgCSRFFailed)
}
