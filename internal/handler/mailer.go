// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
)

// Mailer delivers password reset links.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, link string) error
}

// LogMailer writes reset links to the log instead of sending mail. It is
// the only delivery available until an SMTP relay is configured.
type LogMailer struct {
	Logger *slog.Logger
	// Dev logs the link itself. Elsewhere the live token stays out of logs.
	Dev bool
}

// SendPasswordReset logs the reset request at info level.
func (m LogMailer) SendPasswordReset(ctx context.Context, to, name, link string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if !m.Dev {
		logger.InfoContext(ctx, "password reset requested", "to", to, "name", name)
		return nil
	}
	logger.InfoContext(ctx, "password reset requested", "to", to, "name", name, "link", link)
	return nil
}
