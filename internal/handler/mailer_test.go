// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLogMailer_SendPasswordReset(t *testing.T) {
	const link = "https://lovelli.test/admin/reset-password?token=s3cr3t-token"

	tests := []struct {
		name     string
		dev      bool
		wantLink bool
	}{
		{"production hides token", false, false},
		{"development shows link", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			m := LogMailer{Logger: slog.New(slog.NewTextHandler(&buf, nil)), Dev: tt.dev}

			if err := m.SendPasswordReset(context.Background(), "ada@lovelli.com", "Ada", link); err != nil {
				t.Fatalf("SendPasswordReset() error: %v", err)
			}

			out := buf.String()
			if !strings.Contains(out, "ada@lovelli.com") {
				t.Errorf("log should name the recipient: %s", out)
			}
			if got := strings.Contains(out, "s3cr3t-token"); got != tt.wantLink {
				t.Errorf("token in log = %v, want %v: %s", got, tt.wantLink, out)
			}
		})
	}
}
