// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/lovelliph/Services/internal/store"
)

const (
	// ScheduleResetTokenPurge runs at the top of every hour.
	ScheduleResetTokenPurge = "0 * * * *"
	// ScheduleGeoIPReload runs daily at 04:00.
	ScheduleGeoIPReload = "0 4 * * *"
)

// Reloader reopens a file-backed resource such as the GeoIP database.
type Reloader interface {
	Reload() error
}

// PurgeResetTokens deletes expired and used password reset tokens.
func PurgeResetTokens(db *sql.DB, logger *slog.Logger, now func() time.Time) JobFunc {
	queries := store.New(db)
	return func(ctx context.Context) error {
		n, err := queries.DeleteExpiredPasswordResetTokens(ctx, now().UTC())
		if err != nil {
			return fmt.Errorf("purging reset tokens: %w", err)
		}
		if n > 0 {
			logger.Info("purged password reset tokens", "count", n)
		}
		return nil
	}
}

// ReloadGeoIP picks up a refreshed country database.
func ReloadGeoIP(r Reloader) JobFunc {
	return func(context.Context) error {
		return r.Reload()
	}
}

// RegisterDefaults adds the maintenance jobs. geo may be nil.
func RegisterDefaults(s *Scheduler, db *sql.DB, geo Reloader) error {
	if err := s.Add("reset_token_purge", "Delete expired password reset tokens",
		ScheduleResetTokenPurge, PurgeResetTokens(db, s.logger, time.Now)); err != nil {
		return err
	}
	if geo != nil {
		if err := s.Add("geoip_reload", "Reload the GeoIP country database",
			ScheduleGeoIPReload, ReloadGeoIP(geo)); err != nil {
			return err
		}
	}
	return nil
}
