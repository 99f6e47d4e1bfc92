// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"LOVELLI_DB_PATH" envDefault:"./data/lovelli.db"`
	SessionSecret string `env:"LOVELLI_SESSION_SECRET,required"`
	ServerHost    string `env:"LOVELLI_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"LOVELLI_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"LOVELLI_ENV" envDefault:"development"`
	LogLevel      string `env:"LOVELLI_LOG_LEVEL" envDefault:"info"`
	BaseURL       string `env:"LOVELLI_BASE_URL" envDefault:"http://localhost:8080"`

	// Apply form
	ApplyRateLimitMax    int           `env:"LOVELLI_APPLY_RATE_LIMIT_MAX" envDefault:"3"`
	ApplyRateLimitWindow time.Duration `env:"LOVELLI_APPLY_RATE_LIMIT_WINDOW" envDefault:"24h"`
	ApplyDebounce        time.Duration `env:"LOVELLI_APPLY_DEBOUNCE" envDefault:"300ms"`
	ApplyRedirectDelay   time.Duration `env:"LOVELLI_APPLY_REDIRECT_DELAY" envDefault:"3s"`

	// Public IP lookup used when the request address is private. Empty disables it.
	IPLookupURL     string        `env:"LOVELLI_IP_LOOKUP_URL" envDefault:"https://api.ipify.org?format=json"`
	IPLookupTimeout time.Duration `env:"LOVELLI_IP_LOOKUP_TIMEOUT" envDefault:"5s"`

	// Optional Redis URL; when set the apply rate limit is kept in Redis
	RedisURL    string `env:"LOVELLI_REDIS_URL"`
	RedisPrefix string `env:"LOVELLI_REDIS_PREFIX" envDefault:"lovelli:"`

	// GeoIP configuration
	GeoIPDBPath string `env:"LOVELLI_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Security
	RequireHTTPS       bool     `env:"LOVELLI_REQUIRE_HTTPS" envDefault:"false"`
	TrustedProxies     []string `env:"LOVELLI_TRUSTED_PROXIES" envSeparator:","`
	CSRFTrustedOrigins []string `env:"LOVELLI_CSRF_TRUSTED_ORIGINS" envSeparator:","`

	MetricsEnabled bool `env:"LOVELLI_METRICS_ENABLED" envDefault:"true"`

	// Seeding configuration
	DoSeed        bool   `env:"LOVELLI_DO_SEED" envDefault:"false"` // Seed default services, projects and posts
	AdminEmail    string `env:"LOVELLI_ADMIN_EMAIL" envDefault:"admin@lovelli.com"`
	AdminPassword string `env:"LOVELLI_ADMIN_PASSWORD"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedis returns true if Redis is configured.
func (c Config) UseRedis() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("LOVELLI_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, errors.New("LOVELLI_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("LOVELLI_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.ApplyRateLimitMax <= 0 {
		return nil, fmt.Errorf("LOVELLI_APPLY_RATE_LIMIT_MAX must be positive, got %d", cfg.ApplyRateLimitMax)
	}
	if cfg.ApplyRateLimitWindow <= 0 {
		return nil, fmt.Errorf("LOVELLI_APPLY_RATE_LIMIT_WINDOW must be positive, got %s", cfg.ApplyRateLimitWindow)
	}
	if cfg.ApplyDebounce <= 0 {
		return nil, fmt.Errorf("LOVELLI_APPLY_DEBOUNCE must be positive, got %s", cfg.ApplyDebounce)
	}

	return cfg, nil
}

// StorageConfig is the subset of Config used by maintenance commands,
// which do not need a session secret.
type StorageConfig struct {
	DBPath   string `env:"LOVELLI_DB_PATH" envDefault:"./data/lovelli.db"`
	Env      string `env:"LOVELLI_ENV" envDefault:"development"`
	LogLevel string `env:"LOVELLI_LOG_LEVEL" envDefault:"info"`
}

// LoadStorage parses the storage settings only.
func LoadStorage() (*StorageConfig, error) {
	cfg := &StorageConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
