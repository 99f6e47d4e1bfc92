// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apply

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/lovelliph/Services/internal/model"
	"github.com/lovelliph/Services/internal/store"
	"github.com/lovelliph/Services/internal/util"
)

// ApplicantStore is the part of the query layer the flow needs.
type ApplicantStore interface {
	GetApplicantByEmail(ctx context.Context, email string) (store.Applicant, error)
	CreateApplicant(ctx context.Context, arg store.CreateApplicantParams) (store.Applicant, error)
}

// RateLimiter decides whether an address may submit another application.
type RateLimiter interface {
	Allow(ctx context.Context, ip string) (bool, error)
}

// IPResolver returns the public address recorded for a request.
type IPResolver interface {
	Resolve(ctx context.Context, requestIP string) (string, error)
}

// CountryLookup maps an address to an ISO country code ("" when unknown).
type CountryLookup interface {
	LookupCountry(ip string) string
}

// OutcomeRecorder counts submission outcomes.
type OutcomeRecorder interface {
	ApplicationOutcome(outcome string)
}

// Submission outcomes reported to the OutcomeRecorder.
const (
	OutcomeAccepted    = "accepted"
	OutcomeBot         = "bot"
	OutcomeInvalid     = "invalid"
	OutcomeDuplicate   = "duplicate"
	OutcomeRateLimited = "rate_limited"
	OutcomeFailed      = "failed"
)

// Config wires a Service.
type Config struct {
	Store     ApplicantStore
	Limiter   RateLimiter
	Resolver  IPResolver
	Countries CountryLookup   // optional
	Recorder  OutcomeRecorder // optional
	// Debounce is the server-side wait before a field check runs. The
	// page already debounces typing, so this only collapses overlapping
	// requests for the same field. Defaults to GuardDelay.
	Debounce time.Duration
	// Window is the rate limit period, used in the rejection message.
	Window time.Duration
	Logger *slog.Logger
	Now    func() time.Time
}

// Service runs field checks and submissions.
type Service struct {
	store     ApplicantStore
	limiter   RateLimiter
	resolver  IPResolver
	countries CountryLookup
	recorder  OutcomeRecorder
	debouncer *Debouncer
	window    time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a Service from cfg.
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = GuardDelay
	}
	return &Service{
		store:     cfg.Store,
		limiter:   cfg.Limiter,
		resolver:  cfg.Resolver,
		countries: cfg.Countries,
		recorder:  cfg.Recorder,
		debouncer: NewDebouncer(debounce),
		window:    cfg.Window,
		logger:    logger,
		now:       now,
	}
}

// GuardDelay is the default server wait for field checks.
const GuardDelay = 50 * time.Millisecond

// FieldResult is the outcome of a debounced field check.
type FieldResult struct {
	Field string `json:"field"`
	Error string `json:"error,omitempty"`
	// Warning is non-blocking text; Blocked disables submission.
	Warning    string `json:"warning,omitempty"`
	Blocked    bool   `json:"blocked"`
	Superseded bool   `json:"superseded"`
}

// CheckField validates one field after the guard delay. key identifies
// the visitor; a newer check of the same field by the same visitor
// supersedes this one. For a valid email the applicant store is consulted
// and an existing application produces a warning that blocks submission.
func (s *Service) CheckField(ctx context.Context, key, field, value string) FieldResult {
	if !s.debouncer.Wait(ctx, key+"|"+field) {
		return FieldResult{Field: field, Superseded: true}
	}

	res := FieldResult{Field: field, Error: ValidateField(field, value)}
	if field != FieldEmail || res.Error != "" {
		return res
	}

	existing, err := s.findExisting(ctx, NormalizeEmail(value))
	if err != nil {
		s.logger.Error("checking for existing application", "error", err)
		return res
	}
	if existing != nil {
		res.Warning = DuplicateWarning(existing.CreatedAt)
		res.Blocked = true
	}
	return res
}

// findExisting returns the application stored for email, or nil.
func (s *Service) findExisting(ctx context.Context, email string) (*store.Applicant, error) {
	a, err := s.store.GetApplicantByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Submission is one POST of the application form.
type Submission struct {
	Fields    Fields
	RequestIP string
	UserAgent string
}

// Submit validates and stores an application. Checks run in order:
// honeypot, field rules, existing email, caller address, rate limit, insert.
func (s *Service) Submit(ctx context.Context, sub Submission) (store.Applicant, error) {
	f := sub.Fields

	if strings.TrimSpace(f.Honeypot) != "" {
		s.logger.Info("honeypot triggered", "ip", sub.RequestIP)
		s.record(OutcomeBot)
		return store.Applicant{}, ErrBotDetected
	}

	if errs := Validate(f); len(errs) > 0 {
		s.record(OutcomeInvalid)
		return store.Applicant{}, &ValidationError{Fields: errs}
	}

	email := NormalizeEmail(f.Email)
	existing, err := s.findExisting(ctx, email)
	if err != nil {
		// the UNIQUE constraint still guards the insert
		s.logger.Error("checking for existing application", "error", err)
	} else if existing != nil {
		s.record(OutcomeDuplicate)
		return store.Applicant{}, ErrAlreadyApplied
	}

	ip, err := s.resolver.Resolve(ctx, sub.RequestIP)
	if err != nil {
		s.logger.Error("resolving caller address", "error", err, "request_ip", sub.RequestIP)
		s.record(OutcomeFailed)
		return store.Applicant{}, fmt.Errorf("%w: resolving caller address: %w", ErrSubmissionFailed, err)
	}

	allowed, err := s.limiter.Allow(ctx, ip)
	switch {
	case err != nil:
		s.logger.Error("rate limit check failed", "error", err, "ip", ip)
	case !allowed:
		s.logger.Warn("application rate limit exceeded", "ip", ip)
		s.record(OutcomeRateLimited)
		return store.Applicant{}, &RateLimitError{IP: ip, Window: s.window}
	}

	country := ""
	if s.countries != nil {
		country = s.countries.LookupCountry(ip)
	}

	applicant, err := s.store.CreateApplicant(ctx, store.CreateApplicantParams{
		Reference:       uuid.NewString(),
		Name:            strings.TrimSpace(f.Name),
		Email:           email,
		Phone:           strings.TrimSpace(f.Phone),
		PositionApplied: strings.TrimSpace(f.Position),
		ExperienceYears: util.ParseNullInt64(f.ExperienceYears),
		CompanyName:     strings.TrimSpace(f.Company),
		WebsiteUrl:      strings.TrimSpace(f.WebsiteURL),
		Message:         strings.TrimSpace(f.Message),
		IpAddress:       ip,
		Country:         country,
		UserAgent:       DescribeUserAgent(sub.UserAgent),
		Status:          string(model.ApplicantNew),
		CreatedAt:       s.now().UTC(),
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			s.record(OutcomeDuplicate)
			return store.Applicant{}, ErrAlreadyApplied
		}
		s.logger.Error("storing application", "error", err)
		s.record(OutcomeFailed)
		return store.Applicant{}, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	s.logger.Info("application received",
		"reference", applicant.Reference,
		"position", applicant.PositionApplied,
		"country", applicant.Country,
	)
	s.record(OutcomeAccepted)
	return applicant, nil
}

func (s *Service) record(outcome string) {
	if s.recorder != nil {
		s.recorder.ApplicationOutcome(outcome)
	}
}

// DescribeUserAgent reduces a User-Agent header to "Browser on OS (device)".
func DescribeUserAgent(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	ua := useragent.Parse(header)

	browser := ua.Name
	if browser == "" {
		browser = "Unknown"
	}
	os := ua.OS
	if os == "" {
		os = "Unknown"
	}

	device := "desktop"
	switch {
	case ua.Bot:
		device = "bot"
	case ua.Tablet:
		device = "tablet"
	case ua.Mobile:
		device = "mobile"
	}
	return fmt.Sprintf("%s on %s (%s)", browser, os, device)
}
