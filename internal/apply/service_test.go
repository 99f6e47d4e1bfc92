// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apply

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lovelliph/Services/internal/store"
)

type fakeStore struct {
	mu        sync.Mutex
	byEmail   map[string]store.Applicant
	lookupErr error
	insertErr error
	inserted  []store.CreateApplicantParams
}

func newFakeStore() *fakeStore {
	return &fakeStore{byEmail: make(map[string]store.Applicant)}
}

func (f *fakeStore) GetApplicantByEmail(_ context.Context, email string) (store.Applicant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return store.Applicant{}, f.lookupErr
	}
	a, ok := f.byEmail[email]
	if !ok {
		return store.Applicant{}, sql.ErrNoRows
	}
	return a, nil
}

func (f *fakeStore) CreateApplicant(_ context.Context, arg store.CreateApplicantParams) (store.Applicant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted = append(f.inserted, arg)
	if f.insertErr != nil {
		return store.Applicant{}, f.insertErr
	}
	a := store.Applicant{
		ID:              int64(len(f.inserted)),
		Reference:       arg.Reference,
		Name:            arg.Name,
		Email:           arg.Email,
		PositionApplied: arg.PositionApplied,
		IpAddress:       arg.IpAddress,
		Country:         arg.Country,
		Status:          arg.Status,
		CreatedAt:       arg.CreatedAt,
	}
	f.byEmail[arg.Email] = a
	return a, nil
}

type fakeLimiter struct {
	allowed bool
	err     error
	calls   []string
}

func (f *fakeLimiter) Allow(_ context.Context, ip string) (bool, error) {
	f.calls = append(f.calls, ip)
	return f.allowed, f.err
}

type fakeResolver struct {
	ip  string
	err error
}

func (f fakeResolver) Resolve(_ context.Context, requestIP string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.ip != "" {
		return f.ip, nil
	}
	return requestIP, nil
}

type fakeCountries map[string]string

func (f fakeCountries) LookupCountry(ip string) string { return f[ip] }

type outcomes []string

func (o *outcomes) ApplicationOutcome(outcome string) { *o = append(*o, outcome) }

type harness struct {
	svc      *Service
	store    *fakeStore
	limiter  *fakeLimiter
	outcomes *outcomes
}

func newHarness(t *testing.T, resolver IPResolver) *harness {
	t.Helper()
	if resolver == nil {
		resolver = fakeResolver{}
	}
	h := &harness{
		store:    newFakeStore(),
		limiter:  &fakeLimiter{allowed: true},
		outcomes: &outcomes{},
	}
	h.svc = NewService(Config{
		Store:     h.store,
		Limiter:   h.limiter,
		Resolver:  resolver,
		Countries: fakeCountries{"203.0.113.7": "PH"},
		Recorder:  h.outcomes,
		Debounce:  5 * time.Millisecond,
		Window:    24 * time.Hour,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:       func() time.Time { return time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC) },
	})
	return h
}

func submission(f Fields) Submission {
	return Submission{
		Fields:    f,
		RequestIP: "203.0.113.7",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
}

func TestSubmit_Success(t *testing.T) {
	h := newHarness(t, nil)
	f := validFields()
	f.Email = "  Maria@Example.com "
	f.ExperienceYears = "0"

	a, err := h.svc.Submit(context.Background(), submission(f))
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", a.Email)
	assert.Equal(t, "new", a.Status)
	assert.Equal(t, "PH", a.Country)
	assert.NotEmpty(t, a.Reference)

	require.Len(t, h.store.inserted, 1)
	in := h.store.inserted[0]
	assert.Equal(t, "203.0.113.7", in.IpAddress)
	assert.True(t, in.ExperienceYears.Valid)
	assert.Equal(t, int64(0), in.ExperienceYears.Int64)
	assert.Contains(t, in.UserAgent, "Chrome")
	assert.Equal(t, []string{"203.0.113.7"}, h.limiter.calls)
	assert.Equal(t, outcomes{OutcomeAccepted}, *h.outcomes)
}

func TestSubmit_HoneypotRejectsEvenValidForm(t *testing.T) {
	h := newHarness(t, nil)
	f := validFields()
	f.Honeypot = "http://spam.example"

	_, err := h.svc.Submit(context.Background(), submission(f))
	require.ErrorIs(t, err, ErrBotDetected)
	assert.Equal(t, MsgBotDetected, UserMessage(err))
	assert.Empty(t, h.store.inserted)
	assert.Empty(t, h.limiter.calls)
}

func TestSubmit_HoneypotWinsOverValidation(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.svc.Submit(context.Background(), submission(Fields{Honeypot: "x"}))
	assert.ErrorIs(t, err, ErrBotDetected)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	h := newHarness(t, nil)
	f := validFields()
	f.Message = "short"

	_, err := h.svc.Submit(context.Background(), submission(f))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Message must be at least 50 characters (5/50)", verr.Fields[FieldMessage])
	assert.Equal(t, MsgFixErrors, UserMessage(err))
	assert.Empty(t, h.store.inserted)
}

func TestSubmit_ExistingEmailBlocked(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.svc.Submit(context.Background(), submission(validFields()))
	require.NoError(t, err)

	f := validFields()
	f.Email = "MARIA@example.com"
	_, err = h.svc.Submit(context.Background(), submission(f))
	require.ErrorIs(t, err, ErrAlreadyApplied)
	assert.Equal(t, MsgAlreadyApplied, UserMessage(err))
	assert.Len(t, h.store.inserted, 1)
	assert.Len(t, h.limiter.calls, 1, "duplicate must be rejected before the rate limit check")
}

func TestSubmit_UniqueViolationOnInsert(t *testing.T) {
	h := newHarness(t, nil)
	h.store.insertErr = errors.New("constraint failed: UNIQUE constraint failed: applicants.email (2067)")

	_, err := h.svc.Submit(context.Background(), submission(validFields()))
	require.ErrorIs(t, err, ErrAlreadyApplied)
	assert.Equal(t, outcomes{OutcomeDuplicate}, *h.outcomes)
}

func TestSubmit_RateLimited(t *testing.T) {
	h := newHarness(t, nil)
	h.limiter.allowed = false

	_, err := h.svc.Submit(context.Background(), submission(validFields()))
	var rerr *RateLimitError
	require.ErrorAs(t, err, &rerr)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, "Too many applications from your location. Please try again in 24 hours.", UserMessage(err))
	assert.Empty(t, h.store.inserted)
}

func TestSubmit_RateLimitCheckFailureProceeds(t *testing.T) {
	h := newHarness(t, nil)
	h.limiter.allowed = false
	h.limiter.err = errors.New("redis down")

	_, err := h.svc.Submit(context.Background(), submission(validFields()))
	require.NoError(t, err)
	assert.Len(t, h.store.inserted, 1)
}

func TestSubmit_ResolverFailure(t *testing.T) {
	h := newHarness(t, fakeResolver{err: errors.New("lookup timed out")})

	_, err := h.svc.Submit(context.Background(), submission(validFields()))
	require.ErrorIs(t, err, ErrSubmissionFailed)
	assert.Equal(t, MsgSubmissionFailed, UserMessage(err))
	assert.Empty(t, h.store.inserted)
	assert.Empty(t, h.limiter.calls)
}

func TestSubmit_ResolvedAddressIsRateLimitKey(t *testing.T) {
	h := newHarness(t, fakeResolver{ip: "198.51.100.20"})

	a, err := h.svc.Submit(context.Background(), submission(validFields()))
	require.NoError(t, err)
	assert.Equal(t, "198.51.100.20", a.IpAddress)
	assert.Equal(t, []string{"198.51.100.20"}, h.limiter.calls)
}

func TestSubmit_LookupFailureStillInserts(t *testing.T) {
	h := newHarness(t, nil)
	h.store.lookupErr = errors.New("database is locked")

	_, err := h.svc.Submit(context.Background(), submission(validFields()))
	require.NoError(t, err)
}

func TestSubmit_GenericInsertFailure(t *testing.T) {
	h := newHarness(t, nil)
	h.store.insertErr = errors.New("disk full")

	_, err := h.svc.Submit(context.Background(), submission(validFields()))
	require.ErrorIs(t, err, ErrSubmissionFailed)
	assert.Equal(t, outcomes{OutcomeFailed}, *h.outcomes)
}

func TestCheckField(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	res := h.svc.CheckField(ctx, "visitor", FieldMessage, "too short")
	assert.Equal(t, "Message must be at least 50 characters (9/50)", res.Error)
	assert.False(t, res.Blocked)

	res = h.svc.CheckField(ctx, "visitor", FieldEmail, "maria@example")
	assert.Equal(t, "Please enter a valid email address", res.Error)

	res = h.svc.CheckField(ctx, "visitor", FieldEmail, "maria@example.com")
	assert.Empty(t, res.Error)
	assert.Empty(t, res.Warning)
	assert.False(t, res.Blocked)

	h.store.byEmail["maria@example.com"] = store.Applicant{
		Email:     "maria@example.com",
		CreatedAt: time.Date(2025, 1, 5, 14, 0, 0, 0, time.UTC),
	}
	res = h.svc.CheckField(ctx, "visitor", FieldEmail, " Maria@example.com")
	assert.Empty(t, res.Error)
	assert.Equal(t, "You've already applied on January 5, 2025. Thank you for your interest!", res.Warning)
	assert.True(t, res.Blocked)
}

func TestCheckField_LookupFailureIsNotBlocking(t *testing.T) {
	h := newHarness(t, nil)
	h.store.lookupErr = errors.New("boom")

	res := h.svc.CheckField(context.Background(), "visitor", FieldEmail, "maria@example.com")
	assert.Empty(t, res.Error)
	assert.False(t, res.Blocked)
}

func TestCheckField_Superseded(t *testing.T) {
	h := newHarness(t, nil)
	h.svc.debouncer = NewDebouncer(100 * time.Millisecond)

	first := make(chan FieldResult, 1)
	go func() { first <- h.svc.CheckField(context.Background(), "visitor", FieldName, "M") }()

	deadline := time.Now().Add(time.Second)
	for h.svc.debouncer.Pending() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	latest := h.svc.CheckField(context.Background(), "visitor", FieldName, "Maria")
	assert.False(t, latest.Superseded)
	assert.Empty(t, latest.Error)

	old := <-first
	assert.True(t, old.Superseded)
	assert.Empty(t, old.Error)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, MsgSubmissionFailed, UserMessage(errors.New("anything")))
	assert.Equal(t, "Too many applications from your location. Please try again in 30 minutes.",
		UserMessage(&RateLimitError{Window: 30 * time.Minute}))
	assert.Equal(t, "Too many applications from your location. Please try again in 1 hour.",
		UserMessage(&RateLimitError{Window: time.Hour}))
}

func TestDescribeUserAgent(t *testing.T) {
	assert.Equal(t, "", DescribeUserAgent(""))
	got := DescribeUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	assert.Contains(t, got, "Safari")
	assert.Contains(t, got, "(mobile)")
}

func TestNewService_GuardDelayDefault(t *testing.T) {
	svc := NewService(Config{})
	assert.Equal(t, GuardDelay, svc.debouncer.delay)
	assert.Less(t, GuardDelay, 100*time.Millisecond, "the page owns the user-facing debounce")

	svc = NewService(Config{Debounce: 5 * time.Millisecond})
	assert.Equal(t, 5*time.Millisecond, svc.debouncer.delay)
}
