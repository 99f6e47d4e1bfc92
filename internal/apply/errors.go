// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apply

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrBotDetected is returned when the honeypot field was filled in.
	ErrBotDetected = errors.New("honeypot field is not empty")
	// ErrAlreadyApplied is returned when an application with the email exists.
	ErrAlreadyApplied = errors.New("applicant email already exists")
	// ErrRateLimited matches every *RateLimitError.
	ErrRateLimited = errors.New("application rate limit exceeded")
	// ErrSubmissionFailed wraps every other failure of a submission.
	ErrSubmissionFailed = errors.New("application submission failed")
)

// ValidationError carries the per-field messages of a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d invalid field(s)", len(e.Fields))
}

// RateLimitError is returned when the caller address used up its quota.
type RateLimitError struct {
	IP     string
	Window time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("too many applications from %s within %s", e.IP, e.Window)
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// User-facing banner texts.
const (
	MsgBotDetected      = "Invalid submission detected"
	MsgFixErrors        = "Please fix all validation errors before submitting"
	MsgAlreadyApplied   = "You have already applied with this email address."
	MsgSubmissionFailed = "Failed to submit application. Please try again."
)

// UserMessage converts a Submit error into the banner shown to the applicant.
func UserMessage(err error) string {
	var validationErr *ValidationError
	var rateErr *RateLimitError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBotDetected):
		return MsgBotDetected
	case errors.As(err, &validationErr):
		return MsgFixErrors
	case errors.As(err, &rateErr):
		return fmt.Sprintf("Too many applications from your location. Please try again in %s.", humanizeWindow(rateErr.Window))
	case errors.Is(err, ErrAlreadyApplied):
		return MsgAlreadyApplied
	default:
		return MsgSubmissionFailed
	}
}

// DuplicateWarning is the non-blocking notice shown while typing an email
// that already has an application.
func DuplicateWarning(appliedAt time.Time) string {
	return fmt.Sprintf("You've already applied on %s. Thank you for your interest!", appliedAt.Format("January 2, 2006"))
}

func humanizeWindow(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		if h := int(d / time.Hour); h != 1 {
			return fmt.Sprintf("%d hours", h)
		}
		return "1 hour"
	case d >= time.Minute && d%time.Minute == 0:
		if m := int(d / time.Minute); m != 1 {
			return fmt.Sprintf("%d minutes", m)
		}
		return "1 minute"
	default:
		return d.String()
	}
}
