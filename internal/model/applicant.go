// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// ApplicantStatus tracks an application through review.
type ApplicantStatus string

const (
	ApplicantNew         ApplicantStatus = "new"
	ApplicantReviewing   ApplicantStatus = "reviewing"
	ApplicantShortlisted ApplicantStatus = "shortlisted"
	ApplicantRejected    ApplicantStatus = "rejected"
	ApplicantHired       ApplicantStatus = "hired"
)

// ApplicantStatuses lists the statuses in review order.
var ApplicantStatuses = []ApplicantStatus{
	ApplicantNew,
	ApplicantReviewing,
	ApplicantShortlisted,
	ApplicantRejected,
	ApplicantHired,
}

// Valid reports whether s is a known status.
func (s ApplicantStatus) Valid() bool {
	for _, known := range ApplicantStatuses {
		if s == known {
			return true
		}
	}
	return false
}
