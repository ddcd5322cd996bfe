// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package models

import "time"

// OutcomeRecord is a historical hiring-funnel outcome for one
// (profile, job) pair. Immutable once captured; the training pipeline is
// its only consumer.
type OutcomeRecord struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id" validate:"required"`
	JobID     string `json:"job_id" validate:"required"`

	Applied     bool `json:"applied"`
	Interviewed bool `json:"interviewed"`
	Hired       bool `json:"hired"`

	// Feedback is optional free-text feedback captured with the outcome.
	Feedback string `json:"feedback,omitempty"`

	// Synthetic marks records generated by training-data augmentation.
	// Synthetic records supplement real ones and are never persisted.
	Synthetic bool `json:"synthetic,omitempty"`

	RecordedAt time.Time `json:"recorded_at"`
}

// EngagementScore derives the scalar training label from the funnel stage
// reached: hired > interviewed > applied > nothing.
func (r *OutcomeRecord) EngagementScore() float64 {
	switch {
	case r.Hired:
		return 1.0
	case r.Interviewed:
		return 0.8
	case r.Applied:
		return 0.6
	default:
		return 0.0
	}
}
