// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package models

import "time"

// ConfidenceTier buckets an overall score into a coarse confidence band.
type ConfidenceTier string

const (
	// ConfidenceHigh is assigned when the overall score exceeds 0.8.
	ConfidenceHigh ConfidenceTier = "high"
	// ConfidenceMedium is assigned when the overall score exceeds 0.6.
	ConfidenceMedium ConfidenceTier = "medium"
	// ConfidenceLow is everything else.
	ConfidenceLow ConfidenceTier = "low"
)

// TierForScore maps an overall score to its confidence tier.
func TierForScore(score float64) ConfidenceTier {
	switch {
	case score > 0.8:
		return ConfidenceHigh
	case score > 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Rank orders tiers for tie-breaking: high before medium before low.
func (t ConfidenceTier) Rank() int {
	switch t {
	case ConfidenceHigh:
		return 2
	case ConfidenceMedium:
		return 1
	default:
		return 0
	}
}

// SubScores is the eight-dimensional match breakdown for one
// (profile, job) pair. Every value lies in [0,1].
type SubScores struct {
	Skills     float64 `json:"skills_match"`
	Experience float64 `json:"experience_match"`
	Education  float64 `json:"education_match"`
	Location   float64 `json:"location_match"`
	Salary     float64 `json:"salary_match"`
	Company    float64 `json:"company_match"`
	Industry   float64 `json:"industry_match"`
	Culture    float64 `json:"culture_fit"`
}

// Mean returns the unweighted average of the eight sub-scores.
func (s SubScores) Mean() float64 {
	return (s.Skills + s.Experience + s.Education + s.Location +
		s.Salary + s.Company + s.Industry + s.Culture) / 8.0
}

// FeedbackType classifies a user reaction to a recommendation.
type FeedbackType string

const (
	FeedbackLiked    FeedbackType = "liked"
	FeedbackDisliked FeedbackType = "disliked"
	FeedbackApplied  FeedbackType = "applied"
	FeedbackSaved    FeedbackType = "saved"
	FeedbackRejected FeedbackType = "rejected"
)

// Valid reports whether the feedback type is one of the known reactions.
func (f FeedbackType) Valid() bool {
	switch f {
	case FeedbackLiked, FeedbackDisliked, FeedbackApplied, FeedbackSaved, FeedbackRejected:
		return true
	default:
		return false
	}
}

// FeedbackEvent is one recorded reaction. Events accumulate; recording new
// feedback never discards earlier events.
type FeedbackEvent struct {
	Type    FeedbackType `json:"type"`
	Reasons []string     `json:"reasons,omitempty"`
	At      time.Time    `json:"at"`
}

// ScoredRecommendation is the engine's output for one (profile, job) pair.
// A profile holds at most one active recommendation per job; regeneration
// replaces the profile's whole set. Feedback mutates it in place.
type ScoredRecommendation struct {
	ID        string `json:"id"`
	ProfileID string `json:"profile_id"`
	JobID     string `json:"job_id"`

	// Score is the blended overall score in [0,1].
	Score float64 `json:"score"`

	SubScores SubScores `json:"sub_scores"`

	// Reasons are human-readable explanations for why this job ranked
	// where it did.
	Reasons []string `json:"reasons,omitempty"`

	// Concerns flag weak sub-scores, phrased per factor.
	Concerns []string `json:"concerns,omitempty"`

	// Insights surface notably strong factors.
	Insights []string `json:"insights,omitempty"`

	Confidence ConfidenceTier `json:"confidence"`

	// ModelScore is the learned engagement prediction when a trained model
	// contributed to the blend. Nil when scoring was rule-based only.
	ModelScore *float64 `json:"model_score,omitempty"`

	// Feedback is the accumulated reaction history.
	Feedback []FeedbackEvent `json:"feedback,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
