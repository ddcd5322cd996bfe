// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package models

import (
	"math"
	"testing"
)

func TestEngagementScore(t *testing.T) {
	tests := []struct {
		name   string
		record OutcomeRecord
		want   float64
	}{
		{"hired", OutcomeRecord{Applied: true, Interviewed: true, Hired: true}, 1.0},
		{"hired without interview flag", OutcomeRecord{Hired: true}, 1.0},
		{"interviewed only", OutcomeRecord{Applied: true, Interviewed: true}, 0.8},
		{"applied only", OutcomeRecord{Applied: true}, 0.6},
		{"no engagement", OutcomeRecord{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.EngagementScore(); got != tt.want {
				t.Errorf("EngagementScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTierForScore(t *testing.T) {
	tests := []struct {
		score float64
		want  ConfidenceTier
	}{
		{0.95, ConfidenceHigh},
		{0.81, ConfidenceHigh},
		{0.8, ConfidenceMedium},
		{0.61, ConfidenceMedium},
		{0.6, ConfidenceLow},
		{0.3, ConfidenceLow},
		{0, ConfidenceLow},
	}

	for _, tt := range tests {
		if got := TierForScore(tt.score); got != tt.want {
			t.Errorf("TierForScore(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestTierRankOrdering(t *testing.T) {
	if ConfidenceHigh.Rank() <= ConfidenceMedium.Rank() {
		t.Error("high tier must outrank medium")
	}
	if ConfidenceMedium.Rank() <= ConfidenceLow.Rank() {
		t.Error("medium tier must outrank low")
	}
}

func TestSubScoresMean(t *testing.T) {
	s := SubScores{
		Skills: 1, Experience: 1, Education: 1, Location: 1,
		Salary: 0, Company: 0, Industry: 0, Culture: 0,
	}
	if got := s.Mean(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Mean() = %v, want 0.5", got)
	}
}

func TestFeedbackTypeValid(t *testing.T) {
	for _, f := range []FeedbackType{FeedbackLiked, FeedbackDisliked, FeedbackApplied, FeedbackSaved, FeedbackRejected} {
		if !f.Valid() {
			t.Errorf("%q should be valid", f)
		}
	}
	if FeedbackType("meh").Valid() {
		t.Error("unknown feedback type should be invalid")
	}
}
