// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package recommend implements the multi-factor scoring engine. For each
// requesting profile it fetches a bounded candidate pool, computes eight
// rule-based sub-scores per posting, blends in the trained model's
// engagement prediction when one is available, and returns ranked,
// explained recommendations backed by a TTL cache.
package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/davidm318/jobscout/internal/models"
	"github.com/davidm318/jobscout/internal/recommend/training"
)

// ErrTrainingInProgress is returned by Train when another run holds the
// training lock.
var ErrTrainingInProgress = errors.New("training already in progress")

// DataStore is the persistence surface the engine needs. Implemented by
// the store package; narrowed to an interface so tests can substitute an
// in-memory fake.
type DataStore interface {
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	GetJob(ctx context.Context, id string) (*models.JobPosting, error)
	ListCandidateJobs(ctx context.Context, filters models.JobFilters, excludeAppliedBy string, limit int) ([]models.JobPosting, error)
	ReplaceRecommendations(ctx context.Context, profileID string, recs []models.ScoredRecommendation) error
	GetRecommendations(ctx context.Context, profileID string) ([]models.ScoredRecommendation, error)
}

// Request describes one recommendation call.
type Request struct {
	ProfileID string `json:"profile_id" validate:"required"`
	// Limit caps the returned set; 0 selects the configured default.
	Limit        int                `json:"limit" validate:"gte=0"`
	Filters      models.JobFilters  `json:"filters"`
	Preferences  models.Preferences `json:"preferences"`
	ForceRefresh bool               `json:"force_refresh"`
}

// Response is a recommendation result set plus generation metadata.
type Response struct {
	Recommendations []models.ScoredRecommendation `json:"recommendations"`
	Metadata        ResponseMetadata              `json:"metadata"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	GeneratedAt    time.Time `json:"generated_at"`
	CacheHit       bool      `json:"cache_hit"`
	CandidateCount int       `json:"candidate_count"`
	ModelVersion   int       `json:"model_version,omitempty"`
	DurationMS     int64     `json:"duration_ms"`
}

// TrainingStatus is a snapshot of the engine's training state.
type TrainingStatus struct {
	IsTraining    bool              `json:"is_training"`
	LastTrainedAt time.Time         `json:"last_trained_at,omitempty"`
	LastError     string            `json:"last_error,omitempty"`
	ModelVersion  int               `json:"model_version"`
	LastMetrics   *training.Metrics `json:"last_metrics,omitempty"`
}
