// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package feedback records user reactions to recommendations and keeps
// cached recommendation lists consistent with them.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/davidm318/jobscout/internal/cache"
	"github.com/davidm318/jobscout/internal/metrics"
	"github.com/davidm318/jobscout/internal/models"
)

// ErrInvalidFeedback is returned for an unknown feedback type.
var ErrInvalidFeedback = errors.New("invalid feedback type")

// Store is the persistence surface the recorder needs.
type Store interface {
	GetRecommendation(ctx context.Context, profileID, jobID string) (*models.ScoredRecommendation, error)
	UpdateRecommendation(ctx context.Context, rec *models.ScoredRecommendation) error
	AppendOutcomeRecord(ctx context.Context, rec *models.OutcomeRecord) error
	MarkApplied(ctx context.Context, profileID, jobID string) error
}

// Recorder appends feedback events to stored recommendations. Events
// accumulate; earlier reactions are never overwritten.
type Recorder struct {
	store  Store
	cache  *cache.Cache
	logger zerolog.Logger
}

func NewRecorder(s Store, c *cache.Cache, logger zerolog.Logger) *Recorder {
	return &Recorder{
		store:  s,
		cache:  c,
		logger: logger.With().Str("component", "feedback").Logger(),
	}
}

// Record appends one feedback event to the (profile, job) recommendation
// and invalidates the profile's cached recommendation lists so the next
// request reflects it. An "applied" reaction also produces an outcome
// record for future training runs and excludes the job from future
// candidate pools.
func (r *Recorder) Record(ctx context.Context, profileID, jobID string, fbType models.FeedbackType, reasons []string) error {
	if !fbType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFeedback, fbType)
	}

	rec, err := r.store.GetRecommendation(ctx, profileID, jobID)
	if err != nil {
		return fmt.Errorf("get recommendation %s/%s: %w", profileID, jobID, err)
	}

	rec.Feedback = append(rec.Feedback, models.FeedbackEvent{
		Type:    fbType,
		Reasons: reasons,
		At:      time.Now().UTC(),
	})
	if err := r.store.UpdateRecommendation(ctx, rec); err != nil {
		return fmt.Errorf("update recommendation: %w", err)
	}

	if fbType == models.FeedbackApplied {
		outcome := &models.OutcomeRecord{
			ProfileID: profileID,
			JobID:     jobID,
			Applied:   true,
		}
		if err := r.store.AppendOutcomeRecord(ctx, outcome); err != nil {
			return fmt.Errorf("append outcome record: %w", err)
		}
		if err := r.store.MarkApplied(ctx, profileID, jobID); err != nil {
			return fmt.Errorf("mark applied: %w", err)
		}
	}

	invalidated := r.cache.Invalidate("rec:" + profileID + ":*")
	metrics.FeedbackEvents.WithLabelValues(string(fbType)).Inc()
	r.logger.Debug().
		Str("profile_id", profileID).
		Str("job_id", jobID).
		Str("type", string(fbType)).
		Int("cache_invalidated", invalidated).
		Msg("feedback recorded")

	return nil
}
