// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package recommend

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/davidm318/jobscout/internal/cache"
	"github.com/davidm318/jobscout/internal/config"
	"github.com/davidm318/jobscout/internal/metrics"
	"github.com/davidm318/jobscout/internal/models"
	"github.com/davidm318/jobscout/internal/normalize"
	"github.com/davidm318/jobscout/internal/recommend/training"
)

// Engine coordinates candidate retrieval, scoring, ranking, persistence
// and caching. It is safe for concurrent use; concurrent refreshes for
// the same profile resolve last-write-wins.
type Engine struct {
	cfg    config.RecommendConfig
	logger zerolog.Logger

	store    DataStore
	cache    *cache.Cache
	pipeline *training.Pipeline

	// model is swapped atomically after a successful training run so
	// in-flight scoring never observes a partial artifact.
	model atomic.Pointer[activeModel]

	trainMu  sync.Mutex
	statusMu sync.RWMutex
	status   TrainingStatus
}

// activeModel pairs a loaded model with its artifact version.
type activeModel struct {
	model   *training.Model
	version int
}

// NewEngine wires the scoring engine. The artifact store is consulted
// once for an existing model; scoring falls back to rule-based-only when
// none exists.
func NewEngine(cfg config.RecommendConfig, ds DataStore, c *cache.Cache, pipeline *training.Pipeline, artifacts *training.ArtifactStore, logger zerolog.Logger) *Engine {
	e := &Engine{
		cfg:      cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		store:    ds,
		cache:    c,
		pipeline: pipeline,
	}

	if artifacts != nil {
		model, meta, err := artifacts.LoadActive()
		switch {
		case err == nil:
			e.model.Store(&activeModel{model: model, version: meta.Version})
			e.setStatus(func(s *TrainingStatus) {
				s.ModelVersion = meta.Version
				s.LastTrainedAt = meta.TrainedAt
				s.LastMetrics = &meta.Metrics
			})
			e.logger.Info().Int("version", meta.Version).Msg("loaded active model")
		case errors.Is(err, training.ErrModelNotFound):
			e.logger.Info().Msg("no trained model yet, scoring rule-based only")
		default:
			e.logger.Warn().Err(err).Msg("failed to load active model, scoring rule-based only")
		}
	}

	return e
}

// Recommend generates or serves cached recommendations for a profile.
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	limit := e.normalizeLimit(req.Limit)
	key := e.cacheKey(req, limit)

	if !req.ForceRefresh {
		if cached, ok := e.cache.Get(key); ok {
			metrics.CacheHits.Inc()
			resp := *(cached.(*Response))
			resp.Metadata.CacheHit = true
			e.logger.Debug().Str("profile_id", req.ProfileID).Msg("cache hit")
			return &resp, nil
		}
	}
	metrics.CacheMisses.Inc()

	profile, err := e.store.GetProfile(ctx, req.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", req.ProfileID, err)
	}
	np := normalize.Profile(profile, time.Now().UTC())

	jobs, err := e.store.ListCandidateJobs(ctx, req.Filters, req.ProfileID, e.cfg.MaxCandidates)
	if err != nil {
		return nil, fmt.Errorf("list candidate jobs: %w", err)
	}

	active := e.model.Load()
	scored := e.scoreCandidates(np, jobs, req.Preferences, active)

	sortRecommendations(scored)
	if len(scored) > limit {
		scored = scored[:limit]
	}

	now := time.Now().UTC()
	for i := range scored {
		scored[i].ID = uuid.NewString()
		scored[i].CreatedAt = now
		scored[i].UpdatedAt = now
	}

	if err := e.store.ReplaceRecommendations(ctx, req.ProfileID, scored); err != nil {
		return nil, fmt.Errorf("persist recommendations: %w", err)
	}

	resp := &Response{
		Recommendations: scored,
		Metadata: ResponseMetadata{
			GeneratedAt:    now,
			CandidateCount: len(jobs),
			DurationMS:     time.Since(start).Milliseconds(),
		},
	}
	if active != nil {
		resp.Metadata.ModelVersion = active.version
	}
	e.cache.Set(key, resp)

	metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	metrics.ScoredCandidates.Observe(float64(len(jobs)))
	e.logger.Debug().
		Str("profile_id", req.ProfileID).
		Int("candidates", len(jobs)).
		Int("returned", len(scored)).
		Msg("generated recommendations")

	return resp, nil
}

// scoreCandidates scores the pool in parallel. The candidates are pure
// per-pair computations, so the only shared state is the result slice,
// indexed per goroutine. A failed candidate is skipped, never fatal.
func (e *Engine) scoreCandidates(np normalize.NormalizedProfile, jobs []models.JobPosting, prefs models.Preferences, active *activeModel) []models.ScoredRecommendation {
	results := make([]*models.ScoredRecommendation, len(jobs))

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					metrics.ScoringFailures.Inc()
					e.logger.Error().
						Str("job_id", jobs[idx].ID).
						Interface("panic", r).
						Msg("candidate scoring panicked, skipping")
				}
			}()
			results[idx] = e.scoreOne(np, &jobs[idx], prefs, active)
		}(i)
	}
	wg.Wait()

	scored := make([]models.ScoredRecommendation, 0, len(jobs))
	for _, r := range results {
		if r != nil && r.Score >= e.cfg.MinScore {
			scored = append(scored, *r)
		}
	}
	return scored
}

// scoreOne computes a single recommendation, or nil when the model
// vectorization fails for this pair.
func (e *Engine) scoreOne(np normalize.NormalizedProfile, job *models.JobPosting, prefs models.Preferences, active *activeModel) *models.ScoredRecommendation {
	nj := normalize.Job(job)
	sub := computeSubScores(np, nj)

	var modelScore *float64
	if active != nil {
		vec, err := active.model.Vocab.Vectorize(np, nj)
		if err != nil {
			metrics.ScoringFailures.Inc()
			e.logger.Warn().Err(err).Str("job_id", job.ID).Msg("model vectorization failed, skipping candidate")
			return nil
		}
		pred := active.model.Net.Predict(vec)
		modelScore = &pred
	}

	overall := blend(sub, prefs, nj, modelScore)

	return &models.ScoredRecommendation{
		ProfileID:  np.ID,
		JobID:      job.ID,
		Score:      overall,
		SubScores:  sub,
		Reasons:    buildReasons(sub, nj, modelScore),
		Concerns:   buildConcerns(sub, modelScore),
		Insights:   buildInsights(sub),
		Confidence: models.TierForScore(overall),
		ModelScore: modelScore,
	}
}

// sortRecommendations ranks by overall score descending, breaking ties
// by confidence tier and finally job ID for stable output.
func sortRecommendations(recs []models.ScoredRecommendation) {
	sort.SliceStable(recs, func(i, k int) bool {
		if recs[i].Score != recs[k].Score {
			return recs[i].Score > recs[k].Score
		}
		if ri, rk := recs[i].Confidence.Rank(), recs[k].Confidence.Rank(); ri != rk {
			return ri > rk
		}
		return recs[i].JobID < recs[k].JobID
	})
}

// Train runs the training pipeline and swaps in the new model. Only one
// run may be active; concurrent calls fail fast.
func (e *Engine) Train(ctx context.Context) error {
	if !e.trainMu.TryLock() {
		return ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	start := time.Now()
	e.setStatus(func(s *TrainingStatus) {
		s.IsTraining = true
		s.LastError = ""
	})
	e.logger.Info().Msg("starting model training")

	m, version, err := e.pipeline.Run(ctx)

	e.setStatus(func(s *TrainingStatus) { s.IsTraining = false })
	if err != nil {
		e.setStatus(func(s *TrainingStatus) { s.LastError = err.Error() })
		metrics.RecordTrainingRun("error", time.Since(start), 0)
		return err
	}

	// Load the artifact back the same way a restart would.
	model, meta, err := e.pipeline.Artifacts().LoadActive()
	if err != nil {
		e.setStatus(func(s *TrainingStatus) { s.LastError = err.Error() })
		metrics.RecordTrainingRun("error", time.Since(start), 0)
		return fmt.Errorf("reload trained model: %w", err)
	}

	e.model.Store(&activeModel{model: model, version: meta.Version})
	e.setStatus(func(s *TrainingStatus) {
		s.ModelVersion = version
		s.LastTrainedAt = meta.TrainedAt
		s.LastMetrics = m
	})

	metrics.RecordTrainingRun("success", time.Since(start), m.DataPoints)
	metrics.ModelAccuracy.Set(m.ValAccuracy)
	return nil
}

// Status returns a snapshot of the training state.
func (e *Engine) Status() TrainingStatus {
	e.statusMu.RLock()
	defer e.statusMu.RUnlock()
	return e.status
}

// HasModel reports whether a trained model is active.
func (e *Engine) HasModel() bool {
	return e.model.Load() != nil
}

func (e *Engine) setStatus(mutate func(*TrainingStatus)) {
	e.statusMu.Lock()
	mutate(&e.status)
	e.statusMu.Unlock()
}

// normalizeLimit applies the configured default and ceiling.
func (e *Engine) normalizeLimit(limit int) int {
	if limit <= 0 {
		return e.cfg.DefaultLimit
	}
	if limit > e.cfg.MaxLimit {
		return e.cfg.MaxLimit
	}
	return limit
}

// cacheKey derives a deterministic key prefixed by profile ID so
// feedback can invalidate one profile's entries with a wildcard.
func (e *Engine) cacheKey(req Request, limit int) string {
	params := struct {
		Limit       int
		Filters     models.JobFilters
		Preferences models.Preferences
	}{limit, req.Filters, req.Preferences}
	return cache.GenerateKey("rec:"+req.ProfileID, params)
}
