// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/davidm318/jobscout/internal/feedback"
	"github.com/davidm318/jobscout/internal/models"
	"github.com/davidm318/jobscout/internal/recommend"
	"github.com/davidm318/jobscout/internal/recommend/training"
	"github.com/davidm318/jobscout/internal/store"
	"github.com/davidm318/jobscout/internal/validation"
)

// RecommendEngine is the engine surface the handlers need.
type RecommendEngine interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	Train(ctx context.Context) error
	Status() recommend.TrainingStatus
	HasModel() bool
	Analytics(ctx context.Context, profileID string) (*models.ProfileAnalytics, error)
}

// FeedbackRecorder is the feedback surface the handlers need.
type FeedbackRecorder interface {
	Record(ctx context.Context, profileID, jobID string, fbType models.FeedbackType, reasons []string) error
}

// SeedStore is the write surface for the seeding endpoints.
type SeedStore interface {
	PutProfile(ctx context.Context, p *models.Profile) error
	PutJob(ctx context.Context, j *models.JobPosting) error
	AppendOutcomeRecord(ctx context.Context, rec *models.OutcomeRecord) error
}

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	engine   RecommendEngine
	recorder FeedbackRecorder
	store    SeedStore
	logger   zerolog.Logger

	// trainLimiter throttles manual retrain requests independently of
	// the per-IP limiter; training is expensive and global.
	trainLimiter *rate.Limiter

	startedAt time.Time
}

func NewHandlers(engine RecommendEngine, recorder FeedbackRecorder, seed SeedStore, retrainMinInterval time.Duration, logger zerolog.Logger) *Handlers {
	if retrainMinInterval <= 0 {
		retrainMinInterval = time.Minute
	}
	return &Handlers{
		engine:       engine,
		recorder:     recorder,
		store:        seed,
		logger:       logger.With().Str("component", "api").Logger(),
		trainLimiter: rate.NewLimiter(rate.Every(retrainMinInterval), 1),
		startedAt:    time.Now(),
	}
}

// Recommendations handles POST /api/v1/recommendations.
func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	rs := newResponder(w, r)

	var req recommend.Request
	if err := decodeJSON(r, &req); err != nil {
		rs.ErrorMessage(http.StatusBadRequest, ErrCodeValidation, "invalid request body: "+err.Error())
		return
	}
	if verr := validation.Struct(&req); verr != nil {
		rs.Error(http.StatusBadRequest, verr.ToAPIError())
		return
	}

	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		h.respondEngineError(rs, err)
		return
	}
	if resp.Metadata.CacheHit {
		rs.Cached(resp)
		return
	}
	rs.Success(resp)
}

// TrainingStatus handles GET /api/v1/recommendations/status.
func (h *Handlers) TrainingStatus(w http.ResponseWriter, r *http.Request) {
	newResponder(w, r).Success(h.engine.Status())
}

// Train handles POST /api/v1/train. Runs synchronously; long-running
// retrains are the scheduler's job, this endpoint exists for operators.
func (h *Handlers) Train(w http.ResponseWriter, r *http.Request) {
	rs := newResponder(w, r)

	if !h.trainLimiter.Allow() {
		rs.ErrorMessage(http.StatusTooManyRequests, ErrCodeRateLimited, "retrain requested too soon after the previous run")
		return
	}

	if err := h.engine.Train(r.Context()); err != nil {
		switch {
		case errors.Is(err, recommend.ErrTrainingInProgress):
			rs.ErrorMessage(http.StatusConflict, ErrCodeTrainingInProgress, "a training run is already in progress")
		case errors.Is(err, training.ErrInsufficientData):
			rs.ErrorMessage(http.StatusUnprocessableEntity, ErrCodeInsufficientData, "not enough outcome records to train")
		default:
			h.logger.Error().Err(err).Msg("training failed")
			rs.ErrorMessage(http.StatusInternalServerError, ErrCodeInternal, "training failed")
		}
		return
	}

	rs.Success(h.engine.Status())
}

// feedbackRequest is the POST /api/v1/feedback payload.
type feedbackRequest struct {
	ProfileID string   `json:"profile_id" validate:"required"`
	JobID     string   `json:"job_id" validate:"required"`
	Type      string   `json:"type" validate:"required,oneof=liked disliked applied saved rejected"`
	Reasons   []string `json:"reasons,omitempty"`
}

// Feedback handles POST /api/v1/feedback.
func (h *Handlers) Feedback(w http.ResponseWriter, r *http.Request) {
	rs := newResponder(w, r)

	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		rs.ErrorMessage(http.StatusBadRequest, ErrCodeValidation, "invalid request body: "+err.Error())
		return
	}
	if verr := validation.Struct(&req); verr != nil {
		rs.Error(http.StatusBadRequest, verr.ToAPIError())
		return
	}

	err := h.recorder.Record(r.Context(), req.ProfileID, req.JobID, models.FeedbackType(req.Type), req.Reasons)
	if err != nil {
		switch {
		case errors.Is(err, feedback.ErrInvalidFeedback):
			rs.ErrorMessage(http.StatusBadRequest, ErrCodeValidation, err.Error())
		case errors.Is(err, store.ErrRecommendationNotFound):
			rs.ErrorMessage(http.StatusNotFound, ErrCodeNotFound, "no recommendation for this profile and job")
		default:
			h.logger.Error().Err(err).Msg("failed to record feedback")
			rs.ErrorMessage(http.StatusInternalServerError, ErrCodeInternal, "failed to record feedback")
		}
		return
	}

	rs.Success(map[string]string{"result": "recorded"})
}

// Analytics handles GET /api/v1/analytics/{profileID}.
func (h *Handlers) Analytics(w http.ResponseWriter, r *http.Request) {
	rs := newResponder(w, r)

	profileID := chi.URLParam(r, "profileID")
	analytics, err := h.engine.Analytics(r.Context(), profileID)
	if err != nil {
		h.respondEngineError(rs, err)
		return
	}
	rs.Success(analytics)
}

// CreateProfile handles POST /api/v1/profiles.
func (h *Handlers) CreateProfile(w http.ResponseWriter, r *http.Request) {
	rs := newResponder(w, r)

	var p models.Profile
	if err := decodeJSON(r, &p); err != nil {
		rs.ErrorMessage(http.StatusBadRequest, ErrCodeValidation, "invalid request body: "+err.Error())
		return
	}
	if err := h.store.PutProfile(r.Context(), &p); err != nil {
		h.logger.Error().Err(err).Msg("failed to store profile")
		rs.ErrorMessage(http.StatusInternalServerError, ErrCodeInternal, "failed to store profile")
		return
	}
	rs.Created(&p)
}

// CreateJob handles POST /api/v1/jobs.
func (h *Handlers) CreateJob(w http.ResponseWriter, r *http.Request) {
	rs := newResponder(w, r)

	var j models.JobPosting
	if err := decodeJSON(r, &j); err != nil {
		rs.ErrorMessage(http.StatusBadRequest, ErrCodeValidation, "invalid request body: "+err.Error())
		return
	}
	if j.Title == "" {
		rs.ErrorMessage(http.StatusBadRequest, ErrCodeValidation, "title is required")
		return
	}
	if err := h.store.PutJob(r.Context(), &j); err != nil {
		h.logger.Error().Err(err).Msg("failed to store job")
		rs.ErrorMessage(http.StatusInternalServerError, ErrCodeInternal, "failed to store job")
		return
	}
	rs.Created(&j)
}

// CreateOutcome handles POST /api/v1/outcomes.
func (h *Handlers) CreateOutcome(w http.ResponseWriter, r *http.Request) {
	rs := newResponder(w, r)

	var rec models.OutcomeRecord
	if err := decodeJSON(r, &rec); err != nil {
		rs.ErrorMessage(http.StatusBadRequest, ErrCodeValidation, "invalid request body: "+err.Error())
		return
	}
	if verr := validation.Struct(&rec); verr != nil {
		rs.Error(http.StatusBadRequest, verr.ToAPIError())
		return
	}
	if err := h.store.AppendOutcomeRecord(r.Context(), &rec); err != nil {
		h.logger.Error().Err(err).Msg("failed to store outcome record")
		rs.ErrorMessage(http.StatusInternalServerError, ErrCodeInternal, "failed to store outcome record")
		return
	}
	rs.Created(&rec)
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	newResponder(w, r).Success(map[string]interface{}{
		"status":         "ok",
		"model_loaded":   h.engine.HasModel(),
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}

// Liveness handles GET /health/live. It answers as long as the process
// is serving requests.
func (h *Handlers) Liveness(w http.ResponseWriter, r *http.Request) {
	newResponder(w, r).Success(map[string]interface{}{"status": "alive"})
}

// Readiness handles GET /health/ready. The engine serves heuristic-only
// recommendations without a trained model, so readiness does not gate on
// model presence.
func (h *Handlers) Readiness(w http.ResponseWriter, r *http.Request) {
	newResponder(w, r).Success(map[string]interface{}{
		"status":       "ready",
		"model_loaded": h.engine.HasModel(),
	})
}

// respondEngineError maps engine errors to envelope codes.
func (h *Handlers) respondEngineError(rs *responder, err error) {
	switch {
	case errors.Is(err, store.ErrProfileNotFound):
		rs.ErrorMessage(http.StatusNotFound, ErrCodeNotFound, "profile not found")
	case errors.Is(err, store.ErrJobNotFound):
		rs.ErrorMessage(http.StatusNotFound, ErrCodeNotFound, "job not found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		rs.ErrorMessage(http.StatusServiceUnavailable, ErrCodeInternal, "request canceled")
	default:
		h.logger.Error().Err(err).Msg("request failed")
		rs.ErrorMessage(http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
