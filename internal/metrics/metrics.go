// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package metrics exposes Prometheus instrumentation for the API,
// the recommendation cache, scoring and model training. Collectors are
// registered with the default registry via promauto and served at
// /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobscout_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Recommendation cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscout_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscout_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobscout_cache_entries",
			Help: "Current number of cached entries",
		},
	)

	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscout_cache_evictions_total",
			Help: "Total number of cache entries evicted",
		},
	)

	// Scoring metrics
	ScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobscout_scoring_duration_seconds",
			Help:    "Duration of a full recommendation scoring pass in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ScoredCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobscout_scored_candidates",
			Help:    "Number of candidate jobs scored per request",
			Buckets: []float64{1, 5, 10, 25, 50},
		},
	)

	ScoringFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobscout_scoring_failures_total",
			Help: "Total number of per-candidate scoring failures skipped",
		},
	)

	// Training metrics
	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_training_runs_total",
			Help: "Total number of model training runs",
		},
		[]string{"result"}, // "success", "error", "skipped"
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobscout_training_duration_seconds",
			Help:    "Duration of model training runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		},
	)

	TrainingDataPoints = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobscout_training_data_points",
			Help: "Number of records used in the most recent training run",
		},
	)

	ModelAccuracy = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobscout_model_accuracy",
			Help: "Validation accuracy of the active model",
		},
	)

	// Feedback metrics
	FeedbackEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobscout_feedback_events_total",
			Help: "Total number of recorded feedback events",
		},
		[]string{"type"},
	)
)

// RecordAPIRequest records one served API request.
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	APIRequestDuration.WithLabelValues(method, endpoint, code).Observe(duration.Seconds())
	APIRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
}

// RecordTrainingRun records the outcome of a training run.
func RecordTrainingRun(result string, duration time.Duration, dataPoints int) {
	TrainingRuns.WithLabelValues(result).Inc()
	if result == "success" {
		TrainingDuration.Observe(duration.Seconds())
		TrainingDataPoints.Set(float64(dataPoints))
	}
}
