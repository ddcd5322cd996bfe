// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package training

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/davidm318/jobscout/internal/config"
	"github.com/davidm318/jobscout/internal/models"
	"github.com/davidm318/jobscout/internal/normalize"
	"github.com/davidm318/jobscout/internal/similarity"
)

// ErrInsufficientData is returned when no usable outcome record exists,
// leaving nothing to train or even synthesize from.
var ErrInsufficientData = errors.New("insufficient training data")

// syntheticNoise bounds the random jitter added to heuristic labels.
const syntheticNoise = 0.1

// DataSource supplies the historical records and entities the pipeline
// trains on. Implemented by the store package.
type DataSource interface {
	ListOutcomeRecords(ctx context.Context) ([]models.OutcomeRecord, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	GetJob(ctx context.Context, id string) (*models.JobPosting, error)
}

// Pipeline runs the outcome training end to end: collect, label,
// augment, vectorize, fit, persist.
type Pipeline struct {
	data      DataSource
	artifacts *ArtifactStore
	cfg       config.TrainingConfig
	logger    zerolog.Logger
	rng       *rand.Rand
}

// NewPipeline wires a training pipeline. The seed fixes augmentation
// sampling and weight initialization for reproducible runs; pass 0 for a
// time-based seed.
func NewPipeline(data DataSource, artifacts *ArtifactStore, cfg config.TrainingConfig, logger zerolog.Logger, seed int64) *Pipeline {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Pipeline{
		data:      data,
		artifacts: artifacts,
		cfg:       cfg,
		logger:    logger.With().Str("component", "training").Logger(),
		rng:       rand.New(rand.NewSource(seed)), //nolint:gosec // reproducible sampling, not security sensitive
	}
}

// Artifacts exposes the artifact store backing this pipeline.
func (p *Pipeline) Artifacts() *ArtifactStore {
	return p.artifacts
}

// Run executes one training run and returns the report plus the new
// artifact version. Errors abort the run without touching the active
// artifact.
func (p *Pipeline) Run(ctx context.Context) (*Metrics, int, error) {
	start := time.Now()

	examples, err := p.collect(ctx)
	if err != nil {
		return nil, 0, err
	}
	realCount := len(examples)

	if realCount < p.cfg.MinRecords {
		examples = p.augment(examples)
		p.logger.Info().
			Int("real", realCount).
			Int("synthetic", len(examples)-realCount).
			Msg("augmented training set with synthetic examples")
	}

	vocab := BuildVocabulary(examples)
	if vocab.TokenCount() == 0 {
		return nil, 0, errors.Join(ErrInvalidConfiguration, errors.New("training set produced an empty vocabulary"))
	}

	inputs := make([][]float64, len(examples))
	labels := make([]float64, len(examples))
	for i := range examples {
		vec, err := vocab.Vectorize(examples[i].Profile, examples[i].Job)
		if err != nil {
			return nil, 0, fmt.Errorf("vectorize example %d: %w", i, err)
		}
		inputs[i] = vec
		labels[i] = examples[i].Label
	}

	net, err := NewNetwork(vocab.FeatureWidth(), p.cfg.HiddenLayers, p.rng)
	if err != nil {
		return nil, 0, err
	}

	stats, err := net.Train(ctx, inputs, labels, Options{
		Epochs:          p.cfg.Epochs,
		BatchSize:       p.cfg.BatchSize,
		LearningRate:    p.cfg.LearningRate,
		ValidationSplit: p.cfg.ValidationSplit,
		Dropout:         p.cfg.Regularization,
	}, p.rng)
	if err != nil {
		return nil, 0, fmt.Errorf("train network: %w", err)
	}

	metrics := Metrics{
		Accuracy:        stats.Accuracy,
		Loss:            stats.Loss,
		ValAccuracy:     stats.ValAccuracy,
		ValLoss:         stats.ValLoss,
		DurationMS:      time.Since(start).Milliseconds(),
		DataPoints:      len(examples),
		SyntheticPoints: len(examples) - realCount,
		EpochsRun:       stats.Epochs,
	}

	version, err := p.artifacts.Save(&Model{Vocab: vocab, Net: net}, Metadata{
		TrainedAt:    time.Now().UTC(),
		FeatureWidth: vocab.FeatureWidth(),
		Metrics:      metrics,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("persist model: %w", err)
	}

	p.logger.Info().
		Int("version", version).
		Int("data_points", metrics.DataPoints).
		Int("synthetic", metrics.SyntheticPoints).
		Float64("loss", metrics.Loss).
		Float64("val_loss", metrics.ValLoss).
		Int64("duration_ms", metrics.DurationMS).
		Msg("training run complete")

	return &metrics, version, nil
}

// collect resolves every outcome record into a labeled example. Records
// whose profile or job no longer exists are skipped with a warning.
func (p *Pipeline) collect(ctx context.Context) ([]Example, error) {
	records, err := p.data.ListOutcomeRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list outcome records: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrInsufficientData
	}

	now := time.Now().UTC()
	examples := make([]Example, 0, len(records))
	for i := range records {
		rec := &records[i]
		profile, err := p.data.GetProfile(ctx, rec.ProfileID)
		if err != nil {
			p.logger.Warn().Err(err).Str("record_id", rec.ID).Str("profile_id", rec.ProfileID).
				Msg("skipping outcome record with unresolvable profile")
			continue
		}
		job, err := p.data.GetJob(ctx, rec.JobID)
		if err != nil {
			p.logger.Warn().Err(err).Str("record_id", rec.ID).Str("job_id", rec.JobID).
				Msg("skipping outcome record with unresolvable job")
			continue
		}

		examples = append(examples, Example{
			Profile:   normalize.Profile(profile, now),
			Job:       normalize.Job(job),
			Label:     rec.EngagementScore(),
			Synthetic: rec.Synthetic,
		})
	}
	if len(examples) == 0 {
		return nil, errors.Join(ErrInsufficientData, errors.New("no outcome record resolved to a stored profile and job"))
	}
	return examples, nil
}

// augment pads the training set up to the synthetic target by pairing
// existing profiles and jobs and labeling each pair with a skill-overlap
// heuristic plus bounded noise. Real examples are always kept.
func (p *Pipeline) augment(examples []Example) []Example {
	target := p.cfg.SyntheticTarget
	if target <= len(examples) {
		return examples
	}

	out := make([]Example, len(examples), target)
	copy(out, examples)

	for len(out) < target {
		profile := examples[p.rng.Intn(len(examples))].Profile
		job := examples[p.rng.Intn(len(examples))].Job

		label := p.heuristicLabel(profile, job)
		label += (p.rng.Float64()*2 - 1) * syntheticNoise
		label = clamp01(label)

		out = append(out, Example{
			Profile:   profile,
			Job:       job,
			Label:     label,
			Synthetic: true,
		})
	}
	return out
}

// heuristicLabel approximates engagement by the fraction of the job's
// requirements the profile's skills fuzzy-match.
func (p *Pipeline) heuristicLabel(profile normalize.NormalizedProfile, job normalize.NormalizedJob) float64 {
	if len(job.Requirements) == 0 {
		return 0.3
	}
	matched := 0
	for _, req := range job.Requirements {
		if similarity.MatchAny(req, profile.Skills, similarity.DefaultThreshold) {
			matched++
		}
	}
	return float64(matched) / float64(len(job.Requirements))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
