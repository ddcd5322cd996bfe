// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package services provides suture service wrappers for JobScout's
// long-running components.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// trainTimeout bounds a single training cycle.
const trainTimeout = 30 * time.Minute

// Trainer is the slice of the recommendation engine the scheduler needs.
type Trainer interface {
	Train(ctx context.Context) error
}

// TrainingServiceConfig holds the scheduler's settings.
type TrainingServiceConfig struct {
	// TrainOnStartup triggers a training run when the service starts.
	TrainOnStartup bool

	// Interval is the time between scheduled runs.
	Interval time.Duration
}

// TrainingService retrains the recommendation model on a schedule. A
// failed run is logged and retried at the next tick, never fatal to the
// supervision tree.
type TrainingService struct {
	trainer Trainer
	config  TrainingServiceConfig
	logger  zerolog.Logger
	name    string
}

func NewTrainingService(trainer Trainer, cfg TrainingServiceConfig, logger zerolog.Logger) *TrainingService {
	return &TrainingService{
		trainer: trainer,
		config:  cfg,
		logger:  logger.With().Str("service", "training").Logger(),
		name:    "training-service",
	}
}

// Serve implements suture.Service.
func (s *TrainingService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("interval", s.config.Interval).
		Msg("training service starting")

	if s.config.TrainOnStartup {
		if err := s.train(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("startup training failed, will retry on schedule")
		}
	}

	interval := s.config.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("training service shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := s.train(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled training failed")
			}
		}
	}
}

func (s *TrainingService) train(ctx context.Context) error {
	trainCtx, cancel := context.WithTimeout(ctx, trainTimeout)
	defer cancel()

	start := time.Now()
	if err := s.trainer.Train(trainCtx); err != nil {
		return err
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("training cycle complete")
	return nil
}

// String returns the service name for supervision logs.
func (s *TrainingService) String() string {
	return s.name
}
