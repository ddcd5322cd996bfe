// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/davidm318/jobscout/internal/cache"
	"github.com/davidm318/jobscout/internal/metrics"
)

// SweepableCache is the slice of the cache the sweeper needs.
type SweepableCache interface {
	Sweep() int
	GetStats() cache.Stats
}

// CacheSweepService periodically removes expired cache entries. The
// cache itself runs no background goroutine; this service owns the
// sweep schedule so supervision controls its lifecycle.
type CacheSweepService struct {
	cache    SweepableCache
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

func NewCacheSweepService(c SweepableCache, interval time.Duration, logger zerolog.Logger) *CacheSweepService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &CacheSweepService{
		cache:    c,
		interval: interval,
		logger:   logger.With().Str("service", "cache-sweep").Logger(),
		name:     "cache-sweep-service",
	}
}

// Serve implements suture.Service.
func (s *CacheSweepService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("cache sweep service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache sweep service shutting down")
			return ctx.Err()
		case <-ticker.C:
			removed := s.cache.Sweep()
			stats := s.cache.GetStats()
			metrics.CacheEntries.Set(float64(stats.TotalKeys))
			if removed > 0 {
				s.logger.Debug().
					Int("removed", removed).
					Int64("remaining", stats.TotalKeys).
					Msg("cache sweep complete")
			}
		}
	}
}

// String returns the service name for supervision logs.
func (s *CacheSweepService) String() string {
	return s.name
}
