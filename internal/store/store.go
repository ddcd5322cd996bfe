// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package store persists profiles, job postings, outcome records and
// scored recommendations in BadgerDB. All values are JSON-encoded under
// typed key prefixes so related records can be scanned with prefix
// iterators.
package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/davidm318/jobscout/internal/config"
	"github.com/davidm318/jobscout/internal/logging"
)

// Key prefixes for BadgerDB storage.
const (
	profileKeyPrefix     = "profile:"
	jobKeyPrefix         = "job:"
	outcomeKeyPrefix     = "outcome:"
	recKeyPrefix         = "rec:"
	applicationKeyPrefix = "application:"
)

// Sentinel errors for lookups.
var (
	ErrProfileNotFound        = errors.New("profile not found")
	ErrJobNotFound            = errors.New("job not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
)

// Store is a BadgerDB-backed persistence layer. Safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens or creates the Badger database described by cfg.
func Open(cfg config.StoreConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}
	// Badger's default logger writes unstructured lines; route through
	// our logger instead.
	opts = opts.WithLogger(badgerLogger{logger: logging.Logger().With().Str("component", "badger").Logger()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", cfg.Path, err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing Badger handle. Used by tests.
func NewWithDB(db *badger.DB) *Store {
	return &Store{db: db}
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// badgerLogger adapts Badger's logger interface to zerolog.
type badgerLogger struct {
	logger zerolog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.logger.Error().Msgf(format, args...)
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.logger.Warn().Msgf(format, args...)
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.logger.Debug().Msgf(format, args...)
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.logger.Debug().Msgf(format, args...)
}
