// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/davidm318/jobscout/internal/models"
)

// recKey builds the recommendation key for a profile and job pair.
func recKey(profileID, jobID string) []byte {
	return []byte(recKeyPrefix + profileID + ":" + jobID)
}

// ReplaceRecommendations atomically replaces the stored recommendation
// set for a profile with recs. Stale pairs from earlier runs are removed
// so feedback always lands on a current recommendation.
func (s *Store) ReplaceRecommendations(ctx context.Context, profileID string, recs []models.ScoredRecommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recKeyPrefix + profileID + ":")
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)

		var stale [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete stale recommendation: %w", err)
			}
		}

		for i := range recs {
			rec := &recs[i]
			data, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshal recommendation: %w", err)
			}
			if err := txn.Set(recKey(rec.ProfileID, rec.JobID), data); err != nil {
				return fmt.Errorf("set recommendation: %w", err)
			}
		}
		return nil
	})
}

// GetRecommendations returns all stored recommendations for a profile,
// unordered. Callers rank the result.
func (s *Store) GetRecommendations(ctx context.Context, profileID string) ([]models.ScoredRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var recs []models.ScoredRecommendation
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recKeyPrefix + profileID + ":")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec models.ScoredRecommendation
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal recommendation: %w", err)
			}
			recs = append(recs, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// GetRecommendation retrieves one stored recommendation. Returns
// ErrRecommendationNotFound when no recommendation exists for the pair.
func (s *Store) GetRecommendation(ctx context.Context, profileID, jobID string) (*models.ScoredRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec models.ScoredRecommendation
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recKey(profileID, jobID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRecommendationNotFound
		}
		if err != nil {
			return fmt.Errorf("get recommendation: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateRecommendation overwrites a stored recommendation in place.
func (s *Store) UpdateRecommendation(ctx context.Context, rec *models.ScoredRecommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rec.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal recommendation: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recKey(rec.ProfileID, rec.JobID), data)
	})
}

// applicationRecord marks that a profile applied to a job.
type applicationRecord struct {
	ProfileID string    `json:"profile_id"`
	JobID     string    `json:"job_id"`
	AppliedAt time.Time `json:"applied_at"`
}

// MarkApplied records that the profile applied to the job, which removes
// the posting from future candidate pools for that profile.
func (s *Store) MarkApplied(ctx context.Context, profileID, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(applicationRecord{
		ProfileID: profileID,
		JobID:     jobID,
		AppliedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal application: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(applicationKeyPrefix+profileID+":"+jobID), data)
	})
}

// HasApplied reports whether the profile already applied to the job.
func (s *Store) HasApplied(ctx context.Context, profileID, jobID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	applied := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(applicationKeyPrefix + profileID + ":" + jobID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}
