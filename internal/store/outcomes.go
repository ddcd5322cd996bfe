// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/davidm318/jobscout/internal/models"
)

// AppendOutcomeRecord stores a new outcome record. An empty ID is
// assigned a fresh UUID so records never overwrite each other.
func (s *Store) AppendOutcomeRecord(ctx context.Context, rec *models.OutcomeRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(outcomeKeyPrefix+rec.ID), data)
	})
}

// ListOutcomeRecords returns all stored outcome records ordered by
// recording time, oldest first.
func (s *Store) ListOutcomeRecords(ctx context.Context) ([]models.OutcomeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []models.OutcomeRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(outcomeKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec models.OutcomeRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal outcome: %w", err)
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, k int) bool {
		return records[i].RecordedAt.Before(records[k].RecordedAt)
	})
	return records, nil
}

// CountOutcomeRecords returns the number of stored outcome records.
func (s *Store) CountOutcomeRecords(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(outcomeKeyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
