// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/davidm318/jobscout/internal/models"
)

// PutJob inserts or replaces a job posting. An empty ID is assigned a
// fresh UUID and an empty status defaults to active.
func (s *Store) PutJob(ctx context.Context, j *models.JobPosting) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = models.JobStatusActive
	}
	if j.PostedAt.IsZero() {
		j.PostedAt = time.Now().UTC()
	}

	data, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(jobKeyPrefix+j.ID), data)
	})
}

// GetJob retrieves a job posting by ID. Returns ErrJobNotFound when the
// ID is unknown.
func (s *Store) GetJob(ctx context.Context, id string) (*models.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var j models.JobPosting
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(jobKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrJobNotFound
		}
		if err != nil {
			return fmt.Errorf("get job: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &j)
		})
	})
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// ListCandidateJobs returns active postings matching all supplied
// filters, excluding postings the profile already applied to, newest
// first, capped at limit. A zero limit means no cap.
func (s *Store) ListCandidateJobs(ctx context.Context, filters models.JobFilters, excludeAppliedBy string, limit int) ([]models.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var jobs []models.JobPosting
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(jobKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var j models.JobPosting
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &j)
			})
			if err != nil {
				return fmt.Errorf("unmarshal job: %w", err)
			}

			if !j.Active() || !matchesFilters(&j, filters) {
				continue
			}

			if excludeAppliedBy != "" {
				appKey := []byte(applicationKeyPrefix + excludeAppliedBy + ":" + j.ID)
				if _, err := txn.Get(appKey); err == nil {
					continue
				} else if !errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("check application: %w", err)
				}
			}

			jobs = append(jobs, j)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(jobs, func(i, k int) bool {
		return jobs[i].PostedAt.After(jobs[k].PostedAt)
	})
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

// matchesFilters applies all filter clauses conjunctively. RemoteOnly
// widens the location clause: a remote posting passes it even when the
// location text differs.
func matchesFilters(j *models.JobPosting, f models.JobFilters) bool {
	loc := strings.ToLower(j.Location)
	isRemote := strings.Contains(loc, "remote")

	if f.RemoteOnly && !isRemote {
		return false
	}
	if f.Location != "" {
		locationOK := strings.Contains(loc, strings.ToLower(f.Location))
		if !locationOK && !isRemote {
			return false
		}
	}

	if len(f.Types) > 0 && !containsFold(f.Types, j.Type) {
		return false
	}
	if len(f.ExperienceLevels) > 0 && !containsFold(f.ExperienceLevels, j.ExperienceLevel) {
		return false
	}
	if len(f.Companies) > 0 && !containsFold(f.Companies, j.Company.Name) {
		return false
	}
	if len(f.Industries) > 0 && !containsFold(f.Industries, j.Company.Industry) {
		return false
	}
	if len(f.CompanySizes) > 0 && !containsFold(f.CompanySizes, j.Company.Size) {
		return false
	}
	if len(f.Schedules) > 0 && !containsFold(f.Schedules, j.Schedule) {
		return false
	}

	if f.SalaryMin > 0 && (j.Salary == nil || j.Salary.Max < f.SalaryMin) {
		return false
	}
	if f.SalaryMax > 0 && (j.Salary == nil || j.Salary.Min > f.SalaryMax) {
		return false
	}

	if len(f.Skills) > 0 && !anyOverlapFold(j.Requirements, f.Skills) {
		return false
	}
	if len(f.Benefits) > 0 && !anyOverlapFold(j.Benefits, f.Benefits) {
		return false
	}

	if f.DeadlineAfter != nil && !j.Deadline.IsZero() && j.Deadline.Before(*f.DeadlineAfter) {
		return false
	}

	return true
}

// containsFold reports whether list contains s, case-insensitively.
func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// anyOverlapFold reports whether any wanted token appears in have,
// case-insensitively.
func anyOverlapFold(have, wanted []string) bool {
	for _, w := range wanted {
		if containsFold(have, w) {
			return true
		}
	}
	return false
}
