// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package store

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/davidm318/jobscout/internal/config"
	"github.com/davidm318/jobscout/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(config.StoreConfig{InMemory: true})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func TestProfileRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &models.Profile{Name: "Ada"}
	if err := s.PutProfile(ctx, p); err != nil {
		t.Fatalf("PutProfile: %v", err)
	}
	if p.ID == "" {
		t.Fatal("PutProfile did not assign an ID")
	}

	got, err := s.GetProfile(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", got.Name)
	}

	_, err = s.GetProfile(ctx, "missing")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("GetProfile(missing) = %v, want ErrProfileNotFound", err)
	}
}

func TestJobRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	j := &models.JobPosting{Title: "Go Engineer"}
	if err := s.PutJob(ctx, j); err != nil {
		t.Fatalf("PutJob: %v", err)
	}
	if j.Status != models.JobStatusActive {
		t.Errorf("Status = %q, want active default", j.Status)
	}

	got, err := s.GetJob(ctx, j.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if got.Title != "Go Engineer" {
		t.Errorf("Title = %q", got.Title)
	}

	_, err = s.GetJob(ctx, "missing")
	if !errors.Is(err, ErrJobNotFound) {
		t.Errorf("GetJob(missing) = %v, want ErrJobNotFound", err)
	}
}

func seedJobs(t *testing.T, s *Store, jobs ...*models.JobPosting) {
	t.Helper()
	ctx := context.Background()
	for _, j := range jobs {
		if err := s.PutJob(ctx, j); err != nil {
			t.Fatalf("seed job %s: %v", j.Title, err)
		}
	}
}

func TestListCandidateJobsFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	seedJobs(t, s,
		&models.JobPosting{
			ID: "j-remote", Title: "Remote Go", Location: "Remote",
			Type: "full-time", PostedAt: base.Add(3 * time.Hour),
			Company: models.Company{Name: "Acme", Industry: "SaaS"},
			Salary:  &models.SalaryRange{Min: 90000, Max: 130000},
		},
		&models.JobPosting{
			ID: "j-berlin", Title: "Berlin Backend", Location: "Berlin, Germany",
			Type: "full-time", PostedAt: base.Add(2 * time.Hour),
			Company: models.Company{Name: "Initech", Industry: "FinTech"},
			Salary:  &models.SalaryRange{Min: 60000, Max: 80000},
		},
		&models.JobPosting{
			ID: "j-closed", Title: "Closed Role", Location: "Berlin, Germany",
			Status: models.JobStatusClosed, PostedAt: base.Add(time.Hour),
		},
		&models.JobPosting{
			ID: "j-contract", Title: "Contract Gig", Location: "London, UK",
			Type: "contract", PostedAt: base,
		},
	)

	tests := []struct {
		name    string
		filters models.JobFilters
		wantIDs []string
	}{
		{
			name:    "no filters excludes closed, newest first",
			filters: models.JobFilters{},
			wantIDs: []string{"j-remote", "j-berlin", "j-contract"},
		},
		{
			name:    "location substring plus remote widening",
			filters: models.JobFilters{Location: "berlin"},
			wantIDs: []string{"j-remote", "j-berlin"},
		},
		{
			name:    "remote only",
			filters: models.JobFilters{RemoteOnly: true},
			wantIDs: []string{"j-remote"},
		},
		{
			name:    "type filter",
			filters: models.JobFilters{Types: []string{"contract"}},
			wantIDs: []string{"j-contract"},
		},
		{
			name:    "salary floor drops low ranges",
			filters: models.JobFilters{SalaryMin: 85000},
			wantIDs: []string{"j-remote"},
		},
		{
			name:    "industry filter",
			filters: models.JobFilters{Industries: []string{"fintech"}},
			wantIDs: []string{"j-berlin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := s.ListCandidateJobs(ctx, tt.filters, "", 0)
			if err != nil {
				t.Fatalf("ListCandidateJobs: %v", err)
			}
			ids := make([]string, 0, len(jobs))
			for _, j := range jobs {
				ids = append(ids, j.ID)
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("got %v, want %v", ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("got %v, want %v", ids, tt.wantIDs)
					break
				}
			}
		})
	}
}

func TestListCandidateJobsExcludesApplied(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedJobs(t, s,
		&models.JobPosting{ID: "j1", Title: "One"},
		&models.JobPosting{ID: "j2", Title: "Two"},
	)
	if err := s.MarkApplied(ctx, "p1", "j1"); err != nil {
		t.Fatalf("MarkApplied: %v", err)
	}

	jobs, err := s.ListCandidateJobs(ctx, models.JobFilters{}, "p1", 0)
	if err != nil {
		t.Fatalf("ListCandidateJobs: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != "j2" {
		t.Errorf("candidate pool = %v, want only j2", jobs)
	}

	applied, err := s.HasApplied(ctx, "p1", "j1")
	if err != nil || !applied {
		t.Errorf("HasApplied(p1, j1) = (%v, %v), want (true, nil)", applied, err)
	}
}

func TestListCandidateJobsLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		seedJobs(t, s, &models.JobPosting{
			Title:    "Role",
			PostedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}

	jobs, err := s.ListCandidateJobs(ctx, models.JobFilters{}, "", 3)
	if err != nil {
		t.Fatalf("ListCandidateJobs: %v", err)
	}
	if len(jobs) != 3 {
		t.Errorf("len = %d, want 3", len(jobs))
	}
}

func TestOutcomeRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	recs := []*models.OutcomeRecord{
		{ProfileID: "p1", JobID: "j1", Applied: true, RecordedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ProfileID: "p1", JobID: "j2", Hired: true, RecordedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, r := range recs {
		if err := s.AppendOutcomeRecord(ctx, r); err != nil {
			t.Fatalf("AppendOutcomeRecord: %v", err)
		}
		if r.ID == "" {
			t.Fatal("AppendOutcomeRecord did not assign an ID")
		}
	}

	got, err := s.ListOutcomeRecords(ctx)
	if err != nil {
		t.Fatalf("ListOutcomeRecords: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].Hired {
		t.Error("records not ordered oldest first")
	}

	n, err := s.CountOutcomeRecords(ctx)
	if err != nil || n != 2 {
		t.Errorf("CountOutcomeRecords = (%d, %v), want (2, nil)", n, err)
	}
}

func TestReplaceRecommendations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := []models.ScoredRecommendation{
		{ID: "r1", ProfileID: "p1", JobID: "j1", Score: 0.9},
		{ID: "r2", ProfileID: "p1", JobID: "j2", Score: 0.7},
	}
	if err := s.ReplaceRecommendations(ctx, "p1", first); err != nil {
		t.Fatalf("ReplaceRecommendations: %v", err)
	}

	second := []models.ScoredRecommendation{
		{ID: "r3", ProfileID: "p1", JobID: "j3", Score: 0.8},
	}
	if err := s.ReplaceRecommendations(ctx, "p1", second); err != nil {
		t.Fatalf("ReplaceRecommendations: %v", err)
	}

	got, err := s.GetRecommendations(ctx, "p1")
	if err != nil {
		t.Fatalf("GetRecommendations: %v", err)
	}
	if len(got) != 1 || got[0].JobID != "j3" {
		t.Errorf("recommendations = %+v, want only j3", got)
	}

	_, err = s.GetRecommendation(ctx, "p1", "j1")
	if !errors.Is(err, ErrRecommendationNotFound) {
		t.Errorf("stale pair lookup = %v, want ErrRecommendationNotFound", err)
	}
}

func TestUpdateRecommendationFeedback(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := models.ScoredRecommendation{ID: "r1", ProfileID: "p1", JobID: "j1", Score: 0.9}
	if err := s.ReplaceRecommendations(ctx, "p1", []models.ScoredRecommendation{rec}); err != nil {
		t.Fatalf("ReplaceRecommendations: %v", err)
	}

	stored, err := s.GetRecommendation(ctx, "p1", "j1")
	if err != nil {
		t.Fatalf("GetRecommendation: %v", err)
	}
	stored.Feedback = append(stored.Feedback, models.FeedbackEvent{
		Type: models.FeedbackLiked,
		At:   time.Now().UTC(),
	})
	if err := s.UpdateRecommendation(ctx, stored); err != nil {
		t.Fatalf("UpdateRecommendation: %v", err)
	}

	again, err := s.GetRecommendation(ctx, "p1", "j1")
	if err != nil {
		t.Fatalf("GetRecommendation after update: %v", err)
	}
	if len(again.Feedback) != 1 || again.Feedback[0].Type != models.FeedbackLiked {
		t.Errorf("feedback not persisted: %+v", again.Feedback)
	}
	if again.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set on update")
	}
}

func TestContextCancellation(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.PutProfile(ctx, &models.Profile{}); !errors.Is(err, context.Canceled) {
		t.Errorf("PutProfile with canceled ctx = %v, want context.Canceled", err)
	}
	if _, err := s.ListCandidateJobs(ctx, models.JobFilters{}, "", 0); !errors.Is(err, context.Canceled) {
		t.Errorf("ListCandidateJobs with canceled ctx = %v, want context.Canceled", err)
	}
}

func TestBadgerLoggerForwards(t *testing.T) {
	var buf bytes.Buffer
	bl := badgerLogger{logger: zerolog.New(&buf).With().Str("component", "badger").Logger()}

	bl.Errorf("compaction failed: %s", "disk full")
	bl.Warningf("slow write: %dms", 42)
	bl.Infof("levels up to date")
	bl.Debugf("vlog gc pass")

	out := buf.String()
	tests := []struct {
		name string
		want string
	}{
		{"component field", `"component":"badger"`},
		{"error formatted", "compaction failed: disk full"},
		{"warning formatted", "slow write: 42ms"},
		{"error level", `"level":"error"`},
		{"warn level", `"level":"warn"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(out, tt.want) {
				t.Errorf("log output missing %q:\n%s", tt.want, out)
			}
		})
	}
}
