// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/davidm318/jobscout/internal/models"
)

// topListSize caps the top-N summaries in analytics.
const topListSize = 5

// Analytics summarizes the profile's current recommendation set: score
// averages, the skills/companies/industries dominating it, per-tier
// counts and the feedback engagement totals.
func (e *Engine) Analytics(ctx context.Context, profileID string) (*models.ProfileAnalytics, error) {
	if _, err := e.store.GetProfile(ctx, profileID); err != nil {
		return nil, fmt.Errorf("get profile %s: %w", profileID, err)
	}

	recs, err := e.store.GetRecommendations(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("get recommendations: %w", err)
	}

	out := &models.ProfileAnalytics{
		ProfileID: profileID,
		Trends:    make(map[string]int),
	}
	if len(recs) == 0 {
		return out, nil
	}

	skillCounts := make(map[string]int)
	companyCounts := make(map[string]int)
	industryCounts := make(map[string]int)
	sum := 0.0

	for i := range recs {
		rec := &recs[i]
		sum += rec.Score
		out.Trends[string(rec.Confidence)]++

		for _, fb := range rec.Feedback {
			switch fb.Type {
			case models.FeedbackLiked:
				out.Engagement.Liked++
			case models.FeedbackDisliked:
				out.Engagement.Disliked++
			case models.FeedbackApplied:
				out.Engagement.Applied++
			case models.FeedbackSaved:
				out.Engagement.Saved++
			case models.FeedbackRejected:
				out.Engagement.Rejected++
			}
		}

		job, err := e.store.GetJob(ctx, rec.JobID)
		if err != nil {
			e.logger.Warn().Err(err).Str("job_id", rec.JobID).Msg("skipping missing job in analytics")
			continue
		}
		for _, req := range job.Requirements {
			skillCounts[strings.ToLower(req)]++
		}
		if job.Company.Name != "" {
			companyCounts[job.Company.Name]++
		}
		if job.Company.Industry != "" {
			industryCounts[job.Company.Industry]++
		}
	}

	out.TotalRecommendations = len(recs)
	out.AverageScore = sum / float64(len(recs))
	out.TopSkills = topN(skillCounts, topListSize)
	out.TopCompanies = topN(companyCounts, topListSize)
	out.TopIndustries = topN(industryCounts, topListSize)

	return out, nil
}

// topN returns the n most frequent keys, most frequent first, ties
// resolved alphabetically for stable output.
func topN(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, k int) bool {
		if counts[keys[i]] != counts[keys[k]] {
			return counts[keys[i]] > counts[keys[k]]
		}
		return keys[i] < keys[k]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}
