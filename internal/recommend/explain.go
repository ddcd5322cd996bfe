// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package recommend

import (
	"fmt"

	"github.com/davidm318/jobscout/internal/models"
	"github.com/davidm318/jobscout/internal/normalize"
)

// Explanation thresholds. A factor above reasonThreshold earns a reason,
// above insightThreshold an insight; weak factors produce concerns.
const (
	reasonThreshold     = 0.7
	insightThreshold    = 0.8
	skillConcernCutoff  = 0.5
	weakConcernCutoff   = 0.4
	modelSignalStrong   = 0.7
	modelSignalWeak     = 0.3
)

// buildReasons explains why a posting ranked where it did.
func buildReasons(sub models.SubScores, j normalize.NormalizedJob, modelScore *float64) []string {
	var reasons []string

	if sub.Skills > reasonThreshold {
		reasons = append(reasons, fmt.Sprintf("your skills cover %.0f%% of the listed requirements", sub.Skills*100))
	} else if sub.Skills > skillConcernCutoff {
		reasons = append(reasons, "solid overlap between your skills and the listed requirements")
	}

	if sub.Experience > reasonThreshold {
		reasons = append(reasons, "your work history closely matches this role")
	}
	if sub.Education > reasonThreshold {
		reasons = append(reasons, "your education background fits the position")
	}
	if sub.Location == 1.0 {
		if jobIsRemote(j) {
			reasons = append(reasons, "fully remote position")
		} else {
			reasons = append(reasons, "located in your city")
		}
	}
	if sub.Industry > neutralIndustry {
		reasons = append(reasons, fmt.Sprintf("prior exposure to the %s industry", j.Industry))
	}

	if modelScore != nil && *modelScore >= modelSignalStrong {
		reasons = append(reasons, "candidates with similar profiles engaged strongly with comparable roles")
	}

	return reasons
}

// buildConcerns flags weak factors so users understand lower rankings.
func buildConcerns(sub models.SubScores, modelScore *float64) []string {
	var concerns []string

	if sub.Skills < skillConcernCutoff {
		concerns = append(concerns, "several listed requirements fall outside your current skills")
	}
	if sub.Experience < weakConcernCutoff {
		concerns = append(concerns, "limited directly relevant work experience")
	}
	if sub.Education < skillConcernCutoff {
		concerns = append(concerns, "education background differs from what this role usually expects")
	}
	if sub.Location < skillConcernCutoff {
		concerns = append(concerns, "the job location is far from your area")
	}
	if modelScore != nil && *modelScore < modelSignalWeak {
		concerns = append(concerns, "similar profiles rarely engaged with comparable roles")
	}

	return concerns
}

// buildInsights surfaces standout factors.
func buildInsights(sub models.SubScores) []string {
	var insights []string

	if sub.Skills > insightThreshold {
		insights = append(insights, "one of your strongest skill matches right now")
	}
	if sub.Experience > insightThreshold {
		insights = append(insights, "your experience level positions you as a strong candidate")
	}
	if sub.Location > reasonThreshold && sub.Skills > reasonThreshold {
		insights = append(insights, "good match on both location and skills")
	}

	return insights
}
