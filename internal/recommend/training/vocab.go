// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package training implements the outcome training pipeline: it turns
// historical application outcomes into labeled feature vectors, fits a
// small feed-forward regressor on them and persists the result as a
// versioned artifact the scoring engine can load.
package training

import (
	"sort"

	"github.com/davidm318/jobscout/internal/normalize"
)

// Vocabulary holds the three token vocabularies built from the training
// set. Vector positions are stable for a given vocabulary: tokens are
// sorted, so equal training sets produce equal layouts. All fields are
// exported for gob encoding; the lookup maps are rebuilt after decode.
type Vocabulary struct {
	Skills     []string
	Titles     []string
	Industries []string

	skillIdx    map[string]int
	titleIdx    map[string]int
	industryIdx map[string]int
}

// Example is one training pair plus its engagement label.
type Example struct {
	Profile normalize.NormalizedProfile
	Job     normalize.NormalizedJob
	Label   float64
	// Synthetic marks augmentation examples so reports can separate them
	// from real outcome records.
	Synthetic bool
}

// BuildVocabulary collects distinct skills, experience titles and
// industries across all examples.
func BuildVocabulary(examples []Example) *Vocabulary {
	skills := make(map[string]struct{})
	titles := make(map[string]struct{})
	industries := make(map[string]struct{})

	for i := range examples {
		ex := &examples[i]
		for _, s := range ex.Profile.Skills {
			skills[s] = struct{}{}
		}
		for _, e := range ex.Profile.Experience {
			if e.Title != "" {
				titles[e.Title] = struct{}{}
			}
			for _, s := range e.Skills {
				skills[s] = struct{}{}
			}
		}
		for _, r := range ex.Job.Requirements {
			skills[r] = struct{}{}
		}
		if ex.Job.Title != "" {
			titles[ex.Job.Title] = struct{}{}
		}
		if ex.Job.Industry != "" {
			industries[ex.Job.Industry] = struct{}{}
		}
	}

	v := &Vocabulary{
		Skills:     sortedKeys(skills),
		Titles:     sortedKeys(titles),
		Industries: sortedKeys(industries),
	}
	v.buildIndexes()
	return v
}

// TokenCount returns the total number of vocabulary tokens.
func (v *Vocabulary) TokenCount() int {
	return len(v.Skills) + len(v.Titles) + len(v.Industries)
}

// buildIndexes rebuilds the lookup maps from the token slices. Called
// after construction and after gob decode.
func (v *Vocabulary) buildIndexes() {
	v.skillIdx = indexOf(v.Skills)
	v.titleIdx = indexOf(v.Titles)
	v.industryIdx = indexOf(v.Industries)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func indexOf(tokens []string) map[string]int {
	idx := make(map[string]int, len(tokens))
	for i, t := range tokens {
		idx[t] = i
	}
	return idx
}
