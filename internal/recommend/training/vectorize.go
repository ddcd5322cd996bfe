// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package training

import (
	"errors"
	"math"

	"github.com/davidm318/jobscout/internal/normalize"
)

// ErrInvalidConfiguration is returned when the feature layout is
// degenerate, e.g. an empty vocabulary would produce a zero-signal
// vector.
var ErrInvalidConfiguration = errors.New("invalid training configuration")

// Saturation constants for the bounded summary scalars and duration
// scaling. Durations past ~20 years contribute no extra signal.
const (
	durationSaturationMonths = 240.0
	experienceSaturation     = 10.0
	skillSaturation          = 20.0
	educationSaturation      = 5.0
)

// Values for the skill overlap section. A token present on both sides
// scores highest, scaled further by time spent using it.
const (
	skillProfileOnly = 0.5
	skillJobOnly     = 0.3
	skillOverlapBase = 0.5
)

// FeatureWidth returns the width of vectors produced by Vectorize:
// one slot per vocabulary token, one education scalar and three summary
// scalars.
func (v *Vocabulary) FeatureWidth() int {
	return v.TokenCount() + 4
}

// Vectorize maps a (profile, job) pair onto the vocabulary's feature
// layout. Tokens outside the vocabulary contribute nothing, which keeps
// prediction consistent for inputs unseen at training time.
func (v *Vocabulary) Vectorize(p normalize.NormalizedProfile, j normalize.NormalizedJob) ([]float64, error) {
	if v.TokenCount() == 0 {
		return nil, errors.Join(ErrInvalidConfiguration, errors.New("empty vocabulary"))
	}
	// Indexes are built by BuildVocabulary and after artifact decode.
	// Vectorize must not mutate the vocabulary: the engine shares one
	// instance across scoring goroutines.
	if v.skillIdx == nil {
		return nil, errors.Join(ErrInvalidConfiguration, errors.New("vocabulary indexes not built"))
	}

	vec := make([]float64, v.FeatureWidth())

	profileSkills := make(map[string]struct{}, len(p.Skills))
	for _, s := range p.Skills {
		profileSkills[s] = struct{}{}
	}
	jobReqs := make(map[string]struct{}, len(j.Requirements))
	for _, r := range j.Requirements {
		jobReqs[r] = struct{}{}
	}

	// Months spent per skill across experience entries.
	skillMonths := make(map[string]int)
	for _, e := range p.Experience {
		for _, s := range e.Skills {
			skillMonths[s] += e.Months
		}
	}

	// Skill overlap section: profile-only, job-only, or both, with time
	// spent pushing an overlap toward 1.
	for skill, idx := range v.skillIdx {
		_, inProfile := profileSkills[skill]
		_, inJob := jobReqs[skill]

		var val float64
		switch {
		case inProfile && inJob:
			val = skillOverlapBase + (1-skillOverlapBase)*logScale(skillMonths[skill])
		case inProfile:
			val = skillProfileOnly
		case inJob:
			val = skillJobOnly
		}
		vec[idx] = val
	}

	// Title section: log-scaled months the profile spent in each title.
	titleOffset := len(v.Skills)
	titleMonths := make(map[string]int)
	for _, e := range p.Experience {
		titleMonths[e.Title] += e.Months
	}
	for title, idx := range v.titleIdx {
		if months, ok := titleMonths[title]; ok {
			vec[titleOffset+idx] = logScale(months)
		}
	}

	// Industry one-hot for the job's industry.
	industryOffset := titleOffset + len(v.Titles)
	if idx, ok := v.industryIdx[j.Industry]; ok {
		vec[industryOffset+idx] = 1.0
	}

	// Education level scalar plus three bounded summary scalars.
	scalarOffset := industryOffset + len(v.Industries)
	vec[scalarOffset] = float64(maxEducationLevel(p)) / normalize.MaxDegreeLevel
	vec[scalarOffset+1] = saturate(float64(len(p.Experience)), experienceSaturation)
	vec[scalarOffset+2] = saturate(float64(len(p.Skills)), skillSaturation)
	vec[scalarOffset+3] = saturate(float64(len(p.Education)), educationSaturation)

	return vec, nil
}

// logScale maps a month count onto [0,1] with diminishing returns.
func logScale(months int) float64 {
	if months <= 0 {
		return 0
	}
	scaled := math.Log1p(float64(months)) / math.Log1p(durationSaturationMonths)
	return math.Min(1, scaled)
}

func saturate(n, limit float64) float64 {
	return math.Min(1, n/limit)
}

func maxEducationLevel(p normalize.NormalizedProfile) int {
	level := 0
	for _, e := range p.Education {
		if e.Level > level {
			level = e.Level
		}
	}
	return level
}
