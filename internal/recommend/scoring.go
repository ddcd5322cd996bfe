// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package recommend

import (
	"strings"

	"github.com/davidm318/jobscout/internal/models"
	"github.com/davidm318/jobscout/internal/normalize"
	"github.com/davidm318/jobscout/internal/similarity"
)

// Sub-score constants. The neutral values stand in for factors with no
// real signal yet; changing them changes ranking behavior, so they are
// fixed rather than configurable.
const (
	neutralSkills    = 0.5
	noExperienceBase = 0.3
	neutralEducation = 0.5
	neutralLocation  = 0.5
	neutralSalary    = 0.6
	missingSalary    = 0.5
	neutralCompany   = 0.7
	neutralIndustry  = 0.5
	tracedIndustry   = 0.85
	neutralCulture   = 0.5

	// experienceTargetMonths normalizes relevant experience: two years
	// of matching work saturates the factor.
	experienceTargetMonths = 24.0

	// educationRelatesThreshold is the minimum textual relatedness for
	// an education entry to count toward the education factor.
	educationRelatesThreshold = 0.5

	// maxGrade caps grade normalization at a 4.0 scale.
	maxGrade = 4.0
)

// Preference blend weights. Each adjustment is a weighted average with
// the running overall score, clamped afterward.
const (
	skillPriorityWeight  = 0.3
	environmentWeight    = 0.2
	environmentMismatch  = 0.2
	salaryPriorityWeight = 0.2
	industryPrefWeight   = 0.15
	rolePrefWeight       = 0.15
	benefitPrefWeight    = 0.1
	avoidCompanyFactor   = 0.6
	modelBlendWeight     = 0.3

	// importanceCutoff is the 1-10 dial value at which a preference
	// weight starts influencing the blend.
	importanceCutoff = 7
)

// computeSubScores produces the eight rule-based factors, each in [0,1].
func computeSubScores(p normalize.NormalizedProfile, j normalize.NormalizedJob) models.SubScores {
	return models.SubScores{
		Skills:     skillsMatch(p, j),
		Experience: experienceMatch(p, j),
		Education:  educationMatch(p, j),
		Location:   locationMatch(p, j),
		Salary:     salaryMatch(j),
		Company:    neutralCompany,
		Industry:   industryMatch(p, j),
		Culture:    neutralCulture,
	}
}

// skillsMatch is the fraction of requirement tokens fuzzy-matched by a
// profile skill. Neutral when the posting lists no requirements.
func skillsMatch(p normalize.NormalizedProfile, j normalize.NormalizedJob) float64 {
	if len(j.Requirements) == 0 {
		return neutralSkills
	}
	matched := 0
	for _, req := range j.Requirements {
		if similarity.MatchAny(req, p.Skills, similarity.DefaultThreshold) {
			matched++
		}
	}
	return float64(matched) / float64(len(j.Requirements))
}

// experienceMatch sums months across experiences related to this posting
// and normalizes by two years. A profile with no experience at all gets
// the fixed baseline.
func experienceMatch(p normalize.NormalizedProfile, j normalize.NormalizedJob) float64 {
	if len(p.Experience) == 0 {
		return noExperienceBase
	}

	relevant := 0
	for _, exp := range p.Experience {
		if experienceRelates(exp, j) {
			relevant += exp.Months
		}
	}

	score := float64(relevant) / experienceTargetMonths
	if score > 1 {
		return 1
	}
	return score
}

func experienceRelates(exp normalize.NormalizedExperience, j normalize.NormalizedJob) bool {
	if similarity.Match(exp.Title, j.Title) {
		return true
	}
	for _, skill := range exp.Skills {
		if similarity.MatchAny(skill, j.Requirements, similarity.DefaultThreshold) {
			return true
		}
	}
	return false
}

// educationMatch takes the best entry whose field or degree textually
// relates to the posting; unrelated or absent education stays neutral.
func educationMatch(p normalize.NormalizedProfile, j normalize.NormalizedJob) float64 {
	best := 0.0
	related := false

	targets := make([]string, 0, len(j.Requirements)+2)
	targets = append(targets, j.Requirements...)
	if j.Title != "" {
		targets = append(targets, j.Title)
	}
	if j.Industry != "" {
		targets = append(targets, j.Industry)
	}

	for _, edu := range p.Education {
		relevance := textRelevance(edu.Field, targets)
		if r := textRelevance(edu.Degree, targets); r > relevance {
			relevance = r
		}
		if relevance < educationRelatesThreshold {
			continue
		}
		related = true

		levelScore := float64(edu.Level) / normalize.MaxDegreeLevel
		gradeScore := edu.Grade / maxGrade
		if gradeScore > 1 {
			gradeScore = 1
		}
		score := (levelScore + relevance + gradeScore) / 3
		if score > best {
			best = score
		}
	}

	if !related {
		return neutralEducation
	}
	return best
}

// textRelevance is the best similarity between a token and any target.
func textRelevance(token string, targets []string) float64 {
	if token == "" {
		return 0
	}
	best := 0.0
	for _, t := range targets {
		if s := similarity.Score(token, t); s > best {
			best = s
		}
	}
	return best
}

// locationMatch follows fixed geography tiers: remote or same city 1.0,
// same state 0.8, same country 0.6, elsewhere 0.3. A profile without a
// location stays neutral.
func locationMatch(p normalize.NormalizedProfile, j normalize.NormalizedJob) float64 {
	if jobIsRemote(j) {
		return 1.0
	}
	if !p.HasLocation {
		return neutralLocation
	}

	loc := j.Location
	switch {
	case p.City != "" && strings.Contains(loc, p.City):
		return 1.0
	case p.State != "" && strings.Contains(loc, p.State):
		return 0.8
	case p.Country != "" && strings.Contains(loc, p.Country):
		return 0.6
	default:
		return 0.3
	}
}

func jobIsRemote(j normalize.NormalizedJob) bool {
	return strings.Contains(j.Location, "remote") || strings.Contains(j.Location, "anywhere")
}

// salaryMatch is a bounded placeholder until compensation expectations
// exist on profiles.
func salaryMatch(j normalize.NormalizedJob) float64 {
	if j.Salary == nil {
		return missingSalary
	}
	return neutralSalary
}

// industryMatch rewards prior experience or education traceable to the
// posting's industry.
func industryMatch(p normalize.NormalizedProfile, j normalize.NormalizedJob) float64 {
	if j.Industry == "" {
		return neutralIndustry
	}

	for _, exp := range p.Experience {
		if strings.Contains(exp.Title, j.Industry) {
			return tracedIndustry
		}
		if similarity.MatchAny(j.Industry, exp.Skills, similarity.DefaultThreshold) {
			return tracedIndustry
		}
	}
	for _, edu := range p.Education {
		if similarity.Match(edu.Field, j.Industry) {
			return tracedIndustry
		}
	}
	return neutralIndustry
}

// blend folds the sub-scores, preference dials and optional learned
// score into one overall value, clamping after every adjustment.
func blend(sub models.SubScores, prefs models.Preferences, j normalize.NormalizedJob, modelScore *float64) float64 {
	overall := sub.Mean()

	if prefs.PrioritizeSkills {
		overall = mix(overall, sub.Skills, skillPriorityWeight)
	}

	if prefs.WorkEnvironment != "" {
		envScore := environmentMismatch
		if environmentMatches(prefs.WorkEnvironment, j) {
			envScore = 1.0
		}
		overall = mix(overall, envScore, environmentWeight)
	}

	if prefs.SalaryImportance >= importanceCutoff {
		overall = mix(overall, sub.Salary, salaryPriorityWeight)
	}

	if containsFold(prefs.PreferredIndustries, j.Industry) {
		overall = mix(overall, 1.0, industryPrefWeight)
	}

	if roleMatches(prefs.PreferredRoles, j.Title) {
		overall = mix(overall, 1.0, rolePrefWeight)
	}

	if anyOverlapFold(j.Benefits, prefs.PreferredBenefits) {
		overall = mix(overall, 1.0, benefitPrefWeight)
	}

	if containsFold(prefs.AvoidCompanies, j.Company) {
		overall = clamp01(overall * avoidCompanyFactor)
	}

	if modelScore != nil {
		overall = mix(overall, *modelScore, modelBlendWeight)
	}

	return overall
}

func environmentMatches(pref string, j normalize.NormalizedJob) bool {
	remote := jobIsRemote(j)
	hybrid := strings.Contains(j.Location, "hybrid") || strings.Contains(j.Schedule, "hybrid")
	switch pref {
	case "remote":
		return remote
	case "hybrid":
		return hybrid || remote
	case "onsite":
		return !remote
	default:
		return true
	}
}

func roleMatches(roles []string, title string) bool {
	for _, role := range roles {
		if similarity.Match(strings.ToLower(role), title) ||
			strings.Contains(title, strings.ToLower(role)) {
			return true
		}
	}
	return false
}

// mix is a weighted average with clamping: (1-w)*overall + w*signal.
func mix(overall, signal, weight float64) float64 {
	return clamp01((1-weight)*overall + weight*signal)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func anyOverlapFold(have, wanted []string) bool {
	for _, w := range wanted {
		if containsFold(have, w) {
			return true
		}
	}
	return false
}
