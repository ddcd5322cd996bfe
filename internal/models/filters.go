// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package models

import "time"

// JobFilters narrows the candidate job set for a recommendation request.
// All predicates are optional and AND-combined, except RemoteOnly which
// OR-extends the location predicate (a remote job passes the location
// filter regardless of its location string).
type JobFilters struct {
	// Location matches as a case-insensitive substring of the job location.
	Location string `json:"location,omitempty"`

	// Types restricts to the given employment categories.
	Types []string `json:"types,omitempty"`

	// ExperienceLevels restricts to the given seniority bands.
	ExperienceLevels []string `json:"experience_levels,omitempty"`

	// SalaryMin/SalaryMax bound the posting's offered range. A posting
	// passes when its range overlaps [SalaryMin, SalaryMax].
	SalaryMin float64 `json:"salary_min,omitempty"`
	SalaryMax float64 `json:"salary_max,omitempty"`

	// Skills requires at least one of the given tokens among the
	// posting's requirements.
	Skills []string `json:"skills,omitempty"`

	// Companies restricts to the given employer names.
	Companies []string `json:"companies,omitempty"`

	// Industries restricts to the given employer industries.
	Industries []string `json:"industries,omitempty"`

	// RemoteOnly admits remote postings in addition to any Location match.
	RemoteOnly bool `json:"remote_only,omitempty"`

	// DeadlineAfter excludes postings whose application deadline falls
	// before the cutoff.
	DeadlineAfter *time.Time `json:"deadline_after,omitempty"`

	// CompanySizes restricts to the given size bands.
	CompanySizes []string `json:"company_sizes,omitempty"`

	// Benefits requires at least one of the given benefit tags.
	Benefits []string `json:"benefits,omitempty"`

	// Schedules restricts to the given working-hours arrangements.
	Schedules []string `json:"schedules,omitempty"`
}

// Preferences are the requester's optional ranking dials. Zero values mean
// "no preference" and leave the blended score untouched.
type Preferences struct {
	// CareerGoals are free-text goal statements.
	CareerGoals []string `json:"career_goals,omitempty"`

	// WorkEnvironment is the preferred modality: remote, hybrid or onsite.
	WorkEnvironment string `json:"work_environment,omitempty" validate:"omitempty,oneof=remote hybrid onsite"`

	// CultureKeywords describe the desired company culture.
	CultureKeywords []string `json:"culture_keywords,omitempty"`

	// LearningImportance weights learning opportunities, 1-10.
	LearningImportance int `json:"learning_importance,omitempty" validate:"omitempty,min=1,max=10"`

	// WorkLifeBalance weights schedule flexibility, 1-10.
	WorkLifeBalance int `json:"work_life_balance,omitempty" validate:"omitempty,min=1,max=10"`

	// SalaryImportance weights compensation, 1-10.
	SalaryImportance int `json:"salary_importance,omitempty" validate:"omitempty,min=1,max=10"`

	// GrowthPotential weights advancement prospects, 1-10.
	GrowthPotential int `json:"growth_potential,omitempty" validate:"omitempty,min=1,max=10"`

	// PreferredIndustries boost postings in the named industries.
	PreferredIndustries []string `json:"preferred_industries,omitempty"`

	// PreferredRoles boost postings whose title resembles the named roles.
	PreferredRoles []string `json:"preferred_roles,omitempty"`

	// AvoidCompanies penalizes postings from the named employers.
	AvoidCompanies []string `json:"avoid_companies,omitempty"`

	// PreferredBenefits boost postings offering the named benefits.
	PreferredBenefits []string `json:"preferred_benefits,omitempty"`

	// PrioritizeSkills reweights the blend toward the skills sub-score.
	PrioritizeSkills bool `json:"prioritize_skills,omitempty"`
}

// ProfileAnalytics summarizes a profile's current recommendation set.
type ProfileAnalytics struct {
	ProfileID            string `json:"profile_id"`
	TotalRecommendations int    `json:"total_recommendations"`

	AverageScore float64 `json:"average_score"`

	TopSkills     []string `json:"top_skills,omitempty"`
	TopCompanies  []string `json:"top_companies,omitempty"`
	TopIndustries []string `json:"top_industries,omitempty"`

	// Trends counts recommendations per confidence tier.
	Trends map[string]int `json:"trends"`

	Engagement EngagementSummary `json:"engagement"`
}

// EngagementSummary counts recorded feedback by reaction.
type EngagementSummary struct {
	Liked    int `json:"liked"`
	Disliked int `json:"disliked"`
	Applied  int `json:"applied"`
	Saved    int `json:"saved"`
	Rejected int `json:"rejected"`
}
