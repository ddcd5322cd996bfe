// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package models

import "time"

// JobStatus is the lifecycle state of a posting.
type JobStatus string

const (
	// JobStatusActive means the posting accepts applications.
	JobStatusActive JobStatus = "active"
	// JobStatusClosed means the posting no longer accepts applications.
	JobStatusClosed JobStatus = "closed"
)

// JobPosting is an open position as supplied by the surrounding platform.
// Read-only to the engine.
type JobPosting struct {
	// ID is the platform-assigned posting identifier.
	ID string `json:"id" validate:"required"`

	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`

	// Requirements are free-text skill/requirement tokens.
	Requirements []string `json:"requirements,omitempty"`

	// Type is the employment category (full_time, part_time, contract, ...).
	Type string `json:"type,omitempty"`

	// Location is the posting's location string. Values containing
	// "remote" or "anywhere" are treated as location-independent.
	Location string `json:"location,omitempty"`

	// Salary is the offered range. Optional.
	Salary *SalaryRange `json:"salary,omitempty"`

	// Deadline is the application cutoff. Optional.
	Deadline *time.Time `json:"deadline,omitempty"`

	Company Company `json:"company"`

	Status JobStatus `json:"status"`

	// ExperienceLevel is the seniority band (entry, mid, senior, ...).
	ExperienceLevel string `json:"experience_level,omitempty"`

	// Benefits are free-text benefit tags.
	Benefits []string `json:"benefits,omitempty"`

	// Schedule is the working-hours arrangement (standard, flexible, shift).
	Schedule string `json:"schedule,omitempty"`

	PostedAt time.Time `json:"posted_at"`
}

// SalaryRange is an offered compensation range.
type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
	// Period is the unit of the range (yearly, monthly, hourly).
	Period string `json:"period,omitempty"`
}

// Company is the employer metadata attached to a posting.
type Company struct {
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
	// Size is a size band (startup, small, medium, large, enterprise).
	Size string `json:"size,omitempty"`
}

// Active reports whether the posting currently accepts applications.
func (j *JobPosting) Active() bool {
	return j.Status == JobStatusActive
}
