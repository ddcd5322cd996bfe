// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package models defines the domain entities shared across JobScout.
//
// All entities are explicit tagged structs with named, typed fields. Opaque
// maps are never passed between components; anything crossing a package
// boundary has a type here.
package models

import "time"

// Profile is a job seeker record as supplied by the surrounding platform.
// The engine reads profiles and never mutates them.
type Profile struct {
	// ID is the platform-assigned profile identifier.
	ID string `json:"id" validate:"required"`

	// Name is the display name, used only in logs and analytics.
	Name string `json:"name,omitempty"`

	// Location is the seeker's home location. Optional; scoring falls back
	// to a neutral location match when absent.
	Location *Location `json:"location,omitempty"`

	// Skills is the ordered skill list with endorsement counts.
	Skills []Skill `json:"skills,omitempty"`

	// Education lists completed or in-progress degrees.
	Education []Education `json:"education,omitempty"`

	// Experience lists work history entries, most recent first by convention.
	Experience []Experience `json:"experience,omitempty"`

	// Languages are spoken/written languages.
	Languages []string `json:"languages,omitempty"`

	// Interests are free-text interest tags.
	Interests []string `json:"interests,omitempty"`

	// Availability is a free-text availability note (e.g. "immediate").
	Availability string `json:"availability,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Location is a structured place reference.
type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// Skill is a named skill with its endorsement count.
type Skill struct {
	Name         string `json:"name"`
	Endorsements int    `json:"endorsements,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field,omitempty"`

	// Grade may be numeric ("3.8") or textual ("B+"); normalization parses
	// it best-effort and never fails.
	Grade string `json:"grade,omitempty"`

	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// Experience is a single work history entry.
type Experience struct {
	Title        string     `json:"title"`
	Organization string     `json:"organization"`
	Description  string     `json:"description,omitempty"`
	Location     string     `json:"location,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`

	// Current marks an ongoing position; duration is computed against now.
	Current bool `json:"current,omitempty"`

	// Skills are skill tokens exercised in this role.
	Skills []string `json:"skills,omitempty"`
}
