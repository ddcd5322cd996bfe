// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package normalize converts raw platform entities into the canonical,
// feature-friendly representation consumed by the scoring engine and the
// training pipeline. Every function here is pure: no side effects, no
// errors — malformed input degrades to a neutral value, never a failure.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/davidm318/jobscout/internal/models"
)

// Degree levels used for the education feature scalar. Matching is by
// substring on the lower-cased degree text.
const (
	LevelDiploma   = 1
	LevelAssociate = 2
	LevelBachelor  = 3
	LevelMaster    = 4
	LevelDoctorate = 5

	// MaxDegreeLevel is the highest recognized level, used to normalize
	// the education scalar into [0,1].
	MaxDegreeLevel = LevelDoctorate
)

// NormalizedProfile is the canonical form of a Profile.
type NormalizedProfile struct {
	ID string

	City    string
	State   string
	Country string
	// HasLocation is false when the source profile carried no location.
	HasLocation bool

	// Skills are lower-cased, deduplicated skill tokens in source order.
	Skills []string

	Experience []NormalizedExperience
	Education  []NormalizedEducation

	// TotalMonths is the summed duration of all experience entries.
	TotalMonths int
}

// NormalizedExperience is the canonical form of one experience entry.
type NormalizedExperience struct {
	Title  string
	Months int
	// Skills are lower-cased, deduplicated tokens for this role.
	Skills []string
}

// NormalizedEducation is the canonical form of one education entry.
type NormalizedEducation struct {
	Degree string
	Field  string
	// Level is the degree level (1-5), 0 when unrecognized.
	Level int
	// Grade is the best-effort numeric grade, 0 when unparseable.
	Grade float64
}

// NormalizedJob is the canonical form of a JobPosting.
type NormalizedJob struct {
	ID    string
	Title string
	// Requirements are lower-cased, deduplicated requirement tokens.
	Requirements []string
	Location     string
	Type         string
	Company      string
	Industry     string
	CompanySize  string
	Schedule     string
	Benefits     []string
	Salary       *models.SalaryRange
	Description  string
}

// Profile canonicalizes a raw profile. The reference time is injected so
// "current" experience durations are deterministic under test.
func Profile(p *models.Profile, now time.Time) NormalizedProfile {
	np := NormalizedProfile{ID: p.ID}

	if p.Location != nil {
		np.HasLocation = p.Location.City != "" || p.Location.State != "" || p.Location.Country != ""
		np.City = Token(p.Location.City)
		np.State = Token(p.Location.State)
		np.Country = Token(p.Location.Country)
	}

	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, s.Name)
	}
	np.Skills = Tokens(skills)

	np.Experience = make([]NormalizedExperience, 0, len(p.Experience))
	for _, e := range p.Experience {
		months := SpanMonths(e.StartDate, e.EndDate, e.Current, now)
		np.Experience = append(np.Experience, NormalizedExperience{
			Title:  Token(e.Title),
			Months: months,
			Skills: Tokens(e.Skills),
		})
		np.TotalMonths += months
	}

	np.Education = make([]NormalizedEducation, 0, len(p.Education))
	for _, e := range p.Education {
		np.Education = append(np.Education, NormalizedEducation{
			Degree: Token(e.Degree),
			Field:  Token(e.Field),
			Level:  DegreeLevel(e.Degree),
			Grade:  ParseGrade(e.Grade),
		})
	}

	return np
}

// Job canonicalizes a raw posting.
func Job(j *models.JobPosting) NormalizedJob {
	return NormalizedJob{
		ID:           j.ID,
		Title:        Token(j.Title),
		Requirements: Tokens(j.Requirements),
		Location:     Token(j.Location),
		Type:         Token(j.Type),
		Company:      Token(j.Company.Name),
		Industry:     Token(j.Company.Industry),
		CompanySize:  Token(j.Company.Size),
		Schedule:     Token(j.Schedule),
		Benefits:     Tokens(j.Benefits),
		Salary:       j.Salary,
		Description:  strings.ToLower(j.Description),
	}
}

// Token lower-cases and trims a single token.
func Token(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Tokens lower-cases, trims and deduplicates a token list, preserving
// first-seen order and dropping empties.
func Tokens(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		t := Token(s)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// SpanMonths converts an experience span to whole months:
// max(0, months(end or now) - months(start)). Current positions and
// entries without an end date run to now.
func SpanMonths(start time.Time, end *time.Time, current bool, now time.Time) int {
	stop := now
	if !current && end != nil {
		stop = *end
	}

	months := (stop.Year()-start.Year())*12 + int(stop.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// DegreeLevel maps degree text to a 1-5 level by substring matching.
// Returns 0 when nothing matches.
func DegreeLevel(degree string) int {
	d := strings.ToLower(degree)
	switch {
	case strings.Contains(d, "phd"), strings.Contains(d, "ph.d"),
		strings.Contains(d, "doctor"):
		return LevelDoctorate
	case strings.Contains(d, "master"), strings.Contains(d, "mba"),
		strings.Contains(d, "m.s"), strings.Contains(d, "msc"):
		return LevelMaster
	case strings.Contains(d, "bachelor"), strings.Contains(d, "b.s"),
		strings.Contains(d, "b.a"), strings.Contains(d, "bsc"):
		return LevelBachelor
	case strings.Contains(d, "associate"):
		return LevelAssociate
	case strings.Contains(d, "diploma"), strings.Contains(d, "certificate"):
		return LevelDiploma
	default:
		return 0
	}
}

// letterGrades maps letter grades to a 4.0 scale.
var letterGrades = map[string]float64{
	"a+": 4.0, "a": 4.0, "a-": 3.7,
	"b+": 3.3, "b": 3.0, "b-": 2.7,
	"c+": 2.3, "c": 2.0, "c-": 1.7,
	"d+": 1.3, "d": 1.0,
	"f": 0.0,
}

// ParseGrade parses a grade that may be numeric ("3.8") or textual ("B+")
// into a best-effort float. Unparseable input yields 0; it never fails.
func ParseGrade(grade string) float64 {
	g := strings.ToLower(strings.TrimSpace(grade))
	if g == "" {
		return 0
	}

	if v, err := strconv.ParseFloat(g, 64); err == nil {
		if v < 0 {
			return 0
		}
		return v
	}

	// Strip common suffixes like "3.8 gpa" or "3.8/4.0".
	if idx := strings.IndexAny(g, " /"); idx > 0 {
		if v, err := strconv.ParseFloat(g[:idx], 64); err == nil && v >= 0 {
			return v
		}
	}

	if v, ok := letterGrades[g]; ok {
		return v
	}
	return 0
}
