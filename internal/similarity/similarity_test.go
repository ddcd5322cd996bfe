// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package similarity

import (
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"both empty", "", "", 1.0},
		{"identical", "javascript", "javascript", 1.0},
		{"identical mixed case", "JavaScript", "javascript", 1.0},
		{"one empty", "go", "", 0.0},
		{"single substitution", "react", "reabt", 0.8},
		{"disjoint", "ab", "xy", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScoreMultiByte(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		// Distances count runes, not bytes. "café" is 4 runes.
		{"accent substitution", "café", "cafe", 0.75},
		{"identical accented", "café", "café", 1.0},
		{"umlaut vs plain", "müller", "muller", 5.0 / 6.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	if !Match("müller", "muller") {
		t.Errorf("Match(müller, muller) = false, want true (score %v)", Score("müller", "muller"))
	}
}

func TestScoreSelfSimilarity(t *testing.T) {
	for _, s := range []string{"", "a", "kubernetes", "Senior Software Engineer", "C++"} {
		if got := Score(s, s); got != 1.0 {
			t.Errorf("Score(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	pairs := [][2]string{
		{"postgres", "postgresql"},
		{"golang", "go"},
		{"data science", "data scientist"},
		{"x", "yyyyyyyyyy"},
	}
	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Score(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want bool
	}{
		{"JavaScript", "javascript", true},
		{"react", "reactjs", false}, // 5/7 ≈ 0.71, below threshold
		{"node.js", "Node.js", true},
		{"python", "java", false},
	}

	for _, tt := range tests {
		if got := Match(tt.a, tt.b); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v (score %v)", tt.a, tt.b, got, tt.want, Score(tt.a, tt.b))
		}
	}
}

func TestMatchAny(t *testing.T) {
	set := []string{"javascript", "react"}

	if !MatchAny("JavaScript", set, DefaultThreshold) {
		t.Error("expected case-insensitive match against set")
	}
	if MatchAny("node.js", set, DefaultThreshold) {
		t.Error("node.js should not match [javascript react]")
	}
	if MatchAny("anything", nil, DefaultThreshold) {
		t.Error("empty set should never match")
	}
}
