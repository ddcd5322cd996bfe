// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package similarity provides normalized fuzzy string matching used by the
// scoring engine and the training pipeline to treat near-identical tokens
// (skill names, job titles) as equivalent despite spelling and casing
// differences.
package similarity

import "strings"

// DefaultThreshold is the similarity at or above which two tokens are
// considered equivalent.
const DefaultThreshold = 0.8

// Score returns the normalized Levenshtein similarity between a and b:
//
//	(max(len(a),len(b)) - editDistance(a,b)) / max(len(a),len(b))
//
// The result lies in [0,1]. Two empty strings score 1.0. Comparison is
// case-insensitive.
func Score(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1.0
	}

	return float64(longest-editDistance(ra, rb)) / float64(longest)
}

// Match reports whether a and b are equivalent at the default threshold.
func Match(a, b string) bool {
	return Score(a, b) >= DefaultThreshold
}

// MatchAny reports whether token is equivalent to any element of set at
// the given threshold.
func MatchAny(token string, set []string, threshold float64) bool {
	for _, s := range set {
		if Score(token, s) >= threshold {
			return true
		}
	}
	return false
}

// editDistance computes the Levenshtein distance between two rune slices
// with a full DP matrix. Inputs are expected to be short tokens, so the
// quadratic cost is irrelevant. Operating on runes keeps distances
// correct for multi-byte characters in skill and title names.
func editDistance(s1, s2 []rune) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
	}
	for i := 0; i <= len(s1); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}
	return matrix[len(s1)][len(s2)]
}
