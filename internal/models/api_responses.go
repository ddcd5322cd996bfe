// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints.
//
// Success:
//
//	{
//	  "status": "success",
//	  "data": {...},
//	  "metadata": {"timestamp": "2026-08-29T12:00:00Z"}
//	}
//
// Error:
//
//	{
//	  "status": "error",
//	  "error": {"code": "NOT_FOUND", "message": "profile not found"},
//	  "metadata": {"timestamp": "2026-08-29T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	// LatencyMS is the server-side processing time in milliseconds.
	LatencyMS int64 `json:"latency_ms,omitempty"`
	// Cached reports whether the payload was served from the
	// recommendation cache.
	Cached bool `json:"cached,omitempty"`
}

// APIError carries structured error details.
//
// Common codes: VALIDATION_ERROR, NOT_FOUND, TRAINING_IN_PROGRESS,
// INSUFFICIENT_DATA, INTERNAL_ERROR, RATE_LIMIT_EXCEEDED.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
