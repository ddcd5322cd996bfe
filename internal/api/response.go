// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package api provides the HTTP surface: chi routing, middleware, and
// the handlers that translate engine results and errors into the
// standardized response envelope.
package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/davidm318/jobscout/internal/logging"
	"github.com/davidm318/jobscout/internal/models"
)

// Error codes returned in the envelope.
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeTrainingInProgress = "TRAINING_IN_PROGRESS"
	ErrCodeInsufficientData   = "INSUFFICIENT_DATA"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
)

// responder carries per-request state for building the envelope.
type responder struct {
	w     http.ResponseWriter
	r     *http.Request
	start time.Time
}

func newResponder(w http.ResponseWriter, r *http.Request) *responder {
	return &responder{w: w, r: r, start: time.Now()}
}

// Success writes a 200 envelope.
func (rs *responder) Success(data interface{}) {
	rs.write(http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: rs.metadata(false),
	})
}

// Created writes a 201 envelope.
func (rs *responder) Created(data interface{}) {
	rs.write(http.StatusCreated, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: rs.metadata(false),
	})
}

// Cached writes a 200 envelope flagged as served from cache.
func (rs *responder) Cached(data interface{}) {
	rs.write(http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: rs.metadata(true),
	})
}

// Error writes an error envelope with the given HTTP status.
func (rs *responder) Error(status int, apiErr *models.APIError) {
	rs.write(status, &models.APIResponse{
		Status:   "error",
		Error:    apiErr,
		Metadata: rs.metadata(false),
	})
}

// ErrorMessage is shorthand for an error without structured details.
func (rs *responder) ErrorMessage(status int, code, message string) {
	rs.Error(status, &models.APIError{Code: code, Message: message})
}

func (rs *responder) metadata(cached bool) models.Metadata {
	return models.Metadata{
		Timestamp: time.Now().UTC(),
		LatencyMS: time.Since(rs.start).Milliseconds(),
		Cached:    cached,
	}
}

func (rs *responder) write(status int, resp *models.APIResponse) {
	rs.w.Header().Set("Content-Type", "application/json")
	rs.w.WriteHeader(status)
	if err := json.NewEncoder(rs.w).Encode(resp); err != nil {
		logger := logging.LoggerFromContext(rs.r.Context())
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

// decodeJSON parses a request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
