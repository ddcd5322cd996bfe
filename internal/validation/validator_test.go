// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	ProfileID string `validate:"required"`
	Limit     int    `validate:"gte=0,lte=50"`
	Tier      string `validate:"omitempty,oneof=high medium low"`
}

func TestStructValid(t *testing.T) {
	req := sampleRequest{ProfileID: "p1", Limit: 10, Tier: "high"}
	if err := Struct(&req); err != nil {
		t.Fatalf("Struct() error = %v, want nil", err)
	}
}

func TestStructSingleFailure(t *testing.T) {
	req := sampleRequest{Limit: 10}
	err := Struct(&req)
	if err == nil {
		t.Fatal("Struct() returned nil for missing required field")
	}

	fields := err.Fields()
	if len(fields) != 1 {
		t.Fatalf("got %d field errors, want 1", len(fields))
	}
	if fields[0].Field != "ProfileID" || fields[0].Tag != "required" {
		t.Errorf("unexpected field error: %+v", fields[0])
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %s, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message != "ProfileID is required" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "ProfileID" {
		t.Errorf("Details = %v", apiErr.Details)
	}
}

func TestStructMultipleFailures(t *testing.T) {
	req := sampleRequest{Limit: 900, Tier: "extreme"}
	err := Struct(&req)
	if err == nil {
		t.Fatal("Struct() returned nil for invalid payload")
	}
	if got := len(err.Fields()); got != 3 {
		t.Fatalf("got %d field errors, want 3", got)
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %s, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "Limit must be at most 50") {
		t.Errorf("Message missing limit failure: %q", apiErr.Message)
	}
	if !strings.Contains(apiErr.Message, "Tier must be one of: high medium low") {
		t.Errorf("Message missing tier failure: %q", apiErr.Message)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Errorf("Details missing fields list: %v", apiErr.Details)
	}
}
