// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package validation wraps go-playground/validator v10 behind a
// thread-safe singleton and translates failures into the API's
// VALIDATION_ERROR shape.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/davidm318/jobscout/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single field validation failure.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   interface{}
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// RequestError aggregates the field failures of one request payload.
type RequestError struct {
	fields []FieldError
}

// Fields returns the individual failures.
func (e *RequestError) Fields() []FieldError {
	return e.fields
}

func (e *RequestError) Error() string {
	if len(e.fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.fields))
	for i, f := range e.fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// ToAPIError converts the failures to the standard error payload.
func (e *RequestError) ToAPIError() *models.APIError {
	switch len(e.fields) {
	case 0:
		return &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
		}
	case 1:
		f := e.fields[0]
		return &models.APIError{
			Code:    "VALIDATION_ERROR",
			Message: f.Message,
			Details: map[string]interface{}{
				"field": f.Field,
				"tag":   f.Tag,
			},
		}
	}

	fields := make([]map[string]interface{}, len(e.fields))
	msgs := make([]string, len(e.fields))
	for i, f := range e.fields {
		fields[i] = map[string]interface{}{
			"field":   f.Field,
			"tag":     f.Tag,
			"message": f.Message,
		}
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return &models.APIError{
		Code:    "VALIDATION_ERROR",
		Message: strings.Join(msgs, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// Validator returns the shared instance. The instance caches struct
// metadata, so handlers reuse it instead of constructing their own.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Struct validates a request payload. Returns nil on success or a
// *RequestError describing every failed field.
func Struct(s interface{}) *RequestError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestError{fields: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	fields := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: translate(fe),
		}
	}
	return &RequestError{fields: fields}
}

var messageTemplates = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"datetime": "%s must be a valid RFC3339 timestamp",
}

var messageTemplatesWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"min":   "%s must be at least %s",
	"max":   "%s must be at most %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translate(fe validator.FieldError) string {
	if tmpl, ok := messageTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field())
	}
	if tmpl, ok := messageTemplatesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(tmpl, fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
}
