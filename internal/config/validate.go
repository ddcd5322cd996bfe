// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags plus cross-field constraints that tags
// cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			ve := verrs[0]
			return fmt.Errorf("invalid config field %s: failed %q constraint", ve.Namespace(), ve.Tag())
		}
		return fmt.Errorf("config validation: %w", err)
	}

	if c.Recommend.DefaultLimit > c.Recommend.MaxLimit {
		return fmt.Errorf("recommend.default_limit %d exceeds recommend.max_limit %d",
			c.Recommend.DefaultLimit, c.Recommend.MaxLimit)
	}

	if len(c.Training.HiddenLayers) == 0 {
		return errors.New("training.hidden_layers must name at least one layer")
	}
	for i, width := range c.Training.HiddenLayers {
		if width <= 0 {
			return fmt.Errorf("training.hidden_layers[%d] must be positive, got %d", i, width)
		}
	}

	if !c.Store.InMemory && c.Store.Path == "" {
		return errors.New("store.path is required unless store.in_memory is set")
	}
	if c.Store.ModelPath == "" {
		return errors.New("store.model_path is required")
	}

	if c.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be positive")
	}
	if c.Cache.SweepInterval <= 0 {
		return errors.New("cache.sweep_interval must be positive")
	}

	return nil
}
