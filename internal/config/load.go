// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/jobscout/config.yaml",
	"/etc/jobscout/config.yml",
}

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config File: optional YAML config file (if present)
//  3. Environment Variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Environment variable names map to koanf paths:
	// HTTP_PORT -> server.port, TRAINING_EPOCHS -> training.epochs
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processIntSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns empty string when none is found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// intSliceConfigPaths defines which config paths are parsed as
// comma-separated integer lists when set via environment.
var intSliceConfigPaths = []string{
	"training.hidden_layers",
}

// processIntSliceFields converts comma-separated strings into int slices
// for known slice fields. Env vars come in as strings, but the config
// expects slices.
func processIntSliceFields(k *koanf.Koanf) error {
	for _, path := range intSliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		layers := make([]int, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			n, err := strconv.Atoi(p)
			if err != nil {
				return fmt.Errorf("invalid value %q for %s: %w", p, path, err)
			}
			layers = append(layers, n)
		}
		if len(layers) > 0 {
			if err := k.Set(path, layers); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables return empty string and are skipped, which keeps
// unrelated environment noise out of the config.
func envTransformFunc(key string) string {
	envMappings := map[string]string{
		// Server mappings
		"http_host":             "server.host",
		"http_port":             "server.port",
		"http_read_timeout":     "server.read_timeout",
		"http_write_timeout":    "server.write_timeout",
		"http_shutdown_timeout": "server.shutdown_timeout",

		// Store mappings
		"store_path":       "store.path",
		"store_in_memory":  "store.in_memory",
		"store_model_path": "store.model_path",

		// Cache mappings
		"cache_ttl":            "cache.ttl",
		"cache_sweep_interval": "cache.sweep_interval",
		"cache_max_entries":    "cache.max_entries",

		// Recommendation engine mappings
		"recommend_max_candidates": "recommend.max_candidates",
		"recommend_min_score":      "recommend.min_score",
		"recommend_default_limit":  "recommend.default_limit",
		"recommend_max_limit":      "recommend.max_limit",
		"recommend_workers":        "recommend.workers",

		// Training mappings
		"training_epochs":               "training.epochs",
		"training_batch_size":           "training.batch_size",
		"training_learning_rate":        "training.learning_rate",
		"training_validation_split":     "training.validation_split",
		"training_regularization":       "training.regularization",
		"training_hidden_layers":        "training.hidden_layers",
		"training_min_records":          "training.min_records",
		"training_synthetic_target":     "training.synthetic_target",
		"training_on_startup":           "training.train_on_startup",
		"training_interval":             "training.interval",
		"training_retrain_min_interval": "training.retrain_min_interval",

		// API mappings
		"rate_limit_requests": "api.rate_limit_requests",
		"rate_limit_window":   "api.rate_limit_window",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
