// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// Package config provides centralized, layered configuration for all
// JobScout components.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Config is immutable after Load() and safe for concurrent read access
// from multiple goroutines.
package config

import (
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Store     StoreConfig     `koanf:"store"`
	Cache     CacheConfig     `koanf:"cache"`
	Recommend RecommendConfig `koanf:"recommend"`
	Training  TrainingConfig  `koanf:"training"`
	API       APIConfig       `koanf:"api"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// StoreConfig holds Badger storage settings.
type StoreConfig struct {
	// Path is the Badger data directory. Empty selects in-memory mode,
	// which is intended for tests only.
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
	// ModelPath is the directory for trained model artifacts.
	ModelPath string `koanf:"model_path"`
}

// CacheConfig holds recommendation cache settings.
type CacheConfig struct {
	TTL           time.Duration `koanf:"ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	MaxEntries    int           `koanf:"max_entries" validate:"gte=0"`
}

// RecommendConfig holds scoring engine settings.
type RecommendConfig struct {
	// MaxCandidates caps the job pool considered per request.
	MaxCandidates int `koanf:"max_candidates" validate:"gt=0"`
	// MinScore is the relevance threshold below which matches are dropped.
	MinScore     float64 `koanf:"min_score" validate:"gte=0,lte=1"`
	DefaultLimit int     `koanf:"default_limit" validate:"gt=0"`
	MaxLimit     int     `koanf:"max_limit" validate:"gt=0"`
	// Workers bounds parallel candidate scoring. 0 means runtime.NumCPU().
	Workers int `koanf:"workers" validate:"gte=0"`
}

// TrainingConfig holds model training settings.
type TrainingConfig struct {
	Epochs          int           `koanf:"epochs" validate:"gt=0"`
	BatchSize       int           `koanf:"batch_size" validate:"gt=0"`
	LearningRate    float64       `koanf:"learning_rate" validate:"gt=0"`
	ValidationSplit float64       `koanf:"validation_split" validate:"gte=0,lt=1"`
	Regularization  float64       `koanf:"regularization" validate:"gte=0,lt=1"`
	HiddenLayers    []int         `koanf:"hidden_layers"`
	MinRecords      int           `koanf:"min_records" validate:"gt=0"`
	SyntheticTarget int           `koanf:"synthetic_target" validate:"gt=0"`
	TrainOnStartup  bool          `koanf:"train_on_startup"`
	Interval        time.Duration `koanf:"interval"`
	// RetrainMinInterval rate limits manual retrain requests.
	RetrainMinInterval time.Duration `koanf:"retrain_min_interval"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	RateLimitReqs   int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all defaults applied. These are
// layered first, then overridden by config file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8340,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Path:      "/data/jobscout",
			InMemory:  false,
			ModelPath: "/data/jobscout/models",
		},
		Cache: CacheConfig{
			TTL:           time.Hour,
			SweepInterval: 5 * time.Minute,
			MaxEntries:    10000,
		},
		Recommend: RecommendConfig{
			MaxCandidates: 50,
			MinScore:      0.3,
			DefaultLimit:  10,
			MaxLimit:      50,
			Workers:       0, // 0 = use runtime.NumCPU()
		},
		Training: TrainingConfig{
			Epochs:             50,
			BatchSize:          32,
			LearningRate:       0.001,
			ValidationSplit:    0.2,
			Regularization:     0.3,
			HiddenLayers:       []int{128, 64, 32},
			MinRecords:         10,
			SyntheticTarget:    50,
			TrainOnStartup:     false,
			Interval:           24 * time.Hour,
			RetrainMinInterval: time.Minute,
		},
		API: APIConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
