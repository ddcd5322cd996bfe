// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

// JobScout matches job seeker profiles against open postings. It scores
// every candidate pairing on eight weighted factors, blends in a model
// trained on hiring outcomes, and serves ranked, explained
// recommendations over HTTP.
//
// Configuration comes from defaults, an optional YAML file (CONFIG_PATH
// or ./config.yaml), and environment variables, in that order. Run with
// all defaults:
//
//	jobscout-server
//
// The server handles graceful shutdown on SIGINT and SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davidm318/jobscout/internal/api"
	"github.com/davidm318/jobscout/internal/cache"
	"github.com/davidm318/jobscout/internal/config"
	"github.com/davidm318/jobscout/internal/feedback"
	"github.com/davidm318/jobscout/internal/logging"
	"github.com/davidm318/jobscout/internal/recommend"
	"github.com/davidm318/jobscout/internal/recommend/training"
	"github.com/davidm318/jobscout/internal/store"
	"github.com/davidm318/jobscout/internal/supervisor"
	"github.com/davidm318/jobscout/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("store_path", cfg.Store.Path).
		Bool("in_memory", cfg.Store.InMemory).
		Int("port", cfg.Server.Port).
		Msg("starting jobscout")

	st, err := store.Open(cfg.Store)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("error closing store")
		}
	}()

	recCache := cache.New(cfg.Cache.TTL, cache.WithMaxEntries(cfg.Cache.MaxEntries))

	artifacts, err := training.NewArtifactStore(cfg.Store.ModelPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open model store")
	}
	pipeline := training.NewPipeline(st, artifacts, cfg.Training, logging.Logger(), 0)

	engine := recommend.NewEngine(cfg.Recommend, st, recCache, pipeline, artifacts, logging.Logger())
	recorder := feedback.NewRecorder(st, recCache, logging.Logger())

	handlers := api.NewHandlers(engine, recorder, st, cfg.Training.RetrainMinInterval, logging.Logger())
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewRouter(handlers, cfg.API),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)

	tree.AddBackgroundService(services.NewTrainingService(engine, services.TrainingServiceConfig{
		TrainOnStartup: cfg.Training.TrainOnStartup,
		Interval:       cfg.Training.Interval,
	}, logging.Logger()))
	tree.AddBackgroundService(services.NewCacheSweepService(recCache, cfg.Cache.SweepInterval, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("http server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("shutting down, waiting for services to stop")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
	}

	logging.Info().Msg("stopped")
}
