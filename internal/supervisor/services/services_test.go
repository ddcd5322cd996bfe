// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/davidm318/jobscout/internal/cache"
)

type countingTrainer struct {
	calls atomic.Int32
	err   error
}

func (c *countingTrainer) Train(_ context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestTrainingServiceTrainsOnStartup(t *testing.T) {
	trainer := &countingTrainer{}
	svc := NewTrainingService(trainer, TrainingServiceConfig{
		TrainOnStartup: true,
		Interval:       time.Hour,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for trainer.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("startup training never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Serve() error = %v, want context.Canceled", err)
	}
}

func TestTrainingServiceScheduledRuns(t *testing.T) {
	trainer := &countingTrainer{err: errors.New("no data yet")}
	svc := NewTrainingService(trainer, TrainingServiceConfig{
		Interval: 10 * time.Millisecond,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for trainer.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("scheduled training did not run twice")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestCacheSweepServiceRemovesExpired(t *testing.T) {
	clock := time.Now()
	c := cache.New(time.Minute, cache.WithClock(func() time.Time { return clock }))
	c.Set("stale", 1)
	clock = clock.Add(2 * time.Minute)

	svc := NewCacheSweepService(c, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for c.GetStats().TotalKeys != 0 {
		select {
		case <-deadline:
			t.Fatal("sweeper never removed the expired entry")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestCacheSweepServiceLogsCounts(t *testing.T) {
	clock := time.Now()
	c := cache.New(time.Minute, cache.WithClock(func() time.Time { return clock }))
	c.Set("stale-a", 1)
	c.Set("stale-b", 2)
	clock = clock.Add(2 * time.Minute)

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	svc := NewCacheSweepService(c, 10*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for c.GetStats().TotalKeys != 0 {
		select {
		case <-deadline:
			t.Fatal("sweeper never removed the expired entries")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done

	out := buf.String()
	if !strings.Contains(out, `"removed":2`) {
		t.Errorf("sweep log missing removed count:\n%s", out)
	}
	if !strings.Contains(out, `"remaining":0`) {
		t.Errorf("sweep log missing remaining count:\n%s", out)
	}
}

type fakeHTTPServer struct {
	listenErr error
	started   chan struct{}
	release   chan struct{}
	shutdowns atomic.Int32
}

func newFakeHTTPServer(listenErr error) *fakeHTTPServer {
	return &fakeHTTPServer{
		listenErr: listenErr,
		started:   make(chan struct{}),
		release:   make(chan struct{}),
	}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	close(f.started)
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.release
	return nil
}

func (f *fakeHTTPServer) Shutdown(_ context.Context) error {
	f.shutdowns.Add(1)
	close(f.release)
	return nil
}

func TestHTTPServerServiceGracefulShutdown(t *testing.T) {
	srv := newFakeHTTPServer(nil)
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-srv.started
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Serve() error = %v, want context.Canceled", err)
	}
	if srv.shutdowns.Load() != 1 {
		t.Errorf("Shutdown called %d times, want 1", srv.shutdowns.Load())
	}
}

func TestHTTPServerServiceListenFailure(t *testing.T) {
	listenErr := errors.New("address in use")
	srv := newFakeHTTPServer(listenErr)
	svc := NewHTTPServerService(srv, time.Second)

	err := svc.Serve(context.Background())
	if !errors.Is(err, listenErr) {
		t.Fatalf("Serve() error = %v, want wrapped listen error", err)
	}
}
