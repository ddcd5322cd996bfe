// JobScout - Job Matching and Recommendation Engine
// Copyright 2026 David M. (davidm318)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/davidm318/jobscout

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidm318/jobscout/internal/config"
)

// NewRouter assembles the HTTP routes. Health and metrics bypass rate
// limiting so monitoring keeps working under load.
func NewRouter(h *Handlers, cfg config.APIConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogging())

	r.Get("/health", h.Health)
	r.Get("/health/live", h.Liveness)
	r.Get("/health/ready", h.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Metrics())
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimitReqs, cfg.RateLimitWindow))
		}

		r.Post("/recommendations", h.Recommendations)
		r.Get("/recommendations/status", h.TrainingStatus)
		r.Post("/train", h.Train)
		r.Post("/feedback", h.Feedback)
		r.Get("/analytics/{profileID}", h.Analytics)

		r.Post("/profiles", h.CreateProfile)
		r.Post("/jobs", h.CreateJob)
		r.Post("/outcomes", h.CreateOutcome)
	})

	return r
}
