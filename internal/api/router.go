// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stedsans/stedsans/internal/metrics"
	"github.com/stedsans/stedsans/internal/middleware"
)

// RouterConfig holds the transport-level knobs for the HTTP API.
type RouterConfig struct {
	CORSOrigins     []string
	RateLimitReqs   int
	RateLimitWindow time.Duration
	RequestTimeout  time.Duration
}

// DefaultRouterConfig returns secure defaults. CORS origins are empty so a
// deployment must opt in explicitly.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CORSOrigins:     []string{},
		RateLimitReqs:   100,
		RateLimitWindow: time.Minute,
		RequestTimeout:  30 * time.Second,
	}
}

// NewRouter assembles the chi router: global request ID, real IP, panic
// recovery, and CORS; rate limiting and Prometheus instrumentation on the
// /api/v1 group. /health and /metrics stay outside the rate limiter so
// probes and scrapes are never shed.
func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", handler.Health)
	r.Get("/health/live", handler.Live)
	r.Get("/health/ready", handler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimitReqs > 0 {
			r.Use(httprate.Limit(
				cfg.RateLimitReqs,
				cfg.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(rateLimitExceeded),
			))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Get("/health", handler.Health)
		r.Post("/allocations", handler.Allocate)
		r.Get("/areas/{areaID}/pois", handler.AreaPOIs)
		r.Get("/areas/{areaID}/categories/{categoryID}/summary", handler.CategorySummary)
		r.Get("/themes", handler.Themes)
		r.Get("/venue-profiles/{venueType}", handler.VenueProfile)
	})

	return r
}

func rateLimitExceeded(w http.ResponseWriter, r *http.Request) {
	metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
	respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests", nil)
}
