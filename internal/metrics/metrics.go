// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Allocation pipeline throughput and stage drops
// - Composite category scoring
// - Quote selection
// - API endpoint latency and throughput

var (
	// Allocation Pipeline Metrics
	AllocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "allocation_duration_seconds",
			Help:    "Duration of allocation pipeline runs in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		},
		[]string{"venue_type"},
	)

	AllocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocations_total",
			Help: "Total number of allocation pipeline runs",
		},
		[]string{"venue_type"},
	)

	AllocationCandidatesIn = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "allocation_candidates_in",
			Help:    "Number of candidates entering the allocation pipeline",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	AllocationCandidatesOut = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "allocation_candidates_out",
			Help:    "Number of candidates selected by the allocation pipeline",
			Buckets: []float64{5, 10, 25, 50, 100, 120, 150},
		},
	)

	AllocationDrops = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocation_drops_total",
			Help: "Total candidates dropped by the allocation pipeline",
		},
		[]string{"stage"}, // "trust", "blacklist", "category_cap", "theme_cap", "global_cap"
	)

	AllocationManualReviewFlagged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "allocation_manual_review_flagged_total",
			Help: "Total selected candidates carrying a manual review flag",
		},
	)

	// Composite Scoring Metrics
	CompositeScores = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "composite_category_scores",
			Help:    "Distribution of composite category scores (0-100)",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
		[]string{"category"},
	)

	// Quote Selection Metrics
	QuoteSelections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_selections_total",
			Help: "Total number of narrative quote selections",
		},
		[]string{"level", "theme"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAllocation records one run of the allocation pipeline.
func RecordAllocation(venueType string, duration time.Duration, in, out int, drops map[string]int) {
	AllocationDuration.WithLabelValues(venueType).Observe(duration.Seconds())
	AllocationsTotal.WithLabelValues(venueType).Inc()
	AllocationCandidatesIn.Observe(float64(in))
	AllocationCandidatesOut.Observe(float64(out))
	for stage, n := range drops {
		if n > 0 {
			AllocationDrops.WithLabelValues(stage).Add(float64(n))
		}
	}
}

// RecordCompositeScore records a composite category score.
func RecordCompositeScore(category string, total int) {
	CompositeScores.WithLabelValues(category).Observe(float64(total))
}

// RecordQuoteSelection records a narrative quote selection.
func RecordQuoteSelection(level, theme string) {
	QuoteSelections.WithLabelValues(level, theme).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
