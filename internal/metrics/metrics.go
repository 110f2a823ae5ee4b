// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package metrics provides Prometheus instrumentation for CineRec:
// HTTP endpoint latency and throughput, catalog load health, recommendation
// pipeline latency, enrichment outcomes, and circuit breaker state.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Catalog Metrics
	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Number of movies in the current catalog snapshot",
		},
	)

	CatalogRowsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rows_dropped_total",
			Help: "Total number of malformed catalog rows dropped during load",
		},
	)

	CatalogLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Total number of catalog load attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	// Recommendation Metrics
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation pipeline runs in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	RecommendRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests processed",
		},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidates",
			Help:    "Number of candidate movies scored per request",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
	)

	// Enrichment Metrics
	EnrichmentRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_requests_total",
			Help: "Total number of movie-info enrichment lookups",
		},
		[]string{"outcome"}, // "success", "cached", "failure", "rejected", "disabled"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// History Store Metrics
	HistoryStoreOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "history_store_operations_total",
			Help: "Total number of watch-history store operations",
		},
		[]string{"operation", "result"},
	)
)

// ObserveHTTPRequest records duration and count for a completed HTTP request.
func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
}
