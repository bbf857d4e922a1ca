// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "discodeck"

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:         "api_request_duration_seconds",
			Help:      "Duration of API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "Number of API requests currently being processed",
		},
	)

	// Recommendation source
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:         "upstream_request_duration_seconds",
			Help:      "Duration of recommendation source calls in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"}, // related_artists, top_tracks, playlist_tracks, follow, save_track, add_to_playlist
	)

	UpstreamRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_request_errors_total",
			Help:      "Total number of failed recommendation source calls",
		},
		[]string{"operation"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_requests_total",
			Help:      "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_consecutive_failures",
			Help:      "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state_transitions_total",
			Help:      "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Deck engine
	DeckRefillPasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deck_refill_passes_total",
			Help:      "Total number of recommendation fetch passes by outcome",
		},
		[]string{"outcome"}, // done, empty, error, discarded
	)

	DeckCandidatesMerged = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deck_candidates_merged_total",
			Help:      "Total number of candidates added to decks",
		},
	)

	DeckEnrichment = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deck_enrichment_total",
			Help:      "Candidate enrichment results",
		},
		[]string{"result"}, // preview, fallback, none, error
	)

	DeckEnrichmentCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deck_enrichment_cache_total",
			Help:      "Preview cache lookups by result",
		},
		[]string{"result"}, // hit, miss
	)

	DeckSwipes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deck_swipes_total",
			Help:      "Total number of swipes by direction",
		},
		[]string{"direction"},
	)

	DeckActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "deck_active_sessions",
			Help:      "Number of live deck sessions",
		},
	)

	// Snapshot store
	StoreWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_writes_total",
			Help:      "Total number of snapshot store writes",
		},
		[]string{"backend", "operation", "result"},
	)

	StoreWriteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:         "store_write_duration_seconds",
			Help:      "Duration of snapshot store writes in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	// Engagement
	EngageActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engage_actions_total",
			Help:      "Engagement side effects executed after a like",
		},
		[]string{"action", "result"}, // action: follow, save_track, add_to_playlist
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamCall records one recommendation source call.
func RecordUpstreamCall(operation string, duration time.Duration, err error) {
	UpstreamRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		UpstreamRequestErrors.WithLabelValues(operation).Inc()
	}
}

// RecordRefill records the outcome of a fetch pass and how many candidates it merged.
func RecordRefill(outcome string, merged int) {
	DeckRefillPasses.WithLabelValues(outcome).Inc()
	if merged > 0 {
		DeckCandidatesMerged.Add(float64(merged))
	}
}

// RecordEnrichment records how a candidate's preview track was chosen.
func RecordEnrichment(result string) {
	DeckEnrichment.WithLabelValues(result).Inc()
}

// RecordEnrichmentCache records a preview cache lookup.
func RecordEnrichmentCache(hit bool) {
	if hit {
		DeckEnrichmentCache.WithLabelValues("hit").Inc()
	} else {
		DeckEnrichmentCache.WithLabelValues("miss").Inc()
	}
}

// RecordSwipe counts a swipe gesture.
func RecordSwipe(direction string) {
	DeckSwipes.WithLabelValues(direction).Inc()
}

// SetActiveSessions sets the live session gauge.
func SetActiveSessions(n int) {
	DeckActiveSessions.Set(float64(n))
}

// RecordStoreWrite records a snapshot store write.
func RecordStoreWrite(backend, operation string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	StoreWrites.WithLabelValues(backend, operation, result).Inc()
	StoreWriteDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

// RecordEngageAction records an engagement side effect.
func RecordEngageAction(action string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	EngageActions.WithLabelValues(action, result).Inc()
}
