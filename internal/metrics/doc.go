// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

/*
Package metrics provides Prometheus metrics for Discodeck.

All collectors are registered on the default registry via promauto and
exposed at /metrics:

	curl http://localhost:3858/metrics

# Available Metrics

HTTP API:
  - api_requests_total{method, endpoint, status}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Recommendation source:
  - upstream_request_duration_seconds{operation}
  - upstream_request_errors_total{operation}
  - circuit_breaker_state{name}, circuit_breaker_requests_total{name, result},
    circuit_breaker_consecutive_failures{name},
    circuit_breaker_state_transitions_total{name, from_state, to_state}

Deck engine:
  - deck_refill_passes_total{outcome}
  - deck_candidates_merged_total
  - deck_enrichment_total{result}
  - deck_enrichment_cache_total{result}
  - deck_swipes_total{direction}
  - deck_active_sessions

Snapshot store:
  - store_writes_total{backend, operation, result}
  - store_write_duration_seconds{backend, operation}

Engagement:
  - engage_actions_total{action, result}
*/
package metrics
