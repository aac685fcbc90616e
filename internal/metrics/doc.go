// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

/*
Package metrics provides Prometheus metrics for the recommendation service.

Collectors are registered on the default registry with promauto and exposed
at /metrics:

	curl http://localhost:5000/metrics

# Available Metrics

API Metrics:
  - hybridrank_api_requests_total: requests (counter)
    Labels: method, endpoint, status_code
  - hybridrank_api_request_duration_seconds: latency (histogram)
    Labels: method, endpoint
  - hybridrank_api_active_requests: in-flight requests (gauge)

Recommendation Metrics:
  - hybridrank_recommendations_total: calls by outcome (counter)
    Labels: outcome (ok, empty, cached, invalid, error)
  - hybridrank_recommendation_duration_seconds: engine latency (histogram)
  - hybridrank_candidates_scored: candidates scored per call (histogram)
  - hybridrank_cold_start_total: entities without latent vectors (counter)
    Labels: entity (user, item)

Cache Metrics:
  - hybridrank_cache_hits_total, hybridrank_cache_misses_total (counter)
  - hybridrank_cache_entries (gauge)
    Labels: cache

Model Metrics:
  - hybridrank_model_entities: users, items, features, mine_items (gauge)
  - hybridrank_model_load_duration_seconds (gauge)
  - hybridrank_model_size_bytes (gauge)
  - hybridrank_model_info: always 1 (gauge)
    Labels: format_version, checksum (first 12 hex digits), source

# Usage

	metrics.RecordAPIRequest("GET", "/api/v1/recommendations", "200", elapsed)
	metrics.RecordRecommendation(metrics.OutcomeOK, elapsed, scored)
	metrics.RecordCacheLookup("recommendations", hit)

Endpoint labels use chi route patterns, not raw paths, to keep cardinality
bounded.
*/
package metrics
