// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

/*
Package middleware provides HTTP middleware components for the application.

All middleware uses the chi signature func(http.Handler) http.Handler.

Key Components:

  - RequestID: UUID-based request tracking, wired into the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip for responses of 1KB or more (klauspost/compress gzhttp)

Usage Example:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Get("/status", handler.Status)
	})

PrometheusMetrics must be installed inside a chi router; outside one every
request is labelled "unmatched".
*/
package middleware
