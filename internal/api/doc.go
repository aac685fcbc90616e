// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

/*
Package api provides the HTTP REST API layer for Hybridrank.

Key Components:

  - Router: chi route configuration and middleware stack
  - Handler: request handlers over a recommend.Engine
  - ResponseWriter: the standard JSON envelope (goccy/go-json)
  - ChiMiddleware: CORS (go-chi/cors) and rate limiting (go-chi/httprate)

Endpoints:

	GET  /                                service info
	GET  /metrics                         Prometheus metrics
	GET  /api/v1/health[/live|/ready]     health probes
	GET  /api/v1/status                   model, cache and counters
	GET  /api/v1/recommendations          query parameters
	POST /api/v1/recommendations          JSON body
	GET  /api/v1/users                    known users, natural order
	GET  /api/v1/items                    catalog items, ?source= filter
	GET  /api/v1/items/{id}/similar       nearest items by cosine similarity

Response Envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}}
	{"success": false, "error": {"kind": "InvalidRequest", "message": "...", "details": {...}}, "meta": {...}}

Error kinds map to status codes: InvalidRequest 400, NotFound 404,
RateLimited 429, ModelUnavailable 503, anything else 500.

Thread Safety:

Handlers hold no mutable state of their own; the engine is safe for
concurrent use.
*/
package api
