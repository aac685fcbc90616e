// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package api

import (
	"time"

	"github.com/tomtom215/hybridrank/internal/recommend"
)

// ServiceName is reported by the service info endpoint.
const ServiceName = "Hybridrank Recommendation API"

// DefaultRequestTimeout bounds a single recommendation call.
const DefaultRequestTimeout = 10 * time.Second

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: query parsing and validation helpers
//   - handlers_health.go: service info, health and status endpoints
//   - handlers_recommend.go: recommendation, listing and similar-items endpoints
type Handler struct {
	engine         *recommend.Engine
	version        string
	startTime      time.Time
	requestTimeout time.Duration
}

// NewHandler creates a new API handler.
//
// engine may be nil when the model failed to load; recommendation
// endpoints then answer 503 ModelUnavailable while health and info keep
// working.
func NewHandler(engine *recommend.Engine, version string) *Handler {
	if version == "" {
		version = "dev"
	}
	return &Handler{
		engine:         engine,
		version:        version,
		startTime:      time.Now().UTC(),
		requestTimeout: DefaultRequestTimeout,
	}
}

// defaultCount is the count used when a request omits it.
func (h *Handler) defaultCount() int {
	return h.engine.GetConfig().Limits.DefaultCount
}
