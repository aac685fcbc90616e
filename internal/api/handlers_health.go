// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/hybridrank/internal/recommend"
)

// ServiceInfo is returned by GET /.
type ServiceInfo struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Status      string    `json:"status"`
	StartupTime time.Time `json:"startup_time"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status      string  `json:"status"`
	Version     string  `json:"version"`
	ModelLoaded bool    `json:"model_loaded"`
	Uptime      float64 `json:"uptime"`
}

// Info handles GET /
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	status := "running"
	if h.engine == nil {
		status = "degraded"
	}
	NewResponseWriter(w, r).Success(ServiceInfo{
		Name:        ServiceName,
		Version:     h.version,
		Status:      status,
		StartupTime: h.startTime,
	})
}

// Health handles GET /api/v1/health
// It always answers 200; status is "degraded" without a model.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if h.engine == nil {
		status = "degraded"
	}
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:      status,
		Version:     h.version,
		ModelLoaded: h.engine != nil,
		Uptime:      time.Since(h.startTime).Seconds(),
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of the model.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]any{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only when a model is loaded and 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		respondError(w, r, ErrNoEngine, map[string]any{"ready_to_serve": false})
		return
	}
	NewResponseWriter(w, r).Success(map[string]any{
		"ready_to_serve": true,
		"uptime":         time.Since(h.startTime).Seconds(),
	})
}

// Status handles GET /api/v1/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if h.engine == nil {
		NewResponseWriter(w, r).Success(recommend.Status{ModelLoaded: false})
		return
	}
	NewResponseWriter(w, r).Success(h.engine.Status())
}
