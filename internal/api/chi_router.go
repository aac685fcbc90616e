// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/hybridrank/internal/middleware"
	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	compression   func(http.Handler) http.Handler
}

// NewRouter creates a router. A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) (*Router, error) {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	compression, err := middleware.Compression()
	if err != nil {
		return nil, err
	}
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
		compression:   compression,
	}, nil
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)        // X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, recerr.New(recerr.KindNotFound, "no route for %s", sanitizeLogValue(r.URL.Path)), nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, KindMethodNotAllowed, "method not allowed")
	})

	r.Get("/", router.handler.Info)
	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(router.compression)

		r.Get("/health", router.handler.Health)
		r.Get("/health/live", router.handler.HealthLive)
		r.Get("/health/ready", router.handler.HealthReady)
		r.Get("/status", router.handler.Status)

		r.Get("/recommendations", router.handler.GetRecommendations)
		r.Post("/recommendations", router.handler.PostRecommendations)

		r.Get("/users", router.handler.Users)
		r.Get("/items", router.handler.Items)
		r.Get("/items/{id}/similar", router.handler.SimilarItems)
	})

	return r
}
