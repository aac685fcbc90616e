// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - API endpoint latency and throughput
// - recommendation outcomes and candidate volume
// - response cache efficiency
// - the loaded model

const namespace = "hybridrank"

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Duration of API requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "Number of API requests currently being served",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Total recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "empty", "cached", "invalid", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_duration_seconds",
			Help:      "Time spent producing a recommendation response",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	CandidatesScored = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "candidates_scored",
			Help:      "Number of candidates scored per request",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8), // 1 .. 16384
		},
	)

	ColdStartTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cold_start_total",
			Help:      "Entities scored without a trained latent vector",
		},
		[]string{"entity"}, // "user", "item"
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total cache misses",
		},
		[]string{"cache"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Current number of cache entries",
		},
		[]string{"cache"},
	)

	// Model Metrics
	ModelEntities = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_entities",
			Help:      "Entities in the loaded model",
		},
		[]string{"kind"}, // "users", "items", "features", "mine_items"
	)

	ModelLoadDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_load_duration_seconds",
			Help:      "Time taken to load the model artifact at startup",
		},
	)

	ModelSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_size_bytes",
			Help:      "Size of the model artifact payload and in-memory matrices",
		},
	)

	ModelInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_info",
			Help:      "Loaded model description; the value is always 1",
		},
		[]string{"format_version", "checksum", "source"},
	)
)

// Recommendation outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeCached  = "cached"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
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

// RecordRecommendation records one recommendation call. scored is ignored
// for cached and failed outcomes.
func RecordRecommendation(outcome string, duration time.Duration, scored int) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
	if outcome == OutcomeOK || outcome == OutcomeEmpty {
		CandidatesScored.Observe(float64(scored))
	}
}

// RecordColdStart counts an entity served without a latent vector.
func RecordColdStart(entity string, n int) {
	if n > 0 {
		ColdStartTotal.WithLabelValues(entity).Add(float64(n))
	}
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
	} else {
		CacheMisses.WithLabelValues(cache).Inc()
	}
}

// UpdateCacheEntries sets the current size of a cache.
func UpdateCacheEntries(cache string, n int) {
	CacheEntries.WithLabelValues(cache).Set(float64(n))
}

// ModelStats describes a loaded model for RecordModelLoad.
type ModelStats struct {
	Users         int
	Items         int
	Features      int
	MineItems     int
	FormatVersion int
	Checksum      string
	Source        string
	SizeBytes     int64
	LoadDuration  time.Duration
}

// RecordModelLoad publishes the model gauges. It is called once at startup.
func RecordModelLoad(s ModelStats) {
	ModelEntities.WithLabelValues("users").Set(float64(s.Users))
	ModelEntities.WithLabelValues("items").Set(float64(s.Items))
	ModelEntities.WithLabelValues("features").Set(float64(s.Features))
	ModelEntities.WithLabelValues("mine_items").Set(float64(s.MineItems))
	ModelLoadDuration.Set(s.LoadDuration.Seconds())
	ModelSizeBytes.Set(float64(s.SizeBytes))

	checksum := s.Checksum
	if len(checksum) > 12 {
		checksum = checksum[:12]
	}
	ModelInfo.Reset()
	ModelInfo.WithLabelValues(strconv.Itoa(s.FormatVersion), checksum, s.Source).Set(1)
}
