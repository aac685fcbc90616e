// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package recommend

import (
	"time"

	"github.com/tomtom215/hybridrank/internal/cache"
	"github.com/tomtom215/hybridrank/internal/recommend/artifact"
	"github.com/tomtom215/hybridrank/internal/recommend/catalog"
	"github.com/tomtom215/hybridrank/internal/recommend/embedding"
)

// Request represents a recommendation request.
type Request struct {
	// UserID is the user to generate recommendations for. Unknown users
	// are served through the cold-start path.
	UserID string `json:"user_id"`

	// CandidateIDs restricts scoring to these items. When empty, candidates
	// are generated from the catalog.
	CandidateIDs []string `json:"candidate_ids,omitempty"`

	// TopN is the number of recommendations to return. It must be positive
	// and is clamped to Config.Limits.MaxCount.
	TopN int `json:"top_n"`

	// ExcludeSeen lists items that must not be returned.
	ExcludeSeen []string `json:"exclude_seen,omitempty"`

	// UserFeatures overrides the user's declared features.
	UserFeatures []embedding.Feature `json:"user_features,omitempty"`

	// MineOnly restricts implicit candidates to in-house items.
	// Nil means Config.Candidates.MineOnlyDefault.
	MineOnly *bool `json:"mine_only,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// Recommendation is one ranked item.
type Recommendation struct {
	ItemID string `json:"item_id"`

	// Score is the raw model score.
	Score float64 `json:"score"`

	// Rating maps Score onto 1..5 over every scored candidate.
	Rating float64 `json:"rating"`

	Title    string   `json:"title,omitempty"`
	Category string   `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Level    string   `json:"level,omitempty"`
	Language string   `json:"language,omitempty"`
}

// Response represents a recommendation response.
type Response struct {
	UserID string `json:"user_id"`

	// Count is len(Recommendations).
	Count int `json:"count"`

	// MineOnly is the scope that was applied.
	MineOnly bool `json:"mine_only"`

	// ColdStart is true when the user has no trained latent vector.
	ColdStart bool `json:"cold_start"`

	// Recommendations is ordered by score descending, then item id.
	Recommendations []Recommendation `json:"recommendations"`

	// TotalCandidates is the number of candidates scored.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// LatencyMS is the total recommendation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// ModelName is the artifact's model_name metadata, if any.
	ModelName string `json:"model_name,omitempty"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// SimilarResponse lists items closest to a reference item.
type SimilarResponse struct {
	ItemID string           `json:"item_id"`
	Count  int              `json:"count"`
	Items  []Recommendation `json:"similar_items"`
}

// UserList is a page of known user identifiers.
type UserList struct {
	Users []string `json:"users"`
	Total int      `json:"total"`
}

// ItemList is a page of catalog items.
type ItemList struct {
	Items  []catalog.Item `json:"items"`
	Total  int            `json:"total"`
	Source string         `json:"source,omitempty"`
}

// Status describes the loaded model and serving counters.
type Status struct {
	ModelLoaded    bool          `json:"model_loaded"`
	UsersCount     int           `json:"users_count"`
	ItemsCount     int           `json:"items_count"`
	MineItemsCount int           `json:"mine_items_count"`
	FeaturesCount  int           `json:"features_count"`
	CatalogItems   int           `json:"catalog_items"`
	HistoryUsers   int           `json:"history_users"`
	Dim            int           `json:"dim"`
	Cache          CacheStatus   `json:"cache"`
	ModelInfo      ModelInfo     `json:"model_info"`
	Metrics        Metrics       `json:"metrics"`
	Uptime         time.Duration `json:"uptime_ns"`
}

// CacheStatus reports the response cache.
type CacheStatus struct {
	Enabled bool `json:"enabled"`
	cache.Stats
}

// ModelInfo combines artifact provenance with its free-form metadata.
type ModelInfo struct {
	artifact.Info
	Metadata   map[string]string `json:"metadata,omitempty"`
	Normalized bool              `json:"normalized_items"`
	MemoryMB   float64           `json:"memory_mb"`
}

// Metrics contains engine counters for observability.
type Metrics struct {
	// RequestCount is the total number of recommendation requests.
	RequestCount int64 `json:"request_count"`

	// CacheHits is the number of cache hits.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of cache misses.
	CacheMisses int64 `json:"cache_misses"`

	// ColdStartUsers counts requests for users without a latent vector.
	ColdStartUsers int64 `json:"cold_start_users"`

	// ErrorCount is the total number of failed requests.
	ErrorCount int64 `json:"error_count"`
}
