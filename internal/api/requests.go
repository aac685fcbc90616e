// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package api

import (
	"github.com/tomtom215/hybridrank/internal/recommend"
	"github.com/tomtom215/hybridrank/internal/recommend/embedding"
)

// Request size limits.
const (
	MaxBodyBytes     = 1 << 20
	MaxListedIDs     = 10000
	MaxUserFeatures  = 1000
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// RecommendRequestBody is the POST /api/v1/recommendations body.
//
// TopN is a pointer so an omitted value can fall back to the configured
// default while an explicit zero is rejected.
type RecommendRequestBody struct {
	UserID       string        `json:"user_id" validate:"entity_id"`
	TopN         *int          `json:"top_n" validate:"omitempty,gte=1"`
	CandidateIDs []string      `json:"candidate_ids" validate:"omitempty,max=10000,dive,entity_id"`
	ExcludeSeen  []string      `json:"exclude_seen" validate:"omitempty,max=10000,dive,entity_id"`
	UserFeatures []FeatureBody `json:"user_features" validate:"omitempty,max=1000,dive"`
	MineOnly     *bool         `json:"mine_only"`
}

// FeatureBody is one declared user feature.
type FeatureBody struct {
	FeatureID string  `json:"feature_id" validate:"entity_id"`
	Weight    float64 `json:"weight"`
}

// toRequest converts the body to an engine request.
func (b *RecommendRequestBody) toRequest(defaultCount int) recommend.Request {
	topN := defaultCount
	if b.TopN != nil {
		topN = *b.TopN
	}
	req := recommend.Request{
		UserID:       b.UserID,
		CandidateIDs: b.CandidateIDs,
		TopN:         topN,
		ExcludeSeen:  b.ExcludeSeen,
		MineOnly:     b.MineOnly,
	}
	if len(b.UserFeatures) > 0 {
		req.UserFeatures = make([]embedding.Feature, len(b.UserFeatures))
		for i, f := range b.UserFeatures {
			req.UserFeatures[i] = embedding.Feature{ID: f.FeatureID, Weight: f.Weight}
		}
	}
	return req
}

// RecommendQuery holds the validated GET /api/v1/recommendations parameters.
type RecommendQuery struct {
	UserID     string   `json:"user_id" validate:"entity_id"`
	Count      int      `json:"count" validate:"gte=1"`
	Candidates []string `json:"candidates" validate:"omitempty,max=10000,dive,entity_id"`
	Exclude    []string `json:"exclude" validate:"omitempty,max=10000,dive,entity_id"`
}

// ListQuery holds validated pagination parameters.
type ListQuery struct {
	Limit  int    `json:"limit" validate:"gte=1,lte=1000"`
	Offset int    `json:"offset" validate:"gte=0"`
	Source string `json:"source" validate:"omitempty,max=64"`
}

// SimilarQuery holds validated similar-items parameters.
type SimilarQuery struct {
	ItemID string `json:"item_id" validate:"entity_id"`
	Count  int    `json:"count" validate:"gte=1"`
}
