// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package artifact

import (
	"fmt"

	"github.com/tomtom215/hybridrank/internal/recommend/embedding"
	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
)

// FormatVersion is the artifact schema version this build writes.
const FormatVersion = 1

// supportedVersions lists every schema version this build can read.
var supportedVersions = map[int]bool{1: true}

// Artifact is the serialized form of a trained model.
//
// Index maps must be dense permutations of 0..n-1; row i of a factor
// matrix belongs to the identifier mapped to i.
type Artifact struct {
	FormatVersion int `json:"format_version"`
	Dim           int `json:"dim"`

	UserIndex   map[string]int `json:"user_index"`
	ItemIndex   map[string]int `json:"item_index"`
	UserFactors [][]float32    `json:"user_factors"`
	ItemFactors [][]float32    `json:"item_factors"`
	UserBiases  []float32      `json:"user_biases"`
	ItemBiases  []float32      `json:"item_biases"`

	FeatureIndex       map[string]int                 `json:"feature_index,omitempty"`
	UserFeatureFactors [][]float32                    `json:"user_feature_factors,omitempty"`
	ItemFeatureFactors [][]float32                    `json:"item_feature_factors,omitempty"`
	UserFeatures       map[string][]embedding.Feature `json:"user_features,omitempty"`
	ItemFeatures       map[string][]embedding.Feature `json:"item_features,omitempty"`

	Items        []ItemRecord        `json:"items,omitempty"`
	Interactions map[string][]string `json:"interactions,omitempty"`
	Metadata     map[string]string   `json:"metadata,omitempty"`
}

// ItemRecord is catalog metadata carried alongside the factors.
type ItemRecord struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	Category string   `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Level    string   `json:"level,omitempty"`
	Language string   `json:"language,omitempty"`
	Source   string   `json:"source,omitempty"`
}

// Params validates the artifact layout and converts it to store parameters.
// All failures are ArtifactCorrupt.
func (a *Artifact) Params(normalizeItems bool) (*embedding.Params, error) {
	if a.FormatVersion == 0 {
		return nil, recerr.Corrupt("format_version is missing")
	}
	if !supportedVersions[a.FormatVersion] {
		return nil, recerr.Corrupt("unsupported format_version %d", a.FormatVersion)
	}
	if a.Dim <= 0 {
		return nil, recerr.Corrupt("dim must be positive, got %d", a.Dim)
	}
	if len(a.UserIndex) == 0 {
		return nil, recerr.Corrupt("user_index is empty")
	}
	if len(a.ItemIndex) == 0 {
		return nil, recerr.Corrupt("item_index is empty")
	}

	p := &embedding.Params{
		Dim:            a.Dim,
		UserBiases:     a.UserBiases,
		ItemBiases:     a.ItemBiases,
		UserFeatures:   a.UserFeatures,
		ItemFeatures:   a.ItemFeatures,
		NormalizeItems: normalizeItems,
	}

	var err error
	if p.UserIDs, err = orderedIDs("user_index", a.UserIndex); err != nil {
		return nil, err
	}
	if p.ItemIDs, err = orderedIDs("item_index", a.ItemIndex); err != nil {
		return nil, err
	}
	if p.UserFactors, err = flatten("user_factors", a.UserFactors, len(p.UserIDs), a.Dim); err != nil {
		return nil, err
	}
	if p.ItemFactors, err = flatten("item_factors", a.ItemFactors, len(p.ItemIDs), a.Dim); err != nil {
		return nil, err
	}
	if len(a.FeatureIndex) > 0 {
		if p.FeatureIDs, err = orderedIDs("feature_index", a.FeatureIndex); err != nil {
			return nil, err
		}
	}
	if a.UserFeatureFactors != nil {
		if p.UserFeatureFactors, err = flatten("user_feature_factors", a.UserFeatureFactors, len(p.FeatureIDs), a.Dim); err != nil {
			return nil, err
		}
	}
	if a.ItemFeatureFactors != nil {
		if p.ItemFeatureFactors, err = flatten("item_feature_factors", a.ItemFeatureFactors, len(p.FeatureIDs), a.Dim); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Store validates the artifact and builds an embedding store from it.
func (a *Artifact) Store(normalizeItems bool) (*embedding.Store, error) {
	p, err := a.Params(normalizeItems)
	if err != nil {
		return nil, err
	}
	s, err := embedding.New(p)
	if err != nil {
		return nil, recerr.Wrap(recerr.KindArtifactCorrupt, err, "invalid model")
	}
	return s, nil
}

// orderedIDs inverts an id->index map, requiring indices 0..n-1 exactly once.
func orderedIDs(field string, index map[string]int) ([]string, error) {
	ids := make([]string, len(index))
	for id, i := range index {
		if i < 0 || i >= len(ids) {
			return nil, recerr.Corrupt("%s: index %d for %q out of range [0,%d)", field, i, id, len(ids))
		}
		if ids[i] != "" {
			return nil, recerr.Corrupt("%s: index %d assigned to both %q and %q", field, i, ids[i], id)
		}
		if id == "" {
			return nil, recerr.Corrupt("%s: empty identifier", field)
		}
		ids[i] = id
	}
	return ids, nil
}

func flatten(field string, rows [][]float32, n, dim int) ([]float32, error) {
	if len(rows) != n {
		return nil, recerr.Corrupt("%s: %d rows, want %d", field, len(rows), n)
	}
	out := make([]float32, 0, n*dim)
	for i, row := range rows {
		if len(row) != dim {
			return nil, recerr.Corrupt("%s: row %d has dimension %d, want %d", field, i, len(row), dim)
		}
		out = append(out, row...)
	}
	return out, nil
}

// Summary is a short human-readable description.
func (a *Artifact) Summary() string {
	return fmt.Sprintf("v%d dim=%d users=%d items=%d features=%d", a.FormatVersion, a.Dim, len(a.UserIndex), len(a.ItemIndex), len(a.FeatureIndex))
}
