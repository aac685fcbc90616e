// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

// Package embedding holds the trained latent factors of a hybrid
// matrix-factorization model.
//
// A Store is built once from validated parameters and is read-only
// afterwards; every accessor is safe for concurrent use without locking.
// Vectors are stored as row-major float32 matrices and handed out as
// sub-slices, which callers must not modify.
package embedding

import (
	"fmt"
	"math"
)

// Feature is a declared (feature_id, weight) pair attached to a user or item.
type Feature struct {
	ID     string  `json:"feature_id"`
	Weight float64 `json:"weight"`
}

// Params are the raw inputs to New. Row i of each factor matrix belongs to
// the i-th identifier of the matching id slice.
type Params struct {
	Dim int

	UserIDs     []string
	ItemIDs     []string
	UserFactors []float32
	ItemFactors []float32
	UserBiases  []float32
	ItemBiases  []float32

	// Hybrid mode. Either projection may be nil; both share FeatureIDs.
	FeatureIDs         []string
	UserFeatureFactors []float32
	ItemFeatureFactors []float32

	// Declared features keyed by entity identifier.
	UserFeatures map[string][]Feature
	ItemFeatures map[string][]Feature

	// NormalizeItems precomputes unit-length item rows for cosine queries.
	NormalizeItems bool
}

// Store is an immutable set of user/item embeddings, biases and optional
// feature projections.
type Store struct {
	dim int

	users *Index
	items *Index

	userFactors Matrix
	itemFactors Matrix
	userBiases  []float32
	itemBiases  []float32

	features           *Index
	userFeatureFactors *Matrix
	itemFeatureFactors *Matrix

	userFeatures map[string][]Feature
	itemFeatures map[string][]Feature

	normalizedItems *Matrix
}

// New validates p and builds a Store.
func New(p *Params) (*Store, error) {
	if p.Dim <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", p.Dim)
	}
	if len(p.UserIDs) == 0 {
		return nil, fmt.Errorf("user mapping is empty")
	}
	if len(p.ItemIDs) == 0 {
		return nil, fmt.Errorf("item mapping is empty")
	}

	users, err := NewIndex(p.UserIDs)
	if err != nil {
		return nil, fmt.Errorf("user mapping: %w", err)
	}
	items, err := NewIndex(p.ItemIDs)
	if err != nil {
		return nil, fmt.Errorf("item mapping: %w", err)
	}

	userFactors, err := newFactorMatrix("user factors", p.UserFactors, users.Len(), p.Dim)
	if err != nil {
		return nil, err
	}
	itemFactors, err := newFactorMatrix("item factors", p.ItemFactors, items.Len(), p.Dim)
	if err != nil {
		return nil, err
	}
	if err := checkVector("user biases", p.UserBiases, users.Len()); err != nil {
		return nil, err
	}
	if err := checkVector("item biases", p.ItemBiases, items.Len()); err != nil {
		return nil, err
	}

	s := &Store{
		dim:          p.Dim,
		users:        users,
		items:        items,
		userFactors:  userFactors,
		itemFactors:  itemFactors,
		userBiases:   p.UserBiases,
		itemBiases:   p.ItemBiases,
		userFeatures: p.UserFeatures,
		itemFeatures: p.ItemFeatures,
	}

	if err := s.attachFeatures(p); err != nil {
		return nil, err
	}

	if p.NormalizeItems {
		n := NormalizeRows(s.itemFactors)
		s.normalizedItems = &n
	}
	return s, nil
}

func (s *Store) attachFeatures(p *Params) error {
	hasProjection := p.UserFeatureFactors != nil || p.ItemFeatureFactors != nil
	if len(p.FeatureIDs) == 0 {
		if hasProjection {
			return fmt.Errorf("feature projection present without a feature vocabulary")
		}
		return nil
	}

	features, err := NewIndex(p.FeatureIDs)
	if err != nil {
		return fmt.Errorf("feature mapping: %w", err)
	}
	s.features = features

	if p.UserFeatureFactors != nil {
		m, err := newFactorMatrix("user feature factors", p.UserFeatureFactors, features.Len(), p.Dim)
		if err != nil {
			return err
		}
		s.userFeatureFactors = &m
	}
	if p.ItemFeatureFactors != nil {
		m, err := newFactorMatrix("item feature factors", p.ItemFeatureFactors, features.Len(), p.Dim)
		if err != nil {
			return err
		}
		s.itemFeatureFactors = &m
	}

	for side, declared := range map[string]map[string][]Feature{"user": p.UserFeatures, "item": p.ItemFeatures} {
		for id, fs := range declared {
			for _, f := range fs {
				if math.IsNaN(f.Weight) || math.IsInf(f.Weight, 0) {
					return fmt.Errorf("%s %q declares non-finite weight for feature %q", side, id, f.ID)
				}
			}
		}
	}
	return nil
}

func newFactorMatrix(name string, data []float32, rows, dim int) (Matrix, error) {
	if len(data) != rows*dim {
		return Matrix{}, fmt.Errorf("%s: have %d values, want %d rows x %d", name, len(data), rows, dim)
	}
	for i, v := range data {
		if !isFinite32(v) {
			return Matrix{}, fmt.Errorf("%s: non-finite value at row %d", name, i/dim)
		}
	}
	return Matrix{Rows: rows, Cols: dim, Data: data}, nil
}

func checkVector(name string, v []float32, n int) error {
	if len(v) != n {
		return fmt.Errorf("%s: length %d, want %d", name, len(v), n)
	}
	for i, x := range v {
		if !isFinite32(x) {
			return fmt.Errorf("%s: non-finite value at %d", name, i)
		}
	}
	return nil
}

func isFinite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Dim returns the latent dimension D.
func (s *Store) Dim() int { return s.dim }

// Users returns the user identifier index.
func (s *Store) Users() *Index { return s.users }

// Items returns the item identifier index.
func (s *Store) Items() *Index { return s.items }

// Features returns the feature vocabulary, or nil in pure-CF mode.
func (s *Store) Features() *Index { return s.features }

// UserVector returns the latent vector of user i.
func (s *Store) UserVector(i int) []float32 { return s.userFactors.Row(i) }

// ItemVector returns the latent vector of item i.
func (s *Store) ItemVector(i int) []float32 { return s.itemFactors.Row(i) }

// UserBias returns the bias of user i.
func (s *Store) UserBias(i int) float32 { return s.userBiases[i] }

// ItemBias returns the bias of item i.
func (s *Store) ItemBias(i int) float32 { return s.itemBiases[i] }

// HasUserProjection reports whether user-side feature projections exist.
func (s *Store) HasUserProjection() bool { return s.userFeatureFactors != nil }

// HasItemProjection reports whether item-side feature projections exist.
func (s *Store) HasItemProjection() bool { return s.itemFeatureFactors != nil }

// UserProjection returns the user-side contribution vector of feature f.
func (s *Store) UserProjection(f int) []float32 { return s.userFeatureFactors.Row(f) }

// ItemProjection returns the item-side contribution vector of feature f.
func (s *Store) ItemProjection(f int) []float32 { return s.itemFeatureFactors.Row(f) }

// DeclaredUserFeatures returns the features the artifact declares for a user.
func (s *Store) DeclaredUserFeatures(id string) []Feature { return s.userFeatures[id] }

// DeclaredItemFeatures returns the features the artifact declares for an item.
func (s *Store) DeclaredItemFeatures(id string) []Feature { return s.itemFeatures[id] }

// HasDeclaredItemFeatures reports whether any item declares features.
func (s *Store) HasDeclaredItemFeatures() bool { return len(s.itemFeatures) > 0 }

// NormalizedItem returns item i scaled to unit L2 norm. Without a
// precomputed matrix the row is normalized on the fly.
func (s *Store) NormalizedItem(i int) []float32 {
	if s.normalizedItems != nil {
		return s.normalizedItems.Row(i)
	}
	out := make([]float32, s.dim)
	copy(out, s.itemFactors.Row(i))
	normalizeInPlace(out)
	return out
}

// HasNormalizedItems reports whether the normalized item matrix was cached at load.
func (s *Store) HasNormalizedItems() bool { return s.normalizedItems != nil }

// SizeBytes approximates the memory held by factor data.
func (s *Store) SizeBytes() int64 {
	n := len(s.userFactors.Data) + len(s.itemFactors.Data) + len(s.userBiases) + len(s.itemBiases)
	if s.userFeatureFactors != nil {
		n += len(s.userFeatureFactors.Data)
	}
	if s.itemFeatureFactors != nil {
		n += len(s.itemFeatureFactors.Data)
	}
	if s.normalizedItems != nil {
		n += len(s.normalizedItems.Data)
	}
	return int64(n) * 4
}
