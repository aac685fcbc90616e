// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

// Package encoder resolves user and item identifiers and declared features
// to positions in an embedding store.
//
// Encoding never fails. An identifier the model has not seen resolves to an
// entity without a latent index (the cold-start path), and features outside
// the vocabulary are dropped.
package encoder

import (
	"math"

	"github.com/tomtom215/hybridrank/internal/recommend/embedding"
)

// FeatureWeight is a resolved feature position and its weight.
type FeatureWeight struct {
	Index  int
	Weight float64
}

// Entity is a user or item resolved against a store.
type Entity struct {
	ID       string
	Features []FeatureWeight

	// latent is the factor-matrix row plus one; zero means unknown so the
	// zero Entity is a cold-start entity.
	latent int
}

// LatentIndex returns the factor-matrix row and whether the entity is known.
func (e Entity) LatentIndex() (int, bool) {
	return e.latent - 1, e.latent > 0
}

// Cold reports whether the entity has no trained latent vector.
func (e Entity) Cold() bool {
	return e.latent == 0
}

// Known creates an entity with a latent index and no features.
func Known(id string, index int) Entity {
	return Entity{ID: id, latent: index + 1}
}

// Encoder maps raw identifiers to entities for one store.
type Encoder struct {
	store *embedding.Store
}

// New creates an encoder bound to store.
func New(store *embedding.Store) *Encoder {
	return &Encoder{store: store}
}

// EncodeUser resolves a user. When features is empty the user's declared
// features from the artifact are used.
func (e *Encoder) EncodeUser(id string, features []embedding.Feature) Entity {
	if len(features) == 0 {
		features = e.store.DeclaredUserFeatures(id)
	}
	ent := Entity{ID: id}
	if i, ok := e.store.Users().Lookup(id); ok {
		ent.latent = i + 1
	}
	if e.store.HasUserProjection() {
		ent.Features = e.resolve(features)
	}
	return ent
}

// EncodeItem resolves an item. When features is empty the item's declared
// features from the artifact are used.
func (e *Encoder) EncodeItem(id string, features []embedding.Feature) Entity {
	if len(features) == 0 {
		features = e.store.DeclaredItemFeatures(id)
	}
	ent := Entity{ID: id}
	if i, ok := e.store.Items().Lookup(id); ok {
		ent.latent = i + 1
	}
	if e.store.HasItemProjection() {
		ent.Features = e.resolve(features)
	}
	return ent
}

// EncodeItemAt resolves the item stored at position i.
func (e *Encoder) EncodeItemAt(i int) Entity {
	id := e.store.Items().ID(i)
	ent := Known(id, i)
	if e.store.HasItemProjection() {
		ent.Features = e.resolve(e.store.DeclaredItemFeatures(id))
	}
	return ent
}

// resolve keeps known, finite, non-zero features in their declared order.
func (e *Encoder) resolve(features []embedding.Feature) []FeatureWeight {
	if len(features) == 0 {
		return nil
	}
	vocab := e.store.Features()
	out := make([]FeatureWeight, 0, len(features))
	for _, f := range features {
		w := f.Weight
		if w == 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			continue
		}
		idx, ok := vocab.Lookup(f.ID)
		if !ok {
			continue
		}
		out = append(out, FeatureWeight{Index: idx, Weight: w})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
