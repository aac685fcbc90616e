// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

// Package scoring computes predicted user/item affinity:
//
//	score = dot(u, v) + bias_user + bias_item
//
// where u and v are effective embeddings: the entity's latent vector (zero
// when unknown) plus the weighted sum of its feature contribution vectors.
// Unknown entities contribute a zero bias.
//
// All arithmetic is float64 with a fixed summation order, so the same inputs
// always produce bit-identical scores.
package scoring

import (
	"github.com/tomtom215/hybridrank/internal/recommend/embedding"
	"github.com/tomtom215/hybridrank/internal/recommend/encoder"
)

// Scorer evaluates affinities against one store.
type Scorer struct {
	store *embedding.Store
}

// New creates a scorer bound to store.
func New(store *embedding.Store) *Scorer {
	return &Scorer{store: store}
}

// Store returns the backing store.
func (s *Scorer) Store() *embedding.Store {
	return s.store
}

// Score returns the affinity of a single (user, item) pair.
func (s *Scorer) Score(user, item encoder.Entity) float64 {
	return s.Prepare(user).Score(item)
}

// Query is a user's effective embedding and bias, computed once and reused
// across every candidate of a request.
type Query struct {
	store *embedding.Store
	vec   []float64
	bias  float64
}

// Prepare computes the effective user embedding.
func (s *Scorer) Prepare(user encoder.Entity) Query {
	q := Query{store: s.store, vec: make([]float64, s.store.Dim())}
	if idx, ok := user.LatentIndex(); ok {
		addScaled(q.vec, s.store.UserVector(idx), 1)
		q.bias = float64(s.store.UserBias(idx))
	}
	for _, f := range user.Features {
		addScaled(q.vec, s.store.UserProjection(f.Index), f.Weight)
	}
	return q
}

// Vector returns the effective user embedding. Callers must not modify it.
func (q Query) Vector() []float64 {
	return q.vec
}

// Score returns the affinity between the prepared user and item.
func (q Query) Score(item encoder.Entity) float64 {
	idx, known := item.LatentIndex()

	var dot, bias float64
	if len(item.Features) == 0 {
		if known {
			dot = dot32(q.vec, q.store.ItemVector(idx))
		}
	} else {
		v := make([]float64, len(q.vec))
		if known {
			addScaled(v, q.store.ItemVector(idx), 1)
		}
		for _, f := range item.Features {
			addScaled(v, q.store.ItemProjection(f.Index), f.Weight)
		}
		dot = dot64(q.vec, v)
	}
	if known {
		bias = float64(q.store.ItemBias(idx))
	}
	return dot + q.bias + bias
}

// ItemVector returns the effective embedding of item.
func (s *Scorer) ItemVector(item encoder.Entity) []float64 {
	v := make([]float64, s.store.Dim())
	if idx, ok := item.LatentIndex(); ok {
		addScaled(v, s.store.ItemVector(idx), 1)
	}
	for _, f := range item.Features {
		addScaled(v, s.store.ItemProjection(f.Index), f.Weight)
	}
	return v
}

func addScaled(dst []float64, src []float32, w float64) {
	for k, x := range src {
		dst[k] += w * float64(x)
	}
}

func dot32(a []float64, b []float32) float64 {
	var sum float64
	for k, x := range b {
		sum += a[k] * float64(x)
	}
	return sum
}

func dot64(a, b []float64) float64 {
	var sum float64
	for k := range a {
		sum += a[k] * b[k]
	}
	return sum
}

// Cosine returns the dot product of two unit-length float32 vectors.
func Cosine(a, b []float32) float64 {
	var sum float64
	for k := range a {
		sum += float64(a[k]) * float64(b[k])
	}
	return sum
}
