// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

// Package recommend serves top-N recommendations from a trained hybrid
// matrix-factorization model.
//
// # Architecture
//
// The engine is a thin facade over the scoring core:
//
//   - artifact: loads and validates the serialized model
//   - embedding: immutable latent factors, biases and feature projections
//   - encoder: resolves identifiers and declared features (cold start)
//   - scoring: score = dot(u, v) + bias_u + bias_i in float64
//   - ranking: top-N selection with a stable (score desc, id asc) order
//   - catalog: item metadata, in-house subset and user histories
//
// A request flows through validation, the response cache, candidate
// generation, encoding, ranking and catalog enrichment.
//
// # Candidate Generation
//
// Without explicit candidates the engine starts from every item, or the
// in-house subset when mine_only is set and non-empty, removes the user's
// history unless that would leave nothing, and samples down to
// Limits.MaxCandidates with a per-user seed so repeated calls agree.
//
// # Cold Start
//
// Users and items the model has not seen are scored with a zero latent
// vector plus any declared features. They are never an error; the response
// reports cold_start for the user.
//
// # Usage
//
//	model, err := artifact.LoadFile(ctx, "models/recommendation_model.hrm", artifact.LoadOptions{NormalizeItems: true})
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), model, nil, logger)
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    UserID: "42",
//	    TopN:   10,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Model state is read-only after
// construction; the response cache has its own lock and the counters are
// atomic.
package recommend
