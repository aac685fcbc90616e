// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package recommend

import (
	"hash/fnv"
	"math/rand/v2"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/tomtom215/hybridrank/internal/recommend/encoder"
)

// buildCandidates returns the entities to rank and how many of them are
// unknown to the model. Explicit candidates are de-duplicated keeping the
// first occurrence; otherwise candidates come from the catalog.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildCandidates(req Request) ([]encoder.Entity, int) {
	if len(req.CandidateIDs) > 0 {
		seen := make(map[string]struct{}, len(req.CandidateIDs))
		out := make([]encoder.Entity, 0, len(req.CandidateIDs))
		cold := 0
		for _, id := range req.CandidateIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ent := e.encoder.EncodeItem(id, nil)
			if ent.Cold() {
				cold++
			}
			out = append(out, ent)
		}
		return out, cold
	}

	idx := e.implicitCandidates(req.UserID, *req.MineOnly)
	out := make([]encoder.Entity, len(idx))
	for i, pos := range idx {
		out[i] = e.encoder.EncodeItemAt(int(pos))
	}
	return out, 0
}

// implicitCandidates selects item positions for a user:
//
//  1. all items, or the in-house subset when mineOnly and it is non-empty
//  2. minus the user's history, unless that leaves nothing
//  3. sampled down to Limits.MaxCandidates with a per-user seed
func (e *Engine) implicitCandidates(userID string, mineOnly bool) []uint32 {
	var base *roaring.Bitmap
	if mineOnly && e.catalog.MineCount() > 0 {
		base = e.catalog.Mine()
	} else {
		base = roaring.New()
		base.AddRange(0, uint64(e.store.Items().Len()))
	}

	if e.config.Candidates.ExcludeHistory {
		if hist := e.catalog.History(userID); hist != nil {
			if pruned := roaring.AndNot(base, hist); !pruned.IsEmpty() {
				base = pruned
			}
		}
	}

	idx := base.ToArray()
	limit := e.config.Limits.MaxCandidates
	if limit > 0 && len(idx) > limit {
		idx = sampleIndices(idx, limit, UserSeed(e.config.Seed, userID))
	}
	return idx
}

// UserSeed derives the sampling seed for a user: base + fnv32a(user) % 100000.
func UserSeed(base int64, userID string) uint64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return uint64(base) + uint64(h.Sum32()%100000) //nolint:gosec // seed arithmetic, sign irrelevant
}

// sampleIndices draws k of idx without replacement using a partial
// Fisher-Yates shuffle and returns them in ascending order. idx is
// reordered in place.
func sampleIndices(idx []uint32, k int, seed uint64) []uint32 {
	if k >= len(idx) {
		return idx
	}
	rng := rand.New(rand.NewPCG(seed, seed)) //nolint:gosec // deterministic sampling, not security
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	out := idx[:k]
	slices.Sort(out)
	return out
}
