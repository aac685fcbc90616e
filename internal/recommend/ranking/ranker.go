// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

// Package ranking selects the top-N candidates for a user.
//
// Ordering is score descending with ties broken by ascending item identifier
// (byte-wise). Selection keeps a bounded heap of size N, so ranking a large
// candidate set costs O(n log N).
package ranking

import (
	"container/heap"

	"github.com/tomtom215/hybridrank/internal/recommend/encoder"
	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
	"github.com/tomtom215/hybridrank/internal/recommend/scoring"
)

// Item is one ranked entry.
type Item struct {
	ID    string
	Index int // position in the item matrix, -1 for cold items
	Score float64
}

// Result is the outcome of a ranking call.
type Result struct {
	Items []Item

	// Scored is the number of candidates scored after filtering.
	Scored int

	// MinScore and MaxScore span every scored candidate, not just Items.
	MinScore float64
	MaxScore float64
}

// Ranker ranks candidates with a scorer.
type Ranker struct {
	scorer *scoring.Scorer
}

// New creates a ranker.
func New(scorer *scoring.Scorer) *Ranker {
	return &Ranker{scorer: scorer}
}

// Rank scores candidates not in excludeSeen and returns the best topN.
// Duplicate candidate identifiers are scored once. Fewer than topN
// survivors are all returned; an empty survivor set is not an error.
func (r *Ranker) Rank(user encoder.Entity, candidates []encoder.Entity, topN int, excludeSeen map[string]struct{}) (Result, error) {
	if topN <= 0 {
		return Result{}, recerr.Invalid("top_n must be positive, got %d", topN)
	}

	q := r.scorer.Prepare(user)
	sel := newSelector(topN)
	seen := make(map[string]struct{}, len(candidates))
	var res Result

	for i := range candidates {
		c := &candidates[i]
		if _, skip := excludeSeen[c.ID]; skip {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}

		s := q.Score(*c)
		if res.Scored == 0 || s < res.MinScore {
			res.MinScore = s
		}
		if res.Scored == 0 || s > res.MaxScore {
			res.MaxScore = s
		}
		res.Scored++

		idx, ok := c.LatentIndex()
		if !ok {
			idx = -1
		}
		sel.offer(Item{ID: c.ID, Index: idx, Score: s})
	}

	res.Items = sel.sorted()
	return res, nil
}

// Similar ranks items by cosine similarity to item itemIndex, excluding
// the item itself.
func (r *Ranker) Similar(itemIndex, topN int) (Result, error) {
	if topN <= 0 {
		return Result{}, recerr.Invalid("top_n must be positive, got %d", topN)
	}
	store := r.scorer.Store()
	items := store.Items()
	if itemIndex < 0 || itemIndex >= items.Len() {
		return Result{}, recerr.New(recerr.KindNotFound, "item index %d out of range", itemIndex)
	}

	target := store.NormalizedItem(itemIndex)
	sel := newSelector(topN)
	var res Result
	for i := 0; i < items.Len(); i++ {
		if i == itemIndex {
			continue
		}
		s := scoring.Cosine(target, store.NormalizedItem(i))
		if res.Scored == 0 || s < res.MinScore {
			res.MinScore = s
		}
		if res.Scored == 0 || s > res.MaxScore {
			res.MaxScore = s
		}
		res.Scored++
		sel.offer(Item{ID: items.ID(i), Index: i, Score: s})
	}
	res.Items = sel.sorted()
	return res, nil
}

// Less reports whether a ranks ahead of b.
func Less(a, b Item) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.ID < b.ID
}

// selector keeps the best k items in a min-heap whose root is the
// currently worst-ranked survivor.
type selector struct {
	k     int
	items worstFirst
}

func newSelector(k int) *selector {
	return &selector{k: k}
}

func (s *selector) offer(it Item) {
	if len(s.items) < s.k {
		heap.Push(&s.items, it)
		return
	}
	if Less(it, s.items[0]) {
		s.items[0] = it
		heap.Fix(&s.items, 0)
	}
}

// sorted drains the heap into best-first order.
func (s *selector) sorted() []Item {
	out := make([]Item, len(s.items))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&s.items).(Item)
	}
	return out
}

type worstFirst []Item

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return Less(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *worstFirst) Push(x any) { *h = append(*h, x.(Item)) }

func (h *worstFirst) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}
