// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package embedding

import (
	"fmt"
	"math"
)

// Matrix is a dense row-major float32 matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []float32
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]float32, rows*cols)}
}

// Row returns row i as a sub-slice of the backing array.
func (m Matrix) Row(i int) []float32 {
	off := i * m.Cols
	return m.Data[off : off+m.Cols : off+m.Cols]
}

// NormalizeRows returns a copy of m with every row scaled to unit L2 norm.
// All-zero rows stay zero.
func NormalizeRows(m Matrix) Matrix {
	out := Matrix{Rows: m.Rows, Cols: m.Cols, Data: make([]float32, len(m.Data))}
	copy(out.Data, m.Data)
	for i := 0; i < out.Rows; i++ {
		normalizeInPlace(out.Row(i))
	}
	return out
}

func normalizeInPlace(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for k, x := range v {
		v[k] = float32(float64(x) * inv)
	}
}

// Index is a bidirectional mapping between identifiers and dense positions.
type Index struct {
	ids []string
	pos map[string]int
}

// NewIndex builds an index where ids[i] maps to position i.
func NewIndex(ids []string) (*Index, error) {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("empty identifier at position %d", i)
		}
		if prev, dup := pos[id]; dup {
			return nil, fmt.Errorf("duplicate identifier %q at positions %d and %d", id, prev, i)
		}
		pos[id] = i
	}
	return &Index{ids: ids, pos: pos}, nil
}

// Lookup returns the position of id.
func (x *Index) Lookup(id string) (int, bool) {
	if x == nil {
		return 0, false
	}
	i, ok := x.pos[id]
	return i, ok
}

// ID returns the identifier at position i.
func (x *Index) ID(i int) string { return x.ids[i] }

// Len returns the number of identifiers.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.ids)
}

// IDs returns a copy of the identifiers in position order.
func (x *Index) IDs() []string {
	if x == nil {
		return nil
	}
	out := make([]string, len(x.ids))
	copy(out, x.ids)
	return out
}
