// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

// Package catalog holds item metadata and user interaction history.
//
// The catalog is built once at startup from the model artifact and,
// optionally, from CSV/Parquet/JSON files read through DuckDB. Item subsets
// and histories are roaring bitmaps over item positions in the embedding
// store, so candidate generation is set algebra over compressed bitmaps.
package catalog

import (
	"regexp"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/tomtom215/hybridrank/internal/recommend/embedding"
)

// SourceMine marks in-house items.
const SourceMine = "mine"

// DefaultMinePattern matches in-house item identifiers when the catalog has
// no source column.
const DefaultMinePattern = `^CR\d+`

// Item is one catalog row.
type Item struct {
	ID       string   `json:"item_id"`
	Title    string   `json:"title,omitempty"`
	Category string   `json:"category,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Level    string   `json:"level,omitempty"`
	Language string   `json:"language,omitempty"`
	Source   string   `json:"source,omitempty"`
}

// DisplayTitle returns the title, or "Item {id}" when the row has none.
func (it Item) DisplayTitle() string {
	if strings.TrimSpace(it.Title) != "" {
		return it.Title
	}
	return "Item " + it.ID
}

// Options control catalog construction.
type Options struct {
	// MinePattern classifies items as in-house when no row carries a source.
	MinePattern *regexp.Regexp
}

// Catalog is immutable after New.
type Catalog struct {
	rows      map[string]Item
	order     []string
	hasSource bool

	modelItems *embedding.Index
	pattern    *regexp.Regexp

	mine    *roaring.Bitmap
	history map[string]*roaring.Bitmap
}

// New builds a catalog over the store's item index. Rows and interactions
// that reference items unknown to the model are kept for listing and
// metadata but do not appear in the bitmaps.
func New(modelItems *embedding.Index, rows []Item, interactions map[string][]string, opts Options) *Catalog {
	c := &Catalog{
		rows:       make(map[string]Item, len(rows)),
		order:      make([]string, 0, len(rows)),
		modelItems: modelItems,
		pattern:    opts.MinePattern,
		mine:       roaring.New(),
		history:    make(map[string]*roaring.Bitmap, len(interactions)),
	}
	if c.pattern == nil {
		c.pattern = regexp.MustCompile(DefaultMinePattern)
	}

	for _, r := range rows {
		if r.ID == "" {
			continue
		}
		if _, dup := c.rows[r.ID]; !dup {
			c.order = append(c.order, r.ID)
		}
		c.rows[r.ID] = r
		if r.Source != "" {
			c.hasSource = true
		}
	}

	for i := 0; i < modelItems.Len(); i++ {
		if c.IsMine(modelItems.ID(i)) {
			c.mine.Add(uint32(i)) //nolint:gosec // item counts fit in uint32
		}
	}
	c.mine.RunOptimize()

	for user, ids := range interactions {
		bm := roaring.New()
		for _, id := range ids {
			if i, ok := modelItems.Lookup(id); ok {
				bm.Add(uint32(i)) //nolint:gosec // item counts fit in uint32
			}
		}
		if !bm.IsEmpty() {
			c.history[user] = bm
		}
	}
	return c
}

// IsMine reports whether an item is in-house.
func (c *Catalog) IsMine(id string) bool {
	if c.hasSource {
		r, ok := c.rows[id]
		return ok && strings.EqualFold(r.Source, SourceMine)
	}
	return c.pattern.MatchString(id)
}

// Item returns the catalog row for id.
func (c *Catalog) Item(id string) (Item, bool) {
	it, ok := c.rows[id]
	return it, ok
}

// Len returns the number of catalog rows.
func (c *Catalog) Len() int { return len(c.rows) }

// Mine returns the in-house items as store positions. Callers must not
// modify the bitmap.
func (c *Catalog) Mine() *roaring.Bitmap { return c.mine }

// MineCount returns the number of in-house model items.
func (c *Catalog) MineCount() int { return int(c.mine.GetCardinality()) }

// History returns the user's past items as store positions, or nil.
// Callers must not modify the bitmap.
func (c *Catalog) History(user string) *roaring.Bitmap { return c.history[user] }

// HistoryUsers returns the number of users with known history.
func (c *Catalog) HistoryUsers() int { return len(c.history) }

// List returns items filtered by source ("" for all) and paginated. Without
// catalog rows, model item identifiers are listed without metadata.
func (c *Catalog) List(source string, offset, limit int) ([]Item, int) {
	var all []Item
	if len(c.order) > 0 {
		all = make([]Item, 0, len(c.order))
		for _, id := range c.order {
			if c.matchSource(id, source) {
				all = append(all, c.rows[id])
			}
		}
	} else {
		for i := 0; i < c.modelItems.Len(); i++ {
			id := c.modelItems.ID(i)
			if c.matchSource(id, source) {
				all = append(all, Item{ID: id})
			}
		}
		sort.Slice(all, func(a, b int) bool { return all[a].ID < all[b].ID })
	}

	total := len(all)
	if offset >= total {
		return []Item{}, total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return all[offset:end], total
}

func (c *Catalog) matchSource(id, source string) bool {
	switch {
	case source == "":
		return true
	case strings.EqualFold(source, SourceMine):
		return c.IsMine(id)
	case c.hasSource:
		r, ok := c.rows[id]
		return ok && strings.EqualFold(r.Source, source)
	default:
		return !c.IsMine(id)
	}
}
