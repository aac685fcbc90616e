// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package artifact

import (
	"fmt"
	"math/rand/v2"
)

// DemoOptions size a synthetic artifact.
type DemoOptions struct {
	Users    int
	Items    int
	Dim      int
	Features int
	Seed     uint64
}

// Demo builds a small random artifact with catalog metadata, interactions
// and item features. Item ids alternate between an in-house "CR" series and
// an external series so that scope filtering has something to do.
func Demo(opts DemoOptions) *Artifact {
	if opts.Users <= 0 {
		opts.Users = 20
	}
	if opts.Items <= 0 {
		opts.Items = 50
	}
	if opts.Dim <= 0 {
		opts.Dim = 8
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	a := &Artifact{
		FormatVersion: FormatVersion,
		Dim:           opts.Dim,
		UserIndex:     make(map[string]int, opts.Users),
		ItemIndex:     make(map[string]int, opts.Items),
		UserFactors:   randomRows(rng, opts.Users, opts.Dim),
		ItemFactors:   randomRows(rng, opts.Items, opts.Dim),
		UserBiases:    randomVec(rng, opts.Users, 0.1),
		ItemBiases:    randomVec(rng, opts.Items, 0.1),
		Interactions:  make(map[string][]string),
		Metadata: map[string]string{
			"model_name": "demo",
			"generator":  "hybridrank demo",
		},
	}

	categories := []string{"Development", "Business", "Design", "Marketing"}
	levels := []string{"Beginner", "Intermediate", "Expert"}
	for i := 0; i < opts.Users; i++ {
		a.UserIndex[fmt.Sprintf("%d", i+1)] = i
	}
	for i := 0; i < opts.Items; i++ {
		id, source := fmt.Sprintf("CR%04d", i+1), "mine"
		if i%2 == 1 {
			id, source = fmt.Sprintf("UD%04d", i+1), "udemy"
		}
		a.ItemIndex[id] = i
		price := float64(rng.IntN(200)) + 0.99
		a.Items = append(a.Items, ItemRecord{
			ID:       id,
			Title:    fmt.Sprintf("Course %d", i+1),
			Category: categories[i%len(categories)],
			Price:    &price,
			Level:    levels[i%len(levels)],
			Language: "English",
			Source:   source,
		})
	}

	itemIDs := make([]string, opts.Items)
	for id, i := range a.ItemIndex {
		itemIDs[i] = id
	}
	for u := 1; u <= opts.Users; u++ {
		n := rng.IntN(4)
		for k := 0; k < n; k++ {
			uid := fmt.Sprintf("%d", u)
			a.Interactions[uid] = append(a.Interactions[uid], itemIDs[rng.IntN(opts.Items)])
		}
	}

	if opts.Features > 0 {
		a.FeatureIndex = make(map[string]int, opts.Features)
		for f := 0; f < opts.Features; f++ {
			a.FeatureIndex[fmt.Sprintf("tag:%d", f)] = f
		}
		a.UserFeatureFactors = randomRows(rng, opts.Features, opts.Dim)
		a.ItemFeatureFactors = randomRows(rng, opts.Features, opts.Dim)
	}
	return a
}

func randomRows(rng *rand.Rand, n, dim int) [][]float32 {
	rows := make([][]float32, n)
	for i := range rows {
		rows[i] = randomVec(rng, dim, 1)
	}
	return rows
}

func randomVec(rng *rand.Rand, n int, scale float64) []float32 {
	v := make([]float32, n)
	for i := range v {
		v[i] = float32((rng.Float64()*2 - 1) * scale)
	}
	return v
}
