// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrank/internal/recommend/artifact"
	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func newModel(t *testing.T, a *artifact.Artifact) *artifact.Model {
	t.Helper()
	if a.FormatVersion == 0 {
		a.FormatVersion = artifact.FormatVersion
	}
	store, err := a.Store(true)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	return &artifact.Model{
		Store:        store,
		Items:        a.Items,
		Interactions: a.Interactions,
		Metadata:     a.Metadata,
		Info:         artifact.Info{Name: "test", FormatVersion: a.FormatVersion},
	}
}

func newEngine(t *testing.T, cfg *Config, a *artifact.Artifact) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, newModel(t, a), nil, testLogger())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func scenarioArtifact() *artifact.Artifact {
	return &artifact.Artifact{
		Dim:         2,
		UserIndex:   map[string]int{"u1": 0},
		ItemIndex:   map[string]int{"i1": 0, "i2": 1},
		UserFactors: [][]float32{{1, 0}},
		ItemFactors: [][]float32{{1, 0}, {0, 1}},
		UserBiases:  []float32{0},
		ItemBiases:  []float32{0, 0},
	}
}

// catalogArtifact has two in-house and two external items and a user with
// history.
func catalogArtifact() *artifact.Artifact {
	return &artifact.Artifact{
		Dim:         2,
		UserIndex:   map[string]int{"7": 0, "8": 1},
		ItemIndex:   map[string]int{"CR1": 0, "UD2": 1, "CR3": 2, "UD4": 3},
		UserFactors: [][]float32{{1, 1}, {1, 1}},
		ItemFactors: [][]float32{{1, 0}, {0, 1}, {0.5, 0}, {0, 0.5}},
		UserBiases:  []float32{0, 0},
		ItemBiases:  []float32{0, 0, 0, 0},
		Items: []artifact.ItemRecord{
			{ID: "CR1", Title: "Go Basics", Category: "Development", Source: "mine"},
			{ID: "UD2", Category: "Business", Source: "udemy"},
			{ID: "CR3", Title: "Advanced Go", Source: "Mine"},
			{ID: "UD4", Title: "Marketing 101", Source: "udemy"},
		},
		Interactions: map[string][]string{
			"7": {"CR1"},
			"8": {"CR1", "CR3"},
		},
		Metadata: map[string]string{"model_name": "catalog-test"},
	}
}

func ids(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ItemID
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		t.Parallel()
		e := newEngine(t, nil, scenarioArtifact())
		if e.GetConfig().Limits.DefaultCount != 10 {
			t.Errorf("DefaultCount = %d, want 10", e.GetConfig().Limits.DefaultCount)
		}
		if e.Cache() == nil {
			t.Error("Cache() = nil, want enabled by default")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.Limits.MaxCount = 0
		if _, err := NewEngine(cfg, newModel(t, scenarioArtifact()), nil, testLogger()); err == nil {
			t.Error("NewEngine() error = nil, want invalid config")
		}
	})

	t.Run("nil model", func(t *testing.T) {
		t.Parallel()
		_, err := NewEngine(nil, nil, nil, testLogger())
		if !errors.Is(err, recerr.ErrModelUnavailable) {
			t.Errorf("NewEngine(nil model) error = %v, want ModelUnavailable", err)
		}
	})

	t.Run("zero seed defaults", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		cfg.Seed = 0
		e := newEngine(t, cfg, scenarioArtifact())
		if e.GetConfig().Seed != DefaultSeed {
			t.Errorf("Seed = %d, want %d", e.GetConfig().Seed, DefaultSeed)
		}
		if cfg.Seed != 0 {
			t.Error("NewEngine mutated the caller's config")
		}
	})
}

func TestEngine_Recommend_Scenario(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, scenarioArtifact())
	resp, err := e.Recommend(context.Background(), Request{
		UserID:       "u1",
		CandidateIDs: []string{"i1", "i2"},
		TopN:         1,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(resp.Recommendations) != 1 {
		t.Fatalf("len(Recommendations) = %d, want 1", len(resp.Recommendations))
	}
	got := resp.Recommendations[0]
	if got.ItemID != "i1" || got.Score != 1.0 {
		t.Errorf("Recommendations[0] = {%s %v}, want {i1 1}", got.ItemID, got.Score)
	}
	if resp.ColdStart {
		t.Error("ColdStart = true for a known user")
	}
	if resp.TotalCandidates != 2 {
		t.Errorf("TotalCandidates = %d, want 2", resp.TotalCandidates)
	}
	if resp.Metadata.RequestID == "" {
		t.Error("Metadata.RequestID is empty")
	}
}

func TestEngine_Recommend_InvalidRequest(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, scenarioArtifact())
	tests := []struct {
		name string
		req  Request
	}{
		{"missing user", Request{TopN: 1}},
		{"blank user", Request{UserID: "  ", TopN: 1}},
		{"zero top_n", Request{UserID: "u1", TopN: 0}},
		{"negative top_n", Request{UserID: "u1", TopN: -3}},
		{"control character", Request{UserID: "u\x001", TopN: 1}},
		{"oversized id", Request{UserID: string(make([]byte, MaxIDLength+1)), TopN: 1}},
		{"empty candidate", Request{UserID: "u1", TopN: 1, CandidateIDs: []string{"i1", ""}}},
		{"empty exclusion", Request{UserID: "u1", TopN: 1, ExcludeSeen: []string{""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Recommend(context.Background(), tt.req)
			if !errors.Is(err, recerr.ErrInvalidRequest) {
				t.Errorf("Recommend() error = %v, want InvalidRequest", err)
			}
		})
	}
	if got := e.GetMetrics().ErrorCount; got != int64(len(tests)) {
		t.Errorf("ErrorCount = %d, want %d", got, len(tests))
	}
}

func TestEngine_Recommend_ClampsTopN(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Limits.DefaultCount = 1
	cfg.Limits.MaxCount = 1
	e := newEngine(t, cfg, scenarioArtifact())

	resp, err := e.Recommend(context.Background(), Request{UserID: "u1", TopN: 100})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("Count = %d, want 1 after clamping", resp.Count)
	}
}

func TestEngine_Recommend_ColdStart(t *testing.T) {
	t.Parallel()

	a := scenarioArtifact()
	a.ItemBiases = []float32{0.25, 0.5}
	e := newEngine(t, nil, a)

	resp, err := e.Recommend(context.Background(), Request{UserID: "stranger", TopN: 5})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !resp.ColdStart {
		t.Error("ColdStart = false, want true for unknown user")
	}
	if got := ids(resp.Recommendations); !slices.Equal(got, []string{"i2", "i1"}) {
		t.Errorf("Recommendations = %v, want [i2 i1] by item bias", got)
	}
	if resp.Recommendations[0].Score != float64(float32(0.5)) {
		t.Errorf("Score = %v, want item bias 0.5", resp.Recommendations[0].Score)
	}
	if e.GetMetrics().ColdStartUsers != 1 {
		t.Errorf("ColdStartUsers = %d, want 1", e.GetMetrics().ColdStartUsers)
	}
}

func TestEngine_Recommend_ExplicitCandidates(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, catalogArtifact())
	resp, err := e.Recommend(context.Background(), Request{
		UserID:       "7",
		CandidateIDs: []string{"UD2", "UD2", "ZZ9", "CR1"},
		ExcludeSeen:  []string{"CR1"},
		TopN:         10,
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := ids(resp.Recommendations); !slices.Equal(got, []string{"UD2", "ZZ9"}) {
		t.Errorf("Recommendations = %v, want [UD2 ZZ9]", got)
	}
	if resp.TotalCandidates != 2 {
		t.Errorf("TotalCandidates = %d, want 2 after dedupe and exclusion", resp.TotalCandidates)
	}
	if resp.Recommendations[1].Title != "" {
		t.Errorf("unknown item Title = %q, want empty", resp.Recommendations[1].Title)
	}
}

func TestEngine_Recommend_ImplicitCandidates(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newEngine(t, cfg, catalogArtifact())

	tests := []struct {
		name    string
		req     Request
		wantIDs []string
	}{
		{
			name:    "mine only excludes history",
			req:     Request{UserID: "7", TopN: 10, MineOnly: boolPtr(true)},
			wantIDs: []string{"CR3"},
		},
		{
			name:    "mine only defaults from config",
			req:     Request{UserID: "7", TopN: 10},
			wantIDs: []string{"CR3"},
		},
		{
			name:    "all items excludes history",
			req:     Request{UserID: "7", TopN: 10, MineOnly: boolPtr(false)},
			wantIDs: []string{"UD2", "CR3", "UD4"},
		},
		{
			name:    "history covers scope so fall back",
			req:     Request{UserID: "8", TopN: 10, MineOnly: boolPtr(true)},
			wantIDs: []string{"CR1", "CR3"},
		},
		{
			name:    "exclude_seen applied after candidate generation",
			req:     Request{UserID: "7", TopN: 10, MineOnly: boolPtr(false), ExcludeSeen: []string{"UD2"}},
			wantIDs: []string{"CR3", "UD4"},
		},
		{
			name:    "unknown user without history",
			req:     Request{UserID: "new", TopN: 2, MineOnly: boolPtr(false)},
			wantIDs: []string{"CR1", "CR3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := e.Recommend(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if got := ids(resp.Recommendations); !slices.Equal(got, tt.wantIDs) {
				t.Errorf("Recommendations = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestEngine_Recommend_Enrichment(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, catalogArtifact())
	resp, err := e.Recommend(context.Background(), Request{UserID: "7", TopN: 10, MineOnly: boolPtr(false)})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	// Scores: UD2 1.0, CR3 0.5, UD4 0.5.
	first, last := resp.Recommendations[0], resp.Recommendations[2]
	if first.Title != "Item UD2" || first.Category != "Business" {
		t.Errorf("first = %+v, want fallback title and category", first)
	}
	if math.Abs(first.Rating-5) > 1e-6 {
		t.Errorf("first.Rating = %v, want ~5", first.Rating)
	}
	if last.Rating != 1 {
		t.Errorf("last.Rating = %v, want 1", last.Rating)
	}
	if resp.Metadata.ModelName != "catalog-test" {
		t.Errorf("ModelName = %q, want catalog-test", resp.Metadata.ModelName)
	}
	if resp.MineOnly || resp.UserID != "7" || resp.Count != 3 {
		t.Errorf("response header = {user %s, mine %v, count %d}", resp.UserID, resp.MineOnly, resp.Count)
	}
}

func TestEngine_Recommend_CacheHit(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, catalogArtifact())
	req := Request{UserID: "7", TopN: 3, MineOnly: boolPtr(false)}

	first, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first response CacheHit = true")
	}
	want := ids(first.Recommendations)
	first.Recommendations[0].ItemID = "mutated"

	second, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second response CacheHit = false")
	}
	if got := ids(second.Recommendations); !slices.Equal(got, want) {
		t.Errorf("cached Recommendations = %v, want %v", got, want)
	}

	m := e.GetMetrics()
	if m.CacheHits != 1 || m.CacheMisses != 1 {
		t.Errorf("cache hits/misses = %d/%d, want 1/1", m.CacheHits, m.CacheMisses)
	}

	// Different scope is a different key.
	req.MineOnly = boolPtr(true)
	third, _ := e.Recommend(context.Background(), req)
	if third.Metadata.CacheHit {
		t.Error("different mine_only served from cache")
	}
}

func TestEngine_Recommend_NotCachedWhenExplicit(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, catalogArtifact())
	reqs := []Request{
		{UserID: "7", TopN: 2, CandidateIDs: []string{"UD2"}},
		{UserID: "7", TopN: 2, ExcludeSeen: []string{"UD2"}},
	}
	for i, req := range reqs {
		for n := 0; n < 2; n++ {
			resp, err := e.Recommend(context.Background(), req)
			if err != nil {
				t.Fatalf("Recommend(%d) error = %v", i, err)
			}
			if resp.Metadata.CacheHit {
				t.Errorf("request %d served from cache", i)
			}
		}
	}
	if e.Cache().Len() != 0 {
		t.Errorf("cache Len() = %d, want 0", e.Cache().Len())
	}
}

func TestEngine_Recommend_CacheDisabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newEngine(t, cfg, catalogArtifact())
	if e.Cache() != nil {
		t.Fatal("Cache() != nil with caching disabled")
	}
	for i := 0; i < 2; i++ {
		resp, err := e.Recommend(context.Background(), Request{UserID: "7", TopN: 1})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if resp.Metadata.CacheHit {
			t.Error("CacheHit = true with caching disabled")
		}
	}
	if st := e.Status(); st.Cache.Enabled {
		t.Error("Status().Cache.Enabled = true")
	}
}

func TestEngine_Recommend_CanceledContext(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, scenarioArtifact())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Recommend(ctx, Request{UserID: "u1", TopN: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("Recommend() error = %v, want context.Canceled", err)
	}
}

func manyItemsArtifact(n int) *artifact.Artifact {
	a := &artifact.Artifact{
		Dim:         2,
		UserIndex:   map[string]int{"u": 0},
		ItemIndex:   make(map[string]int, n),
		UserFactors: [][]float32{{1, 0}},
		UserBiases:  []float32{0},
		ItemBiases:  make([]float32, n),
	}
	for i := 0; i < n; i++ {
		a.ItemIndex[fmt.Sprintf("I%02d", i)] = i
		a.ItemFactors = append(a.ItemFactors, []float32{float32(i), 1})
	}
	return a
}

func TestEngine_Recommend_SamplesCandidates(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Limits.MaxCandidates = 5
	cfg.Cache.Enabled = false
	e := newEngine(t, cfg, manyItemsArtifact(40))

	first, err := e.Recommend(context.Background(), Request{UserID: "u", TopN: 10})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if first.TotalCandidates != 5 || first.Count != 5 {
		t.Errorf("TotalCandidates/Count = %d/%d, want 5/5", first.TotalCandidates, first.Count)
	}
	second, _ := e.Recommend(context.Background(), Request{UserID: "u", TopN: 10})
	if !slices.Equal(ids(first.Recommendations), ids(second.Recommendations)) {
		t.Errorf("sampling not deterministic: %v vs %v", ids(first.Recommendations), ids(second.Recommendations))
	}
}

func TestSampleIndices(t *testing.T) {
	t.Parallel()

	src := make([]uint32, 100)
	for i := range src {
		src[i] = uint32(i)
	}

	a := sampleIndices(slices.Clone(src), 10, 7)
	b := sampleIndices(slices.Clone(src), 10, 7)
	if !slices.Equal(a, b) {
		t.Errorf("sampleIndices not deterministic: %v vs %v", a, b)
	}
	if len(a) != 10 {
		t.Fatalf("len = %d, want 10", len(a))
	}
	for i := 1; i < len(a); i++ {
		if a[i] <= a[i-1] {
			t.Errorf("sample not strictly increasing at %d: %v", i, a)
		}
	}
	if got := sampleIndices(slices.Clone(src[:3]), 10, 7); len(got) != 3 {
		t.Errorf("k > n: len = %d, want 3", len(got))
	}
}

func TestUserSeed(t *testing.T) {
	t.Parallel()

	// fnv32a("") is the offset basis 2166136261; 2166136261 % 100000 = 36261.
	if got := UserSeed(42, ""); got != 42+36261 {
		t.Errorf("UserSeed(42, \"\") = %d, want %d", got, 42+36261)
	}
	if UserSeed(42, "alice") == UserSeed(42, "bob") {
		t.Error("UserSeed collides for alice and bob")
	}
	if UserSeed(1, "x")+41 != UserSeed(42, "x") {
		t.Error("UserSeed is not base plus a user offset")
	}
}

func TestEngine_SimilarItems(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, catalogArtifact())
	resp, err := e.SimilarItems(context.Background(), "CR1", 2)
	if err != nil {
		t.Fatalf("SimilarItems() error = %v", err)
	}
	// CR3 points the same way as CR1; UD2 and UD4 are orthogonal and tie.
	if got := ids(resp.Items); !slices.Equal(got, []string{"CR3", "UD2"}) {
		t.Errorf("SimilarItems(CR1) = %v, want [CR3 UD2]", got)
	}
	if math.Abs(resp.Items[0].Score-1) > 1e-6 {
		t.Errorf("cosine(CR1, CR3) = %v, want 1", resp.Items[0].Score)
	}
	if resp.Items[0].Title != "Advanced Go" {
		t.Errorf("Title = %q, want Advanced Go", resp.Items[0].Title)
	}

	if _, err := e.SimilarItems(context.Background(), "nope", 2); !errors.Is(err, recerr.ErrNotFound) {
		t.Errorf("SimilarItems(unknown) error = %v, want NotFound", err)
	}
	if _, err := e.SimilarItems(context.Background(), "CR1", 0); !errors.Is(err, recerr.ErrInvalidRequest) {
		t.Errorf("SimilarItems(count 0) error = %v, want InvalidRequest", err)
	}
}

func TestEngine_Users(t *testing.T) {
	t.Parallel()

	a := scenarioArtifact()
	a.UserIndex = map[string]int{"10": 0, "2": 1, "b": 2, "a": 3, "1": 4}
	a.UserFactors = [][]float32{{1, 0}, {1, 0}, {1, 0}, {1, 0}, {1, 0}}
	a.UserBiases = make([]float32, 5)
	e := newEngine(t, nil, a)

	tests := []struct {
		offset, limit int
		want          []string
	}{
		{0, 0, []string{"1", "2", "10", "a", "b"}},
		{1, 2, []string{"2", "10"}},
		{4, 10, []string{"b"}},
		{9, 10, []string{}},
		{-1, 1, []string{"1"}},
	}
	for _, tt := range tests {
		got := e.Users(tt.offset, tt.limit)
		if !slices.Equal(got.Users, tt.want) || got.Total != 5 {
			t.Errorf("Users(%d, %d) = %v (total %d), want %v (total 5)", tt.offset, tt.limit, got.Users, got.Total, tt.want)
		}
	}

	first := e.Users(0, 2)
	first.Users[0] = "zzz"
	if got := e.Users(0, 2); !slices.Equal(got.Users, []string{"1", "2"}) {
		t.Errorf("Users(0, 2) after caller edit = %v, want [1 2]", got.Users)
	}
}

func TestEngine_Items(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, catalogArtifact())
	got := e.Items(" MINE ", 0, 10)
	if got.Total != 2 || got.Source != "mine" {
		t.Errorf("Items(mine) total/source = %d/%q, want 2/mine", got.Total, got.Source)
	}
	if all := e.Items("", 0, 1); all.Total != 4 || len(all.Items) != 1 {
		t.Errorf("Items(all, limit 1) = %d items of %d, want 1 of 4", len(all.Items), all.Total)
	}
}

func TestEngine_Status(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, catalogArtifact())
	_, _ = e.Recommend(context.Background(), Request{UserID: "7", TopN: 1})

	st := e.Status()
	if !st.ModelLoaded || st.UsersCount != 2 || st.ItemsCount != 4 || st.MineItemsCount != 2 || st.Dim != 2 {
		t.Errorf("Status() = %+v", st)
	}
	if st.CatalogItems != 4 || st.HistoryUsers != 2 {
		t.Errorf("catalog counts = %d/%d, want 4/2", st.CatalogItems, st.HistoryUsers)
	}
	if !st.Cache.Enabled || st.Cache.Size != 1 {
		t.Errorf("Cache = %+v, want enabled with 1 entry", st.Cache)
	}
	if !st.ModelInfo.Normalized || st.ModelInfo.Metadata["model_name"] != "catalog-test" {
		t.Errorf("ModelInfo = %+v", st.ModelInfo)
	}
	if st.Metrics.RequestCount != 1 {
		t.Errorf("RequestCount = %d, want 1", st.Metrics.RequestCount)
	}
}

func TestEngine_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil, manyItemsArtifact(30))
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				user := fmt.Sprintf("user-%d", (g+i)%5)
				if _, err := e.Recommend(context.Background(), Request{UserID: user, TopN: 3}); err != nil {
					errs <- err
					return
				}
				_ = e.Status()
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Recommend() error = %v", err)
	}
	if got := e.GetMetrics().RequestCount; got != 16*50 {
		t.Errorf("RequestCount = %d, want %d", got, 16*50)
	}
}

func TestNaturalSort(t *testing.T) {
	t.Parallel()

	in := []string{"b", "010", "10", "9", "a", "-1"}
	got := naturalSort(in)
	want := []string{"-1", "9", "010", "10", "a", "b"}
	if !slices.Equal(got, want) {
		t.Errorf("naturalSort() = %v, want %v", got, want)
	}
	if in[0] != "b" {
		t.Error("naturalSort modified its input")
	}
}

func TestRating(t *testing.T) {
	t.Parallel()

	if got := Rating(2, 2, 2); got != 1 {
		t.Errorf("Rating(equal range) = %v, want 1", got)
	}
	if got := Rating(1.5, 1, 2); math.Abs(got-3) > 1e-6 {
		t.Errorf("Rating(mid) = %v, want ~3", got)
	}
}
