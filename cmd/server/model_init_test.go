// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrank/internal/config"
	"github.com/tomtom215/hybridrank/internal/recommend/artifact"
	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
)

func testConfig(modelPath string) *config.Config {
	return &config.Config{
		Model: config.ModelConfig{
			Source:         config.SourceFile,
			Path:           modelPath,
			NormalizeItems: true,
			LoadTimeout:    time.Minute,
		},
		Recommend: config.RecommendConfig{
			DefaultCount:    10,
			MaxCount:        50,
			MaxCandidates:   1000,
			Seed:            42,
			MineOnlyDefault: true,
			MinePattern:     `^CR\d+`,
			ExcludeHistory:  true,
		},
		Cache: config.CacheConfig{
			Enabled:         true,
			TTL:             time.Hour,
			MaxEntries:      100,
			CleanupInterval: time.Minute,
		},
	}
}

func writeDemo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.hrm")
	a := artifact.Demo(artifact.DemoOptions{Users: 5, Items: 12, Dim: 4, Features: 3, Seed: 1})
	if err := artifact.WriteFile(path, a, artifact.WriteOptions{}); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestOpenSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      config.ModelConfig
		wantName string
		wantErr  bool
	}{
		{"file", config.ModelConfig{Source: config.SourceFile, Path: "m.hrm"}, "m.hrm", false},
		{"empty defaults to file", config.ModelConfig{Path: "m.hrm"}, "m.hrm", false},
		{"minio", config.ModelConfig{Source: config.SourceMinio, Endpoint: "localhost:9000", Bucket: "b", ObjectKey: "k"}, "k", false},
		{"unknown", config.ModelConfig{Source: "ftp"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src, name, err := openSource(context.Background(), &tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("openSource() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if src == nil || name != tt.wantName {
				t.Errorf("openSource() = %v, %q, want source and %q", src, name, tt.wantName)
			}
		})
	}
}

func TestLoadModelAndCatalog(t *testing.T) {
	t.Parallel()

	cfg := testConfig(writeDemo(t))
	logger := zerolog.New(io.Discard)

	model, err := loadModel(context.Background(), &cfg.Model, logger)
	if err != nil {
		t.Fatalf("loadModel() error = %v", err)
	}
	if model.Store.Users().Len() != 5 || model.Store.Items().Len() != 12 {
		t.Errorf("model = %d users %d items, want 5 and 12", model.Store.Users().Len(), model.Store.Items().Len())
	}
	if !model.Store.HasNormalizedItems() {
		t.Error("HasNormalizedItems() = false, want true")
	}

	cat, err := buildCatalog(context.Background(), cfg, model, logger)
	if err != nil {
		t.Fatalf("buildCatalog() error = %v", err)
	}
	if cat.Len() != len(model.Items) {
		t.Errorf("catalog Len() = %d, want %d", cat.Len(), len(model.Items))
	}
	if cat.MineCount() == 0 {
		t.Error("MineCount() = 0, want in-house items from the demo artifact")
	}

	recordModel(model, cat)
}

func TestLoadModel_Missing(t *testing.T) {
	t.Parallel()

	cfg := testConfig(filepath.Join(t.TempDir(), "absent.hrm"))
	_, err := loadModel(context.Background(), &cfg.Model, zerolog.New(io.Discard))
	if recerr.KindOf(err) != recerr.KindArtifactNotFound {
		t.Errorf("loadModel() kind = %v, want ArtifactNotFound", recerr.KindOf(err))
	}
}

func TestBuildCatalog_BadPattern(t *testing.T) {
	t.Parallel()

	cfg := testConfig(writeDemo(t))
	model, err := loadModel(context.Background(), &cfg.Model, zerolog.New(io.Discard))
	if err != nil {
		t.Fatalf("loadModel() error = %v", err)
	}
	cfg.Recommend.MinePattern = "("
	if _, err := buildCatalog(context.Background(), cfg, model, zerolog.New(io.Discard)); err == nil {
		t.Error("buildCatalog() error = nil, want invalid pattern")
	}
}

func TestEngineConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig("unused")
	got := engineConfig(cfg)
	if err := got.Validate(); err != nil {
		t.Fatalf("engineConfig().Validate() error = %v", err)
	}
	if got.Limits.MaxCount != 50 || got.Limits.MaxCandidates != 1000 || got.Seed != 42 {
		t.Errorf("limits = %+v seed = %d", got.Limits, got.Seed)
	}
	if !got.Candidates.MineOnlyDefault || !got.Candidates.ExcludeHistory {
		t.Errorf("candidates = %+v, want both enabled", got.Candidates)
	}
	if got.Cache.TTL != time.Hour || got.Cache.MaxEntries != 100 {
		t.Errorf("cache = %+v", got.Cache)
	}
}

func TestBuildCatalog_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	itemsPath := filepath.Join(dir, "courses.csv")
	histPath := filepath.Join(dir, "interactions.csv")
	writeFile(t, itemsPath, "course_id,course_title,data_source\nCR0001,Go Basics,mine\nUD0002,Marketing,udemy\n")
	writeFile(t, histPath, "user_id,course_id\n1,CR0001\n1,UD0002\n2,CR0001\n")

	cfg := testConfig(writeDemo(t))
	cfg.Model.CatalogPath = itemsPath
	cfg.Model.InteractionsPath = histPath
	logger := zerolog.New(io.Discard)

	model, err := loadModel(context.Background(), &cfg.Model, logger)
	if err != nil {
		t.Fatalf("loadModel() error = %v", err)
	}
	cat, err := buildCatalog(context.Background(), cfg, model, logger)
	if err != nil {
		t.Fatalf("buildCatalog() error = %v", err)
	}

	if cat.Len() != 2 {
		t.Errorf("Len() = %d, want 2 rows from the file", cat.Len())
	}
	if it, ok := cat.Item("CR0001"); !ok || it.Title != "Go Basics" {
		t.Errorf("Item(CR0001) = %+v, %v, want Go Basics", it, ok)
	}
	if cat.MineCount() != 1 {
		t.Errorf("MineCount() = %d, want 1", cat.MineCount())
	}
	if cat.HistoryUsers() != 2 {
		t.Errorf("HistoryUsers() = %d, want 2", cat.HistoryUsers())
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}
