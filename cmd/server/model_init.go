// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package main

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/hybridrank/internal/config"
	"github.com/tomtom215/hybridrank/internal/metrics"
	"github.com/tomtom215/hybridrank/internal/recommend"
	"github.com/tomtom215/hybridrank/internal/recommend/artifact"
	"github.com/tomtom215/hybridrank/internal/recommend/catalog"
)

// openSource returns the artifact source for the configured backend and the
// name to read from it.
func openSource(ctx context.Context, cfg *config.ModelConfig) (artifact.Source, string, error) {
	switch cfg.Source {
	case config.SourceFile, "":
		return artifact.FileSource{}, cfg.Path, nil

	case config.SourceS3:
		src, err := artifact.NewS3Source(ctx, artifact.S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
		if err != nil {
			return nil, "", err
		}
		return src, cfg.ObjectKey, nil

	case config.SourceMinio:
		src, err := artifact.NewMinioSource(artifact.MinioConfig{
			Endpoint:  cfg.Endpoint,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
		})
		if err != nil {
			return nil, "", err
		}
		return src, cfg.ObjectKey, nil

	default:
		return nil, "", fmt.Errorf("unknown model source %q", cfg.Source)
	}
}

// loadModel reads and validates the artifact within model.load_timeout and
// publishes the model gauges.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func loadModel(ctx context.Context, cfg *config.ModelConfig, logger zerolog.Logger) (*artifact.Model, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	src, name, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("source", src.String()).
		Str("name", name).
		Bool("normalize_items", cfg.NormalizeItems).
		Msg("loading model artifact")

	model, err := artifact.Load(ctx, src, name, artifact.LoadOptions{NormalizeItems: cfg.NormalizeItems})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("users", model.Store.Users().Len()).
		Int("items", model.Store.Items().Len()).
		Int("dim", model.Store.Dim()).
		Int("format_version", model.Info.FormatVersion).
		Str("container", model.Info.Container).
		Str("codec", model.Info.Codec).
		Str("compression", model.Info.Compression).
		Str("checksum", model.Info.Checksum).
		Dur("duration", model.Info.LoadDuration).
		Msg("model artifact loaded")

	return model, nil
}

// buildCatalog builds the catalog from the artifact, replacing its items or
// interactions with the configured files. The two files load concurrently.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func buildCatalog(ctx context.Context, cfg *config.Config, model *artifact.Model, logger zerolog.Logger) (*catalog.Catalog, error) {
	pattern, err := regexp.Compile(cfg.Recommend.MinePattern)
	if err != nil {
		return nil, fmt.Errorf("recommend.mine_pattern: %w", err)
	}

	rows := recommend.CatalogRows(model.Items)
	interactions := model.Interactions

	if cfg.Model.CatalogPath != "" || cfg.Model.InteractionsPath != "" {
		loader, err := catalog.NewFileLoader()
		if err != nil {
			return nil, err
		}
		defer func() { _ = loader.Close() }()

		g, gctx := errgroup.WithContext(ctx)
		if path := cfg.Model.CatalogPath; path != "" {
			g.Go(func() error {
				items, err := loader.LoadItems(gctx, path)
				if err != nil {
					return fmt.Errorf("load catalog: %w", err)
				}
				rows = items
				logger.Info().Str("path", path).Int("items", len(items)).Msg("catalog file loaded")
				return nil
			})
		}
		if path := cfg.Model.InteractionsPath; path != "" {
			g.Go(func() error {
				hist, err := loader.LoadInteractions(gctx, path)
				if err != nil {
					return fmt.Errorf("load interactions: %w", err)
				}
				interactions = hist
				logger.Info().Str("path", path).Int("users", len(hist)).Msg("interactions file loaded")
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	return catalog.New(model.Store.Items(), rows, interactions, catalog.Options{MinePattern: pattern}), nil
}

// engineConfig maps service configuration onto the engine's.
func engineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultCount:  cfg.Recommend.DefaultCount,
			MaxCount:      cfg.Recommend.MaxCount,
			MaxCandidates: cfg.Recommend.MaxCandidates,
		},
		Candidates: recommend.CandidatesConfig{
			MineOnlyDefault: cfg.Recommend.MineOnlyDefault,
			ExcludeHistory:  cfg.Recommend.ExcludeHistory,
		},
		Cache: recommend.CacheConfig{
			Enabled:    cfg.Cache.Enabled,
			TTL:        cfg.Cache.TTL,
			MaxEntries: cfg.Cache.MaxEntries,
		},
		Seed: cfg.Recommend.Seed,
	}
}

// recordModel publishes the loaded model to the Prometheus gauges.
func recordModel(model *artifact.Model, cat *catalog.Catalog) {
	features := 0
	if f := model.Store.Features(); f != nil {
		features = f.Len()
	}
	metrics.RecordModelLoad(metrics.ModelStats{
		Users:         model.Store.Users().Len(),
		Items:         model.Store.Items().Len(),
		Features:      features,
		MineItems:     cat.MineCount(),
		FormatVersion: model.Info.FormatVersion,
		Checksum:      model.Info.Checksum,
		Source:        model.Info.Source,
		SizeBytes:     model.Info.SizeBytes,
		LoadDuration:  model.Info.LoadDuration,
	})
}
