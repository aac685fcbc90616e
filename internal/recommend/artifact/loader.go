// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

// Package artifact reads and writes serialized model artifacts.
//
// An artifact bundles the latent factors, biases and optional feature
// projections of a trained hybrid model together with optional catalog
// metadata. Two encodings are accepted:
//
//   - native: an HRMF header (version, codec, compression, SHA-256) followed
//     by a gob or JSON payload, optionally gzip, zstd or lz4 compressed
//   - bare: a JSON document, optionally compressed, as produced by external
//     training pipelines
//
// Load is called once at process start. Unreadable sources fail with
// ArtifactNotFound; anything structurally wrong fails with ArtifactCorrupt.
package artifact

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/tomtom215/hybridrank/internal/recommend/embedding"
	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
)

// LoadOptions control Load.
type LoadOptions struct {
	// NormalizeItems caches the unit-length item matrix at load time.
	NormalizeItems bool
}

// Model is a loaded, validated artifact.
type Model struct {
	Store        *embedding.Store
	Items        []ItemRecord
	Interactions map[string][]string
	Metadata     map[string]string
	Info         Info
}

// Info describes where a model came from and how it was encoded.
type Info struct {
	Name          string        `json:"name"`
	Source        string        `json:"source"`
	FormatVersion int           `json:"format_version"`
	Container     string        `json:"container"`
	Codec         string        `json:"codec"`
	Compression   string        `json:"compression"`
	Checksum      string        `json:"checksum"`
	SizeBytes     int64         `json:"size_bytes"`
	LoadDuration  time.Duration `json:"load_duration"`
	LoadedAt      time.Time     `json:"loaded_at"`
}

// Load reads, decodes and validates the named artifact from src.
func Load(ctx context.Context, src Source, name string, opts LoadOptions) (*Model, error) {
	start := time.Now()

	data, err := src.Read(ctx, name)
	if err != nil {
		return nil, recerr.Wrap(recerr.KindArtifactNotFound, err, "load artifact")
	}

	a, format, err := Decode(data)
	if err != nil {
		return nil, err
	}

	store, err := a.Store(opts.NormalizeItems)
	if err != nil {
		return nil, err
	}

	return &Model{
		Store:        store,
		Items:        a.Items,
		Interactions: a.Interactions,
		Metadata:     a.Metadata,
		Info: Info{
			Name:          name,
			Source:        src.String(),
			FormatVersion: a.FormatVersion,
			Container:     format.Container(),
			Codec:         format.Codec.String(),
			Compression:   format.Compression.String(),
			Checksum:      format.Checksum,
			SizeBytes:     format.Size,
			LoadDuration:  time.Since(start),
			LoadedAt:      time.Now().UTC(),
		},
	}, nil
}

// LoadFile loads an artifact from a local path.
func LoadFile(ctx context.Context, path string, opts LoadOptions) (*Model, error) {
	return Load(ctx, FileSource{}, path, opts)
}

// ReadFile decodes an artifact from a local path without building a store.
func ReadFile(path string) (*Artifact, Format, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, Format{}, recerr.Wrap(recerr.KindArtifactNotFound, err, "read %s", path)
	}
	return Decode(data)
}

// WriteFile encodes a to path, replacing any existing file atomically.
func WriteFile(path string, a *Artifact, opts WriteOptions) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".artifact-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := Encode(tmp, a, opts); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
