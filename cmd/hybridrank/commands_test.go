// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/hybridrank/internal/recommend/artifact"
)

// run executes the CLI with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeDemoArtifact(t *testing.T, extra ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.hrm")
	args := append([]string{"demo", path, "--users", "4", "--items", "6", "--dim", "3", "--features", "2"}, extra...)
	if _, err := run(t, args...); err != nil {
		t.Fatalf("demo error = %v", err)
	}
	return path
}

func TestRootCommand_Help(t *testing.T) {
	t.Parallel()

	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("--help error = %v", err)
	}
	for _, sub := range []string{"inspect", "validate", "convert", "demo", "version"} {
		if !strings.Contains(out, sub) {
			t.Errorf("help output missing %q", sub)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "hybridrank dev") {
		t.Errorf("version output = %q, want prefix %q", out, "hybridrank dev")
	}
}

func TestDemoAndInspect(t *testing.T) {
	t.Parallel()

	path := writeDemoArtifact(t, "--compression", "lz4")

	out, err := run(t, "inspect", path, "--json")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	var report inspectReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("inspect output is not JSON: %v (%s)", err, out)
	}
	if report.Users != 4 || report.Items != 6 || report.Dim != 3 || report.Features != 2 {
		t.Errorf("report = %+v, want 4 users 6 items dim 3 features 2", report)
	}
	if report.Codec != "gob" || report.Compression != "lz4" || report.Container != "native" {
		t.Errorf("format = %s/%s/%s, want native/gob/lz4", report.Container, report.Codec, report.Compression)
	}
	if report.Checksum == "" {
		t.Error("checksum is empty")
	}

	out, err = run(t, "inspect", path)
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	if !strings.Contains(out, "metadata.model_name") {
		t.Errorf("table output missing metadata:\n%s", out)
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		flags       []string
		codec       artifact.Codec
		compression artifact.Compression
	}{
		{"json gzip", []string{"--codec", "json", "--compression", "gzip"}, artifact.CodecJSON, artifact.CompressionGzip},
		{"gob zstd", []string{"--codec", "gob", "--compression", "zstd"}, artifact.CodecGob, artifact.CompressionZstd},
		{"bare json", []string{"--codec", "json", "--compression", "none", "--bare"}, artifact.CodecJSON, artifact.CompressionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := writeDemoArtifact(t)
			dst := filepath.Join(t.TempDir(), "out.hrm")

			if _, err := run(t, append([]string{"convert", in, dst}, tt.flags...)...); err != nil {
				t.Fatalf("convert error = %v", err)
			}

			want, _, err := artifact.ReadFile(in)
			if err != nil {
				t.Fatalf("ReadFile(in) error = %v", err)
			}
			got, format, err := artifact.ReadFile(dst)
			if err != nil {
				t.Fatalf("ReadFile(out) error = %v", err)
			}
			if format.Codec != tt.codec || format.Compression != tt.compression {
				t.Errorf("format = %s/%s, want %s/%s", format.Codec, format.Compression, tt.codec, tt.compression)
			}
			if got.Summary() != want.Summary() {
				t.Errorf("Summary() = %q, want %q", got.Summary(), want.Summary())
			}
		})
	}
}

func TestConvert_BadFlags(t *testing.T) {
	t.Parallel()

	in := writeDemoArtifact(t)
	dst := filepath.Join(t.TempDir(), "out.hrm")

	if _, err := run(t, "convert", in, dst, "--codec", "xml"); err == nil {
		t.Error("convert --codec xml error = nil, want error")
	}
	if _, err := run(t, "convert", in, dst, "--codec", "gob", "--bare"); err == nil {
		t.Error("convert --bare with gob error = nil, want error")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("output file exists after failed convert (stat err = %v)", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	good := writeDemoArtifact(t)
	out, err := run(t, "validate", good)
	if err != nil {
		t.Fatalf("validate(good) error = %v", err)
	}
	if !strings.HasPrefix(out, "ok: ") {
		t.Errorf("validate output = %q, want ok", out)
	}

	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.hrm")
	if err := os.WriteFile(corrupt, []byte(`{"format_version":1,"dim":0}`), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name     string
		path     string
		wantKind string
	}{
		{"missing", filepath.Join(dir, "absent.hrm"), "ArtifactNotFound"},
		{"corrupt", corrupt, "ArtifactCorrupt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := run(t, "validate", tt.path)
			if err == nil {
				t.Fatal("validate error = nil, want error")
			}
			if !strings.HasPrefix(err.Error(), tt.wantKind) {
				t.Errorf("validate error = %q, want prefix %q", err.Error(), tt.wantKind)
			}
		})
	}
}
