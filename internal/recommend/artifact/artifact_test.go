// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package artifact

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/klauspost/compress/gzip"

	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
)

func encode(t *testing.T, a *Artifact, opts WriteOptions) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, a, opts); err != nil {
		t.Fatalf("Encode(%+v) error = %v", opts, err)
	}
	return buf.Bytes()
}

func TestEncodeDecode_AllFormats(t *testing.T) {
	t.Parallel()

	src := Demo(DemoOptions{Users: 12, Items: 30, Dim: 4, Features: 3, Seed: 1})

	for _, codec := range []Codec{CodecGob, CodecJSON} {
		for _, comp := range []Compression{CompressionNone, CompressionGzip, CompressionZstd, CompressionLZ4} {
			opts := WriteOptions{Codec: codec, Compression: comp}
			t.Run(codec.String()+"/"+comp.String(), func(t *testing.T) {
				t.Parallel()

				got, format, err := Decode(encode(t, src, opts))
				if err != nil {
					t.Fatalf("Decode() error = %v", err)
				}
				if !format.Native || format.Codec != codec || format.Compression != comp {
					t.Errorf("format = %+v, want native %s/%s", format, codec, comp)
				}
				if len(format.Checksum) != 64 {
					t.Errorf("checksum = %q, want 64 hex chars", format.Checksum)
				}

				store, err := got.Store(false)
				if err != nil {
					t.Fatalf("Store() error = %v", err)
				}
				if store.Dim() != src.Dim {
					t.Errorf("Dim() = %d, want %d", store.Dim(), src.Dim)
				}
				if store.Users().Len() != len(src.UserIndex) || store.Items().Len() != len(src.ItemIndex) {
					t.Errorf("sizes = %d/%d, want %d/%d", store.Users().Len(), store.Items().Len(), len(src.UserIndex), len(src.ItemIndex))
				}
				if store.Features().Len() != 3 || !store.HasItemProjection() {
					t.Errorf("feature projection lost in round trip")
				}
				if len(got.Items) != len(src.Items) || got.Metadata["model_name"] != "demo" {
					t.Errorf("catalog metadata lost in round trip")
				}
				i, _ := store.Items().Lookup("CR0001")
				if v := store.ItemVector(i); v[0] != src.ItemFactors[0][0] {
					t.Errorf("ItemVector(CR0001)[0] = %v, want %v", v[0], src.ItemFactors[0][0])
				}
			})
		}
	}
}

func TestDecode_BareJSON(t *testing.T) {
	t.Parallel()

	doc := `{
		"format_version": 1, "dim": 2,
		"user_index": {"u1": 0},
		"item_index": {"i1": 0, "i2": 1},
		"user_factors": [[1, 0]],
		"item_factors": [[1, 0], [0, 1]],
		"user_biases": [0],
		"item_biases": [0, 0]
	}`

	a, format, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if format.Native || format.Codec != CodecJSON || format.Compression != CompressionNone {
		t.Errorf("format = %+v, want bare json", format)
	}
	if _, err := a.Store(true); err != nil {
		t.Errorf("Store() error = %v", err)
	}

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, _ = zw.Write([]byte(doc))
	_ = zw.Close()
	if _, format, err := Decode(gz.Bytes()); err != nil || format.Compression != CompressionGzip {
		t.Errorf("Decode(gzip bare) = %+v, %v", format, err)
	}

	bare := encode(t, a, WriteOptions{Codec: CodecJSON, Compression: CompressionZstd, Bare: true})
	if _, format, err := Decode(bare); err != nil || format.Native || format.Compression != CompressionZstd {
		t.Errorf("Decode(zstd bare) = %+v, %v", format, err)
	}
}

func TestDecode_BareJSONWithoutBiases(t *testing.T) {
	t.Parallel()

	doc := `{
		"format_version": 1, "dim": 2,
		"user_index": {"u1": 0},
		"item_index": {"i1": 0},
		"user_factors": [[1, 0]],
		"item_factors": [[1, 0]]
	}`

	a, _, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if _, err := a.Store(false); !errors.Is(err, recerr.ErrArtifactCorrupt) {
		t.Errorf("Store() error = %v, want ArtifactCorrupt", err)
	}
}

func TestEncode_UnknownCompressionWritesNothing(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Encode(&buf, Demo(DemoOptions{}), WriteOptions{Codec: CodecGob, Compression: Compression(9)})
	if err == nil {
		t.Fatal("Encode() error = nil, want unknown compression")
	}
	if buf.Len() != 0 {
		t.Errorf("Encode() wrote %d bytes before failing, want 0", buf.Len())
	}
}

func TestEncode_BareRequiresJSON(t *testing.T) {
	t.Parallel()

	err := Encode(&bytes.Buffer{}, Demo(DemoOptions{}), WriteOptions{Codec: CodecGob, Bare: true})
	if err == nil {
		t.Error("Encode(bare gob) error = nil, want error")
	}
}

func TestDecode_Corrupt(t *testing.T) {
	t.Parallel()

	good := encode(t, Demo(DemoOptions{Seed: 2}), WriteOptions{Codec: CodecGob})

	flipped := append([]byte(nil), good...)
	flipped[len(flipped)-1] ^= 0xff

	badVersion := append([]byte(nil), good...)
	badVersion[4] = 9

	badCodec := append([]byte(nil), good...)
	badCodec[5] = 7

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, "unrecognized artifact encoding"},
		{"garbage", []byte("not a model"), "unrecognized artifact encoding"},
		{"truncated header", []byte("HRMF\x01"), "truncated header"},
		{"checksum", flipped, ""},
		{"container version", badVersion, "unsupported container version"},
		{"codec", badCodec, "unknown codec"},
		{"bad json", []byte(`{"dim": "two"}`), "decode json payload"},
		{"bad gzip", []byte{0x1f, 0x8b, 0x00}, "gzip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Decode(tt.data)
			if !errors.Is(err, recerr.ErrArtifactCorrupt) {
				t.Fatalf("Decode() error = %v, want ArtifactCorrupt", err)
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Decode() error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestParams_Validation(t *testing.T) {
	t.Parallel()

	base := func() *Artifact {
		return &Artifact{
			FormatVersion: 1,
			Dim:           2,
			UserIndex:     map[string]int{"u1": 0},
			ItemIndex:     map[string]int{"i1": 0, "i2": 1},
			UserFactors:   [][]float32{{1, 0}},
			ItemFactors:   [][]float32{{1, 0}, {0, 1}},
			UserBiases:    []float32{0},
			ItemBiases:    []float32{0, 0},
		}
	}

	tests := []struct {
		name   string
		mutate func(a *Artifact)
		want   string
	}{
		{"missing version", func(a *Artifact) { a.FormatVersion = 0 }, "format_version is missing"},
		{"future version", func(a *Artifact) { a.FormatVersion = 2 }, "unsupported format_version 2"},
		{"zero dim", func(a *Artifact) { a.Dim = 0 }, "dim must be positive"},
		{"no users", func(a *Artifact) { a.UserIndex = nil }, "user_index is empty"},
		{"no items", func(a *Artifact) { a.ItemIndex = map[string]int{} }, "item_index is empty"},
		{"index gap", func(a *Artifact) { a.ItemIndex = map[string]int{"i1": 0, "i2": 2} }, "out of range"},
		{"index collision", func(a *Artifact) { a.ItemIndex = map[string]int{"i1": 1, "i2": 1} }, "assigned to both"},
		{"row count", func(a *Artifact) { a.ItemFactors = a.ItemFactors[:1] }, "item_factors: 1 rows, want 2"},
		{"row dimension", func(a *Artifact) { a.UserFactors = [][]float32{{1, 0, 0}} }, "dimension 3, want 2"},
		{"bias length", func(a *Artifact) { a.ItemBiases = []float32{0} }, "item biases"},
		{"missing user biases", func(a *Artifact) { a.UserBiases = nil }, "user biases: length 0, want 1"},
		{"missing item biases", func(a *Artifact) { a.ItemBiases = nil }, "item biases: length 0, want 2"},
		{"projection rows", func(a *Artifact) {
			a.FeatureIndex = map[string]int{"f": 0}
			a.ItemFeatureFactors = [][]float32{{1, 1}, {1, 1}}
		}, "item_feature_factors: 2 rows, want 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a := base()
			tt.mutate(a)
			_, err := a.Store(false)
			if !errors.Is(err, recerr.ErrArtifactCorrupt) {
				t.Fatalf("Store() error = %v, want ArtifactCorrupt", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Store() error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "model.hrm")
	if err := WriteFile(path, Demo(DemoOptions{Seed: 3}), WriteOptions{Codec: CodecGob, Compression: CompressionZstd}); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	m, err := Load(context.Background(), FileSource{Root: dir}, "model.hrm", LoadOptions{NormalizeItems: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !m.Store.HasNormalizedItems() {
		t.Error("normalized items not cached")
	}
	if m.Info.Codec != "gob" || m.Info.Compression != "zstd" || m.Info.Container != "native" {
		t.Errorf("Info = %+v", m.Info)
	}
	if m.Info.FormatVersion != FormatVersion || m.Info.SizeBytes == 0 || m.Info.Source != "file" {
		t.Errorf("Info = %+v", m.Info)
	}
	if len(m.Items) != 50 {
		t.Errorf("len(Items) = %d, want 50", len(m.Items))
	}
}

func TestLoad_NotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.hrm"), LoadOptions{})
	if !errors.Is(err, recerr.ErrArtifactNotFound) {
		t.Fatalf("LoadFile() error = %v, want ArtifactNotFound", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("LoadFile() error lost os.ErrNotExist cause")
	}

	// A directory is unreadable as an artifact.
	_, err = LoadFile(context.Background(), t.TempDir(), LoadOptions{})
	if !errors.Is(err, recerr.ErrArtifactNotFound) {
		t.Errorf("LoadFile(dir) error = %v, want ArtifactNotFound", err)
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(`{"format_version": 7, "dim": 2}`), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFile(context.Background(), path, LoadOptions{})
	if !errors.Is(err, recerr.ErrArtifactCorrupt) {
		t.Fatalf("LoadFile() error = %v, want ArtifactCorrupt", err)
	}
}

type fakeS3 struct{}

func (fakeS3) HeadObject(context.Context, *s3.HeadObjectInput, ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	return nil, &types.NotFound{}
}

func (fakeS3) GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return nil, &types.NoSuchKey{}
}

func TestS3Source_NotFound(t *testing.T) {
	t.Parallel()

	src := NewS3SourceWithClient(fakeS3{}, "models", "prod")
	_, err := Load(context.Background(), src, "model.hrm", LoadOptions{})
	if !errors.Is(err, recerr.ErrArtifactNotFound) {
		t.Fatalf("Load() error = %v, want ArtifactNotFound", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("missing S3 object not mapped to os.ErrNotExist")
	}
	if src.String() != "s3://models" {
		t.Errorf("String() = %q", src.String())
	}
}

func TestParseCodecAndCompression(t *testing.T) {
	t.Parallel()

	if c, err := ParseCodec("JSON"); err != nil || c != CodecJSON {
		t.Errorf("ParseCodec(JSON) = %v, %v", c, err)
	}
	if _, err := ParseCodec("msgpack"); err == nil {
		t.Error("ParseCodec(msgpack) error = nil")
	}
	for in, want := range map[string]Compression{"": CompressionNone, "gz": CompressionGzip, "zstd": CompressionZstd, "lz4": CompressionLZ4} {
		if got, err := ParseCompression(in); err != nil || got != want {
			t.Errorf("ParseCompression(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseCompression("brotli"); err == nil {
		t.Error("ParseCompression(brotli) error = nil")
	}
}
