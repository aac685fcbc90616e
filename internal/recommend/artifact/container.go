// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package artifact

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/tomtom215/hybridrank/internal/recommend/recerr"
)

// Native container layout:
//
//	offset  size  field
//	0       4     magic "HRMF"
//	4       1     container version
//	5       1     codec
//	6       1     compression
//	7       1     reserved (0)
//	8       32    SHA-256 of the uncompressed payload
//	40      ...   payload
const (
	containerVersion = 1
	headerSize       = 40
)

var (
	magicNative = []byte("HRMF")
	magicGzip   = []byte{0x1f, 0x8b}
	magicZstd   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4    = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Codec is the payload serialization.
type Codec byte

const (
	CodecGob  Codec = 1
	CodecJSON Codec = 2
)

func (c Codec) String() string {
	switch c {
	case CodecGob:
		return "gob"
	case CodecJSON:
		return "json"
	default:
		return fmt.Sprintf("codec(%d)", byte(c))
	}
}

// ParseCodec parses "gob" or "json".
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(s) {
	case "gob":
		return CodecGob, nil
	case "json":
		return CodecJSON, nil
	default:
		return 0, fmt.Errorf("unknown codec %q (want gob or json)", s)
	}
}

// Compression is the payload compression.
type Compression byte

const (
	CompressionNone Compression = 0
	CompressionGzip Compression = 1
	CompressionZstd Compression = 2
	CompressionLZ4  Compression = 3
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", byte(c))
	}
}

// ParseCompression parses none, gzip, zstd or lz4.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return CompressionNone, nil
	case "gzip", "gz":
		return CompressionGzip, nil
	case "zstd":
		return CompressionZstd, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, gzip, zstd or lz4)", s)
	}
}

// Format describes how an artifact was encoded.
type Format struct {
	Native      bool
	Codec       Codec
	Compression Compression
	Checksum    string // hex SHA-256 of the uncompressed payload
	Size        int64  // encoded size in bytes
}

// Container returns "native" or "bare".
func (f Format) Container() string {
	if f.Native {
		return "native"
	}
	return "bare"
}

// WriteOptions control Encode.
type WriteOptions struct {
	Codec       Codec
	Compression Compression

	// Bare skips the native header. Only the JSON codec may be bare.
	Bare bool
}

// Encode serializes a to w.
func Encode(w io.Writer, a *Artifact, opts WriteOptions) error {
	if opts.Codec == 0 {
		opts.Codec = CodecGob
	}
	if opts.Bare && opts.Codec != CodecJSON {
		return fmt.Errorf("bare artifacts must use the json codec")
	}

	payload, err := marshal(opts.Codec, a)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	// The compressors buffer until the first Write, so nothing reaches w
	// when the compression is unknown.
	cw, err := compressor(w, opts.Compression)
	if err != nil {
		return err
	}

	if !opts.Bare {
		sum := sha256.Sum256(payload)
		header := make([]byte, 0, headerSize)
		header = append(header, magicNative...)
		header = append(header, containerVersion, byte(opts.Codec), byte(opts.Compression), 0)
		header = append(header, sum[:]...)
		if _, err := w.Write(header); err != nil {
			_ = cw.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}
	if _, err := cw.Write(payload); err != nil {
		_ = cw.Close()
		return fmt.Errorf("write payload: %w", err)
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("flush payload: %w", err)
	}
	return nil
}

// Decode parses an encoded artifact. Native containers and bare JSON
// (optionally gzip, zstd or lz4 compressed) are recognized by their leading
// bytes. Every failure is ArtifactCorrupt.
func Decode(data []byte) (*Artifact, Format, error) {
	format := Format{Size: int64(len(data))}

	var payload []byte
	var err error
	switch {
	case bytes.HasPrefix(data, magicNative):
		payload, err = decodeNative(data, &format)
	default:
		payload, err = decodeBare(data, &format)
	}
	if err != nil {
		return nil, format, err
	}

	a := &Artifact{}
	if err := unmarshal(format.Codec, payload, a); err != nil {
		return nil, format, recerr.Wrap(recerr.KindArtifactCorrupt, err, "decode %s payload", format.Codec)
	}
	return a, format, nil
}

func decodeNative(data []byte, format *Format) ([]byte, error) {
	if len(data) < headerSize {
		return nil, recerr.Corrupt("truncated header: %d bytes", len(data))
	}
	if v := data[4]; v != containerVersion {
		return nil, recerr.Corrupt("unsupported container version %d", v)
	}
	format.Native = true
	format.Codec = Codec(data[5])
	format.Compression = Compression(data[6])
	if format.Codec != CodecGob && format.Codec != CodecJSON {
		return nil, recerr.Corrupt("unknown %s", format.Codec)
	}
	expected := hex.EncodeToString(data[8:headerSize])
	format.Checksum = expected

	payload, err := decompress(data[headerSize:], format.Compression)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(payload)
	if actual := hex.EncodeToString(sum[:]); actual != expected {
		return nil, recerr.Corrupt("checksum mismatch: expected %s, got %s", expected, actual)
	}
	return payload, nil
}

func decodeBare(data []byte, format *Format) ([]byte, error) {
	format.Codec = CodecJSON
	switch {
	case bytes.HasPrefix(data, magicGzip):
		format.Compression = CompressionGzip
	case bytes.HasPrefix(data, magicZstd):
		format.Compression = CompressionZstd
	case bytes.HasPrefix(data, magicLZ4):
		format.Compression = CompressionLZ4
	}

	payload, err := decompress(data, format.Compression)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimLeft(payload, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, recerr.Corrupt("unrecognized artifact encoding")
	}
	sum := sha256.Sum256(payload)
	format.Checksum = hex.EncodeToString(sum[:])
	return payload, nil
}

func marshal(c Codec, a *Artifact) ([]byte, error) {
	switch c {
	case CodecGob:
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(a); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CodecJSON:
		return json.Marshal(a)
	default:
		return nil, fmt.Errorf("unknown %s", c)
	}
}

func unmarshal(c Codec, payload []byte, a *Artifact) error {
	switch c {
	case CodecGob:
		return gob.NewDecoder(bytes.NewReader(payload)).Decode(a)
	case CodecJSON:
		return json.Unmarshal(payload, a)
	default:
		return fmt.Errorf("unknown %s", c)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionGzip:
		return gzip.NewWriter(w), nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return enc, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown %s", c)
	}
}

func decompress(data []byte, c Compression) ([]byte, error) {
	var r io.Reader
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, recerr.Wrap(recerr.KindArtifactCorrupt, err, "gzip header")
		}
		defer func() { _ = zr.Close() }()
		r = zr
	case CompressionZstd:
		zr, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, recerr.Wrap(recerr.KindArtifactCorrupt, err, "zstd header")
		}
		defer zr.Close()
		r = zr
	case CompressionLZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		return nil, recerr.Corrupt("unknown %s", c)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, recerr.Wrap(recerr.KindArtifactCorrupt, err, "decompress %s", c)
	}
	return out, nil
}
