// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in defaults for every setting
//  2. Config File: optional YAML file (config.yaml)
//  3. .env File: optional, never overrides the real environment
//  4. Environment Variables: override any setting
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Model     ModelConfig     `koanf:"model"`
	Recommend RecommendConfig `koanf:"recommend"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host  string `koanf:"host"`
	Port  int    `koanf:"port"`
	Debug bool   `koanf:"debug"` // Forces debug logging

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Model sources.
const (
	SourceFile  = "file"
	SourceS3    = "s3"
	SourceMinio = "minio"
)

// ModelConfig locates the model artifact and optional catalog files.
//
// Environment Variables:
//   - MODEL_SOURCE: file, s3 or minio (default: file)
//   - MODEL_PATH: local artifact path (default: models/recommendation_model.hrm)
//   - MODEL_BUCKET, MODEL_OBJECT_KEY: object location for s3/minio
//   - MODEL_REGION, MODEL_ENDPOINT, MODEL_ACCESS_KEY, MODEL_SECRET_KEY, MODEL_USE_SSL
//   - MODEL_NORMALIZE_ITEMS: precompute unit-length item vectors (default: true)
//   - MODEL_LOAD_TIMEOUT: startup load deadline (default: 2m)
//   - CATALOG_PATH, INTERACTIONS_PATH: CSV/Parquet/JSON files read with DuckDB
type ModelConfig struct {
	Source    string `koanf:"source"`
	Path      string `koanf:"path"`
	Bucket    string `koanf:"bucket"`
	ObjectKey string `koanf:"object_key"`
	Region    string `koanf:"region"`
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	UseSSL    bool   `koanf:"use_ssl"`

	NormalizeItems bool          `koanf:"normalize_items"`
	LoadTimeout    time.Duration `koanf:"load_timeout"`

	CatalogPath      string `koanf:"catalog_path"`
	InteractionsPath string `koanf:"interactions_path"`
}

// RecommendConfig holds serving limits and candidate generation settings.
type RecommendConfig struct {
	DefaultCount    int    `koanf:"default_count"`
	MaxCount        int    `koanf:"max_count"`
	MaxCandidates   int    `koanf:"max_candidates"` // 0 disables sampling
	Seed            int64  `koanf:"seed"`
	MineOnlyDefault bool   `koanf:"mine_only_default"`
	MinePattern     string `koanf:"mine_pattern"` // Used when the catalog has no source column
	ExcludeHistory  bool   `koanf:"exclude_history"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	Enabled         bool          `koanf:"enabled"`
	TTL             time.Duration `koanf:"ttl"`
	MaxEntries      int           `koanf:"max_entries"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// EffectiveLevel returns the log level, forced to debug in debug mode.
func (c *Config) EffectiveLevel() string {
	if c.Server.Debug {
		return "debug"
	}
	return c.Logging.Level
}
