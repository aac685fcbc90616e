// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/hybridrank/config.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotenvPathEnvVar overrides the .env file location.
const DotenvPathEnvVar = "DOTENV_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			Debug:           false,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Model: ModelConfig{
			Source:         SourceFile,
			Path:           "models/recommendation_model.hrm",
			UseSSL:         true,
			NormalizeItems: true,
			LoadTimeout:    2 * time.Minute,
		},
		Recommend: RecommendConfig{
			DefaultCount:    10,
			MaxCount:        50,
			MaxCandidates:   1000,
			Seed:            42,
			MineOnlyDefault: true,
			MinePattern:     `^CR\d+`,
			ExcludeHistory:  true,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             time.Hour,
			MaxEntries:      1000,
			CleanupInterval: 5 * time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in defaults
//  2. Config File: optional YAML config file (if exists)
//  3. .env File: optional, loaded into the process environment without
//     overriding variables that are already set
//  4. Environment Variables: override any setting
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: .env file (optional)
	if err := loadDotenv(); err != nil {
		return nil, err
	}

	// Layer 4: Environment variables (highest priority)
	if err := k.Load(env.ProviderWithValue("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadDotenv reads .env (or DOTENV_PATH) into the environment. A missing
// file is not an error.
func loadDotenv() error {
	path := os.Getenv(DotenvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to config paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"port":             "server.port",
	"http_port":        "server.port",
	"http_host":        "server.host",
	"debug":            "server.debug",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	// Model
	"model_source":          "model.source",
	"model_path":            "model.path",
	"model_bucket":          "model.bucket",
	"model_object_key":      "model.object_key",
	"model_region":          "model.region",
	"model_endpoint":        "model.endpoint",
	"model_access_key":      "model.access_key",
	"model_secret_key":      "model.secret_key",
	"model_use_ssl":         "model.use_ssl",
	"model_normalize_items": "model.normalize_items",
	"model_load_timeout":    "model.load_timeout",
	"catalog_path":          "model.catalog_path",
	"interactions_path":     "model.interactions_path",

	// Recommend
	"default_rec_count": "recommend.default_count",
	"max_rec_count":     "recommend.max_count",
	"max_candidates":    "recommend.max_candidates",
	"recommend_seed":    "recommend.seed",
	"mine_only_default": "recommend.mine_only_default",
	"mine_pattern":      "recommend.mine_pattern",
	"exclude_history":   "recommend.exclude_history",

	// Cache
	"cache_enabled":          "cache.enabled",
	"cache_ttl":              "cache.ttl",
	"max_cache_size":         "cache.max_entries",
	"cache_cleanup_interval": "cache.cleanup_interval",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// durationPaths accept a bare integer as a number of seconds.
var durationPaths = map[string]bool{
	"server.read_timeout":        true,
	"server.write_timeout":       true,
	"server.shutdown_timeout":    true,
	"model.load_timeout":         true,
	"cache.ttl":                  true,
	"cache.cleanup_interval":     true,
	"security.rate_limit_window": true,
}

// envTransformFunc maps an environment variable to a config path and value.
// An empty path skips the variable.
//
// Examples:
//   - HTTP_PORT=8080 -> server.port
//   - CACHE_TTL=3600 -> cache.ttl = "3600s"
//   - MAX_CACHE_SIZE=500 -> cache.max_entries
func envTransformFunc(key, value string) (string, any) {
	lower := strings.ToLower(key)
	path, ok := envMappings[lower]
	if !ok {
		return "", nil
	}

	// HTTP_PORT takes precedence over PORT when both are set.
	if lower == "port" {
		if _, set := os.LookupEnv("HTTP_PORT"); set {
			return "", nil
		}
	}

	value = strings.TrimSpace(value)
	if durationPaths[path] && isDigits(value) {
		value += "s"
	}
	return path, value
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
