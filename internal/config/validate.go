// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("READ_TIMEOUT must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("WRITE_TIMEOUT must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateModel() error {
	switch c.Model.Source {
	case SourceFile:
		if c.Model.Path == "" {
			return fmt.Errorf("MODEL_PATH is required when MODEL_SOURCE is %q", SourceFile)
		}
	case SourceS3, SourceMinio:
		if c.Model.Bucket == "" {
			return fmt.Errorf("MODEL_BUCKET is required when MODEL_SOURCE is %q", c.Model.Source)
		}
		if c.Model.ObjectKey == "" {
			return fmt.Errorf("MODEL_OBJECT_KEY is required when MODEL_SOURCE is %q", c.Model.Source)
		}
		if c.Model.Source == SourceMinio && c.Model.Endpoint == "" {
			return fmt.Errorf("MODEL_ENDPOINT is required when MODEL_SOURCE is %q", SourceMinio)
		}
	default:
		return fmt.Errorf("MODEL_SOURCE must be one of file, s3, minio, got %q", c.Model.Source)
	}
	if c.Model.LoadTimeout <= 0 {
		return fmt.Errorf("MODEL_LOAD_TIMEOUT must be positive, got %s", c.Model.LoadTimeout)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.DefaultCount < 1 {
		return fmt.Errorf("DEFAULT_REC_COUNT must be at least 1, got %d", r.DefaultCount)
	}
	if r.MaxCount < 1 {
		return fmt.Errorf("MAX_REC_COUNT must be at least 1, got %d", r.MaxCount)
	}
	if r.DefaultCount > r.MaxCount {
		return fmt.Errorf("DEFAULT_REC_COUNT (%d) must not exceed MAX_REC_COUNT (%d)", r.DefaultCount, r.MaxCount)
	}
	if r.MaxCandidates < 0 {
		return fmt.Errorf("MAX_CANDIDATES must not be negative, got %d", r.MaxCandidates)
	}
	if r.MinePattern != "" {
		if _, err := regexp.Compile(r.MinePattern); err != nil {
			return fmt.Errorf("MINE_PATTERN is not a valid regular expression: %w", err)
		}
	}
	return nil
}

func (c *Config) validateCache() error {
	if !c.Cache.Enabled {
		return nil
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when the cache is enabled, got %s", c.Cache.TTL)
	}
	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("MAX_CACHE_SIZE must be at least 1 when the cache is enabled, got %d", c.Cache.MaxEntries)
	}
	if c.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("CACHE_CLEANUP_INTERVAL must be positive, got %s", c.Cache.CleanupInterval)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func (c *Config) validateLogging() error {
	level := strings.ToLower(c.Logging.Level)
	if !validLogLevels[level] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	format := strings.ToLower(c.Logging.Format)
	if format != "json" && format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
