// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Candidates controls implicit candidate generation.
	Candidates CandidatesConfig `json:"candidates"`

	// Cache contains response caching parameters.
	Cache CacheConfig `json:"cache"`

	// Seed is the base seed for candidate sampling.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultCount is used when a request omits top_n.
	DefaultCount int `json:"default_count"`

	// MaxCount clamps top_n.
	MaxCount int `json:"max_count"`

	// MaxCandidates caps implicit candidate sets. Zero disables sampling.
	MaxCandidates int `json:"max_candidates"`
}

// CandidatesConfig controls how candidates are built when the caller
// supplies none.
type CandidatesConfig struct {
	// MineOnlyDefault is the scope used when a request does not say.
	MineOnlyDefault bool `json:"mine_only_default"`

	// ExcludeHistory removes the user's past items from the base set.
	ExcludeHistory bool `json:"exclude_history"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	// Enabled turns response caching on.
	Enabled bool `json:"enabled"`

	// TTL is the lifetime of cached responses.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is the cache capacity.
	MaxEntries int `json:"max_entries"`
}

// DefaultSeed is used when Config.Seed is zero.
const DefaultSeed = 42

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultCount:  10,
			MaxCount:      50,
			MaxCandidates: 1000,
		},
		Candidates: CandidatesConfig{
			MineOnlyDefault: true,
			ExcludeHistory:  true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        time.Hour,
			MaxEntries: 1000,
		},
		Seed: DefaultSeed,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultCount < 1 {
		return fmt.Errorf("limits.default_count must be positive, got %d", c.Limits.DefaultCount)
	}
	if c.Limits.MaxCount < 1 {
		return fmt.Errorf("limits.max_count must be positive, got %d", c.Limits.MaxCount)
	}
	if c.Limits.DefaultCount > c.Limits.MaxCount {
		return fmt.Errorf("limits.default_count (%d) exceeds limits.max_count (%d)",
			c.Limits.DefaultCount, c.Limits.MaxCount)
	}
	if c.Limits.MaxCandidates < 0 {
		return fmt.Errorf("limits.max_candidates must be non-negative, got %d", c.Limits.MaxCandidates)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive when cache is enabled, got %d", c.Cache.MaxEntries)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
