// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/hybridrank/internal/metrics"
)

// DefaultCleanupInterval is used when the janitor is given a non-positive
// interval.
const DefaultCleanupInterval = 5 * time.Minute

// ExpiringCache is a cache whose expired entries can be purged in bulk.
// Satisfied by *cache.LRU.
type ExpiringCache interface {
	CleanupExpired() int
	Len() int
}

// CacheJanitorService periodically purges expired cache entries and
// publishes the remaining entry count to the cache gauge.
type CacheJanitorService struct {
	cache     ExpiringCache
	cacheName string
	interval  time.Duration
	logger    zerolog.Logger
	name      string
}

// NewCacheJanitorService creates a janitor for c. cacheName is the metrics
// label.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(c ExpiringCache, cacheName string, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &CacheJanitorService{
		cache:     c,
		cacheName: cacheName,
		interval:  interval,
		logger:    logger.With().Str("service", "cache-janitor").Str("cache", cacheName).Logger(),
		name:      "cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("cache janitor started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *CacheJanitorService) sweep() {
	removed := s.cache.CleanupExpired()
	remaining := s.cache.Len()
	metrics.UpdateCacheEntries(s.cacheName, remaining)

	if removed > 0 {
		s.logger.Debug().
			Int("removed", removed).
			Int("remaining", remaining).
			Msg("expired cache entries purged")
	}
}

// String names the service in supervisor events.
func (s *CacheJanitorService) String() string {
	return s.name
}
