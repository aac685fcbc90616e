// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

/*
Package cache provides a thread-safe in-memory TTL LRU cache.

The recommendation engine uses it to memoize responses for implicit requests
(no explicit candidates, exclusions or user features), keyed by user, count
and scope. Scoring never reads from the cache, so a stale or missing entry
can only cost latency.

# Usage

	c := cache.NewLRU[*recommend.Response](1000, time.Hour)
	c.Add("rec:42:10:true", resp)
	if v, ok := c.Get("rec:42:10:true"); ok {
	    // use v
	}

# Expiration

Entries expire lazily on Get. A supervised janitor calls CleanupExpired on
an interval so that memory held by entries nobody asks for again is
released.

# Thread Safety

All methods are safe for concurrent use. Get mutates recency order, so a
single mutex guards every operation.
*/
package cache
