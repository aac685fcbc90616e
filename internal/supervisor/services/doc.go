// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

/*
Package services provides suture.Service wrappers for Hybridrank components.

Each wrapper implements suture's Service interface and fmt.Stringer:

	type Service interface {
	    Serve(ctx context.Context) error
	}

HTTPServerService translates http.Server's blocking ListenAndServe into a
context-aware Serve with graceful Shutdown.

CacheJanitorService runs a ticker that calls CleanupExpired on the response
cache and updates the hybridrank_cache_entries gauge.

Both return ctx.Err() on cancellation so suture treats the stop as clean.
*/
package services
