// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

/*
Package main is the entry point for the Hybridrank recommendation server.

The server loads a trained hybrid matrix-factorization artifact once at
startup and serves personalized rankings over HTTP. It never trains.

# Startup

 1. Configuration: koanf v2 (defaults, config.yaml, .env, environment)
 2. Logging: zerolog with JSON or console output
 3. Model: the artifact is read from the configured source (file, s3 or
    minio) within model.load_timeout. A missing or corrupt artifact is
    fatal.
 4. Catalog: item metadata and interaction files, when configured, are
    loaded through DuckDB in parallel. Without them the catalog comes from
    the artifact.
 5. Engine, router and supervisor tree:

	RootSupervisor ("hybridrank")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheJanitorService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Configuration

Priority: environment variables > .env > config file > defaults.

	PORT=5000                                # or HTTP_PORT, which wins
	MODEL_SOURCE=file                        # file, s3 or minio
	MODEL_PATH=models/recommendation_model.hrm
	CATALOG_PATH=data/courses.csv            # optional
	INTERACTIONS_PATH=data/interactions.csv  # optional
	CACHE_TTL=1h
	LOG_LEVEL=info
	LOG_FORMAT=json

An object store model:

	MODEL_SOURCE=minio
	MODEL_ENDPOINT=minio:9000
	MODEL_BUCKET=models
	MODEL_OBJECT_KEY=prod/model.hrm
	MODEL_ACCESS_KEY=...
	MODEL_SECRET_KEY=...

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for up to server.shutdown_timeout, and services that
fail to stop in time are reported before exit.

# Endpoints

	GET  /                                service info
	GET  /metrics                         Prometheus metrics
	GET  /api/v1/health[/live|/ready]     probes
	GET  /api/v1/status                   model and cache status
	GET  /api/v1/recommendations          query-string recommendations
	POST /api/v1/recommendations          JSON recommendations
	GET  /api/v1/users                    known users
	GET  /api/v1/items                    catalog items, ?source= filter
	GET  /api/v1/items/{id}/similar       nearest items by cosine
*/
package main
