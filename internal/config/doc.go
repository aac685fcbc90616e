// Hybridrank - Hybrid Matrix-Factorization Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hybridrank

/*
Package config provides centralized configuration management for Hybridrank.

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Built-in defaults
 2. Optional YAML file: CONFIG_PATH, config.yaml, config.yml or
    /etc/hybridrank/config.yaml
 3. Optional .env file (or DOTENV_PATH), which never overrides variables
    that are already set
 4. Environment variables

# Environment Variables

HTTP Server (ServerConfig):
  - PORT / HTTP_PORT: Listen port (default: 5000, HTTP_PORT wins)
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - DEBUG: Force debug logging (default: false)
  - READ_TIMEOUT, WRITE_TIMEOUT, SHUTDOWN_TIMEOUT

Model (ModelConfig):
  - MODEL_SOURCE: file, s3 or minio (default: file)
  - MODEL_PATH: Artifact path (default: models/recommendation_model.hrm)
  - MODEL_BUCKET, MODEL_OBJECT_KEY, MODEL_REGION, MODEL_ENDPOINT
  - MODEL_ACCESS_KEY, MODEL_SECRET_KEY, MODEL_USE_SSL
  - MODEL_NORMALIZE_ITEMS (default: true), MODEL_LOAD_TIMEOUT (default: 2m)
  - CATALOG_PATH, INTERACTIONS_PATH: Optional catalog files

Recommendations (RecommendConfig):
  - DEFAULT_REC_COUNT (default: 10), MAX_REC_COUNT (default: 50)
  - MAX_CANDIDATES: Sampling limit, 0 disables (default: 1000)
  - RECOMMEND_SEED (default: 42)
  - MINE_ONLY_DEFAULT (default: true), MINE_PATTERN (default: ^CR\d+)
  - EXCLUDE_HISTORY (default: true)

Caching (CacheConfig):
  - CACHE_ENABLED (default: true), CACHE_TTL (default: 1h)
  - MAX_CACHE_SIZE: Max cached responses (default: 1000)
  - CACHE_CLEANUP_INTERVAL (default: 5m)

Security (SecurityConfig):
  - CORS_ORIGINS: Comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS (default: 100), RATE_LIMIT_WINDOW (default: 1m)
  - DISABLE_RATE_LIMIT (default: false)

Logging (LoggingConfig):
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Duration variables accept Go duration strings ("90s", "1h") or a bare
integer number of seconds ("3600").

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("Failed to load config: %v", err)
	}
	fmt.Printf("Listening on %s\n", cfg.Server.Addr())

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for concurrent
access from multiple goroutines without synchronization.
*/
package config
