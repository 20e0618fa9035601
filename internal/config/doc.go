// Package config loads and validates configuration for the Hangout dating API.
//
// Values come from environment variables. A .env file in the working
// directory is read first when present and never overrides variables that
// are already set.
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: port, timeouts, CORS origins
//   - DatabaseConfig: SurrealDB connection and migrations directory
//   - AuthConfig: identity provider public key, issuer, campus email domain
//   - RedisConfig: match cache and rate limiter backend
//   - MatchingConfig: questionnaire registry, minimum score, cache TTL, warmer
//   - RateLimitConfig: per-caller request limits
//
// # Environment Variables
//
//	SERVER_PORT                 HTTP port (default 8080)
//	SERVER_ENV                  development | production | test
//	CORS_ALLOWED_ORIGINS        comma separated origins
//	DB_HOST, DB_PORT            SurrealDB address (localhost:8000)
//	DB_NAMESPACE, DB_DATABASE   SurrealDB namespace and database
//	DB_MIGRATIONS_DIR           migrations directory override
//	AUTH_PUBLIC_KEY_PATH        PEM public key of the identity provider
//	AUTH_ISSUER                 expected iss claim
//	AUTH_ALLOWED_EMAIL_DOMAIN   campus email domain (default snu.edu.in)
//	AUTH_LEEWAY                 clock skew tolerance (default 30s)
//	REDIS_ADDRESS               host:port (default localhost:6379)
//	MATCHING_REGISTRY_PATH      YAML questionnaire; empty uses the built-in one
//	MATCH_MIN_SCORE             minimum weighted score for a match (default 0.6)
//	MATCH_CACHE_TTL             cached match list lifetime (default 10m)
//	MATCH_REFRESH_INTERVAL      cache warmer period, 0 disables (default 5m)
//	RATE_LIMIT_REQUESTS         requests per window (default 100)
//	RATE_LIMIT_WINDOW           window length (default 1m)
package config
