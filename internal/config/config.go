package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Redis     RedisConfig
	Matching  MatchingConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	Env             string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host          string
	Port          string
	Namespace     string
	Database      string
	User          string
	Password      string
	MigrationsDir string // Empty means search upward for ./migrations
}

// AuthConfig holds bearer token validation settings. Tokens are issued by
// the campus identity provider; the API only needs its public key.
type AuthConfig struct {
	PublicKeyPath      string
	Issuer             string
	AllowedEmailDomain string
	Leeway             time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// MatchingConfig holds compatibility and match list settings
type MatchingConfig struct {
	RegistryPath    string // Empty means the built-in questionnaire
	MinScore        float64
	CacheTTL        time.Duration
	RefreshInterval time.Duration // Zero disables the cache warmer
	RefreshBatch    int
}

// RateLimitConfig holds per-caller request limits
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is applied first when
// present; variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	minScore, err := getFloatEnv("MATCH_MIN_SCORE", 0.6)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("SERVER_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "8000"),
			Namespace:     getEnv("DB_NAMESPACE", "hangout"),
			Database:      getEnv("DB_DATABASE", "main"),
			User:          getEnv("DB_USER", "root"),
			Password:      getEnv("DB_PASSWORD", "root"),
			MigrationsDir: getEnv("DB_MIGRATIONS_DIR", ""),
		},
		Auth: AuthConfig{
			PublicKeyPath:      getEnv("AUTH_PUBLIC_KEY_PATH", "./keys/public.pem"),
			Issuer:             getEnv("AUTH_ISSUER", "snu-idp"),
			AllowedEmailDomain: getEnv("AUTH_ALLOWED_EMAIL_DOMAIN", "snu.edu.in"),
			Leeway:             getDurationEnv("AUTH_LEEWAY", 30*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Matching: MatchingConfig{
			RegistryPath:    getEnv("MATCHING_REGISTRY_PATH", ""),
			MinScore:        minScore,
			CacheTTL:        getDurationEnv("MATCH_CACHE_TTL", 10*time.Minute),
			RefreshInterval: getDurationEnv("MATCH_REFRESH_INTERVAL", 5*time.Minute),
			RefreshBatch:    getIntEnv("MATCH_REFRESH_BATCH", 200),
		},
		RateLimit: RateLimitConfig{
			Enabled:  getBoolEnv("RATE_LIMIT_ENABLED", true),
			Requests: getIntEnv("RATE_LIMIT_REQUESTS", 100),
			Window:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Database validation
	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	// Auth validation
	if c.Auth.PublicKeyPath == "" {
		errs = append(errs, errors.New("AUTH_PUBLIC_KEY_PATH is required"))
	}
	if c.Auth.Issuer == "" {
		errs = append(errs, errors.New("AUTH_ISSUER is required"))
	}
	if c.IsProduction() && c.Auth.AllowedEmailDomain == "" {
		errs = append(errs, errors.New("AUTH_ALLOWED_EMAIL_DOMAIN is required in production"))
	}
	if c.Auth.Leeway < 0 {
		errs = append(errs, errors.New("AUTH_LEEWAY must not be negative"))
	}

	if c.Redis.Address == "" {
		errs = append(errs, errors.New("REDIS_ADDRESS is required"))
	}

	// Matching validation
	if c.Matching.MinScore < 0 || c.Matching.MinScore > 1 {
		errs = append(errs, fmt.Errorf("MATCH_MIN_SCORE must be within [0, 1], got %g", c.Matching.MinScore))
	}
	if c.Matching.CacheTTL <= 0 {
		errs = append(errs, errors.New("MATCH_CACHE_TTL must be positive"))
	}
	if c.Matching.RefreshInterval < 0 {
		errs = append(errs, errors.New("MATCH_REFRESH_INTERVAL must not be negative"))
	}
	if c.Matching.RefreshInterval > 0 && c.Matching.RefreshBatch <= 0 {
		errs = append(errs, errors.New("MATCH_REFRESH_BATCH must be positive when the refresher is enabled"))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.Requests <= 0 {
			errs = append(errs, errors.New("RATE_LIMIT_REQUESTS must be positive"))
		}
		if c.RateLimit.Window <= 0 {
			errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getFloatEnv fails on malformed input instead of using the default
func getFloatEnv(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
