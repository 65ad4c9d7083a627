/**
 * @description
 * Configuration loader for the Scrimline backend.
 * Responsible for reading environment variables, setting defaults, and performing strict validation.
 *
 * @dependencies
 * - github.com/joho/godotenv: For loading .env files
 * - standard "os": For reading env vars
 *
 * @notes
 * - Fails fast if DATABASE_URL is missing.
 * - The active provider list is part of the config on purpose: which sources may
 *   ingest is decided here and seeded into the data_sources registry at startup,
 *   never read from ambient global state.
 */

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Ingest  IngestConfig
	Metrics MetricsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
	Env  string // "development" or "production"
}

// DBConfig holds PostgreSQL settings
type DBConfig struct {
	URL string
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	URL string
}

// IngestConfig holds settings for the ingestion surface
type IngestConfig struct {
	// JobSecret guards the internal ingest endpoint. Empty disables the endpoint.
	JobSecret string
	// Sources is the list of provider names seeded as active data sources.
	Sources []string
}

// MetricsConfig holds the Prometheus side-listener settings
type MetricsConfig struct {
	Enabled bool
	Port    string
}

// Load reads .env file and populates the Config struct
func Load() (*Config, error) {
	// Attempt to load .env, but don't crash if it fails (prod may inject env vars directly)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		DB: DBConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Ingest: IngestConfig{
			JobSecret: strings.TrimSpace(getEnv("INGEST_JOB_SECRET", "")),
			Sources:   splitList(getEnv("SOURCE_TYPES", "bo3")),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Port:    getEnv("METRICS_PORT", "9091"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks for required variables
func validate(cfg *Config) error {
	if cfg.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if len(cfg.Ingest.Sources) == 0 {
		return fmt.Errorf("SOURCE_TYPES must list at least one provider")
	}
	if cfg.Ingest.JobSecret == "" && cfg.Server.Env != "test" {
		fmt.Println("Warning: INGEST_JOB_SECRET is missing. The internal ingest endpoint will refuse requests.")
	}
	return nil
}

// Helper to get env var with default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper to get env var as bool
func getEnvAsBool(key string, fallback bool) bool {
	switch strings.ToLower(getEnv(key, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

// splitList parses a comma separated env value into trimmed, non-empty entries
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
