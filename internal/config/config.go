// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port     string
	Env      string // "development", "staging", "production"
	LogLevel string

	// Database
	DatabaseURL string // PostgreSQL connection string (optional, uses in-memory if not set)

	// Policy engine
	CatalogPath         string // JSON rule catalog file (optional, uses built-in rules if not set)
	ReferenceCurrency   string // currency all evaluated amounts are normalized to
	EscalationThreshold int    // violation count above which escalation is recommended
	ValidationWorkers   int    // parallel evaluation workers per run (1 = sequential)

	// Demo data
	SeedTransactions int // number of mock transactions to seed in in-memory mode

	// Observability
	OTLPEndpoint string // OTLP gRPC endpoint for tracing (optional)
}

// Defaults
const (
	DefaultPort                = "8080"
	DefaultEnv                 = "development"
	DefaultLogLevel            = "info"
	DefaultReferenceCurrency   = "EUR"
	DefaultEscalationThreshold = 10
	DefaultValidationWorkers   = 4
	DefaultSeedTransactions    = 1000
)

// Load reads configuration from environment variables.
// It loads .env file if present (for local development).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not present)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", DefaultPort),
		Env:                 getEnv("ENV", DefaultEnv),
		LogLevel:            getEnv("LOG_LEVEL", DefaultLogLevel),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		CatalogPath:         os.Getenv("CATALOG_PATH"),
		ReferenceCurrency:   getEnv("REFERENCE_CURRENCY", DefaultReferenceCurrency),
		EscalationThreshold: getEnvInt("ESCALATION_THRESHOLD", DefaultEscalationThreshold),
		ValidationWorkers:   getEnvInt("VALIDATION_WORKERS", DefaultValidationWorkers),
		SeedTransactions:    getEnvInt("SEED_TRANSACTIONS", DefaultSeedTransactions),
		OTLPEndpoint:        os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if len(c.ReferenceCurrency) != 3 {
		return fmt.Errorf("REFERENCE_CURRENCY must be a 3-letter code, got %q", c.ReferenceCurrency)
	}
	if c.EscalationThreshold < 1 {
		return fmt.Errorf("ESCALATION_THRESHOLD must be at least 1")
	}
	if c.ValidationWorkers < 1 {
		return fmt.Errorf("VALIDATION_WORKERS must be at least 1")
	}
	if c.SeedTransactions < 0 {
		return fmt.Errorf("SEED_TRANSACTIONS must not be negative")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
