package config

import (
	"os"
	"time"
)

const (
	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Suggestions
	MaxSuggestions      = 20
	SuggestionCacheTTL  = 5 * time.Minute
	SuggestionCachePref = "suggest:"

	// Presence
	LastSeenTTL    = 2 * time.Minute
	LastSeenPrefix = "lastseen:"
)

// Config holds the process-level settings read from the environment.
type Config struct {
	DatabaseDSN string
	RedisAddr   string
	ListenAddr  string
	JWTSecret   string
}

// Load reads the configuration from environment variables, falling back to
// local development defaults (the docker-compose setup).
func Load() *Config {
	return &Config{
		DatabaseDSN: getenv("DATABASE_DSN",
			"host=localhost user=user password=password dbname=travelmatchdb port=5432 sslmode=disable"),
		RedisAddr:  getenv("REDIS_ADDR", "localhost:6379"),
		ListenAddr: getenv("LISTEN_ADDR", ":8080"),
		JWTSecret:  getenv("JWT_SECRET", "dev-only-secret-change-me"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
