// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings for the analytics service.
type Config struct {
	Port     int
	DataFile string
	CacheTTL time.Duration

	// API keys accepted by the auth middleware. AdminKey additionally
	// unlocks the /admin routes; when empty, a key is generated at
	// startup and logged.
	APIKeys  []string
	AdminKey string

	RateLimit         int
	RateWindowSeconds int

	Log struct {
		Level  string
		Format string
	}
}

// Load reads configuration from environment variables, applying
// defaults suitable for local development.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Port = getEnvInt("PORT", 8080)
	cfg.DataFile = getEnv("DATA_FILE", "data/results_data.csv")
	cfg.CacheTTL = time.Duration(getEnvInt("CACHE_TTL_SECONDS", 3600)) * time.Second

	if keys := getEnv("API_KEYS", ""); keys != "" {
		for _, key := range strings.Split(keys, ",") {
			if key = strings.TrimSpace(key); key != "" {
				cfg.APIKeys = append(cfg.APIKeys, key)
			}
		}
	}
	cfg.AdminKey = getEnv("ADMIN_KEY", "")

	cfg.RateLimit = getEnvInt("RATE_LIMIT", 100)
	cfg.RateWindowSeconds = getEnvInt("RATE_WINDOW_SECONDS", 60)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
