package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Market   MarketConfig
	CORS     CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// MarketConfig holds market-data fetcher configuration.
// APIKey is the fallback used when no encrypted key has been stored in
// system settings. RefreshSchedule is a cron expression; when empty the
// background refresh job is disabled and quote refresh is caller-driven only.
type MarketConfig struct {
	BaseURL         string
	APIKey          string
	MaxConcurrency  int
	FetchTimeout    time.Duration
	RefreshSchedule string
	SettingsKey     string // base64 fernet key for secrets at rest
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	maxConcurrency, err := strconv.Atoi(getEnv("MARKET_MAX_CONCURRENCY", "5"))
	if err != nil || maxConcurrency < 1 {
		return nil, fmt.Errorf("invalid MARKET_MAX_CONCURRENCY: %q", os.Getenv("MARKET_MAX_CONCURRENCY"))
	}

	fetchTimeout, err := time.ParseDuration(getEnv("MARKET_FETCH_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid MARKET_FETCH_TIMEOUT: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_analyzer.db"),
		},
		Market: MarketConfig{
			BaseURL:         getEnv("MARKET_BASE_URL", "https://www.alphavantage.co"),
			APIKey:          getEnv("MARKET_API_KEY", "demo"),
			MaxConcurrency:  maxConcurrency,
			FetchTimeout:    fetchTimeout,
			RefreshSchedule: getEnv("MARKET_REFRESH_SCHEDULE", ""),
			SettingsKey:     getEnv("SETTINGS_ENCRYPTION_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
