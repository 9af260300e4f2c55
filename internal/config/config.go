package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	AlphaVantageAPIKey  string        `env:"ALPHA_VANTAGE_API_KEY"`
	AlphaVantageBaseURL string        `env:"ALPHA_VANTAGE_BASE_URL" envDefault:"https://www.alphavantage.co"`
	FetchTimeout        time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	FetchRatePerMin     int           `env:"FETCH_RATE_PER_MIN" envDefault:"5"`
	FetchMaxRetries     int           `env:"FETCH_MAX_RETRIES" envDefault:"0"`
	Host                string        `env:"HOST" envDefault:"127.0.0.1"`
	Port                int           `env:"PORT" envDefault:"8001"`
	ShutdownTimeout     time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"LOG_FORMAT" envDefault:"console"` // console or json
	ClassifierEnabled   bool          `env:"CLASSIFIER_ENABLED" envDefault:"true"`
	SyntheticSeed       int64         `env:"SYNTHETIC_SEED" envDefault:"42"`
	SyntheticRows       int           `env:"SYNTHETIC_ROWS" envDefault:"200"`
	DatabaseURL         string        `env:"DATABASE_URL"` // empty disables the prediction journal
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	return FromEnv(), nil
}

// FromEnv reads the configuration from the process environment only
func FromEnv() *Config {
	var cfg Config

	cfg.AlphaVantageAPIKey = os.Getenv("ALPHA_VANTAGE_API_KEY")
	cfg.AlphaVantageBaseURL = getEnvWithDefault("ALPHA_VANTAGE_BASE_URL", "https://www.alphavantage.co")
	cfg.FetchTimeout = getEnvDurationWithDefault("FETCH_TIMEOUT", 10*time.Second)
	cfg.FetchRatePerMin = getEnvIntWithDefault("FETCH_RATE_PER_MIN", 5)
	cfg.FetchMaxRetries = getEnvIntWithDefault("FETCH_MAX_RETRIES", 0)
	cfg.Host = getEnvWithDefault("HOST", "127.0.0.1")
	cfg.Port = getEnvIntWithDefault("PORT", 8001)
	cfg.ShutdownTimeout = getEnvDurationWithDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getEnvWithDefault("LOG_FORMAT", "console")
	cfg.ClassifierEnabled = getEnvBoolWithDefault("CLASSIFIER_ENABLED", true)
	cfg.SyntheticSeed = int64(getEnvIntWithDefault("SYNTHETIC_SEED", 42))
	cfg.SyntheticRows = getEnvIntWithDefault("SYNTHETIC_ROWS", 200)
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	return &cfg
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid integer, using default")
	}
	return defaultValue
}

// getEnvDurationWithDefault accepts Go durations ("10s") or plain seconds ("10")
func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration, using default")
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
