package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	IdPIssuer      string // Required: issuer expected on identity provider tokens
	IdPHS256Secret string // Required: shared HMAC secret for verifying those tokens

	DatabaseFile         string        // Optional: path to SQLite database file (default: ./workspace.db)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-invite cleanup interval (default: 1h)
	InviteTTL            time.Duration // Default invite validity window (default: 168h)
	AutosaveQuietPeriod  time.Duration // Debounce quiet period for document edits (default: 1s)
	PersistTimeout       time.Duration // Deadline on a single autosave persistence call (default: 5s)
}

func LoadConfig() Config {
	cfg := Config{
		IdPIssuer:            os.Getenv("IDP_ISSUER"),
		IdPHS256Secret:       os.Getenv("IDP_HS256_SECRET"),
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "workspace.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		InviteTTL:            getEnvDurationOrDefault("INVITE_TTL", 7*24*time.Hour),
		AutosaveQuietPeriod:  getEnvDurationOrDefault("AUTOSAVE_QUIET_PERIOD", time.Second),
		PersistTimeout:       getEnvDurationOrDefault("PERSIST_TIMEOUT", 5*time.Second),
	}

	if cfg.IdPIssuer == "" {
		cfg.IdPIssuer = "workspace-idp"
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Parse as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Fall back to integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
