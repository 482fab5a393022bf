// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port              string
	Address           string
	Env               string
	LogLevel          string
	LogRetentionWeeks int
	MaxRequestBody    int64 // Maximum request body size in bytes
	MaxHeaderSize     int64 // Maximum header size in bytes
	SessionSecret     string
	SessionTTL        time.Duration
	AllowedOrigins    []string
}

// Load loads and validates configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8000"),
		Address:           getEnvWithDefault("ADDRESS", "127.0.0.1"),
		Env:               getEnvWithDefault("ENV", "dev"),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		LogRetentionWeeks: getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4),
		MaxRequestBody:    getInt64EnvWithDefault("MAX_REQUEST_BODY", 1048576), // 1MB default
		MaxHeaderSize:     getInt64EnvWithDefault("MAX_HEADER_SIZE", 1048576),  // 1MB default
		SessionSecret:     getEnvWithDefault("SESSION_SECRET", "pharmatrack-dev-secret"),
		SessionTTL:        time.Duration(getIntEnvWithDefault("SESSION_TTL_HOURS", 12)) * time.Hour,
		AllowedOrigins:    splitList(getEnvWithDefault("ALLOWED_ORIGINS", "*")),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates all configuration values.
func validateConfig(cfg *Config) error {
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}
	if err := validateEnv(cfg.Env); err != nil {
		return fmt.Errorf("invalid ENV: %w", err)
	}
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if cfg.LogRetentionWeeks < 1 || cfg.LogRetentionWeeks > 52 {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: must be between 1 and 52")
	}
	if err := validateSizeLimit(cfg.MaxRequestBody, "MAX_REQUEST_BODY"); err != nil {
		return err
	}
	if err := validateSizeLimit(cfg.MaxHeaderSize, "MAX_HEADER_SIZE"); err != nil {
		return err
	}
	if err := validateSessionSecret(cfg); err != nil {
		return err
	}
	if cfg.SessionTTL < time.Minute || cfg.SessionTTL > 7*24*time.Hour {
		return fmt.Errorf("invalid SESSION_TTL_HOURS: must be between 1 minute and 7 days")
	}
	return nil
}

// validatePort validates the PORT environment variable.
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

// validateAddress validates the ADDRESS environment variable.
func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}

	if address == "127.0.0.1" || address == "::1" || address == "localhost" {
		return nil
	}

	if ip := net.ParseIP(address); ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or localhost")
	}

	return nil
}

// validateEnv validates the ENV environment variable.
func validateEnv(env string) error {
	switch env {
	case "dev", "staging", "prod":
		return nil
	}
	return fmt.Errorf("ENV must be one of: dev, staging, prod")
}

// validateLogLevel validates the LOG_LEVEL environment variable.
func validateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
}

// validateSizeLimit validates a byte size limit.
func validateSizeLimit(size int64, name string) error {
	if size < 1024 {
		return fmt.Errorf("invalid %s: must be at least 1KB", name)
	}
	if size > 100*1024*1024 {
		return fmt.Errorf("invalid %s: must be at most 100MB", name)
	}
	return nil
}

// validateSessionSecret requires a non-default secret outside dev.
func validateSessionSecret(cfg *Config) error {
	if cfg.SessionSecret == "" {
		return fmt.Errorf("invalid SESSION_SECRET: cannot be empty")
	}
	if cfg.Env != "dev" {
		if cfg.SessionSecret == "pharmatrack-dev-secret" {
			return fmt.Errorf("invalid SESSION_SECRET: default secret not allowed outside dev")
		}
		if len(cfg.SessionSecret) < 16 {
			return fmt.Errorf("invalid SESSION_SECRET: must be at least 16 characters")
		}
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt64EnvWithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
