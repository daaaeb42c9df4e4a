package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration; RedisAddr empty disables the rate limiter
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Comma-separated CORS origins
	AllowedOrigins []string
}

// Load builds the configuration from environment variables, falling back to
// Docker-secrets files for sensitive values outside CI.
func Load() (*Config, error) {
	cfg := &Config{
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnvOrSecret("DB_USER", "db_user", "postgres"),
		DBPassword:     getEnvOrSecret("DB_PASSWORD", "db_password", ""),
		DBName:         getEnv("DB_NAME", "tastebook"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnvOrSecret("REDIS_PASSWORD", "redis_password", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		JWTSecret:      getEnvOrSecret("JWT_SECRET", "jwt_secret", ""),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}
	cfg.RedisDB = redisDB

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvOrSecret prefers the environment variable (CI) over a Docker
// secrets file (development and production).
func getEnvOrSecret(envKey, secretName, fallback string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	if value := readSecret(secretName); value != "" {
		return value
	}
	return fallback
}

func readSecret(name string) string {
	dir := os.Getenv("SECRETS_DIR")
	if dir == "" {
		dir = "/run/secrets"
	}
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
