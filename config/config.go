package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Auth configuration
	JWTSecret        string
	SitePasswordHash string

	// Anthropic API for ingredient and storage-advice generation
	AnthropicAPIKey string
	AnthropicAPIURL string

	// Dish image storage
	S3Bucket string
}

// LoadConfig creates a new Config instance with values from environment
// variables or Docker secrets, depending on the environment.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadFromEnv(cfg)
		cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
		cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
		cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	case Development, Test:
		loadFromEnv(cfg)
		// Secrets override env values when present
		if v := readSecret("db_password"); v != "" {
			cfg.DBPassword = v
		}
		if v := readSecret("jwt_secret"); v != "" {
			cfg.JWTSecret = v
		}
		if v := readSecret("redis_password"); v != "" {
			cfg.RedisPassword = v
		}
		if v := readSecret("site_password_hash"); v != "" {
			cfg.SitePasswordHash = v
		}
		if v := readSecret("anthropic_api_key"); v != "" {
			cfg.AnthropicAPIKey = v
		}
	case Production:
		loadFromEnv(cfg)
		cfg.DBUser = readSecret("db_user")
		cfg.DBPassword = readSecret("db_password")
		cfg.JWTSecret = readSecret("jwt_secret")
		cfg.RedisPassword = readSecret("redis_password")
		cfg.SitePasswordHash = readSecret("site_password_hash")
		cfg.AnthropicAPIKey = readSecret("anthropic_api_key")
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "ecogrocery")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnv("DB_NAME", "ecogrocery")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = 0
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.SitePasswordHash = os.Getenv("SITE_PASSWORD_HASH")
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.AnthropicAPIURL = getEnv("ANTHROPIC_API_URL", "https://api.anthropic.com/v1/messages")
	cfg.S3Bucket = getEnv("S3_BUCKET_NAME", "ecogrocery-dish-images")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
