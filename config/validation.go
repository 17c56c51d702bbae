package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that every value the service cannot run without is
// present. The Anthropic key is optional: the ingredient service degrades to
// database-only resolution when it is missing.
func ValidateConfig(cfg *Config) error {
	var errors []string

	required := []struct {
		name  string
		value string
	}{
		{"server port", cfg.ServerPort},
		{"database host", cfg.DBHost},
		{"database port", cfg.DBPort},
		{"database user", cfg.DBUser},
		{"database name", cfg.DBName},
		{"redis host", cfg.RedisHost},
		{"redis port", cfg.RedisPort},
		{"jwt secret", cfg.JWTSecret},
		{"site password", cfg.SitePasswordHash},
	}
	for _, field := range required {
		if field.value == "" {
			errors = append(errors, fmt.Sprintf("%s is not configured", field.name))
		}
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			errors = append(errors, "db_password secret is required in production")
		}
		if cfg.DBSSLMode == "disable" {
			errors = append(errors, "database SSL must be enabled in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
