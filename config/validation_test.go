package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	return &Config{
		ServerPort:       "8080",
		DBHost:           "localhost",
		DBPort:           "5432",
		DBUser:           "ecogrocery",
		DBName:           "ecogrocery",
		RedisHost:        "localhost",
		RedisPort:        "6379",
		JWTSecret:        "secret",
		SitePasswordHash: "$2a$10$hash",
	}
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(validTestConfig()))
}

func TestValidateConfigMissingValues(t *testing.T) {
	cfg := validTestConfig()
	cfg.JWTSecret = ""
	cfg.SitePasswordHash = ""

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret is not configured")
	assert.Contains(t, err.Error(), "site password is not configured")
}

func TestValidateConfigStableMessageOrder(t *testing.T) {
	err := ValidateConfig(&Config{})
	require.Error(t, err)

	lines := strings.Split(err.Error(), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "configuration validation failed:", lines[0])
	assert.Equal(t, "server port is not configured", lines[1])
	assert.Equal(t, "site password is not configured", lines[9])
}
