package config

import (
	"os"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment. CI is detected from the
// CI variable, everything else from ENV.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	case "development":
		return Development
	default:
		return Development
	}
}

// IsProduction returns true if the current environment is production
func IsProduction() bool {
	return GetEnvironment() == Production
}

// IsTest returns true if the current environment is test
func IsTest() bool {
	return GetEnvironment() == Test
}
