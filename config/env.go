package config

import (
	"os"
	"strings"
)

// Environment is the deployment mode of the ZenKitchen API. It decides
// whether .env is read and which settings must come from secret files.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// ParseEnvironment maps an ENV value onto a mode. Unknown and empty values
// fall back to Development.
func ParseEnvironment(raw string) Environment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return Production
	case "test", "testing":
		return Test
	case "ci":
		return CI
	default:
		return Development
	}
}

// GetEnvironment reads the mode from the process. CI=true overrides ENV.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// IsProduction switches gin to release mode and quiets the gorm logger.
func IsProduction() bool {
	return GetEnvironment() == Production
}
