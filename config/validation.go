package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for the given environment
func ValidateConfig(cfg *Config, env Environment) error {
	var errs ValidationErrors
	require := func(field, value string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, ValidationError{Field: field, Message: "is required"})
		}
	}

	require("SERVER_PORT", cfg.ServerPort)
	require("JWT_SECRET", cfg.JWTSecret)

	switch cfg.DBDriver {
	case "postgres":
		require("DB_HOST", cfg.DBHost)
		require("DB_NAME", cfg.DBName)
		require("DB_USER", cfg.DBUser)
	case "sqlite":
		require("SQLITE_PATH", cfg.SQLitePath)
		if env == Production {
			errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not allowed in production"})
		}
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	switch cfg.AIProvider {
	case "openai", "chatcompletions":
	default:
		errs = append(errs, ValidationError{Field: "AI_PROVIDER", Message: fmt.Sprintf("unknown provider %q", cfg.AIProvider)})
	}
	if len(cfg.AIModels) == 0 {
		errs = append(errs, ValidationError{Field: "AI_MODELS", Message: "at least one model is required"})
	}
	if cfg.AIRateLimit < 0 {
		errs = append(errs, ValidationError{Field: "AI_RATE_LIMIT", Message: "must not be negative"})
	}

	switch cfg.StorageBackend {
	case "", "s3":
	case "minio":
		require("MINIO_ENDPOINT", cfg.MinioEndpoint)
		require("MINIO_ACCESS_KEY", cfg.MinioAccessKey)
		require("MINIO_SECRET_KEY", cfg.MinioSecretKey)
	default:
		errs = append(errs, ValidationError{Field: "STORAGE_BACKEND", Message: fmt.Sprintf("unknown backend %q", cfg.StorageBackend)})
	}

	// Production additionally needs real credentials.
	if env == Production {
		require("AI_API_KEY", cfg.AIAPIKey)
		if cfg.DBDriver == "postgres" {
			require("DB_PASSWORD", cfg.DBPassword)
		}
		if cfg.JWTSecret == "dev-secret-change-me" {
			errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "development secret used in production"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
