package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	// AI configuration. AIModels is the fallback priority order.
	AIProvider       string
	AIAPIKey         string
	AIBaseURL        string
	AIModels         []string
	AIRateLimit      int
	AIRequestTimeout time.Duration

	// Object storage configuration
	StorageBackend string
	BucketName     string
	AWSRegion      string
	S3PublicRead   bool
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioPublicURL string

	// Local settings file holding the user profile
	ProfilePath string
}

// sensitive settings are read only from Docker secrets in production.
var sensitive = map[string]bool{
	"DB_PASSWORD":      true,
	"JWT_SECRET":       true,
	"REDIS_PASSWORD":   true,
	"AI_API_KEY":       true,
	"MINIO_SECRET_KEY": true,
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	if env == Development {
		// A missing .env file is fine; real variables still apply.
		_ = godotenv.Load()
	}

	cfg, err := load(env)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if err := ValidateConfig(cfg, env); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func load(env Environment) (*Config, error) {
	get := func(key, def string) string {
		return lookup(env, key, def)
	}

	cfg := &Config{
		ServerPort:  get("SERVER_PORT", "8080"),
		ServerHost:  get("SERVER_HOST", "0.0.0.0"),
		CORSOrigins: splitList(get("CORS_ORIGINS", "http://localhost:5173")),

		DBDriver:   get("DB_DRIVER", "postgres"),
		DBHost:     get("DB_HOST", "localhost"),
		DBPort:     get("DB_PORT", "5432"),
		DBUser:     get("DB_USER", "postgres"),
		DBPassword: get("DB_PASSWORD", ""),
		DBName:     get("DB_NAME", "zenkitchen"),
		DBSSLMode:  get("DB_SSL_MODE", "disable"),
		SQLitePath: get("SQLITE_PATH", "zenkitchen.db"),

		RedisHost:     get("REDIS_HOST", "localhost"),
		RedisPort:     get("REDIS_PORT", "6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),
		RedisURL:      get("REDIS_URL", ""),

		JWTSecret: get("JWT_SECRET", ""),

		AIProvider: get("AI_PROVIDER", "openai"),
		AIAPIKey:   get("AI_API_KEY", ""),
		AIBaseURL:  get("AI_BASE_URL", ""),
		AIModels:   splitList(get("AI_MODELS", "gpt-4o-mini")),

		StorageBackend: get("STORAGE_BACKEND", ""),
		BucketName:     get("S3_BUCKET_NAME", "zenkitchen-images"),
		AWSRegion:      get("AWS_REGION", "us-east-1"),
		MinioEndpoint:  get("MINIO_ENDPOINT", ""),
		MinioAccessKey: get("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: get("MINIO_SECRET_KEY", ""),
		MinioPublicURL: get("MINIO_PUBLIC_URL", ""),

		ProfilePath: get("PROFILE_PATH", "profile.yaml"),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(get("REDIS_DB", "0")); err != nil {
		return nil, ValidationError{Field: "REDIS_DB", Message: "must be an integer"}
	}
	if cfg.AIRateLimit, err = strconv.Atoi(get("AI_RATE_LIMIT", "30")); err != nil {
		return nil, ValidationError{Field: "AI_RATE_LIMIT", Message: "must be an integer"}
	}
	if cfg.TokenTTL, err = time.ParseDuration(get("TOKEN_TTL", "720h")); err != nil {
		return nil, ValidationError{Field: "TOKEN_TTL", Message: err.Error()}
	}
	if cfg.AIRequestTimeout, err = time.ParseDuration(get("AI_TIMEOUT", "60s")); err != nil {
		return nil, ValidationError{Field: "AI_TIMEOUT", Message: err.Error()}
	}
	if cfg.S3PublicRead, err = strconv.ParseBool(get("S3_PUBLIC_READ", "false")); err != nil {
		return nil, ValidationError{Field: "S3_PUBLIC_READ", Message: "must be a boolean"}
	}
	if cfg.MinioUseSSL, err = strconv.ParseBool(get("MINIO_USE_SSL", "false")); err != nil {
		return nil, ValidationError{Field: "MINIO_USE_SSL", Message: "must be a boolean"}
	}

	if cfg.JWTSecret == "" && (env == Development || env == Test) {
		cfg.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

// lookup resolves a setting. CI reads only environment variables, production
// reads sensitive values only from Docker secrets, and everything else falls
// back from environment variable to secret file to the default.
func lookup(env Environment, key, def string) string {
	secretName := strings.ToLower(key)

	switch {
	case env == CI:
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	case env == Production && sensitive[key]:
		if v := readSecret(secretName); v != "" {
			return v
		}
		return def
	}

	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := readSecret(secretName); v != "" {
		return v
	}
	return def
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
