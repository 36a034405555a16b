package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	DBDriver    string
	DatabaseURL string
	DBPath      string

	AdminPassword    string
	AdminTokenSecret string
	AdminTokenTTL    time.Duration

	AnthropicAPIKey  string
	AnthropicBaseURL string
	AnthropicModel   string
	LLMRatePerSec    float64

	FileStore          string
	DropboxAccessToken string
	DropboxRoot        string
	S3Endpoint         string
	S3Bucket           string
	S3AccessKey        string
	S3SecretKey        string
	S3UseSSL           bool
	LocalPDFDir        string

	RedisURL string
	CacheTTL time.Duration

	QdrantURL          string
	QdrantCollection   string
	QdrantVectorSize   int
	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingAPIKey    string

	SiteProfilePath string
}

// DSN returns the connection string for the selected driver.
func (c *Config) DSN() string {
	if c.DBDriver == DriverPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

// SemanticEnabled reports whether the Qdrant index is configured.
func (c *Config) SemanticEnabled() bool {
	return c.QdrantURL != ""
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or up to five parents, it is loaded.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		APIPort:   getEnv("API_PORT", "9000"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		DBDriver:    getEnv("DB_DRIVER", DriverSQLite),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		DBPath:      getEnv("DB_PATH", "./data/portfolio.db"),

		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		AdminTokenSecret: getEnv("ADMIN_TOKEN_SECRET", ""),

		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		AnthropicModel:   getEnv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		FileStore:          getEnv("FILE_STORE", "dropbox"),
		DropboxAccessToken: getEnv("DROPBOX_ACCESS_TOKEN", ""),
		DropboxRoot:        getEnv("DROPBOX_ROOT", ""),
		S3Endpoint:         getEnv("S3_ENDPOINT", ""),
		S3Bucket:           getEnv("S3_BUCKET", ""),
		S3AccessKey:        getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:        getEnv("S3_SECRET_KEY", ""),
		LocalPDFDir:        getEnv("LOCAL_PDF_DIR", ""),

		RedisURL: getEnv("REDIS_URL", ""),

		QdrantURL:          getEnv("QDRANT_URL", ""),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "papers"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", ""),

		SiteProfilePath: getEnv("SITE_PROFILE_PATH", ""),
	}

	var err error
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	if cfg.AdminTokenTTL, err = getDuration("ADMIN_TOKEN_TTL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.LLMRatePerSec, err = strconv.ParseFloat(getEnv("LLM_RATE_PER_SEC", "2"), 64); err != nil {
		return nil, fmt.Errorf("LLM_RATE_PER_SEC must be a number: %w", err)
	}
	if cfg.S3UseSSL, err = strconv.ParseBool(getEnv("S3_USE_SSL", "true")); err != nil {
		return nil, fmt.Errorf("S3_USE_SSL must be a boolean: %w", err)
	}

	if cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD is required")
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER is postgres")
		}
	case DriverSQLite:
		dataDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	default:
		return nil, fmt.Errorf("DB_DRIVER must be postgres or sqlite3, got %q", cfg.DBDriver)
	}

	switch cfg.FileStore {
	case "dropbox", "s3", "local":
	default:
		return nil, fmt.Errorf("FILE_STORE must be dropbox, s3 or local, got %q", cfg.FileStore)
	}

	// The vector size must match the embeddings model output. Changing it
	// requires recreating the Qdrant collection.
	if cfg.SemanticEnabled() {
		vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
		if vectorSizeStr == "" {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required when QDRANT_URL is set")
		}
		vectorSize, err := strconv.Atoi(vectorSizeStr)
		if err != nil {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
		}
		if vectorSize <= 0 {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
		}
		cfg.QdrantVectorSize = vectorSize
	}

	return cfg, nil
}

// loadDotEnv loads .env from the working directory, then from the first
// parent (up to five levels) that has one. Missing files are ignored.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
