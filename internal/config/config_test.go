package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configKeys = []string{
	"API_PORT", "LOG_LEVEL", "LOG_FORMAT",
	"DB_DRIVER", "DATABASE_URL", "DB_PATH",
	"ADMIN_PASSWORD", "ADMIN_TOKEN_SECRET", "ADMIN_TOKEN_TTL",
	"ANTHROPIC_API_KEY", "ANTHROPIC_BASE_URL", "ANTHROPIC_MODEL", "LLM_RATE_PER_SEC",
	"FILE_STORE", "DROPBOX_ACCESS_TOKEN", "DROPBOX_ROOT",
	"S3_ENDPOINT", "S3_BUCKET", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_USE_SSL",
	"LOCAL_PDF_DIR", "REDIS_URL", "CACHE_TTL",
	"QDRANT_URL", "QDRANT_COLLECTION", "QDRANT_VECTOR_SIZE",
	"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME", "EMBEDDING_API_KEY",
	"SITE_PROFILE_PATH",
}

// cleanEnv clears every config key and moves into a directory without a .env file.
func cleanEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     bool
		checkConfig func(*testing.T, *Config)
	}{
		{
			name: "defaults",
			env:  map[string]string{"ADMIN_PASSWORD": "hunter2"},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.APIPort != "9000" || cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "text" {
					t.Errorf("Load() server defaults = %q %q %q", cfg.APIPort, cfg.LogLevel, cfg.LogFormat)
				}
				if cfg.DBDriver != DriverSQLite || cfg.DSN() != "./data/portfolio.db" {
					t.Errorf("Load() db = %v %v, want sqlite3 ./data/portfolio.db", cfg.DBDriver, cfg.DSN())
				}
				if cfg.AdminTokenTTL != 12*time.Hour || cfg.CacheTTL != 5*time.Minute {
					t.Errorf("Load() ttls = %v %v", cfg.AdminTokenTTL, cfg.CacheTTL)
				}
				if cfg.AnthropicBaseURL != "https://api.anthropic.com" || cfg.AnthropicModel != "claude-sonnet-4-20250514" {
					t.Errorf("Load() model defaults = %v %v", cfg.AnthropicBaseURL, cfg.AnthropicModel)
				}
				if cfg.LLMRatePerSec != 2 {
					t.Errorf("Load() LLMRatePerSec = %v, want 2", cfg.LLMRatePerSec)
				}
				if cfg.FileStore != "dropbox" || !cfg.S3UseSSL {
					t.Errorf("Load() file store = %v ssl=%v", cfg.FileStore, cfg.S3UseSSL)
				}
				if cfg.SemanticEnabled() || cfg.QdrantCollection != "papers" {
					t.Errorf("Load() semantic = %v collection = %v", cfg.SemanticEnabled(), cfg.QdrantCollection)
				}
				if _, err := os.Stat("data"); err != nil {
					t.Errorf("Load() should create the sqlite data directory: %v", err)
				}
			},
		},
		{
			name:    "missing ADMIN_PASSWORD",
			env:     map[string]string{},
			wantErr: true,
		},
		{
			name: "postgres",
			env: map[string]string{
				"ADMIN_PASSWORD": "x",
				"DB_DRIVER":      "postgres",
				"DATABASE_URL":   "postgres://u:p@localhost/portfolio",
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.DSN() != "postgres://u:p@localhost/portfolio" {
					t.Errorf("Load() DSN = %v", cfg.DSN())
				}
			},
		},
		{
			name:    "postgres without DATABASE_URL",
			env:     map[string]string{"ADMIN_PASSWORD": "x", "DB_DRIVER": "postgres"},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			env:     map[string]string{"ADMIN_PASSWORD": "x", "DB_DRIVER": "mysql"},
			wantErr: true,
		},
		{
			name:    "unknown file store",
			env:     map[string]string{"ADMIN_PASSWORD": "x", "FILE_STORE": "ftp"},
			wantErr: true,
		},
		{
			name:    "bad duration",
			env:     map[string]string{"ADMIN_PASSWORD": "x", "CACHE_TTL": "soon"},
			wantErr: true,
		},
		{
			name:    "bad log level",
			env:     map[string]string{"ADMIN_PASSWORD": "x", "LOG_LEVEL": "loud"},
			wantErr: true,
		},
		{
			name:    "bad rate",
			env:     map[string]string{"ADMIN_PASSWORD": "x", "LLM_RATE_PER_SEC": "fast"},
			wantErr: true,
		},
		{
			name: "qdrant with vector size",
			env: map[string]string{
				"ADMIN_PASSWORD":     "x",
				"QDRANT_URL":         "http://localhost:6333",
				"QDRANT_VECTOR_SIZE": "768",
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if !cfg.SemanticEnabled() || cfg.QdrantVectorSize != 768 {
					t.Errorf("Load() semantic = %v size = %v", cfg.SemanticEnabled(), cfg.QdrantVectorSize)
				}
			},
		},
		{
			name:    "qdrant without vector size",
			env:     map[string]string{"ADMIN_PASSWORD": "x", "QDRANT_URL": "http://localhost:6333"},
			wantErr: true,
		},
		{
			name:    "invalid QDRANT_VECTOR_SIZE",
			env:     map[string]string{"ADMIN_PASSWORD": "x", "QDRANT_URL": "http://q", "QDRANT_VECTOR_SIZE": "invalid"},
			wantErr: true,
		},
		{
			name:    "zero QDRANT_VECTOR_SIZE",
			env:     map[string]string{"ADMIN_PASSWORD": "x", "QDRANT_URL": "http://q", "QDRANT_VECTOR_SIZE": "0"},
			wantErr: true,
		},
		{
			name: "custom values",
			env: map[string]string{
				"ADMIN_PASSWORD":  "x",
				"API_PORT":        "8080",
				"ADMIN_TOKEN_TTL": "30m",
				"FILE_STORE":      "local",
				"LOCAL_PDF_DIR":   "/srv/pdfs",
				"S3_USE_SSL":      "false",
				"LOG_LEVEL":       "debug",
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.APIPort != "8080" || cfg.AdminTokenTTL != 30*time.Minute || cfg.LogLevel != slog.LevelDebug {
					t.Errorf("Load() = port %v ttl %v", cfg.APIPort, cfg.AdminTokenTTL)
				}
				if cfg.FileStore != "local" || cfg.LocalPDFDir != "/srv/pdfs" || cfg.S3UseSSL {
					t.Errorf("Load() file store = %v %v ssl=%v", cfg.FileStore, cfg.LocalPDFDir, cfg.S3UseSSL)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil {
				tt.checkConfig(t, cfg)
			}
		})
	}
}

func TestLoad_DotEnvInParent(t *testing.T) {
	cleanEnv(t)
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("ADMIN_PASSWORD=from-file\nAPI_PORT=7000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "cmd", "api")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(nested)
	t.Setenv("API_PORT", "7100")
	// godotenv never overrides a variable that exists, even when empty.
	_ = os.Unsetenv("ADMIN_PASSWORD")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AdminPassword != "from-file" {
		t.Errorf("Load() AdminPassword = %v, want from-file", cfg.AdminPassword)
	}
	if cfg.APIPort != "7100" {
		t.Errorf("Load() APIPort = %v, want environment to win over .env", cfg.APIPort)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue string
		want         string
	}{
		{"env var set", "set-value", "default", "set-value"},
		{"empty env var uses default", "", "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_VAR", tt.value)
			if got := getEnv("TEST_ENV_VAR", tt.defaultValue); got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", "TEST_ENV_VAR", tt.defaultValue, got, tt.want)
			}
		})
	}
}
