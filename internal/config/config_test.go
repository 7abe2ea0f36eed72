package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"BODYCOMP_CONFIG", "NOTION_API_KEY", "NOTION_DATABASE", "NOTION_BASE_URL",
		"NOTION_VERSION", "NOTION_TIMEOUT", "PORT", "LOG_LEVEL", "LOG_FORMAT",
		"APP_NAME", "DB_DSN", "REDIS_URL", "RATE_LIMIT_PER_MINUTE", "INGEST_TOKEN",
		"MQTT_BROKER", "MQTT_TOPIC", "MQTT_CLIENT_ID",
	} {
		t.Setenv(k, "")
	}
	// que un .env del directorio no afecte los tests
	t.Setenv("BODYCOMP_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "3000" || cfg.Addr() != ":3000" {
		t.Fatalf("expected default port 3000, got %q (%q)", cfg.Port, cfg.Addr())
	}
	// los defaults de Notion los pone el cliente notion
	if cfg.NotionBaseURL != "" || cfg.NotionVersion != "" {
		t.Fatalf("expected empty notion base url/version, got %+v", cfg)
	}
	if cfg.RateLimitPerMinute != DefaultRateLimitPerMinute {
		t.Fatalf("expected default rate limit, got %d", cfg.RateLimitPerMinute)
	}
}

func TestValidate_MissingAPIKeyIsFatal(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if len(cfg.Warnings()) != 1 {
		t.Fatalf("expected missing database warning, got %v", cfg.Warnings())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "bodycomp.yaml")
	data := []byte("notion_api_key: from-file\nnotion_database: file-db\nnotion_timeout: 30s\nport: \"4000\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("BODYCOMP_CONFIG", path)
	t.Setenv("NOTION_DATABASE", "env-db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NotionAPIKey != "from-file" {
		t.Fatalf("expected api key from file, got %q", cfg.NotionAPIKey)
	}
	if cfg.NotionDatabase != "env-db" {
		t.Fatalf("expected env to win, got %q", cfg.NotionDatabase)
	}
	if cfg.NotionTimeout != 30*time.Second || cfg.Port != "4000" {
		t.Fatalf("unexpected file values: timeout=%v port=%q", cfg.NotionTimeout, cfg.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if len(cfg.Warnings()) != 0 {
		t.Fatalf("expected no warnings, got %v", cfg.Warnings())
	}
}

func TestLoad_RejectsBadRateLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-3")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative rate limit")
	}
}

func TestLoad_DotEnvFileFillsGapsButEnvWins(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	data := []byte("NOTION_API_KEY=from-dotenv\nNOTION_DATABASE=dotenv-db\nPORT=5000\nNOTION_TIMEOUT=15s\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("BODYCOMP_ENV_FILE", path)
	t.Setenv("PORT", "6000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NotionAPIKey != "from-dotenv" || cfg.NotionDatabase != "dotenv-db" {
		t.Fatalf("expected values from .env, got key=%q db=%q", cfg.NotionAPIKey, cfg.NotionDatabase)
	}
	if cfg.NotionTimeout != 15*time.Second {
		t.Fatalf("expected timeout from .env, got %v", cfg.NotionTimeout)
	}
	if cfg.Port != "6000" {
		t.Fatalf("expected process env to win, got port %q", cfg.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	// .env no se vuelca al env del proceso
	if v := os.Getenv("NOTION_API_KEY"); v != "" {
		t.Fatalf("expected process env untouched, got %q", v)
	}
}

func TestLoad_MissingDotEnvIsFine(t *testing.T) {
	clearEnv(t)
	t.Setenv("NOTION_API_KEY", "k")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NotionAPIKey != "k" {
		t.Fatalf("unexpected key %q", cfg.NotionAPIKey)
	}
}
