package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, key := range []string{"DATA_DIR", "STORE_BACKEND", "LOG_LEVEL", "SESSION_SECRET", "SESSION_TTL", "CURRENCY", "ADMIN_EMAIL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("DataDir = %q, want ./data", cfg.DataDir)
	}
	if cfg.StoreBackend != "json" {
		t.Errorf("StoreBackend = %q, want json", cfg.StoreBackend)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Errorf("SessionTTL = %v, want 12h", cfg.SessionTTL)
	}
	if len(cfg.SessionSecret) != 64 {
		t.Errorf("expected a generated 32-byte hex secret, got %q", cfg.SessionSecret)
	}
	if cfg.Currency != "Rs." {
		t.Errorf("Currency = %q, want Rs.", cfg.Currency)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "DATA_DIR=/tmp/grocer-data\nSESSION_TTL=30m\nADMIN_EMAIL=admin@shop.com\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	unsetenv(t, "DATA_DIR")
	unsetenv(t, "SESSION_TTL")
	unsetenv(t, "ADMIN_EMAIL")
	// Set in the environment, so the file must not override it.
	t.Setenv("CURRENCY", "$")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/tmp/grocer-data" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if cfg.AdminEmail != "admin@shop.com" {
		t.Errorf("AdminEmail = %q", cfg.AdminEmail)
	}
	if cfg.Currency != "$" {
		t.Errorf("Currency = %q, want $", cfg.Currency)
	}
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SESSION_TTL", "forever")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid SESSION_TTL")
	}
}

// unsetenv removes key for the duration of the test. godotenv only fills variables that are absent,
// so an empty-but-set variable would shadow the file.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}
