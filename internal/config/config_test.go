package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DB_PATH", "SESSION_SECRET", "SESSION_TTL", "STRICT_MEMBERS"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	if cfg.Port != "8080" {
		t.Errorf("Port = %s, want 8080", cfg.Port)
	}
	if cfg.DBDriver != "memory" || cfg.DBPath != ":memory:" {
		t.Errorf("DB = %s %s, want memory :memory:", cfg.DBDriver, cfg.DBPath)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %s, want 24h", cfg.SessionTTL)
	}
	if cfg.StrictMembers {
		t.Error("StrictMembers should default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr = %s, want :8080", cfg.Addr())
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("STRICT_MEMBERS", "true")

	cfg := FromEnv()
	if cfg.Port != "9090" || cfg.DBDriver != "sqlite" || cfg.SessionTTL != 90*time.Minute || !cfg.StrictMembers {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestFromEnvReportsUnparseableValues(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("SESSION_TTL", "abc")
	t.Setenv("STRICT_MEMBERS", "yes")

	cfg := FromEnv()
	if cfg.SessionTTL != 24*time.Hour || cfg.StrictMembers {
		t.Errorf("unparseable values should keep defaults: %+v", cfg)
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"invalid SESSION_TTL 'abc'", "invalid STRICT_MEMBERS 'yes'"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: "abc", DBDriver: "postgres", SessionTTL: 0}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"invalid port", "invalid DB_DRIVER", "invalid SESSION_TTL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %q", err, want)
		}
	}

	cfg = &Config{Port: "70000", DBDriver: "memory", SessionTTL: time.Hour}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "between 1 and 65535") {
		t.Errorf("expected port range error, got %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("CONTRY_TEST_PORT_FROM_FILE=1\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("ENV_FILE", path)
	t.Setenv("CONTRY_TEST_PORT_FROM_FILE", "")
	os.Unsetenv("CONTRY_TEST_PORT_FROM_FILE")

	if _, err := Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := os.Getenv("CONTRY_TEST_PORT_FROM_FILE"); got != "1" {
		t.Errorf("expected variable from env file, got %q", got)
	}

	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	if _, err := Load(); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}
