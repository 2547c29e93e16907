package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// unset clears key for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unsetenv %s: %v", key, err)
	}
}

func writeDotEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	return path
}

func TestLoadDotEnv_LoadsValuesAndIgnoresNoise(t *testing.T) {
	unset(t, "A")
	unset(t, "B")
	unset(t, "C")

	path := writeDotEnv(t, `
# comment

A=one
export B=two
C="three"
`)

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("A"); got != "one" {
		t.Fatalf("A=%q, want %q", got, "one")
	}
	if got := os.Getenv("B"); got != "two" {
		t.Fatalf("B=%q, want %q", got, "two")
	}
	if got := os.Getenv("C"); got != "three" {
		t.Fatalf("C=%q, want %q", got, "three")
	}
}

func TestLoadDotEnv_DoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("KEEP", "already")

	path := writeDotEnv(t, "KEEP=fromfile\n")

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("KEEP"); got != "already" {
		t.Fatalf("KEEP=%q, want %q", got, "already")
	}
}

func TestLoadDotEnv_StripsSingleQuotes(t *testing.T) {
	unset(t, "Q")

	path := writeDotEnv(t, "Q='hello world'\n")

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("Q"); got != "hello world" {
		t.Fatalf("Q=%q, want %q", got, "hello world")
	}
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "PORT", "DB_PATH", "MIGRATIONS_DIR", "AUTO_MIGRATE", "GEMINI_API_KEY", "GEMINI_MODEL", "SUGGEST_TIMEOUT", "METRICS_ENABLED"} {
		unset(t, k)
	}

	cfg := fromViper(newViper())

	if cfg.Port != "8080" || cfg.DBPath != "./dev.db" || cfg.MigrationsDir != "migrations" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.IsDev() || cfg.ShouldMigrate() {
		t.Fatalf("expected production defaults, got %+v", cfg)
	}
	if cfg.SuggestTimeout != 30*time.Second || !cfg.MetricsEnabled || cfg.GeminiAPIKey != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "Dev")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/baogia.db")
	t.Setenv("GEMINI_API_KEY", " key ")
	t.Setenv("SUGGEST_TIMEOUT", "5s")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := fromViper(newViper())

	if !cfg.IsDev() || !cfg.ShouldMigrate() {
		t.Fatalf("expected dev mode, got %+v", cfg)
	}
	if cfg.Port != "9090" || cfg.DBPath != "/tmp/baogia.db" || cfg.GeminiAPIKey != "key" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.SuggestTimeout != 5*time.Second || cfg.MetricsEnabled {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
