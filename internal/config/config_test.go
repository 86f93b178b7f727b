package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8632 {
		t.Errorf("port = %d", cfg.Port)
	}
	if cfg.DefaultModel != "gpt-4o-mini" {
		t.Errorf("default model = %q", cfg.DefaultModel)
	}
	if cfg.MemoryLimit != 10 {
		t.Errorf("memory limit = %d", cfg.MemoryLimit)
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "99999")
	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestLoadRejectsBadTemperature(t *testing.T) {
	t.Setenv("DEFAULT_TEMPERATURE", "1.5")
	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for out-of-range temperature")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLoadSlogLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", cfg.SlogLevel())
	}
}

func TestLoadCatalogDefaults(t *testing.T) {
	models, profiles, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if len(models) == 0 {
		t.Fatal("expected built-in models")
	}
	if len(profiles) != 0 {
		t.Errorf("profiles = %d, want none", len(profiles))
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `
models:
  - gpt-4o
  - llama3:8b
profiles:
  - id: work
    name: Work
    system_prompt: Be terse.
    model: gpt-4o
    temperature: 0.2
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	models, profiles, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if len(models) != 2 || models[0] != "gpt-4o" {
		t.Errorf("models = %v", models)
	}
	if len(profiles) != 1 || profiles[0].ID != "work" || profiles[0].Temperature != 0.2 {
		t.Errorf("profiles = %+v", profiles)
	}
}

func TestLoadCatalogMissingFile(t *testing.T) {
	if _, _, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing catalog file")
	}
}
