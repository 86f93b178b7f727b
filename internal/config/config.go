package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port   int
	DBPath string
	// APIKey protects the local HTTP surface; empty disables auth.
	APIKey   string
	LogLevel string
	// Completion service
	CompletionBaseURL string
	CompletionAPIKey  string
	CompletionTimeout time.Duration
	// Chat defaults, used until the settings store holds its own
	DefaultModel        string
	DefaultSystemPrompt string
	DefaultTemperature  float64
	// Memory injection
	MemoryLimit int
	// Model catalog (YAML); empty falls back to the built-in list
	CatalogPath string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                envInt("PORT", 8632),
		DBPath:              envStr("NYXCHAT_DB_PATH", "/data/nyxchat.db"),
		APIKey:              envStr("NYXCHAT_API_KEY", ""),
		LogLevel:            envStr("LOG_LEVEL", "info"),
		CompletionBaseURL:   envStr("COMPLETION_BASE_URL", "https://api.openai.com/v1"),
		CompletionAPIKey:    envStr("COMPLETION_API_KEY", ""),
		CompletionTimeout:   time.Duration(envInt("COMPLETION_TIMEOUT_SECONDS", 60)) * time.Second,
		DefaultModel:        envStr("DEFAULT_MODEL", "gpt-4o-mini"),
		DefaultSystemPrompt: envStr("DEFAULT_SYSTEM_PROMPT", "You are a helpful assistant."),
		DefaultTemperature:  envFloat("DEFAULT_TEMPERATURE", 0.7),
		MemoryLimit:         envInt("MEMORY_LIMIT", 10),
		CatalogPath:         envStr("MODEL_CATALOG_PATH", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("NYXCHAT_DB_PATH must not be empty")
	}
	if c.CompletionBaseURL == "" {
		return fmt.Errorf("COMPLETION_BASE_URL must not be empty")
	}
	if c.CompletionTimeout < time.Second {
		return fmt.Errorf("COMPLETION_TIMEOUT_SECONDS must be at least 1, got %s", c.CompletionTimeout)
	}
	if c.DefaultModel == "" {
		return fmt.Errorf("DEFAULT_MODEL must not be empty")
	}
	if c.DefaultTemperature < 0 || c.DefaultTemperature > 1 {
		return fmt.Errorf("DEFAULT_TEMPERATURE must be between 0 and 1, got %f", c.DefaultTemperature)
	}
	if c.MemoryLimit < 0 {
		return fmt.Errorf("MEMORY_LIMIT must not be negative, got %d", c.MemoryLimit)
	}
	return nil
}

// SlogLevel maps the configured log level onto slog's levels. Unknown values
// fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
