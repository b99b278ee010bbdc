package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("yaml values with defaults applied", func(t *testing.T) {
		path := writeConfig(t, `
bot:
  token: "123:abc"
database:
  url: "postgres://localhost/foodbot"
redis:
  url: "localhost:6379"
ai:
  openai_key: "sk-test"
`)
		cfg, err := LoadConfig(path, false)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Bot.Token != "123:abc" {
			t.Errorf("token = %q", cfg.Bot.Token)
		}
		if cfg.Bot.Workers != 8 || cfg.Bot.PollingTimeout != 25 {
			t.Errorf("bot defaults: %+v", cfg.Bot)
		}
		if cfg.AI.PrimaryModel != "gpt-4" || cfg.AI.FallbackModel != "gpt-3.5-turbo" {
			t.Errorf("model defaults: %+v", cfg.AI)
		}
		if cfg.AI.RequestTimeout != 60*time.Second {
			t.Errorf("request timeout = %v", cfg.AI.RequestTimeout)
		}
		if cfg.Limits.MaxProducts != 15 || cfg.Limits.MessagesPerMin != 5 {
			t.Errorf("limit defaults: %+v", cfg.Limits)
		}
		if cfg.Redis.StateTTL != 15*time.Minute || cfg.Redis.CacheTTL != time.Hour {
			t.Errorf("redis ttl defaults: %+v", cfg.Redis)
		}
		if cfg.Admin.Port != 8081 {
			t.Errorf("admin port = %d", cfg.Admin.Port)
		}
	})

	t.Run("environment overrides yaml", func(t *testing.T) {
		path := writeConfig(t, `
bot:
  token: "from-yaml"
database:
  url: "postgres://yaml"
redis:
  url: "yaml:6379"
ai:
  openai_key: "yaml-key"
`)
		t.Setenv("TELEGRAM_TOKEN", "from-env")
		t.Setenv("DATABASE_URL", "postgres://env")
		t.Setenv("ADMIN_API_KEY", "secret")

		cfg, err := LoadConfig(path, false)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Bot.Token != "from-env" {
			t.Errorf("token = %q", cfg.Bot.Token)
		}
		if cfg.Database.URL != "postgres://env" {
			t.Errorf("db url = %q", cfg.Database.URL)
		}
		if cfg.Admin.APIKey != "secret" {
			t.Errorf("admin key = %q", cfg.Admin.APIKey)
		}
	})

	t.Run("missing token fails", func(t *testing.T) {
		path := writeConfig(t, `
database:
  url: "postgres://localhost"
redis:
  url: "localhost:6379"
ai:
  openai_key: "sk"
`)
		if _, err := LoadConfig(path, false); err == nil {
			t.Fatal("expected an error without bot token")
		}
	})

	t.Run("missing ai key allowed in dev", func(t *testing.T) {
		path := writeConfig(t, `
bot:
  token: "123:abc"
database:
  url: "postgres://localhost"
redis:
  url: "localhost:6379"
`)
		if _, err := LoadConfig(path, true); err != nil {
			t.Errorf("dev mode must tolerate missing ai key: %v", err)
		}
		if _, err := LoadConfig(path, false); err == nil {
			t.Error("prod mode must require an ai key")
		}
	})

	t.Run("missing config file falls back to env", func(t *testing.T) {
		t.Setenv("TELEGRAM_TOKEN", "123:abc")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("DATABASE_URL", "postgres://env")
		t.Setenv("REDIS_URL", "env:6379")

		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Bot.Token != "123:abc" || cfg.Redis.URL != "env:6379" {
			t.Errorf("env fallback broken: %+v", cfg)
		}
	})
}
