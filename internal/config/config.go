package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token          string  `yaml:"token"`
	Workers        int     `yaml:"workers"` // concurrent update handlers
	PollingTimeout int     `yaml:"polling_timeout"`
	AdminIDs       []int64 `yaml:"admin_ids"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	StateTTL time.Duration `yaml:"state_ttl"` // dialog state lifetime
	CacheTTL time.Duration `yaml:"cache_ttl"` // recipe result cache lifetime
}

type AIConfig struct {
	OpenAIKey     string `yaml:"openai_key"`
	GeminiKey     string `yaml:"gemini_key"`
	GeminiURL     string `yaml:"gemini_url"`
	PrimaryModel  string `yaml:"primary_model"`
	FallbackModel string `yaml:"fallback_model"`
	MaxTokens     int    `yaml:"max_tokens"` // max_completion_tokens per call
	StreamRetries int    `yaml:"stream_retries"`

	RequestTimeout time.Duration `yaml:"request_timeout"` // watchdog per generation
}

type LimitsConfig struct {
	MaxProducts     int `yaml:"max_products"`
	MessagesPerMin  int `yaml:"messages_per_min"`
	CallbacksPerMin int `yaml:"callbacks_per_min"`
}

type AdminConfig struct {
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	AI       AIConfig       `yaml:"ai"`
	Limits   LimitsConfig   `yaml:"limits"`
	Admin    AdminConfig    `yaml:"admin"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML config, layers .env / environment overrides
// on top (the deployment keeps secrets out of the YAML), applies
// defaults and validates the result.
func LoadConfig(path string, dev bool) (*Config, error) {
	// Missing .env is fine; env vars may come from the environment itself.
	_ = godotenv.Load()

	var cfg Config
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnv(&cfg)

	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.PollingTimeout <= 0 {
		cfg.Bot.PollingTimeout = 25
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.AI.PrimaryModel == "" {
		cfg.AI.PrimaryModel = "gpt-4"
	}
	if cfg.AI.FallbackModel == "" {
		cfg.AI.FallbackModel = "gpt-3.5-turbo"
	}
	if cfg.AI.MaxTokens <= 0 {
		cfg.AI.MaxTokens = 1200
	}
	if cfg.AI.StreamRetries <= 0 {
		cfg.AI.StreamRetries = 2
	}
	if cfg.AI.RequestTimeout <= 0 {
		cfg.AI.RequestTimeout = 60 * time.Second
	}
	if cfg.Limits.MaxProducts <= 0 {
		cfg.Limits.MaxProducts = 15
	}
	if cfg.Limits.MessagesPerMin <= 0 {
		cfg.Limits.MessagesPerMin = 5
	}
	if cfg.Limits.CallbacksPerMin <= 0 {
		cfg.Limits.CallbacksPerMin = 30
	}
	if cfg.Redis.StateTTL <= 0 {
		cfg.Redis.StateTTL = 15 * time.Minute
	}
	if cfg.Redis.CacheTTL <= 0 {
		cfg.Redis.CacheTTL = time.Hour
	}
	if cfg.Admin.Port <= 0 {
		cfg.Admin.Port = 8081
	}

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required (yaml or TELEGRAM_TOKEN)")
	}
	if cfg.AI.OpenAIKey == "" && cfg.AI.GeminiKey == "" && !dev {
		return nil, errors.New("ai.openai_key or ai.gemini_key is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required (yaml or DATABASE_URL)")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required (yaml or REDIS_URL)")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.OpenAIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.AI.GeminiKey = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("ADMIN_API_KEY"); v != "" {
		cfg.Admin.APIKey = v
	}
}
