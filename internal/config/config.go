package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig       `toml:"app"`
	LLM       LLMConfig       `toml:"llm"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Log       LogConfig       `toml:"log"`
}

type AppConfig struct {
	Name          string `toml:"name"`
	Env           string `toml:"env"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	GinMode       string `toml:"gin_mode"`
	AssistantName string `toml:"assistant_name"`
	ServiceName   string `toml:"service_name"`
}

type LLMConfig struct {
	APIKey          string  `toml:"api_key"`
	BaseURL         string  `toml:"base_url"`
	Model           string  `toml:"model"`
	MaxTokens       int     `toml:"max_tokens"`
	Temperature     float64 `toml:"temperature"`
	TimeoutSeconds  int     `toml:"timeout_seconds"`
	Referer         string  `toml:"referer"`
	Title           string  `toml:"title"`
	ValidateOnStart bool    `toml:"validate_on_start"`
}

type RateLimitConfig struct {
	Limit         int `toml:"limit"`
	WindowSeconds int `toml:"window_seconds"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Load reads an optional .env file, then the optional TOML file named by
// CONFIG_FILE, then applies environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env failed: %w", err)
	}

	cfg := Default()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Ready reports whether the upstream API key is configured. Requests are
// refused with a configuration error while it is false.
func (c *Config) Ready() bool {
	return strings.TrimSpace(c.LLM.APIKey) != ""
}

func (c *Config) Validate() error {
	if c.RateLimit.Limit <= 0 {
		return fmt.Errorf("rate_limit.limit must be positive, got %d", c.RateLimit.Limit)
	}
	if c.RateLimit.WindowSeconds <= 0 {
		return fmt.Errorf("rate_limit.window_seconds must be positive, got %d", c.RateLimit.WindowSeconds)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be within [0, 2], got %v", c.LLM.Temperature)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return fmt.Errorf("llm.timeout_seconds must be positive, got %d", c.LLM.TimeoutSeconds)
	}
	u, err := url.Parse(c.LLM.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("llm.base_url is invalid: %q", c.LLM.BaseURL)
	}
	return nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowSeconds) * time.Second
}

func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLM.TimeoutSeconds) * time.Second
}

// Default returns the built-in settings before any file or environment overrides.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:          "pochy-chat",
			Env:           "dev",
			Host:          "0.0.0.0",
			Port:          8080,
			GinMode:       "release",
			AssistantName: "DeepSeek Chatbot",
			ServiceName:   "DeepSeek Chatbot API",
		},
		LLM: LLMConfig{
			BaseURL:        "https://api.deepseek.com",
			Model:          "deepseek-reasoner",
			MaxTokens:      4096,
			Temperature:    0.7,
			TimeoutSeconds: 55,
			Referer:        "https://deepseek-chatbot.vercel.app",
			Title:          "DeepSeek Chatbot",
		},
		RateLimit: RateLimitConfig{
			Limit:         20,
			WindowSeconds: 60,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("PORT", cfg.App.Port)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)
	cfg.App.AssistantName = getEnv("ASSISTANT_NAME", cfg.App.AssistantName)

	cfg.LLM.APIKey = getEnv("DEEPSEEK_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.BaseURL = getEnv("DEEPSEEK_API_BASE", cfg.LLM.BaseURL)
	cfg.LLM.Model = getEnv("DEEPSEEK_MODEL", cfg.LLM.Model)
	cfg.LLM.MaxTokens = getEnvAsInt("LLM_MAX_TOKENS", cfg.LLM.MaxTokens)
	cfg.LLM.Temperature = getEnvAsFloat("LLM_TEMPERATURE", cfg.LLM.Temperature)
	cfg.LLM.TimeoutSeconds = getEnvAsInt("LLM_TIMEOUT_SECONDS", cfg.LLM.TimeoutSeconds)
	cfg.LLM.Referer = getEnv("LLM_REFERER", cfg.LLM.Referer)
	cfg.LLM.Title = getEnv("LLM_TITLE", cfg.LLM.Title)
	cfg.LLM.ValidateOnStart = getEnvAsBool("LLM_VALIDATE_ON_START", cfg.LLM.ValidateOnStart)

	cfg.RateLimit.Limit = getEnvAsInt("RATE_LIMIT", cfg.RateLimit.Limit)
	cfg.RateLimit.WindowSeconds = getEnvAsInt("RATE_WINDOW_SECONDS", cfg.RateLimit.WindowSeconds)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
