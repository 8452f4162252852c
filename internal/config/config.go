package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	StorageType   string `mapstructure:"storage_type"`
	BBoltPath     string `mapstructure:"bbolt_path"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPrefix   string `mapstructure:"redis_prefix"`

	NewsAPIKey         string        `mapstructure:"news_api_key"`
	NewsAPIBaseURL     string        `mapstructure:"news_api_base_url"`
	NewsTimeoutSeconds int64         `mapstructure:"news_timeout_seconds"`
	NewsTimeout        time.Duration `mapstructure:"-"`

	EnrichMetadata bool          `mapstructure:"enrich_metadata"`
	EnrichDelayMs  int64         `mapstructure:"enrich_delay_ms"`
	EnrichDelay    time.Duration `mapstructure:"-"`

	CitiesFile     string `mapstructure:"cities_file"`
	PublishersFile string `mapstructure:"publishers_file"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("app_name", "city-pulse")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/citypulse.db")
	v.SetDefault("redis_addr", "127.0.0.1:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_prefix", "citypulse:")
	v.SetDefault("news_api_key", "")
	v.SetDefault("news_api_base_url", "https://newsapi.org")
	v.SetDefault("news_timeout_seconds", 15)
	v.SetDefault("enrich_metadata", false)
	v.SetDefault("enrich_delay_ms", 500)
	v.SetDefault("cities_file", "")
	v.SetDefault("publishers_file", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.StorageType = strings.ToLower(strings.TrimSpace(cfg.StorageType))
	if cfg.StorageType == "" {
		return nil, fmt.Errorf("storage_type is required")
	}

	if cfg.NewsTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid news_timeout_seconds (must be positive seconds)")
	}
	cfg.NewsTimeout = time.Duration(cfg.NewsTimeoutSeconds) * time.Second

	if cfg.EnrichDelayMs < 0 {
		return nil, fmt.Errorf("invalid enrich_delay_ms (must not be negative)")
	}
	cfg.EnrichDelay = time.Duration(cfg.EnrichDelayMs) * time.Millisecond

	return &cfg, nil
}
