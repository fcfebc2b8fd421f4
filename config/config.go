package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Stores    StoresConfig
	Storage   StorageConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Search    SearchConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UpstreamConfig holds grocery data provider configuration
type UpstreamConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	SearchTimeout   time.Duration `mapstructure:"search_timeout"`
	FeaturedTimeout time.Duration `mapstructure:"featured_timeout"`
}

// StoresConfig holds store registry configuration
type StoresConfig struct {
	Source string `mapstructure:"source"` // "mock" or "upstream"
	Radius int    `mapstructure:"radius"`
}

// StorageConfig holds client state persistence configuration
type StorageConfig struct {
	Type    string `mapstructure:"type"` // "memory" or "sqlite"
	DataDir string `mapstructure:"data_dir"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP    int `mapstructure:"per_ip"`
	Upstream int `mapstructure:"upstream"`
}

// SearchConfig holds debounce settings for interactive search
type SearchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/grocersmart/")

	v.SetEnvPrefix("GROCERSMART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads variables from ./.env if present.
// Variables already set in the environment are not overridden.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(".env")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("upstream.base_url", "https://api.groceryscout.net")
	v.SetDefault("upstream.search_timeout", "10s")
	v.SetDefault("upstream.featured_timeout", "5s")

	v.SetDefault("stores.source", "mock")
	v.SetDefault("stores.radius", 10)

	v.SetDefault("storage.type", "sqlite")
	v.SetDefault("storage.data_dir", "")

	v.SetDefault("cache.ttl", "15m")

	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.upstream", 3600)

	v.SetDefault("search.debounce", "500ms")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base URL is required (set GROCERSMART_UPSTREAM_BASE_URL)")
	}

	if config.Upstream.SearchTimeout <= 0 || config.Upstream.FeaturedTimeout <= 0 {
		return fmt.Errorf("upstream timeouts must be positive")
	}

	if config.Stores.Source != "mock" && config.Stores.Source != "upstream" {
		return fmt.Errorf("store source must be 'mock' or 'upstream', got: %s", config.Stores.Source)
	}

	if config.Storage.Type != "memory" && config.Storage.Type != "sqlite" {
		return fmt.Errorf("storage type must be 'memory' or 'sqlite', got: %s", config.Storage.Type)
	}

	return nil
}
