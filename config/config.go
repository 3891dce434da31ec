package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Scraper   ScraperConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ScraperConfig holds retailer fetch configuration
type ScraperConfig struct {
	SourceTimeout    time.Duration `mapstructure:"source_timeout"`
	AggregateTimeout time.Duration `mapstructure:"aggregate_timeout"`
	UserAgent        string        `mapstructure:"user_agent"`
	ChromeEnabled    bool          `mapstructure:"chrome_enabled"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" or "none"
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerSite int `mapstructure:"per_site"` // requests per minute per retailer
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/scentscan/")

	v.SetEnvPrefix("SCENTSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional - env vars and defaults cover everything
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

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Scraper defaults
	v.SetDefault("scraper.source_timeout", "8s")
	v.SetDefault("scraper.aggregate_timeout", "15s")
	v.SetDefault("scraper.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("scraper.chrome_enabled", false)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_site", 60)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Scraper.SourceTimeout <= 0 {
		return fmt.Errorf("scraper source timeout must be positive, got: %s", config.Scraper.SourceTimeout)
	}

	if config.Scraper.AggregateTimeout < config.Scraper.SourceTimeout {
		return fmt.Errorf("scraper aggregate timeout (%s) must not be shorter than the source timeout (%s)",
			config.Scraper.AggregateTimeout, config.Scraper.SourceTimeout)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "none" {
		return fmt.Errorf("cache type must be 'memory' or 'none', got: %s", config.Cache.Type)
	}

	return nil
}
