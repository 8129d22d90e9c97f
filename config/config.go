package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Cache    CacheConfig
	Matching MatchingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds product catalog API configuration. An empty BaseURL
// disables catalog matching entirely; normalization still works.
type CatalogConfig struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	PageSize int    `mapstructure:"page_size"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds candidate matching configuration
type MatchingConfig struct {
	MinScoreThreshold  float64 `mapstructure:"min_score_threshold"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/kasichka/")

	v.SetEnvPrefix("KASICHKA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
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
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// empty defaults keep the keys visible to Unmarshal for env overrides
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.base_url", "")
	v.SetDefault("catalog.page_size", 25)

	v.SetDefault("cache.ttl", "168h") // 7 days

	v.SetDefault("matching.min_score_threshold", 0.55)
	v.SetDefault("matching.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.BaseURL != "" && config.Catalog.APIKey == "" {
		return fmt.Errorf("catalog API key is required when a base URL is set (set KASICHKA_CATALOG_API_KEY)")
	}

	if config.Catalog.PageSize <= 0 {
		return fmt.Errorf("catalog page size must be positive, got: %d", config.Catalog.PageSize)
	}

	if config.Matching.MinScoreThreshold <= 0 || config.Matching.MinScoreThreshold > 1 {
		return fmt.Errorf("matching threshold must be in (0,1], got: %g", config.Matching.MinScoreThreshold)
	}

	return nil
}
