package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Contact   ContactConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds the price list and generated catalog locations
type CatalogConfig struct {
	RawPath         string `mapstructure:"raw_path"`
	OutputPath      string `mapstructure:"output_path"`
	SectionTitle    string `mapstructure:"section_title"`
	DefaultImage    string `mapstructure:"default_image"`
	SuggestionLimit int    `mapstructure:"suggestion_limit"`
}

// CacheConfig holds suggestion cache configuration
type CacheConfig struct {
	Type       string        `mapstructure:"type"` // "memory" or "none"
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
	Relay int `mapstructure:"relay"`  // contact relay requests per minute
}

// ContactConfig holds the hosted form relay settings
type ContactConfig struct {
	Email   string `mapstructure:"email"`
	BaseURL string `mapstructure:"base_url"`
	Subject string `mapstructure:"subject"`
	NextURL string `mapstructure:"next_url"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/catalog/")

	// Environment variable settings: CATALOG_SERVER_PORT -> server.port
	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
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

// loadEnvFile loads .env from the working directory when present.
// Variables already set in the environment win.
func loadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults: fixed build conventions relative to the working directory
	v.SetDefault("catalog.raw_path", "src/data/raw-products.txt")
	v.SetDefault("catalog.output_path", "src/data/products.generated.json")
	v.SetDefault("catalog.section_title", "Məhsullar")
	v.SetDefault("catalog.default_image", "/images/products/default.jpg")
	v.SetDefault("catalog.suggestion_limit", 20)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.max_entries", 5000)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.relay", 30)

	// Contact relay defaults
	v.SetDefault("contact.email", "")
	v.SetDefault("contact.base_url", "https://formsubmit.co")
	v.SetDefault("contact.subject", "Saytdan yeni mesaj (Əlaqə formu)")
	v.SetDefault("contact.next_url", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if config.Catalog.RawPath == "" || config.Catalog.OutputPath == "" {
		return fmt.Errorf("catalog raw_path and output_path are required")
	}

	if config.Catalog.SuggestionLimit < 1 || config.Catalog.SuggestionLimit > 20 {
		return fmt.Errorf("catalog suggestion_limit must be between 1 and 20, got: %d", config.Catalog.SuggestionLimit)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "none" {
		return fmt.Errorf("cache type must be 'memory' or 'none', got: %s", config.Cache.Type)
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.Relay < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}

	if config.Contact.Email != "" && !strings.Contains(config.Contact.Email, "@") {
		return fmt.Errorf("contact email is not an address: %s", config.Contact.Email)
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
