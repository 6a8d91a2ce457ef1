package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ServiceConfig holds all runtime configuration for the service,
// sourced from environment variables.
type ServiceConfig struct {
	Server     ServerConfig
	Redis      RedisConfig
	Experience ExperienceConfig
	Catalog    CatalogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string
	Port int

	ShutdownTimeout time.Duration
}

// RedisConfig holds the draft store connection settings.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// ExperienceConfig holds the experience catalog API settings.
// Mode "mock" swaps in the static dev catalog, no network involved.
type ExperienceConfig struct {
	Mode    string
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// CatalogConfig points at the category catalog file.
type CatalogConfig struct {
	Path string
}

// LoadServiceConfig loads runtime configuration from environment
// variables, applying defaults for anything unset.
func LoadServiceConfig() (*ServiceConfig, error) {
	cfg := &ServiceConfig{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Experience: ExperienceConfig{
			Mode:    getEnv("EXPERIENCE_CLIENT_MODE", "http"),
			BaseURL: getEnv("EXPERIENCE_API_BASE_URL", "http://localhost:9090"),
			APIKey:  getEnv("EXPERIENCE_API_KEY", ""),
			Timeout: getEnvAsDuration("EXPERIENCE_API_TIMEOUT", 10*time.Second),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATEGORY_CATALOG_PATH", "configs/categories.json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the runtime configuration.
func (c *ServiceConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Experience.Mode {
	case "http", "mock":
	default:
		return fmt.Errorf("invalid experience client mode: %q", c.Experience.Mode)
	}

	if c.Experience.Mode == "http" && c.Experience.BaseURL == "" {
		return fmt.Errorf("experience API base URL is required in http mode")
	}

	if c.Catalog.Path == "" {
		return fmt.Errorf("category catalog path is required")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
