package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// HTTP server configuration
	Server ServerConfig `toml:"server"`

	// Card catalog API configuration
	Catalog CatalogConfig `toml:"catalog"`

	// Search cache configuration
	Cache CacheConfig `toml:"cache"`

	// Local database configuration
	Database DatabaseConfig `toml:"database"`

	// Backup configuration
	Backup BackupConfig `toml:"backup"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port int `toml:"port"` // Listen port for the REST API
}

// CatalogConfig contains settings for the upstream card catalog API.
type CatalogConfig struct {
	BaseURL   string  `toml:"base_url"`   // Catalog API base URL
	APIKey    string  `toml:"api_key"`    // Optional API key for higher rate limits
	Timeout   string  `toml:"timeout"`    // Request timeout (e.g., "60s")
	RateLimit float64 `toml:"rate_limit"` // Max requests per second (0 = default)
}

// CacheConfig contains search cache settings.
type CacheConfig struct {
	TTL string `toml:"ttl"` // Cache TTL (e.g., "5m")
}

// DatabaseConfig contains local database settings.
type DatabaseConfig struct {
	Path string `toml:"path"` // Path to the sqlite database file
}

// BackupConfig contains backup settings.
type BackupConfig struct {
	Dir string `toml:"dir"` // Directory for database backups
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8787,
		},
		Catalog: CatalogConfig{
			BaseURL:   "https://api.pokemontcg.io/v2",
			APIKey:    "",
			Timeout:   "60s",
			RateLimit: 0,
		},
		Cache: CacheConfig{
			TTL: "5m",
		},
		Database: DatabaseConfig{
			Path: "",
		},
		Backup: BackupConfig{
			Dir: "",
		},
	}
}

// DefaultPath returns the path to the configuration file, creating the
// configuration directory if needed.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".pokebinder")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from the default path. Returns default config
// if the file doesn't exist.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from an explicit path. Returns default
// config if the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo saves the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL cannot be empty")
	}

	if _, err := time.ParseDuration(c.Catalog.Timeout); err != nil {
		return fmt.Errorf("invalid catalog timeout %q: %w", c.Catalog.Timeout, err)
	}

	if c.Catalog.RateLimit < 0 {
		return fmt.Errorf("catalog rate limit cannot be negative: %v", c.Catalog.RateLimit)
	}

	if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
		return fmt.Errorf("invalid cache TTL %q: %w", c.Cache.TTL, err)
	}

	return nil
}

// GetCatalogTimeout returns the catalog request timeout as a duration.
func (c *Config) GetCatalogTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Catalog.Timeout)
}

// GetCacheTTL returns the cache TTL as a duration.
func (c *Config) GetCacheTTL() (time.Duration, error) {
	return time.ParseDuration(c.Cache.TTL)
}
