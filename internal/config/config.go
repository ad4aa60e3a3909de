// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/DaniloReis10/TarifadorTest-sub000/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Store contains record-store configuration
	Store StoreConfig `json:"store"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Report contains report-run defaults
	Report ReportConfig `json:"report"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// StoreConfig contains record-store settings
type StoreConfig struct {
	// DatabasePath is the path to the billing database
	DatabasePath string `json:"database_path"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// ReportConfig contains report-run defaults
type ReportConfig struct {
	// PolicyPath is the default rating-policy document
	PolicyPath string `json:"policy_path"`

	// Parallel enables the sharded per-company fold
	Parallel bool `json:"parallel"`

	// WithUst derives the reference-unit view by default
	WithUst bool `json:"with_ust"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".tarifador", "billing.db")

	return &Config{
		Version: "1.0",
		Store: StoreConfig{
			DatabasePath: dbPath,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Report: ReportConfig{
			PolicyPath: filepath.Join(homeDir, ".tarifador", "policy.yml"),
			Parallel:   false,
			WithUst:    true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
