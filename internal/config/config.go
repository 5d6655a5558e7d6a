// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"paperbill/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Storage contains storage configuration
	Storage StorageConfig `json:"storage"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// StorageConfig contains storage-related settings
type StorageConfig struct {
	// Backend selects the storage backend (file, memory)
	Backend string `json:"backend"`

	// DataDir is the directory holding paper and log records
	DataDir string `json:"data_dir"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (table, json)
	DefaultFormat string `json:"default_format"`

	// ShowUndelivered includes resolved undelivered dates in bill output
	ShowUndelivered bool `json:"show_undelivered"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".paperbill")

	return &Config{
		Version: "1.0",
		Storage: StorageConfig{
			Backend: "file",
			DataDir: dataDir,
		},
		Output: OutputConfig{
			DefaultFormat:   "table",
			ShowUndelivered: false,
		},
		Server: ServerConfig{
			Addr: ":8080",
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
	// Ensure directory exists
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
