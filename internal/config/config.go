package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config represents the application configuration
type Config struct {
	DataDir  string `toml:"data_dir" env:"DECKWRIGHT_DATA_DIR"`
	TabooSet int    `toml:"default_taboo_set,omitempty" env:"DECKWRIGHT_TABOO_SET"`
	Locale   string `toml:"locale" env:"DECKWRIGHT_LOCALE"`
	LogLevel string `toml:"log_level" env:"DECKWRIGHT_LOG_LEVEL"`

	// Collection maps pack codes to owned copies. Empty means every pack is
	// owned once.
	Collection map[string]int `toml:"collection,omitempty"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		DataDir:  GetDataPath(),
		Locale:   "en",
		LogLevel: "info",
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDataPath returns the default card database directory
func GetDataPath() string {
	return filepath.Join(GetXDGDataHome(), "deckwright", "data")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "deckwright", "config.toml")
}

// LoadConfig loads the config file, creating it on first use, and applies
// DECKWRIGHT_* environment overrides.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	var config *Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config, err = createDefaultConfig()
		if err != nil {
			return nil, err
		}
	} else {
		config = Default()
		if _, err := toml.DecodeFile(configPath, config); err != nil {
			return nil, fmt.Errorf("error decoding config file: %w", err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := Save(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Save writes config to the config file.
func Save(config *Config) error {
	configPath := GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// TabooSetID returns the configured taboo set, or nil when none is set.
func (c *Config) TabooSetID() *int {
	if c.TabooSet == 0 {
		return nil
	}
	id := c.TabooSet
	return &id
}
