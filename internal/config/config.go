// Package config loads and saves tellerdesk.yaml: where the data lives, the
// superuser credentials, and how chatty the logs are.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level tellerdesk.yaml configuration.
type Config struct {
	DataDir   string          `yaml:"data_dir"`
	Superuser SuperuserConfig `yaml:"superuser"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SuperuserConfig holds the credentials the superuser menu is gated behind.
// Stored in the config file rather than the user store: the superuser is not
// a bank customer.
type SuperuserConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoggingConfig controls the diagnostic logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // human-readable console output
}

// Load reads a tellerdesk.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new installation.
func Default(dataDir string) *Config {
	return &Config{
		DataDir: dataDir,
		Superuser: SuperuserConfig{
			Username: "superuser",
			Password: "changeme-now",
		},
		Logging: LoggingConfig{
			Level:       "info",
			Development: true,
		},
	}
}
