package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const configFileEnv = "TTI_CONFIG_FILE"

// Load builds the effective configuration. Priority order, lowest first:
// built-in defaults, YAML config file (optional, pointed at by
// TTI_CONFIG_FILE), environment variables.
func Load() (*Config, error) {
	cfg := NewConfig()

	if path := os.Getenv(configFileEnv); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.LoadFromEnvironment()
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: decode yaml: %w", err)
	}

	return nil
}
