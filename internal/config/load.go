package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
// flags may be nil.
func Load(flags *Flags) (*Config, error) {
	cfg := Default()
	var configPath string
	if flags != nil {
		configPath = flags.ConfigPath()
	}
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}
	if flags != nil {
		flags.apply(cfg)
	}
	return cfg, nil
}

// findConfigFile looks for wscrew.yaml in the working directory.
func findConfigFile() string {
	const path = "./wscrew.yaml"
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
