package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "redistricting.yaml"

// Load loads the campaign tuning.
// Search order: customPath -> ~/.redistricting/configs/redistricting.yaml ->
// ./configs/redistricting.yaml -> embedded default
func Load(customPath string) (RedistrictingConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RedistrictingConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return RedistrictingConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultRedistrictingYAML)
	if err != nil {
		return DefaultRedistrictingConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a tuning document on top of the defaults, so a file may
// override only the keys it cares about. The result is validated.
func Parse(data []byte) (RedistrictingConfig, error) {
	cfg := DefaultRedistrictingConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RedistrictingConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RedistrictingConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".redistricting", "configs", filename)
}
