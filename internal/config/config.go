// Package config loads the organizer configuration. The file is
// optional; flags layered on top of it by the CLI produce the value
// bundle the engine consumes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"organizer/internal/errors"
	"organizer/pkg/types"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
type Config struct {
	Settings struct {
		Directory string `yaml:"directory"` // Target directory to organize
		DryRun    bool   `yaml:"dry_run"`   // If true, report planned moves without touching the file system
		Verbose   bool   `yaml:"verbose"`   // Enable debug-level logging
	} `yaml:"settings"`
	// Rules are user globs consulted before the built-in extension table.
	Rules []types.Rule `yaml:"rules"`
	Watch struct {
		Interval int `yaml:"interval"` // Seconds of quiet before a watch-triggered pass
	} `yaml:"watch"`
}

// New returns the default configuration.
func New() *Config {
	cfg := &Config{}
	cfg.Settings.Directory = "." // Current directory by default
	cfg.Watch.Interval = 2
	return cfg
}

// LoadConfig loads configuration from the default location
// (~/.config/organizer/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "organizer", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	// Start with default configuration
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if loaded.Settings.Directory != "" {
		cfg.Settings.Directory = loaded.Settings.Directory
	}
	cfg.Settings.DryRun = loaded.Settings.DryRun
	cfg.Settings.Verbose = loaded.Settings.Verbose
	if len(loaded.Rules) > 0 {
		cfg.Rules = loaded.Rules
	}
	if loaded.Watch.Interval > 0 {
		cfg.Watch.Interval = loaded.Watch.Interval
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("nil config")
	}

	if c.Watch.Interval < 1 {
		return errors.NewOrganizeError("watch interval must be >= 1 second", "", errors.InvalidConfig, nil)
	}

	for i, rule := range c.Rules {
		if rule.Match == "" {
			return errors.NewOrganizeError(fmt.Sprintf("rule %d: match pattern is required", i), "", errors.InvalidConfig, nil)
		}
		if rule.Category == "" {
			return errors.NewOrganizeError(fmt.Sprintf("rule %d: category is required", i), "", errors.InvalidConfig, nil)
		}
		if _, err := glob.Compile(rule.Match); err != nil {
			return errors.NewOrganizeError("invalid rule pattern", rule.Match, errors.InvalidConfig, err)
		}
	}

	return nil
}
