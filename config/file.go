package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the structure of the optional YAML config file. It only
// carries non-secret settings; credentials come from the environment.
type FileConfig struct {
	Model       string `yaml:"model"`
	LogLevel    string `yaml:"log_level"`
	HTTPTimeout string `yaml:"http_timeout"`
	Source      struct {
		URL     string `yaml:"url"`
		Origin  string `yaml:"origin"`
		FeedURL string `yaml:"feed_url"`
	} `yaml:"source"`
}

// DefaultConfigPath returns ~/.techdigest/config.yaml, or an empty string if
// the home directory cannot be determined.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".techdigest", "config.yaml")
}

// LoadConfigFile loads configuration from path. Returns nil if the file
// doesn't exist (not an error). Returns error if the file exists but cannot
// be parsed.
func LoadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// apply copies the settings present in the file onto cfg.
func (f *FileConfig) apply(cfg *RunConfig) error {
	if f == nil {
		return nil
	}

	if f.Model != "" {
		cfg.ModelName = f.Model
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.HTTPTimeout != "" {
		timeout, err := time.ParseDuration(f.HTTPTimeout)
		if err != nil || timeout <= 0 {
			return fmt.Errorf("invalid http_timeout %q: must be a positive duration (e.g., 30s, 1m)", f.HTTPTimeout)
		}
		cfg.HTTPTimeout = timeout
	}
	if f.Source.URL != "" {
		cfg.Source.URL = f.Source.URL
	}
	if f.Source.Origin != "" {
		cfg.Source.Origin = f.Source.Origin
	}
	if f.Source.FeedURL != "" {
		cfg.Source.FeedURL = f.Source.FeedURL
	}

	return nil
}
