package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment variables read by Load.
const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvModel        = "GEMINI_MODEL"
	EnvChannelToken = "SLACK_BOT_TOKEN"
	EnvChannelID    = "SLACK_CHANNEL_ID"
	EnvLogLevel     = "TECHDIGEST_LOG_LEVEL"
	EnvConfigPath   = "TECHDIGEST_CONFIG"
)

// Defaults applied before the config file and environment are read.
const (
	DefaultModel       = "gemini-2.0-flash"
	DefaultSourceURL   = "https://www.techmeme.com/"
	DefaultOrigin      = "https://www.techmeme.com"
	DefaultHTTPTimeout = 30 * time.Second
	DefaultLogLevel    = "info"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// SourceConfig says where headlines come from.
type SourceConfig struct {
	URL     string
	Origin  string
	FeedURL string
}

// RunConfig holds everything a single digest run needs. It is built once at
// startup and not modified afterwards.
type RunConfig struct {
	APIKey       string
	ModelName    string
	ChannelToken string
	ChannelID    string

	Source      SourceConfig
	HTTPTimeout time.Duration
	LogLevel    string
}

// ConfigError lists required settings that are missing.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// Default returns a RunConfig with every optional setting at its default
// and no credentials.
func Default() *RunConfig {
	return &RunConfig{
		ModelName: DefaultModel,
		Source: SourceConfig{
			URL:    DefaultSourceURL,
			Origin: DefaultOrigin,
		},
		HTTPTimeout: DefaultHTTPTimeout,
		LogLevel:    DefaultLogLevel,
	}
}

// Load builds a RunConfig from defaults, the optional YAML file at path and
// then the environment, later sources winning. An empty path skips the
// file. Load does not check for missing credentials; call Validate for
// that.
func Load(path string, lookup LookupFunc) (*RunConfig, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := Default()

	if path != "" {
		fileCfg, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := fileCfg.apply(cfg); err != nil {
			return nil, err
		}
	}

	cfg.APIKey = envValue(lookup, EnvAPIKey, cfg.APIKey)
	cfg.ModelName = envValue(lookup, EnvModel, cfg.ModelName)
	cfg.ChannelToken = envValue(lookup, EnvChannelToken, cfg.ChannelToken)
	cfg.ChannelID = envValue(lookup, EnvChannelID, cfg.ChannelID)
	cfg.LogLevel = envValue(lookup, EnvLogLevel, cfg.LogLevel)

	return cfg, nil
}

// Validate reports every required setting that is missing or blank.
func (c *RunConfig) Validate() error {
	return checkRequired(map[string]string{
		EnvAPIKey:       c.APIKey,
		EnvChannelToken: c.ChannelToken,
		EnvChannelID:    c.ChannelID,
	})
}

// ValidateModelAccess checks only what is needed to talk to the model
// provider.
func (c *RunConfig) ValidateModelAccess() error {
	return checkRequired(map[string]string{
		EnvAPIKey: c.APIKey,
	})
}

// requiredOrder keeps diagnostics stable.
var requiredOrder = []string{EnvAPIKey, EnvChannelToken, EnvChannelID}

func checkRequired(values map[string]string) error {
	var missing []string
	for _, key := range requiredOrder {
		value, ok := values[key]
		if ok && strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// envValue returns the trimmed value of key, or fallback when the variable
// is unset or blank.
func envValue(lookup LookupFunc, key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
