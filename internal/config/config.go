package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all defcheck configuration.
type Config struct {
	// Build flags the defensive-check machinery runs under
	Build BuildConfig `yaml:"build"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Build:   DefaultBuildConfig(),
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if mode := os.Getenv("DEFCHECK_BUILD_MODE"); mode != "" {
		c.Build.Mode = mode
	}
	if v, ok := envBool("DEFCHECK_EXCEPTIONS"); ok {
		c.Build.Exceptions = v
	}
	if v, ok := envBool("DEFCHECK_CHECK_LEVELS"); ok {
		c.Build.CheckLevels = v
	}
	if v, ok := envBool("DEFCHECK_EMBED_FILENAMES"); ok {
		c.Build.EmbedFileNames = v
	}
	if level := os.Getenv("DEFCHECK_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// envBool reads a boolean environment variable. Unset or unparsable values
// report ok=false.
func envBool(key string) (value bool, ok bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validMode := false
	for _, m := range ValidBuildModes {
		if c.Build.Mode == m {
			validMode = true
			break
		}
	}
	if !validMode {
		return fmt.Errorf("invalid build mode: %q (valid: %v)", c.Build.Mode, ValidBuildModes)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if strings.ToLower(c.Logging.Level) == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %q (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	switch c.Logging.Format {
	case "", "console", "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q (valid: console, json)", c.Logging.Format)
	}

	return nil
}
