package scribe

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config contains the options shared by the builder, the packagers and the CLI
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `yaml:"logLevel"`
	// LogFormat selects the log encoder: console or json
	LogFormat string `yaml:"logFormat"`
	// Creator is written to the document properties when a document does not set one
	Creator string `yaml:"creator"`
	// Compression is the ZIP method used by the docx packager: deflate or store
	Compression string `yaml:"compression"`
	// BuildConcurrency limits how many documents BuildAll packages at once
	BuildConcurrency int `yaml:"buildConcurrency"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "console",
		Creator:          "go-scribe",
		Compression:      "deflate",
		BuildConcurrency: 4,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()
	applyEnvironment(config)
	return config
}

func applyEnvironment(config *Config) {
	// SCRIBE_LOG_LEVEL
	if val := os.Getenv("SCRIBE_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(strings.TrimSpace(val))
	}

	// SCRIBE_LOG_FORMAT
	if val := os.Getenv("SCRIBE_LOG_FORMAT"); val != "" {
		config.LogFormat = strings.ToLower(strings.TrimSpace(val))
	}

	// SCRIBE_CREATOR
	if val := os.Getenv("SCRIBE_CREATOR"); val != "" {
		config.Creator = val
	}

	// SCRIBE_COMPRESSION
	if val := os.Getenv("SCRIBE_COMPRESSION"); val != "" {
		config.Compression = strings.ToLower(strings.TrimSpace(val))
	}

	// SCRIBE_BUILD_CONCURRENCY
	if val := os.Getenv("SCRIBE_BUILD_CONCURRENCY"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			config.BuildConcurrency = n
		}
	}
}

// LoadConfigFile reads a YAML configuration file. Unset keys keep their defaults and
// environment variables override the file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	applyEnvironment(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		return errors.New("invalid log format: " + c.LogFormat)
	}

	if c.Compression != "deflate" && c.Compression != "store" {
		return errors.New("invalid compression: " + c.Compression)
	}

	if c.BuildConcurrency <= 0 {
		return errors.New("build concurrency must be positive")
	}

	return nil
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	// Return a copy to prevent modification
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}
