// Package config loads configuration from the environment with optional
// YAML file overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// HTTP server
	Port    string
	DataDir string

	// Chat proxy defaults
	DefaultProvider string
	DefaultModel    string

	// Timeout for outbound provider calls. The original backend had none,
	// which let an unresponsive provider stall a request forever.
	ProviderTimeout time.Duration

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig is the YAML config file shape. Every field is optional;
// environment variables win over file values.
type fileConfig struct {
	Port            string `yaml:"port"`
	DataDir         string `yaml:"data_dir"`
	DefaultProvider string `yaml:"default_provider"`
	DefaultModel    string `yaml:"default_model"`
	ProviderTimeout string `yaml:"provider_timeout"`
	LogFile         string `yaml:"log_file"`
	LogLevel        string `yaml:"log_level"`
}

// Load reads configuration from a YAML file (REALAPPS_CONFIG, if set) and
// the environment. Defaults match the original backend where one existed.
func Load() (Config, error) {
	var fc fileConfig
	if path := os.Getenv("REALAPPS_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg := Config{
		Port:            getEnv("REALAPPS_PORT", fc.Port, "5001"),
		DataDir:         getEnv("REALAPPS_DATA_DIR", fc.DataDir, "data"),
		DefaultProvider: getEnv("REALAPPS_DEFAULT_PROVIDER", fc.DefaultProvider, "OpenRouter"),
		DefaultModel:    getEnv("REALAPPS_DEFAULT_MODEL", fc.DefaultModel, "deepseek/deepseek-r1"),
		LogFile:         getEnv("REALAPPS_LOG_FILE", fc.LogFile, "/tmp/realapps.log"),
		LogLevel:        parseLogLevel(getEnv("REALAPPS_LOG_LEVEL", fc.LogLevel, "INFO")),
	}

	timeout := getEnv("REALAPPS_PROVIDER_TIMEOUT", fc.ProviderTimeout, "120s")
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return Config{}, fmt.Errorf("parse provider timeout %q: %w", timeout, err)
	}
	cfg.ProviderTimeout = d

	return cfg, nil
}

// getEnv returns the environment value, then the config file value, then
// the default.
func getEnv(key, fileVal, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if fileVal != "" {
		return fileVal
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
