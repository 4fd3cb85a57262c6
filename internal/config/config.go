// Package config loads DocSight client configuration and sets up logging.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when neither the environment nor the config file sets a value.
const (
	DefaultTimeout = 30 * time.Second
	DefaultLogFile = "/tmp/docsight.log"
)

// Config holds all configuration values.
type Config struct {
	// DocSight service
	BaseURL string
	Timeout time.Duration

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// fileConfig is the YAML config file shape. All fields are optional;
// environment variables take precedence over file values.
type fileConfig struct {
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Load reads configuration from the optional config file and the
// environment. The service base URL is required: without it every request
// address would be malformed, so Load fails fast instead.
func Load() (Config, error) {
	file, err := loadFile(configFilePath())
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:  getEnv("DOCSIGHT_API_URL", file.BaseURL),
		Timeout:  DefaultTimeout,
		LogFile:  getEnv("DOCSIGHT_LOG_FILE", firstNonEmpty(file.LogFile, DefaultLogFile)),
		LogLevel: parseLogLevel(getEnv("DOCSIGHT_LOG_LEVEL", firstNonEmpty(file.LogLevel, "INFO"))),
	}

	if t := getEnv("DOCSIGHT_CLIENT_TIMEOUT", file.Timeout); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return Config{}, fmt.Errorf("invalid client timeout %q: %w", t, err)
		}
		cfg.Timeout = d
	}

	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("service base URL is not configured: set DOCSIGHT_API_URL or base_url in %s", configFilePath())
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}

// configFilePath returns the config file location, DOCSIGHT_CONFIG if set,
// otherwise ~/.config/docsight/config.yaml.
func configFilePath() string {
	if p := os.Getenv("DOCSIGHT_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "docsight", "config.yaml")
}

// loadFile parses the YAML config file. A missing file is not an error.
func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fc, nil
		}
		return fc, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
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
