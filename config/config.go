// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	launchcast "github.com/reoring/launchcast"
)

// Config is the root configuration structure.
type Config struct {
	API      APIConfig     `yaml:"api"`
	Query    QueryConfig   `yaml:"query"`
	Server   ServerConfig  `yaml:"server"`
	Logging  LoggingConfig `yaml:"logging"`
	Metrics  MetricsConfig `yaml:"metrics"`
	Language string        `yaml:"language"` // "en" or "ja"
}

// APIConfig configures the upstream launch API.
type APIConfig struct {
	BaseURL       string        `yaml:"base_url"`
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBytes      int64         `yaml:"max_bytes"`      // response size cap, 0 = unlimited
	DuplicateKeys string        `yaml:"duplicate_keys"` // "ignore", "warn" or "error"
}

// DuplicateKeySeverity parses DuplicateKeys.
func (c APIConfig) DuplicateKeySeverity() (launchcast.Severity, error) {
	return launchcast.ParseSeverity(c.DuplicateKeys)
}

// QueryConfig holds the defaults for /launches/query.
type QueryConfig struct {
	Limit     int    `yaml:"limit"`
	SortField string `yaml:"sort_field"`
	SortOrder string `yaml:"sort_order"` // "asc" or "desc"
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, then applies environment overrides and
// defaults.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	cfg := Config{Metrics: MetricsConfig{Enabled: true}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return finish(&cfg)
}

// LoadFromEnv creates configuration entirely from environment variables.
//
// Environment variables:
//
//	LAUNCHCAST_API_BASE_URL       - API base URL (default: https://api.spacexdata.com)
//	LAUNCHCAST_API_TIMEOUT        - request timeout (default: 10s)
//	LAUNCHCAST_API_USER_AGENT     - User-Agent header
//	LAUNCHCAST_API_MAX_BYTES      - response size cap in bytes
//	LAUNCHCAST_API_DUPLICATE_KEYS - ignore, warn or error (default: ignore)
//	LAUNCHCAST_QUERY_LIMIT        - default page size (default: 10)
//	LAUNCHCAST_SERVER_ADDR        - listen address (default: :8080)
//	LAUNCHCAST_LOG_LEVEL          - debug, info, warn, error (default: info)
//	LAUNCHCAST_LOG_FORMAT         - json or console (default: console)
//	LAUNCHCAST_METRICS_ENABLED    - enable /metrics (default: true)
//	LAUNCHCAST_LANGUAGE           - message language: en or ja (default: en)
func LoadFromEnv() (*Config, error) {
	cfg := Config{Metrics: MetricsConfig{Enabled: true}}
	return finish(&cfg)
}

// LoadWithFallback loads path when it is set and exists, otherwise falls back
// to environment variables and defaults.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config: %w", err)
		} else {
			return nil, fmt.Errorf("config file %s not found", path)
		}
	}
	return LoadFromEnv()
}

func finish(cfg *Config) (*Config, error) {
	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	setDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides applies LAUNCHCAST_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	// API configuration
	if v := os.Getenv("LAUNCHCAST_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("LAUNCHCAST_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = d
		}
	}
	if v := os.Getenv("LAUNCHCAST_API_USER_AGENT"); v != "" {
		cfg.API.UserAgent = v
	}
	if v := os.Getenv("LAUNCHCAST_API_MAX_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.API.MaxBytes = n
		}
	}
	if v := os.Getenv("LAUNCHCAST_API_DUPLICATE_KEYS"); v != "" {
		cfg.API.DuplicateKeys = v
	}

	// Query configuration
	if v := os.Getenv("LAUNCHCAST_QUERY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Query.Limit = n
		}
	}

	// Server configuration
	if v := os.Getenv("LAUNCHCAST_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}

	// Logging configuration
	if v := os.Getenv("LAUNCHCAST_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LAUNCHCAST_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	// Metrics configuration
	if v := os.Getenv("LAUNCHCAST_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}

	if v := os.Getenv("LAUNCHCAST_LANGUAGE"); v != "" {
		cfg.Language = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.spacexdata.com"
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 10 * time.Second
	}
	if cfg.API.UserAgent == "" {
		cfg.API.UserAgent = "launchcast"
	}
	if cfg.API.DuplicateKeys == "" {
		cfg.API.DuplicateKeys = "ignore"
	}

	if cfg.Query.Limit == 0 {
		cfg.Query.Limit = 10
	}
	if cfg.Query.SortField == "" {
		cfg.Query.SortField = "date_unix"
	}
	if cfg.Query.SortOrder == "" {
		cfg.Query.SortOrder = "asc"
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.Language == "" {
		cfg.Language = "en"
	}
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if cfg.API.MaxBytes < 0 {
		return fmt.Errorf("api.max_bytes must not be negative")
	}

	if _, err := cfg.API.DuplicateKeySeverity(); err != nil {
		return fmt.Errorf("api.duplicate_keys: %w", err)
	}

	if cfg.Query.Limit < 0 {
		return fmt.Errorf("query.limit must not be negative")
	}
	if cfg.Query.SortOrder != "asc" && cfg.Query.SortOrder != "desc" {
		return fmt.Errorf("query.sort_order must be 'asc' or 'desc', got %q", cfg.Query.SortOrder)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	if cfg.Logging.Format != "json" && cfg.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be 'json' or 'console', got %q", cfg.Logging.Format)
	}

	if !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/'")
	}

	if cfg.Language != "en" && cfg.Language != "ja" {
		return fmt.Errorf("language must be 'en' or 'ja', got %q", cfg.Language)
	}
	return nil
}
