// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents settings that can be loaded from a YAML file and the
// environment. All fields are optional; missing values use defaults or
// must be provided via CLI flags.
type Config struct {
	// Server
	Addr           string        `yaml:"addr,omitempty"`            // Listen address, e.g. ":8080"
	AllowedOrigins []string      `yaml:"allowed_origins,omitempty"` // CORS origins; empty allows any
	SessionIdle    time.Duration `yaml:"session_idle,omitempty"`    // Drop sessions idle this long

	// Collaborators
	APIKey          string `yaml:"api_key,omitempty"`           // Gemini API key; empty disables AI rewriting
	ChromePath      string `yaml:"chrome_path,omitempty"`       // Chrome executable
	ChromeNoSandbox bool   `yaml:"chrome_no_sandbox,omitempty"` // Needed when running as root in containers

	// Behavior
	FailureWindow time.Duration `yaml:"failure_window,omitempty"` // How long a rewrite error stays visible
	LogLevel      string        `yaml:"log_level,omitempty"`      // debug, info, warn, error
	LogFormat     string        `yaml:"log_format,omitempty"`     // console or json

	RateLimit RateLimitConfig `yaml:"rate_limit,omitempty"`
}

// RateLimitConfig bounds the expensive endpoints per client IP.
type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute,omitempty"`
	Burst     int `yaml:"burst,omitempty"`
}

// Defaults returns the values used when neither flags, file nor environment
// set a field.
func Defaults() Config {
	return Config{
		Addr:          ":8080",
		SessionIdle:   12 * time.Hour,
		FailureWindow: 5 * time.Second,
		LogLevel:      "info",
		LogFormat:     "console",
		RateLimit:     RateLimitConfig{PerMinute: 30, Burst: 5},
	}
}

// LoadConfig loads configuration from a YAML file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the settings that are conventionally passed through the
// environment. Unset variables leave the field empty.
func FromEnv() (Config, error) {
	cfg := Config{
		APIKey:     os.Getenv("GEMINI_API_KEY"),
		ChromePath: os.Getenv("CHROME_PATH"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
		LogFormat:  os.Getenv("LOG_FORMAT"),
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}

	var err error
	if cfg.RateLimit.PerMinute, err = envInt("RATE_LIMIT_PER_MINUTE"); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envInt(key string) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.SessionIdle < 0 {
		return fmt.Errorf("config error: 'session_idle' must be non-negative")
	}
	if c.FailureWindow < 0 {
		return fmt.Errorf("config error: 'failure_window' must be non-negative")
	}
	if c.RateLimit.PerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("config error: 'rate_limit' values must be non-negative")
	}

	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be console or json, got %q", c.LogFormat)
	}

	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome executable not found: %s", c.ChromePath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Layers are merged highest precedence first: flags, env, file, Defaults().
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	// Durations and ints: use default if zero
	if result.SessionIdle == 0 {
		result.SessionIdle = defaults.SessionIdle
	}
	if result.FailureWindow == 0 {
		result.FailureWindow = defaults.FailureWindow
	}
	if result.RateLimit.PerMinute == 0 {
		result.RateLimit.PerMinute = defaults.RateLimit.PerMinute
	}
	if result.RateLimit.Burst == 0 {
		result.RateLimit.Burst = defaults.RateLimit.Burst
	}

	// Bool fields: a set default wins, flags can only turn them on
	result.ChromeNoSandbox = result.ChromeNoSandbox || defaults.ChromeNoSandbox

	return result
}

// Resolve layers env, the optional file and Defaults() under overrides.
func Resolve(overrides Config, path string) (Config, error) {
	env, err := FromEnv()
	if err != nil {
		return Config{}, err
	}

	file := Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		file = *loaded
	}

	merged := overrides.MergeWithDefaults(env)
	merged = merged.MergeWithDefaults(file)
	merged = merged.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
