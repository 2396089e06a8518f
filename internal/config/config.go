package config

import (
	"errors"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr     string        `yaml:"listen_addr"`
	BackendURL     string        `yaml:"backend_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	EnableMetrics  bool          `yaml:"enable_metrics"`
	CookieSecure   bool          `yaml:"cookie_secure"`
}

// Load builds the configuration from an optional YAML file, then applies
// environment overrides on top. Pass an empty path to skip the file.
func Load(path string) (*Config, error) {
	config := &Config{
		ListenAddr:     ":8080",
		BackendURL:     "http://localhost:9090",
		RequestTimeout: 15 * time.Second,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		config.ListenAddr = v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		config.BackendURL = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.RequestTimeout = d
		}
	}
	if os.Getenv("ENABLE_METRICS") == "true" {
		config.EnableMetrics = true
	}
	if os.Getenv("COOKIE_SECURE") == "true" {
		config.CookieSecure = true
	}

	return config, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr is required")
	}
	if c.BackendURL == "" {
		return errors.New("backend_url is required")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("backend_url must be an absolute URL")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	return nil
}

// LoadAndValidate loads the configuration and validates it in one step.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
