// Package config provides configuration loading and management for semsnip.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete semsnip configuration
type Config struct {
	Server ServerConfig `yaml:"server"`
	Rules  RulesConfig  `yaml:"rules"`
	NATS   NATSConfig   `yaml:"nats"`
	Fetch  FetchConfig  `yaml:"fetch"`
}

// ServerConfig configures the HTTP API server
type ServerConfig struct {
	// Host is the listen address (default: 127.0.0.1)
	Host string `yaml:"host"`
	// Port is the listen port (default: 8080)
	Port int `yaml:"port"`
}

// RulesConfig configures rendering rule loading
type RulesConfig struct {
	// Dir is a directory of YAML rule files layered over the built-in
	// vocabulary catalogues (empty = built-ins only)
	Dir string `yaml:"dir"`
	// Watch reloads the rule directory when files change
	Watch bool `yaml:"watch"`
}

// NATSConfig configures the NATS request-reply worker
type NATSConfig struct {
	// URL is the NATS server URL (empty = worker disabled)
	URL string `yaml:"url"`
	// Subject is the request subject the worker subscribes on
	Subject string `yaml:"subject"`
}

// FetchConfig configures remote document fetching
type FetchConfig struct {
	// Timeout is the maximum time for one fetch
	Timeout time.Duration `yaml:"timeout"`
	// UserAgent is sent with fetch requests
	UserAgent string `yaml:"user_agent"`
	// MaxBodySize caps the fetched document size in bytes
	MaxBodySize int64 `yaml:"max_body_size"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Rules: RulesConfig{
			Dir:   "",
			Watch: false,
		},
		NATS: NATSConfig{
			URL:     "",
			Subject: "snippet.render",
		},
		Fetch: FetchConfig{
			Timeout:     10 * time.Second,
			UserAgent:   "semsnip/1.0",
			MaxBodySize: 4 << 20,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.NATS.URL != "" && c.NATS.Subject == "" {
		return fmt.Errorf("nats.subject is required when nats.url is set")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Fetch.MaxBodySize <= 0 {
		return fmt.Errorf("fetch.max_body_size must be positive")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file. Environment variable
// references ($VAR or ${VAR}) in the file are expanded before parsing.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Server
	if other.Server.Host != "" {
		c.Server.Host = other.Server.Host
	}
	if other.Server.Port != 0 {
		c.Server.Port = other.Server.Port
	}

	// Rules
	if other.Rules.Dir != "" {
		c.Rules.Dir = other.Rules.Dir
	}
	if other.Rules.Watch {
		c.Rules.Watch = true
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Subject != "" {
		c.NATS.Subject = other.NATS.Subject
	}

	// Fetch
	if other.Fetch.Timeout != 0 {
		c.Fetch.Timeout = other.Fetch.Timeout
	}
	if other.Fetch.UserAgent != "" {
		c.Fetch.UserAgent = other.Fetch.UserAgent
	}
	if other.Fetch.MaxBodySize != 0 {
		c.Fetch.MaxBodySize = other.Fetch.MaxBodySize
	}
}
