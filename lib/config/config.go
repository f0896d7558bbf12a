// Copyright 2026 The Poskit Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the Poskit
// console.
//
// Configuration is loaded from a single YAML file specified by:
//   - POSKIT_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This keeps the
// configuration deterministic and auditable with no hidden overrides.
//
// The config file may contain environment-specific sections
// (development, staging, production) that override base values when
// the environment matches.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the console configuration.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	// Backend configures the SaaS backend connection.
	Backend BackendConfig `yaml:"backend"`

	// Per-environment overrides, applied after the base config.
	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides contains fields that can be overridden per environment.
type Overrides struct {
	Backend *BackendConfig `yaml:"backend,omitempty"`
}

// BackendConfig configures the HTTP backend.
type BackendConfig struct {
	// BaseURL is the backend base URL, e.g. "https://pos.example.com".
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each backend request. Zero means 30s.
	Timeout Duration `yaml:"timeout"`
}

// Duration wraps time.Duration so YAML can carry values like "10s".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// DefaultTimeout is applied when the config file leaves Timeout unset.
const DefaultTimeout = 30 * time.Second

// Load reads the config file at path, applies the override section
// matching the configured environment, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Resolve determines the config path from the flag value or the
// POSKIT_CONFIG environment variable. The flag wins.
func Resolve(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envPath := os.Getenv("POSKIT_CONFIG"); envPath != "" {
		return envPath, nil
	}
	return "", errors.New("no config file: set POSKIT_CONFIG or pass --config")
}

// Parse decodes, applies environment overrides, and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}
	if overrides.Backend != nil {
		if overrides.Backend.BaseURL != "" {
			c.Backend.BaseURL = overrides.Backend.BaseURL
		}
		if overrides.Backend.Timeout != 0 {
			c.Backend.Timeout = overrides.Backend.Timeout
		}
	}
}

func (c *Config) validate() error {
	switch c.Environment {
	case Development, Staging, Production:
	case "":
		return errors.New("config: environment is required (development, staging, or production)")
	default:
		return fmt.Errorf("config: unknown environment %q", c.Environment)
	}

	if c.Backend.BaseURL == "" {
		return errors.New("config: backend.base_url is required")
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("config: backend.base_url %q must be an http(s) URL", c.Backend.BaseURL)
	}

	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = Duration(DefaultTimeout)
	}
	return nil
}
