// Copyright 2025 The ghconvo Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for ghconvo with support
// for multiple configuration sources and a well-defined precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. Custom API endpoints are
// supported for GitHub Enterprise deployments.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from that
// specific file. Otherwise, it searches standard locations:
//   - .ghconvo.yaml (current directory)
//   - .ghconvo.yml (current directory)
//   - ~/.ghconvo/config.yaml
//   - ~/.ghconvo/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".ghconvo.yaml",
			".ghconvo.yml",
			filepath.Join(os.Getenv("HOME"), ".ghconvo", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".ghconvo", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}

	if pageSize := os.Getenv("GHCONVO_PAGE_SIZE"); pageSize != "" {
		if size, err := parsePositiveInt(pageSize); err == nil {
			cfg.Defaults.PageSize = size
		}
	}
	if pageCap := os.Getenv("GHCONVO_PAGE_CAP"); pageCap != "" {
		if pages, err := parsePositiveInt(pageCap); err == nil {
			cfg.Defaults.PageCap = pages
		}
	}
	if format := os.Getenv("GHCONVO_FORMAT"); format != "" {
		cfg.Defaults.OutputFormat = format
	}
}

// Token resolves the GitHub credential from the configured environment
// variable. An empty result is not an error: requests simply go out
// unauthenticated, subject to GitHub's lower anonymous rate limits.
func (c *Config) Token() string {
	return os.Getenv(c.GitHub.TokenEnv)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// Validate checks if the configuration contains valid values. It ensures the
// page size is within GitHub's limits, the page cap is positive, and the
// output format is recognized. This should be called after loading
// configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %d", c.Defaults.PageSize)
	}
	if c.Defaults.PageSize > 100 {
		return fmt.Errorf("page size %d exceeds GitHub API limit of 100", c.Defaults.PageSize)
	}
	if c.Defaults.PageCap <= 0 {
		return fmt.Errorf("page cap must be positive, got: %d", c.Defaults.PageCap)
	}
	if c.Defaults.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got: %d", c.Defaults.TimeoutSeconds)
	}
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty")
	}
	if c.Defaults.OutputFormat != "text" && c.Defaults.OutputFormat != "json" {
		return fmt.Errorf("unknown output format: %q", c.Defaults.OutputFormat)
	}
	return nil
}
