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

// Package config types define the configuration structures used throughout
// ghconvo. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for ghconvo. It is loaded once
// at process start and handed to the transport and paginator constructors;
// nothing reads configuration ad hoc mid-fetch.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// GitHubConfig contains GitHub-specific settings including the API endpoint
// and authentication configuration. A custom endpoint allows use with GitHub
// Enterprise deployments.
type GitHubConfig struct {
	APIEndpoint string `yaml:"api_endpoint"`
	TokenEnv    string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to all fetch operations
// unless overridden by command-line flags.
//
// PageSize is the number of records requested per page. PageCap bounds how
// many pages a single collection fetch may consume; a collection larger than
// PageSize*PageCap is returned truncated with a warning rather than fetched
// without bound.
type DefaultsConfig struct {
	PageSize       int    `yaml:"page_size"`
	PageCap        int    `yaml:"page_cap"`
	OutputFormat   string `yaml:"output_format"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most use
// cases. These defaults are optimized for public GitHub.com usage but can be
// overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint: "https://api.github.com",
			TokenEnv:    "GH_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize:       100,
			PageCap:        10,
			OutputFormat:   "text",
			TimeoutSeconds: 30,
		},
	}
}
