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

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	gherrors "github.com/ghconvo/ghconvo/internal/errors"
	"github.com/ghconvo/ghconvo/pkg/version"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "ghconvo",
		Short: "Fetch GitHub issue and pull request conversations",
		Long: `ghconvo fetches a GitHub issue or pull request and reconstructs the
discussion as one chronologically ordered conversation: description, issue
comments, and (for pull requests) review comments and the code diff.

Output is human-readable text or a structured JSON record. Warnings about
degraded fetches (truncated pagination, failed secondary collections) go to
stderr, never into the conversation itself.

Authentication is optional: set GH_TOKEN (or the configured token_env) or
pass --token. Without a token, requests run against GitHub's lower anonymous
rate limits.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(newIssueCommand())
	rootCmd.AddCommand(newPRCommand())
	rootCmd.AddCommand(newFilesCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, gherrors.ErrInvalidToken) ||
		errors.Is(err, gherrors.ErrNotFound) ||
		errors.Is(err, gherrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, gherrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error, including input errors
}
