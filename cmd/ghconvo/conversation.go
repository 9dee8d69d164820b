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
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ghconvo/ghconvo/internal/config"
	"github.com/ghconvo/ghconvo/internal/convo"
	gherrors "github.com/ghconvo/ghconvo/internal/errors"
	"github.com/ghconvo/ghconvo/internal/github"
	"github.com/ghconvo/ghconvo/internal/output"
	"github.com/ghconvo/ghconvo/internal/render"
)

// convoFlags holds the flags shared by the issue and pr commands.
type convoFlags struct {
	format     string
	outputFile string
	configPath string
	token      string
	pageCap    int
}

func (f *convoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", "Output format: text or json (default from config)")
	cmd.Flags().StringVar(&f.outputFile, "output", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config file")
	cmd.Flags().StringVar(&f.token, "token", "", "GitHub token (overrides the configured token env var)")
	cmd.Flags().IntVar(&f.pageCap, "page-cap", 0, "Maximum pages per comment collection (default from config)")
}

func newIssueCommand() *cobra.Command {
	var flags convoFlags

	cmd := &cobra.Command{
		Use:   "issue <url>",
		Short: "Fetch a GitHub issue conversation",
		Long: `Fetch a GitHub issue and its comments as one ordered conversation.

The URL must be a full issue URL, for example:
  https://github.com/golang/go/issues/12345`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConversation(cmd, args[0], convo.KindIssue, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

func newPRCommand() *cobra.Command {
	var flags convoFlags

	cmd := &cobra.Command{
		Use:   "pr <url>",
		Short: "Fetch a GitHub pull request conversation",
		Long: `Fetch a GitHub pull request with its comments, review comments, and code
diff as one ordered conversation.

The URL must be a full pull request URL, for example:
  https://github.com/golang/go/pull/12345`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConversation(cmd, args[0], convo.KindPullRequest, &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// runConversation executes one fetch-assemble-render invocation.
func runConversation(cmd *cobra.Command, rawURL string, kind convo.Kind, flags *convoFlags) error {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return err
	}
	if flags.format != "" {
		cfg.Defaults.OutputFormat = flags.format
	}
	if flags.pageCap > 0 {
		cfg.Defaults.PageCap = flags.pageCap
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ref, err := convo.ParseURL(rawURL)
	if err != nil {
		return err
	}
	if ref.Kind != kind {
		return fmt.Errorf("%s is not a %s URL: %w", rawURL, kindNoun(kind), gherrors.ErrInvalidURL)
	}

	token := flags.token
	if token == "" {
		token = cfg.Token()
	}
	if token == "" {
		log.Debug().Msg("no token configured, running unauthenticated")
	}

	writer, err := newOutputWriter(flags.outputFile)
	if err != nil {
		return err
	}
	defer writer.Close()

	transport := github.NewTransport(cfg.GitHub.APIEndpoint, token, time.Duration(cfg.Defaults.TimeoutSeconds)*time.Second)
	paginator := github.NewPaginator(transport, cfg.Defaults.PageSize)
	assembler := convo.NewAssembler(transport, paginator, cfg.Defaults.PageCap)

	conversation, warnings, err := assembler.Assemble(cmd.Context(), ref)
	if err != nil {
		// The structured format still reports the failure as a record;
		// the process exit code carries the error either way.
		if cfg.Defaults.OutputFormat == "json" {
			if werr := writer.WriteJSON(render.ErrorRecord(err)); werr != nil {
				return werr
			}
		}
		return err
	}

	// Warnings go to the diagnostic stream, never into the document.
	for _, w := range warnings {
		log.Warn().Msg(w.Message)
	}

	if cfg.Defaults.OutputFormat == "json" {
		return writer.WriteJSON(render.Structured(conversation, warnings))
	}
	return writer.WriteDocument(render.Text(conversation))
}

func kindNoun(kind convo.Kind) string {
	if kind == convo.KindPullRequest {
		return "pull request"
	}
	return "issue"
}

// newOutputWriter returns a writer for the given file path, or stdout when
// the path is empty.
func newOutputWriter(path string) (*output.Writer, error) {
	if path == "" {
		return output.NewWriter(os.Stdout), nil
	}
	writer, err := output.NewFileWriter(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return writer, nil
}
