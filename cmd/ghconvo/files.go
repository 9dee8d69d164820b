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
	"github.com/spf13/cobra"

	"github.com/ghconvo/ghconvo/internal/fileglob"
)

func newFilesCommand() *cobra.Command {
	var (
		format     string
		outputFile string
		ignore     []string
		baseDir    string
	)

	cmd := &cobra.Command{
		Use:   "files <pattern>...",
		Short: "Concatenate contents of files matching glob patterns",
		Long: `Recursively collect files under a base directory whose relative path or
basename matches one of the given glob patterns, and print each file's path
and contents. Ignore patterns exclude files and prune whole directories.

Example:
  ghconvo files '*.go' --ignore vendor --ignore '*_test.go'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := fileglob.Collect(baseDir, args, ignore)
			if err != nil {
				return err
			}

			writer, err := newOutputWriter(outputFile)
			if err != nil {
				return err
			}
			defer writer.Close()

			if format == "json" {
				return writer.WriteJSON(entries)
			}
			return writer.WriteDocument(fileglob.Text(entries))
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&outputFile, "output", "", "Output file path (default: stdout)")
	cmd.Flags().StringSliceVarP(&ignore, "ignore", "i", nil, "Glob patterns or names of files/directories to ignore")
	cmd.Flags().StringVar(&baseDir, "base-dir", ".", "Base directory to start the search from")

	return cmd
}
