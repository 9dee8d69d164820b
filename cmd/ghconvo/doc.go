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

// Package main implements the ghconvo command-line interface.
//
// The CLI supports:
//   - Fetching a GitHub issue conversation (issue subcommand)
//   - Fetching a pull request conversation with review comments and the
//     code diff (pr subcommand)
//   - Concatenating local files by glob pattern (files subcommand)
//   - Text and structured JSON output, to stdout or a file
//   - Optional GitHub token authentication via flag or environment variable
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	ghconvo issue https://github.com/<owner>/<repo>/issues/<number> [flags]
//	ghconvo pr https://github.com/<owner>/<repo>/pull/<number> [flags]
//	ghconvo files '<pattern>' [flags]
//
// Exit codes:
//
//	0 - Success (possibly with warnings on stderr)
//	1 - General error, including malformed input URLs
//	2 - Authentication, authorization, or rate limit error
//	3 - Network error
package main
