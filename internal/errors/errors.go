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

// Package errors defines sentinel errors for consistent error handling across
// the application. These errors map to specific exit codes in the CLI for
// proper scripting support.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidURL indicates the input URL does not name a GitHub issue or
	// pull request. Reported before any network access. Maps to exit code 1.
	ErrInvalidURL = errors.New("invalid github resource url")

	// ErrInvalidToken indicates GitHub authentication failed.
	// Maps to exit code 2.
	ErrInvalidToken = errors.New("invalid github token")

	// ErrNotFound indicates the requested issue or pull request does not
	// exist or is not accessible. Maps to exit code 2.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimit indicates the GitHub API rate limit has been exceeded.
	// Maps to exit code 2.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrKindMismatch indicates the resource exists but is not of the kind
	// the URL claims, e.g. a pull request reached through an issue URL.
	// Maps to exit code 1.
	ErrKindMismatch = errors.New("resource kind mismatch")
)

// RateLimitError carries the retry delay advertised by the API alongside the
// ErrRateLimit sentinel. RetryAfter is zero when the server did not advertise
// a delay.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("github rate limit exceeded, retry after %s", e.RetryAfter)
	}
	return ErrRateLimit.Error()
}

// Unwrap makes errors.Is(err, ErrRateLimit) hold for wrapped RateLimitErrors.
func (e *RateLimitError) Unwrap() error {
	return ErrRateLimit
}

// HTTPError represents a non-success HTTP response that is neither an auth
// failure nor a rate limit, preserving the status code and response body for
// the user-visible message.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("github api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("github api returned status %d: %s", e.StatusCode, e.Body)
}
