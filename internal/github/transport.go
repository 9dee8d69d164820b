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

package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	gherrors "github.com/ghconvo/ghconvo/internal/errors"
	"github.com/ghconvo/ghconvo/pkg/version"
)

// Media types accepted from the API. AcceptJSON is the default; AcceptDiff
// requests the raw patch text of a pull request.
const (
	AcceptJSON = "application/vnd.github.v3+json"
	AcceptDiff = "application/vnd.github.v3.diff"

	apiVersion = "2022-11-28"

	// maxResponseSize limits how much of a response body is read (10MB).
	maxResponseSize = 10 * 1024 * 1024
)

// Response is the successful outcome of a single transport call. NextPage is
// the page number advertised by the Link header's rel="next" entry, or zero
// when the API signals no further pages.
type Response struct {
	Body     []byte
	NextPage int
}

// Transport issues authenticated HTTP requests against the GitHub REST API
// and surfaces rate-limit and HTTP-error conditions as typed errors:
//
//   - 401, and 403 without rate-limit headers -> errors.ErrInvalidToken
//   - 403/429 carrying rate-limit headers     -> *errors.RateLimitError
//   - 404                                     -> errors.ErrNotFound
//   - other 4xx/5xx                           -> *errors.HTTPError
//   - connection failures                     -> errors.ErrNetworkFailure
//
// The transport never retries internally; retry policy is the caller's
// decision.
type Transport struct {
	endpoint string
	client   *http.Client
}

// NewTransport creates a transport for the given API endpoint. The bearer
// token is attached to every request when non-empty and omitted otherwise;
// unauthenticated operation is allowed, just subject to tighter rate limits.
func NewTransport(endpoint, token string, timeout time.Duration) *Transport {
	base := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Transport{
		endpoint: strings.TrimRight(endpoint, "/"),
		client: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				token: token,
				base:  base,
			},
		},
	}
}

// Send performs a single API call. The path is relative to the configured
// endpoint, e.g. "repos/owner/repo/issues/42". A zero-value accept falls back
// to AcceptJSON.
func (t *Transport) Send(ctx context.Context, method, path string, params url.Values, accept string) (*Response, error) {
	if accept == "" {
		accept = AcceptJSON
	}

	u := t.endpoint + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	log.Debug().Str("method", method).Str("url", u).Msg("github api request")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, gherrors.ErrNetworkFailure)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", path, gherrors.ErrNetworkFailure)
	}

	log.Debug().Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("github api response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, mapStatusError(resp, body)
	}

	return &Response{
		Body:     body,
		NextPage: nextPage(resp.Header.Get("Link")),
	}, nil
}

// mapStatusError maps a non-2xx response to the error taxonomy.
func mapStatusError(resp *http.Response, body []byte) error {
	status := resp.StatusCode

	if status == http.StatusForbidden || status == http.StatusTooManyRequests {
		if limited, retryAfter := rateLimitInfo(resp.Header); limited {
			return &gherrors.RateLimitError{RetryAfter: retryAfter}
		}
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("github api returned status %d: %w", status, gherrors.ErrInvalidToken)
	case http.StatusNotFound:
		return fmt.Errorf("github api returned status %d: %w", status, gherrors.ErrNotFound)
	default:
		return &gherrors.HTTPError{StatusCode: status, Body: errorMessage(body)}
	}
}

// rateLimitInfo reports whether the response headers indicate rate limiting
// and, if so, the advertised retry delay. GitHub signals primary limits via
// X-RateLimit-Remaining: 0 plus X-RateLimit-Reset, and secondary limits via
// Retry-After.
func rateLimitInfo(h http.Header) (bool, time.Duration) {
	if after := h.Get("Retry-After"); after != "" {
		if secs, err := strconv.Atoi(after); err == nil && secs >= 0 {
			return true, time.Duration(secs) * time.Second
		}
		return true, 0
	}

	if h.Get("X-RateLimit-Remaining") == "0" {
		var retryAfter time.Duration
		if reset := h.Get("X-RateLimit-Reset"); reset != "" {
			if epoch, err := strconv.ParseInt(reset, 10, 64); err == nil {
				if until := time.Until(time.Unix(epoch, 0)); until > 0 {
					retryAfter = until
				}
			}
		}
		return true, retryAfter
	}

	return false, 0
}

// errorMessage extracts the "message" field from a GitHub error body, falling
// back to the raw (trimmed) body when it is not the usual JSON shape.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}

// linkNextRe matches the rel="next" entry of a Link header and captures the
// target URL.
var linkNextRe = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// nextPage extracts the next page number from a Link header. Returns zero
// when there is no rel="next" entry, which is how the API signals that a
// collection is exhausted.
func nextPage(link string) int {
	m := linkNextRe.FindStringSubmatch(link)
	if m == nil {
		return 0
	}
	u, err := url.Parse(m[1])
	if err != nil {
		return 0
	}
	page, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil || page <= 0 {
		return 0
	}
	return page
}

// authTransport adds authentication and identification headers to requests.
type authTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	req.Header.Set("User-Agent", "ghconvo/"+version.Version)

	return t.base.RoundTrip(req)
}
