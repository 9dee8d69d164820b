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

// Package testutil provides common test helpers for ghconvo.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
)

// MockServer wraps an httptest server mimicking the GitHub REST routes
// ghconvo touches, with a request counter for assertions.
type MockServer struct {
	*httptest.Server
	requestCount int32
}

// Requests returns how many requests the server has handled.
func (m *MockServer) Requests() int {
	return int(atomic.LoadInt32(&m.requestCount))
}

// RepoFixture describes one issue or pull request and its comment collections
// for a mock repository. Comments are split into pages of PageSize records;
// zero PageSize serves everything on one page.
type RepoFixture struct {
	Owner  string
	Repo   string
	Number int

	Resource       map[string]interface{}
	IssueComments  []map[string]interface{}
	ReviewComments []map[string]interface{}
	Diff           string

	PageSize int
}

// NewConversationServer starts a mock API serving the fixture's routes:
// the issues and pulls resource endpoints, both comment collections with
// Link-header pagination, and the diff media type on the pulls endpoint.
func NewConversationServer(t *testing.T, fixture RepoFixture) *MockServer {
	t.Helper()

	m := &MockServer{}
	prefix := fmt.Sprintf("/repos/%s/%s", fixture.Owner, fixture.Repo)

	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.requestCount, 1)

		switch r.URL.Path {
		case fmt.Sprintf("%s/issues/%d", prefix, fixture.Number):
			writeJSON(t, w, fixture.Resource)
		case fmt.Sprintf("%s/pulls/%d", prefix, fixture.Number):
			if strings.Contains(r.Header.Get("Accept"), "diff") {
				fmt.Fprint(w, fixture.Diff)
				return
			}
			writeJSON(t, w, fixture.Resource)
		case fmt.Sprintf("%s/issues/%d/comments", prefix, fixture.Number):
			servePage(t, w, r, fixture.IssueComments, fixture.PageSize)
		case fmt.Sprintf("%s/pulls/%d/comments", prefix, fixture.Number):
			servePage(t, w, r, fixture.ReviewComments, fixture.PageSize)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		}
	}))

	return m
}

// servePage writes one page of records and a rel="next" Link header when more
// pages remain, matching the real API's pagination contract.
func servePage(t *testing.T, w http.ResponseWriter, r *http.Request, records []map[string]interface{}, pageSize int) {
	t.Helper()

	if pageSize <= 0 {
		writeJSON(t, w, records)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}

	if end < len(records) {
		next := fmt.Sprintf(`<http://%s%s?per_page=%d&page=%d>; rel="next"`,
			r.Host, r.URL.Path, pageSize, page+1)
		w.Header().Set("Link", next)
	}
	writeJSON(t, w, records[start:end])
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encoding mock response: %v", err)
	}
}

// NewRateLimitServer creates a mock server that rate limits every request,
// advertising the given Retry-After delay in seconds.
func NewRateLimitServer(t *testing.T, retryAfter int) *MockServer {
	t.Helper()

	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.requestCount, 1)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"message": "API rate limit exceeded"}`)
	}))
	return m
}

// NewErrorServer creates a mock server that always returns the given status.
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()

	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.requestCount, 1)
		w.WriteHeader(statusCode)
		fmt.Fprintf(w, `{"message": %q}`, http.StatusText(statusCode))
	}))
	return m
}
