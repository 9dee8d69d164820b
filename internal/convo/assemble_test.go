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

package convo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gherrors "github.com/ghconvo/ghconvo/internal/errors"
	"github.com/ghconvo/ghconvo/internal/github"
)

// fakeRepo wires an httptest server that mimics the handful of REST routes
// the assembler touches for one repository.
type fakeRepo struct {
	issue          string // body for GET /repos/o/r/issues/1
	pull           string // body for GET /repos/o/r/pulls/1 (JSON accept)
	diff           string // body for GET /repos/o/r/pulls/1 (diff accept)
	issueComments  string // body for GET /repos/o/r/issues/1/comments
	reviewComments string // body for GET /repos/o/r/pulls/1/comments

	issueCommentsStatus  int
	reviewCommentsStatus int
	diffStatus           int
}

func (f *fakeRepo) server(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/o/r/issues/1":
			fmt.Fprint(w, f.issue)
		case "/repos/o/r/issues/1/comments":
			if f.issueCommentsStatus != 0 {
				w.WriteHeader(f.issueCommentsStatus)
				return
			}
			fmt.Fprint(w, f.issueComments)
		case "/repos/o/r/pulls/1":
			if strings.Contains(r.Header.Get("Accept"), "diff") {
				if f.diffStatus != 0 {
					w.WriteHeader(f.diffStatus)
					return
				}
				fmt.Fprint(w, f.diff)
				return
			}
			fmt.Fprint(w, f.pull)
		case "/repos/o/r/pulls/1/comments":
			if f.reviewCommentsStatus != 0 {
				w.WriteHeader(f.reviewCommentsStatus)
				return
			}
			fmt.Fprint(w, f.reviewComments)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		}
	}))
}

func newTestAssembler(url string, pageCap int) *Assembler {
	transport := github.NewTransport(url, "", 5*time.Second)
	return NewAssembler(transport, github.NewPaginator(transport, 100), pageCap)
}

func issueRef() ResourceRef {
	return ResourceRef{Owner: "o", Repo: "r", Number: 1, Kind: KindIssue}
}

func pullRef() ResourceRef {
	return ResourceRef{Owner: "o", Repo: "r", Number: 1, Kind: KindPullRequest}
}

func TestAssembleIssue(t *testing.T) {
	repo := &fakeRepo{
		issue: `{
			"title": "Crash on startup",
			"state": "open",
			"body": "It crashes.",
			"user": {"login": "reporter"},
			"created_at": "2024-01-01T00:00:00Z"
		}`,
		issueComments: `[
			{"user": {"login": "a"}, "body": "me too", "created_at": "2024-01-02T00:00:00Z"},
			{"user": {"login": "b"}, "body": "fixed in HEAD", "created_at": "2024-01-03T00:00:00Z"}
		]`,
	}
	server := repo.server(t)
	defer server.Close()

	conv, warnings, err := newTestAssembler(server.URL, 10).Assemble(context.Background(), issueRef())
	require.NoError(t, err)
	require.NotNil(t, conv)
	assert.Empty(t, warnings)

	assert.Equal(t, "Crash on startup", conv.Title)
	assert.Equal(t, "open", conv.State)
	assert.Equal(t, "reporter", conv.Description.Author.Login)
	assert.Equal(t, "It crashes.", conv.Description.Body)
	assert.Equal(t, OriginDescription, conv.Description.Origin)
	require.Len(t, conv.Comments, 2)
	assert.Equal(t, "me too", conv.Comments[0].Body)
	assert.Equal(t, "fixed in HEAD", conv.Comments[1].Body)
	assert.Nil(t, conv.Diff)
}

func TestAssembleIssueNoComments(t *testing.T) {
	repo := &fakeRepo{
		issue:         `{"title": "T", "state": "closed", "user": {"login": "u"}, "created_at": "2024-01-01T00:00:00Z"}`,
		issueComments: `[]`,
	}
	server := repo.server(t)
	defer server.Close()

	conv, warnings, err := newTestAssembler(server.URL, 10).Assemble(context.Background(), issueRef())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, conv.Comments)
	assert.Equal(t, NoDescription, conv.Description.Body)
}

func TestAssemblePullRequest(t *testing.T) {
	repo := &fakeRepo{
		pull: `{
			"title": "Add feature",
			"state": "closed",
			"merged_at": "2024-02-01T00:00:00Z",
			"body": "Adds the feature.",
			"user": {"login": "author"},
			"created_at": "2024-01-01T00:00:00Z"
		}`,
		issueComments: `[
			{"user": {"login": "a"}, "body": "discussion", "created_at": "2024-01-02T12:00:00Z"}
		]`,
		reviewComments: `[
			{"user": {"login": "rev"}, "body": "nit", "created_at": "2024-01-02T06:00:00Z", "path": "main.go", "line": 3},
			{"user": {"login": "rev"}, "body": "lgtm", "created_at": "2024-01-03T00:00:00Z", "path": "main.go", "line": 9}
		]`,
		diff: "diff --git a/main.go b/main.go\n+feature\n",
	}
	server := repo.server(t)
	defer server.Close()

	conv, warnings, err := newTestAssembler(server.URL, 10).Assemble(context.Background(), pullRef())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "merged", conv.State, "merged_at overrides the closed state")
	require.NotNil(t, conv.Diff)
	assert.Contains(t, conv.Diff.Raw, "+feature")

	// Issue and review comments interleave in timestamp order.
	require.Len(t, conv.Comments, 3)
	assert.Equal(t, "nit", conv.Comments[0].Body)
	assert.Equal(t, "discussion", conv.Comments[1].Body)
	assert.Equal(t, "lgtm", conv.Comments[2].Body)
	assert.Equal(t, OriginReviewComment, conv.Comments[0].Origin)
	assert.Equal(t, OriginIssueComment, conv.Comments[1].Origin)
}

func TestAssembleIssueCommentsFailure(t *testing.T) {
	repo := &fakeRepo{
		issue:               `{"title": "T", "state": "open", "user": {"login": "u"}, "created_at": "2024-01-01T00:00:00Z"}`,
		issueCommentsStatus: http.StatusInternalServerError,
	}
	server := repo.server(t)
	defer server.Close()

	conv, warnings, err := newTestAssembler(server.URL, 10).Assemble(context.Background(), issueRef())
	require.NoError(t, err, "secondary failures must not abort assembly")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "could not retrieve issue comments")
	assert.Empty(t, conv.Comments)
}

func TestAssembleDiffFailure(t *testing.T) {
	repo := &fakeRepo{
		pull:           `{"title": "T", "state": "open", "user": {"login": "u"}, "created_at": "2024-01-01T00:00:00Z"}`,
		issueComments:  `[]`,
		reviewComments: `[]`,
		diffStatus:     http.StatusInternalServerError,
	}
	server := repo.server(t)
	defer server.Close()

	conv, warnings, err := newTestAssembler(server.URL, 10).Assemble(context.Background(), pullRef())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "could not retrieve diff")
	assert.Nil(t, conv.Diff)
}

func TestAssembleReviewCommentsFailureKeepsIssueComments(t *testing.T) {
	repo := &fakeRepo{
		pull:                 `{"title": "T", "state": "open", "user": {"login": "u"}, "created_at": "2024-01-01T00:00:00Z"}`,
		issueComments:        `[{"user": {"login": "a"}, "body": "hi", "created_at": "2024-01-02T00:00:00Z"}]`,
		reviewCommentsStatus: http.StatusInternalServerError,
		diff:                 "diff --git a/x b/x\n",
	}
	server := repo.server(t)
	defer server.Close()

	conv, warnings, err := newTestAssembler(server.URL, 10).Assemble(context.Background(), pullRef())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "could not retrieve review comments")
	require.Len(t, conv.Comments, 1)
	assert.Equal(t, "hi", conv.Comments[0].Body)
	require.NotNil(t, conv.Diff)
}

func TestAssembleTruncationWarning(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/o/r/issues/1":
			fmt.Fprint(w, `{"title": "T", "state": "open", "user": {"login": "u"}, "created_at": "2024-01-01T00:00:00Z"}`)
		case "/repos/o/r/issues/1/comments":
			// Every page advertises a next page, so only the cap stops us.
			page := r.URL.Query().Get("page")
			if page == "" {
				page = "1"
			}
			w.Header().Set("Link", fmt.Sprintf(`<http://%s%s?page=%s0>; rel="next"`, r.Host, r.URL.Path, page))
			fmt.Fprint(w, `[{"user": {"login": "a"}, "body": "x", "created_at": "2024-01-02T00:00:00Z"}]`)
		}
	}))
	defer server.Close()

	conv, warnings, err := newTestAssembler(server.URL, 2).Assemble(context.Background(), issueRef())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Message, "more items exist than retrieved")
	assert.Contains(t, warnings[0].Message, "stopped after 2 pages")
	assert.Len(t, conv.Comments, 2)
}

func TestAssemblePrimaryNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	}))
	defer server.Close()

	conv, warnings, err := newTestAssembler(server.URL, 10).Assemble(context.Background(), issueRef())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherrors.ErrNotFound))
	assert.Nil(t, conv)
	assert.Nil(t, warnings)
}

func TestAssemblePrimaryRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, _, err := newTestAssembler(server.URL, 10).Assemble(context.Background(), issueRef())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherrors.ErrRateLimit))

	var rle *gherrors.RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, 30*time.Second, rle.RetryAfter)
}

func TestAssembleKindMismatch(t *testing.T) {
	repo := &fakeRepo{
		// The issues endpoint serves PRs too, flagged by the pull_request key.
		issue: `{"title": "T", "state": "open", "pull_request": {"url": "https://api.github.com/repos/o/r/pulls/1"}}`,
	}
	server := repo.server(t)
	defer server.Close()

	_, _, err := newTestAssembler(server.URL, 10).Assemble(context.Background(), issueRef())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gherrors.ErrKindMismatch))
}

func TestAssemblePrimaryPlaceholders(t *testing.T) {
	repo := &fakeRepo{
		issue:         `{}`,
		issueComments: `[]`,
	}
	server := repo.server(t)
	defer server.Close()

	conv, _, err := newTestAssembler(server.URL, 10).Assemble(context.Background(), issueRef())
	require.NoError(t, err)
	assert.Equal(t, Placeholder, conv.Title)
	assert.Equal(t, Placeholder, conv.State)
	assert.Equal(t, Placeholder, conv.Description.Author.Login)
	assert.Equal(t, NoDescription, conv.Description.Body)
	assert.True(t, conv.Description.CreatedAt.IsZero())
}

func TestMergeCommentsStable(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issue := []Comment{
		{Body: "i1", CreatedAt: ts, Origin: OriginIssueComment},
		{Body: "i2", CreatedAt: ts, Origin: OriginIssueComment},
	}
	review := []Comment{
		{Body: "r1", CreatedAt: ts, Origin: OriginReviewComment},
	}

	merged := mergeComments(issue, review)
	require.Len(t, merged, 3)
	// Equal timestamps keep issue comments (appended first) ahead of review
	// comments, and preserve each origin's internal order.
	assert.Equal(t, "i1", merged[0].Body)
	assert.Equal(t, "i2", merged[1].Body)
	assert.Equal(t, "r1", merged[2].Body)
}
