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
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	gherrors "github.com/ghconvo/ghconvo/internal/errors"
	"github.com/ghconvo/ghconvo/internal/github"
)

// Assembler orchestrates the paginated fetches for one resource and merges
// them into a single ordered Conversation.
//
// Only the primary resource fetch is fatal. Comment, review-comment, and diff
// fetches degrade to Warnings: the Conversation is still a success, it just
// reflects only the data actually retrieved.
type Assembler struct {
	transport *github.Transport
	paginator *github.Paginator
	pageCap   int
}

// NewAssembler creates an assembler. pageCap bounds how many pages each
// comment collection may consume.
func NewAssembler(transport *github.Transport, paginator *github.Paginator, pageCap int) *Assembler {
	return &Assembler{
		transport: transport,
		paginator: paginator,
		pageCap:   pageCap,
	}
}

// rawResource is the lenient wire shape of the primary issue or pull request
// record. The pull_request key appears on the issues endpoint when the number
// actually belongs to a pull request.
type rawResource struct {
	Title *string `json:"title"`
	State *string `json:"state"`
	Body  *string `json:"body"`
	User  *struct {
		Login string `json:"login"`
	} `json:"user"`
	CreatedAt   string           `json:"created_at"`
	MergedAt    *string          `json:"merged_at"`
	PullRequest *json.RawMessage `json:"pull_request"`
}

// Assemble fetches the resource named by ref and returns the merged
// Conversation plus any Warnings accumulated along the way. An error is
// returned only for fatal conditions: the primary fetch failing, or the
// resource not being of the kind the URL claims.
func (a *Assembler) Assemble(ctx context.Context, ref ResourceRef) (*Conversation, []Warning, error) {
	conv, err := a.fetchPrimary(ctx, ref)
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, Warning{Message: fmt.Sprintf(format, args...)})
	}

	commentsPath := fmt.Sprintf("repos/%s/%s/issues/%d/comments", ref.Owner, ref.Repo, ref.Number)
	issueComments, truncated, err := a.collectComments(ctx, commentsPath, OriginIssueComment)
	if truncated {
		warn("issue comments: more items exist than retrieved (stopped after %d pages)", a.pageCap)
	}
	if err != nil {
		warn("could not retrieve issue comments: %v", err)
	}

	var reviewComments []Comment
	if ref.Kind == KindPullRequest {
		reviewPath := fmt.Sprintf("repos/%s/%s/pulls/%d/comments", ref.Owner, ref.Repo, ref.Number)
		var reviewTruncated bool
		reviewComments, reviewTruncated, err = a.collectComments(ctx, reviewPath, OriginReviewComment)
		if reviewTruncated {
			warn("review comments: more items exist than retrieved (stopped after %d pages)", a.pageCap)
		}
		if err != nil {
			warn("could not retrieve review comments: %v", err)
		}

		diffPath := fmt.Sprintf("repos/%s/%s/pulls/%d", ref.Owner, ref.Repo, ref.Number)
		resp, err := a.transport.Send(ctx, http.MethodGet, diffPath, nil, github.AcceptDiff)
		if err != nil {
			warn("could not retrieve diff: %v", err)
		} else {
			hunk := ToDiffHunk(resp.Body)
			conv.Diff = &hunk
		}
	}

	conv.Comments = mergeComments(issueComments, reviewComments)

	return conv, warnings, nil
}

// fetchPrimary retrieves the primary resource record. Any failure here is
// fatal for the whole aggregation.
func (a *Assembler) fetchPrimary(ctx context.Context, ref ResourceRef) (*Conversation, error) {
	segment, noun := "issues", "issue"
	if ref.Kind == KindPullRequest {
		segment, noun = "pulls", "pull request"
	}
	path := fmt.Sprintf("repos/%s/%s/%s/%d", ref.Owner, ref.Repo, segment, ref.Number)

	resp, err := a.transport.Send(ctx, http.MethodGet, path, nil, github.AcceptJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s %s: %w", noun, ref, err)
	}

	var rec rawResource
	if err := json.Unmarshal(resp.Body, &rec); err != nil {
		return nil, fmt.Errorf("unexpected response shape for %s %s: %w", noun, ref, err)
	}

	// The issues endpoint serves pull requests too; an issue URL that lands
	// on one is a caller mistake, not something to silently reinterpret.
	if ref.Kind == KindIssue && rec.PullRequest != nil {
		return nil, fmt.Errorf("%s is a pull request, not an issue: %w", ref, gherrors.ErrKindMismatch)
	}

	conv := &Conversation{
		Ref:   ref,
		Title: Placeholder,
		State: Placeholder,
		Description: Comment{
			Author: Author{Login: Placeholder},
			Body:   NoDescription,
			Origin: OriginDescription,
		},
	}

	if rec.Title != nil && *rec.Title != "" {
		conv.Title = *rec.Title
	}
	if rec.State != nil && *rec.State != "" {
		conv.State = *rec.State
	}
	if ref.Kind == KindPullRequest && rec.MergedAt != nil && *rec.MergedAt != "" {
		conv.State = "merged"
	}
	if rec.User != nil && rec.User.Login != "" {
		conv.Description.Author.Login = rec.User.Login
	}
	if rec.Body != nil && *rec.Body != "" {
		conv.Description.Body = *rec.Body
	}
	conv.Description.CreatedAt = parseTimestamp(rec.CreatedAt)

	return conv, nil
}

// collectComments runs the paginator over one comment collection and
// normalizes each record. Partial results survive a mid-collection failure.
func (a *Assembler) collectComments(ctx context.Context, path string, origin Origin) ([]Comment, bool, error) {
	items, truncated, err := a.paginator.Collect(ctx, path, nil, a.pageCap)

	comments := make([]Comment, 0, len(items))
	for _, item := range items {
		comments = append(comments, ToComment(item, origin))
	}
	return comments, truncated, err
}

// mergeComments interleaves issue and review comments into one sequence
// sorted ascending by CreatedAt. The sort is stable, so ties keep arrival
// order within each origin's page sequence.
func mergeComments(issue, review []Comment) []Comment {
	merged := make([]Comment, 0, len(issue)+len(review))
	merged = append(merged, issue...)
	merged = append(merged, review...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.Before(merged[j].CreatedAt)
	})

	return merged
}
