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
	"fmt"
	"time"
)

// Kind identifies the resource family of a reference.
type Kind string

// Supported resource kinds.
const (
	KindIssue       Kind = "issue"
	KindPullRequest Kind = "pull"
)

// ResourceRef is the parsed identity of the remote issue or pull request
// being fetched. It is parsed once from the input URL and never mutated.
type ResourceRef struct {
	Owner  string
	Repo   string
	Number int
	Kind   Kind
}

// String returns the short owner/repo#number form used in messages.
func (r ResourceRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// URL returns the canonical browser URL of the resource.
func (r ResourceRef) URL() string {
	segment := "issues"
	if r.Kind == KindPullRequest {
		segment = "pull"
	}
	return fmt.Sprintf("https://github.com/%s/%s/%s/%d", r.Owner, r.Repo, segment, r.Number)
}

// Author identifies who wrote a comment. A value type with no identity beyond
// the login.
type Author struct {
	Login string `json:"login"`
}

// Origin records which collection a comment came from.
type Origin string

// Comment origins.
const (
	OriginDescription   Origin = "description"
	OriginIssueComment  Origin = "issue_comment"
	OriginReviewComment Origin = "review_comment"
)

// Comment is a single contribution to the conversation. Path and Line are set
// only for review comments, which are anchored to a position in the diff.
type Comment struct {
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	Body      string    `json:"body"`
	Origin    Origin    `json:"origin"`
	Path      string    `json:"path,omitempty"`
	Line      int       `json:"line,omitempty"`
}

// DiffHunk is the unmodified patch text associated with a pull request. It is
// opaque to the assembler and passed through verbatim.
type DiffHunk struct {
	Raw string `json:"raw"`
}

// Conversation is the merged, ordered record of a resource's description and
// comments. It is built once per invocation and handed to the renderer as a
// read-only value.
//
// Comments holds issue comments and review comments interleaved into one
// sequence sorted ascending by CreatedAt; ties keep the arrival order within
// each origin's page sequence.
type Conversation struct {
	Ref         ResourceRef `json:"ref"`
	Title       string      `json:"title"`
	State       string      `json:"state"`
	Description Comment     `json:"description"`
	Comments    []Comment   `json:"comments"`
	Diff        *DiffHunk   `json:"diff,omitempty"`
}

// Warning is a non-fatal degradation recorded alongside a successful result:
// a truncated collection, a failed secondary fetch, a page of unexpected
// shape. Warnings never abort assembly.
type Warning struct {
	Message string `json:"message"`
}
