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

package testutil

import (
	"fmt"
	"time"
)

// baseTime anchors generated timestamps so fixtures are reproducible.
var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// IssueResource returns a minimal issue record for the mock API.
func IssueResource(title, state, body, author string) map[string]interface{} {
	return map[string]interface{}{
		"title":      title,
		"state":      state,
		"body":       body,
		"user":       map[string]interface{}{"login": author},
		"created_at": baseTime.Format(time.RFC3339),
	}
}

// PullResource returns a minimal pull request record. A non-empty mergedAt
// marks the PR as merged.
func PullResource(title, state, body, author, mergedAt string) map[string]interface{} {
	rec := IssueResource(title, state, body, author)
	if mergedAt != "" {
		rec["merged_at"] = mergedAt
	}
	return rec
}

// GenerateComments returns n issue-comment records with distinct authors and
// strictly increasing timestamps one hour apart.
func GenerateComments(n int) []map[string]interface{} {
	comments := make([]map[string]interface{}, n)
	for i := range comments {
		comments[i] = map[string]interface{}{
			"user":       map[string]interface{}{"login": fmt.Sprintf("user%d", i+1)},
			"body":       fmt.Sprintf("comment %d", i+1),
			"created_at": baseTime.Add(time.Duration(i+1) * time.Hour).Format(time.RFC3339),
		}
	}
	return comments
}

// GenerateReviewComments returns n review-comment records anchored to the
// given file, offset half an hour from GenerateComments timestamps so merges
// interleave the two collections.
func GenerateReviewComments(n int, path string) []map[string]interface{} {
	comments := make([]map[string]interface{}, n)
	for i := range comments {
		comments[i] = map[string]interface{}{
			"user":       map[string]interface{}{"login": fmt.Sprintf("reviewer%d", i+1)},
			"body":       fmt.Sprintf("review comment %d", i+1),
			"created_at": baseTime.Add(time.Duration(i+1)*time.Hour + 30*time.Minute).Format(time.RFC3339),
			"path":       path,
			"line":       (i + 1) * 10,
		}
	}
	return comments
}
