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
	"encoding/json"
	"time"
)

// Placeholders substituted for fields the API did not supply. The remote
// schema is not under our control, so a malformed record degrades to
// placeholders instead of discarding an otherwise valid page.
const (
	Placeholder   = "N/A"
	NoDescription = "No description provided."
	NoCommentBody = "No comment body."
)

// rawComment is the lenient wire shape shared by issue comments and review
// comments. Every field is optional.
type rawComment struct {
	User *struct {
		Login string `json:"login"`
	} `json:"user"`
	Body         *string `json:"body"`
	CreatedAt    string  `json:"created_at"`
	Path         string  `json:"path"`
	Line         int     `json:"line"`
	OriginalLine int     `json:"original_line"`
}

// ToComment maps a raw API record to a Comment of the given origin. Missing
// author, body, or timestamp produce documented placeholders rather than an
// error; a record that does not even decode becomes an all-placeholder
// comment so the rest of its page survives.
func ToComment(raw json.RawMessage, origin Origin) Comment {
	c := Comment{
		Author: Author{Login: Placeholder},
		Body:   NoCommentBody,
		Origin: origin,
	}

	var rec rawComment
	if err := json.Unmarshal(raw, &rec); err != nil {
		return c
	}

	if rec.User != nil && rec.User.Login != "" {
		c.Author.Login = rec.User.Login
	}
	if rec.Body != nil && *rec.Body != "" {
		c.Body = *rec.Body
	}
	c.CreatedAt = parseTimestamp(rec.CreatedAt)

	if origin == OriginReviewComment {
		c.Path = rec.Path
		c.Line = rec.Line
		if c.Line == 0 {
			c.Line = rec.OriginalLine
		}
	}

	return c
}

// ToDiffHunk wraps raw patch text verbatim.
func ToDiffHunk(raw []byte) DiffHunk {
	return DiffHunk{Raw: string(raw)}
}

// parseTimestamp parses a GitHub ISO 8601 timestamp. An absent or
// unparseable value yields the zero time, which renders as "N/A".
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
