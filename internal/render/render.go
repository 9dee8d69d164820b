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

// Package render maps a Conversation to its two output formats. Rendering is
// pure and deterministic: the same Conversation and Warnings always produce
// byte-identical output, with every timestamp formatted in UTC.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/ghconvo/ghconvo/internal/convo"
)

const (
	sectionRule = "----------------------------------------"
	blockRule   = "========================================"
)

// Text renders a conversation as a human-readable block: header, description,
// then the merged comments in order, each prefixed with author and timestamp.
// Warnings are not embedded here; they belong on the diagnostic stream.
func Text(conv *convo.Conversation) string {
	var b strings.Builder

	heading := "GitHub Issue Conversation"
	descHeading := "ISSUE DESCRIPTION:"
	if conv.Ref.Kind == convo.KindPullRequest {
		heading = "GitHub Pull Request Conversation"
		descHeading = "PR DESCRIPTION:"
	}

	fmt.Fprintf(&b, "%s: %s\n", heading, conv.Ref)
	fmt.Fprintf(&b, "URL: %s\n", conv.Ref.URL())
	fmt.Fprintf(&b, "Title: %s\n", conv.Title)
	fmt.Fprintf(&b, "Status: %s\n", conv.State)
	b.WriteString(sectionRule + "\n")
	fmt.Fprintf(&b, "Opened by: @%s on %s\n", conv.Description.Author.Login, formatTimestamp(conv.Description.CreatedAt))
	b.WriteString(sectionRule + "\n")
	b.WriteString(descHeading + "\n")
	b.WriteString(conv.Description.Body + "\n")
	b.WriteString(blockRule + "\n")

	if len(conv.Comments) == 0 {
		b.WriteString("\nNo comments found.\n")
	} else {
		b.WriteString("\nCOMMENTS:\n\n")
		for _, c := range conv.Comments {
			b.WriteString(sectionRule + "\n")
			fmt.Fprintf(&b, "Comment by @%s on %s\n", c.Author.Login, formatTimestamp(c.CreatedAt))
			if c.Origin == convo.OriginReviewComment {
				fmt.Fprintf(&b, "File: %s, Line: %d\n", c.Path, c.Line)
			}
			b.WriteString(sectionRule + "\n")
			b.WriteString(c.Body + "\n")
		}
		b.WriteString(blockRule + "\n")
	}

	if conv.Diff != nil {
		b.WriteString("\nCODE DIFF:\n\n")
		b.WriteString(conv.Diff.Raw)
		if !strings.HasSuffix(conv.Diff.Raw, "\n") {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// formatTimestamp converts a timestamp to the fixed readable form used in
// text output. The zero time renders as the placeholder.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return convo.Placeholder
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
