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

package render

import "github.com/ghconvo/ghconvo/internal/convo"

// Record is the structured output form: one flattened record per invocation.
// Status is "success" whenever a Conversation was produced at all, even with
// Warnings present; a fatal aggregation error never reaches this renderer and
// is reported through ErrorRecord instead.
type Record struct {
	Status           string   `json:"status"`
	URL              string   `json:"url"`
	Title            string   `json:"title"`
	ConversationText string   `json:"conversation_text"`
	Warnings         []string `json:"warnings"`
	Error            string   `json:"error,omitempty"`
}

// Structured flattens a conversation and its warnings into a Record. The
// conversation body is carried as the deterministic text rendering, so both
// formats agree on content.
func Structured(conv *convo.Conversation, warnings []convo.Warning) Record {
	msgs := make([]string, 0, len(warnings))
	for _, w := range warnings {
		msgs = append(msgs, w.Message)
	}

	return Record{
		Status:           "success",
		URL:              conv.Ref.URL(),
		Title:            conv.Title,
		ConversationText: Text(conv),
		Warnings:         msgs,
	}
}

// ErrorRecord is the structured form of a fatal error: a terminal input error
// or a failed primary fetch.
func ErrorRecord(err error) Record {
	return Record{
		Status:   "error",
		Warnings: []string{},
		Error:    err.Error(),
	}
}
