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
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Paginator drives page-numbered iteration over a single resource collection
// until exhaustion or a page cap, using the transport as its only
// collaborator. The page cap exists because open-ended pagination against a
// third-party API must not enable unbounded resource consumption or latency
// for very large threads.
type Paginator struct {
	transport *Transport
	pageSize  int
}

// NewPaginator creates a paginator requesting pageSize records per page.
// GitHub caps per_page at 100.
func NewPaginator(transport *Transport, pageSize int) *Paginator {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}
	return &Paginator{transport: transport, pageSize: pageSize}
}

// Collect fetches the collection at path page by page, appending the raw
// records of each page, until the API signals no further pages, pageCap pages
// have been consumed, or a call fails.
//
// Hitting the cap is not an error: truncated is true and the records gathered
// so far are returned. On a failed call the records gathered before the
// failure are returned alongside the error; the caller decides whether that
// is fatal.
func (p *Paginator) Collect(ctx context.Context, path string, params url.Values, pageCap int) (items []json.RawMessage, truncated bool, err error) {
	page := 1

	for fetched := 0; ; fetched++ {
		if fetched >= pageCap {
			log.Debug().Str("path", path).Int("page_cap", pageCap).Msg("page cap reached")
			return items, true, nil
		}

		q := url.Values{}
		for k, v := range params {
			q[k] = v
		}
		q.Set("per_page", strconv.Itoa(p.pageSize))
		q.Set("page", strconv.Itoa(page))

		resp, err := p.transport.Send(ctx, http.MethodGet, path, q, AcceptJSON)
		if err != nil {
			return items, false, err
		}

		var records []json.RawMessage
		if err := json.Unmarshal(resp.Body, &records); err != nil {
			return items, false, fmt.Errorf("unexpected page shape for %s: %w", path, err)
		}
		items = append(items, records...)

		if resp.NextPage == 0 {
			return items, false, nil
		}
		page = resp.NextPage
	}
}
