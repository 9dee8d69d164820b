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
	"net/url"
	"regexp"
	"strconv"
	"strings"

	gherrors "github.com/ghconvo/ghconvo/internal/errors"
)

// pathRe matches /<owner>/<repo>/(issues|pull)/<number> with an optional
// trailing slash.
var pathRe = regexp.MustCompile(`^/([^/]+)/([^/]+)/(issues|pull)/(\d+)/?$`)

// ParseURL extracts a ResourceRef from a full GitHub issue or pull request
// URL, e.g. https://github.com/golang/go/issues/1 or
// https://github.com/golang/go/pull/2. Any other shape is a terminal input
// error, reported before any network access.
func ParseURL(raw string) (ResourceRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return ResourceRef{}, fmt.Errorf("cannot parse %q: %w", raw, gherrors.ErrInvalidURL)
	}

	if !strings.EqualFold(u.Host, "github.com") {
		return ResourceRef{}, fmt.Errorf("URL must be from github.com, got host %q: %w", u.Host, gherrors.ErrInvalidURL)
	}

	m := pathRe.FindStringSubmatch(u.Path)
	if m == nil {
		return ResourceRef{}, fmt.Errorf("expected /<owner>/<repo>/(issues|pull)/<number>, got %q: %w", u.Path, gherrors.ErrInvalidURL)
	}

	number, err := strconv.Atoi(m[4])
	if err != nil || number <= 0 {
		return ResourceRef{}, fmt.Errorf("invalid resource number %q: %w", m[4], gherrors.ErrInvalidURL)
	}

	kind := KindIssue
	if m[3] == "pull" {
		kind = KindPullRequest
	}

	return ResourceRef{
		Owner:  m[1],
		Repo:   m[2],
		Number: number,
		Kind:   kind,
	}, nil
}
