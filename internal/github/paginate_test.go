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
	"net/http/httptest"
	"strconv"
	"testing"
)

// newPagedServer serves totalPages pages of pageSize comment records each,
// chaining them with Link headers the way the real API does.
func newPagedServer(t *testing.T, totalPages, perPage int) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		if page > totalPages {
			fmt.Fprint(w, "[]")
			return
		}

		records := make([]map[string]interface{}, perPage)
		for i := range records {
			records[i] = map[string]interface{}{
				"body": fmt.Sprintf("comment %d-%d", page, i),
			}
		}

		if page < totalPages {
			next := fmt.Sprintf(`<http://%s%s?per_page=%d&page=%d>; rel="next"`,
				r.Host, r.URL.Path, perPage, page+1)
			w.Header().Set("Link", next)
		}
		if err := json.NewEncoder(w).Encode(records); err != nil {
			t.Errorf("encoding page: %v", err)
		}
	}))
}

func TestCollectAllPages(t *testing.T) {
	server := newPagedServer(t, 3, 2)
	defer server.Close()

	paginator := NewPaginator(newTestTransport(server.URL, ""), 2)
	items, truncated, err := paginator.Collect(context.Background(), "repos/o/r/issues/1/comments", nil, 10)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if truncated {
		t.Error("truncated = true, want false when collection is exhausted")
	}
	if len(items) != 6 {
		t.Errorf("len(items) = %d, want 6", len(items))
	}
}

func TestCollectPageCap(t *testing.T) {
	server := newPagedServer(t, 5, 2)
	defer server.Close()

	paginator := NewPaginator(newTestTransport(server.URL, ""), 2)
	items, truncated, err := paginator.Collect(context.Background(), "repos/o/r/issues/1/comments", nil, 2)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if !truncated {
		t.Error("truncated = false, want true when cap is hit with pages remaining")
	}
	// Exactly pageCap pages worth of records, no more.
	if len(items) != 4 {
		t.Errorf("len(items) = %d, want 4", len(items))
	}
}

func TestCollectCapEqualsPages(t *testing.T) {
	// Cap equal to the page count: the last page has no rel="next", so the
	// collection is exhausted before the cap would trigger.
	server := newPagedServer(t, 2, 3)
	defer server.Close()

	paginator := NewPaginator(newTestTransport(server.URL, ""), 3)
	items, truncated, err := paginator.Collect(context.Background(), "repos/o/r/issues/1/comments", nil, 2)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if truncated {
		t.Error("truncated = true, want false when the cap coincides with the last page")
	}
	if len(items) != 6 {
		t.Errorf("len(items) = %d, want 6", len(items))
	}
}

func TestCollectEmptyCollection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	}))
	defer server.Close()

	paginator := NewPaginator(newTestTransport(server.URL, ""), 100)
	items, truncated, err := paginator.Collect(context.Background(), "repos/o/r/issues/1/comments", nil, 10)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if truncated {
		t.Error("truncated = true, want false")
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
}

func TestCollectMidFlightFailure(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"message": "boom"}`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<http://%s%s?page=2>; rel="next"`, r.Host, r.URL.Path))
		fmt.Fprint(w, `[{"body": "first"}]`)
	}))
	defer server.Close()

	paginator := NewPaginator(newTestTransport(server.URL, ""), 100)
	items, truncated, err := paginator.Collect(context.Background(), "repos/o/r/issues/1/comments", nil, 10)
	if err == nil {
		t.Fatal("expected error from second page")
	}
	if truncated {
		t.Error("truncated = true, want false on failure")
	}
	// Records gathered before the failure survive.
	if len(items) != 1 {
		t.Errorf("len(items) = %d, want 1", len(items))
	}
}

func TestCollectUnexpectedShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message": "not an array"}`)
	}))
	defer server.Close()

	paginator := NewPaginator(newTestTransport(server.URL, ""), 100)
	_, _, err := paginator.Collect(context.Background(), "repos/o/r/issues/1/comments", nil, 10)
	if err == nil {
		t.Fatal("expected error for non-array page")
	}
}

func TestNewPaginatorClampsPageSize(t *testing.T) {
	var gotPerPage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPerPage = r.URL.Query().Get("per_page")
		fmt.Fprint(w, "[]")
	}))
	defer server.Close()

	for _, size := range []int{0, -5, 500} {
		paginator := NewPaginator(newTestTransport(server.URL, ""), size)
		if _, _, err := paginator.Collect(context.Background(), "repos/o/r/issues/1/comments", nil, 1); err != nil {
			t.Fatalf("Collect failed: %v", err)
		}
		if gotPerPage != "100" {
			t.Errorf("per_page = %q for size %d, want 100", gotPerPage, size)
		}
	}
}
