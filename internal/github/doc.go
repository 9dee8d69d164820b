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

// Package github implements the protocol layer against the GitHub REST API:
// an authenticated transport that maps HTTP failures to typed errors, and a
// paginator that exhausts a paged collection up to a configured page cap.
//
// The transport never retries; retry policy belongs to callers. The paginator
// returns whatever it gathered even when a page fails, so callers can degrade
// gracefully instead of discarding partial data.
package github
