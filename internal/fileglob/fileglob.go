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

// Package fileglob collects the contents of files matching glob patterns
// under a base directory, honoring an ignore list. It backs the files
// subcommand: a purely local utility with no network involvement.
package fileglob

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Entry is the result for one matched file. Status is "success" with Content
// populated, or "error" with Error describing why the file could not be read.
// A single unreadable file never aborts the collection.
type Entry struct {
	Path    string `json:"path"`
	Content string `json:"content,omitempty"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

// Collect walks baseDir recursively and returns an entry for every file whose
// path (relative to baseDir) or basename matches one of patterns. Ignore
// patterns exclude files and whole directories: a plain name matches any path
// segment, a glob matches the relative path or the basename.
func Collect(baseDir string, patterns, ignore []string) ([]Entry, error) {
	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("base directory not found or not a directory: %s", baseDir)
	}

	var entries []Entry

	err = filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(baseDir, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if isIgnored(rel, ignore) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		if !matchesAny(rel, d.Name(), patterns) {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			entries = append(entries, Entry{
				Path:   rel,
				Status: "error",
				Error:  fmt.Sprintf("could not read file: %v", readErr),
			})
			return nil
		}

		entries = append(entries, Entry{
			Path:    rel,
			Content: string(content),
			Status:  "success",
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", baseDir, err)
	}

	return entries, nil
}

// matchesAny reports whether the relative path or the basename matches one of
// the fnmatch-style patterns.
func matchesAny(rel, base string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// isIgnored applies the ignore list to a relative path. Plain names (no glob
// metacharacters) match any path segment, so "node_modules" prunes the whole
// tree below it; glob patterns match the relative path or the basename.
func isIgnored(rel string, ignore []string) bool {
	segments := strings.Split(filepath.ToSlash(rel), "/")

	for _, pattern := range ignore {
		if !strings.ContainsAny(pattern, "*?[") {
			for _, seg := range segments {
				if seg == pattern {
					return true
				}
			}
			continue
		}
		if ok, _ := filepath.Match(pattern, filepath.ToSlash(rel)); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
	}
	return false
}

// Text renders entries in the fixed block form used by the files subcommand.
func Text(entries []Entry) string {
	if len(entries) == 0 {
		return "No files found matching the criteria.\n"
	}

	var b strings.Builder
	for _, e := range entries {
		if e.Status == "error" {
			fmt.Fprintf(&b, "Error processing %s: %s\n", e.Path, e.Error)
			continue
		}
		b.WriteString("--------------\n")
		fmt.Fprintf(&b, "path: %s\n", e.Path)
		b.WriteString("--------------\n")
		b.WriteString(e.Content)
		if !strings.HasSuffix(e.Content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("--------------\n\n")
	}
	return b.String()
}
