// Copyright 2025 The Rivaas Authors
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

// Package normalize enforces one canonical request target per route.
//
// The rules are fixed:
//
//   - Repeated slashes (/foo//bar) and trailing slashes (/foo/) decode to
//     empty path segments; such targets are non-canonical and callers are
//     expected to redirect to the cleaned target this package computes.
//   - A decoded segment consisting solely of dashes is the escaped form of
//     the same segment with one dash removed: rendering appends a dash to
//     empty and all-dash segments, parsing strips it back. This keeps empty
//     segments representable ("/hello/-" carries the empty name) without
//     colliding with the redirect rule above.
package normalize

import (
	"slices"

	"rivaas.dev/routetype/rawurl"
)

// ParsePath canonicalizes decoded path segments on the way in.
//
// If any segment is empty the target is non-canonical: ok is false and
// redirect holds the canonical request target, rendered from the non-empty
// segments as-is with the query carried through unchanged (nil means no query
// string). Otherwise ok is true and clean holds the segments with one
// trailing dash stripped from every all-dash segment.
func ParsePath(segments []string, query []rawurl.QueryPair) (clean []string, redirect string, ok bool) {
	if slices.Contains(segments, "") {
		kept := make([]string, 0, len(segments))
		for _, s := range segments {
			if s != "" {
				kept = append(kept, s)
			}
		}
		return nil, rawurl.RenderPathAndQuery(kept, query), false
	}

	escaped := false
	for _, s := range segments {
		if allDashes(s) {
			escaped = true
			break
		}
	}
	if !escaped {
		return segments, "", true
	}

	clean = slices.Clone(segments)
	for i, s := range clean {
		if allDashes(s) {
			clean[i] = s[:len(s)-1]
		}
	}
	return clean, "", true
}

// RenderPath escapes segments on the way out: empty and all-dash segments get
// one dash appended, so the rendered target parses back to the same segments
// and never triggers the empty-segment redirect. The input is not modified.
func RenderPath(segments []string) []string {
	if len(segments) == 0 {
		return segments
	}
	out := slices.Clone(segments)
	for i, s := range out {
		if s == "" || allDashes(s) {
			out[i] = s + "-"
		}
	}
	return out
}

func allDashes(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '-' {
			return false
		}
	}
	return true
}
