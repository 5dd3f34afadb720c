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

package routetype

import "rivaas.dev/routetype/rawurl"

// QueryMap is a simplified view of query string pairs, keyed for matching.
// It counts bare occurrences of a key (?foo) separately from valued ones
// (?foo= and ?foo=bar), because templates treat the two differently.
type QueryMap struct {
	entries map[string]queryEntry
}

type queryEntry struct {
	bare   int
	values []string
}

// NewQueryMap builds a QueryMap from decoded query pairs. A nil slice (no
// query string) yields an empty map, same as a present-but-empty query.
func NewQueryMap(pairs []rawurl.QueryPair) QueryMap {
	entries := make(map[string]queryEntry, len(pairs))
	for _, pair := range pairs {
		entry := entries[pair.Key]
		if pair.HasValue {
			entry.values = append(entry.values, pair.Value)
		} else {
			entry.bare++
		}
		entries[pair.Key] = entry
	}
	return QueryMap{entries: entries}
}

// Single returns the key's value when the key has exactly one valued
// occurrence. Bare occurrences neither count toward that one nor disqualify
// it. Zero or multiple valued occurrences report false.
func (m QueryMap) Single(key string) (string, bool) {
	entry, ok := m.entries[key]
	if !ok || len(entry.values) != 1 {
		return "", false
	}
	return entry.values[0], true
}

// Has reports whether the key occurred at all, bare or valued.
func (m QueryMap) Has(key string) bool {
	_, ok := m.entries[key]
	return ok
}
