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

//go:build !integration

package rawurl

import (
	"reflect"
	"testing"
)

// FuzzParsePathAndQuery checks that parsing never panics on arbitrary input
// and that rendering a parsed target reaches a fixed point: parsing the
// rendered form and rendering again must reproduce it byte for byte.
func FuzzParsePathAndQuery(f *testing.F) {
	f.Add("")
	f.Add("/")
	f.Add("?")
	f.Add("/?")
	f.Add("/foo/bar?baz=bin")
	f.Add("//foo///bar//")
	f.Add("/foo%2Fbar/%zz%")
	f.Add("?a&a=&a=b&=&&")
	f.Add("/%D7%A9%D7%9C%D7%95%D7%9D?he?llo=there%23")
	f.Add("%2541?%00=%26")

	f.Fuzz(func(t *testing.T, target string) {
		segments, query := ParsePathAndQuery(target)
		rendered := RenderPathAndQuery(segments, query)

		segments2, query2 := ParsePathAndQuery(rendered)
		if !reflect.DeepEqual(segments, segments2) {
			t.Fatalf("segments changed after re-parse: %q -> %q (target %q, rendered %q)", segments, segments2, target, rendered)
		}
		if !reflect.DeepEqual(query, query2) {
			t.Fatalf("query changed after re-parse: %v -> %v (target %q, rendered %q)", query, query2, target, rendered)
		}

		if rendered2 := RenderPathAndQuery(segments2, query2); rendered != rendered2 {
			t.Fatalf("render not a fixed point: %q -> %q (target %q)", rendered, rendered2, target)
		}
	})
}

// FuzzEncodeRoundTrip checks decode(encode(s)) == s for arbitrary byte
// strings placed in a path segment, a query key and a query value at once.
// A lone empty segment is the one path shape this layer cannot represent
// (it renders as "/"); the all-dash escape above this package exists for it.
func FuzzEncodeRoundTrip(f *testing.F) {
	f.Add("", "", "")
	f.Add("plain", "key", "value")
	f.Add("wor/ld", "he?llo", "there#")
	f.Add("100%", "a&b", "a=b")
	f.Add("%41", "%zz", "%00")
	f.Add("a\x00b\x1f\x7f", "\xff\xfe", "שלום")

	f.Fuzz(func(t *testing.T, segment, key, value string) {
		rendered := RenderPathAndQuery([]string{segment}, []QueryPair{Pair(key, value)})
		segments, query := ParsePathAndQuery(rendered)

		if segment == "" {
			if segments != nil {
				t.Fatalf("empty segment should render as bare /: got %q via %q", segments, rendered)
			}
		} else if len(segments) != 1 || segments[0] != segment {
			t.Fatalf("segment %q did not round-trip: got %q via %q", segment, segments, rendered)
		}
		if len(query) != 1 || query[0] != Pair(key, value) {
			t.Fatalf("pair (%q, %q) did not round-trip: got %v via %q", key, value, query, rendered)
		}
	})
}
