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

// Package rawurl lexes and renders HTTP request targets ("path?query") at the
// byte level: splitting into percent-decoded path segments and query pairs,
// and joining them back with deterministic percent-encoding.
//
// Decoding is lossy and never fails: a '%' that is not followed by two hex
// digits is passed through literally. Encoding is total and round-trips:
// parsing a rendered target always reproduces the original segments and pairs.
package rawurl

import "strings"

// QueryPair is a single decoded "&"-delimited component of a query string.
//
// HasValue distinguishes a key with no "=" at all (?foo) from a key with an
// empty value (?foo=). The two are different on the wire and stay different
// here.
type QueryPair struct {
	Key      string
	Value    string
	HasValue bool
}

// Pair returns a QueryPair carrying a value, possibly empty.
func Pair(key, value string) QueryPair {
	return QueryPair{Key: key, Value: value, HasValue: true}
}

// Flag returns a QueryPair with no value, i.e. a bare key.
func Flag(key string) QueryPair {
	return QueryPair{Key: key}
}

// ParsePathAndQuery splits a request target at the first "?" and decodes both
// sides. The returned query slice is nil if and only if the target contains
// no "?"; a trailing bare "?" yields a non-nil empty slice.
func ParsePathAndQuery(target string) ([]string, []QueryPair) {
	path, query, found := strings.Cut(target, "?")
	if !found {
		return ParsePath(target), nil
	}
	return ParsePath(path), ParseQuery(query)
}

// ParsePath decodes the path portion of a request target into segments.
//
// One leading "/" is accepted and ignored. An empty path produces nil.
// Every remaining "/" delimits a segment, so repeated or trailing slashes
// produce empty segments; each segment is percent-decoded independently.
func ParsePath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = decode(s)
	}
	return segments
}

// ParseQuery decodes a query string into pairs. Any leading "?" must already
// be stripped; one provided here becomes part of the first key.
//
// An empty input returns a non-nil empty slice. Each "&"-delimited component
// is split at its first "=": absent "=" leaves HasValue false, present "="
// sets HasValue with the (possibly empty) decoded value.
func ParseQuery(query string) []QueryPair {
	if query == "" {
		return []QueryPair{}
	}
	parts := strings.Split(query, "&")
	pairs := make([]QueryPair, len(parts))
	for i, part := range parts {
		key, value, found := strings.Cut(part, "=")
		pairs[i] = QueryPair{Key: decode(key), Value: decode(value), HasValue: found}
	}
	return pairs
}

// RenderPathAndQuery joins segments and query pairs into a request target.
//
// The result always begins with "/"; an empty segment list renders as exactly
// "/". A nil query renders no "?" at all, while a non-nil empty query renders
// a bare "?". A pair without a value emits just its key; a pair with a value
// emits "key=value" even when the value is empty.
func RenderPathAndQuery(segments []string, query []QueryPair) string {
	var b strings.Builder
	for _, segment := range segments {
		b.WriteByte('/')
		appendEscaped(&b, segment, escapePathByte)
	}
	if b.Len() == 0 {
		b.WriteByte('/')
	}
	if query != nil {
		b.WriteByte('?')
		for i, pair := range query {
			if i > 0 {
				b.WriteByte('&')
			}
			appendEscaped(&b, pair.Key, escapeQueryByte)
			if pair.HasValue {
				b.WriteByte('=')
				appendEscaped(&b, pair.Value, escapeQueryByte)
			}
		}
	}
	return b.String()
}

// decode applies lossy percent-decoding: valid "%XX" sequences (hex of either
// case) become the byte they name, everything else is copied through.
func decode(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

func appendEscaped(b *strings.Builder, s string, escape func(byte) bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xf])
		} else {
			b.WriteByte(c)
		}
	}
}

// escapeQueryByte reports whether a byte must be percent-encoded inside a
// query key or value. The set is the WHATWG query percent-encode set plus
// '%', '&' and '=', which must be encoded for decoding to invert rendering.
// Note '?' stays literal inside the query.
func escapeQueryByte(c byte) bool {
	if c <= 0x1f || c >= 0x7f {
		return true
	}
	switch c {
	case ' ', '"', '#', '<', '>', '%', '&', '=':
		return true
	}
	return false
}

// escapePathByte reports whether a byte must be percent-encoded inside a path
// segment: the query set plus '?', '`', '{', '}' and '/' itself, so segments
// containing slashes survive a round trip.
func escapePathByte(c byte) bool {
	if escapeQueryByte(c) {
		return true
	}
	switch c {
	case '?', '`', '{', '}', '/':
		return true
	}
	return false
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
