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

// Package template parses route template strings into their compiled form.
//
// A template looks like a request target: a path, optionally followed by "?"
// and query parameters. Path segments are literal text or slots:
//
//	style.css            literal segments only
//	hello/{name}         named slot
//	goodbye/{}           positional slot
//	user/{id int64}      named slot with an explicit converter
//
// Query parameters always have literal keys. A parameter without "=" requires
// the key to be present; "key=literal" requires that exact single value; and
// "key={}", "key={name}" or "key={name type}" bind the single value to a slot:
//
//	foo?bar={bar}
//	search?q={query}&exact
//
// This package is syntax only. Binding slots to struct fields, converter
// resolution and matching live in the routetype package.
package template

import (
	"fmt"
	"strings"
)

// Template is the compiled form of a route template string. It is inert data;
// do not modify it after parsing.
type Template struct {
	raw   string
	Path  []Segment
	Query []Param
}

// Segment is one path segment of a template: either literal text or a slot.
type Segment struct {
	Literal string
	Slot    *Slot
}

// Slot is a placeholder bound to a route field. Name is empty for positional
// slots ({}); Type is empty unless the template names a converter explicitly.
type Slot struct {
	Name string
	Type string
}

// ParamKind says how a query parameter participates in matching.
type ParamKind int

const (
	// ParamFlag requires the key to be present, with or without a value.
	ParamFlag ParamKind = iota
	// ParamLiteral requires the key's single value to equal a literal.
	ParamLiteral
	// ParamSlot binds the key's single value to a slot.
	ParamSlot
)

// Param is one query parameter specification. Key is always literal text.
type Param struct {
	Key     string
	Kind    ParamKind
	Literal string // set for ParamLiteral
	Slot    *Slot  // set for ParamSlot
}

// String returns the template source text.
func (t *Template) String() string {
	return t.raw
}

// Slots returns the template's slots in match order: path first, then query.
func (t *Template) Slots() []*Slot {
	var slots []*Slot
	for _, seg := range t.Path {
		if seg.Slot != nil {
			slots = append(slots, seg.Slot)
		}
	}
	for _, param := range t.Query {
		if param.Slot != nil {
			slots = append(slots, param.Slot)
		}
	}
	return slots
}

// Parse compiles a route template string.
func Parse(pattern string) (*Template, error) {
	t := &Template{raw: pattern}

	rawPath, rawQuery, hasQuery := strings.Cut(pattern, "?")

	rawPath = strings.TrimPrefix(rawPath, "/")
	if rawPath != "" {
		parts := strings.Split(rawPath, "/")
		t.Path = make([]Segment, len(parts))
		for i, part := range parts {
			slot, err := parseSlot(part, pattern)
			if err != nil {
				return nil, err
			}
			if slot != nil {
				t.Path[i] = Segment{Slot: slot}
			} else {
				t.Path[i] = Segment{Literal: part}
			}
		}
	}

	if hasQuery {
		if rawQuery == "" {
			return nil, fmt.Errorf("route template %q has an empty query; omit the question mark", pattern)
		}
		parts := strings.Split(rawQuery, "&")
		t.Query = make([]Param, len(parts))
		for i, part := range parts {
			key, value, hasValue := strings.Cut(part, "=")
			if !hasValue {
				t.Query[i] = Param{Key: key, Kind: ParamFlag}
				continue
			}
			slot, err := parseSlot(value, pattern)
			if err != nil {
				return nil, err
			}
			if slot != nil {
				t.Query[i] = Param{Key: key, Kind: ParamSlot, Slot: slot}
			} else {
				t.Query[i] = Param{Key: key, Kind: ParamLiteral, Literal: value}
			}
		}
	}

	return t, nil
}

// MustParse is like Parse but panics on error. It simplifies static route
// tables built at package init time.
func MustParse(pattern string) *Template {
	t, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

// parseSlot classifies one path segment or query value. It returns a non-nil
// slot for slot syntax, nil for literal text, and an error for text that
// opens a slot without closing it.
func parseSlot(s, pattern string) (*Slot, error) {
	if s == "{}" {
		return &Slot{}, nil
	}
	if !strings.HasPrefix(s, "{") {
		return nil, nil
	}
	if !strings.HasSuffix(s, "}") {
		return nil, fmt.Errorf("invalid slot %q in route template %q", s, pattern)
	}
	fields := strings.Fields(s[1 : len(s)-1])
	switch len(fields) {
	case 1:
		return &Slot{Name: fields[0]}, nil
	case 2:
		return &Slot{Name: fields[0], Type: fields[1]}, nil
	default:
		return nil, fmt.Errorf("invalid slot %q in route template %q", s, pattern)
	}
}
