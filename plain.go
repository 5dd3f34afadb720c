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

import (
	"rivaas.dev/routetype/normalize"
	"rivaas.dev/routetype/rawurl"
)

// PlainRoute is an untyped route value: the decoded canonical form of any
// request target. It is the escape hatch for targets that carry no schema,
// typically tried after Codec.Parse reports ErrNoMatch.
//
// Segments holds decoded path segments with dash escaping removed, so a
// segment can be any string including the empty one. Query is nil when the
// target has no "?", and otherwise holds every pair in order.
type PlainRoute struct {
	Segments []string
	Query    []rawurl.QueryPair
}

// ParsePlain decodes any canonical request target into a PlainRoute.
// Non-canonical targets return a *NormalizationError, exactly as Codec.Parse
// does, so redirect handling stays uniform across typed and untyped routes.
func ParsePlain(target string) (PlainRoute, error) {
	segments, query := rawurl.ParsePathAndQuery(target)
	clean, redirect, ok := normalize.ParsePath(segments, query)
	if !ok {
		return PlainRoute{}, &NormalizationError{Target: redirect}
	}
	return PlainRoute{Segments: clean, Query: query}, nil
}

// Path returns the dash-escaped path segments, the form Render joins.
// The receiver is not modified.
func (p PlainRoute) Path() []string {
	return normalize.RenderPath(p.Segments)
}

// Render encodes the route back into its canonical request target.
// Rendering the result of ParsePlain reproduces the canonical target
// byte for byte.
func (p PlainRoute) Render() string {
	return rawurl.RenderPathAndQuery(p.Path(), p.Query)
}
