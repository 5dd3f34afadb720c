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

// Package routetype is a bidirectional codec between typed route values and
// HTTP request targets.
//
// Instead of matching paths and then pulling parameters out of a string map,
// an application declares one struct per route and binds each struct to a
// template. Parsing a request target yields a struct value; rendering a
// struct value yields the canonical target. Links are built by constructing
// values, so a route that renders is a route that matches, and renaming a
// field is a compile-time event rather than a 404.
//
// # Key Features
//
//   - Typed routes: one struct per route, fields bound to template slots
//   - Bidirectional: the same template parses targets and renders links
//   - Canonical targets: one target per route value, with redirect
//     information for every non-canonical spelling
//   - Deterministic percent-encoding that round-trips any string, including
//     "/" and "%" inside a path segment
//   - Strict value conversion (bool is "true" or "false", integers are
//     base 10 and bounds-checked), extensible through custom converters
//   - PlainRoute as an untyped escape hatch with the same guarantees
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "rivaas.dev/routetype"
//	)
//
//	type Route interface{ routeTag() }
//
//	type Home struct{}
//	type User struct{ ID uint64 }
//	type Search struct {
//	    Query string `route:"q"`
//	    Page  uint32
//	}
//
//	func (Home) routeTag()   {}
//	func (User) routeTag()   {}
//	func (Search) routeTag() {}
//
//	func main() {
//	    codec := routetype.New[Route]()
//	    codec.MustRegister("", Home{})
//	    codec.MustRegister("users/{id}", User{})
//	    codec.MustRegister("search?q={}&page={}", Search{})
//
//	    route, err := codec.Parse("/users/42")
//	    if err != nil {
//	        // *NormalizationError carries a redirect target;
//	        // ErrNoMatch means 404.
//	    }
//	    fmt.Printf("%#v\n", route) // main.User{ID:0x2a}
//
//	    target, _ := codec.Render(Search{Query: "go routers", Page: 2})
//	    fmt.Println(target) // /search?q=go%20routers&page=2
//	}
//
// # Canonical Targets
//
// Every route value renders to exactly one target, and Parse accepts only
// that spelling. Targets whose decoded path contains an empty segment, such
// as /users//42 or /users/42/, fail with a *NormalizationError whose Target
// field holds the canonical form, ready for an HTTP redirect. Because the
// empty segment is the redirect trigger, an empty string routed into a path
// is spelled "-" on the wire and a literal all-dash segment gains one dash;
// both directions of that escape are handled internally and applications
// only ever see the unescaped values.
//
// # Templates
//
// A template is a target with slots:
//
//	""                     the root route, rendered as "/"
//	"posts/{id}/edit"      named slot, bound via `route:"…"` tag or field name
//	"posts/{}"             positional slot, next unbound exported field
//	"posts/{id uint64}"    typed slot, explicit converter
//	"feed?format=atom"     literal query parameter, required to match
//	"items?all"            flag parameter, present with no value
//	"items?page={}"        query slot
//
// Query parameters beyond those in the template are ignored when matching,
// and parameters never reorder: rendering emits them in template order.
//
// # HTTP Integration
//
// The httproute subpackage adapts a Codec into an http.Handler that decodes
// the request target, issues redirects for non-canonical targets, and
// dispatches on route type. See rivaas.dev/routetype/httproute.
package routetype
