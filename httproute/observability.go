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

package httproute

import (
	"context"
	"net/http"
)

// Outcome classifies how the handler resolved a request target.
type Outcome int

const (
	// OutcomeMatched means a route parsed and the dispatch function ran.
	OutcomeMatched Outcome = iota
	// OutcomeRedirected means the target was not canonical and a redirect
	// to the canonical target was written.
	OutcomeRedirected
	// OutcomeNoMatch means no registered route matched and the not-found
	// handler ran.
	OutcomeNoMatch
)

// String returns the outcome's metric-label form.
func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeRedirected:
		return "redirected"
	case OutcomeNoMatch:
		return "no_match"
	default:
		return "unknown"
	}
}

// ObservabilityRecorder provides unified observability lifecycle hooks for
// requests passing through a Handler. Implementations typically combine
// metrics collection, distributed tracing, and access logging.
//
// Lifecycle:
//  1. Handler calls OnRequestStart(ctx, req) → (enrichedCtx, state)
//     before the target is parsed. The enriched context (for example one
//     carrying a trace span) is always attached to the request, even when
//     state is nil.
//  2. When state != nil, the ResponseWriter is replaced by the result of
//     WrapResponseWriter so the implementation can capture status and size.
//  3. The request resolves to a redirect, a dispatch, or the not-found
//     handler.
//  4. When state != nil, OnRequestEnd runs last with the outcome and the
//     matched template. Returning state == nil from OnRequestStart excludes
//     the request from steps 2 and 4 entirely; use that for endpoints such
//     as /metrics whose samples would only add noise.
//
// The template passed to OnRequestEnd is the registered template string for
// matched requests and a "_redirect" or "_not_found" sentinel otherwise.
// Record the template, never the raw target, to keep label cardinality
// bounded.
//
// All methods must be safe for concurrent use.
type ObservabilityRecorder interface {
	// OnRequestStart is called before target parsing. It returns a possibly
	// enriched context and an opaque state token; nil state excludes the
	// request from the rest of the lifecycle.
	OnRequestStart(ctx context.Context, req *http.Request) (context.Context, any)

	// WrapResponseWriter wraps w to capture response metadata. It is called
	// only with the state token of a non-excluded request, and the returned
	// writer should implement ResponseInfo.
	WrapResponseWriter(w http.ResponseWriter, state any) http.ResponseWriter

	// OnRequestEnd completes the lifecycle for a non-excluded request.
	// The writer is the possibly wrapped ResponseWriter from step 2;
	// implementations type-assert it to ResponseInfo for status and size.
	OnRequestEnd(ctx context.Context, state any, w http.ResponseWriter, outcome Outcome, template string)
}

// ResponseInfo is implemented by response writers that track response
// metadata. Wrapped writers returned by WrapResponseWriter should implement
// it so OnRequestEnd can extract what was written.
type ResponseInfo interface {
	StatusCode() int
	Size() int64
}

// Sentinel template labels for requests that never matched a route.
const (
	TemplateRedirect = "_redirect"
	TemplateNotFound = "_not_found"
)
