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
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"rivaas.dev/routetype"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// DispatchFunc receives every successfully parsed route value. Dispatch on
// the route's concrete type with a type switch.
type DispatchFunc[R any] func(ctx context.Context, w http.ResponseWriter, req *http.Request, route R)

// Handler adapts a Codec into an http.Handler.
//
// For each request it reconstructs the origin-form target, parses it, and
// resolves one of three ways: a redirect for non-canonical targets, the
// not-found handler when nothing matches, or the dispatch function with the
// typed route value. Handler is safe for concurrent use.
type Handler[R any] struct {
	codec          *routetype.Codec[R]
	dispatch       DispatchFunc[R]
	notFound       http.Handler
	logger         *slog.Logger
	observability  ObservabilityRecorder
	redirectStatus int
	enableH2C      bool
	timeouts       *serverTimeouts

	serverMu sync.Mutex
	server   *http.Server
}

// New creates a Handler around codec. Register every route on the codec
// before serving. A nil dispatch panics immediately rather than on the
// first matched request.
func New[R any](codec *routetype.Codec[R], dispatch DispatchFunc[R], opts ...Option) *Handler[R] {
	if codec == nil {
		panic("httproute: nil codec")
	}
	if dispatch == nil {
		panic("httproute: nil dispatch function")
	}
	cfg := config{
		notFound:       http.NotFoundHandler(),
		logger:         noopLogger,
		redirectStatus: http.StatusTemporaryRedirect,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Handler[R]{
		codec:          codec,
		dispatch:       dispatch,
		notFound:       cfg.notFound,
		logger:         cfg.logger,
		observability:  cfg.observability,
		redirectStatus: cfg.redirectStatus,
		enableH2C:      cfg.enableH2C,
		timeouts:       cfg.timeouts,
	}
}

// RequestTarget reconstructs the origin-form request target from a parsed
// URL, the string a Codec parses. EscapedPath keeps percent-encoded bytes
// intact, and ForceQuery preserves a bare trailing "?" that RawQuery alone
// cannot represent.
func RequestTarget(u *url.URL) string {
	target := u.EscapedPath()
	if u.ForceQuery || u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return target
}

// ServeHTTP implements http.Handler.
//
// Any HTTP method is accepted; method handling belongs to the dispatch
// function, which sees the full request. Non-canonical targets are answered
// with the configured redirect status (307 by default) and a Location
// header holding the canonical target, so the redirect preserves method
// and body.
func (h *Handler[R]) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	var obsState any
	if h.observability != nil {
		var enrichedCtx context.Context
		enrichedCtx, obsState = h.observability.OnRequestStart(ctx, req)
		if enrichedCtx != ctx {
			ctx = enrichedCtx
			req = req.WithContext(ctx)
		}
		if obsState != nil {
			w = h.observability.WrapResponseWriter(w, obsState)
		}
	}

	target := RequestTarget(req.URL)
	route, err := h.codec.Parse(target)

	var normErr *routetype.NormalizationError
	switch {
	case errors.As(err, &normErr):
		h.logger.DebugContext(ctx, "redirecting non-canonical target",
			"target", target, "location", normErr.Target)
		Redirect(w, h.redirectStatus, normErr.Target)
		h.finish(ctx, obsState, w, OutcomeRedirected, TemplateRedirect)

	case errors.Is(err, routetype.ErrNoMatch):
		h.notFound.ServeHTTP(w, req)
		h.finish(ctx, obsState, w, OutcomeNoMatch, TemplateNotFound)

	default:
		template, _ := h.codec.Template(route)
		h.dispatch(ctx, w, req, route)
		h.finish(ctx, obsState, w, OutcomeMatched, template)
	}
}

func (h *Handler[R]) finish(ctx context.Context, state any, w http.ResponseWriter, outcome Outcome, template string) {
	if state != nil {
		h.observability.OnRequestEnd(ctx, state, w, outcome, template)
	}
}
