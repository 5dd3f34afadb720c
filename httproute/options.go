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
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// config holds handler construction state assembled by options.
type config struct {
	notFound       http.Handler
	logger         *slog.Logger
	observability  ObservabilityRecorder
	redirectStatus int
	enableH2C      bool
	timeouts       *serverTimeouts
}

// Option configures a Handler during New.
type Option func(*config)

// WithNotFound replaces the handler run when no route matches.
// The default is http.NotFoundHandler(). A nil handler is ignored.
func WithNotFound(handler http.Handler) Option {
	return func(cfg *config) {
		if handler != nil {
			cfg.notFound = handler
		}
	}
}

// WithLogger sets the handler's logger. Without one, logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithObservability attaches a recorder whose lifecycle hooks run around
// every request. See ObservabilityRecorder for the contract.
func WithObservability(recorder ObservabilityRecorder) Option {
	return func(cfg *config) {
		cfg.observability = recorder
	}
}

// WithRedirectStatus sets the status for canonicalization redirects.
//
// The default 307 keeps the redirect uncacheable; pass 308 once the route
// set is stable enough that clients may cache the canonical mapping. Both
// preserve the request method. Any other status panics.
func WithRedirectStatus(code int) Option {
	return func(cfg *config) {
		if code != http.StatusTemporaryRedirect && code != http.StatusPermanentRedirect {
			panic(fmt.Sprintf("httproute: redirect status must be 307 or 308, got %d", code))
		}
		cfg.redirectStatus = code
	}
}

// WithH2C enables HTTP/2 Cleartext support for Serve.
//
// ⚠️ SECURITY WARNING: Only use in development or behind a trusted load balancer.
// DO NOT enable on public-facing servers without TLS.
//
// Requires: golang.org/x/net/http2/h2c
func WithH2C(enable bool) Option {
	return func(cfg *config) {
		cfg.enableH2C = enable
	}
}

// WithServerTimeouts configures the timeouts Serve applies.
// These are critical for preventing slowloris attacks and resource exhaustion.
//
// Defaults (if not set):
//
//	ReadHeaderTimeout: 5s  - Time to read request headers
//	ReadTimeout:       15s - Time to read entire request
//	WriteTimeout:      30s - Time to write response
//	IdleTimeout:       60s - Keep-alive idle time
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(cfg *config) {
		cfg.timeouts = &serverTimeouts{
			readHeader: readHeader,
			read:       read,
			write:      write,
			idle:       idle,
		}
	}
}
