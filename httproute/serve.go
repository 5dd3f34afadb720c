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
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// serverTimeouts holds HTTP server timeout configuration.
type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

// defaultServerTimeouts returns default timeout configuration.
func defaultServerTimeouts() *serverTimeouts {
	return &serverTimeouts{
		readHeader: 5 * time.Second,
		read:       15 * time.Second,
		write:      30 * time.Second,
		idle:       60 * time.Second,
	}
}

// shutdownGrace bounds how long ServeContext waits for in-flight requests
// after its context is canceled.
const shutdownGrace = 30 * time.Second

// Serve starts an HTTP server for the handler on addr. H2C is enabled when
// configured via WithH2C.
//
// This method follows the stdlib pattern: it blocks until the server exits.
// For graceful shutdown, use the Shutdown method from another goroutine, or
// use ServeContext.
//
// The server is configured with production-safe timeouts to prevent
// slowloris attacks and resource exhaustion; override them with
// WithServerTimeouts.
func (h *Handler[R]) Serve(addr string) error {
	handler := http.Handler(h)

	if h.enableH2C {
		handler = h2c.NewHandler(handler, &http2.Server{})
		h.logger.Warn("H2C enabled; use only in dev or behind a trusted LB")
	}

	srv := h.newServer(addr, handler)
	h.logger.Info("server starting", "addr", addr)

	return srv.ListenAndServe()
}

// ServeTLS starts an HTTPS server for the handler on addr. HTTP/2 is
// automatically enabled via ALPN, so WithH2C has no effect here.
//
// Like Serve, it blocks until the server exits.
func (h *Handler[R]) ServeTLS(addr, certFile, keyFile string) error {
	srv := h.newServer(addr, h)
	h.logger.Info("server starting", "addr", addr, "tls", true)

	return srv.ListenAndServeTLS(certFile, keyFile)
}

// ServeContext runs Serve until ctx is canceled, then shuts the server down
// gracefully, waiting up to 30 seconds for in-flight requests. It returns
// nil on a clean shutdown.
func (h *Handler[R]) ServeContext(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Serve(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := h.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	h.logger.Info("server stopped", "addr", addr)
	return nil
}

// Shutdown gracefully shuts down the server without interrupting active
// connections, following the http.Server.Shutdown pattern. It returns nil
// if no server is running.
func (h *Handler[R]) Shutdown(ctx context.Context) error {
	h.serverMu.Lock()
	srv := h.server
	h.server = nil
	h.serverMu.Unlock()

	if srv == nil {
		return nil
	}
	h.logger.Info("server shutting down")

	return srv.Shutdown(ctx)
}

func (h *Handler[R]) newServer(addr string, handler http.Handler) *http.Server {
	timeouts := h.timeouts
	if timeouts == nil {
		timeouts = defaultServerTimeouts()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.readHeader,
		ReadTimeout:       timeouts.read,
		WriteTimeout:      timeouts.write,
		IdleTimeout:       timeouts.idle,
	}

	h.serverMu.Lock()
	h.server = srv
	h.serverMu.Unlock()

	return srv
}
