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

//go:build integration

package httproute_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(lis.Addr().String())
	require.NoError(t, err)
	require.NoError(t, lis.Close())
	return port
}

// TestServeAndShutdown covers Serve, defaultServerTimeouts, and Shutdown.
func TestServeAndShutdown(t *testing.T) {
	t.Parallel()
	handler := newPageHandler(t)
	port := freePort(t)

	done := make(chan error, 1)
	go func() {
		done <- handler.Serve("127.0.0.1:" + port)
	}()
	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get("http://127.0.0.1:" + port + "/articles/wor%2Fld")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "article:wor/ld", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, handler.Shutdown(ctx))
	assert.Equal(t, http.ErrServerClosed, <-done)
}

// TestServeRedirectOverHTTP verifies non-canonical targets redirect over a
// real connection, with the Location header passing through untouched.
func TestServeRedirectOverHTTP(t *testing.T) {
	t.Parallel()
	handler := newPageHandler(t)
	port := freePort(t)

	done := make(chan error, 1)
	go func() {
		done <- handler.Serve("127.0.0.1:" + port)
	}()
	time.Sleep(100 * time.Millisecond)

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get("http://127.0.0.1:" + port + "//articles//go")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/articles/go", resp.Header.Get("Location"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, handler.Shutdown(ctx))
	assert.Equal(t, http.ErrServerClosed, <-done)
}

// TestServeContextCancellation verifies ServeContext shuts down cleanly when
// its context is canceled.
func TestServeContextCancellation(t *testing.T) {
	t.Parallel()
	handler := newPageHandler(t)
	port := freePort(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- handler.ServeContext(ctx, "127.0.0.1:"+port)
	}()
	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get("http://127.0.0.1:" + port + "/")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ServeContext did not return after cancellation")
	}

	_, err = http.Get("http://127.0.0.1:" + port + "/")
	assert.Error(t, err, "server should no longer accept connections")
}
