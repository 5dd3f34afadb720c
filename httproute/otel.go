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
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// OTelRecorder is an ObservabilityRecorder backed by OpenTelemetry. Each
// request becomes a server span, and two instruments are recorded per
// outcome: a request counter and a duration histogram, both labeled with
// the matched template rather than the raw target.
//
// The recorder only uses the OpenTelemetry API; wire providers from the
// SDK and exporters of your choice in the application.
type OTelRecorder struct {
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
	exclude  map[string]bool
}

// OTelOption configures an OTelRecorder.
type OTelOption func(*OTelRecorder)

// WithExcludedPaths exempts exact request paths from spans and metrics.
// Scrape and probe endpoints are the usual candidates.
func WithExcludedPaths(paths ...string) OTelOption {
	return func(r *OTelRecorder) {
		if r.exclude == nil {
			r.exclude = make(map[string]bool, len(paths))
		}
		for _, path := range paths {
			r.exclude[path] = true
		}
	}
}

// NewOTelRecorder creates a recorder on the given tracer and meter.
// It fails only if the meter rejects an instrument.
func NewOTelRecorder(tracer trace.Tracer, meter metric.Meter, opts ...OTelOption) (*OTelRecorder, error) {
	requests, err := meter.Int64Counter("routetype.requests",
		metric.WithDescription("Requests by template and outcome."))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("routetype.request.duration",
		metric.WithDescription("Request duration by template and outcome."),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	r := &OTelRecorder{tracer: tracer, requests: requests, duration: duration}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type otelRequestState struct {
	span  trace.Span
	start time.Time
}

// OnRequestStart opens a server span and starts the request clock.
func (r *OTelRecorder) OnRequestStart(ctx context.Context, req *http.Request) (context.Context, any) {
	if r.exclude[req.URL.Path] {
		return ctx, nil
	}
	ctx, span := r.tracer.Start(ctx, "routetype.request",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("http.method", req.Method)),
	)
	return ctx, &otelRequestState{span: span, start: time.Now()}
}

// WrapResponseWriter captures status and size for OnRequestEnd.
func (r *OTelRecorder) WrapResponseWriter(w http.ResponseWriter, state any) http.ResponseWriter {
	if state == nil {
		return w
	}
	return &observedWriter{ResponseWriter: w, status: http.StatusOK}
}

// OnRequestEnd closes the span and records both instruments.
func (r *OTelRecorder) OnRequestEnd(ctx context.Context, state any, w http.ResponseWriter, outcome Outcome, template string) {
	rs, ok := state.(*otelRequestState)
	if !ok {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("http.route", template),
		attribute.String("routetype.outcome", outcome.String()),
	}
	if info, ok := w.(ResponseInfo); ok {
		attrs = append(attrs, attribute.Int("http.status_code", info.StatusCode()))
	}

	rs.span.SetAttributes(attrs...)
	rs.span.End()

	measurement := metric.WithAttributes(attrs...)
	r.requests.Add(ctx, 1, measurement)
	r.duration.Record(ctx, time.Since(rs.start).Seconds(), measurement)
}

// observedWriter wraps http.ResponseWriter to capture response metadata.
type observedWriter struct {
	http.ResponseWriter
	status      int
	size        int64
	wroteHeader bool
}

func (w *observedWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *observedWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += int64(n)
	return n, err
}

func (w *observedWriter) StatusCode() int { return w.status }

func (w *observedWriter) Size() int64 { return w.size }
