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

// Package httproute serves a routetype.Codec over HTTP.
//
// Handler turns a codec into an http.Handler: the request target is parsed,
// non-canonical targets get a redirect to their canonical form, unmatched
// targets get the not-found handler, and matched targets reach a single
// dispatch function as a typed route value.
//
//	codec := routetype.New[Route]()
//	codec.MustRegister("", Home{})
//	codec.MustRegister("hello/{name}", Hello{})
//
//	h := httproute.New(codec, func(ctx context.Context, w http.ResponseWriter, req *http.Request, route Route) {
//	    switch route := route.(type) {
//	    case Home:
//	        httproute.HTML(w, http.StatusOK, "<a href='/hello/world'>greet</a>")
//	    case Hello:
//	        httproute.Text(w, http.StatusOK, "hello, "+route.Name)
//	    }
//	})
//
//	log.Fatal(h.Serve(":8080"))
//
// Observability plugs in through ObservabilityRecorder; OTelRecorder is a
// ready-made implementation over OpenTelemetry tracing and metrics.
package httproute
