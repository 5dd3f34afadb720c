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
	"io"
	"net/http"
)

// HTML writes an HTML response with the given status code.
func HTML(w http.ResponseWriter, code int, body string) {
	writeBody(w, code, "text/html; charset=utf-8", body)
}

// CSS writes a stylesheet response with the given status code.
func CSS(w http.ResponseWriter, code int, body string) {
	writeBody(w, code, "text/css; charset=utf-8", body)
}

// Text writes a plain text response with the given status code.
func Text(w http.ResponseWriter, code int, body string) {
	writeBody(w, code, "text/plain; charset=utf-8", body)
}

// Redirect writes a bodyless redirect to target, which is usually a
// rendered route or the Target of a *routetype.NormalizationError. Unlike
// http.Redirect it never rewrites the location, so encoded targets pass
// through byte for byte.
func Redirect(w http.ResponseWriter, code int, target string) {
	w.Header().Set("Location", target)
	w.WriteHeader(code)
}

func writeBody(w http.ResponseWriter, code int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}
