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
	"errors"
	"fmt"
)

var (
	// ErrNoMatch indicates that the request target is canonical but no
	// registered route template matches it.
	ErrNoMatch = errors.New("no route matches the request target")

	// ErrNotRegistered indicates that a route value's type was never
	// registered with the codec.
	ErrNotRegistered = errors.New("route type not registered")

	// ErrNilRoute indicates that a nil route pointer was passed where a
	// route value is required.
	ErrNilRoute = errors.New("route value is nil")
)

// NormalizationError reports a request target that failed normalization:
// it decoded to a path with at least one empty segment (repeated or trailing
// slashes). Target holds the canonical request target; callers are expected
// to redirect there rather than serve the non-canonical form.
type NormalizationError struct {
	Target string
}

// Error implements the error interface.
func (e *NormalizationError) Error() string {
	return fmt.Sprintf("request target is not canonical; redirect to %q", e.Target)
}
