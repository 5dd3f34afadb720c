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

// config holds codec construction state assembled by options.
type config struct {
	converters map[string]Converter
}

// Option configures a Codec during New.
type Option func(*config)

// WithConverter registers conv under name for use in typed slots.
//
// Example:
//
//	type UserID uuid.UUID
//
//	codec := routetype.New[Route](
//	    routetype.WithConverter("uuid", uuidConverter{}),
//	)
//	codec.MustRegister("users/{id uuid}", User{})
//
// Registering a built-in name (string, bool, int, …) replaces that
// converter for every slot that resolves to it, typed or not. Empty names
// and nil converters are ignored.
func WithConverter(name string, conv Converter) Option {
	return func(cfg *config) {
		if name == "" || conv == nil {
			return
		}
		cfg.converters[name] = conv
	}
}
