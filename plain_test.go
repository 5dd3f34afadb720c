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

package routetype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/routetype"
	"rivaas.dev/routetype/rawurl"
)

func TestParsePlain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		segments []string
		query    []rawurl.QueryPair
	}{
		{
			name:   "root",
			target: "/",
		},
		{
			name:     "path and query",
			target:   "/a/b?k=v",
			segments: []string{"a", "b"},
			query:    []rawurl.QueryPair{rawurl.Pair("k", "v")},
		},
		{
			name:     "dash is the empty segment",
			target:   "/-",
			segments: []string{""},
		},
		{
			name:     "double dash is a literal dash",
			target:   "/--",
			segments: []string{"-"},
		},
		{
			name:     "trailing dash on a mixed segment stays",
			target:   "/a-",
			segments: []string{"a-"},
		},
		{
			name:   "bare question mark",
			target: "/?",
			query:  []rawurl.QueryPair{},
		},
		{
			name:     "bare keys and empty values",
			target:   "/x?a&b=",
			segments: []string{"x"},
			query:    []rawurl.QueryPair{rawurl.Flag("a"), rawurl.Pair("b", "")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			route, err := routetype.ParsePlain(tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.segments, route.Segments)
			assert.Equal(t, tt.query, route.Query)
		})
	}
}

func TestParsePlain_NormalizationRedirect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		target   string
		redirect string
	}{
		{name: "doubled slash", target: "/a//b", redirect: "/a/b"},
		{name: "trailing slash", target: "/a/", redirect: "/a"},
		{name: "query preserved", target: "/a//b?k=v", redirect: "/a/b?k=v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := routetype.ParsePlain(tt.target)
			var normErr *routetype.NormalizationError
			require.ErrorAs(t, err, &normErr)
			assert.Equal(t, tt.redirect, normErr.Target)
		})
	}
}

func TestPlainRoute_Path(t *testing.T) {
	t.Parallel()

	route := routetype.PlainRoute{Segments: []string{"a", "", "-"}}
	assert.Equal(t, []string{"a", "-", "--"}, route.Path())
	assert.Equal(t, []string{"a", "", "-"}, route.Segments, "receiver must not change")
}

func TestPlainRoute_Render(t *testing.T) {
	t.Parallel()

	t.Run("constructed values", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "/", routetype.PlainRoute{}.Render())
		assert.Equal(t, "/-", routetype.PlainRoute{Segments: []string{""}}.Render())
		assert.Equal(t, "/a?x", routetype.PlainRoute{
			Segments: []string{"a"},
			Query:    []rawurl.QueryPair{rawurl.Flag("x")},
		}.Render())
	})

	t.Run("canonical targets round-trip", func(t *testing.T) {
		t.Parallel()
		targets := []string{
			"/",
			"/a/b",
			"/-",
			"/--",
			"/a?x",
			"/?",
			"/?=%26",
			"/?=%3D",
			"/?=%2500",
			"/hello/%D7%A9%D7%9C%D7%95%D7%9D/wor%2Fld?he?llo=there%23",
		}
		for _, target := range targets {
			route, err := routetype.ParsePlain(target)
			require.NoError(t, err, "target %q", target)
			assert.Equal(t, target, route.Render(), "target %q", target)
		}
	})
}
