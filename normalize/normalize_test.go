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

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/routetype/rawurl"
)

func TestParsePath_Canonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		segments []string
		want     []string
	}{
		{name: "empty path", segments: nil, want: nil},
		{name: "plain segments", segments: []string{"foo", "bar"}, want: []string{"foo", "bar"}},
		{name: "single dash unescapes to empty", segments: []string{"-"}, want: []string{""}},
		{name: "double dash unescapes to single", segments: []string{"--"}, want: []string{"-"}},
		{name: "dashes inside text stay", segments: []string{"a-b", "-x-"}, want: []string{"a-b", "-x-"}},
		{name: "mixed", segments: []string{"foo", "---", "bar"}, want: []string{"foo", "--", "bar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clean, redirect, ok := ParsePath(tt.segments, nil)
			require.True(t, ok)
			assert.Empty(t, redirect)
			assert.Equal(t, tt.want, clean)
		})
	}
}

func TestParsePath_RedirectOnEmptySegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		segments []string
		redirect string
	}{
		{name: "only empty", segments: []string{""}, redirect: "/"},
		{name: "trailing empty", segments: []string{"foo", "bar", ""}, redirect: "/foo/bar"},
		{name: "interior empty", segments: []string{"foo", "", "bar"}, redirect: "/foo/bar"},
		{name: "many empties", segments: []string{"", "foo", "bar", "", "baz", "", "", "bin", ""}, redirect: "/foo/bar/baz/bin"},
		{name: "kept segments render unescaped", segments: []string{"-", ""}, redirect: "/-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clean, redirect, ok := ParsePath(tt.segments, nil)
			require.False(t, ok)
			assert.Nil(t, clean)
			assert.Equal(t, tt.redirect, redirect)
		})
	}
}

func TestParsePath_RedirectCarriesQuery(t *testing.T) {
	t.Parallel()

	query := []rawurl.QueryPair{rawurl.Pair("page", "2"), rawurl.Flag("all")}

	_, redirect, ok := ParsePath([]string{"users", ""}, query)

	require.False(t, ok)
	assert.Equal(t, "/users?page=2&all", redirect)
}

func TestParsePath_RedirectKeepsBareQuestionMark(t *testing.T) {
	t.Parallel()

	_, redirect, ok := ParsePath([]string{"users", ""}, []rawurl.QueryPair{})

	require.False(t, ok)
	assert.Equal(t, "/users?", redirect)
}

func TestParsePath_RedirectIsCanonical(t *testing.T) {
	t.Parallel()

	_, redirect, ok := ParsePath([]string{"foo", "", "", "bar", ""}, nil)
	require.False(t, ok)

	segments, query := rawurl.ParsePathAndQuery(redirect)
	clean, _, ok := ParsePath(segments, query)
	require.True(t, ok)
	assert.Equal(t, []string{"foo", "bar"}, clean)
}

func TestParsePath_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	segments := []string{"foo", "--"}

	clean, _, ok := ParsePath(segments, nil)

	require.True(t, ok)
	assert.Equal(t, []string{"foo", "-"}, clean)
	assert.Equal(t, []string{"foo", "--"}, segments)
}

func TestRenderPath_Escaping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		segments []string
		want     []string
	}{
		{name: "empty list", segments: nil, want: nil},
		{name: "plain", segments: []string{"foo", "bar"}, want: []string{"foo", "bar"}},
		{name: "empty segment", segments: []string{""}, want: []string{"-"}},
		{name: "single dash", segments: []string{"-"}, want: []string{"--"}},
		{name: "four dashes", segments: []string{"----"}, want: []string{"-----"}},
		{name: "dashes inside text stay", segments: []string{"a-b", "-x-"}, want: []string{"a-b", "-x-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, RenderPath(tt.segments))
		})
	}
}

func TestRenderPath_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	segments := []string{"", "-"}

	got := RenderPath(segments)

	assert.Equal(t, []string{"-", "--"}, got)
	assert.Equal(t, []string{"", "-"}, segments)
}

// Render then parse must reproduce the original segments exactly; this is the
// bijection the dash escape exists for.
func TestDashEscape_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := [][]string{
		nil,
		{""},
		{"-"},
		{"--", "", "---"},
		{"foo", "", "bar"},
		{"a-b", "-", "-x"},
	}

	for _, segments := range cases {
		rendered := RenderPath(segments)
		clean, redirect, ok := ParsePath(rendered, nil)
		require.True(t, ok, "rendered form %q must be canonical", redirect)
		assert.Equal(t, segments, clean)
	}
}
