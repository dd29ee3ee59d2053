// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comment

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		text  string
		width int
		quote string
		want  string
	}{
		{name: "empty", text: "", width: 72, quote: "# ", want: ""},
		{name: "whitespace_only", text: "   \n\t", width: 72, quote: "# ", want: ""},
		{name: "single_line", text: "Argument description/help", width: 72, quote: "# ", want: "# Argument description/help\n"},
		{name: "section_quote", text: "Section description", width: 72, quote: "## ", want: "## Section description\n"},
		{name: "wraps", text: "one two three four", width: 9, quote: "# ", want: "# one two\n# three\n# four\n"},
		{name: "keeps_interior_space", text: "  a \n  b  ", width: 72, quote: "; ", want: "; a    b\n"},
		{name: "hyphen_break", text: "well-known words", width: 6, quote: "# ", want: "# well-\n# known\n# words\n"},
		{name: "long_word", text: "abcdefghij", width: 4, quote: "# ", want: "# abcd\n# efgh\n# ij\n"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Format(tc.text, tc.width, tc.quote); got != tc.want {
				t.Fatalf("Format(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestWrapWidth(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 20)
	for _, line := range Wrap(text, DefaultWidth) {
		if n := utf8.RuneCountInString(line); n > DefaultWidth {
			t.Fatalf("line %q has %d runes, want <= %d", line, n, DefaultWidth)
		}
	}
}

func TestWrapRunes(t *testing.T) {
	got := Wrap("héllo wörld ünïcode", 11)
	want := []string{"héllo wörld", "ünïcode"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Wrap mismatch (-want +got):\n%s", diff)
	}
}

func TestWrapSpacing(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{name: "tab", text: "a\tb", width: 72, want: []string{"a       b"}},
		{name: "drops_space_at_break", text: "aa   bb", width: 3, want: []string{"aa", "bb"}},
		{name: "leading_space_kept", text: "  aa", width: 72, want: []string{"  aa"}},
		{name: "digits_not_hyphen_split", text: "2024-10 x", width: 7, want: []string{"2024-10", "x"}},
		{name: "long_word_fills_line", text: "ab abcdefghij", width: 4, want: []string{"ab a", "bcde", "fghi", "j"}},
	}
	for _, tc := range cases {
		got := Wrap(tc.text, tc.width)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s: Wrap mismatch (-want +got):\n%s", tc.name, diff)
		}
	}
}
