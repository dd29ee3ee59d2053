// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package comment wraps free text into prefixed comment blocks for config
// files.
package comment

import (
	"strings"
	"unicode"
)

const (
	// DefaultWidth is the wrap width used for config comments.
	DefaultWidth = 72
	// DefaultQuote prefixes each comment line.
	DefaultQuote = "# "
)

// Format wraps text to width runes and prefixes every line with quote. The
// result ends with exactly one newline, or is empty when text has no words.
func Format(text string, width int, quote string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range Wrap(text, width) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString(quote)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// Wrap greedily fills lines of at most width runes. Each whitespace
// character counts as one space and tabs expand to the next multiple of
// eight columns. Interior runs of spaces are kept, while whitespace at a
// line break is dropped. Lines may break after a hyphen between two
// letters, and words longer than width are split.
func Wrap(text string, width int) []string {
	if width <= 0 {
		width = DefaultWidth
	}
	chunks := split(expandSpace(text))
	var lines []string
	for len(chunks) > 0 {
		// Whitespace never starts a line other than the first.
		if len(lines) > 0 && chunks[0].space {
			chunks = chunks[1:]
		}
		var (
			cur []chunk
			n   int
		)
		for len(chunks) > 0 && n+chunks[0].n <= width {
			cur = append(cur, chunks[0])
			n += chunks[0].n
			chunks = chunks[1:]
		}
		if left := width - n; left > 0 && len(chunks) > 0 && chunks[0].n > width {
			c := chunks[0]
			head, tail := splitRunes(c.s, left)
			cur = append(cur, chunk{s: head, n: left, space: c.space})
			chunks[0] = chunk{s: tail, n: c.n - left, space: c.space}
		}
		if k := len(cur); k > 0 && cur[k-1].space {
			cur = cur[:k-1]
		}
		if len(cur) > 0 {
			var b strings.Builder
			for _, c := range cur {
				b.WriteString(c.s)
			}
			lines = append(lines, b.String())
		}
	}
	return lines
}

type chunk struct {
	s     string
	n     int
	space bool
}

// expandSpace expands tabs and turns every other whitespace rune into a
// single space.
func expandSpace(text string) string {
	var b strings.Builder
	col := 0
	for _, r := range text {
		switch {
		case r == '\t':
			pad := 8 - col%8
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
		case r == '\n' || r == '\r':
			b.WriteByte(' ')
			col = 0
		case unicode.IsSpace(r):
			b.WriteByte(' ')
			col++
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

// split cuts text into runs of spaces and words, and cuts hyphenated words
// after each hyphen that sits between two letters.
func split(text string) []chunk {
	var (
		chunks []chunk
		cur    []rune
		space  bool
	)
	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, chunk{s: string(cur), n: len(cur), space: space})
		}
		cur = cur[:0]
	}
	runes := []rune(text)
	for i, r := range runes {
		if isSpace := r == ' '; isSpace != space {
			flush()
			space = isSpace
		}
		cur = append(cur, r)
		if r == '-' && !space && i > 0 && i+1 < len(runes) &&
			unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1]) {
			flush()
		}
	}
	flush()
	return chunks
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for j := range s {
		if i == n {
			return s[:j], s[j:]
		}
		i++
	}
	return s, ""
}
