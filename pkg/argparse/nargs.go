// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"math"
	"strconv"
	"strings"

	"github.com/yeetrun/argspec/pkg/argspec"
)

// NargsKind is the multiplicity class of an argument.
type NargsKind int

const (
	// NargsUnset consumes a single value and stores it as a scalar.
	NargsUnset NargsKind = iota
	// NargsExact consumes exactly N values into a list.
	NargsExact
	// NargsOptional ("?") consumes zero or one value.
	NargsOptional
	// NargsZeroOrMore ("*") consumes any number of values into a list.
	NargsZeroOrMore
	// NargsOneOrMore ("+") consumes at least one value into a list.
	NargsOneOrMore
	// NargsRemainder consumes every remaining token.
	NargsRemainder
)

// Nargs is a resolved multiplicity.
type Nargs struct {
	Kind NargsKind
	N    int
}

// ResolveNargs resolves a raw nargs attribute. Integers (and integral
// numbers or numeric strings) give an exact count; "+", "?", "*" and
// argspec.Remainder select their markers. Anything else, including
// non-positive counts, resolves to NargsUnset.
func ResolveNargs(v any) Nargs {
	switch v := v.(type) {
	case int:
		return exactNargs(v)
	case int64:
		return exactNargs(int(v))
	case float64:
		if v == math.Trunc(v) {
			return exactNargs(int(v))
		}
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return exactNargs(n)
		}
		switch s {
		case "?":
			return Nargs{Kind: NargsOptional}
		case "*":
			return Nargs{Kind: NargsZeroOrMore}
		case "+":
			return Nargs{Kind: NargsOneOrMore}
		case argspec.Remainder:
			return Nargs{Kind: NargsRemainder}
		}
	}
	return Nargs{}
}

func exactNargs(n int) Nargs {
	if n <= 0 {
		return Nargs{}
	}
	return Nargs{Kind: NargsExact, N: n}
}

// Multi reports whether values are collected into a list.
func (n Nargs) Multi() bool {
	switch n.Kind {
	case NargsExact, NargsZeroOrMore, NargsOneOrMore, NargsRemainder:
		return true
	}
	return false
}

// bounds returns the minimum and maximum number of values. A negative max
// means unbounded.
func (n Nargs) bounds() (min, max int) {
	switch n.Kind {
	case NargsExact:
		return n.N, n.N
	case NargsOptional:
		return 0, 1
	case NargsZeroOrMore, NargsRemainder:
		return 0, -1
	case NargsOneOrMore:
		return 1, -1
	}
	return 1, 1
}

func (n Nargs) String() string {
	switch n.Kind {
	case NargsExact:
		return strconv.Itoa(n.N)
	case NargsOptional:
		return "?"
	case NargsZeroOrMore:
		return "*"
	case NargsOneOrMore:
		return "+"
	case NargsRemainder:
		return argspec.Remainder
	}
	return ""
}

func (n Nargs) expected() string {
	switch n.Kind {
	case NargsExact:
		if n.N == 1 {
			return "expected 1 argument"
		}
		return "expected " + strconv.Itoa(n.N) + " arguments"
	case NargsOptional:
		return "expected at most one argument"
	case NargsOneOrMore:
		return "expected at least one argument"
	}
	return "expected one argument"
}

// metavar formats the value placeholder the way usage lines show it.
func (n Nargs) metavar(m string) string {
	switch n.Kind {
	case NargsExact:
		return strings.TrimSpace(strings.Repeat(m+" ", n.N))
	case NargsOptional:
		return "[" + m + "]"
	case NargsZeroOrMore:
		return "[" + m + " ...]"
	case NargsOneOrMore:
		return m + " [" + m + " ...]"
	case NargsRemainder:
		return "..."
	}
	return m
}
