// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argspec holds the ordered argument specification shared by the
// config renderer and the parser builder.
//
// A spec is an ordered list of named arguments plus an optional metadata
// entry carrying the overall description:
//
//	__meta__:
//	  __desc__: Greets people
//	name:
//	  __desc__: Who to greet
//	  default: world
//	times:
//	  type: int
//	  default: 1
//	output:
//	  type: File-w
//	  default: stdout
//	  argtype: arg
package argspec

import (
	"errors"
	"fmt"
	"sort"
)

// Reserved keys in serialized specs.
const (
	// MetaKey names the entry holding spec-wide metadata. It is never an
	// argument.
	MetaKey = "__meta__"
	// DescKey holds a description, both in the metadata entry and in an
	// argument's attributes.
	DescKey = "__desc__"
	// ExcludeKey marks an argument that is left out of rendered config text.
	ExcludeKey = "__exclude__"
)

var (
	// ErrUnordered is returned when a spec is supplied in a container that
	// does not preserve declaration order.
	ErrUnordered = errors.New("argument spec is not ordered")
	// ErrDuplicate is returned when an argument name is declared twice.
	ErrDuplicate = errors.New("duplicate argument")
	// ErrUnknownAttr is returned by the loaders for unrecognized attribute keys.
	ErrUnknownAttr = errors.New("unknown attribute")
)

// ArgType selects how an argument appears on the command line.
type ArgType string

const (
	// Positional arguments are required and carry no prefix.
	Positional ArgType = "arg"
	// Optional arguments are prefixed and take values.
	Optional ArgType = "opt"
	// Flag arguments are prefixed booleans that take no value.
	Flag ArgType = "flag"
)

// Default attribute values.
const (
	DefaultAction = "store"
	DefaultPrefix = "--"
	DefaultType   = "str"
)

// Stream sentinels accepted as defaults.
const (
	Stdin  = "stdin"
	Stdout = "stdout"
)

// Remainder is the nargs marker that consumes every remaining token.
const Remainder = "..."

// Attrs is the attribute set of a single argument. The zero value is a
// string-typed optional argument with no default.
type Attrs struct {
	Description string
	// Default is nil when absent. Strings "stdin" and "stdout" select the
	// process's standard streams.
	Default any
	Type    string
	// Choices is a comma-separated list of accepted values.
	Choices string
	ArgType ArgType
	Action  string
	Prefix  string
	// Nargs is nil, an int, or one of "+", "?", "*" and Remainder.
	Nargs   any
	Exclude bool
}

// Kind returns the argument type, defaulting to Optional.
func (a Attrs) Kind() ArgType {
	if a.ArgType == "" {
		return Optional
	}
	return a.ArgType
}

// ActionOrDefault returns the parser action, defaulting to "store".
func (a Attrs) ActionOrDefault() string {
	if a.Action == "" {
		return DefaultAction
	}
	return a.Action
}

// PrefixOrDefault returns the option prefix. Positionals never have one.
func (a Attrs) PrefixOrDefault() string {
	if a.Kind() == Positional {
		return ""
	}
	if a.Prefix == "" {
		return DefaultPrefix
	}
	return a.Prefix
}

// Meta is the spec-wide metadata entry.
type Meta struct {
	Description string
}

// Arg is a named entry of a Spec.
type Arg struct {
	Name  string
	Attrs Attrs
}

// Source yields a spec in declaration order.
type Source interface {
	Ordered() (*Spec, error)
}

// Spec is an ordered argument specification. It is built once and then
// only read.
type Spec struct {
	meta  *Meta
	args  []Arg
	index map[string]int
}

// New returns an empty Spec.
func New() *Spec {
	return &Spec{index: make(map[string]int)}
}

// Ordered implements Source.
func (s *Spec) Ordered() (*Spec, error) {
	return s, nil
}

// Add appends an argument.
func (s *Spec) Add(name string, attrs Attrs) error {
	if name == "" {
		return errors.New("argument name must not be empty")
	}
	if name == MetaKey {
		return fmt.Errorf("%q is reserved for metadata", MetaKey)
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	s.index[name] = len(s.args)
	s.args = append(s.args, Arg{Name: name, Attrs: attrs})
	return nil
}

// SetMeta sets the metadata entry.
func (s *Spec) SetMeta(m Meta) {
	s.meta = &m
}

// Meta returns the metadata entry, if any.
func (s *Spec) Meta() (Meta, bool) {
	if s.meta == nil {
		return Meta{}, false
	}
	return *s.meta, true
}

// Description resolves the overall description: the metadata description
// when present and non-empty, otherwise fallback.
func (s *Spec) Description(fallback string) string {
	if s.meta != nil && s.meta.Description != "" {
		return s.meta.Description
	}
	return fallback
}

// Args returns the arguments in declaration order.
func (s *Spec) Args() []Arg {
	return append([]Arg(nil), s.args...)
}

// Lookup returns the attributes of the named argument.
func (s *Spec) Lookup(name string) (Attrs, bool) {
	i, ok := s.index[name]
	if !ok {
		return Attrs{}, false
	}
	return s.args[i].Attrs, true
}

// Len reports the number of arguments, not counting metadata.
func (s *Spec) Len() int {
	return len(s.args)
}

// Map is an unordered spec keyed by argument name. Go maps do not keep
// insertion order, so a Map can never be rendered or built; use Spec.
type Map map[string]Attrs

// Ordered implements Source. It always fails with ErrUnordered.
func (m Map) Ordered() (*Spec, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("%w: got a map with keys %q", ErrUnordered, names)
}
