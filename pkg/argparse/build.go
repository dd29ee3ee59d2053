// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argparse builds command-line parsers from argument specs.
//
// The parsing itself is done by github.com/spf13/pflag; this package maps
// spec attributes (type names, choices, nargs, stream defaults, custom
// prefixes and positional/optional/flag kinds) onto it.
//
// Only the "stdin" and "stdout" sentinels are used as parser defaults.
// Every other default declared in a spec is dropped here and is expected to
// arrive from the companion config file through SetDefault.
package argparse

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yeetrun/argspec/pkg/argspec"
)

// Parser actions.
const (
	ActionStore      = "store"
	ActionAppend     = "append"
	ActionExtend     = "extend"
	ActionCount      = "count"
	ActionStoreTrue  = "store_true"
	ActionStoreFalse = "store_false"
)

var actions = []string{ActionStore, ActionAppend, ActionExtend, ActionCount, ActionStoreTrue, ActionStoreFalse}

// Argument is a resolved argument registered on a Parser.
type Argument struct {
	Name    string
	Kind    argspec.ArgType
	Prefix  string
	Help    string
	Action  string
	Nargs   Nargs
	Type    Type
	Choices []any

	choiceText []string
	def        any
	hasDef     bool
	// rawDef marks a string default still to be converted by Type.
	rawDef bool
}

// Positional reports whether a is a positional argument.
func (a *Argument) Positional() bool {
	return a.Kind == argspec.Positional
}

func (a *Argument) takesValue() bool {
	switch a.Action {
	case ActionStoreTrue, ActionStoreFalse, ActionCount:
		return false
	}
	return true
}

// flagName is the name as typed on the command line.
func (a *Argument) flagName() string {
	return a.Prefix + a.Name
}

func (a *Argument) metavar() string {
	if a.Positional() {
		return a.Name
	}
	return strings.ToUpper(a.Name)
}

// Build constructs a parser named name from src. The description comes from
// the spec's metadata entry, falling back to description. Construction fails
// on the first invalid argument and no parser is returned.
func Build(name string, src argspec.Source, description string) (*Parser, error) {
	s, err := src.Ordered()
	if err != nil {
		return nil, err
	}
	p := newParser(name, s.Description(description))
	for _, a := range s.Args() {
		arg, err := resolve(a.Name, a.Attrs)
		if err != nil {
			return nil, err
		}
		p.add(arg)
	}
	return p, nil
}

func resolve(name string, attrs argspec.Attrs) (*Argument, error) {
	arg := &Argument{
		Name:   name,
		Kind:   attrs.Kind(),
		Prefix: attrs.PrefixOrDefault(),
		Help:   attrs.Description,
		Action: attrs.ActionOrDefault(),
		Nargs:  ResolveNargs(attrs.Nargs),
	}
	if f, ok := stream(attrs.Default); ok {
		arg.setDefault(f)
	}

	typ, ok := LookupType(attrs.Type)
	if !ok {
		return nil, &ArgumentError{Name: name, Err: fmt.Errorf("%w %q (known types: %s)", ErrInvalidType, attrs.Type, strings.Join(TypeNames(), ", "))}
	}
	arg.Type = typ

	if attrs.Choices != "" {
		for _, tok := range strings.Split(attrs.Choices, ",") {
			tok = strings.TrimSpace(tok)
			v, err := typ.Convert(tok)
			if err != nil {
				Logf("warning: choice %q of argument %s cannot be converted to %s", tok, name, typ.Name)
				return nil, &ArgumentError{Name: name, Err: fmt.Errorf("%w %q: %w", ErrInvalidChoice, tok, err)}
			}
			arg.Choices = append(arg.Choices, v)
			arg.choiceText = append(arg.choiceText, tok)
		}
	}

	switch arg.Kind {
	case argspec.Positional:
		arg.Prefix = ""
		if arg.Action != ActionStore {
			return nil, &ArgumentError{Name: name, Err: fmt.Errorf("%w %q for a positional argument", ErrInvalidAction, arg.Action)}
		}
	case argspec.Flag:
		arg.Action = ActionStoreTrue
		arg.Nargs = Nargs{}
		arg.Choices, arg.choiceText = nil, nil
		arg.def, arg.hasDef, arg.rawDef = nil, false, false
	default:
		arg.Kind = argspec.Optional
		if !slices.Contains(actions, arg.Action) {
			return nil, &ArgumentError{Name: name, Err: fmt.Errorf("%w %q", ErrInvalidAction, arg.Action)}
		}
		if !arg.takesValue() {
			arg.Nargs = Nargs{}
			arg.Choices, arg.choiceText = nil, nil
		}
	}
	return arg, nil
}

func (a *Argument) setDefault(v any) {
	a.def, a.hasDef, a.rawDef = v, true, false
}

// check verifies v against the argument's choices.
func (a *Argument) check(v any) error {
	if len(a.Choices) == 0 {
		return nil
	}
	for _, c := range a.Choices {
		if c == v {
			return nil
		}
	}
	return fmt.Errorf("invalid choice: %v (choose from %s)", v, strings.Join(a.choiceText, ", "))
}

// convert converts and checks a single command-line value.
func (a *Argument) convert(s string) (any, error) {
	v, err := a.Type.Convert(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %q", a.Type.Name, s)
	}
	if err := a.check(v); err != nil {
		return nil, err
	}
	return v, nil
}
