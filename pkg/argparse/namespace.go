// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"fmt"
	"os"
	"strings"
)

// Namespace holds parsed values, one per argument, in declaration order.
// Absent options without a default hold nil.
type Namespace struct {
	names  []string
	values map[string]any
}

func newNamespace(n int) *Namespace {
	return &Namespace{
		names:  make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

func (ns *Namespace) set(name string, v any) {
	if _, ok := ns.values[name]; !ok {
		ns.names = append(ns.names, name)
	}
	ns.values[name] = v
}

// Names returns the argument names in declaration order.
func (ns *Namespace) Names() []string {
	return append([]string(nil), ns.names...)
}

// Get returns the raw value of name.
func (ns *Namespace) Get(name string) (any, bool) {
	v, ok := ns.values[name]
	return v, ok
}

// String returns the value of name if it is a string.
func (ns *Namespace) String(name string) string {
	s, _ := ns.values[name].(string)
	return s
}

// Int returns the value of name if it is an int.
func (ns *Namespace) Int(name string) int {
	n, _ := ns.values[name].(int)
	return n
}

// Float returns the value of name if it is a float.
func (ns *Namespace) Float(name string) float64 {
	f, _ := ns.values[name].(float64)
	return f
}

// Bool returns the value of name if it is a bool.
func (ns *Namespace) Bool(name string) bool {
	b, _ := ns.values[name].(bool)
	return b
}

// List returns the value of name if it is a list.
func (ns *Namespace) List(name string) []any {
	l, _ := ns.values[name].([]any)
	return l
}

// File returns the value of name if it is a file.
func (ns *Namespace) File(name string) *os.File {
	f, _ := ns.values[name].(*os.File)
	return f
}

// Format renders the namespace as one "name = value" line per argument.
func (ns *Namespace) Format() string {
	var b strings.Builder
	for _, name := range ns.names {
		fmt.Fprintf(&b, "%s = %s\n", name, formatValue(ns.values[name]))
	}
	return b.String()
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "<none>"
	case *os.File:
		return "<file " + v.Name() + ">"
	case string:
		return fmt.Sprintf("%q", v)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprint(v)
}
