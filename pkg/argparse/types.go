// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yeetrun/argspec/pkg/argspec"
)

// Type converts command-line strings into typed values.
type Type struct {
	Name    string
	convert func(string) (any, error)
}

// Convert converts s to the type's value.
func (t Type) Convert(s string) (any, error) {
	return t.convert(s)
}

// File type names. "-" selects stdin for reading and stdout for writing.
const (
	FileRead  = "File-r"
	FileWrite = "File-w"
)

var types = map[string]Type{
	"str":     {Name: "str", convert: func(s string) (any, error) { return s, nil }},
	"int":     {Name: "int", convert: convertInt},
	"float":   {Name: "float", convert: convertFloat},
	"bool":    {Name: "bool", convert: convertBool},
	FileRead:  {Name: FileRead, convert: openRead},
	FileWrite: {Name: FileWrite, convert: openWrite},
}

// LookupType returns the registered type for name. An empty name is "str".
func LookupType(name string) (Type, bool) {
	if name == "" {
		name = argspec.DefaultType
	}
	t, ok := types[name]
	return t, ok
}

// TypeNames lists the registered type names.
func TypeNames() []string {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func convertInt(s string) (any, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func convertFloat(s string) (any, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func convertBool(s string) (any, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}

func openRead(s string) (any, error) {
	if s == "-" {
		return os.Stdin, nil
	}
	return os.Open(s)
}

func openWrite(s string) (any, error) {
	if s == "-" {
		return os.Stdout, nil
	}
	return os.Create(s)
}

// stream resolves the stdin/stdout default sentinels.
func stream(v any) (*os.File, bool) {
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	switch s {
	case argspec.Stdin:
		return os.Stdin, true
	case argspec.Stdout:
		return os.Stdout, true
	}
	return nil, false
}
