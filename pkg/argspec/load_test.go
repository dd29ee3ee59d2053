// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argspec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testYAML = `__meta__:
  __desc__: Section description
arg1:
  default: default_value
  __desc__: Argument description/help
arg2:
  default: 1
  __desc__: Second argument description
  type: int
arg3:
  default: 1
  __desc__: Third argument description
  type: int
  __exclude__: true
`

const testJSON = `{
	// comments are fine
	"__meta__": {"__desc__": "Section description"},
	"arg1": {"default": "default_value", "__desc__": "Argument description/help"},
	"arg2": {"default": 1, "__desc__": "Second argument description", "type": "int"},
	"arg3": {"default": 1, "__desc__": "Third argument description", "type": "int", "__exclude__": true},
}
`

const testTOML = `[__meta__]
__desc__ = "Section description"

[arg1]
default = "default_value"
__desc__ = "Argument description/help"

[arg2]
default = 1
__desc__ = "Second argument description"
type = "int"

[arg3]
default = 1
__desc__ = "Third argument description"
type = "int"
__exclude__ = true
`

func wantTestArgs() []Arg {
	return []Arg{
		{Name: "arg1", Attrs: Attrs{Default: "default_value", Description: "Argument description/help"}},
		{Name: "arg2", Attrs: Attrs{Default: 1, Description: "Second argument description", Type: "int"}},
		{Name: "arg3", Attrs: Attrs{Default: 1, Description: "Third argument description", Type: "int", Exclude: true}},
	}
}

func TestLoaders(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		load func([]byte) (*Spec, error)
		data string
	}{
		{name: "yaml", load: LoadYAML, data: testYAML},
		{name: "json", load: LoadJSON, data: testJSON},
		{name: "toml", load: LoadTOML, data: testTOML},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s, err := tc.load([]byte(tc.data))
			if err != nil {
				t.Fatalf("load error: %v", err)
			}
			meta, ok := s.Meta()
			if !ok || meta.Description != "Section description" {
				t.Fatalf("Meta = %+v, %v", meta, ok)
			}
			if diff := cmp.Diff(wantTestArgs(), s.Args()); diff != "" {
				t.Fatalf("Args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadYAMLLenientValues(t *testing.T) {
	s, err := LoadYAML([]byte(`
mode:
  choices: [fast, slow]
  nargs: "+"
empty:
`))
	if err != nil {
		t.Fatalf("LoadYAML error: %v", err)
	}
	mode, ok := s.Lookup("mode")
	if !ok {
		t.Fatalf("mode not found")
	}
	if mode.Choices != "fast, slow" {
		t.Errorf("Choices = %q, want %q", mode.Choices, "fast, slow")
	}
	if mode.Nargs != "+" {
		t.Errorf("Nargs = %#v, want +", mode.Nargs)
	}
	if _, ok := s.Lookup("empty"); !ok {
		t.Errorf("empty argument not loaded")
	}
}

func TestLoadYAMLUnknownAttr(t *testing.T) {
	_, err := LoadYAML([]byte("arg:\n  colour: red\n"))
	if !errors.Is(err, ErrUnknownAttr) {
		t.Fatalf("LoadYAML error = %v, want ErrUnknownAttr", err)
	}
}

func TestLoadYAMLNotMapping(t *testing.T) {
	if _, err := LoadYAML([]byte("- a\n- b\n")); err == nil {
		t.Fatalf("LoadYAML of a list succeeded, want error")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.yml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}

	bad := filepath.Join(dir, "spec.ini")
	if err := os.WriteFile(bad, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Fatalf("LoadFile(%s) succeeded, want error", bad)
	}
}

func TestLoadFileSniffsFormat(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"spec-yaml": testYAML,
		"spec-json": testJSON,
		"spec-toml": testTOML,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
		s, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile(%s) error: %v", name, err)
		}
		if diff := cmp.Diff(wantTestArgs(), s.Args()); diff != "" {
			t.Errorf("LoadFile(%s) args mismatch (-want +got):\n%s", name, diff)
		}
	}
}
