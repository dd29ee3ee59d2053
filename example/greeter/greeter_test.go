// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yeetrun/argspec/pkg/cfgfile"
)

func TestGreetDefaults(t *testing.T) {
	p, _, err := newParser(filepath.Join(t.TempDir(), "missing.cfg"))
	if err != nil {
		t.Fatalf("newParser error: %v", err)
	}
	ns, err := p.Parse(nil)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if ns.File("output") != os.Stdout {
		t.Fatalf("output = %v, want stdout", ns.File("output"))
	}
	if got := ns.Int("times"); got != 1 {
		t.Fatalf("times = %d, want 1", got)
	}
	var buf bytes.Buffer
	if err := greet(&buf, ns); err != nil {
		t.Fatalf("greet error: %v", err)
	}
	if got := buf.String(); got != "Hello, world!\n" {
		t.Fatalf("greet = %q, want %q", got, "Hello, world!\n")
	}
}

func TestGreetFromConfig(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "greeter.cfg")
	_, s, err := newParser(conf)
	if err != nil {
		t.Fatalf("newParser error: %v", err)
	}
	if err := cfgfile.WriteFile(conf, progName, s, ""); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	data, err := os.ReadFile(conf)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if strings.Contains(string(data), "init") {
		t.Fatalf("config contains excluded init:\n%s", data)
	}
	text := strings.Replace(string(data), "times = 1", "times = 3", 1)
	if err := os.WriteFile(conf, []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	p, _, err := newParser(conf)
	if err != nil {
		t.Fatalf("newParser error: %v", err)
	}
	ns, err := p.Parse([]string{"--message", "hi", "--shout"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	var buf bytes.Buffer
	if err := greet(&buf, ns); err != nil {
		t.Fatalf("greet error: %v", err)
	}
	if got, want := buf.String(), "HI\nHI\nHI\n"; got != want {
		t.Fatalf("greet = %q, want %q", got, want)
	}
}

func TestGreetOutputFile(t *testing.T) {
	p, _, err := newParser(filepath.Join(t.TempDir(), "missing.cfg"))
	if err != nil {
		t.Fatalf("newParser error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.txt")
	ns, err := p.Parse([]string{"--output", path, "--times", "2"})
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	f := ns.File("output")
	if err := greet(f, ns); err != nil {
		t.Fatalf("greet error: %v", err)
	}
	f.Close()
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(got) != "Hello, world!\nHello, world!\n" {
		t.Fatalf("output = %q", got)
	}
}
