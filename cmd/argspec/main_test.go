// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yeetrun/argspec/pkg/argspec"
)

const greeterSpec = `__meta__:
  __desc__: Write a message a number of times.
message:
  __desc__: The message to write
  default: hello
times:
  __desc__: How many times to write it
  type: int
  default: 1
init:
  argtype: flag
  __exclude__: true
`

func writeSpec(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return &out, &errOut
}

func TestSpecName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"greeter.yml":          "greeter",
		"/etc/specs/tool.json": "tool",
		"noext":                "noext",
	}
	for in, want := range cases {
		if got := specName(in); got != want {
			t.Errorf("specName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHandleConfigStdout(t *testing.T) {
	out, _ := captureOutput(t)
	path := writeSpec(t, t.TempDir(), "greeter.yml", greeterSpec)

	if err := handleConfig(context.Background(), []string{"config", path}); err != nil {
		t.Fatalf("handleConfig error: %v", err)
	}
	want := `## Write a message a number of times.
[greeter]
# The message to write
message = hello
# How many times to write it
times = 1
`
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleConfigOutputDir(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	a := writeSpec(t, dir, "a.yml", "x:\n  default: 1\n")
	b := writeSpec(t, dir, "b.json", `{"y": {"default": "two"}}`)
	outDir := t.TempDir()

	if err := handleConfig(context.Background(), []string{"config", a, b, "--output-dir", outDir}); err != nil {
		t.Fatalf("handleConfig error: %v", err)
	}
	for name, want := range map[string]string{
		"a.cfg": "[a]\nx = 1\n",
		"b.cfg": "[b]\ny = two\n",
	} {
		got, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if string(got) != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestHandleConfigRejectsNameForManySpecs(t *testing.T) {
	captureOutput(t)
	dir := t.TempDir()
	a := writeSpec(t, dir, "a.yml", "x: {}\n")
	b := writeSpec(t, dir, "b.yml", "y: {}\n")
	if err := handleConfig(context.Background(), []string{"config", "--name", "s", a, b}); err == nil {
		t.Fatalf("handleConfig succeeded, want error")
	}
}

func TestHandleConfigUnknownAttr(t *testing.T) {
	captureOutput(t)
	path := writeSpec(t, t.TempDir(), "bad.yml", "x:\n  colour: red\n")
	err := handleConfig(context.Background(), []string{"config", path})
	if !errors.Is(err, argspec.ErrUnknownAttr) {
		t.Fatalf("handleConfig error = %v, want ErrUnknownAttr", err)
	}
}

func TestHandleParseWithConfig(t *testing.T) {
	out, _ := captureOutput(t)
	dir := t.TempDir()
	path := writeSpec(t, dir, "greeter.yml", greeterSpec)
	cfg := writeSpec(t, dir, "greeter.cfg", "[greeter]\nmessage = hi there\ntimes = 3\n")

	args := []string{"parse", "--config", cfg, path, "--times", "2"}
	if err := handleParse(context.Background(), args); err != nil {
		t.Fatalf("handleParse error: %v", err)
	}
	want := "message = \"hi there\"\ntimes = 2\ninit = false\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("parse mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleParseError(t *testing.T) {
	_, errOut := captureOutput(t)
	path := writeSpec(t, t.TempDir(), "greeter.yml", greeterSpec)

	err := handleParse(context.Background(), []string{"parse", path, "--", "--times", "many"})
	if err == nil {
		t.Fatalf("handleParse succeeded, want error")
	}
	if !strings.HasPrefix(err.Error(), "greeter: ") {
		t.Errorf("error = %q, want greeter prefix", err)
	}
	if !strings.HasPrefix(errOut.String(), "usage: greeter") {
		t.Errorf("stderr = %q, want usage", errOut.String())
	}
}

func TestHandleParseHelp(t *testing.T) {
	out, _ := captureOutput(t)
	path := writeSpec(t, t.TempDir(), "greeter.yml", greeterSpec)

	if err := handleParse(context.Background(), []string{"parse", path, "--", "--help"}); err != nil {
		t.Fatalf("handleParse error: %v", err)
	}
	if !strings.Contains(out.String(), "Write a message a number of times.") {
		t.Fatalf("help = %q, want description", out.String())
	}
}

func TestHandleUsageWidth(t *testing.T) {
	out, _ := captureOutput(t)
	path := writeSpec(t, t.TempDir(), "greeter.yml", greeterSpec)

	if err := handleUsage(context.Background(), []string{"usage", path, "--width", "20", "--name", "greet"}); err != nil {
		t.Fatalf("handleUsage error: %v", err)
	}
	lines := strings.Split(out.String(), "\n")
	if !strings.HasPrefix(lines[0], "usage: greet ") {
		t.Fatalf("usage line = %q", lines[0])
	}
	// The description is wrapped at the requested width.
	if lines[2] != "Write a message a" || lines[3] != "number of times." {
		t.Fatalf("description lines = %q", lines[2:4])
	}
}

func TestHandleTypes(t *testing.T) {
	out, _ := captureOutput(t)
	if err := handleTypes(context.Background(), nil); err != nil {
		t.Fatalf("handleTypes error: %v", err)
	}
	want := "File-r\nFile-w\nbool\nfloat\nint\nstr\n"
	if out.String() != want {
		t.Fatalf("types = %q, want %q", out.String(), want)
	}
}

func TestPrintCLIError(t *testing.T) {
	var buf bytes.Buffer
	printCLIError(&buf, nil)
	if buf.Len() != 0 {
		t.Fatalf("nil error printed %q", buf.String())
	}
	printCLIError(&buf, errors.New("boom"))
	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("printed %q, want boom", buf.String())
	}
}
