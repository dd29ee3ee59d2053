// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command greeter writes a message a number of times. Its arguments come
// from greeter.yml and its defaults from greeter.cfg, which --init writes.
package main

import (
	_ "embed"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/yeetrun/argspec/pkg/argparse"
	"github.com/yeetrun/argspec/pkg/argspec"
	"github.com/yeetrun/argspec/pkg/cfgfile"
	"gopkg.in/ini.v1"
)

const (
	progName = "greeter"
	confFile = "greeter.cfg"
)

//go:embed greeter.yml
var specYAML []byte

// newParser builds the greeter parser and applies the defaults in confPath.
// Without confPath the spec's own defaults are rendered and applied the
// same way, since Build keeps only the stream defaults.
func newParser(confPath string) (*argparse.Parser, *argspec.Spec, error) {
	s, err := argspec.LoadYAML(specYAML)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load spec: %w", err)
	}
	p, err := argparse.Build(progName, s, "")
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig(confPath, s)
	if err != nil {
		return nil, nil, err
	}
	if err := cfgfile.ApplyDefaults(p, cfg); err != nil {
		return nil, nil, err
	}
	return p, s, nil
}

// loadConfig reads confPath, or the config rendered from s when confPath
// does not exist.
func loadConfig(confPath string, s *argspec.Spec) (*ini.File, error) {
	_, err := os.Stat(confPath)
	switch {
	case err == nil:
		return cfgfile.Load(confPath)
	case !os.IsNotExist(err):
		return nil, err
	}
	text, err := cfgfile.Render(progName, s, "")
	if err != nil {
		return nil, err
	}
	return cfgfile.LoadBytes([]byte(text))
}

func greet(w io.Writer, ns *argparse.Namespace) error {
	msg := ns.String("message")
	if ns.Bool("shout") {
		msg = strings.ToUpper(msg)
	}
	for range ns.Int("times") {
		if _, err := fmt.Fprintln(w, msg); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	log.SetFlags(0)
	p, s, err := newParser(confFile)
	if err != nil {
		log.Fatal(err)
	}
	ns := p.MustParse(os.Args[1:])

	if ns.Bool("init") {
		if err := cfgfile.WriteFile(confFile, progName, s, ""); err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(os.Stderr, color.GreenString("wrote %s", confFile))
	}

	out := ns.File("output")
	if out != os.Stdout {
		defer out.Close()
	}
	if err := greet(out, ns); err != nil {
		log.Fatal(err)
	}
}
