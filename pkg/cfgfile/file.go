// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cfgfile

import (
	"fmt"
	"log"

	"github.com/yeetrun/argspec/pkg/argparse"
	"github.com/yeetrun/argspec/pkg/argspec"
	"github.com/yeetrun/argspec/pkg/fileutil"
	"gopkg.in/ini.v1"
)

// Logf receives non-fatal warnings.
var Logf = log.Printf

// WriteFile renders src and writes it to path. An existing file with the
// same content is left untouched.
func WriteFile(path, name string, src argspec.Source, description string) error {
	text, err := Render(name, src, description)
	if err != nil {
		return err
	}
	if _, err := fileutil.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Load reads an INI config file.
func Load(path string) (*ini.File, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return f, nil
}

// LoadBytes parses INI config text.
func LoadBytes(data []byte) (*ini.File, error) {
	return ini.Load(data)
}

// ApplyDefaults overwrites the defaults of p with the values in the section
// named after p.Prog(). Keys that do not name an argument are ignored. A
// missing section is reported through Logf and is not an error.
func ApplyDefaults(p *argparse.Parser, f *ini.File) error {
	sec, err := f.GetSection(p.Prog())
	if err != nil {
		Logf("warning: config has no section [%s]; using built-in defaults", p.Prog())
		return nil
	}
	for _, key := range sec.Keys() {
		if _, ok := p.Lookup(key.Name()); !ok {
			continue
		}
		if err := p.SetDefault(key.Name(), key.String()); err != nil {
			return fmt.Errorf("config [%s]: %w", p.Prog(), err)
		}
	}
	return nil
}
