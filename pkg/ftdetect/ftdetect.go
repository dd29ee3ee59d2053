// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ftdetect works out which format a spec file is written in.
package ftdetect

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

type FileType int

const (
	Unknown FileType = iota
	YAML
	JSON
	TOML
)

func (ft FileType) String() string {
	switch ft {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	case TOML:
		return "toml"
	}
	return "unknown"
}

// Detect returns the format of a spec file. The file name decides when it
// has a known extension; otherwise the content is sniffed.
func Detect(path string, data []byte) (FileType, error) {
	if ft, ok := detectByName(path); ok {
		return ft, nil
	}
	if detectJSON(data) {
		return JSON, nil
	}
	if detectTOML(data) {
		return TOML, nil
	}
	if detectYAML(data) {
		return YAML, nil
	}
	return Unknown, fmt.Errorf("unable to detect spec format of %s", path)
}

func detectByName(path string) (FileType, bool) {
	if path == "" {
		return Unknown, false
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return YAML, true
	case ".json", ".jsonc", ".hujson":
		return JSON, true
	case ".toml":
		return TOML, true
	}
	return Unknown, false
}

// detectJSON accepts JSON with comments and trailing commas whose top level
// is an object.
func detectJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return false
	}
	v, err := hujson.Parse(trimmed)
	if err != nil {
		return false
	}
	_, ok := v.Value.(*hujson.Object)
	return ok
}

// detectTOML checks that the content decodes as a non-empty TOML table.
func detectTOML(data []byte) bool {
	var m map[string]any
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return false
	}
	return len(md.Keys()) > 0
}

// detectYAML checks for a top-level YAML mapping.
func detectYAML(data []byte) bool {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return false
	}
	return len(doc.Content) > 0 && doc.Content[0].Kind == yaml.MappingNode
}
