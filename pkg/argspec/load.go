// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argspec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"
	"github.com/yeetrun/argspec/pkg/ftdetect"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a spec from path. The format comes from the file
// extension, or from the content when the extension is not a known one.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ft, err := ftdetect.Detect(path, data)
	if err != nil {
		return nil, err
	}
	var s *Spec
	switch ft {
	case ftdetect.YAML:
		s, err = LoadYAML(data)
	case ftdetect.JSON:
		s, err = LoadJSON(data)
	case ftdetect.TOML:
		s, err = LoadTOML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// LoadYAML parses a YAML mapping of argument names to attributes, keeping
// document order.
func LoadYAML(data []byte) (*Spec, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	s := New()
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return s, nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return s, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: spec must be a mapping", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		var raw map[string]any
		if err := val.Decode(&raw); err != nil {
			return nil, fmt.Errorf("line %d: argument %q: %w", val.Line, key.Value, err)
		}
		if err := s.addRaw(key.Value, raw); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadJSON parses a JSON object of argument names to attributes, keeping
// key order. Comments and trailing commas are accepted.
func LoadJSON(data []byte) (*Spec, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, err
	}
	s := New()
	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("spec must be a JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}
		if err := s.addRaw(name, raw); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadTOML parses a TOML document with one table per argument. Table order
// in the document is the declaration order.
func LoadTOML(data []byte) (*Spec, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	s := New()
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		name := key[0]
		table, ok := raw[name].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("argument %q: expected a table, got %s", name, md.Type(name))
		}
		if err := s.addRaw(name, table); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Spec) addRaw(name string, raw map[string]any) error {
	if name == MetaKey {
		var m Meta
		if v, ok := raw[DescKey]; ok && v != nil {
			m.Description = fmt.Sprint(v)
		}
		s.SetMeta(m)
		return nil
	}
	attrs, err := attrsFromRaw(name, raw)
	if err != nil {
		return err
	}
	return s.Add(name, attrs)
}

func attrsFromRaw(name string, raw map[string]any) (Attrs, error) {
	var a Attrs
	for k, v := range raw {
		switch k {
		case DescKey:
			a.Description = stringValue(v)
		case ExcludeKey:
			// Presence alone excludes the argument.
			a.Exclude = true
		case "default":
			a.Default = normalize(v)
		case "type":
			a.Type = stringValue(v)
		case "choices":
			a.Choices = choicesValue(v)
		case "argtype":
			a.ArgType = ArgType(stringValue(v))
		case "action":
			a.Action = stringValue(v)
		case "prefix":
			a.Prefix = stringValue(v)
		case "nargs":
			a.Nargs = normalize(v)
		default:
			return Attrs{}, fmt.Errorf("argument %q: %w %q", name, ErrUnknownAttr, k)
		}
	}
	return a, nil
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(normalize(v))
}

func choicesValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = stringValue(e)
		}
		return strings.Join(parts, ", ")
	default:
		return stringValue(v)
	}
}

// normalize maps decoder-specific number types onto int and float64.
func normalize(v any) any {
	switch v := v.(type) {
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}
		return out
	}
	return v
}
