// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cfgfile renders argument specs as INI config files and merges
// loaded config files back into parser defaults.
//
// A rendered file looks like:
//
//	## Section description
//	[Section]
//	# Argument description/help
//	arg1 = default_value
//	# Second argument description
//	arg2 = 1
package cfgfile

import (
	"fmt"
	"strings"

	"github.com/yeetrun/argspec/pkg/argspec"
	"github.com/yeetrun/argspec/pkg/comment"
)

const (
	sectionQuote = "## "
	keyQuote     = "# "
)

// Render returns the config text for src under the section header name.
// The section comment is the spec's metadata description, else
// description. Excluded arguments are left out.
func Render(name string, src argspec.Source, description string) (string, error) {
	s, err := src.Ordered()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(comment.Format(s.Description(description), comment.DefaultWidth, sectionQuote))
	fmt.Fprintf(&b, "[%s]\n", name)
	for _, a := range s.Args() {
		if a.Attrs.Exclude {
			continue
		}
		b.WriteString(comment.Format(a.Attrs.Description, comment.DefaultWidth, keyQuote))
		fmt.Fprintf(&b, "%s = %s\n", a.Name, formatDefault(a.Attrs.Default))
	}
	return b.String(), nil
}

func formatDefault(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = formatDefault(e)
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprint(v)
}
