// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/yeetrun/argspec/pkg/comment"
)

// defaultHelpWidth is the wrap width of help text.
const defaultHelpWidth = 78

var osExit = os.Exit

// Parser parses command lines according to a spec.
type Parser struct {
	prog        string
	description string
	args        []*Argument
	index       map[string]*Argument
	width       int

	stdout io.Writer
	stderr io.Writer
}

func newParser(prog, description string) *Parser {
	return &Parser{
		prog:        prog,
		description: description,
		index:       make(map[string]*Argument),
		width:       defaultHelpWidth,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
}

func (p *Parser) add(a *Argument) {
	p.args = append(p.args, a)
	p.index[a.Name] = a
}

// Prog returns the program name.
func (p *Parser) Prog() string { return p.prog }

// Description returns the parser description.
func (p *Parser) Description() string { return p.description }

// SetOutput sets where MustParse writes help and errors.
func (p *Parser) SetOutput(stdout, stderr io.Writer) {
	p.stdout, p.stderr = stdout, stderr
}

// SetWidth sets the wrap width of Help. Non-positive widths restore the
// default.
func (p *Parser) SetWidth(width int) {
	if width <= 0 {
		width = defaultHelpWidth
	}
	p.width = width
}

// Arguments returns the registered arguments in declaration order.
func (p *Parser) Arguments() []Argument {
	out := make([]Argument, len(p.args))
	for i, a := range p.args {
		out[i] = *a
	}
	return out
}

// Lookup returns the named argument.
func (p *Parser) Lookup(name string) (Argument, bool) {
	a, ok := p.index[name]
	if !ok {
		return Argument{}, false
	}
	return *a, true
}

// SetDefault overwrites the default of the named argument with a value
// read from a config file. Flags and counters parse the value immediately
// (an empty value restores the built-in default); "stdin" and "stdout"
// select the standard streams; any other value is converted by the
// argument's type when the default is used.
func (p *Parser) SetDefault(name, value string) error {
	a, ok := p.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownArgument, name)
	}
	switch a.Action {
	case ActionStoreTrue, ActionStoreFalse:
		if strings.TrimSpace(value) == "" {
			a.def, a.hasDef, a.rawDef = nil, false, false
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return &ArgumentError{Name: name, Err: fmt.Errorf("invalid bool default %q", value)}
		}
		a.setDefault(b)
		return nil
	case ActionCount:
		if strings.TrimSpace(value) == "" {
			a.def, a.hasDef, a.rawDef = nil, false, false
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return &ArgumentError{Name: name, Err: fmt.Errorf("invalid count default %q", value)}
		}
		a.setDefault(n)
		return nil
	}
	if f, ok := stream(value); ok {
		a.setDefault(f)
		return nil
	}
	a.def, a.hasDef, a.rawDef = value, true, true
	return nil
}

// Default returns the value the named argument takes when it is absent
// from the command line.
func (p *Parser) Default(name string) (any, error) {
	a, ok := p.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArgument, name)
	}
	return a.defaultValue()
}

func (a *Argument) defaultValue() (any, error) {
	if !a.hasDef {
		switch {
		case a.Action == ActionStoreTrue:
			return false, nil
		case a.Action == ActionStoreFalse:
			return true, nil
		case a.Positional() && (a.Nargs.Kind == NargsZeroOrMore || a.Nargs.Kind == NargsRemainder):
			return []any{}, nil
		}
		return nil, nil
	}
	if !a.rawDef {
		return a.def, nil
	}
	s, _ := a.def.(string)
	v, err := a.Type.Convert(s)
	if err != nil {
		return nil, &ArgumentError{Name: a.Name, Err: fmt.Errorf("invalid %s default: %q", a.Type.Name, s)}
	}
	return v, nil
}

// Parse parses tokens, which do not include the program name. It returns
// ErrHelp when help is requested.
func (p *Parser) Parse(tokens []string) (*Namespace, error) {
	optTokens, posTokens, err := p.normalize(tokens)
	if err != nil {
		return nil, err
	}

	fs := pflag.NewFlagSet(p.prog, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	values := make(map[string]*optionValue)
	for _, a := range p.args {
		if a.Positional() {
			continue
		}
		v := &optionValue{arg: a}
		f := fs.VarPF(v, a.Name, "", a.Help)
		switch a.Action {
		case ActionStoreTrue, ActionStoreFalse:
			f.NoOptDefVal = "true"
		case ActionCount:
			f.NoOptDefVal = "+1"
		}
		values[a.Name] = v
	}
	if err := fs.Parse(append(optTokens, "--")); err != nil {
		return nil, err
	}

	positional, err := p.assignPositionals(posTokens)
	if err != nil {
		return nil, err
	}

	ns := newNamespace(len(p.args))
	for _, a := range p.args {
		if a.Positional() {
			v, err := p.positionalValue(a, positional[a.Name])
			if err != nil {
				return nil, err
			}
			ns.set(a.Name, v)
			continue
		}
		if v := values[a.Name]; v.set {
			ns.set(a.Name, v.val)
			continue
		}
		v, err := a.defaultValue()
		if err != nil {
			return nil, err
		}
		ns.set(a.Name, v)
	}
	return ns, nil
}

// MustParse parses tokens like Parse. On -h or --help it prints help and
// exits 0; on invalid input it prints usage and the error to stderr and
// exits 2.
func (p *Parser) MustParse(tokens []string) *Namespace {
	ns, err := p.Parse(tokens)
	if err == nil {
		return ns
	}
	if errors.Is(err, ErrHelp) {
		fmt.Fprint(p.stdout, p.Help())
		osExit(0)
		return nil
	}
	fmt.Fprint(p.stderr, p.Usage())
	fmt.Fprintf(p.stderr, "%s: error: %v\n", p.prog, err)
	osExit(2)
	return nil
}

// normalize rewrites prefixed option tokens into canonical --name=value
// tokens for pflag and separates out positional tokens. Only the declared
// spelling of an option is accepted; pflag never sees user-typed names.
func (p *Parser) normalize(tokens []string) (opts, pos []string, err error) {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok == "--" {
			pos = append(pos, tokens[i+1:]...)
			break
		}
		a, inline, hasInline := p.matchOption(tok)
		if a == nil {
			if tok == "-h" || tok == "--help" {
				return nil, nil, ErrHelp
			}
			if p.looksLikeOption(tok) {
				return nil, nil, fmt.Errorf("%w: %s", ErrUnknownOption, tok)
			}
			pos = append(pos, tok)
			continue
		}
		name := "--" + a.Name
		if !a.takesValue() {
			if hasInline {
				name += "=" + inline
			}
			opts = append(opts, name)
			continue
		}
		var vals []string
		if hasInline {
			vals = []string{inline}
		} else {
			vals = p.consume(a, tokens[i+1:])
			i += len(vals)
		}
		if min, max := a.Nargs.bounds(); len(vals) < min || (max >= 0 && len(vals) > max) {
			return nil, nil, &ArgumentError{Name: a.flagName(), Err: errors.New(a.Nargs.expected())}
		}
		if a.Nargs.Multi() {
			opts = append(opts, name+"="+groupStart)
		}
		if len(vals) == 0 && a.Nargs.Kind == NargsOptional {
			opts = append(opts, name+"="+noValue)
		}
		for _, v := range vals {
			opts = append(opts, name+"="+v)
		}
	}
	return opts, pos, nil
}

// consume collects the values following an option.
func (p *Parser) consume(a *Argument, rest []string) []string {
	if a.Nargs.Kind == NargsRemainder {
		return rest
	}
	_, max := a.Nargs.bounds()
	var vals []string
	for _, tok := range rest {
		if max >= 0 && len(vals) == max {
			break
		}
		if tok == "--" {
			break
		}
		if o, _, _ := p.matchOption(tok); o != nil || p.looksLikeOption(tok) {
			break
		}
		vals = append(vals, tok)
	}
	return vals
}

func (p *Parser) matchOption(tok string) (a *Argument, inline string, hasInline bool) {
	for _, a := range p.args {
		if a.Positional() {
			continue
		}
		flag := a.flagName()
		if tok == flag {
			return a, "", false
		}
		if v, ok := strings.CutPrefix(tok, flag+"="); ok {
			return a, v, true
		}
	}
	return nil, "", false
}

func (p *Parser) looksLikeOption(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	return !isNegativeNumber(tok)
}

func isNegativeNumber(s string) bool {
	if !strings.HasPrefix(s, "-") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// assignPositionals distributes tokens over positional arguments from left
// to right, leaving enough tokens for the minimum of every later argument.
func (p *Parser) assignPositionals(tokens []string) (map[string][]string, error) {
	var positionals []*Argument
	for _, a := range p.args {
		if a.Positional() {
			positionals = append(positionals, a)
		}
	}
	out := make(map[string][]string, len(positionals))
	var missing []string
	idx := 0
	for k, a := range positionals {
		reserve := 0
		for _, later := range positionals[k+1:] {
			min, _ := later.Nargs.bounds()
			reserve += min
		}
		remaining := len(tokens) - idx
		min, max := a.Nargs.bounds()
		take := remaining - reserve
		if take < min {
			// Not enough tokens for everyone; earlier arguments win.
			if remaining < min {
				missing = append(missing, a.Name)
				continue
			}
			take = min
		}
		if max >= 0 && take > max {
			take = max
		}
		out[a.Name] = tokens[idx : idx+take]
		idx += take
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("the following arguments are required: %s", strings.Join(missing, ", "))
	}
	if idx < len(tokens) {
		return nil, fmt.Errorf("unrecognized arguments: %s", strings.Join(tokens[idx:], " "))
	}
	return out, nil
}

func (p *Parser) positionalValue(a *Argument, toks []string) (any, error) {
	if len(toks) == 0 && (a.Nargs.Kind == NargsOptional || a.Nargs.Kind == NargsZeroOrMore) {
		return a.defaultValue()
	}
	vals := make([]any, 0, len(toks))
	for _, tok := range toks {
		v, err := a.convert(tok)
		if err != nil {
			return nil, &ArgumentError{Name: a.Name, Err: err}
		}
		vals = append(vals, v)
	}
	if a.Nargs.Multi() {
		return vals, nil
	}
	return vals[0], nil
}

// Usage returns the one-line usage summary.
func (p *Parser) Usage() string {
	parts := []string{"usage: " + p.prog}
	var pos []string
	for _, a := range p.args {
		if a.Positional() {
			pos = append(pos, a.Nargs.metavar(a.metavar()))
			continue
		}
		if !a.takesValue() {
			parts = append(parts, "["+a.flagName()+"]")
			continue
		}
		parts = append(parts, "["+a.flagName()+" "+a.Nargs.metavar(a.metavar())+"]")
	}
	parts = append(parts, pos...)
	return strings.Join(parts, " ") + "\n"
}

// Help returns the full help text: usage, description and one entry per
// argument.
func (p *Parser) Help() string {
	var b strings.Builder
	b.WriteString(p.Usage())
	if p.description != "" {
		b.WriteByte('\n')
		desc := strings.Join(strings.Fields(p.description), " ")
		for _, line := range comment.Wrap(desc, p.width) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	section := func(title string, positional bool) {
		var rows [][2]string
		for _, a := range p.args {
			if a.Positional() != positional {
				continue
			}
			rows = append(rows, [2]string{a.helpName(), a.helpText()})
		}
		if !positional {
			rows = append(rows, [2]string{"-h, --help", "show this help message and exit"})
		}
		if len(rows) == 0 {
			return
		}
		width := 0
		for _, r := range rows {
			width = max(width, len(r[0]))
		}
		fmt.Fprintf(&b, "\n%s:\n", title)
		for _, r := range rows {
			fmt.Fprintf(&b, "  %-*s  %s\n", width, r[0], strings.TrimSpace(r[1]))
		}
	}
	section("positional arguments", true)
	section("options", false)
	return b.String()
}

func (a *Argument) helpName() string {
	if a.Positional() {
		return a.Name
	}
	if !a.takesValue() {
		return a.flagName()
	}
	return a.flagName() + " " + a.Nargs.metavar(a.metavar())
}

func (a *Argument) helpText() string {
	text := a.Help
	if len(a.choiceText) > 0 {
		text += " {" + strings.Join(a.choiceText, ",") + "}"
	}
	if d := displayDefault(a); d != "" && a.takesValue() {
		text += " (default: " + d + ")"
	}
	return text
}
