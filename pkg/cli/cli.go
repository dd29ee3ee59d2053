// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/shayne/yargs"
)

type FlagSpec struct {
	ConsumesValue bool
}

type CommandInfo struct {
	Name        string
	Description string
	Usage       string
	Examples    []string
	Hidden      bool
	Aliases     []string
}

type ConfigFlags struct {
	Name        string
	Description string
	Output      string
	OutputDir   string
}

type UsageFlags struct {
	Name        string
	Description string
	Width       int
}

type ParseFlags struct {
	Name        string
	Description string
	Config      string
}

type configFlagsParsed struct {
	Name        string `flag:"name" short:"n" help:"Section name (defaults to the spec file name)"`
	Description string `flag:"description" short:"d" help:"Section comment when the spec has none"`
	Output      string `flag:"output" short:"o" help:"Write the config to FILE instead of stdout"`
	OutputDir   string `flag:"output-dir" help:"Write one NAME.cfg per spec into DIR"`
}

type usageFlagsParsed struct {
	Name        string `flag:"name" short:"n" help:"Program name (defaults to the spec file name)"`
	Description string `flag:"description" short:"d" help:"Description when the spec has none"`
	Width       int    `flag:"width" short:"w" help:"Wrap width (defaults to the terminal width)"`
}

type parseFlagsParsed struct {
	Name        string `flag:"name" short:"n" help:"Program name and config section"`
	Description string `flag:"description" short:"d" help:"Description when the spec has none"`
	Config      string `flag:"config" short:"c" help:"Config file supplying defaults"`
}

const (
	CommandConfig = "config"
	CommandUsage  = "usage"
	CommandParse  = "parse"
	CommandTypes  = "types"
)

var commandInfos = map[string]CommandInfo{
	CommandConfig: {Name: CommandConfig, Description: "Render config files from argument specs", Usage: "SPEC [SPEC...] [--name=NAME] [--output=FILE | --output-dir=DIR]", Examples: []string{
		"argspec config ./greeter.yml",
		"argspec config ./greeter.yml --name greeter -o greeter.cfg",
		"argspec config ./specs/*.yml --output-dir ./etc",
	}, Aliases: []string{"cfg"}},
	CommandUsage: {Name: CommandUsage, Description: "Show the help text of the parser built from a spec", Usage: "SPEC [--name=NAME] [--width=N]", Examples: []string{
		"argspec usage ./greeter.yml",
	}},
	CommandParse: {Name: CommandParse, Description: "Parse arguments against a spec and print the result", Usage: "SPEC [--config=FILE] [--] [ARGS...]", Examples: []string{
		"argspec parse ./greeter.yml --times 2 hello",
		"argspec parse ./greeter.yml --config greeter.cfg -- --name bob",
	}},
	CommandTypes: {Name: CommandTypes, Description: "List the argument types a spec may name"},
}

var flagSpecs = map[string]map[string]FlagSpec{
	CommandConfig: flagSpecsFromStruct(configFlagsParsed{}),
	CommandUsage:  flagSpecsFromStruct(usageFlagsParsed{}),
	CommandParse:  flagSpecsFromStruct(parseFlagsParsed{}),
	CommandTypes:  {},
}

func CommandNames() []string {
	names := make([]string, 0, len(commandInfos))
	for name := range commandInfos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func CommandInfos() map[string]CommandInfo {
	return commandInfos
}

func FlagSpecs() map[string]map[string]FlagSpec {
	return flagSpecs
}

func ToSubCommandInfo(name string, info CommandInfo) yargs.SubCommandInfo {
	return yargs.SubCommandInfo{
		Name:        name,
		Description: info.Description,
		Usage:       info.Usage,
		Examples:    info.Examples,
		Hidden:      info.Hidden,
		Aliases:     info.Aliases,
	}
}

// StripCommand removes the leading command name that yargs passes to
// subcommand handlers.
func StripCommand(name string, args []string) []string {
	if len(args) == 0 {
		return args
	}
	if args[0] == name {
		return args[1:]
	}
	for _, alias := range commandInfos[name].Aliases {
		if args[0] == alias {
			return args[1:]
		}
	}
	return args
}

func ParseConfig(args []string) (ConfigFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[configFlagsParsed](parseArgs)
	if err != nil {
		return ConfigFlags{}, nil, err
	}
	flags := ConfigFlags{
		Name:        parsed.Flags.Name,
		Description: parsed.Flags.Description,
		Output:      parsed.Flags.Output,
		OutputDir:   parsed.Flags.OutputDir,
	}
	if flags.Output != "" && flags.OutputDir != "" {
		return ConfigFlags{}, nil, fmt.Errorf("--output and --output-dir are mutually exclusive")
	}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

func ParseUsage(args []string) (UsageFlags, []string, error) {
	parseArgs, extraArgs := splitArgsAtDoubleDash(args)
	parsed, err := parseFlags[usageFlagsParsed](parseArgs)
	if err != nil {
		return UsageFlags{}, nil, err
	}
	flags := UsageFlags{
		Name:        parsed.Flags.Name,
		Description: parsed.Flags.Description,
		Width:       parsed.Flags.Width,
	}
	argsOut := append(parsed.Args, extraArgs...)
	return flags, argsOut, nil
}

// ParseParse splits args into the spec path and the tokens handed to the
// spec's parser. Parsing of our own flags stops at "--" or at the first
// flag we do not know.
func ParseParse(args []string) (ParseFlags, string, []string, error) {
	parseArgs, extraArgs := splitArgsForParsing(args, flagSpecs[CommandParse])
	parsed, err := parseFlags[parseFlagsParsed](parseArgs)
	if err != nil {
		return ParseFlags{}, "", nil, err
	}
	flags := ParseFlags{
		Name:        parsed.Flags.Name,
		Description: parsed.Flags.Description,
		Config:      parsed.Flags.Config,
	}
	argsOut := append(parsed.Args, extraArgs...)
	if err := RequireArgsAtLeast(CommandParse, argsOut, 1); err != nil {
		return ParseFlags{}, "", nil, err
	}
	return flags, argsOut[0], argsOut[1:], nil
}

type parsedFlags[T any] struct {
	Flags  T
	Args   []string
	Parser *yargs.Parser
}

func parseFlags[T any](args []string) (parsedFlags[T], error) {
	result, err := yargs.ParseFlags[T](args)
	if err != nil {
		return parsedFlags[T]{}, err
	}
	argsOut := append([]string{}, result.Args...)
	if len(result.RemainingArgs) > 0 {
		argsOut = append(argsOut, result.RemainingArgs...)
	}
	return parsedFlags[T]{Flags: result.Flags, Args: argsOut, Parser: result.Parser}, nil
}

func splitArgsAtDoubleDash(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
	}
	return args, nil
}

func splitArgsForParsing(args []string, specs map[string]FlagSpec) ([]string, []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			if i+1 < len(args) {
				return args[:i], args[i+1:]
			}
			return args[:i], nil
		}
		if strings.HasPrefix(arg, "--") && len(arg) > 2 {
			name := arg
			if idx := strings.Index(name, "="); idx != -1 {
				name = name[:idx]
			}
			spec, ok := specs[name]
			if !ok {
				return args[:i], args[i:]
			}
			if spec.ConsumesValue && !strings.Contains(arg, "=") {
				i++
			}
			continue
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			if strings.Contains(arg, "=") {
				name := arg[:strings.Index(arg, "=")]
				if _, ok := specs[name]; ok {
					continue
				}
				return args[:i], args[i:]
			}
			if len(arg) == 2 {
				spec, ok := specs[arg]
				if !ok {
					return args[:i], args[i:]
				}
				if spec.ConsumesValue {
					i++
				}
				continue
			}
			// -cFILE style: the value is attached.
			if _, ok := specs["-"+string(arg[1])]; !ok {
				return args[:i], args[i:]
			}
			continue
		}
	}
	return args, nil
}

func flagSpecsFromStruct(v any) map[string]FlagSpec {
	specs := make(map[string]FlagSpec)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return specs
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("flag")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		spec := FlagSpec{ConsumesValue: consumesValue(field.Type)}
		specs["--"+name] = spec
		if short := field.Tag.Get("short"); short != "" {
			specs["-"+short] = spec
		}
	}
	return specs
}

func consumesValue(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() != reflect.Bool
}

func RequireArgsAtLeast(subcmd string, args []string, count int) error {
	if len(args) < count {
		return fmt.Errorf("'%s' requires at least %d argument(s), got %d", subcmd, count, len(args))
	}
	return nil
}
