// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argspec renders config files from argument specs, shows the help
// of the parser a spec describes, and parses command lines against a spec.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/shayne/yargs"
	"github.com/yeetrun/argspec/pkg/argparse"
	"github.com/yeetrun/argspec/pkg/argspec"
	"github.com/yeetrun/argspec/pkg/cfgfile"
	"github.com/yeetrun/argspec/pkg/cli"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	isTerminalFn = term.IsTerminal
	getSizeFn    = term.GetSize
)

type globalFlagsParsed struct {
	NoColor bool `flag:"no-color" help:"Disable colored output"`
}

func parseGlobalFlags(args []string) (globalFlagsParsed, []string, error) {
	result, err := yargs.ParseKnownFlags[globalFlagsParsed](args, yargs.KnownFlagsOptions{})
	if err != nil {
		return globalFlagsParsed{}, nil, err
	}
	return result.Flags, result.RemainingArgs, nil
}

func warnf(format string, args ...any) {
	msg := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintln(stderr, color.New(color.FgYellow).Sprint(msg))
}

func printCLIError(w io.Writer, err error) {
	if err == nil || errors.Is(err, yargs.ErrShown) {
		return
	}
	fmt.Fprintf(w, "%s %v\n", color.RedString("error:"), err)
}

func main() {
	globalFlags, args, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		printCLIError(os.Stderr, err)
		os.Exit(2)
	}
	if globalFlags.NoColor {
		color.NoColor = true
	}
	argparse.Logf = warnf
	cfgfile.Logf = warnf

	handlers := map[string]yargs.SubcommandHandler{
		cli.CommandConfig: handleConfig,
		cli.CommandUsage:  handleUsage,
		cli.CommandParse:  handleParse,
		cli.CommandTypes:  handleTypes,
	}
	if err := yargs.RunSubcommandsWithGroups(context.Background(), args, buildHelpConfig(), globalFlagsParsed{}, handlers, nil); err != nil {
		printCLIError(os.Stderr, err)
		os.Exit(1)
	}
}

func buildHelpConfig() yargs.HelpConfig {
	subcommands := make(map[string]yargs.SubCommandInfo)
	for name, info := range cli.CommandInfos() {
		subcommands[name] = cli.ToSubCommandInfo(name, info)
	}
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        "argspec",
			Description: "Build argument parsers and config files from declarative argument specs.",
			Examples: []string{
				"argspec config ./greeter.yml > greeter.cfg",
				"argspec usage ./greeter.yml",
				"argspec parse ./greeter.yml --config greeter.cfg -- --times 2 hello",
			},
		},
		SubCommands: subcommands,
	}
}

// specName derives a section or program name from a spec path.
func specName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func handleConfig(ctx context.Context, args []string) error {
	flags, paths, err := cli.ParseConfig(cli.StripCommand(cli.CommandConfig, args))
	if err != nil {
		return err
	}
	if err := cli.RequireArgsAtLeast(cli.CommandConfig, paths, 1); err != nil {
		return err
	}
	if len(paths) > 1 && (flags.Name != "" || flags.Output != "") {
		return fmt.Errorf("--name and --output take a single spec; use --output-dir for %d specs", len(paths))
	}

	rendered := make([]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := argspec.LoadFile(path)
			if err != nil {
				return err
			}
			name := flags.Name
			if name == "" {
				name = specName(path)
			}
			switch {
			case flags.OutputDir != "":
				return cfgfile.WriteFile(filepath.Join(flags.OutputDir, name+".cfg"), name, s, flags.Description)
			case flags.Output != "":
				return cfgfile.WriteFile(flags.Output, name, s, flags.Description)
			}
			text, err := cfgfile.Render(name, s, flags.Description)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			rendered[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, text := range rendered {
		if text == "" {
			continue
		}
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fmt.Fprint(stdout, text)
	}
	return nil
}

// buildParser loads the spec at path and builds its parser.
func buildParser(path, name, description string) (*argparse.Parser, error) {
	s, err := argspec.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = specName(path)
	}
	p, err := argparse.Build(name, s, description)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !isTerminalFn(fd) {
		return 0
	}
	cols, _, err := getSizeFn(fd)
	if err != nil {
		return 0
	}
	return cols - 2
}

func handleUsage(_ context.Context, args []string) error {
	flags, paths, err := cli.ParseUsage(cli.StripCommand(cli.CommandUsage, args))
	if err != nil {
		return err
	}
	if len(paths) != 1 {
		return fmt.Errorf("'%s' takes exactly one spec, got %d", cli.CommandUsage, len(paths))
	}
	p, err := buildParser(paths[0], flags.Name, flags.Description)
	if err != nil {
		return err
	}
	width := flags.Width
	if width == 0 {
		width = terminalWidth()
	}
	p.SetWidth(width)
	fmt.Fprint(stdout, p.Help())
	return nil
}

func handleParse(_ context.Context, args []string) error {
	flags, path, tokens, err := cli.ParseParse(cli.StripCommand(cli.CommandParse, args))
	if err != nil {
		return err
	}
	p, err := buildParser(path, flags.Name, flags.Description)
	if err != nil {
		return err
	}
	if flags.Config != "" {
		cfg, err := cfgfile.Load(flags.Config)
		if err != nil {
			return err
		}
		if err := cfgfile.ApplyDefaults(p, cfg); err != nil {
			return err
		}
	}
	ns, err := p.Parse(tokens)
	if errors.Is(err, argparse.ErrHelp) {
		fmt.Fprint(stdout, p.Help())
		return nil
	}
	if err != nil {
		fmt.Fprint(stderr, p.Usage())
		return fmt.Errorf("%s: %w", p.Prog(), err)
	}
	fmt.Fprint(stdout, ns.Format())
	return nil
}

func handleTypes(_ context.Context, _ []string) error {
	for _, name := range argparse.TypeNames() {
		fmt.Fprintln(stdout, name)
	}
	return nil
}
