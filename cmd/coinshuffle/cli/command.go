// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node of the command tree. A node either dispatches to
// Subcommands or does work in Run; when it has both, Run handles input
// that names no subcommand.
type Command struct {
	Name string

	// Summary is the line shown next to the name in the parent's
	// command listing.
	Summary string

	// Description replaces Summary at the top of the command's own help.
	Description string

	// Usage is the synopsis line, e.g. "coinshuffle info <image> [flags]".
	// Commands that leave it empty get one built from their path.
	Usage string

	// Args bounds the positional arguments left after flag parsing.
	// The zero value accepts any number.
	Args Arity

	Examples []Example

	// Flags builds the command's flag set. It is called once per parse
	// and once per help request, so it must return a fresh set.
	Flags func() *pflag.FlagSet

	Subcommands []*Command

	Run func(ctx context.Context, args []string, logger *slog.Logger) error

	parent *Command
}

// Example is one entry of the Examples help section.
type Example struct {
	Description string
	Command     string
}

// Arity is a range of positional argument counts.
type Arity struct {
	min, max int
	bounded  bool
}

// NoArgs rejects any positional argument.
var NoArgs = Exactly(0)

// Exactly accepts n positional arguments.
func Exactly(n int) Arity {
	return Arity{min: n, max: n, bounded: true}
}

// Between accepts from low to high positional arguments inclusive.
func Between(low, high int) Arity {
	return Arity{min: low, max: high, bounded: true}
}

// check returns nil if count is within the range.
func (a Arity) check(count int) error {
	if !a.bounded || (count >= a.min && count <= a.max) {
		return nil
	}
	return fmt.Errorf("expected %s, got %d", a, count)
}

func (a Arity) String() string {
	switch {
	case !a.bounded:
		return "any number of arguments"
	case a.min == a.max && a.min == 0:
		return "no arguments"
	case a.min == a.max:
		return plural(a.min, "argument")
	default:
		return fmt.Sprintf("%d to %d arguments", a.min, a.max)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Execute walks args down the tree to the command they name, parses
// that command's flags, checks its argument count and runs it.
func (c *Command) Execute(ctx context.Context, args []string, logger *slog.Logger) error {
	target := c
	for {
		if len(args) > 0 && isHelpFlag(args[0]) {
			target.PrintHelp(os.Stderr)
			return nil
		}
		if len(target.Subcommands) == 0 || len(args) == 0 || strings.HasPrefix(args[0], "-") {
			break
		}
		next := target.subcommand(args[0])
		if next == nil {
			return target.unknownCommand(args[0])
		}
		next.parent = target
		target, args = next, args[1:]
	}

	if target.Run == nil {
		target.PrintHelp(os.Stderr)
		if len(target.Subcommands) == 0 {
			return fmt.Errorf("no action defined for %q", target.fullName())
		}
		if len(args) == 0 {
			return fmt.Errorf("subcommand required")
		}
		return fmt.Errorf("subcommand required (got flag %q)", args[0])
	}

	positional, err := target.parseFlags(args)
	if err != nil {
		return err
	}
	if err := target.Args.check(len(positional)); err != nil {
		return fmt.Errorf("%s: %w\n\nusage: %s", target.fullName(), err, target.usage())
	}
	return target.Run(ctx, positional, logger)
}

func (c *Command) subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

func (c *Command) unknownCommand(name string) error {
	hint := ""
	if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
		hint = fmt.Sprintf(" (did you mean %q?)", suggestion)
	}
	return fmt.Errorf("unknown command %q%s\n\nRun '%s --help' for usage.", name, hint, c.fullName())
}

// parseFlags returns the positional arguments left after flags.
func (c *Command) parseFlags(args []string) ([]string, error) {
	if c.Flags == nil {
		return args, nil
	}
	flagSet := c.Flags()
	flagSet.SetOutput(io.Discard)
	err := flagSet.Parse(args)
	if err == nil {
		return flagSet.Args(), nil
	}

	message := err.Error()
	if strings.Contains(message, "unknown flag") || strings.Contains(message, "unknown shorthand flag") {
		// The failed parse leaves the set half-populated; suggest from a
		// fresh one.
		if suggestion := suggestFlag(args, c.Flags()); suggestion != "" {
			message += fmt.Sprintf(" (did you mean %s?)", suggestion)
		}
	}
	return nil, fmt.Errorf("%s\n\nRun '%s --help' for usage.", message, c.fullName())
}

// usage is Usage, or a synopsis built from the command's shape.
func (c *Command) usage() string {
	switch {
	case c.Usage != "":
		return c.Usage
	case len(c.Subcommands) > 0:
		return c.fullName() + " <command> [flags]"
	default:
		return c.fullName() + " [flags]"
	}
}

// PrintHelp writes the command's help page to w.
func (c *Command) PrintHelp(w io.Writer) {
	heading := c.Description
	if heading == "" {
		heading = c.Summary
	}
	if heading != "" {
		fmt.Fprintf(w, "%s\n\n", heading)
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", c.usage())

	if len(c.Subcommands) > 0 {
		fmt.Fprint(w, "\nCommands:\n")
		table := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(table, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		table.Flush()
	}

	if c.Flags != nil {
		var defaults strings.Builder
		flagSet := c.Flags()
		flagSet.SetOutput(&defaults)
		flagSet.PrintDefaults()
		if defaults.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", defaults.String())
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprint(w, "\nExamples:\n")
		for _, example := range c.Examples {
			if example.Description == "" {
				fmt.Fprintf(w, "  %s\n", example.Command)
				continue
			}
			fmt.Fprintf(w, "  # %s\n  %s\n\n", example.Description, example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", c.fullName())
	}
}

// fullName is the command path from the root, e.g. "coinshuffle info".
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
