// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func execute(command *Command, args ...string) error {
	return command.Execute(context.Background(), args, discardLogger)
}

func recordCall(name string, called *string) func(context.Context, []string, *slog.Logger) error {
	return func(context.Context, []string, *slog.Logger) error {
		*called = name
		return nil
	}
}

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string
	root := &Command{
		Name: "coinshuffle",
		Subcommands: []*Command{
			{Name: "version", Run: recordCall("version", &called)},
			{Name: "info", Run: recordCall("info", &called)},
		},
	}

	if err := execute(root, "info"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "info" {
		t.Errorf("dispatched to %q, want %q", called, "info")
	}
}

func TestCommand_Execute_PassesContextAndLogger(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")

	var gotValue any
	var gotLogger *slog.Logger
	root := &Command{
		Name: "coinshuffle",
		Subcommands: []*Command{{
			Name: "features",
			Subcommands: []*Command{{
				Name: "list",
				Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
					gotValue = ctx.Value(key{})
					gotLogger = logger
					return nil
				},
			}},
		}},
	}

	if err := root.Execute(ctx, []string{"features", "list"}, discardLogger); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if gotValue != "marker" || gotLogger != discardLogger {
		t.Errorf("context value %v, logger %p; want marker, %p", gotValue, gotLogger, discardLogger)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var preset string
	var image string

	command := &Command{
		Name: "randomize",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("randomize", pflag.ContinueOnError)
			flagSet.StringVar(&preset, "preset", "", "preset file")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				image = args[0]
			}
			return nil
		},
	}

	if err := execute(command, "--preset", "race.jsonc", "land2.gb"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if preset != "race.jsonc" {
		t.Errorf("preset = %q, want %q", preset, "race.jsonc")
	}
	if image != "land2.gb" {
		t.Errorf("image = %q, want %q", image, "land2.gb")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "randomize",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("randomize", pflag.ContinueOnError)
			flagSet.Bool("record", false, "write a run record")
			flagSet.String("preset", "", "preset file")
			return flagSet
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := execute(command, "--recrod")
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --record") {
		t.Errorf("error = %q, want suggestion for '--record'", errStr)
	}
	if !strings.Contains(errStr, "recrod") || !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should mention the bad flag and --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "randomize",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("randomize", pflag.ContinueOnError)
			flagSet.Bool("record", false, "write a run record")
			return flagSet
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := execute(command, "--zzzzzzzzz")
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "coinshuffle",
		Subcommands: []*Command{
			{Name: "randomize"},
			{Name: "features"},
			{Name: "version"},
		},
	}

	err := execute(root, "featrues")
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "features"`) {
		t.Errorf("error = %q, want suggestion for 'features'", err.Error())
	}

	err = execute(root, "zzzzzzz")
	if err == nil || strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %v, want no suggestion for distant input", err)
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			root := &Command{
				Name:        "coinshuffle",
				Summary:     "Cartridge randomizer",
				Subcommands: []*Command{{Name: "info", Summary: "Inspect an image"}},
			}
			if err := execute(root, helpArg); err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name:        "coinshuffle",
		Subcommands: []*Command{{Name: "info", Summary: "Inspect an image"}},
	}

	err := execute(root)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %v, want 'subcommand required'", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "coinshuffle",
		Description: "Deterministic cartridge randomizer.",
		Subcommands: []*Command{
			{Name: "randomize", Summary: "Randomize an image"},
			{Name: "info", Summary: "Inspect an image"},
		},
		Examples: []Example{
			{
				Description: "Shuffle level locations",
				Command:     "coinshuffle randomize land2.gb --features locations",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Deterministic cartridge randomizer.",
		"Usage:",
		"coinshuffle <command> [flags]",
		"Commands:",
		"randomize",
		"Inspect an image",
		"Examples:",
		"# Shuffle level locations",
		"coinshuffle randomize land2.gb --features locations",
		"Run 'coinshuffle <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "patch",
		Summary: "Apply an IPS patch",
		Usage:   "coinshuffle patch <image> <patch> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("patch", pflag.ContinueOnError)
			flagSet.String("output", "", "output path")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	for _, want := range []string{"coinshuffle patch <image> <patch> [flags]", "Flags:", "output"} {
		if !strings.Contains(buffer.String(), want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, buffer.String())
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "coinshuffle"}
	features := &Command{Name: "features", parent: root}
	normalize := &Command{Name: "normalize", parent: features}

	if got := normalize.fullName(); got != "coinshuffle features normalize" {
		t.Errorf("fullName() = %q", got)
	}
	if got := root.fullName(); got != "coinshuffle" {
		t.Errorf("root.fullName() = %q", got)
	}
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 3}
	coder, ok := err.(interface{ ExitCode() int })
	if !ok || coder.ExitCode() != 3 {
		t.Fatalf("ExitError does not report its code")
	}
	if err.Error() != "exit code 3" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestCommand_Execute_ArgumentCount(t *testing.T) {
	tests := []struct {
		name    string
		arity   Arity
		args    []string
		wantErr string
	}{
		{"unbounded accepts none", Arity{}, nil, ""},
		{"unbounded accepts many", Arity{}, []string{"a", "b", "c"}, ""},
		{"exact match", Exactly(2), []string{"run.cbor", "land2.gb"}, ""},
		{"exact too few", Exactly(2), []string{"run.cbor"}, "expected 2 arguments, got 1"},
		{"exact too many", Exactly(1), []string{"a", "b"}, "expected 1 argument, got 2"},
		{"none given one", NoArgs, []string{"extra"}, "expected no arguments, got 1"},
		{"range low end", Between(0, 1), nil, ""},
		{"range high end", Between(0, 1), []string{"000001"}, ""},
		{"range exceeded", Between(0, 1), []string{"1", "2"}, "expected 0 to 1 arguments, got 2"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ran := false
			root := &Command{
				Name: "coinshuffle",
				Subcommands: []*Command{{
					Name:  "verify",
					Usage: "coinshuffle verify <record> <image> [flags]",
					Args:  test.arity,
					Run: func(context.Context, []string, *slog.Logger) error {
						ran = true
						return nil
					},
				}},
			}

			err := execute(root, append([]string{"verify"}, test.args...)...)
			if test.wantErr == "" {
				if err != nil || !ran {
					t.Fatalf("Execute() = %v, ran %t; want success", err, ran)
				}
				return
			}
			if err == nil {
				t.Fatal("Execute() = nil, want argument count error")
			}
			if ran {
				t.Error("Run was called despite a bad argument count")
			}
			for _, want := range []string{"coinshuffle verify: ", test.wantErr, "usage: coinshuffle verify <record> <image> [flags]"} {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error = %q, want it to contain %q", err.Error(), want)
				}
			}
		})
	}
}

func TestCommand_Execute_ArgumentCountAfterFlags(t *testing.T) {
	var image string
	command := &Command{
		Name: "info",
		Args: Exactly(1),
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("info", pflag.ContinueOnError)
			flagSet.Bool("json", false, "JSON output")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			image = args[0]
			return nil
		},
	}

	if err := execute(command, "--json", "land2.gb"); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if image != "land2.gb" {
		t.Errorf("image = %q, want %q", image, "land2.gb")
	}

	err := execute(command, "--json")
	if err == nil || !strings.Contains(err.Error(), "usage: info [flags]") {
		t.Errorf("error = %v, want a synthesized usage line", err)
	}
}
