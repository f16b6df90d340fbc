// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package features implements the "coinshuffle features" command group.
package features

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/coinshuffle/coinshuffle/cmd/coinshuffle/cli"
	"github.com/coinshuffle/coinshuffle/lib/feature"
)

// Command returns the "features" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "features",
		Summary: "List features and work with feature masks",
		Description: `A feature mask is 24 bits, written as six hex digits. Each bit enables
one randomization pass or modifies another. Masks are normalized before
use: include-hidden implies locations, and the "all" variants of exit
swapping, fast scrolling and Luigi physics win over the random ones.`,
		Subcommands: []*cli.Command{
			listCommand(),
			normalizeCommand(),
			presetCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Show every feature bit",
				Command:     "coinshuffle features list",
			},
			{
				Description: "See what a mask from a friend's run enables",
				Command:     "coinshuffle features normalize 0C0013",
			},
			{
				Description: "Start a preset file from a mask",
				Command:     "coinshuffle features preset 0C0013 > race.jsonc",
			},
		},
	}
}

type featureEntry struct {
	Bit  int    `json:"bit"`
	Hex  string `json:"hex"`
	Name string `json:"name"`
}

type listParams struct {
	cli.JSONOutput
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List every feature bit and its name",
		Usage:   "coinshuffle features list [flags]",
		Args:    cli.NoArgs,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
			entries := make([]featureEntry, 0, feature.Width)
			for index, name := range feature.Bits {
				entries = append(entries, featureEntry{
					Bit:  index,
					Hex:  feature.Mask(0).With(feature.Bit(index)).Hex(),
					Name: name,
				})
			}
			if done, err := params.EmitJSON(entries); done {
				return err
			}

			tw := tabwriter.NewWriter(cli.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "BIT\tMASK\tNAME")
			for _, entry := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", entry.Bit, entry.Hex, entry.Name)
			}
			return tw.Flush()
		},
	}
}

type maskReport struct {
	Input    string   `json:"input"`
	Mask     string   `json:"mask"`
	Features []string `json:"features"`
}

type normalizeParams struct {
	cli.JSONOutput
	Preset string `json:"preset" flag:"preset,p" desc:"read the mask from a JSONC preset instead"`
}

func normalizeCommand() *cli.Command {
	var params normalizeParams

	return &cli.Command{
		Name:    "normalize",
		Summary: "Normalize a mask and list the features it enables",
		Usage:   "coinshuffle features normalize <mask> [flags]",
		Args:    cli.Between(0, 1),
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("normalize", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			input, mask, err := maskFromArgs(args, params.Preset)
			if err != nil {
				return err
			}
			report := maskReport{Input: input, Mask: mask.Hex(), Features: mask.Names()}
			if done, err := params.EmitJSON(report); done {
				return err
			}

			theme := cli.NewTheme(cli.Stdout)
			fmt.Fprintln(cli.Stdout, theme.Field("Mask", report.Mask))
			fmt.Fprintln(cli.Stdout, theme.Field("Features", mask.String()))
			return nil
		},
	}
}

type presetParams struct {
	All bool `json:"all" flag:"all,a" desc:"include disabled features as false"`
}

func presetCommand() *cli.Command {
	var params presetParams

	return &cli.Command{
		Name:    "preset",
		Summary: "Print a JSONC preset for a mask",
		Description: `Print a preset file that enables the features of the given mask. The
output can be edited and passed back with 'coinshuffle randomize
--preset'.`,
		Usage: "coinshuffle features preset <mask> [flags]",
		Args:  cli.Exactly(1),
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("preset", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			input, mask, err := maskFromArgs(args, "")
			if err != nil {
				return err
			}

			toggles := mask.Toggles()
			fmt.Fprintf(cli.Stdout, "// coinshuffle feature preset, mask %s\n", input)
			fmt.Fprintln(cli.Stdout, "{")
			for index, name := range feature.Bits {
				if feature.Bit(index) == feature.Reserved || (!params.All && !toggles[name]) {
					continue
				}
				fmt.Fprintf(cli.Stdout, "    %q: %t,\n", name, toggles[name])
			}
			fmt.Fprintln(cli.Stdout, "}")
			return nil
		},
	}
}

// maskFromArgs reads a mask from the single positional argument or,
// when preset is set, from that file.
func maskFromArgs(args []string, preset string) (string, feature.Mask, error) {
	if preset != "" {
		if len(args) != 0 {
			return "", 0, fmt.Errorf("give either a mask or --preset, not both")
		}
		mask, err := feature.LoadPreset(preset)
		if err != nil {
			return "", 0, err
		}
		return preset, mask, nil
	}
	if len(args) != 1 {
		return "", 0, fmt.Errorf("expected exactly one mask argument")
	}
	mask, err := feature.ParseHex(args[0])
	if err != nil {
		return "", 0, err
	}
	return args[0], mask, nil
}
