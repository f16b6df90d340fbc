// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete coinshuffle command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coinshuffle/coinshuffle/cmd/coinshuffle/cli"
	featurescmd "github.com/coinshuffle/coinshuffle/cmd/coinshuffle/features"
	infocmd "github.com/coinshuffle/coinshuffle/cmd/coinshuffle/info"
	patchcmd "github.com/coinshuffle/coinshuffle/cmd/coinshuffle/patch"
	randomizecmd "github.com/coinshuffle/coinshuffle/cmd/coinshuffle/randomize"
	recordcmd "github.com/coinshuffle/coinshuffle/cmd/coinshuffle/record"
	"github.com/coinshuffle/coinshuffle/lib/version"
)

// Root builds and returns the complete command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "coinshuffle",
		Description: `Coinshuffle: deterministic cartridge randomizer.

Applies the bundled patch for the image's revision, then rewrites level
order, bosses, enemies, physics, music and more from a 32-bit seed and a
24-bit feature mask. The same image, seed and mask always produce the
same output.`,
		Subcommands: []*cli.Command{
			randomizecmd.Command(),
			infocmd.Command(),
			featurescmd.Command(),
			patchcmd.Command(),
			recordcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Args:    cli.NoArgs,
				Run: func(_ context.Context, _ []string, _ *slog.Logger) error {
					fmt.Fprintf(cli.Stdout, "coinshuffle %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Check that an image is supported",
				Command:     "coinshuffle info land2.gb",
			},
			{
				Description: "Shuffle levels and bosses with a fixed seed",
				Command:     "coinshuffle randomize land2.gb --seed 1A2B3C4D --feature locations --feature boss-locations",
			},
			{
				Description: "Randomize with a preset file",
				Command:     "coinshuffle randomize land2.gb --preset race.jsonc",
			},
			{
				Description: "Show which features a mask enables",
				Command:     "coinshuffle features normalize 7FFFFF",
			},
		},
	}
}
