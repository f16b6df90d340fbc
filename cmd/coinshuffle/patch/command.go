// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package patch implements the "coinshuffle patch" command group: the
// patch engine on its own, and maintenance of the patch resource
// directory.
package patch

import (
	"github.com/coinshuffle/coinshuffle/cmd/coinshuffle/cli"
)

// Command returns the "patch" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "patch",
		Summary: "Apply IPS patches and manage patch resources",
		Description: `The randomizer starts every run by applying the IPS patch for the
input's revision. Patches live in the resource directory as
v1.N.ips (standard) and v1.N-dx.ips (extra variant), optionally
compressed as .ips.zst or .ips.lz4.

A manifest.yaml in the directory records the BLAKE3 digest of each
decompressed patch. With resources.verify (or --verify on randomize),
a patch that is missing from the manifest or does not match it is
rejected.`,
		Subcommands: []*cli.Command{
			applyCommand(),
			listCommand(),
			manifestCommand(),
			compressCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Apply a patch by hand",
				Command:     "coinshuffle patch apply land2.gb v1.0.ips -o patched.gb",
			},
			{
				Description: "Show the installed patches and their manifest status",
				Command:     "coinshuffle patch list",
			},
			{
				Description: "Record digests for every installed patch",
				Command:     "coinshuffle patch manifest",
			},
			{
				Description: "Store a patch compressed",
				Command:     "coinshuffle patch compress v1.0-dx.ips --encoding zstd",
			},
		},
	}
}
