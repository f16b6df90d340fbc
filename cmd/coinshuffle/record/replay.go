// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/coinshuffle/coinshuffle/cmd/coinshuffle/cli"
	"github.com/coinshuffle/coinshuffle/lib/digest"
	"github.com/coinshuffle/coinshuffle/lib/randomizer"
	"github.com/coinshuffle/coinshuffle/lib/record"
	"github.com/coinshuffle/coinshuffle/lib/version"
)

type replayParams struct {
	cli.ResourceFlags
	Index  int    `json:"index"  flag:"index,i"  desc:"record to replay, counted from 0 (default: the last)" default:"-1"`
	Output string `json:"output" flag:"output,o" desc:"write the regenerated image here"`
	Verify bool   `json:"verify" flag:"verify"   desc:"require patches to match the resource manifest"`
}

func replayCommand() *cli.Command {
	var params replayParams

	return &cli.Command{
		Name:    "replay",
		Summary: "Regenerate a recorded run and compare fingerprints",
		Description: `Run the randomizer again with a record's seed and mask over the given
input image, and check that the result has the recorded output
fingerprint. The input must be the image the record was made from.

A mismatch means the patch resources or the randomizer build differ
from the ones that made the record; the record's tool field names the
build that made it.`,
		Usage: "coinshuffle record replay <record> <image> [flags]",
		Args:  cli.Exactly(2),
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("replay", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			records, err := record.ReadFile(args[0])
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("%s holds no records", args[0])
			}
			index := params.Index
			if index < 0 {
				index = len(records) - 1
			}
			if index >= len(records) {
				return fmt.Errorf("record index %d out of range: %s holds %d", index, args[0], len(records))
			}
			runRecord := records[index]

			input, err := cli.ReadImage(args[1])
			if err != nil {
				return err
			}
			if !runRecord.MatchesInput(input) {
				return fmt.Errorf("%s is not the input of record %d (fingerprint %s, recorded %s)",
					args[1], index, digest.Sum(digest.Input, input).Short(), runRecord.Input.Short())
			}

			_, store, err := params.Open(params.Verify, logger)
			if err != nil {
				return err
			}
			r := randomizer.New(input, runRecord.FeatureMask(), runRecord.Seed, randomizer.WithLogger(logger))
			output, err := r.Randomize(ctx, store)
			if err != nil {
				return err
			}

			if params.Output != "" {
				if err := os.WriteFile(params.Output, output, 0o644); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			}

			theme := cli.NewTheme(cli.Stdout)
			if !runRecord.MatchesOutput(output) {
				fmt.Fprintln(cli.Stdout, theme.Status(false, fmt.Sprintf(
					"replay of record %d differs: got %s, recorded %s",
					index, digest.Sum(digest.Output, output).Short(), runRecord.Output.Short())))
				if runRecord.Tool != version.Tool() {
					fmt.Fprintln(cli.Stdout, theme.Faint(fmt.Sprintf(
						"recorded by %q, this is %q", runRecord.Tool, version.Tool())))
				}
				return &cli.ExitError{Code: 1}
			}
			fmt.Fprintln(cli.Stdout, theme.Status(true, fmt.Sprintf(
				"replay of record %d matches (seed %s, mask %s)",
				index, runRecord.SeedHex(), runRecord.FeatureMask().Hex())))
			return nil
		},
	}
}
