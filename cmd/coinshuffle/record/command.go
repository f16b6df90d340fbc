// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package record implements the "coinshuffle record" command group for
// reading and checking CBOR run records.
package record

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/coinshuffle/coinshuffle/cmd/coinshuffle/cli"
	"github.com/coinshuffle/coinshuffle/lib/record"
)

// Command returns the "record" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "record",
		Summary: "Inspect, verify and replay run records",
		Description: `A run record is written by 'coinshuffle randomize --record'. It is a
CBOR sequence (one item per run) holding the seed, the normalized mask,
the passes that ran, the patch that was applied, and BLAKE3 fingerprints
of the input and output images.`,
		Subcommands: []*cli.Command{
			showCommand(),
			verifyCommand(),
			replayCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Show a record as CBOR diagnostic notation",
				Command:     "coinshuffle record show land2-1A2B3C4D-000001.cbor",
			},
			{
				Description: "Check that an image is the output a record describes",
				Command:     "coinshuffle record verify land2-1A2B3C4D-000001.cbor land2-1A2B3C4D-000001.gb",
			},
			{
				Description: "Regenerate an output from the original image",
				Command:     "coinshuffle record replay land2-1A2B3C4D-000001.cbor land2.gb -o copy.gb",
			},
		},
	}
}

type showParams struct {
	cli.JSONOutput
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Print a run record",
		Description: `Print every record in the file. By default the raw CBOR is shown in
diagnostic notation (RFC 8949 section 8), one run per line; --json
decodes and validates the records first.`,
		Usage: "coinshuffle record show <file> [flags]",
		Args:  cli.Exactly(1),
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if params.OutputJSON {
				records, err := record.ReadFile(args[0])
				if err != nil {
					return err
				}
				_, err = params.EmitJSON(records)
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading record: %w", err)
			}
			notation, err := record.Diagnose(data)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			fmt.Fprintln(cli.Stdout, notation)
			return nil
		},
	}
}

// Match results for verify.
const (
	matchOutput = "output"
	matchInput  = "input"
	matchNone   = "none"
)

type verifyResult struct {
	Index int    `json:"index"`
	Seed  string `json:"seed"`
	Mask  string `json:"mask"`
	Match string `json:"match"`
}

type verifyParams struct {
	cli.JSONOutput
}

func verifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Check an image against a run record",
		Description: `Report, for each record in the file, whether the image is that run's
output or its input. Exits with status 1 if no record matches.`,
		Usage: "coinshuffle record verify <record> <image> [flags]",
		Args:  cli.Exactly(2),
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("verify", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			records, err := record.ReadFile(args[0])
			if err != nil {
				return err
			}
			image, err := cli.ReadImage(args[1])
			if err != nil {
				return err
			}

			results := make([]verifyResult, len(records))
			matched := false
			for index, runRecord := range records {
				result := verifyResult{
					Index: index,
					Seed:  runRecord.SeedHex(),
					Mask:  runRecord.FeatureMask().Hex(),
					Match: matchNone,
				}
				switch {
				case runRecord.MatchesOutput(image):
					result.Match = matchOutput
				case runRecord.MatchesInput(image):
					result.Match = matchInput
				}
				matched = matched || result.Match != matchNone
				results[index] = result
			}

			if done, err := params.EmitJSON(results); done {
				if err == nil && !matched {
					return &cli.ExitError{Code: 1}
				}
				return err
			}

			theme := cli.NewTheme(cli.Stdout)
			for _, result := range results {
				var verdict string
				switch result.Match {
				case matchOutput:
					verdict = theme.Status(true, "image is this run's output")
				case matchInput:
					verdict = theme.Status(true, "image is this run's input")
				default:
					verdict = theme.Status(false, "no match")
				}
				fmt.Fprintf(cli.Stdout, "#%d  seed %s  mask %s  %s\n", result.Index, result.Seed, result.Mask, verdict)
			}
			if !matched {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}
