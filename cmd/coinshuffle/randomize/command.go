// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package randomize implements the "coinshuffle randomize" command.
package randomize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/coinshuffle/coinshuffle/cmd/coinshuffle/cli"
	"github.com/coinshuffle/coinshuffle/lib/config"
	"github.com/coinshuffle/coinshuffle/lib/digest"
	"github.com/coinshuffle/coinshuffle/lib/feature"
	"github.com/coinshuffle/coinshuffle/lib/randomizer"
	"github.com/coinshuffle/coinshuffle/lib/record"
	"github.com/coinshuffle/coinshuffle/lib/version"
)

type randomizeParams struct {
	cli.JSONOutput
	cli.ResourceFlags
	Seed     uint32   `json:"seed"           flag:"seed,s"         desc:"seed in hex, 10000000 to FFFFFFFF (default: random)"`
	Mask     string   `json:"mask"           flag:"mask,m"         desc:"feature mask in hex; overrides --preset"`
	Preset   string   `json:"preset"         flag:"preset,p"       desc:"JSONC feature preset (default: the configured preset)"`
	Features []string `json:"features"       flag:"feature,f"      desc:"enable a feature by name (repeatable)"`
	Output   string   `json:"output"         flag:"output,o"       desc:"output path (default: from output.name_template)"`
	Verify   bool     `json:"verify"         flag:"verify"         desc:"require patches to match the resource manifest"`
	Record   bool     `json:"record"         flag:"record"         desc:"append a CBOR run record next to the output"`
	Replace  bool     `json:"replace_record" flag:"replace-record" desc:"start a new run record instead of appending (implies --record)"`
}

type randomizeResult struct {
	Input    string        `json:"input"`
	Output   string        `json:"output"`
	Seed     string        `json:"seed"`
	Mask     string        `json:"mask"`
	Features []string      `json:"features"`
	Version  string        `json:"version"`
	Patch    string        `json:"patch"`
	Digest   digest.Digest `json:"digest"`
	Record   string        `json:"record,omitempty"`
}

// Command returns the "randomize" command.
func Command() *cli.Command {
	var params randomizeParams

	return &cli.Command{
		Name:    "randomize",
		Summary: "Randomize a cartridge image",
		Description: `Apply the patch for the image's revision and run every enabled
randomization pass, then write the result with fresh checksums.

The feature mask comes from --mask if given, otherwise from --preset or
the configured preset. Each --feature adds one named feature on top.
Run 'coinshuffle features list' for the names. Without --seed a random
seed is drawn and reported, so the run can be repeated.

The output is named from output.name_template in the configuration
unless --output is given. With --record (or output.record), a CBOR run
record describing the seed, mask and image fingerprints is appended to
a .cbor file next to the output. --replace-record discards the earlier
runs in that file and keeps only this one.`,
		Usage: "coinshuffle randomize <image> [flags]",
		Args:  cli.Exactly(1),
		Examples: []cli.Example{
			{
				Description: "Shuffle levels with a random seed",
				Command:     "coinshuffle randomize land2.gb --feature locations",
			},
			{
				Description: "Reproduce a run",
				Command:     "coinshuffle randomize land2.gb --seed 1A2B3C4D --mask 0003FF",
			},
			{
				Description: "Use a preset and keep a record",
				Command:     "coinshuffle randomize land2.gb --preset race.jsonc --record",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("randomize", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			return run(ctx, args[0], &params, logger)
		},
	}
}

func run(ctx context.Context, inputPath string, params *randomizeParams, logger *slog.Logger) error {
	if params.Seed != 0 && params.Seed < randomizer.SeedMin {
		return fmt.Errorf("seed %X is out of range: must be between %X and %X",
			params.Seed, uint32(randomizer.SeedMin), uint32(randomizer.SeedMax))
	}

	cfg, err := cli.LoadConfig(params.Config)
	if err != nil {
		return err
	}

	mask, err := resolveMask(params, cfg)
	if err != nil {
		return err
	}
	if mask == 0 {
		logger.Warn("no features enabled; only the revision patch will be applied")
	}

	input, err := cli.ReadImage(inputPath)
	if err != nil {
		return err
	}
	r := randomizer.New(input, mask, params.Seed, randomizer.WithLogger(logger))
	if !r.Valid() {
		return fmt.Errorf("%s is not a supported image (run 'coinshuffle info %s' for details)", inputPath, inputPath)
	}

	store, err := cli.OpenStore(cfg, params.Resources, params.Verify, logger)
	if err != nil {
		return err
	}

	output, err := r.Randomize(ctx, store)
	if err != nil {
		return err
	}

	outputPath := params.Output
	if outputPath == "" {
		if err := cfg.EnsureOutput(); err != nil {
			return err
		}
		outputPath = cfg.Output.Path(inputPath, r.SeedHex(), r.MaskHex())
	}
	if err := os.WriteFile(outputPath, output, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	result := randomizeResult{
		Input:    inputPath,
		Output:   outputPath,
		Seed:     r.SeedHex(),
		Mask:     r.MaskHex(),
		Features: r.Mask().Names(),
		Version:  r.Version(),
		Patch:    r.PatchName(),
		Digest:   digest.Sum(digest.Output, output),
	}

	if params.Record || params.Replace || cfg.Output.Record {
		runRecord := record.New(r, input, output, version.Tool())
		runRecord.OutputName = filepath.Base(outputPath)
		result.Record = recordPath(outputPath)
		save := record.Append
		if params.Replace {
			save = record.Write
		}
		if err := save(result.Record, runRecord); err != nil {
			return err
		}
	}

	logger.Info("image randomized",
		"output", outputPath,
		"seed", result.Seed,
		"mask", result.Mask,
		"patch", result.Patch,
	)

	if done, err := params.EmitJSON(result); done {
		return err
	}

	theme := cli.NewTheme(cli.Stdout)
	fmt.Fprintln(cli.Stdout, theme.Heading("Randomized "+filepath.Base(inputPath)))
	fmt.Fprintln(cli.Stdout, theme.Field("Output", result.Output))
	fmt.Fprintln(cli.Stdout, theme.Field("Seed", result.Seed))
	fmt.Fprintln(cli.Stdout, theme.Field("Mask", result.Mask))
	fmt.Fprintln(cli.Stdout, theme.Field("Features", r.Mask().String()))
	fmt.Fprintln(cli.Stdout, theme.Field("Patch", result.Patch))
	fmt.Fprintln(cli.Stdout, theme.Field("Fingerprint", result.Digest.Short()))
	if result.Record != "" {
		fmt.Fprintln(cli.Stdout, theme.Field("Record", result.Record))
	}
	return nil
}

// resolveMask combines the mask sources. --mask wins over presets;
// --feature names are added on top of whichever base applies.
func resolveMask(params *randomizeParams, cfg *config.Config) (feature.Mask, error) {
	var mask feature.Mask
	var err error
	switch {
	case params.Mask != "":
		mask, err = feature.ParseHex(params.Mask)
	case params.Preset != "":
		mask, err = feature.LoadPreset(params.Preset)
	case cfg.Preset != "":
		mask, err = feature.LoadPreset(cfg.Preset)
	}
	if err != nil {
		return 0, err
	}

	var unknown []string
	for _, name := range params.Features {
		bit, ok := feature.Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		mask = mask.With(bit)
	}
	if len(unknown) > 0 {
		return 0, fmt.Errorf("unknown features: %s (run 'coinshuffle features list')", strings.Join(unknown, ", "))
	}
	return mask.Normalize(), nil
}

// recordPath is the run record file for an output image: the same
// path with a .cbor extension.
func recordPath(outputPath string) string {
	return strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".cbor"
}
