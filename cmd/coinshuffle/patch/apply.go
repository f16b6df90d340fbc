// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package patch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/coinshuffle/coinshuffle/cmd/coinshuffle/cli"
	"github.com/coinshuffle/coinshuffle/lib/ips"
	"github.com/coinshuffle/coinshuffle/lib/resource"
	"github.com/coinshuffle/coinshuffle/lib/rom"
)

type applyParams struct {
	Output    string `json:"output"    flag:"output,o" desc:"output path (default: <image>-patched<ext>)"`
	Checksums bool   `json:"checksums" flag:"checksums" desc:"rewrite the header checksums after patching"`
}

func applyCommand() *cli.Command {
	var params applyParams

	return &cli.Command{
		Name:    "apply",
		Summary: "Apply an IPS patch to an image",
		Description: `Apply an IPS patch file to any image. Compressed patches (.zst, .lz4)
are decompressed first. No validity check is made on the image, and the
checksums are left as the patch wrote them unless --checksums is given.`,
		Usage: "coinshuffle patch apply <image> <patch> [flags]",
		Args:  cli.Exactly(2),
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("apply", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			imagePath, patchPath := args[0], args[1]

			base, err := cli.ReadImage(imagePath)
			if err != nil {
				return err
			}
			stored, err := os.ReadFile(patchPath)
			if err != nil {
				return fmt.Errorf("reading patch: %w", err)
			}
			diff, err := resource.Decompress(stored, resource.EncodingOf(patchPath))
			if err != nil {
				return fmt.Errorf("decoding %s: %w", patchPath, err)
			}

			patched, err := ips.Apply(base, diff)
			if err != nil {
				return fmt.Errorf("applying %s: %w", patchPath, err)
			}
			if params.Checksums {
				if len(patched) <= rom.GlobalChecksumOffset+1 {
					return fmt.Errorf("patched image is %d bytes, too short for a cartridge header", len(patched))
				}
				rom.Finalize(patched)
			}

			outputPath := params.Output
			if outputPath == "" {
				outputPath = patchedName(imagePath)
			}
			if err := os.WriteFile(outputPath, patched, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}

			logger.Info("patch applied",
				"patch", patchPath,
				"output", outputPath,
				"input_bytes", len(base),
				"output_bytes", len(patched),
			)
			fmt.Fprintln(cli.Stdout, outputPath)
			return nil
		},
	}
}

// patchedName inserts "-patched" before the extension.
func patchedName(path string) string {
	extension := filepath.Ext(path)
	return strings.TrimSuffix(path, extension) + "-patched" + extension
}
