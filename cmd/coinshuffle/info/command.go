// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package info implements the "coinshuffle info" command.
package info

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/pflag"

	"github.com/coinshuffle/coinshuffle/cmd/coinshuffle/cli"
	"github.com/coinshuffle/coinshuffle/lib/digest"
	"github.com/coinshuffle/coinshuffle/lib/randomizer"
	"github.com/coinshuffle/coinshuffle/lib/rom"
)

// headerEnd is one past the last cartridge header byte. Anything
// shorter cannot be inspected.
const headerEnd = 0x150

type infoParams struct {
	cli.JSONOutput
	cli.ResourceFlags
}

type checksumReport struct {
	Stored   string `json:"stored"`
	Computed string `json:"computed"`
}

type infoReport struct {
	Path           string         `json:"path"`
	Size           int            `json:"size"`
	Supported      bool           `json:"supported"`
	Title          string         `json:"title,omitempty"`
	SizeClass      int            `json:"size_class"`
	Version        string         `json:"version,omitempty"`
	Extended       bool           `json:"extended"`
	HeaderChecksum checksumReport `json:"header_checksum"`
	GlobalChecksum checksumReport `json:"global_checksum"`
	ChecksumsValid bool           `json:"checksums_valid"`
	Fingerprint    digest.Digest  `json:"fingerprint"`
	Patch          string         `json:"patch,omitempty"`
	PatchAvailable bool           `json:"patch_available"`
	Problems       []string       `json:"problems"`
}

// Command returns the "info" command.
func Command() *cli.Command {
	var params infoParams

	return &cli.Command{
		Name:    "info",
		Summary: "Inspect a cartridge image",
		Description: `Report whether an image can be randomized, along with its revision,
size class, header checksums and fingerprint.

An image is supported when it has the standard length, the expected
title and the standard size class. The command also checks whether the
patch for the image's revision is present in the resource directory.

Exits with status 1 when the image is not supported.`,
		Usage: "coinshuffle info <image> [flags]",
		Args:  cli.Exactly(1),
		Examples: []cli.Example{
			{
				Description: "Check an image before randomizing",
				Command:     "coinshuffle info land2.gb",
			},
			{
				Description: "Compare a randomized output's fingerprint with its run record",
				Command:     "coinshuffle info --json land2-1A2B3C4D-000001.gb",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("info", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			image, err := cli.ReadImage(args[0])
			if err != nil {
				return err
			}

			report := inspect(args[0], image)
			if report.Supported {
				report.Patch = randomizer.PatchName(rom.Version(image), false)
				report.PatchAvailable = patchAvailable(&params, report.Patch, logger)
			}

			if done, err := params.EmitJSON(report); done {
				if err == nil && !report.Supported {
					return &cli.ExitError{Code: 1}
				}
				return err
			}
			printReport(report)
			if !report.Supported {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func inspect(path string, image []byte) infoReport {
	report := infoReport{
		Path:        path,
		Size:        len(image),
		Fingerprint: digest.Sum(digest.Input, image),
		Problems:    []string{},
	}
	if len(image) < headerEnd {
		report.Problems = append(report.Problems, fmt.Sprintf("image is %d bytes, too short for a cartridge header", len(image)))
		return report
	}

	title := image[rom.TitleOffset : rom.TitleOffset+len(rom.Title)]
	report.Title = string(bytes.TrimRight(title, "\x00"))
	report.SizeClass = int(image[rom.SizeClassOffset])
	report.Version = rom.VersionString(rom.Version(image))
	report.Extended = rom.Extended(image)

	stored := rom.Stored(image)
	computed := rom.Compute(image)
	report.HeaderChecksum = checksumReport{
		Stored:   fmt.Sprintf("%02X", stored.Header),
		Computed: fmt.Sprintf("%02X", computed.Header),
	}
	report.GlobalChecksum = checksumReport{
		Stored:   fmt.Sprintf("%04X", stored.Global),
		Computed: fmt.Sprintf("%04X", computed.Global),
	}
	report.ChecksumsValid = stored == computed

	report.Supported = rom.Valid(image)
	if report.Supported {
		return report
	}
	if report.Title != rom.Title {
		report.Problems = append(report.Problems, fmt.Sprintf("title is %q, want %q", report.Title, rom.Title))
	}
	if len(image) != rom.StandardSize {
		report.Problems = append(report.Problems, fmt.Sprintf("image is %#x bytes, want %#x", len(image), rom.StandardSize))
	}
	if image[rom.SizeClassOffset] != rom.SizeClassStandard {
		problem := fmt.Sprintf("size class is %#02x, want %#02x", image[rom.SizeClassOffset], rom.SizeClassStandard)
		if report.Extended {
			problem += " (already randomized with the extra variant?)"
		}
		report.Problems = append(report.Problems, problem)
	}
	return report
}

// patchAvailable reports whether the resource directory has a patch
// for name. Configuration or directory problems count as unavailable
// and are logged rather than failing the inspection.
func patchAvailable(params *infoParams, name string, logger *slog.Logger) bool {
	_, store, err := params.Open(false, logger)
	if err != nil {
		logger.Warn("cannot check patch resources", "error", err)
		return false
	}
	names, err := store.List()
	if err != nil {
		logger.Warn("cannot check patch resources", "error", err)
		return false
	}
	return slices.Contains(names, name)
}

func printReport(report infoReport) {
	theme := cli.NewTheme(cli.Stdout)
	out := cli.Stdout

	fmt.Fprintln(out, theme.Heading(report.Path))
	if report.Supported {
		fmt.Fprintln(out, theme.Field("Status", theme.Status(true, "supported")))
	} else {
		fmt.Fprintln(out, theme.Field("Status", theme.Status(false, "not supported")))
	}
	fmt.Fprintln(out, theme.Field("Size", fmt.Sprintf("%#x bytes", report.Size)))
	if report.Title != "" || report.Version != "" {
		fmt.Fprintln(out, theme.Field("Title", report.Title))
		fmt.Fprintln(out, theme.Field("Revision", report.Version))
		fmt.Fprintln(out, theme.Field("Size class", fmt.Sprintf("%#02x", report.SizeClass)))

		checksums := fmt.Sprintf("header %s, global %s",
			report.HeaderChecksum.Stored, report.GlobalChecksum.Stored)
		if report.ChecksumsValid {
			fmt.Fprintln(out, theme.Field("Checksums", checksums+" "+theme.Status(true, "ok")))
		} else {
			fmt.Fprintln(out, theme.Field("Checksums", checksums+" "+theme.Status(false, fmt.Sprintf(
				"mismatch (computed header %s, global %s)",
				report.HeaderChecksum.Computed, report.GlobalChecksum.Computed))))
		}
	}
	fmt.Fprintln(out, theme.Field("Fingerprint", report.Fingerprint.String()))
	if report.Patch != "" {
		availability := theme.Status(report.PatchAvailable, "available")
		if !report.PatchAvailable {
			availability = theme.Status(false, "missing")
		}
		fmt.Fprintln(out, theme.Field("Patch", report.Patch+" "+availability))
	}
	for _, problem := range report.Problems {
		fmt.Fprintln(out, theme.Faint("  - "+problem))
	}
}
