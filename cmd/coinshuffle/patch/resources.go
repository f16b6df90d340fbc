// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package patch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/coinshuffle/coinshuffle/cmd/coinshuffle/cli"
	"github.com/coinshuffle/coinshuffle/lib/digest"
	"github.com/coinshuffle/coinshuffle/lib/resource"
)

// Manifest status of one installed patch.
const (
	statusVerified   = "verified"
	statusMismatch   = "mismatch"
	statusUnlisted   = "unlisted"
	statusNoManifest = "no manifest"
)

type patchEntry struct {
	Name   string        `json:"name"`
	Digest digest.Digest `json:"digest"`
	Status string        `json:"status"`
}

type listParams struct {
	cli.JSONOutput
	cli.ResourceFlags
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List installed patches and check them against the manifest",
		Usage:   "coinshuffle patch list [flags]",
		Args:    cli.NoArgs,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(ctx context.Context, _ []string, logger *slog.Logger) error {
			_, store, err := params.Open(false, logger)
			if err != nil {
				return err
			}
			current, err := store.BuildManifest(ctx)
			if err != nil {
				return err
			}
			entries := compare(current, store.Manifest())

			if done, err := params.EmitJSON(entries); done {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintf(cli.Stdout, "no patches in %s\n", store.Directory())
				return nil
			}
			theme := cli.NewTheme(cli.Stdout)
			tw := tabwriter.NewWriter(cli.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDIGEST\tSTATUS")
			for _, entry := range entries {
				status := entry.Status
				if status == statusVerified || status == statusMismatch {
					status = theme.Status(status == statusVerified, status)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.Name, entry.Digest.Short(), status)
			}
			return tw.Flush()
		},
	}
}

// compare pairs each installed patch with its manifest status.
func compare(current, recorded *resource.Manifest) []patchEntry {
	names := make([]string, 0, len(current.Patches))
	for name := range current.Patches {
		names = append(names, name)
	}
	slices.Sort(names)

	entries := make([]patchEntry, 0, len(names))
	for _, name := range names {
		entry := patchEntry{Name: name, Digest: current.Patches[name]}
		switch want, listed := lookup(recorded, name); {
		case recorded == nil:
			entry.Status = statusNoManifest
		case !listed:
			entry.Status = statusUnlisted
		case want == entry.Digest:
			entry.Status = statusVerified
		default:
			entry.Status = statusMismatch
		}
		entries = append(entries, entry)
	}
	return entries
}

func lookup(manifest *resource.Manifest, name string) (digest.Digest, bool) {
	if manifest == nil {
		return digest.Digest{}, false
	}
	sum, ok := manifest.Patches[name]
	return sum, ok
}

type manifestParams struct {
	cli.ResourceFlags
}

func manifestCommand() *cli.Command {
	var params manifestParams

	return &cli.Command{
		Name:    "manifest",
		Summary: "Write the resource manifest from the installed patches",
		Description: `Hash every patch in the resource directory and write manifest.yaml.
Run this after installing or replacing patches you trust; afterwards
verification rejects any patch that changes.`,
		Usage: "coinshuffle patch manifest [flags]",
		Args:  cli.NoArgs,
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("manifest", &params)
		},
		Run: func(ctx context.Context, _ []string, logger *slog.Logger) error {
			_, store, err := params.Open(false, logger)
			if err != nil {
				return err
			}
			manifest, err := store.WriteManifest(ctx)
			if err != nil {
				return err
			}
			logger.Info("manifest written", "directory", store.Directory(), "patches", len(manifest.Patches))
			fmt.Fprintf(cli.Stdout, "%d patches recorded in %s\n", len(manifest.Patches), store.Directory())
			return nil
		},
	}
}

type compressParams struct {
	Encoding string `json:"encoding" flag:"encoding,e" desc:"zstd or lz4" default:"zstd"`
	Keep     bool   `json:"keep"     flag:"keep,k"     desc:"keep the uncompressed file"`
}

func compressCommand() *cli.Command {
	var params compressParams

	return &cli.Command{
		Name:    "compress",
		Summary: "Compress a patch file for the resource directory",
		Usage:   "coinshuffle patch compress <patch> [flags]",
		Args:    cli.Exactly(1),
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("compress", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			encoding, err := resource.ParseEncoding(params.Encoding)
			if err != nil {
				return err
			}
			if encoding == resource.EncodingNone {
				return fmt.Errorf("--encoding must be zstd or lz4")
			}

			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading patch: %w", err)
			}
			compressed, err := resource.Compress(data, encoding)
			if err != nil {
				return err
			}
			target := path + encoding.Suffix()
			if err := os.WriteFile(target, compressed, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", target, err)
			}
			if !params.Keep {
				if err := os.Remove(path); err != nil {
					return fmt.Errorf("removing %s: %w", path, err)
				}
			}

			logger.Info("patch compressed",
				"path", target,
				"encoding", encoding.String(),
				"bytes", len(data),
				"compressed_bytes", len(compressed),
			)
			fmt.Fprintln(cli.Stdout, target)
			return nil
		},
	}
}
