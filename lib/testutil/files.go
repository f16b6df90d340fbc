// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coinshuffle/coinshuffle/lib/rom"
)

// PatchDirectory writes the standard and extended diffs for each
// version into a fresh temporary directory and returns its path.
func PatchDirectory(t testing.TB, versions ...byte) string {
	t.Helper()
	directory := t.TempDir()
	for _, version := range versions {
		name := rom.VersionString(version)
		WriteFile(t, directory, name+".ips", EmptyPatch())
		WriteFile(t, directory, name+"-dx.ips", ExtendedPatch())
	}
	return directory
}

// WriteFile writes data to name under directory and returns the path.
func WriteFile(t testing.TB, directory, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(directory, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
