// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package feature

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParsePresetJSONC(t *testing.T) {
	data := []byte(`{
    // shuffle everything reachable
    "locations": true,
    "boss-locations": true,
    /* exits */
    "random-exit-swap": true,
    "swap-all-exits": true,
}`)
	mask, err := ParsePreset(data)
	if err != nil {
		t.Fatalf("ParsePreset: %v", err)
	}
	want := New(bits(Locations, BossLocations, SwapAllExits))
	if mask != want {
		t.Errorf("mask = %s, want %s", mask, want)
	}
}

func TestParsePresetErrors(t *testing.T) {
	if _, err := ParsePreset([]byte(`{"locations": "yes"}`)); err == nil {
		t.Error("non-boolean value should fail")
	}
	if _, err := ParsePreset([]byte(`{"teleport": true}`)); err == nil {
		t.Error("unknown feature should fail")
	}
}

func TestLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "race.jsonc")
	if err := os.WriteFile(path, []byte(`{"enemies": true, "music": true,}`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	mask, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	if !mask.Has(Enemies) || !mask.Has(Music) || mask.Has(Locations) {
		t.Errorf("mask = %s", mask)
	}

	if _, err := LoadPreset(filepath.Join(t.TempDir(), "missing.jsonc")); err == nil {
		t.Error("missing preset should fail")
	}
}
