// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package feature

import (
	"slices"
	"strings"
	"testing"
)

func bits(list ...Bit) uint32 {
	var raw uint32
	for _, bit := range list {
		raw |= 1 << bit
	}
	return raw
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   uint32
		want uint32
	}{
		{"hidden implies locations and swap-all wins", bits(IncludeHidden, RandomExitSwap, SwapAllExits), bits(Locations, IncludeHidden, SwapAllExits)},
		{"random exit swap alone", bits(RandomExitSwap), bits(RandomExitSwap)},
		{"all fast scroll wins", bits(FastScroll, AllFastScroll), bits(AllFastScroll)},
		{"all luigi wins", bits(LuigiPhysics, AllLuigi), bits(AllLuigi)},
		{"untouched", bits(Enemies, Music, DisableSFX), bits(Enemies, Music, DisableSFX)},
		{"high bits dropped", 1<<24 | bits(Gravity), bits(Gravity)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := New(test.in); uint32(got) != test.want {
				t.Errorf("New(%#x) = %#x, want %#x", test.in, uint32(got), test.want)
			}
		})
	}
}

func TestBitTable(t *testing.T) {
	expected := map[Bit]string{
		0: "locations", 7: "bonus-games", 14: "all-fast-scroll", 21: "disable-sfx",
		1: "include-hidden", 8: "enemies", 15: "ice-physics", 22: "extra-variant",
		2: "boss-locations", 9: "powerups", 16: "luigi-physics",
		3: "boss-health", 10: "platforms", 17: "all-luigi",
		4: "random-exit-swap", 11: "gravity", 18: "music",
		5: "swap-all-exits", 12: "scrolling", 19: "fast-music",
		6: "gambling-costs", 13: "fast-scroll", 20: "disable-music",
	}
	for bit, name := range expected {
		if bit.String() != name {
			t.Errorf("bit %d = %q, want %q", bit, bit.String(), name)
		}
		if found, ok := Lookup(name); !ok || found != bit {
			t.Errorf("Lookup(%q) = %d, %v", name, found, ok)
		}
	}
}

func TestHex(t *testing.T) {
	if got := New(0x1).Hex(); got != "000001" {
		t.Errorf("Hex = %q, want 000001", got)
	}
	if got := New(0xABCDEF).Hex(); got != strings.ToUpper(got) || len(got) != 6 {
		t.Errorf("Hex = %q, want six uppercase digits", got)
	}
}

func TestParseHex(t *testing.T) {
	mask, err := ParseHex("0x000032")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if uint32(mask) != bits(Locations, IncludeHidden, SwapAllExits) {
		t.Errorf("ParseHex(32) = %#x", uint32(mask))
	}
	for _, bad := range []string{"", "xyz", "1000000", "-1"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) should fail", bad)
		}
	}
}

func TestFromNames(t *testing.T) {
	mask, err := FromNames(map[string]bool{
		"include-hidden": true,
		"music":          true,
		"gravity":        false,
	})
	if err != nil {
		t.Fatalf("FromNames: %v", err)
	}
	if !slices.Equal(mask.Names(), []string{"locations", "include-hidden", "music"}) {
		t.Errorf("Names = %v", mask.Names())
	}

	_, err = FromNames(map[string]bool{"lasers": true, "warp": false, "music": true})
	if err == nil || !strings.Contains(err.Error(), "lasers, warp") {
		t.Errorf("FromNames error = %v, want both unknown names", err)
	}
}

func TestTogglesRoundTrip(t *testing.T) {
	original := New(bits(Enemies, Powerups, AllLuigi, ExtraVariant))
	back, err := FromNames(original.Toggles())
	if err != nil {
		t.Fatalf("FromNames: %v", err)
	}
	if back != original {
		t.Errorf("round trip = %#x, want %#x", uint32(back), uint32(original))
	}
}

func TestString(t *testing.T) {
	if got := Mask(0).String(); got != "none" {
		t.Errorf("empty String = %q", got)
	}
	if got := New(bits(Scrolling, FastScroll)).String(); got != "scrolling,fast-scroll" {
		t.Errorf("String = %q", got)
	}
}
