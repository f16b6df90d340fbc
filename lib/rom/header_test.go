// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package rom

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		name   string
		modify func([]byte) []byte
		want   bool
	}{
		{"standard", func(image []byte) []byte { return image }, true},
		{"short", func(image []byte) []byte { return image[:StandardSize-1] }, false},
		{"long", func(image []byte) []byte { return append(image, 0) }, false},
		{"title", func(image []byte) []byte { image[TitleOffset] = 'W'; return image }, false},
		{"extended class", func(image []byte) []byte { image[SizeClassOffset] = SizeClassExtended; return image }, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Valid(test.modify(blankStandard())); got != test.want {
				t.Errorf("Valid = %v, want %v", got, test.want)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	image := blankStandard()
	image[VersionOffset] = 2
	if got := VersionString(Version(image)); got != "v1.2" {
		t.Errorf("VersionString = %q, want v1.2", got)
	}
}

func TestSizeForClass(t *testing.T) {
	if SizeForClass(SizeClassStandard) != StandardSize {
		t.Errorf("standard class size = %#x", SizeForClass(SizeClassStandard))
	}
	if SizeForClass(SizeClassExtended) != ExtendedSize {
		t.Errorf("extended class size = %#x", SizeForClass(SizeClassExtended))
	}
	if SizeForClass(0x52) != 0 {
		t.Error("unknown class should map to 0")
	}
}

func TestExtended(t *testing.T) {
	image := blankStandard()
	if Extended(image) {
		t.Error("standard image reported as extended")
	}
	image[SizeClassOffset] = SizeClassExtended
	if !Extended(image) {
		t.Error("extended image not detected")
	}
}
