// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package rom

import (
	"encoding/binary"
	"testing"
)

func blankStandard() []byte {
	image := make([]byte, StandardSize)
	copy(image[TitleOffset:], Title)
	image[SizeClassOffset] = SizeClassStandard
	return image
}

func TestFinalizeHandComputed(t *testing.T) {
	// Title bytes sum to 713; with the size class (4) and the bias (25)
	// the header sum is 742 = 0x2E6, so the header byte is -0xE6 = 0x1A.
	// The global sum is 713 + 4 + 0x1A = 0x2E7.
	image := blankStandard()
	sums := Finalize(image)

	if sums.Header != 0x1A || image[HeaderChecksumOffset] != 0x1A {
		t.Errorf("header checksum = %#x, want 0x1A", image[HeaderChecksumOffset])
	}
	if sums.Global != 0x02E7 {
		t.Errorf("global checksum = %#x, want 0x02E7", sums.Global)
	}
	if image[GlobalChecksumOffset] != 0x02 || image[GlobalChecksumOffset+1] != 0xE7 {
		t.Errorf("global bytes = %x, want 02e7 (big-endian)", image[GlobalChecksumOffset:GlobalChecksumOffset+2])
	}
}

func TestFinalizeFilledImage(t *testing.T) {
	// 32 KiB image (size class 0) filled with i*7. Expected values come
	// from summing the same bytes independently.
	image := make([]byte, 0x8000)
	for i := range image {
		image[i] = byte(i * 7)
	}
	image[SizeClassOffset] = 0x00

	sums := Finalize(image)
	if sums.Header != 0x1F {
		t.Errorf("header checksum = %#x, want 0x1F", sums.Header)
	}
	if sums.Global != 0xBEC1 {
		t.Errorf("global checksum = %#x, want 0xBEC1", sums.Global)
	}
	if !Verify(image) {
		t.Error("Verify after Finalize = false")
	}
}

func TestComputeIgnoresStoredGlobal(t *testing.T) {
	image := blankStandard()
	first := Compute(image)
	binary.BigEndian.PutUint16(image[GlobalChecksumOffset:], 0xFFFF)
	if second := Compute(image); second != first {
		t.Errorf("Compute changed with stored global: %+v vs %+v", second, first)
	}
}

func TestComputeRangeFollowsSizeClass(t *testing.T) {
	image := make([]byte, ExtendedSize)
	copy(image[TitleOffset:], Title)
	image[SizeClassOffset] = SizeClassStandard
	image[StandardSize+10] = 0x40

	standard := Compute(image)
	image[SizeClassOffset] = SizeClassExtended
	extended := Compute(image)

	// Size class adds one to the header sum, so the header byte drops by
	// one and the global sum shifts by the class change, the header
	// change, and the byte beyond the standard range.
	if extended.Header != standard.Header-1 {
		t.Errorf("extended header = %#x, standard = %#x", extended.Header, standard.Header)
	}
	if extended.Global != standard.Global+1-1+0x40 {
		t.Errorf("extended global = %#x, standard = %#x", extended.Global, standard.Global)
	}
}

func TestVerifyDetectsChange(t *testing.T) {
	image := blankStandard()
	Finalize(image)
	if !Verify(image) {
		t.Fatal("Verify = false after Finalize")
	}
	image[0x3C218] ^= 0x01
	if Verify(image) {
		t.Error("Verify = true after modifying contents")
	}
}
