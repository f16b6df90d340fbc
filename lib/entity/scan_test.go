// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package entity

import (
	"slices"
	"testing"
)

func entry(position, id byte) []byte {
	a, b := Insert(0x01, 0x02, id)
	return []byte{position, a, b}
}

func TestScannerStopsAtTerminator(t *testing.T) {
	var image []byte
	image = append(image, entry(0x10, 0x01)...)
	image = append(image, entry(0x20, 0x02)...)
	image = append(image, Terminator, 0x00, 0x00)
	// Bytes past the terminator look like a valid entry.
	image = append(image, entry(0x30, 0x03)...)

	var offsets []int
	var ids []byte
	scanner := NewScanner(image, 0, len(image))
	for scanner.Next() {
		offsets = append(offsets, scanner.Offset())
		ids = append(ids, scanner.ID())
	}
	if !slices.Equal(offsets, []int{0, 3}) {
		t.Errorf("offsets = %v, want [0 3]", offsets)
	}
	if !slices.Equal(ids, []byte{0x01, 0x02}) {
		t.Errorf("ids = %v, want [1 2]", ids)
	}
	if scanner.Next() {
		t.Error("Next after terminator should stay false")
	}
}

func TestScannerStopsAtRegionEnd(t *testing.T) {
	var image []byte
	image = append(image, entry(0x10, 0x05)...)
	image = append(image, entry(0x11, 0x06)...)
	image = append(image, 0x00, 0x00) // partial entry

	count := 0
	scanner := NewScanner(image, 0, len(image))
	for scanner.Next() {
		count++
	}
	if count != 2 {
		t.Errorf("visited %d entries, want 2", count)
	}
}

func TestScannerSubRegion(t *testing.T) {
	var image []byte
	for i := range 4 {
		image = append(image, entry(byte(i), byte(0x10+i))...)
	}
	scanner := NewScanner(image, 3, 9)
	var ids []byte
	for scanner.Next() {
		ids = append(ids, scanner.ID())
	}
	if !slices.Equal(ids, []byte{0x11, 0x12}) {
		t.Errorf("ids = %v, want [0x11 0x12]", ids)
	}
}

func TestScannerSet(t *testing.T) {
	image := append(entry(0x44, 0x01), Terminator)
	scanner := NewScanner(image, 0, len(image))
	for scanner.Next() {
		scanner.Set(0x7E)
	}
	if got := Read(image, 0); got != 0x7E {
		t.Errorf("id = %#x, want 0x7E", got)
	}
	if image[1]&PreservedA != 0x01 || image[2]&PreservedB != 0x02 {
		t.Errorf("positional bits lost: %x", image)
	}
}

func TestScannerClampsToImage(t *testing.T) {
	image := entry(0x01, 0x01)
	scanner := NewScanner(image, 0, 100)
	count := 0
	for scanner.Next() {
		count++
	}
	if count != 1 {
		t.Errorf("visited %d entries, want 1", count)
	}
}
