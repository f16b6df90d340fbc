// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package rom

import "encoding/binary"

const (
	HeaderChecksumOffset = 0x14D
	GlobalChecksumOffset = 0x14E

	headerStart = 0x134
	headerEnd   = 0x14C // inclusive

	// headerBias is added once per header byte by the boot ROM's
	// "x = x - byte - 1" loop.
	headerBias = headerEnd - headerStart + 1
)

// Checksums holds the two header checksums.
type Checksums struct {
	Header byte
	Global uint16
}

// Compute derives both checksums from image without modifying it. The
// global sum covers [0, SizeForClass(class)) clamped to the image,
// skipping the two global checksum bytes.
func Compute(image []byte) Checksums {
	var headerSum byte
	for _, value := range image[headerStart : headerEnd+1] {
		headerSum += value
	}
	headerSum += headerBias

	limit := min(SizeForClass(image[SizeClassOffset]), len(image))
	var global uint16
	for offset, value := range image[:limit] {
		if offset == GlobalChecksumOffset || offset == GlobalChecksumOffset+1 {
			continue
		}
		global += uint16(value)
	}

	// The header byte itself is part of the global sum, so it has to be
	// the new value.
	header := -headerSum
	global = global - uint16(image[HeaderChecksumOffset]) + uint16(header)

	return Checksums{Header: header, Global: global}
}

// Stored returns the checksums currently written in the header.
func Stored(image []byte) Checksums {
	return Checksums{
		Header: image[HeaderChecksumOffset],
		Global: binary.BigEndian.Uint16(image[GlobalChecksumOffset:]),
	}
}

// Finalize writes freshly computed checksums into the header.
func Finalize(image []byte) Checksums {
	sums := Compute(image)
	image[HeaderChecksumOffset] = sums.Header
	binary.BigEndian.PutUint16(image[GlobalChecksumOffset:], sums.Global)
	return sums
}

// Verify reports whether the stored checksums match the contents.
func Verify(image []byte) bool {
	return Stored(image) == Compute(image)
}
