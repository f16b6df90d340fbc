// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package rom

import (
	"bytes"
	"fmt"
)

const (
	TitleOffset     = 0x134
	SizeClassOffset = 0x148
	VersionOffset   = 0x14C

	// Title is the magic string every supported image carries.
	Title = "MARIOLAND2"

	// SizeClassStandard and SizeClassExtended are the two supported
	// values of the size class byte.
	SizeClassStandard = 0x04
	SizeClassExtended = 0x05

	StandardSize = 0x80000
	ExtendedSize = 0x100000
)

// SizeForClass returns the image length the size class byte implies:
// 32 KiB shifted left by the class.
func SizeForClass(class byte) int {
	if class > 8 {
		return 0
	}
	return 0x8000 << class
}

// Valid reports whether image is a supported pre-patch input: the
// standard length, the expected title, and the standard size class.
func Valid(image []byte) bool {
	if len(image) != StandardSize {
		return false
	}
	if !bytes.Equal(image[TitleOffset:TitleOffset+len(Title)], []byte(Title)) {
		return false
	}
	return image[SizeClassOffset] == SizeClassStandard
}

// Extended reports whether image carries the extended size class.
func Extended(image []byte) bool {
	return len(image) > SizeClassOffset && image[SizeClassOffset] == SizeClassExtended
}

// Version returns the sub-version byte.
func Version(image []byte) byte {
	return image[VersionOffset]
}

// VersionString formats a sub-version byte as "v1.N".
func VersionString(version byte) string {
	return fmt.Sprintf("v1.%d", version)
}
