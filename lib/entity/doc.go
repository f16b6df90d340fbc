// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

// Package entity reads and writes the object descriptors embedded in a
// cartridge image.
//
// Each level's object list is a run of 3-byte entries terminated by
// [Terminator] in the first byte of an entry:
//
//	+----------+--------+--------+
//	| position |   a    |   b    |
//	+----------+--------+--------+
//
// The 7-bit type id is scattered across a and b. Bit 6 of the id lives
// in bit 7 of a, bits 5-3 in bits 3-1 of a, and bits 2-0 in bits 7-5
// of b. Every other bit of a and b is positional data owned by the
// level and must survive an id change untouched.
//
// [Extract] and [Insert] convert between the packed bytes and the id.
// [Scanner] walks a list region and stops at the terminator, so a
// trailing byte pattern after the end of a list is never mistaken for
// an entry.
package entity
