// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package entity

const (
	// MaxID is the largest encodable type id.
	MaxID = 0x7F

	// PreservedA and PreservedB mask the bits of a and b that do not
	// belong to the id.
	PreservedA = 0x71
	PreservedB = 0x1F
)

// Extract decodes the type id packed into a and b.
func Extract(a, b byte) byte {
	high := (a >> 7) & 0x01
	middle := (a >> 1) & 0x07
	low := (b >> 5) & 0x07
	return high<<6 | middle<<3 | low
}

// Insert packs id into a and b, leaving the positional bits as they
// were. Bits of id above bit 6 are dropped.
func Insert(a, b, id byte) (byte, byte) {
	high := (id >> 6) & 0x01
	middle := (id >> 3) & 0x07
	low := id & 0x07
	a = a&PreservedA | high<<7 | middle<<1
	b = b&PreservedB | low<<5
	return a, b
}

// Read decodes the id of the entry starting at offset.
func Read(image []byte, offset int) byte {
	return Extract(image[offset+1], image[offset+2])
}

// Write re-encodes the id of the entry starting at offset.
func Write(image []byte, offset int, id byte) {
	image[offset+1], image[offset+2] = Insert(image[offset+1], image[offset+2], id)
}
