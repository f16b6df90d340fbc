// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import (
	"github.com/coinshuffle/coinshuffle/lib/feature"
	"github.com/coinshuffle/coinshuffle/lib/rom"
)

// The physics table has one 4-byte entry per level group:
// friction, acceleration, jump height, move speed.
const (
	physicsTableStart = 0x3C3E0
	physicsEntries    = 16
	physicsEntrySize  = 4

	physicsFriction = 0
	physicsAccel    = 1
	physicsJump     = 2
	physicsSpeed    = 3

	iceChance   = 0.1
	iceFriction = 0x01
	iceAccel    = 0x02

	luigiChance = 0.5
	luigiJump   = 0x2C
	luigiSpeed  = 0x18

	// The extended image keeps a copy of the jump routine's ceiling
	// check that has to be widened for the higher jump.
	extendedJumpFix      = 0x8C010
	extendedJumpFixValue = 0x01
)

var physicsPass = Pass{
	Name: "physics",
	Bits: []feature.Bit{feature.IcePhysics, feature.LuigiPhysics, feature.AllLuigi},
	Writes: []Span{
		span(physicsTableStart, physicsEntries*physicsEntrySize),
		span(extendedJumpFix, 1),
	},
	apply: adjustPhysics,
}

func adjustPhysics(r *run) {
	if r.mask.Has(feature.IcePhysics) {
		for entry := range physicsEntries {
			if !r.rng.Chance(iceChance) {
				continue
			}
			offset := physicsTableStart + entry*physicsEntrySize
			r.image[offset+physicsFriction] = iceFriction
			r.image[offset+physicsAccel] = iceAccel
		}
	}

	all := r.mask.Has(feature.AllLuigi)
	if !all && !r.mask.Has(feature.LuigiPhysics) {
		return
	}
	applied := false
	for entry := range physicsEntries {
		if !all && !r.rng.Chance(luigiChance) {
			continue
		}
		offset := physicsTableStart + entry*physicsEntrySize
		r.image[offset+physicsJump] = luigiJump
		r.image[offset+physicsSpeed] = luigiSpeed
		applied = true
	}
	if applied && r.extended && len(r.image) == rom.ExtendedSize {
		r.image[extendedJumpFix] = extendedJumpFixValue
	}
}
