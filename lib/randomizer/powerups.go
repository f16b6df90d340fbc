// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import (
	"slices"

	"github.com/coinshuffle/coinshuffle/lib/feature"
	"github.com/coinshuffle/coinshuffle/lib/rng"
)

const (
	powerupMushroom = 0x30
	powerupFlower   = 0x31
	powerupCarrot   = 0x32
	powerupStar     = 0x33

	// Block contents sit eight ids above their free-standing form.
	blockOffset = 0x08
)

var (
	freePowerups  = []byte{powerupMushroom, powerupFlower, powerupCarrot, powerupStar}
	blockPowerups = []byte{
		powerupMushroom + blockOffset,
		powerupFlower + blockOffset,
		powerupCarrot + blockOffset,
		powerupStar + blockOffset,
	}

	// powerupFixedSlots hold the item handed out by the two checkpoint
	// bells, drawn from powerupFixedChoices.
	powerupFixedSlots   = []int{0x3C300, 0x3C301}
	powerupFixedChoices = []byte{0x01, 0x02, 0x03}

	powerupRanges = []entityRange{
		powerupRange(0x3A400, 0x3A430, false),
		powerupRange(0x3A430, 0x3A460, false),
		// The stars in this stretch would skip a required slowdown.
		powerupRange(0x3A460, 0x3A490, true),
	}
)

var powerupsPass = Pass{
	Name: "powerups",
	Bits: []feature.Bit{feature.Powerups},
	Writes: append(spansOf(powerupRanges),
		span(powerupFixedSlots[0], 1),
		span(powerupFixedSlots[1], 1)),
	apply: randomizePowerups,
}

// powerupRange swaps free-standing items among themselves and block
// contents among themselves, optionally without the star.
func powerupRange(start, end int, excludeStar bool) entityRange {
	free := slices.Clone(freePowerups)
	block := slices.Clone(blockPowerups)
	if excludeStar {
		free = slices.DeleteFunc(free, func(id byte) bool { return id == powerupStar })
		block = slices.DeleteFunc(block, func(id byte) bool { return id == powerupStar+blockOffset })
	}

	byID := make(map[byte][]byte, len(freePowerups)+len(blockPowerups))
	for _, id := range freePowerups {
		byID[id] = free
	}
	for _, id := range blockPowerups {
		byID[id] = block
	}
	return entityRange{start: start, end: end, byID: byID}
}

func randomizePowerups(r *run) {
	r.replaceEntities(powerupRanges)
	for _, offset := range powerupFixedSlots {
		r.image[offset] = rng.Pick(r.rng, powerupFixedChoices)
	}
}
