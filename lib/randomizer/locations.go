// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import (
	"slices"

	"github.com/coinshuffle/coinshuffle/lib/feature"
	"github.com/coinshuffle/coinshuffle/lib/rng"
)

const (
	levelTableStart = 0x3C218
	levelSlotCount  = 18
	hiddenSlotCount = 6

	// forbiddenOpeningLevel cannot be cleared from a fresh save, so it
	// never occupies the first level slot.
	forbiddenOpeningLevel = 0x11

	// The pipe table entry at levelMirrorTarget duplicates level slot 5.
	levelMirrorSource = levelTableStart + 5
	levelMirrorTarget = 0x3C230

	bossArenaStart      = 0x3C240
	completionFlagStart = 0x3C248
	bossArenaCount      = 6
)

var (
	levelSlots  = sequence(levelTableStart, 1, levelSlotCount)
	hiddenSlots = sequence(levelTableStart+levelSlotCount, 1, hiddenSlotCount)
)

var locationsPass = Pass{
	Name: "locations",
	Bits: []feature.Bit{feature.Locations},
	Writes: []Span{
		span(levelTableStart, levelSlotCount+hiddenSlotCount),
		span(levelMirrorTarget, 1),
		span(bossArenaStart, bossArenaCount),
		span(completionFlagStart, bossArenaCount),
	},
	apply: shuffleLocations,
}

func isForbiddenOpening(level byte) bool {
	return level == forbiddenOpeningLevel
}

func shuffleLocations(r *run) {
	if r.mask.Has(feature.IncludeHidden) {
		slots := slices.Concat(levelSlots, hiddenSlots)
		levels := r.read(slots)
		rng.ShuffleAvoiding(r.rng, levels, 0, isForbiddenOpening)
		r.write(slots, levels)
	} else {
		levels := r.read(levelSlots)
		rng.ShuffleAvoiding(r.rng, levels, 0, isForbiddenOpening)
		r.write(levelSlots, levels)

		hidden := r.read(hiddenSlots)
		rng.Shuffle(r.rng, hidden)
		r.write(hiddenSlots, hidden)
	}
	r.image[levelMirrorTarget] = r.image[levelMirrorSource]

	type arena struct {
		level byte
		flag  byte
	}
	arenas := make([]arena, bossArenaCount)
	for i := range arenas {
		arenas[i] = arena{level: r.image[bossArenaStart+i], flag: r.image[completionFlagStart+i]}
	}
	rng.Shuffle(r.rng, arenas)
	for i, placed := range arenas {
		r.image[bossArenaStart+i] = placed.level
		r.image[completionFlagStart+i] = placed.flag
	}
}

// levelPlaced reports whether level sits in one of the regular level
// slots.
func (r *run) levelPlaced(level byte) bool {
	for _, offset := range levelSlots {
		if r.image[offset] == level {
			return true
		}
	}
	return false
}
