// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import (
	"github.com/coinshuffle/coinshuffle/lib/entity"
	"github.com/coinshuffle/coinshuffle/lib/rng"
	"github.com/coinshuffle/coinshuffle/lib/rom"
	"github.com/coinshuffle/coinshuffle/lib/testutil"
)

// Fixture values chosen so that relationships survive shuffles: each
// completion flag is its arena plus 0x10, each graphics pointer is
// (id, id|0x80).
const (
	fixtureArenaBase = 0x20
	fixtureFlagDelta = 0x10
	fixtureBossBase  = 0x40
)

// fixtureLevels places the forbidden opening level in slot 0 so that a
// shuffle that ignored the constraint would be caught quickly.
func fixtureLevels() []byte {
	levels := make([]byte, levelSlotCount)
	levels[0] = forbiddenOpeningLevel
	next := byte(0x00)
	for i := 1; i < levelSlotCount; i++ {
		levels[i] = next
		next++
	}
	return levels
}

func fixtureHidden() []byte {
	return []byte{0x12, 0x13, 0x14, 0x15, 0x16, 0x17}
}

// writeEntities writes one entry per id starting at start, a
// terminator, and one more entry after the terminator that must never
// be touched.
func writeEntities(image []byte, start int, ids []byte, trailing byte) {
	offset := start
	for i, id := range ids {
		image[offset] = byte(0x10 + i)
		image[offset+1], image[offset+2] = entity.Insert(0x51, 0x0A, id)
		offset += entity.Stride
	}
	image[offset] = entity.Terminator
	offset += entity.Stride
	image[offset] = 0x00
	image[offset+1], image[offset+2] = entity.Insert(0x51, 0x0A, trailing)
}

// fixtureImage returns a valid image whose tables are populated with
// values every pass acts on.
func fixtureImage(version byte) []byte {
	image := testutil.StandardImage(version)

	copy(image[levelTableStart:], fixtureLevels())
	copy(image[levelTableStart+levelSlotCount:], fixtureHidden())
	image[levelMirrorTarget] = image[levelMirrorSource]
	for i := range bossArenaCount {
		image[bossArenaStart+i] = byte(fixtureArenaBase + i)
		image[completionFlagStart+i] = byte(fixtureArenaBase + i + fixtureFlagDelta)
	}

	for i := range bossCount {
		id := byte(fixtureBossBase + i)
		image[bossIDStart+i] = id
		image[bossGraphicsStart+2*i] = id
		image[bossGraphicsStart+2*i+1] = id | 0x80
	}
	image[bossRushCounter] = 0x05

	for i, pair := range exitPairs {
		image[pair.offset] = byte(0xA0 + i)
		image[pair.offset+1] = byte(0xB0 + i)
	}

	writeEntities(image, 0x3A000, []byte{0x01, 0x02, 0x03, 0x04, 0x01, 0x7F}, 0x01)
	writeEntities(image, 0x3A030, []byte{0x05, 0x06, 0x01}, 0x05)
	writeEntities(image, 0x3A060, []byte{0x08, 0x0D, 0x08, 0x0D, 0x09}, 0x08)
	writeEntities(image, 0x3A090, []byte{0x10, 0x11, 0x12, 0x10}, 0x12)
	writeEntities(image, 0x3A0C0, []byte{0x14, 0x18, checkpointID, 0x14}, 0x18)
	writeEntities(image, 0x3A0F0, []byte{0x20, 0x21, 0x22, 0x23}, 0x20)
	for i := range enemyToggleCount {
		image[enemyToggleStart+i] = byte(piranhaUpright + i%2)
	}

	writeEntities(image, 0x3A400, []byte{powerupMushroom, powerupStar, powerupCarrot + blockOffset}, powerupFlower)
	writeEntities(image, 0x3A430, []byte{powerupFlower, powerupMushroom + blockOffset}, powerupFlower)
	writeEntities(image, 0x3A460, []byte{powerupStar, powerupStar + blockOffset, powerupMushroom}, powerupStar)

	writeEntities(image, 0x3A600, []byte{0x40, 0x41, 0x42, 0x40}, 0x41)
	writeEntities(image, 0x3A630, []byte{0x43, 0x44}, 0x43)
	writeEntities(image, 0x3A660, []byte{0x48, 0x49, 0x4A, 0x4B, 0x50}, 0x48)

	for i := range gravityLevels + 1 {
		image[gravityTableV10+i] = byte(i % 3)
	}
	for level := range scrollLevels {
		image[scrollTableStart+level] = byte(level % 2)
		image[fastScrollStart+level] = 0x00
	}
	image[scrollTableStart+checkpointLevel] = scrollOn

	for i := range physicsEntries * physicsEntrySize {
		image[physicsTableStart+i] = 0x00
	}
	for i := range tempoEntries * tempoEntrySize {
		image[tempoStart+i] = byte(0x40 + i)
	}

	rom.Finalize(image)
	return image
}

// newRun wraps image for calling pass functions directly.
func newRun(image []byte, seed uint32, raw uint32) *run {
	return &run{
		image:    image,
		rng:      rng.New(seed),
		mask:     maskOf(raw),
		version:  rom.Version(image),
		extended: rom.Extended(image),
	}
}
