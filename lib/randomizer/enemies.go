// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import "github.com/coinshuffle/coinshuffle/lib/feature"

const (
	enemyToggleStart  = 0x3C4C0
	enemyToggleCount  = 4
	enemyToggleChance = 0.1

	// Piranha plants face up or sideways.
	piranhaUpright  = 0x48
	piranhaSideways = 0x49
)

// enemyRanges are the object lists whose enemies may be substituted.
// Ranges with byID pools pick the pool from the enemy currently there:
// a walker may become any ground enemy, a hopper only another hopper.
var enemyRanges = []entityRange{
	{start: 0x3A000, end: 0x3A030, pool: []byte{0x01, 0x02, 0x03, 0x04}},
	{start: 0x3A030, end: 0x3A060, pool: []byte{0x01, 0x02, 0x05, 0x06}},
	{start: 0x3A060, end: 0x3A090, byID: map[byte][]byte{
		0x08: {0x08, 0x09, 0x0A, 0x0B, 0x0C},
		0x0D: {0x0D, 0x0E},
	}},
	{start: 0x3A090, end: 0x3A0C0, pool: []byte{0x10, 0x11, 0x12}},
	{start: 0x3A0C0, end: 0x3A0F0, byID: map[byte][]byte{
		0x14: {0x14, 0x15, 0x16, 0x17},
		0x18: {0x18, 0x19},
	}},
	{start: 0x3A0F0, end: 0x3A120, pool: []byte{0x20, 0x21, 0x22, 0x23}},
}

var enemiesPass = Pass{
	Name:   "enemies",
	Bits:   []feature.Bit{feature.Enemies},
	Writes: append(spansOf(enemyRanges), span(enemyToggleStart, enemyToggleCount)),
	apply:  randomizeEnemies,
}

func randomizeEnemies(r *run) {
	r.replaceEntities(enemyRanges)

	for i := range enemyToggleCount {
		offset := enemyToggleStart + i
		if !r.rng.Chance(enemyToggleChance) {
			continue
		}
		switch r.image[offset] {
		case piranhaUpright:
			r.image[offset] = piranhaSideways
		case piranhaSideways:
			r.image[offset] = piranhaUpright
		}
	}
}
