// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import (
	"github.com/coinshuffle/coinshuffle/lib/feature"
	"github.com/coinshuffle/coinshuffle/lib/rng"
)

const (
	bossIDStart       = 0x3C260
	bossGraphicsStart = 0x3C268
	bossCount         = 6

	// bossRushCounter is one lower on v1.0 images; the v1.0 routine
	// that reads it indexes from one.
	bossRushCounter = 0x3C274

	bossHealthStart  = 0x3C280
	bossHealthCount  = 7
	bossHealthFloor  = 2
	bossHealthSpread = 3
)

var bossLocationsPass = Pass{
	Name: "boss-locations",
	Bits: []feature.Bit{feature.BossLocations},
	Writes: []Span{
		span(bossIDStart, bossCount),
		span(bossGraphicsStart, 2*bossCount),
		span(bossRushCounter, 1),
	},
	apply: shuffleBosses,
}

var bossHealthPass = Pass{
	Name:   "boss-health",
	Bits:   []feature.Bit{feature.BossHealth},
	Writes: []Span{span(bossHealthStart, bossHealthCount)},
	apply:  randomizeBossHealth,
}

// shuffleBosses moves each boss together with its graphics pointer.
func shuffleBosses(r *run) {
	type boss struct {
		id       byte
		graphics [2]byte
	}
	bosses := make([]boss, bossCount)
	for i := range bosses {
		pointer := bossGraphicsStart + 2*i
		bosses[i] = boss{
			id:       r.image[bossIDStart+i],
			graphics: [2]byte{r.image[pointer], r.image[pointer+1]},
		}
	}
	rng.Shuffle(r.rng, bosses)
	for i, placed := range bosses {
		pointer := bossGraphicsStart + 2*i
		r.image[bossIDStart+i] = placed.id
		r.image[pointer], r.image[pointer+1] = placed.graphics[0], placed.graphics[1]
	}

	if r.version == 0 {
		r.image[bossRushCounter]++
	}
}

// randomizeBossHealth gives boss i a hit count in
// [floor+i, floor+i+spread).
func randomizeBossHealth(r *run) {
	for i := range bossHealthCount {
		r.image[bossHealthStart+i] = byte(bossHealthFloor + i + r.rng.Int(bossHealthSpread))
	}
}
