// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import "github.com/coinshuffle/coinshuffle/lib/feature"

// platformRanges substitute moving platforms. The last range holds the
// lift family, four consecutive ids that differ only in travel
// distance, so its replacement is computed rather than pooled.
var platformRanges = []entityRange{
	{start: 0x3A600, end: 0x3A630, pool: []byte{0x40, 0x41, 0x42}},
	{start: 0x3A630, end: 0x3A660, pool: []byte{0x43, 0x44}},
	{start: 0x3A660, end: 0x3A690, base: 0x48, variants: 4},
}

var platformsPass = Pass{
	Name:   "platforms",
	Bits:   []feature.Bit{feature.Platforms},
	Writes: spansOf(platformRanges),
	apply:  randomizePlatforms,
}

func randomizePlatforms(r *run) {
	r.replaceEntities(platformRanges)
}
