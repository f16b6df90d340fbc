// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import "github.com/coinshuffle/coinshuffle/lib/feature"

// exitPair is the normal and secret exit destination of one level. The
// level is identified by the level slot it is reached from.
type exitPair struct {
	offset    int
	levelSlot int
}

// exitLockedLevel keeps its exits when every pair is swapped: its
// secret exit is the only way into the hidden levels.
const exitLockedLevel = 0x0F

var exitPairs = []exitPair{
	{offset: 0x3C290, levelSlot: 1},
	{offset: 0x3C292, levelSlot: 3},
	{offset: 0x3C294, levelSlot: 4},
	{offset: 0x3C296, levelSlot: 7},
	{offset: 0x3C298, levelSlot: 9},
	{offset: 0x3C29A, levelSlot: 12},
	{offset: 0x3C29C, levelSlot: 14},
	{offset: 0x3C29E, levelSlot: 16},
}

var exitsPass = Pass{
	Name:   "exits",
	Bits:   []feature.Bit{feature.RandomExitSwap, feature.SwapAllExits},
	Writes: []Span{span(0x3C290, 2*len(exitPairs))},
	apply:  swapExits,
}

func swapExits(r *run) {
	swapAll := r.mask.Has(feature.SwapAllExits)
	for _, pair := range exitPairs {
		if swapAll {
			if r.image[levelSlots[pair.levelSlot]] == exitLockedLevel {
				continue
			}
			r.swap(pair.offset, pair.offset+1)
			continue
		}
		if r.rng.Bool() {
			r.swap(pair.offset, pair.offset+1)
		}
	}
}
