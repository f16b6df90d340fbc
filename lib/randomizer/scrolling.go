// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import (
	"slices"

	"github.com/coinshuffle/coinshuffle/lib/entity"
	"github.com/coinshuffle/coinshuffle/lib/feature"
)

const (
	scrollTableStart = 0x3C360
	scrollLevels     = 32
	scrollOff        = 0x00
	scrollOn         = 0x01
	scrollOnChance   = 0.08
	scrollOffChance  = 0.25

	// checkpointLevel cannot both scroll and keep its checkpoint bell:
	// the bell would scroll off screen before it can be rung. Under
	// heavy gravity the level is unbeatable while scrolling.
	checkpointLevel = 0x0A
	checkpointEntry = 0x3A0C6
	checkpointID    = 0x3E
	heartID         = 0x34

	fastScrollStart  = 0x3C3A0
	fastScrollSpeed  = 0x02
	fastScrollChance = 0.4
)

var (
	fastScrollLevels = []byte{0x02, 0x05, 0x08, 0x0B, 0x0E, 0x11}

	// fastScrollExtras only qualify once the location shuffle has moved
	// them out of the hidden slots.
	fastScrollExtras = []byte{0x13, 0x15}
)

var scrollingPass = Pass{
	Name: "scrolling",
	Bits: []feature.Bit{feature.Scrolling},
	Writes: []Span{
		span(scrollTableStart, scrollLevels),
		span(checkpointEntry, entity.Stride),
	},
	apply: toggleScrolling,
}

var fastScrollPass = Pass{
	Name:   "fast-scroll",
	Bits:   []feature.Bit{feature.FastScroll, feature.AllFastScroll},
	Writes: []Span{span(fastScrollStart, scrollLevels)},
	apply:  speedUpScrolling,
}

func toggleScrolling(r *run) {
	for level := range scrollLevels {
		offset := scrollTableStart + level
		switch r.image[offset] {
		case scrollOff:
			if r.rng.Chance(scrollOnChance) {
				r.image[offset] = scrollOn
			}
		case scrollOn:
			if r.rng.Chance(scrollOffChance) {
				r.image[offset] = scrollOff
			}
		}
	}

	if r.image[scrollTableStart+checkpointLevel] != scrollOn {
		return
	}
	if r.image[r.gravityTable()+checkpointLevel] == gravityHeavy {
		r.image[scrollTableStart+checkpointLevel] = scrollOff
		return
	}
	if entity.Read(r.image, checkpointEntry) == checkpointID {
		entity.Write(r.image, checkpointEntry, heartID)
	}
}

// speedUpScrolling marks scrolling levels as fast, every one of them
// with all-fast-scroll, otherwise each with fastScrollChance.
func speedUpScrolling(r *run) {
	levels := slices.Clone(fastScrollLevels)
	for _, level := range fastScrollExtras {
		if r.levelPlaced(level) {
			levels = append(levels, level)
		}
	}

	always := r.mask.Has(feature.AllFastScroll)
	for _, level := range levels {
		if r.image[scrollTableStart+int(level)] != scrollOn {
			continue
		}
		if always || r.rng.Chance(fastScrollChance) {
			r.image[fastScrollStart+int(level)] = fastScrollSpeed
		}
	}
}
