// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import (
	"github.com/coinshuffle/coinshuffle/lib/feature"
	"github.com/coinshuffle/coinshuffle/lib/rng"
)

const (
	// Each cost is two bytes: the value mod 100, then the value div 100.
	gamblingCostStart = 0x3C2B0
	gamblingCostCount = 4
	gamblingCostFloor = 50
	gamblingCostRange = 100

	bonusGameStart = 0x3C2C0
	bonusGameCount = 8
)

// bonusGames are the level-end bonus kinds.
var bonusGames = []byte{
	0x00, // bell
	0x01, // crane
}

var gamblingCostsPass = Pass{
	Name:   "gambling-costs",
	Bits:   []feature.Bit{feature.GamblingCosts},
	Writes: []Span{span(gamblingCostStart, 2*gamblingCostCount)},
	apply:  randomizeGamblingCosts,
}

var bonusGamesPass = Pass{
	Name:   "bonus-games",
	Bits:   []feature.Bit{feature.BonusGames},
	Writes: []Span{span(bonusGameStart, bonusGameCount)},
	apply:  randomizeBonusGames,
}

// randomizeGamblingCosts draws cost i from
// [floor*(i+1), floor*(i+1) + range*(i+1)).
func randomizeGamblingCosts(r *run) {
	for i := range gamblingCostCount {
		step := i + 1
		cost := gamblingCostFloor*step + r.rng.Int(gamblingCostRange*step)
		offset := gamblingCostStart + 2*i
		r.image[offset] = byte(cost % 100)
		r.image[offset+1] = byte(cost / 100)
	}
}

func randomizeBonusGames(r *run) {
	for i := range bonusGameCount {
		r.image[bonusGameStart+i] = rng.Pick(r.rng, bonusGames)
	}
}
