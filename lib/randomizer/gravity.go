// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import (
	"slices"

	"github.com/coinshuffle/coinshuffle/lib/feature"
)

const (
	// The gravity table moved up a byte after v1.0.
	gravityTableV10   = 0x3C320
	gravityTableLater = 0x3C321
	gravityLevels     = 32

	gravityNone  = 0x00
	gravityLight = 0x01
	gravityHeavy = 0x02
)

// gravityFixed are the levels whose gravity is part of the level
// design (the space levels) and is never changed.
var gravityFixed = []int{0x05, 0x12}

// gravityStep is one entry of a state's transition list: a single draw
// below threshold moves to next. Thresholds are cumulative.
type gravityStep struct {
	threshold float64
	next      byte
}

var gravityTransitions = map[byte][]gravityStep{
	gravityNone:  {{0.05, gravityHeavy}, {0.15, gravityLight}},
	gravityLight: {{0.25, gravityNone}, {0.35, gravityHeavy}},
	gravityHeavy: {{0.30, gravityNone}, {0.40, gravityLight}},
}

var gravityPass = Pass{
	Name:   "gravity",
	Bits:   []feature.Bit{feature.Gravity},
	Writes: []Span{span(gravityTableV10, gravityLevels+1)},
	apply:  walkGravity,
}

func (r *run) gravityTable() int {
	if r.version == 0 {
		return gravityTableV10
	}
	return gravityTableLater
}

// walkGravity moves each level's gravity one step through the
// transition table. Bytes outside the three known states are skipped
// without drawing.
func walkGravity(r *run) {
	table := r.gravityTable()
	for level := range gravityLevels {
		if slices.Contains(gravityFixed, level) {
			continue
		}
		offset := table + level
		steps, known := gravityTransitions[r.image[offset]]
		if !known {
			continue
		}
		draw := r.rng.Float()
		for _, step := range steps {
			if draw < step.threshold {
				r.image[offset] = step.next
				break
			}
		}
	}
}
