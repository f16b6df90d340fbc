// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package randomizer

import (
	"slices"

	"github.com/coinshuffle/coinshuffle/lib/feature"
	"github.com/coinshuffle/coinshuffle/lib/rng"
)

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// Contains reports whether offset lies in the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Pass is one independently toggled mutation.
type Pass struct {
	// Name identifies the pass in logs.
	Name string

	// Bits enable the pass; any one of them is enough.
	Bits []feature.Bit

	// Writes lists every span the pass may modify.
	Writes []Span

	apply func(*run)
}

// Enabled reports whether mask turns the pass on.
func (p Pass) Enabled(mask feature.Mask) bool {
	return slices.ContainsFunc(p.Bits, mask.Has)
}

// Passes returns the passes in execution order.
func Passes() []Pass {
	return slices.Clone(passes)
}

// passes is the execution order. Reordering changes every seed's
// output.
var passes = []Pass{
	locationsPass,
	bossLocationsPass,
	bossHealthPass,
	exitsPass,
	gamblingCostsPass,
	bonusGamesPass,
	enemiesPass,
	powerupsPass,
	platformsPass,
	gravityPass,
	scrollingPass,
	fastScrollPass,
	physicsPass,
	musicPass,
	fastMusicPass,
	disableMusicPass,
	disableSFXPass,
}

// run is the state one Randomize call threads through its passes.
type run struct {
	image    []byte
	rng      *rng.Generator
	mask     feature.Mask
	version  byte
	extended bool
}

// read collects the bytes at offsets.
func (r *run) read(offsets []int) []byte {
	values := make([]byte, len(offsets))
	for i, offset := range offsets {
		values[i] = r.image[offset]
	}
	return values
}

// write stores values at offsets, pairwise.
func (r *run) write(offsets []int, values []byte) {
	for i, offset := range offsets {
		r.image[offset] = values[i]
	}
}

// swap exchanges two bytes.
func (r *run) swap(first, second int) {
	r.image[first], r.image[second] = r.image[second], r.image[first]
}

// sequence returns count offsets starting at start, step apart.
func sequence(start, step, count int) []int {
	offsets := make([]int, count)
	for i := range offsets {
		offsets[i] = start + i*step
	}
	return offsets
}

// span returns the span of length bytes at start.
func span(start, length int) Span {
	return Span{Start: start, End: start + length}
}
