// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package rng

const (
	multiplier = 1664525
	increment  = 1013904223

	// period is 2^32, the divisor that maps a state onto [0, 1).
	period = 4294967296.0
)

// Generator is a seeded linear congruential stream.
type Generator struct {
	state uint32
}

// New returns a generator whose first draw is derived from seed.
func New(seed uint32) *Generator {
	return &Generator{state: seed}
}

// State returns the current internal state. Seeding a new generator
// with it reproduces every subsequent draw.
func (g *Generator) State() uint32 {
	return g.state
}

// Next advances the state by one step and returns it.
func (g *Generator) Next() uint32 {
	g.state = g.state*multiplier + increment
	return g.state
}

// Float returns a value in [0, 1).
func (g *Generator) Float() float64 {
	return float64(g.Next()) / period
}

// Int returns a value in [0, limit). A non-positive limit still
// consumes a draw and yields 0; callers guard against empty ranges.
func (g *Generator) Int(limit int) int {
	value := int(g.Float() * float64(limit))
	if value < 0 {
		return 0
	}
	return value
}

// Bool is a fair coin.
func (g *Generator) Bool() bool {
	return g.Float() < 0.5
}

// Chance reports true with the given probability.
func (g *Generator) Chance(probability float64) bool {
	return g.Float() < probability
}

// Pick returns a uniformly drawn element of pool. Pool must not be
// empty.
func Pick[T any](g *Generator, pool []T) T {
	return pool[g.Int(len(pool))]
}
